package rule

import (
	"sort"
)

// Filter decides whether a rule participates in a session
type Filter func(*Rule) bool

// ConfidenceFunc resolves the current confidence of a rule by id
type ConfidenceFunc func(ruleID string) float64

// Repository holds the compiled rule catalog in a deterministic order
// (priority descending, then id ascending).
type Repository struct {
	rules []*Rule
	byID  map[string]*Rule
}

// New compiles the supplied definitions into a repository. Malformed
// definitions fail closed: each yields a DefinitionError in the returned
// slice and is excluded, the remaining rules still load.
func New(defs []Definition) (*Repository, []error) {
	repo := &Repository{byID: map[string]*Rule{}}
	var errors []error
	for _, def := range defs {
		if _, ok := repo.byID[def.ID]; ok && def.ID != "" {
			errors = append(errors, &DefinitionError{RuleID: def.ID, Reason: "duplicate rule id"})
			continue
		}
		compiled, err := Compile(def)
		if err != nil {
			errors = append(errors, err)
			continue
		}
		repo.rules = append(repo.rules, compiled)
		repo.byID[compiled.ID] = compiled
	}
	sort.SliceStable(repo.rules, func(i, j int) bool {
		if repo.rules[i].Priority != repo.rules[j].Priority {
			return repo.rules[i].Priority > repo.rules[j].Priority
		}
		return repo.rules[i].ID < repo.rules[j].ID
	})
	return repo, errors
}

// Rules returns all loaded rules in repository order
func (r *Repository) Rules() []*Rule {
	return r.rules
}

// Lookup returns the rule with the given id or nil
func (r *Repository) Lookup(id string) *Rule {
	return r.byID[id]
}

// Size returns the number of loaded rules
func (r *Repository) Size() int {
	return len(r.rules)
}

// ActiveSubset returns the rules that pass the environment filter and whose
// current confidence is at or above the floor. A nil filter admits every
// rule; a nil confidence func falls back to each rule's initial confidence.
func (r *Repository) ActiveSubset(filter Filter, confidence ConfidenceFunc, floor float64) []*Rule {
	var active []*Rule
	for _, candidate := range r.rules {
		if filter != nil && !filter(candidate) {
			continue
		}
		value := candidate.InitialConfidence
		if confidence != nil {
			value = confidence(candidate.ID)
		}
		if value < floor {
			continue
		}
		active = append(active, candidate)
	}
	return active
}
