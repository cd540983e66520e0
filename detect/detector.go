package detect

import (
	"fmt"
	"github.com/viant/autofix/rule"
	"github.com/viant/autofix/unit"
	"sort"
)

// Finding is a located, rule-attributed defect instance
type Finding struct {
	RuleID      string        `yaml:"ruleId"`
	UnitID      string        `yaml:"unitId"`
	Span        unit.Span     `yaml:"span"`
	Line        int           `yaml:"line"`
	Severity    rule.Severity `yaml:"severity"`
	Priority    int           `yaml:"priority"`
	Message     string        `yaml:"message"`
	Fingerprint string        `yaml:"fingerprint"`
	// match holds the submatch index vector the rule detector produced,
	// needed later to expand the rule's fix template
	match []int
}

// Match returns the submatch index vector backing this finding
func (f Finding) Match() []int {
	return f.match
}

// Fault records a non-fatal processing failure; faults are report data,
// never propagated as errors
type Fault struct {
	UnitID  string `yaml:"unitId"`
	RuleID  string `yaml:"ruleId,omitempty"`
	Stage   string `yaml:"stage"`
	Message string `yaml:"message"`
}

// Result carries the outcome of one detection pass
type Result struct {
	Findings   []Finding
	Superseded []Finding
	Faults     []Fault
}

// Detect applies the active rules to a unit and returns an ordered,
// deduplicated finding list. Rules run independently of each other: a
// panicking detector yields a fault for that rule only. Output ordering is
// span start, then rule priority descending, then rule id, which makes the
// result byte-identical across runs for identical input.
func Detect(u *unit.CodeUnit, active []*rule.Rule) Result {
	var result Result
	for _, r := range active {
		matches, fault := safeDetect(u, r)
		if fault != nil {
			result.Faults = append(result.Faults, *fault)
			continue
		}
		for _, match := range matches {
			span := unit.Span{Start: match[0], End: match[1]}
			result.Findings = append(result.Findings, Finding{
				RuleID:      r.ID,
				UnitID:      u.ID,
				Span:        span,
				Line:        unit.LineAt(u.Current, span.Start),
				Severity:    r.Severity,
				Priority:    r.Priority,
				Message:     r.Description,
				Fingerprint: Fingerprint(r.ID, u.Current[span.Start:span.End]),
				match:       match,
			})
		}
	}
	sort.SliceStable(result.Findings, func(i, j int) bool {
		a, b := result.Findings[i], result.Findings[j]
		if a.Span.Start != b.Span.Start {
			return a.Span.Start < b.Span.Start
		}
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		return a.RuleID < b.RuleID
	})
	result.Findings, result.Superseded = resolve(result.Findings)
	return result
}

// safeDetect runs one rule detector, converting a panic into a fault
func safeDetect(u *unit.CodeUnit, r *rule.Rule) (matches [][]int, fault *Fault) {
	defer func() {
		if recovered := recover(); recovered != nil {
			matches = nil
			fault = &Fault{
				UnitID:  u.ID,
				RuleID:  r.ID,
				Stage:   "detect",
				Message: fmt.Sprintf("detector failed: %v", recovered),
			}
		}
	}()
	return r.Detect(u.Current), nil
}

// resolve deduplicates repeated matches and resolves full-span overlap
// between different rules in favour of the higher-priority rule. Dedup is
// keyed by fingerprint plus span start, so repeated instances of one defect
// stay independent findings while sharing one fingerprint for outcome
// correlation. Superseded findings stay in the internal trace but are not
// reported as actionable findings.
func resolve(findings []Finding) (kept []Finding, superseded []Finding) {
	type occurrence struct {
		fingerprint string
		start       int
	}
	seen := map[occurrence]bool{}
	spanWinner := map[unit.Span]bool{}
	for _, finding := range findings {
		key := occurrence{fingerprint: finding.Fingerprint, start: finding.Span.Start}
		if seen[key] {
			continue
		}
		seen[key] = true
		if spanWinner[finding.Span] {
			superseded = append(superseded, finding)
			continue
		}
		spanWinner[finding.Span] = true
		kept = append(kept, finding)
	}
	return kept, superseded
}
