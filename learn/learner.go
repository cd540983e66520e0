package learn

import (
	"sort"
)

const (
	// confidence is clamped so a rule is never fully disabled nor fully trusted
	minConfidence = 0.05
	maxConfidence = 0.99

	defaultWindow = 50
	defaultAlpha  = 0.3
)

// Confidence is one rule's adaptive weight and its update count
type Confidence struct {
	Value   float64 `yaml:"value"`
	Updates int     `yaml:"updates"`
}

// State is the persisted learning state: per-rule confidence plus the
// bounded recent outcome window. It is an explicit value passed into and out
// of the learner; the learner never mutates a state it was given.
type State struct {
	Confidences map[string]Confidence `yaml:"confidences"`
	Outcomes    []Outcome             `yaml:"outcomes,omitempty"`
}

// NewState returns an empty learning state
func NewState() *State {
	return &State{Confidences: map[string]Confidence{}}
}

// Clone returns a deep copy of the state
func (s *State) Clone() *State {
	clone := &State{Confidences: make(map[string]Confidence, len(s.Confidences))}
	for id, confidence := range s.Confidences {
		clone.Confidences[id] = confidence
	}
	clone.Outcomes = append([]Outcome(nil), s.Outcomes...)
	return clone
}

// ConfidenceFor returns the current confidence of a rule, falling back to
// the supplied initial value when the rule has no history yet
func (s *State) ConfidenceFor(ruleID string, initial float64) float64 {
	if confidence, ok := s.Confidences[ruleID]; ok {
		return confidence.Value
	}
	return initial
}

// Learner aggregates fix outcomes and adapts per-rule confidence. The update
// runs once per session over a bounded recent window, never per finding, to
// avoid oscillation.
type Learner struct {
	window int
	alpha  float64
}

// LearnerOption customizes a learner
type LearnerOption func(*Learner)

// WithWindow bounds the per-rule outcome window considered by Update
func WithWindow(window int) LearnerOption {
	return func(l *Learner) {
		if window > 0 {
			l.window = window
		}
	}
}

// WithAlpha sets the exponential blend weight of the fresh clean ratio
func WithAlpha(alpha float64) LearnerOption {
	return func(l *Learner) {
		if alpha > 0 && alpha <= 1 {
			l.alpha = alpha
		}
	}
}

// NewLearner creates a learner with the supplied options
func NewLearner(options ...LearnerOption) *Learner {
	learner := &Learner{window: defaultWindow, alpha: defaultAlpha}
	for _, option := range options {
		option(learner)
	}
	return learner
}

// Record appends outcomes to the state's log and trims each rule's history
// to the learner window. It returns a new state; the input is unchanged.
func (l *Learner) Record(state *State, outcomes ...Outcome) *State {
	next := state.Clone()
	next.Outcomes = append(next.Outcomes, outcomes...)
	next.Outcomes = trimPerRule(next.Outcomes, l.window)
	return next
}

// Update recomputes per-rule confidence from the recorded outcome window:
// ratio = clean / (clean + reverted + regressed) over the window, blended
// into the prior with weight alpha and clamped to [0.05, 0.99]. Rules with
// no terminal outcome in the window keep their prior confidence. The input
// state is unchanged; a fresh snapshot is returned.
func (l *Learner) Update(state *State, initial func(ruleID string) float64) *State {
	next := state.Clone()
	clean := map[string]int{}
	terminal := map[string]int{}
	for _, outcome := range next.Outcomes {
		if !outcome.terminal() {
			continue
		}
		terminal[outcome.RuleID]++
		if outcome.Result == ResultAppliedClean {
			clean[outcome.RuleID]++
		}
	}
	ruleIDs := make([]string, 0, len(terminal))
	for ruleID := range terminal {
		ruleIDs = append(ruleIDs, ruleID)
	}
	sort.Strings(ruleIDs)
	for _, ruleID := range ruleIDs {
		prior := next.Confidences[ruleID].Value
		updates := next.Confidences[ruleID].Updates
		if updates == 0 {
			if initial != nil {
				prior = initial(ruleID)
			} else {
				prior = 0.5
			}
		}
		ratio := float64(clean[ruleID]) / float64(terminal[ruleID])
		value := (1-l.alpha)*prior + l.alpha*ratio
		next.Confidences[ruleID] = Confidence{Value: clamp(value), Updates: updates + 1}
	}
	return next
}

func clamp(value float64) float64 {
	if value < minConfidence {
		return minConfidence
	}
	if value > maxConfidence {
		return maxConfidence
	}
	return value
}

// trimPerRule keeps only the most recent window outcomes per rule,
// preserving the original append order
func trimPerRule(outcomes []Outcome, window int) []Outcome {
	counts := map[string]int{}
	for _, outcome := range outcomes {
		counts[outcome.RuleID]++
	}
	trimmed := make([]Outcome, 0, len(outcomes))
	for _, outcome := range outcomes {
		if counts[outcome.RuleID] > window {
			counts[outcome.RuleID]--
			continue
		}
		trimmed = append(trimmed, outcome)
	}
	return trimmed
}
