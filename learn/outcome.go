package learn

import "time"

// Result tags the terminal disposition of one fix attempt
type Result string

const (
	// ResultAppliedClean means the fix applied and the re-check found no regression
	ResultAppliedClean Result = "applied_clean"
	// ResultAppliedReverted means the fix applied but was later reverted externally
	ResultAppliedReverted Result = "applied_reverted"
	// ResultAppliedRegressed means the fix applied but its own re-check found a new or recurring defect
	ResultAppliedRegressed Result = "applied_regressed"
	// ResultSkippedConflict means the fix lost a span conflict to another transformation
	ResultSkippedConflict Result = "skipped_conflict"
	// ResultSkippedUnsafe means the rule declined to fix, its fixer failed, or the unit timed out
	ResultSkippedUnsafe Result = "skipped_unsafe"
)

// Outcome records the disposition of one finding. Outcomes are append-only:
// they are never mutated after being recorded.
type Outcome struct {
	Fingerprint string    `yaml:"fingerprint"`
	RuleID      string    `yaml:"ruleId"`
	UnitID      string    `yaml:"unitId,omitempty"`
	Result      Result    `yaml:"result"`
	At          time.Time `yaml:"at"`
}

// terminal reports whether the outcome counts toward the clean ratio: it was
// actually applied, as opposed to skipped before application
func (o Outcome) terminal() bool {
	switch o.Result {
	case ResultAppliedClean, ResultAppliedReverted, ResultAppliedRegressed:
		return true
	}
	return false
}
