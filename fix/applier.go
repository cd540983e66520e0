package fix

import (
	"context"
	"fmt"
	"github.com/viant/autofix/detect"
	"github.com/viant/autofix/learn"
	"github.com/viant/autofix/rule"
	"github.com/viant/autofix/unit"
	"sort"
	"time"
)

// Transformation is a concrete text replacement proposed to fix one finding
type Transformation struct {
	UnitID      string    `yaml:"unitId"`
	Span        unit.Span `yaml:"span"`
	Replacement string    `yaml:"replacement"`
	Fingerprint string    `yaml:"fingerprint"`
	RuleID      string    `yaml:"ruleId"`
	Confidence  float64   `yaml:"confidence"`
	// newSpan is the transformation's span within the fixed text,
	// needed by the regression re-check
	newSpan unit.Span
}

// Result carries the outcome of one unit's fix pass
type Result struct {
	Unit     *unit.CodeUnit
	Accepted []Transformation
	Outcomes []learn.Outcome
	Faults   []detect.Fault
}

// Applier converts a finding list into non-overlapping transformations and
// applies them transactionally, one unit at a time
type Applier struct {
	confidence rule.ConfidenceFunc
	now        func() time.Time
}

// NewApplier creates an applier. The confidence func ranks conflicting
// transformations; nil falls back to each rule's initial confidence.
func NewApplier(confidence rule.ConfidenceFunc) *Applier {
	return &Applier{confidence: confidence, now: time.Now}
}

// Apply fixes a unit in four steps: propose a transformation per finding,
// build the maximal non-overlapping accepted subset, splice the accepted
// transformations atomically, then re-run detection restricted to the fired
// rules to classify each applied fix as clean or regressed. A fixer failure
// declines that finding only; it never aborts the unit's pass. An expired
// context turns the remaining findings into skipped_unsafe outcomes and the
// unit's text stays untouched.
func (a *Applier) Apply(ctx context.Context, u *unit.CodeUnit, findings []detect.Finding, active []*rule.Rule) Result {
	result := Result{Unit: u}
	byID := map[string]*rule.Rule{}
	for _, r := range active {
		byID[r.ID] = r
	}

	var candidates []Transformation
	for _, finding := range findings {
		if ctx.Err() != nil {
			result.Outcomes = append(result.Outcomes, a.outcome(finding, learn.ResultSkippedUnsafe))
			continue
		}
		r := byID[finding.RuleID]
		if r == nil {
			result.Outcomes = append(result.Outcomes, a.outcome(finding, learn.ResultSkippedUnsafe))
			continue
		}
		replacement, ok, fault := a.propose(u, r, finding)
		if fault != nil {
			result.Faults = append(result.Faults, *fault)
		}
		if !ok {
			result.Outcomes = append(result.Outcomes, a.outcome(finding, learn.ResultSkippedUnsafe))
			continue
		}
		confidence := r.InitialConfidence
		if a.confidence != nil {
			confidence = a.confidence(r.ID)
		}
		candidates = append(candidates, Transformation{
			UnitID:      u.ID,
			Span:        finding.Span,
			Replacement: replacement,
			Fingerprint: finding.Fingerprint,
			RuleID:      finding.RuleID,
			Confidence:  confidence,
		})
	}

	accepted, conflicted := selectNonOverlapping(candidates)
	for _, loser := range conflicted {
		result.Outcomes = append(result.Outcomes, learn.Outcome{
			Fingerprint: loser.Fingerprint,
			RuleID:      loser.RuleID,
			UnitID:      loser.UnitID,
			Result:      learn.ResultSkippedConflict,
			At:          a.now(),
		})
	}
	if len(accepted) == 0 {
		return result
	}
	// a deadline hit between selection and splice declines the whole accepted
	// set; the unit is never left with a partial pass applied
	if ctx.Err() != nil {
		for _, pending := range accepted {
			result.Outcomes = append(result.Outcomes, learn.Outcome{
				Fingerprint: pending.Fingerprint,
				RuleID:      pending.RuleID,
				UnitID:      pending.UnitID,
				Result:      learn.ResultSkippedUnsafe,
				At:          a.now(),
			})
		}
		return result
	}

	fixed := splice(u.Current, accepted)
	u.Current = fixed
	result.Accepted = accepted

	// classify applied fixes by re-checking the fired rules only
	fired := firedRules(accepted, byID)
	before := map[string]bool{}
	for _, finding := range findings {
		before[finding.Fingerprint] = true
	}
	recheck := detect.Detect(u, fired)
	result.Faults = append(result.Faults, recheck.Faults...)
	for _, applied := range accepted {
		tag := learn.ResultAppliedClean
		if regressed(applied, recheck.Findings, before) {
			tag = learn.ResultAppliedRegressed
		}
		result.Outcomes = append(result.Outcomes, learn.Outcome{
			Fingerprint: applied.Fingerprint,
			RuleID:      applied.RuleID,
			UnitID:      applied.UnitID,
			Result:      tag,
			At:          a.now(),
		})
	}
	return result
}

// propose asks the rule's fixer for a replacement, converting a panic into
// a fault and a decline
func (a *Applier) propose(u *unit.CodeUnit, r *rule.Rule, finding detect.Finding) (replacement string, ok bool, fault *detect.Fault) {
	defer func() {
		if recovered := recover(); recovered != nil {
			replacement, ok = "", false
			fault = &detect.Fault{
				UnitID:  u.ID,
				RuleID:  r.ID,
				Stage:   "fix",
				Message: fmt.Sprintf("fixer failed: %v", recovered),
			}
		}
	}()
	replacement, ok = r.Fix(u.Current, finding.Match())
	return replacement, ok, nil
}

func (a *Applier) outcome(finding detect.Finding, tag learn.Result) learn.Outcome {
	return learn.Outcome{
		Fingerprint: finding.Fingerprint,
		RuleID:      finding.RuleID,
		UnitID:      finding.UnitID,
		Result:      tag,
		At:          a.now(),
	}
}

// selectNonOverlapping builds the maximal non-overlapping subset greedily by
// span start; candidates sharing a start are ranked by confidence, so the
// higher-confidence transformation wins the slot
func selectNonOverlapping(candidates []Transformation) (accepted []Transformation, conflicted []Transformation) {
	ordered := append([]Transformation(nil), candidates...)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Span.Start != ordered[j].Span.Start {
			return ordered[i].Span.Start < ordered[j].Span.Start
		}
		if ordered[i].Confidence != ordered[j].Confidence {
			return ordered[i].Confidence > ordered[j].Confidence
		}
		return ordered[i].RuleID < ordered[j].RuleID
	})
	lastEnd := -1
	for _, candidate := range ordered {
		if candidate.Span.Start < lastEnd {
			conflicted = append(conflicted, candidate)
			continue
		}
		accepted = append(accepted, candidate)
		lastEnd = candidate.Span.End
	}
	return accepted, conflicted
}

// splice applies the accepted transformations in one left-to-right pass,
// recording each transformation's span within the new text. Applying the
// same set to the same original text always yields the same result.
func splice(text string, accepted []Transformation) string {
	var out []byte
	prev := 0
	for i := range accepted {
		t := &accepted[i]
		out = append(out, text[prev:t.Span.Start]...)
		t.newSpan = unit.Span{Start: len(out), End: len(out) + len(t.Replacement)}
		out = append(out, t.Replacement...)
		prev = t.Span.End
	}
	out = append(out, text[prev:]...)
	return string(out)
}

// regressed reports whether a fix made things worse within the span it
// touched: its own defect reappeared there, or a defect unseen before the
// pass now intersects the replaced text. Findings elsewhere in the unit are
// other occurrences, not regressions of this fix.
func regressed(applied Transformation, after []detect.Finding, before map[string]bool) bool {
	for _, finding := range after {
		if !finding.Span.Overlaps(applied.newSpan) {
			continue
		}
		if finding.Fingerprint == applied.Fingerprint {
			return true
		}
		if !before[finding.Fingerprint] {
			return true
		}
	}
	return false
}

func firedRules(accepted []Transformation, byID map[string]*rule.Rule) []*rule.Rule {
	seen := map[string]bool{}
	var fired []*rule.Rule
	for _, t := range accepted {
		if seen[t.RuleID] {
			continue
		}
		seen[t.RuleID] = true
		if r := byID[t.RuleID]; r != nil {
			fired = append(fired, r)
		}
	}
	return fired
}
