package fix

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/viant/autofix/detect"
	"github.com/viant/autofix/learn"
	"github.com/viant/autofix/rule"
	"github.com/viant/autofix/unit"
	"testing"
)

func compileRules(t *testing.T, defs ...rule.Definition) []*rule.Rule {
	t.Helper()
	repo, errors := rule.New(defs)
	assert.Empty(t, errors)
	return repo.Rules()
}

func resultsByRule(outcomes []learn.Outcome) map[string]learn.Result {
	byRule := map[string]learn.Result{}
	for _, outcome := range outcomes {
		byRule[outcome.RuleID] = outcome.Result
	}
	return byRule
}

func TestApply_MissingOperatorSpacing(t *testing.T) {
	active := compileRules(t, rule.Definition{
		ID:                "assign_spacing",
		Pattern:           `(?m)^([ \t]*)([A-Za-z_][\w.]*)=([^=\s][^\n]*)$`,
		FixTemplate:       `${1}${2} = ${3}`,
		InitialConfidence: 0.9,
	})
	u := unit.New("app.py", "x=1\n")
	detection := detect.Detect(u, active)
	assert.Len(t, detection.Findings, 1)

	result := NewApplier(nil).Apply(context.Background(), u, detection.Findings, active)
	assert.Equal(t, "x = 1\n", u.Current)
	assert.Len(t, result.Outcomes, 1)
	assert.Equal(t, learn.ResultAppliedClean, result.Outcomes[0].Result)
}

func TestApply_RepeatedDefectInstancesAllFixed(t *testing.T) {
	// two instances of one defect share a fingerprint but are independent
	// findings; both get fixed in one pass and both count as clean
	active := compileRules(t, rule.Definition{
		ID:                "assign_spacing",
		Pattern:           `(?m)^([ \t]*)([A-Za-z_][\w.]*)=([^=\s][^\n]*)$`,
		FixTemplate:       `${1}${2} = ${3}`,
		InitialConfidence: 0.9,
	})
	u := unit.New("app.py", "x=1\nx=1\n")
	detection := detect.Detect(u, active)
	assert.Len(t, detection.Findings, 2)
	assert.Equal(t, detection.Findings[0].Fingerprint, detection.Findings[1].Fingerprint)

	result := NewApplier(nil).Apply(context.Background(), u, detection.Findings, active)
	assert.Equal(t, "x = 1\nx = 1\n", u.Current)
	assert.Len(t, result.Outcomes, 2)
	for _, outcome := range result.Outcomes {
		assert.Equal(t, learn.ResultAppliedClean, outcome.Result)
	}
}

func TestApply_ExpiredContextSkipsFindings(t *testing.T) {
	active := compileRules(t, rule.Definition{
		ID:                "none_compare",
		Pattern:           `([\w.]+)\s*==\s*None`,
		FixTemplate:       `${1} is None`,
		InitialConfidence: 0.9,
	})
	u := unit.New("app.py", "if a == None:\n")
	detection := detect.Detect(u, active)
	assert.Len(t, detection.Findings, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := NewApplier(nil).Apply(ctx, u, detection.Findings, active)
	assert.Equal(t, "if a == None:\n", u.Current)
	assert.Empty(t, result.Accepted)
	assert.Len(t, result.Outcomes, 1)
	assert.Equal(t, learn.ResultSkippedUnsafe, result.Outcomes[0].Result)
}

func TestApply_OverlapResolvedByConfidence(t *testing.T) {
	// spans [10,14) and [12,18) overlap; the 0.8 rule wins the slot
	active := compileRules(t,
		rule.Definition{ID: "strong", Pattern: `abcd`, FixTemplate: `ABCD`, InitialConfidence: 0.8},
		rule.Definition{ID: "weak", Pattern: `cdefgh`, FixTemplate: `CDEFGH`, InitialConfidence: 0.6},
	)
	u := unit.New("f.txt", "0123456789abcdefghij")
	detection := detect.Detect(u, active)
	assert.Len(t, detection.Findings, 2)
	assert.Equal(t, unit.Span{Start: 10, End: 14}, detection.Findings[0].Span)
	assert.Equal(t, unit.Span{Start: 12, End: 18}, detection.Findings[1].Span)

	result := NewApplier(nil).Apply(context.Background(), u, detection.Findings, active)
	byRule := resultsByRule(result.Outcomes)
	assert.Equal(t, learn.ResultAppliedClean, byRule["strong"])
	assert.Equal(t, learn.ResultSkippedConflict, byRule["weak"])
	assert.Equal(t, "0123456789ABCDefghij", u.Current)
}

func TestApply_Idempotent(t *testing.T) {
	active := compileRules(t, rule.Definition{
		ID:          "none_compare",
		Pattern:     `([\w.]+)\s*==\s*None`,
		FixTemplate: `${1} is None`,
	})
	u := unit.New("app.py", "if a == None and b == None:\n")
	applier := NewApplier(nil)

	first := applier.Apply(context.Background(), u, detect.Detect(u, active).Findings, active)
	assert.Len(t, first.Accepted, 2)
	assert.Equal(t, "if a is None and b is None:\n", u.Current)

	second := applier.Apply(context.Background(), u, detect.Detect(u, active).Findings, active)
	assert.Empty(t, second.Accepted)
	assert.Equal(t, "if a is None and b is None:\n", u.Current)
}

func TestApply_AcceptedSpansNeverOverlap(t *testing.T) {
	active := compileRules(t,
		rule.Definition{ID: "a", Pattern: `aa+`, FixTemplate: `A`, InitialConfidence: 0.9},
		rule.Definition{ID: "b", Pattern: `a[ab]`, FixTemplate: `B`, InitialConfidence: 0.5},
	)
	u := unit.New("f.txt", "aaab aab ab aaaa")
	detection := detect.Detect(u, active)

	result := NewApplier(nil).Apply(context.Background(), u, detection.Findings, active)
	for i := 0; i < len(result.Accepted); i++ {
		for j := i + 1; j < len(result.Accepted); j++ {
			assert.False(t, result.Accepted[i].Span.Overlaps(result.Accepted[j].Span),
				"accepted transformations %d and %d overlap", i, j)
		}
	}
}

func TestApply_RegressionDowngradesOutcome(t *testing.T) {
	// the fix reintroduces the defect it removes, so the re-check flags it
	active := compileRules(t, rule.Definition{
		ID:          "self_defeating",
		Pattern:     `foo`,
		FixTemplate: `foofoo`,
	})
	u := unit.New("f.txt", "a foo b")
	detection := detect.Detect(u, active)

	result := NewApplier(nil).Apply(context.Background(), u, detection.Findings, active)
	assert.Len(t, result.Outcomes, 1)
	assert.Equal(t, learn.ResultAppliedRegressed, result.Outcomes[0].Result)
}

func TestApply_DetectOnlyIsSkippedUnsafe(t *testing.T) {
	active := compileRules(t, rule.Definition{ID: "marker", Pattern: `FIXME`, DetectOnly: true})
	u := unit.New("f.txt", "x // FIXME")
	detection := detect.Detect(u, active)

	result := NewApplier(nil).Apply(context.Background(), u, detection.Findings, active)
	assert.Len(t, result.Outcomes, 1)
	assert.Equal(t, learn.ResultSkippedUnsafe, result.Outcomes[0].Result)
	assert.Equal(t, "x // FIXME", u.Current)
}
