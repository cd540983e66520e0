package session

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/viant/autofix/fix"
	"github.com/viant/autofix/learn"
	"github.com/viant/autofix/unit"
	"testing"
	"time"
)

func testDefinitions() []Definition {
	return []Definition{
		{
			ID:                "assign_spacing",
			Pattern:           `(?m)^([ \t]*)([A-Za-z_][\w.]*)=([^=\s][^\n]*)$`,
			FixTemplate:       `${1}${2} = ${3}`,
			InitialConfidence: 0.9,
		},
		{
			ID:                "none_compare",
			Pattern:           `([\w.]+)\s*==\s*None`,
			FixTemplate:       `${1} is None`,
			InitialConfidence: 0.85,
		},
	}
}

func TestSession_EmptyCollection(t *testing.T) {
	session := New(WithDefinitions(testDefinitions()))
	report := session.Run(context.Background(), nil)

	assert.Equal(t, PhaseReported, report.Phase)
	assert.Empty(t, report.Units)
	assert.Zero(t, report.TotalFindings())
	assert.Len(t, report.Faults, 1)
	assert.Equal(t, "input", report.Faults[0].Stage)
	// the session is reusable after the diagnostic report
	assert.Equal(t, PhaseIdle, session.Phase())
}

func TestSession_Run(t *testing.T) {
	session := New(WithDefinitions(testDefinitions()))
	input := []*unit.CodeUnit{
		unit.New("app.py", "x=1\nif flag == None:\n    pass\n"),
	}
	report := session.Run(context.Background(), input)

	assert.Equal(t, PhaseReported, report.Phase)
	assert.Len(t, report.Units, 1)
	assert.True(t, report.Units[0].Changed)
	assert.Equal(t, "x = 1\nif flag is None:\n    pass\n", report.Units[0].Final)
	for _, finding := range report.Units[0].Findings {
		assert.Equal(t, ResolutionFixed, finding.Resolution)
	}
	// the input collection is never mutated
	assert.Equal(t, "x=1\nif flag == None:\n    pass\n", input[0].Current)

	// clean applications lift confidence toward the observed ratio
	assert.InDelta(t, 0.93, report.Confidence["assign_spacing"].Value, 1e-9)
	assert.InDelta(t, 0.895, report.Confidence["none_compare"].Value, 1e-9)
	assert.Equal(t, 1, report.Confidence["assign_spacing"].Updates)
	assert.Empty(t, report.Faults)
}

func TestSession_ReportsImportCycle(t *testing.T) {
	session := New(WithDefinitions(testDefinitions()))
	report := session.Run(context.Background(), []*unit.CodeUnit{
		unit.New("a.py", "import b\nx=1\n"),
		unit.New("b.py", "import a\n"),
	})

	assert.Equal(t, [][]string{{"a.py", "b.py"}}, report.Graph.Cycles)
	assert.Equal(t, "import b\nx = 1\n", report.Units[0].Final)
}

func TestSession_EnvironmentGatesTaggedRules(t *testing.T) {
	defs := []Definition{{
		ID:                "django_only",
		Pattern:           `FIXME_DJANGO`,
		DetectOnly:        true,
		EnvironmentTags:   []string{"django"},
		InitialConfidence: 0.9,
	}}

	plain := New(WithDefinitions(defs)).
		Run(context.Background(), []*unit.CodeUnit{unit.New("a.py", "FIXME_DJANGO\n")})
	assert.Zero(t, plain.TotalFindings())

	tagged := unit.New("a.py", "FIXME_DJANGO\n")
	tagged.Tags = []string{"django"}
	matched := New(WithDefinitions(defs)).
		Run(context.Background(), []*unit.CodeUnit{tagged})
	assert.Equal(t, 1, matched.TotalFindings())
}

func TestSession_ConfidenceFloorExcludesRule(t *testing.T) {
	state := learn.NewState()
	state.Confidences["assign_spacing"] = learn.Confidence{Value: 0.1, Updates: 5}

	session := New(WithDefinitions(testDefinitions()), WithState(state))
	report := session.Run(context.Background(), []*unit.CodeUnit{
		unit.New("app.py", "x=1\n"),
	})

	// below the activation floor the rule neither detects nor fixes
	assert.Zero(t, report.TotalFindings())
	assert.Equal(t, "x=1\n", report.Units[0].Final)
	assert.False(t, report.Units[0].Changed)
}

func TestSession_UnitDeadlineSkipsPendingFindings(t *testing.T) {
	session := New(WithDefinitions(testDefinitions()), WithUnitTimeout(time.Nanosecond))
	report := session.Run(context.Background(), []*unit.CodeUnit{
		unit.New("app.py", "x=1\n"),
	})

	// the finding is still reported, the fix is not applied
	assert.False(t, report.Units[0].Changed)
	assert.Equal(t, "x=1\n", report.Units[0].Final)
	assert.Equal(t, 1, report.TotalFindings())
	assert.Equal(t, ResolutionUnsafe, report.Units[0].Findings[0].Resolution)
	assert.Len(t, report.Units[0].Outcomes, 1)
	assert.Equal(t, learn.ResultSkippedUnsafe, report.Units[0].Outcomes[0].Result)

	deadlineFault := false
	for _, fault := range report.Faults {
		if fault.Stage == "unit" && fault.UnitID == "app.py" {
			deadlineFault = true
		}
	}
	assert.True(t, deadlineFault)
	// skipped outcomes never feed the learner
	assert.Equal(t, 0, report.Confidence["assign_spacing"].Updates)
}

func TestSession_CancelledContextStillReports(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	session := New(WithDefinitions(testDefinitions()))
	report := session.Run(ctx, []*unit.CodeUnit{
		unit.New("a.py", "x=1\n"),
		unit.New("b.py", "y=2\n"),
	})

	assert.Equal(t, PhaseReported, report.Phase)
	assert.Len(t, report.Units, 2)
	unitFaults := 0
	for _, fault := range report.Faults {
		if fault.Stage == "unit" {
			unitFaults++
		}
	}
	assert.Equal(t, 2, unitFaults)
	for _, unitReport := range report.Units {
		assert.False(t, unitReport.Changed)
		assert.Empty(t, unitReport.Findings)
	}
}

func TestSession_CancellationKeepsCompletedUnits(t *testing.T) {
	session := New(WithDefinitions(testDefinitions()))
	active := session.repo.ActiveSubset(nil, nil, 0)
	applier := fix.NewApplier(nil)
	ctx, cancel := context.WithCancel(context.Background())

	completed := session.processUnit(ctx, unit.New("a.py", "x=1\n"), active, applier)
	cancel()
	interrupted := session.processUnit(ctx, unit.New("b.py", "y=2\n"), active, applier)

	// the unit finished before cancellation keeps its result
	assert.Equal(t, "x = 1\n", completed.unit.Current)
	assert.Len(t, completed.outcomes, 1)
	assert.Equal(t, learn.ResultAppliedClean, completed.outcomes[0].Result)

	assert.False(t, interrupted.unit.Changed())
	assert.Empty(t, interrupted.findings)
	assert.Len(t, interrupted.faults, 1)
	assert.Equal(t, "unit", interrupted.faults[0].Stage)
}

func TestSession_DeterministicAcrossWorkerPools(t *testing.T) {
	input := func() []*unit.CodeUnit {
		return []*unit.CodeUnit{
			unit.New("a.py", "a=1\nb == None\n"),
			unit.New("b.py", "import a\nc=2\n"),
			unit.New("c.py", "d=3\ne=4\nf == None\n"),
		}
	}
	first := New(WithDefinitions(testDefinitions()), WithWorkers(1)).
		Run(context.Background(), input())
	second := New(WithDefinitions(testDefinitions()), WithWorkers(4)).
		Run(context.Background(), input())

	assert.Equal(t, len(first.Units), len(second.Units))
	for i := range first.Units {
		assert.Equal(t, first.Units[i].UnitID, second.Units[i].UnitID)
		assert.Equal(t, first.Units[i].Final, second.Units[i].Final)
		assert.Equal(t, first.Units[i].Findings, second.Units[i].Findings)
	}
	assert.Equal(t, first.Confidence, second.Confidence)
	assert.Equal(t, first.Graph, second.Graph)
}

func TestSession_StateCarriesAcrossRuns(t *testing.T) {
	session := New(WithDefinitions(testDefinitions()))
	ctx := context.Background()

	session.Run(ctx, []*unit.CodeUnit{unit.New("a.py", "x=1\n")})
	afterFirst := session.State().Confidences["assign_spacing"]
	session.Run(ctx, []*unit.CodeUnit{unit.New("b.py", "y=2\n")})
	afterSecond := session.State().Confidences["assign_spacing"]

	assert.Equal(t, 1, afterFirst.Updates)
	assert.Equal(t, 2, afterSecond.Updates)
	assert.Greater(t, afterSecond.Value, afterFirst.Value)
}

func TestReport_YAML(t *testing.T) {
	session := New(WithDefinitions(testDefinitions()))
	report := session.Run(context.Background(), []*unit.CodeUnit{
		unit.New("app.py", "x=1\n"),
	})
	data, err := report.YAML()
	assert.NoError(t, err)
	assert.Contains(t, string(data), "phase: reported")
	assert.Contains(t, string(data), "assign_spacing")
}
