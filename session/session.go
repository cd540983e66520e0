package session

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/viant/autofix/depgraph"
	"github.com/viant/autofix/detect"
	"github.com/viant/autofix/environment"
	"github.com/viant/autofix/fix"
	"github.com/viant/autofix/learn"
	"github.com/viant/autofix/rule"
	"github.com/viant/autofix/unit"
	"golang.org/x/sync/errgroup"
)

// Phase is the correction session state machine position
type Phase string

const (
	PhaseIdle                Phase = "idle"
	PhaseEnvironmentDetected Phase = "environment_detected"
	PhasePerUnitProcessing   Phase = "per_unit_processing"
	PhaseDependencyAnalyzed  Phase = "dependency_analyzed"
	PhaseReported            Phase = "reported"
)

const (
	defaultUnitTimeout     = 30 * time.Second
	defaultConfidenceFloor = 0.2
)

// Session orchestrates one correction run: environment detection, rule
// filtering, per-unit detection and fixing over a bounded worker pool,
// confidence learning, and dependency analysis. Any fault in one unit or one
// rule lands in the report; only an empty collection short-circuits, and even
// that produces a diagnostic report rather than an error.
type Session struct {
	repo        *rule.Repository
	ruleErrors  []error
	detector    *environment.Detector
	learner     *learn.Learner
	state       *learn.State
	workers     int
	unitTimeout time.Duration
	floor       float64

	mux   sync.RWMutex
	phase Phase
}

// Option customizes a session
type Option func(*Session)

// WithDefinitions replaces the rule catalog with the supplied definitions
func WithDefinitions(defs []Definition) Option {
	return func(s *Session) {
		s.repo, s.ruleErrors = rule.New(defs)
	}
}

// WithRepository supplies a pre-built rule repository
func WithRepository(repo *rule.Repository) Option {
	return func(s *Session) {
		s.repo = repo
	}
}

// WithState seeds the session with a prior learning state snapshot
func WithState(state *learn.State) Option {
	return func(s *Session) {
		if state != nil {
			s.state = state
		}
	}
}

// WithLearner replaces the default learner
func WithLearner(learner *learn.Learner) Option {
	return func(s *Session) {
		s.learner = learner
	}
}

// WithWorkers bounds the per-unit worker pool
func WithWorkers(workers int) Option {
	return func(s *Session) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

// WithUnitTimeout bounds the processing time of a single unit
func WithUnitTimeout(timeout time.Duration) Option {
	return func(s *Session) {
		if timeout > 0 {
			s.unitTimeout = timeout
		}
	}
}

// WithConfidenceFloor sets the confidence below which a rule is excluded
// from the active subset
func WithConfidenceFloor(floor float64) Option {
	return func(s *Session) {
		s.floor = floor
	}
}

// Definition aliases the rule definition record for callers assembling
// sessions without importing the rule package
type Definition = rule.Definition

// New creates a session with the built-in rule catalog and defaults
func New(options ...Option) *Session {
	session := &Session{
		detector:    environment.New(),
		learner:     learn.NewLearner(),
		state:       learn.NewState(),
		workers:     runtime.GOMAXPROCS(0),
		unitTimeout: defaultUnitTimeout,
		floor:       defaultConfidenceFloor,
		phase:       PhaseIdle,
	}
	session.repo, session.ruleErrors = rule.New(rule.Builtin())
	for _, option := range options {
		option(session)
	}
	return session
}

// Phase returns the current state machine position
func (s *Session) Phase() Phase {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.phase
}

// State returns the learning state snapshot after the most recent run
func (s *Session) State() *learn.State {
	s.mux.RLock()
	defer s.mux.RUnlock()
	return s.state
}

func (s *Session) transition(phase Phase) {
	s.mux.Lock()
	s.phase = phase
	s.mux.Unlock()
}

// unitResult is the exclusively-owned working set of one per-unit task
type unitResult struct {
	unit       *unit.CodeUnit
	findings   []detect.Finding
	superseded []detect.Finding
	outcomes   []learn.Outcome
	faults     []detect.Fault
}

// Run executes one correction session over the collection. The returned
// report is always non-nil; processing faults are report data. Cancelling
// the context keeps results of units that already completed.
func (s *Session) Run(ctx context.Context, input []*unit.CodeUnit) *Report {
	defer s.transition(PhaseIdle)
	report := &Report{Phase: PhaseReported}
	for _, err := range s.ruleErrors {
		report.Faults = append(report.Faults, detect.Fault{Stage: "rules", Message: err.Error()})
	}
	if len(input) == 0 {
		report.Faults = append(report.Faults, detect.Fault{Stage: "input", Message: "empty code unit collection"})
		report.Confidence = s.confidenceSnapshot()
		s.transition(PhaseReported)
		return report
	}

	units := make([]*unit.CodeUnit, len(input))
	for i, u := range input {
		units[i] = u.Clone()
	}

	profile := s.detector.Detect(units)
	report.Profile = profile
	s.transition(PhaseEnvironmentDetected)

	prior := s.State()
	confidence := func(ruleID string) float64 {
		initial := 0.5
		if r := s.repo.Lookup(ruleID); r != nil {
			initial = r.InitialConfidence
		}
		return prior.ConfidenceFor(ruleID, initial)
	}
	active := s.repo.ActiveSubset(s.detector.FilterFor(profile), confidence, s.floor)
	applier := fix.NewApplier(confidence)

	s.transition(PhasePerUnitProcessing)
	results := make([]*unitResult, len(units))
	group := &errgroup.Group{}
	group.SetLimit(s.workers)
	for i := range units {
		i := i
		group.Go(func() error {
			results[i] = s.processUnit(ctx, units[i], active, applier)
			return nil
		})
	}
	_ = group.Wait()

	// the learner step is serialized: it runs only after every per-unit task
	// completed, and replaces the state with a fresh snapshot
	var outcomes []learn.Outcome
	for _, result := range results {
		outcomes = append(outcomes, result.outcomes...)
	}
	next := s.learner.Record(prior, outcomes...)
	next = s.learner.Update(next, func(ruleID string) float64 {
		if r := s.repo.Lookup(ruleID); r != nil {
			return r.InitialConfidence
		}
		return 0.5
	})
	s.mux.Lock()
	s.state = next
	s.mux.Unlock()

	// dependency edges must reflect post-fix content
	graph := depgraph.Build(ctx, units)
	s.transition(PhaseDependencyAnalyzed)
	report.Graph = GraphSummary{
		Edges:            graph.Edges,
		Cycles:           graph.Cycles(),
		Unresolved:       graph.Unresolved,
		DuplicateSymbols: graph.DuplicateSymbols(),
	}
	for _, fault := range graph.Faults {
		report.Faults = append(report.Faults, detect.Fault{UnitID: fault.UnitID, Stage: "depgraph", Message: fault.Message})
	}
	report.CrossFile = s.revalidate(graph, units, results, active)

	for _, result := range results {
		report.Units = append(report.Units, s.unitReport(result))
		report.Faults = append(report.Faults, result.faults...)
	}
	report.Confidence = s.confidenceSnapshot()
	s.transition(PhaseReported)
	return report
}

// processUnit runs detection and fixing for one unit within its own
// deadline. A unit that exceeds its deadline yields skipped_unsafe outcomes
// for its pending findings instead of stalling the session; the applier
// consults the same deadline throughout its pass.
func (s *Session) processUnit(ctx context.Context, u *unit.CodeUnit, active []*rule.Rule, applier *fix.Applier) *unitResult {
	result := &unitResult{unit: u}
	if ctx.Err() != nil {
		result.faults = append(result.faults, detect.Fault{UnitID: u.ID, Stage: "unit", Message: "session cancelled before processing"})
		return result
	}
	unitCtx, cancel := context.WithTimeout(ctx, s.unitTimeout)
	defer cancel()

	detection := detect.Detect(u, active)
	result.findings = detection.Findings
	result.superseded = detection.Superseded
	result.faults = append(result.faults, detection.Faults...)

	fixed := applier.Apply(unitCtx, u, detection.Findings, active)
	result.outcomes = fixed.Outcomes
	result.faults = append(result.faults, fixed.Faults...)
	if unitCtx.Err() != nil {
		result.faults = append(result.faults, detect.Fault{UnitID: u.ID, Stage: "unit", Message: "unit deadline exceeded, pending findings skipped"})
	}
	return result
}

// revalidate re-runs detection on units impacted by a changed dependency and
// reports findings that were not present before the session as cross-file
// findings
func (s *Session) revalidate(graph *depgraph.Graph, units []*unit.CodeUnit, results []*unitResult, active []*rule.Rule) []detect.Finding {
	byID := map[string]*unitResult{}
	for _, result := range results {
		byID[result.unit.ID] = result
	}
	impacted := map[string]bool{}
	for _, u := range units {
		if !u.Changed() {
			continue
		}
		for _, dependent := range graph.ImpactedBy(u.ID) {
			impacted[dependent] = true
		}
	}
	var crossFile []detect.Finding
	for _, u := range units {
		if !impacted[u.ID] {
			continue
		}
		known := map[string]bool{}
		if result := byID[u.ID]; result != nil {
			for _, finding := range result.findings {
				known[finding.Fingerprint] = true
			}
		}
		recheck := detect.Detect(u, active)
		for _, finding := range recheck.Findings {
			if !known[finding.Fingerprint] {
				crossFile = append(crossFile, finding)
			}
		}
	}
	return crossFile
}

// unitReport assembles the per-unit report section, tagging each finding
// with its resolution
func (s *Session) unitReport(result *unitResult) UnitReport {
	resolution := map[string]Resolution{}
	for _, outcome := range result.outcomes {
		switch outcome.Result {
		case learn.ResultAppliedClean:
			resolution[outcome.Fingerprint] = ResolutionFixed
		case learn.ResultAppliedRegressed:
			resolution[outcome.Fingerprint] = ResolutionRegressed
		case learn.ResultSkippedConflict:
			resolution[outcome.Fingerprint] = ResolutionConflict
		case learn.ResultSkippedUnsafe:
			resolution[outcome.Fingerprint] = ResolutionUnsafe
		}
	}
	unitReport := UnitReport{
		UnitID:   result.unit.ID,
		Original: result.unit.Original,
		Final:    result.unit.Current,
		Changed:  result.unit.Changed(),
		Outcomes: result.outcomes,
	}
	for _, finding := range result.findings {
		tag := resolution[finding.Fingerprint]
		if tag == "" {
			tag = ResolutionUnsafe
		}
		unitReport.Findings = append(unitReport.Findings, FindingReport{Finding: finding, Resolution: tag})
	}
	for _, finding := range result.superseded {
		unitReport.Findings = append(unitReport.Findings, FindingReport{Finding: finding, Resolution: ResolutionSuperseded})
	}
	return unitReport
}

// confidenceSnapshot merges learned confidences with initial confidences of
// rules that have no history yet
func (s *Session) confidenceSnapshot() map[string]learn.Confidence {
	state := s.State()
	snapshot := make(map[string]learn.Confidence, s.repo.Size())
	for _, r := range s.repo.Rules() {
		if confidence, ok := state.Confidences[r.ID]; ok {
			snapshot[r.ID] = confidence
			continue
		}
		snapshot[r.ID] = learn.Confidence{Value: r.InitialConfidence}
	}
	return snapshot
}
