// Package autofix is a rule-based source-code correction engine with
// adaptive learning and cross-file dependency analysis. It scans a code unit
// collection, detects defects via a declarative rule catalog, applies
// non-overlapping fixes transactionally, adapts per-rule confidence from fix
// outcomes, and maps inter-file references into a dependency graph.
//
// The engine is a library: it produces a session report and has no
// presentation surface of its own.
package autofix

import (
	"context"
	"fmt"

	"github.com/viant/autofix/learn"
	"github.com/viant/autofix/session"
)

// New creates a correction session with the built-in rule catalog
func New(options ...session.Option) *session.Session {
	return session.New(options...)
}

// Run loads a code unit collection from the supplied location, runs one
// correction session over it, and returns the session report
func Run(ctx context.Context, location string, options ...session.Option) (*session.Report, error) {
	units, err := session.NewLoader().Load(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	return session.New(options...).Run(ctx, units), nil
}

// RunWithState loads prior learning state from stateURL, runs one session
// over the collection at location, and persists the updated state back to
// stateURL, giving rule confidence continuity across runs. A persistence
// failure returns the completed report together with the error.
func RunWithState(ctx context.Context, location, stateURL string, options ...session.Option) (*session.Report, error) {
	store := learn.NewStore()
	state, err := store.Load(ctx, stateURL)
	if err != nil {
		return nil, err
	}
	units, err := session.NewLoader().Load(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to load collection: %w", err)
	}
	correction := session.New(append([]session.Option{session.WithState(state)}, options...)...)
	report := correction.Run(ctx, units)
	if err := store.Save(ctx, stateURL, correction.State()); err != nil {
		return report, err
	}
	return report, nil
}
