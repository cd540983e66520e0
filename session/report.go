package session

import (
	"github.com/viant/autofix/depgraph"
	"github.com/viant/autofix/detect"
	"github.com/viant/autofix/environment"
	"github.com/viant/autofix/learn"
	"gopkg.in/yaml.v3"
)

// Resolution tags how a finding ended up in the report
type Resolution string

const (
	ResolutionFixed      Resolution = "fixed"
	ResolutionRegressed  Resolution = "regressed"
	ResolutionConflict   Resolution = "skipped_conflict"
	ResolutionUnsafe     Resolution = "skipped_unsafe"
	ResolutionSuperseded Resolution = "superseded"
)

// FindingReport is a finding enriched with its resolution
type FindingReport struct {
	detect.Finding `yaml:",inline"`
	Resolution     Resolution `yaml:"resolution"`
}

// UnitReport is the per-unit section of the session report
type UnitReport struct {
	UnitID   string          `yaml:"unitId"`
	Original string          `yaml:"original"`
	Final    string          `yaml:"final"`
	Changed  bool            `yaml:"changed"`
	Findings []FindingReport `yaml:"findings,omitempty"`
	Outcomes []learn.Outcome `yaml:"outcomes,omitempty"`
}

// GraphSummary is the dependency analysis section of the session report
type GraphSummary struct {
	Edges            []depgraph.Edge              `yaml:"edges,omitempty"`
	Cycles           [][]string                   `yaml:"cycles,omitempty"`
	Unresolved       []depgraph.Reference         `yaml:"unresolved,omitempty"`
	DuplicateSymbols map[string][]depgraph.Symbol `yaml:"duplicateSymbols,omitempty"`
}

// Report is the sole artifact a correction session produces. Any
// presentation layer renders this report; the engine knows nothing about
// how it is displayed.
type Report struct {
	Phase      Phase                       `yaml:"phase"`
	Profile    environment.Profile         `yaml:"profile"`
	Units      []UnitReport                `yaml:"units,omitempty"`
	Confidence map[string]learn.Confidence `yaml:"confidence,omitempty"`
	Graph      GraphSummary                `yaml:"graph"`
	CrossFile  []detect.Finding            `yaml:"crossFile,omitempty"`
	Faults     []detect.Fault              `yaml:"faults,omitempty"`
}

// TotalFindings returns the number of reported findings across all units
func (r *Report) TotalFindings() int {
	total := 0
	for _, unitReport := range r.Units {
		total += len(unitReport.Findings)
	}
	return total
}

// YAML encodes the report
func (r *Report) YAML() ([]byte, error) {
	return yaml.Marshal(r)
}
