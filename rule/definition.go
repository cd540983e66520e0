package rule

import (
	"context"
	"fmt"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

// Category classifies the kind of defect a rule addresses
type Category string

const (
	CategoryStyle  Category = "style"
	CategoryBug    Category = "bug"
	CategoryCompat Category = "compat"
	CategoryPerf   Category = "perf"
)

// Severity ranks how serious a finding produced by a rule is
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Definition is the declarative record a rule is compiled from. Rules are
// added by writing definitions (built-in catalog, YAML files), never by
// touching engine code.
type Definition struct {
	ID                string   `yaml:"id"`
	Category          Category `yaml:"category"`
	Description       string   `yaml:"description"`
	Pattern           string   `yaml:"pattern"`
	FixTemplate       string   `yaml:"fixTemplate"`
	DetectOnly        bool     `yaml:"detectOnly,omitempty"`
	Priority          int      `yaml:"priority"`
	EnvironmentTags   []string `yaml:"environmentTags,omitempty"`
	InitialConfidence float64  `yaml:"initialConfidence"`
	Severity          Severity `yaml:"severity"`
}

// DefinitionError reports a structurally invalid rule definition. The
// offending rule is excluded from the repository; loading continues.
type DefinitionError struct {
	RuleID string
	Reason string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("invalid rule definition %q: %s", e.RuleID, e.Reason)
}

// LoadYAML parses rule definitions from a YAML document
func LoadYAML(data []byte) ([]Definition, error) {
	var defs []Definition
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse rule definitions: %w", err)
	}
	return defs, nil
}

// LoadURL reads rule definitions from the supplied location
func LoadURL(ctx context.Context, URL string) ([]Definition, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load rule definitions from %s: %w", URL, err)
	}
	return LoadYAML(data)
}
