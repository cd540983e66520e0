package environment

import "sort"

// Profile holds the set of detected environment tags with a confidence
// score per tag in (0,1]. An empty profile is valid and simply degrades
// rule activation to environment-agnostic rules.
type Profile struct {
	Scores map[string]float64 `yaml:"scores"`
	// Module is the Go module path when a go.mod unit is present,
	// used downstream to resolve intra-module import references.
	Module string `yaml:"module,omitempty"`
}

// Has reports whether a tag was detected
func (p Profile) Has(tag string) bool {
	return p.Scores[tag] > 0
}

// Tags returns the detected tags in sorted order
func (p Profile) Tags() []string {
	tags := make([]string, 0, len(p.Scores))
	for tag := range p.Scores {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
