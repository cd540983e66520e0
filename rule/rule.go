package rule

import (
	"regexp"
	"strings"
)

// Rule is a compiled, immutable correction rule. Its detector locates
// defect instances in a unit's text; its fixer expands the fix template
// against a detected match. Confidence is owned by the learner and is not
// stored here.
type Rule struct {
	Definition
	pattern *regexp.Regexp
}

// Compile validates a definition and compiles it into a rule
func Compile(def Definition) (*Rule, error) {
	if def.ID == "" {
		return nil, &DefinitionError{RuleID: def.ID, Reason: "missing rule id"}
	}
	if def.Pattern == "" {
		return nil, &DefinitionError{RuleID: def.ID, Reason: "missing pattern"}
	}
	if def.InitialConfidence < 0 || def.InitialConfidence > 1 {
		return nil, &DefinitionError{RuleID: def.ID, Reason: "initial confidence outside [0,1]"}
	}
	pattern, err := regexp.Compile(def.Pattern)
	if err != nil {
		return nil, &DefinitionError{RuleID: def.ID, Reason: "invalid pattern: " + err.Error()}
	}
	if def.Severity == "" {
		def.Severity = SeverityWarning
	}
	if !def.DetectOnly {
		if reason := validateTemplate(def.FixTemplate, pattern); reason != "" {
			return nil, &DefinitionError{RuleID: def.ID, Reason: reason}
		}
	}
	return &Rule{Definition: def, pattern: pattern}, nil
}

// Detect returns all matches of the rule pattern within text. Each match is
// a submatch index vector as produced by FindAllSubmatchIndex; match[0] and
// match[1] bound the defect span.
func (r *Rule) Detect(text string) [][]int {
	return r.pattern.FindAllStringSubmatchIndex(text, -1)
}

// Fix expands the rule fix template against one detected match and returns
// the replacement text for the match span. The second result is false when
// the rule declines to propose a fix.
func (r *Rule) Fix(text string, match []int) (string, bool) {
	if r.DetectOnly {
		return "", false
	}
	expanded := r.pattern.ExpandString(nil, r.FixTemplate, text, match)
	return string(expanded), true
}

// templateRef matches $1, ${1}, $name and ${name} template references
var templateRef = regexp.MustCompile(`\$(\{(\w+)\}|(\w+))`)

// validateTemplate checks that every capture group the fix template
// references is bound by the pattern
func validateTemplate(template string, pattern *regexp.Regexp) string {
	names := map[string]bool{}
	for _, name := range pattern.SubexpNames() {
		if name != "" {
			names[name] = true
		}
	}
	for _, ref := range templateRef.FindAllStringSubmatch(template, -1) {
		name := ref[2]
		if name == "" {
			name = ref[3]
		}
		if isDigits(name) {
			index := 0
			for _, ch := range name {
				index = index*10 + int(ch-'0')
			}
			if index > pattern.NumSubexp() {
				return "fix template references unbound group $" + name
			}
			continue
		}
		if !names[name] {
			return "fix template references unbound group $" + name
		}
	}
	return ""
}

func isDigits(s string) bool {
	return s != "" && strings.Trim(s, "0123456789") == ""
}
