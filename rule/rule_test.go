package rule

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		def     Definition
		wantErr string
	}{
		{
			name: "valid rule",
			def:  Definition{ID: "r1", Pattern: `(\w+)\s*==\s*None`, FixTemplate: `${1} is None`, InitialConfidence: 0.9},
		},
		{
			name:    "missing id",
			def:     Definition{Pattern: `x`},
			wantErr: "missing rule id",
		},
		{
			name:    "missing pattern",
			def:     Definition{ID: "r1"},
			wantErr: "missing pattern",
		},
		{
			name:    "invalid pattern",
			def:     Definition{ID: "r1", Pattern: `([a-z`},
			wantErr: "invalid pattern",
		},
		{
			name:    "fix template references unbound group",
			def:     Definition{ID: "r1", Pattern: `(\w+)`, FixTemplate: `${2}`},
			wantErr: "unbound group $2",
		},
		{
			name:    "fix template references unbound named group",
			def:     Definition{ID: "r1", Pattern: `(?P<lhs>\w+)`, FixTemplate: `${rhs}`},
			wantErr: "unbound group $rhs",
		},
		{
			name: "named group bound",
			def:  Definition{ID: "r1", Pattern: `(?P<lhs>\w+)=`, FixTemplate: `${lhs} =`},
		},
		{
			name:    "confidence out of range",
			def:     Definition{ID: "r1", Pattern: `x`, InitialConfidence: 1.5},
			wantErr: "initial confidence outside [0,1]",
		},
		{
			name: "detect only skips template validation",
			def:  Definition{ID: "r1", Pattern: `x`, FixTemplate: `${9}`, DetectOnly: true},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			compiled, err := Compile(tc.def)
			if tc.wantErr != "" {
				assert.Nil(t, compiled)
				assert.ErrorContains(t, err, tc.wantErr)
				var definitionErr *DefinitionError
				assert.ErrorAs(t, err, &definitionErr)
				return
			}
			assert.NoError(t, err)
			assert.NotNil(t, compiled)
		})
	}
}

func TestRule_Fix(t *testing.T) {
	compiled, err := Compile(Definition{
		ID:          "is_none",
		Pattern:     `([\w.]+)\s*==\s*None`,
		FixTemplate: `${1} is None`,
	})
	assert.NoError(t, err)

	text := `if value == None:`
	matches := compiled.Detect(text)
	assert.Len(t, matches, 1)
	replacement, ok := compiled.Fix(text, matches[0])
	assert.True(t, ok)
	assert.Equal(t, "value is None", replacement)
}

func TestRule_FixDeclines(t *testing.T) {
	compiled, err := Compile(Definition{ID: "marker", Pattern: `FIXME`, DetectOnly: true})
	assert.NoError(t, err)
	matches := compiled.Detect("// FIXME later")
	assert.Len(t, matches, 1)
	_, ok := compiled.Fix("// FIXME later", matches[0])
	assert.False(t, ok)
}

func TestRepository_FailsClosed(t *testing.T) {
	repo, errors := New([]Definition{
		{ID: "good", Pattern: `a`, InitialConfidence: 0.5},
		{ID: "bad", Pattern: `([`},
		{ID: "good", Pattern: `b`},
	})
	assert.Len(t, errors, 2)
	assert.Equal(t, 1, repo.Size())
	assert.NotNil(t, repo.Lookup("good"))
	assert.Nil(t, repo.Lookup("bad"))
}

func TestRepository_ActiveSubset(t *testing.T) {
	repo, errors := New([]Definition{
		{ID: "low", Pattern: `a`, Priority: 10, InitialConfidence: 0.1},
		{ID: "high", Pattern: `b`, Priority: 90, InitialConfidence: 0.9},
		{ID: "mid", Pattern: `c`, Priority: 50, InitialConfidence: 0.5, EnvironmentTags: []string{"python"}},
	})
	assert.Empty(t, errors)

	active := repo.ActiveSubset(nil, nil, 0.2)
	assert.Equal(t, []string{"high", "mid"}, ruleIDs(active))

	noPython := repo.ActiveSubset(func(r *Rule) bool {
		return len(r.EnvironmentTags) == 0
	}, nil, 0)
	assert.Equal(t, []string{"high", "low"}, ruleIDs(noPython))
}

func TestBuiltin(t *testing.T) {
	defs := Builtin()
	assert.GreaterOrEqual(t, len(defs), 50)
	repo, errors := New(defs)
	assert.Empty(t, errors)
	assert.Equal(t, len(defs), repo.Size())
}

func ruleIDs(rules []*Rule) []string {
	ids := make([]string, 0, len(rules))
	for _, r := range rules {
		ids = append(ids, r.ID)
	}
	return ids
}
