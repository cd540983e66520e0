package learn

import (
	"context"
	"github.com/stretchr/testify/assert"
	"path"
	"testing"
	"time"
)

func TestStore_RoundTrip(t *testing.T) {
	store := NewStore()
	URL := path.Join(t.TempDir(), "autofix_state.yaml")

	state := NewState()
	state.Confidences["py_is_none"] = Confidence{Value: 0.87, Updates: 4}
	state.Confidences["trailing_whitespace"] = Confidence{Value: 0.95, Updates: 12}
	state.Outcomes = []Outcome{
		{
			Fingerprint: "a1b2c3",
			RuleID:      "py_is_none",
			UnitID:      "app.py",
			Result:      ResultAppliedClean,
			At:          time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC),
		},
		{
			Fingerprint: "d4e5f6",
			RuleID:      "trailing_whitespace",
			UnitID:      "util.py",
			Result:      ResultAppliedReverted,
			At:          time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC),
		},
	}

	ctx := context.Background()
	assert.NoError(t, store.Save(ctx, URL, state))
	loaded, err := store.Load(ctx, URL)
	assert.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestStore_LoadMissingYieldsEmptyState(t *testing.T) {
	store := NewStore()
	loaded, err := store.Load(context.Background(), path.Join(t.TempDir(), "absent.yaml"))
	assert.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded.Confidences)
	assert.Empty(t, loaded.Outcomes)
}
