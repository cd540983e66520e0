package learn

import (
	"bytes"
	"context"
	"fmt"
	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
	"os"
)

// Store persists learning state between sessions. The serialized document
// round-trips exactly: Load(Save(state)) yields an equal state.
type Store struct {
	fs afs.Service
}

// NewStore creates a store backed by the abstract file system
func NewStore() *Store {
	return &Store{fs: afs.New()}
}

// Load reads a learning state snapshot from the supplied location. A missing
// snapshot is not an error: it yields an empty state for a first session.
func (s *Store) Load(ctx context.Context, URL string) (*State, error) {
	if ok, _ := s.fs.Exists(ctx, URL); !ok {
		return NewState(), nil
	}
	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load learning state from %s: %w", URL, err)
	}
	state := NewState()
	if err := yaml.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to parse learning state %s: %w", URL, err)
	}
	if state.Confidences == nil {
		state.Confidences = map[string]Confidence{}
	}
	return state, nil
}

// Save writes a learning state snapshot to the supplied location
func (s *Store) Save(ctx context.Context, URL string, state *State) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode learning state: %w", err)
	}
	if err := s.fs.Upload(ctx, URL, os.FileMode(0644), bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save learning state to %s: %w", URL, err)
	}
	return nil
}
