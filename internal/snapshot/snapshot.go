// Package snapshot persists the full application state as a single JSON
// document under a fixed namespace key. There are no incremental writes
// and no versioning: every save overwrites the whole document, and a load
// that finds nothing (or garbage) falls back to an empty state.
package snapshot

import (
	"encoding/json"

	"trade-master/internal/models"
)

// Key is the fixed namespace the state document is stored under. It is
// kept identical to the original journal's storage key so existing data
// carries over.
const Key = "forex_master_v2_data"

// Backend stores and retrieves the serialized state document.
type Backend interface {
	// Load returns the persisted state. A missing or unparseable document
	// is not an error: implementations fall back to models.EmptyState.
	Load() (*models.AppState, error)
	// Save overwrites the document with the given state.
	Save(state *models.AppState) error
	Close() error
}

// decode parses a raw document, normalizing partial content. A failed
// parse returns nil so callers can fall back to defaults.
func decode(raw []byte) *models.AppState {
	var state models.AppState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil
	}
	state.Normalize()
	return &state
}

// encode serializes the state document.
func encode(state *models.AppState) ([]byte, error) {
	return json.Marshal(state)
}
