// Package qstore persists tabular Q-learning state across process
// lifetimes. A Snapshot is a flat, versioned container of (state, action)
// values plus the scalar hyperparameters the agent needs to resume; the
// package knows nothing about game or agent types so it sits below both.
package qstore

import (
	"errors"
	"time"
)

// SchemaVersion is the current snapshot format version. Stores reject
// snapshots written by a newer version rather than misreading them.
const SchemaVersion = 1

// ErrNotFound is returned by Load when no snapshot has been saved yet.
var ErrNotFound = errors.New("qstore: no snapshot found")

// Entry is one learned (state, action) value. The four bucket fields are
// the discretized state key; Action is the action type's wire name.
type Entry struct {
	HandBucket uint8   `json:"hand_bucket"`
	DeckBucket uint8   `json:"deck_bucket"`
	CanDiscard bool    `json:"can_discard"`
	OppBucket  uint8   `json:"opp_bucket"`
	Action     string  `json:"action"`
	Value      float64 `json:"value"`
}

// Snapshot is the full persisted agent state.
type Snapshot struct {
	Version          int       `json:"version"`
	SavedAt          time.Time `json:"saved_at"`
	Epsilon          float64   `json:"epsilon"`
	ActionCount      int       `json:"action_count"`
	ExplorationCount int       `json:"exploration_count"`
	Entries          []Entry   `json:"entries"`
}

// Store loads and saves snapshots. Save must be atomic with respect to
// crashes: a failed save never corrupts a previously readable snapshot.
type Store interface {
	// Load returns the most recent snapshot, ErrNotFound if none exists,
	// or an error if the stored data is unreadable.
	Load() (*Snapshot, error)

	// Save replaces the stored snapshot. Version and SavedAt are stamped
	// by the store.
	Save(snap *Snapshot) error

	Close() error
}
