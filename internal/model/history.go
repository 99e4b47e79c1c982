package model

import (
	"time"

	"github.com/manav03panchal/trackedit/internal/serial"
)

// HistoryRecord is one persisted history entry.
type HistoryRecord struct {
	At   time.Time    `json:"at" yaml:"at"`
	Node *serial.Node `json:"node" yaml:"node"`
}

// HistoryState stores both history stacks, oldest entry first.
type HistoryState struct {
	Key  string          `json:"key" yaml:"-"`
	Undo []HistoryRecord `json:"undo" yaml:"undo"`
	Redo []HistoryRecord `json:"redo" yaml:"redo"`
}

// SetKey sets the database key for this history state.
func (h *HistoryState) SetKey(key string) {
	h.Key = key
}

// GetKey returns the database key for this history state.
func (h *HistoryState) GetKey() string {
	return h.Key
}

// NewHistoryState creates an empty history state.
func NewHistoryState() *HistoryState {
	return &HistoryState{Key: KeyHistory}
}

// Len returns the total number of records.
func (h *HistoryState) Len() int {
	return len(h.Undo) + len(h.Redo)
}
