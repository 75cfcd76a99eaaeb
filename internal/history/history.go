package history

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Conceptual-Machines/comeback-api/internal/logger"
	"github.com/Conceptual-Machines/comeback-api/internal/models"
	"github.com/samber/lo"
)

const (
	// StorageKey is where the history list is persisted
	StorageKey = "argumentHistory"

	// MaxEntries caps the stored history; older entries are dropped
	MaxEntries = 10
)

var ErrIndexOutOfRange = errors.New("history index out of range")

// Manager holds the newest-first history list and persists it on every change
type Manager struct {
	store   Store
	entries []models.HistoryEntry
	loaded  bool
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Load reads persisted history once. Malformed data is logged and ignored.
func (m *Manager) Load() error {
	if m.loaded {
		return nil
	}
	m.loaded = true

	raw, ok, err := m.store.Get(StorageKey)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if !ok || raw == "" {
		return nil
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		logger.Warn("Failed to parse history", logger.Fields{"error": err.Error()})
		return nil
	}
	m.entries = lo.Slice(entries, 0, MaxEntries)
	return nil
}

// Loaded reports whether Load has run
func (m *Manager) Loaded() bool {
	return m.loaded
}

// Add prepends entry, drops anything past MaxEntries and persists the list
func (m *Manager) Add(entry models.HistoryEntry) error {
	entry.Responses = append([]string(nil), entry.Responses...)
	m.entries = lo.Slice(append([]models.HistoryEntry{entry}, m.entries...), 0, MaxEntries)

	data, err := json.Marshal(m.entries)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := m.store.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

// Entries returns a copy of the history, newest first
func (m *Manager) Entries() []models.HistoryEntry {
	return append([]models.HistoryEntry(nil), m.entries...)
}

// Recent returns at most n newest entries
func (m *Manager) Recent(n int) []models.HistoryEntry {
	return append([]models.HistoryEntry(nil), lo.Slice(m.entries, 0, n)...)
}

// Len returns the number of entries
func (m *Manager) Len() int {
	return len(m.entries)
}

// Get returns the entry at index i, 0 being the newest
func (m *Manager) Get(i int) (models.HistoryEntry, error) {
	if i < 0 || i >= len(m.entries) {
		return models.HistoryEntry{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, i)
	}
	return m.entries[i], nil
}
