package site

import (
	"sync"

	"github.com/sells-group/planning-cli/internal/model"
)

// Table accumulates assembled site records for one session. Appends are
// serialized and records are unique by lot identifier, first wins:
// a duplicate submission is rejected, not merged.
type Table struct {
	mu      sync.Mutex
	records []model.SiteRecord
	seen    map[string]struct{}
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{seen: make(map[string]struct{})}
}

// Append adds a record unless its lot identifier is already present.
// It reports whether the record was added.
func (t *Table) Append(rec model.SiteRecord) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, dup := t.seen[rec.LotID]; dup {
		return false
	}
	t.seen[rec.LotID] = struct{}{}
	t.records = append(t.records, rec)
	return true
}

// Contains reports whether a lot identifier is already in the table.
func (t *Table) Contains(lotID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.seen[lotID]
	return ok
}

// Records returns a copy of the accumulated records in insertion order.
func (t *Table) Records() []model.SiteRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]model.SiteRecord, len(t.records))
	copy(out, t.records)
	return out
}

// Len returns the number of accumulated records.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.records)
}

// Clear removes every record. This is the only way records are
// destroyed.
func (t *Table) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = nil
	t.seen = make(map[string]struct{})
}
