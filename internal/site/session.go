package site

import (
	"sync"

	"github.com/google/uuid"
)

// Sessions is a session-keyed registry of tables owned by the serving
// layer. Each session gets its own append-only table, created on first
// use and destroyed on explicit reset.
type Sessions struct {
	mu     sync.Mutex
	tables map[string]*Table
}

// NewSessions creates an empty session registry.
func NewSessions() *Sessions {
	return &Sessions{tables: make(map[string]*Table)}
}

// New allocates a fresh session and returns its id and table.
func (s *Sessions) New() (string, *Table) {
	id := uuid.NewString()
	t := NewTable()

	s.mu.Lock()
	s.tables[id] = t
	s.mu.Unlock()

	return id, t
}

// Get returns the table for a session id, or nil if the session does
// not exist.
func (s *Sessions) Get(id string) *Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tables[id]
}

// Reset destroys a session and its table. It reports whether the
// session existed.
func (s *Sessions) Reset(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tables[id]; !ok {
		return false
	}
	delete(s.tables, id)
	return true
}
