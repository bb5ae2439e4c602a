package report

import (
	"fmt"
	"sync"
)

// Store keeps run reports retrievable by run ID.
type Store interface {
	Save(r *Report) error
	Load(runID string) (*Report, error)
}

// LRUStore is a bounded in-memory store that evicts the least recently
// used report. Reports do not survive the process.
type LRUStore struct {
	mu  sync.Mutex
	cap int

	// Doubly-linked list for LRU ordering (most recent at head).
	head, tail *lruEntry
	items      map[string]*lruEntry
}

type lruEntry struct {
	key    string
	report *Report
	prev   *lruEntry
	next   *lruEntry
}

// NewLRUStore creates a store holding at most cap reports. Capacity must
// be >= 1.
func NewLRUStore(cap int) *LRUStore {
	if cap < 1 {
		cap = 1
	}
	return &LRUStore{
		cap:   cap,
		items: make(map[string]*lruEntry, cap),
	}
}

// Save inserts or updates the report, evicting the least recently used
// entry when over capacity.
func (s *LRUStore) Save(r *Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.items[r.ID]; ok {
		e.report = r
		s.moveToFront(e)
		return nil
	}
	e := &lruEntry{key: r.ID, report: r}
	s.items[r.ID] = e
	s.pushFront(e)
	if len(s.items) > s.cap {
		s.evict()
	}
	return nil
}

// Load returns the report for runID, promoting it to most recently used.
func (s *LRUStore) Load(runID string) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.items[runID]
	if !ok {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	s.moveToFront(e)
	return e.report, nil
}

func (s *LRUStore) pushFront(e *lruEntry) {
	e.prev = nil
	e.next = s.head
	if s.head != nil {
		s.head.prev = e
	}
	s.head = e
	if s.tail == nil {
		s.tail = e
	}
}

func (s *LRUStore) moveToFront(e *lruEntry) {
	if s.head == e {
		return
	}
	s.remove(e)
	s.pushFront(e)
}

func (s *LRUStore) remove(e *lruEntry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		s.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		s.tail = e.prev
	}
	e.prev = nil
	e.next = nil
}

func (s *LRUStore) evict() {
	if s.tail == nil {
		return
	}
	e := s.tail
	s.remove(e)
	delete(s.items, e.key)
}
