package store

import "sync"

// MemStore keeps records in memory. It behaves like FileStore without a
// backing file and is meant for tests.
type MemStore struct {
	mu      sync.Mutex
	records []Record

	// LoadErr, when set, is returned by every Load.
	LoadErr error
}

// NewMemStore returns a store holding a copy of records.
func NewMemStore(records ...Record) *MemStore {
	s := &MemStore{}
	s.records = copyRecords(records)
	return s
}

func (s *MemStore) Load() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *MemStore) load() ([]Record, error) {
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	return copyRecords(s.records), nil
}

func (s *MemStore) Save(records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(records)
}

func (s *MemStore) save(records []Record) error {
	s.records = copyRecords(records)
	return nil
}

func (s *MemStore) AppendGenerated(gen *Generator) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return appendGenerated(s.load, s.save, gen)
}

func (s *MemStore) RemoveAt(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeAt(s.load, s.save, index)
}

func copyRecords(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
