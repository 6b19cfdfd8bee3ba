package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"
)

// DefaultPath is where the car database lives unless configured otherwise.
const DefaultPath = "./data/db.json"

var (
	// ErrRead is returned when the backing file cannot be opened or read.
	ErrRead = errors.New("error reading the DB file")
	// ErrParse is returned when the backing file is not a JSON array of records.
	ErrParse = errors.New("error parsing the DB file")
	// ErrIndexOutOfRange is returned when a remove targets a missing index.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Record is a single car entry in the database.
type Record struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Model     string    `json:"model"`
	Engine    string    `json:"engine"`
	Category  string    `json:"category"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the full collection of records. Every operation reads the whole
// collection and mutating operations write the whole collection back.
type Store interface {
	Load() ([]Record, error)
	Save(records []Record) error
	AppendGenerated(gen *Generator) ([]Record, error)
	RemoveAt(index int) error
}

// FileStore persists records as one JSON array in a single file.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore returns a store backed by path. The file is not created;
// Load fails with ErrRead until it exists.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and parses the backing file.
func (s *FileStore) Load() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrRead, s.path, err)
	}
	records, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrParse, s.path, err)
	}
	return records, nil
}

// Save overwrites the backing file with records.
func (s *FileStore) Save(records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(records)
}

func (s *FileStore) save(records []Record) error {
	if records == nil {
		records = []Record{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", s.path, err)
	}
	return nil
}

// AppendGenerated loads the store, appends one record from gen and writes
// the result back.
func (s *FileStore) AppendGenerated(gen *Generator) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return appendGenerated(s.load, s.save, gen)
}

// RemoveAt loads the store, removes the record at index and writes the rest back.
func (s *FileStore) RemoveAt(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeAt(s.load, s.save, index)
}

func decode(data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("expected a JSON array")
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	var records []Record
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	if rest := bytes.TrimSpace(trimmed[dec.InputOffset():]); len(rest) > 0 {
		return nil, fmt.Errorf("trailing data after JSON array: %q", rest)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func appendGenerated(load func() ([]Record, error), save func([]Record) error, gen *Generator) ([]Record, error) {
	records, err := load()
	if err != nil {
		return nil, err
	}
	records = append(records, gen.Next())
	if err := save(records); err != nil {
		return nil, err
	}
	return records, nil
}

func removeAt(load func() ([]Record, error), save func([]Record) error, index int) error {
	records, err := load()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(records) {
		return fmt.Errorf("%w: %d (have %d records)", ErrIndexOutOfRange, index, len(records))
	}
	records = append(records[:index], records[index+1:]...)
	return save(records)
}
