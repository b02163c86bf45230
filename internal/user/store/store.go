// Package store keeps the single user record in memory.
package store

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/abgdnv/gocrud/pkg/record"
)

// RecordStore holds one open-ended record.
type RecordStore interface {
	// Get returns the current record.
	Get(ctx context.Context) record.Record
	// Replace stores rec as the whole record and returns it.
	Replace(ctx context.Context, rec record.Record) record.Record
	// Merge shallow-merges patch into the record and returns the result.
	Merge(ctx context.Context, patch record.Record) record.Record
	// Reset empties the record and returns the empty record.
	Reset(ctx context.Context) record.Record
}

type inMemory struct {
	mu  sync.RWMutex
	rec record.Record
}

// NewInMemoryStore creates a store holding a copy of initial. A nil initial record is empty.
func NewInMemoryStore(initial record.Record) RecordStore {
	return &inMemory{rec: initial.Clone()}
}

func (s *inMemory) Get(_ context.Context) record.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec.Clone()
}

func (s *inMemory) Replace(_ context.Context, rec record.Record) record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = rec.Clone()
	return s.rec.Clone()
}

func (s *inMemory) Merge(_ context.Context, patch record.Record) record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = record.Merge(s.rec, patch)
	return s.rec.Clone()
}

func (s *inMemory) Reset(_ context.Context) record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec = record.Record{}
	return record.Record{}
}

// LoadRecord reads the initial record from a JSON object file. An empty path yields an empty record.
func LoadRecord(path string) (record.Record, error) {
	if path == "" {
		return record.Record{}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open user record: %w", err)
	}
	defer f.Close()

	rec, err := record.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load user record %s: %w", path, err)
	}
	return rec, nil
}
