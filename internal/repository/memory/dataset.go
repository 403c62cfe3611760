// Package memory holds the process-wide overtime dataset. The service keeps
// exactly one dataset at a time; each successful ingestion replaces it
// wholesale, so there is no persistence layer behind this store.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/cmlabs-hris/overtime-analyzer/internal/domain/overtime"
)

type DatasetStore struct {
	mu      sync.RWMutex
	records []overtime.Record
	info    overtime.DatasetInfo
	loaded  bool
}

func NewDatasetStore() *DatasetStore {
	return &DatasetStore{}
}

// Replace implements overtime.DatasetStore.
func (s *DatasetStore) Replace(_ context.Context, records []overtime.Record, info overtime.DatasetInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = slices.Clone(records)
	s.info = info
	s.loaded = true
}

// Snapshot implements overtime.DatasetStore. The returned slice is a copy of
// the slice header only; records themselves are immutable.
func (s *DatasetStore) Snapshot(_ context.Context) ([]overtime.Record, overtime.DatasetInfo, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.loaded {
		return nil, overtime.DatasetInfo{}, false
	}
	return slices.Clone(s.records), s.info, true
}

// Reset implements overtime.DatasetStore.
func (s *DatasetStore) Reset(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	s.info = overtime.DatasetInfo{}
	s.loaded = false
}
