package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/okian/openings/internal/domain/model"
	"github.com/okian/openings/pkg/logger"
	"github.com/okian/openings/pkg/metrics"
)

// MemoryStore is an in-memory Store. Records are copied on the way in and on
// the way out so no caller can mutate what another question reads.
type MemoryStore struct {
	mu      sync.RWMutex
	records []model.Opening
	counts  map[model.Color]int
	logger  logger.Logger
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore builds a store over records. An empty record set is
// rejected with ErrEmptyStore.
func NewMemoryStore(ctx context.Context, records []model.Opening, opts ...Option) (*MemoryStore, error) {
	s := &MemoryStore{
		logger: logger.GetOrNop().Named("repository"),
		counts: make(map[model.Color]int),
	}
	for _, opt := range opts {
		opt(s)
	}
	if len(records) == 0 {
		return nil, ErrEmptyStore
	}

	s.records = make([]model.Opening, len(records))
	for i, r := range records {
		r.Moves = slices.Clone(r.Moves)
		s.records[i] = r
		s.counts[r.Color]++
	}

	metrics.UpdateRecords(len(s.records))
	s.logger.Info(ctx, "record store ready",
		logger.Int("records", len(s.records)),
		logger.Int("white", s.counts[model.White]),
		logger.Int("black", s.counts[model.Black]),
	)
	return s, nil
}

// All returns a copy of every record.
func (s *MemoryStore) All(_ context.Context) []model.Opening {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Opening, len(s.records))
	for i, r := range s.records {
		r.Moves = slices.Clone(r.Moves)
		out[i] = r
	}
	return out
}

// ByColor returns a copy of the records of color.
func (s *MemoryStore) ByColor(_ context.Context, color model.Color) []model.Opening {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Opening, 0, s.counts[color])
	for _, r := range s.records {
		if r.Color != color {
			continue
		}
		r.Moves = slices.Clone(r.Moves)
		out = append(out, r)
	}
	return out
}

// Count returns the number of records.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}
