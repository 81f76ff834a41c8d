package state

import (
	"context"
	"maps"
	"strconv"
	"sync"
	"time"

	props "github.com/goliatone/go-props"
	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store for tests and examples. Every save
// stores a deep copy under a fresh uuid snapshot ID and a generation ETag
// ("1", "2", ...); loads hand out deep copies.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
	now     func() time.Time
}

type memoryRecord struct {
	list       *props.List
	meta       Meta
	generation int
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]memoryRecord{}, now: time.Now}
}

func (s *MemoryStore) Load(_ context.Context, ref Ref) (*props.List, Meta, bool, error) {
	key, err := ref.Identifier()
	if err != nil {
		return nil, Meta{}, false, err
	}

	s.mu.RLock()
	record, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return nil, Meta{}, false, nil
	}
	return record.list.DeepCopy(), cloneMeta(record.meta), true, nil
}

func (s *MemoryStore) Save(_ context.Context, ref Ref, list *props.List, meta Meta) (Meta, error) {
	key, err := ref.Identifier()
	if err != nil {
		return Meta{}, err
	}
	if list == nil {
		list = props.NewList()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records == nil {
		s.records = map[string]memoryRecord{}
	}
	generation := s.records[key].generation + 1
	stored := cloneMeta(meta)
	stored.SnapshotID = uuid.NewString()
	stored.ETag = strconv.Itoa(generation)
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = s.clock()
	}
	s.records[key] = memoryRecord{list: list.DeepCopy(), meta: stored, generation: generation}
	return cloneMeta(stored), nil
}

func (s *MemoryStore) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func cloneMeta(meta Meta) Meta {
	out := meta
	out.Extra = maps.Clone(meta.Extra)
	return out
}
