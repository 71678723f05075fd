package state

import (
	"sync"

	"github.com/aonescu/kubewatch/internal/types"
)

type Store interface {
	Record(rec types.WatchRecord) error
	GetLatestByKind(kind string) []types.WatchRecord
	GetByUID(uid string) (types.WatchRecord, bool)
	History(uid string) []types.WatchRecord
}

// In-memory implementation for fallback
type MemoryStore struct {
	mu          sync.RWMutex
	records     []types.WatchRecord
	latestByUID map[string]types.WatchRecord
	uidsByKind  map[string][]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:     make([]types.WatchRecord, 0),
		latestByUID: make(map[string]types.WatchRecord),
		uidsByKind:  make(map[string][]string),
	}
}

func (s *MemoryStore) Record(rec types.WatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, rec)

	// Objects without metadata carry no UID; keep them in the log but leave
	// the identity indexes alone, matching the Postgres cache loader.
	if rec.UID == "" {
		return nil
	}
	s.latestByUID[rec.UID] = rec

	found := false
	for _, uid := range s.uidsByKind[rec.Kind] {
		if uid == rec.UID {
			found = true
			break
		}
	}
	if !found {
		s.uidsByKind[rec.Kind] = append(s.uidsByKind[rec.Kind], rec.UID)
	}
	return nil
}

func (s *MemoryStore) GetLatestByKind(kind string) []types.WatchRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []types.WatchRecord
	for _, uid := range s.uidsByKind[kind] {
		if rec, exists := s.latestByUID[uid]; exists {
			results = append(results, rec)
		}
	}
	return results
}

func (s *MemoryStore) GetByUID(uid string) (types.WatchRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, exists := s.latestByUID[uid]
	return rec, exists
}

// History returns every recorded event for the given UID, oldest first.
func (s *MemoryStore) History(uid string) []types.WatchRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var results []types.WatchRecord
	for _, rec := range s.records {
		if rec.UID == uid {
			results = append(results, rec)
		}
	}
	return results
}
