package store

import (
	"context"
	"sync"

	"github.com/matzehuels/familytower/pkg/family"
)

// MemoryStore keeps the encoded snapshot in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data []byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Load(ctx context.Context) ([]family.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data == nil {
		return nil, ErrNotFound
	}
	return Decode(s.data)
}

func (s *MemoryStore) Save(ctx context.Context, members []family.Member) error {
	data, err := Encode(members)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
	return nil
}

// Raw returns the stored payload, nil before the first save.
func (s *MemoryStore) Raw() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// SetRaw replaces the stored payload verbatim.
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = data
}

func (s *MemoryStore) Backend() string { return "memory" }
func (s *MemoryStore) Close() error    { return nil }

var _ Store = (*MemoryStore)(nil)
