package data

import (
	"context"
	"fmt"
	"sync"

	"github.com/Semantics3/go-amazon-media/sources/amazon/ecs/types"
)

// MemoryStore keeps records in process, used when no database is configured
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*ItemRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*ItemRecord)}
}

func (m *MemoryStore) Save(ctx context.Context, item *types.ProductItem) error {
	if item == nil || item.ASIN == "" {
		return fmt.Errorf("STORE_SAVE_ERR: item without asin")
	}
	rec, err := NewItemRecord(item)
	if err != nil {
		return fmt.Errorf("STORE_SAVE_ERR: %v", err)
	}
	m.mu.Lock()
	m.records[item.ASIN] = rec
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, asin string) (*types.ProductItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[asin]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.ProductItem(), nil
}

func (m *MemoryStore) MarkInvalid(ctx context.Context, asin string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.records[asin]
	if !ok {
		return false, nil
	}
	rec.Item.InvalidASIN = true
	return true, nil
}

func (m *MemoryStore) Delete(ctx context.Context, asin string) error {
	m.mu.Lock()
	delete(m.records, asin)
	m.mu.Unlock()
	return nil
}

// Record returns the stored rows for asin
func (m *MemoryStore) Record(asin string) (*ItemRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.records[asin]
	return rec, ok
}

// Len is the number of stored items
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
