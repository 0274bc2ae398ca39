// Package settings stores the admin-editable site settings as one JSON
// document per key and exposes typed slices over them.
package settings

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("setting not found")

const (
	KeySectionOrder       = "section_order"
	KeySectionContent     = "section_content"
	KeyHeroContent        = "hero_content"
	KeyAnnouncementBar    = "announcement_bar"
	KeyVideoShowcase      = "video_showcase"
	KeyCategoryBanners    = "category_banners"
	KeyProductCollections = "product_collections"
	KeySectionMedia       = "section_media"
	KeyOrderNotifications = "order_notifications"
)

// Store reads and writes raw JSON documents. Get returns ErrNotFound for a
// key that was never written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// MemoryStore keeps documents in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: map[string][]byte{}}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.docs[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = append([]byte(nil), value...)
	return nil
}
