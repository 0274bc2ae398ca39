package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ariefcatur/zenzee-admin/internal/sections"
	"go.uber.org/zap"
)

// Slice is one typed setting with its own default.
type Slice[T any] struct {
	Key     string
	Default func() T
}

// Get returns the stored value, the default when the key was never written,
// or an error when the store or document is unreadable.
func (s Slice[T]) Get(ctx context.Context, st Store) (T, error) {
	raw, err := st.Get(ctx, s.Key)
	if errors.Is(err, ErrNotFound) {
		return s.Default(), nil
	}
	if err != nil {
		var zero T
		return zero, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("decode setting %s: %w", s.Key, err)
	}
	return v, nil
}

// Load is Get with every failure replaced by the default.
func (s Slice[T]) Load(ctx context.Context, st Store, log *zap.Logger) T {
	v, err := s.Get(ctx, st)
	if err != nil {
		log.Warn("load setting, using default", zap.String("key", s.Key), zap.Error(err))
		return s.Default()
	}
	return v
}

func (s Slice[T]) Save(ctx context.Context, st Store, v T) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode setting %s: %w", s.Key, err)
	}
	return st.Put(ctx, s.Key, b)
}

var (
	SectionOrder = Slice[[]sections.Item]{Key: KeySectionOrder, Default: sections.DefaultOrder}

	Content = Slice[SectionContent]{Key: KeySectionContent, Default: DefaultSectionContent}

	Hero = Slice[HeroContent]{Key: KeyHeroContent, Default: func() HeroContent {
		return HeroContent{Title: "Zen Zee", Subtitle: "New season, new fits", CTAText: "Shop now", CTALink: "/shop"}
	}}

	Announcement = Slice[AnnouncementBar]{Key: KeyAnnouncementBar, Default: func() AnnouncementBar {
		return AnnouncementBar{Enabled: false, RotationSeconds: 5}
	}}

	Video = Slice[VideoShowcase]{Key: KeyVideoShowcase, Default: func() VideoShowcase {
		return VideoShowcase{}
	}}

	Banners = Slice[[]CategoryBanner]{Key: KeyCategoryBanners, Default: func() []CategoryBanner {
		return []CategoryBanner{}
	}}

	Collections = Slice[[]sections.ProductCollection]{Key: KeyProductCollections, Default: func() []sections.ProductCollection {
		return []sections.ProductCollection{}
	}}

	Media = Slice[SectionMedia]{Key: KeySectionMedia, Default: func() SectionMedia {
		return SectionMedia{}
	}}

	Notifications = Slice[OrderNotifications]{Key: KeyOrderNotifications, Default: func() OrderNotifications {
		return OrderNotifications{Enabled: true, Template: DefaultNotificationTemplate}
	}}
)

// SectionOrderStore adapts a Store to the section editor.
type SectionOrderStore struct{ Store Store }

func (s SectionOrderStore) LoadSectionOrder(ctx context.Context) ([]sections.Item, error) {
	return SectionOrder.Get(ctx, s.Store)
}

func (s SectionOrderStore) SaveSectionOrder(ctx context.Context, items []sections.Item) error {
	return SectionOrder.Save(ctx, s.Store, items)
}

func (s SectionOrderStore) LoadCollections(ctx context.Context) ([]sections.ProductCollection, error) {
	return Collections.Get(ctx, s.Store)
}
