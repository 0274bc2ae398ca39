package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/ariefcatur/zenzee-admin/internal/sections"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("down") }
func (brokenStore) Put(context.Context, string, []byte) error   { return errors.New("down") }

func TestSlice_GetOrDefault(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()

	got, err := Hero.Get(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, Hero.Default(), got)

	want := HeroContent{Title: "Drop 07", CTAText: "Go", CTALink: "/drops/7"}
	require.NoError(t, Hero.Save(ctx, st, want))

	got, err = Hero.Get(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSlice_LoadFallsBack(t *testing.T) {
	ctx := context.Background()

	got := Announcement.Load(ctx, brokenStore{}, zap.NewNop())
	assert.Equal(t, Announcement.Default(), got)

	st := NewMemoryStore()
	require.NoError(t, st.Put(ctx, KeyAnnouncementBar, []byte(`{not json`)))
	_, err := Announcement.Get(ctx, st)
	assert.Error(t, err)
	assert.Equal(t, Announcement.Default(), Announcement.Load(ctx, st, zap.NewNop()))
}

func TestSlice_SaveError(t *testing.T) {
	err := Video.Save(context.Background(), brokenStore{}, VideoShowcase{Enabled: true})
	assert.Error(t, err)
}

func TestSectionOrderStore(t *testing.T) {
	ctx := context.Background()
	s := SectionOrderStore{Store: NewMemoryStore()}

	items, err := s.LoadSectionOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, sections.DefaultOrder(), items)

	items = sections.Reorder(items, 3, 1)
	require.NoError(t, s.SaveSectionOrder(ctx, items))
	got, err := s.LoadSectionOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, items, got)

	_, err = SectionOrderStore{Store: brokenStore{}}.LoadSectionOrder(ctx)
	assert.Error(t, err)

	cols, err := s.LoadCollections(ctx)
	require.NoError(t, err)
	assert.Empty(t, cols)
}
