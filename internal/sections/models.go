package sections

import "time"

type Kind string

const (
	KindHero             Kind = "hero"
	KindNewArrivals      Kind = "newArrivals"
	KindCategories       Kind = "categories"
	KindFeaturedProducts Kind = "featuredProducts"
	KindBrandBanner      Kind = "brandBanner"
	KindCollection       Kind = "collection"
)

func (k Kind) Valid() bool {
	switch k {
	case KindHero, KindNewArrivals, KindCategories, KindFeaturedProducts, KindBrandBanner, KindCollection:
		return true
	}
	return false
}

// Item is one homepage block in the ordering list.
type Item struct {
	Kind          Kind       `json:"kind"`
	Label         string     `json:"label"`
	Enabled       bool       `json:"enabled"`
	CollectionID  string     `json:"collection_id,omitempty"`
	ScheduleStart *time.Time `json:"schedule_start,omitempty"`
	ScheduleEnd   *time.Time `json:"schedule_end,omitempty"`
}

// Key identifies a list entry. Collection entries are distinct per collection id.
type Key struct {
	Kind         Kind   `json:"kind"`
	CollectionID string `json:"collection_id,omitempty"`
}

func (it Item) Key() Key { return Key{Kind: it.Kind, CollectionID: it.CollectionID} }

// ProductCollection is owned by the catalog; only id, name and enabled matter here.
type ProductCollection struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Enabled  bool   `json:"enabled"`
	Tag      string `json:"tag,omitempty"`
	OnSale   bool   `json:"on_sale,omitempty"`
	MaxItems int    `json:"max_items,omitempty"`
}

func DefaultOrder() []Item {
	return []Item{
		{Kind: KindHero, Label: "Hero", Enabled: true},
		{Kind: KindNewArrivals, Label: "New Arrivals", Enabled: true},
		{Kind: KindCategories, Label: "Shop by Category", Enabled: true},
		{Kind: KindFeaturedProducts, Label: "Featured Products", Enabled: true},
		{Kind: KindBrandBanner, Label: "Brand Banner", Enabled: true},
	}
}

// Clone deep-copies a list, including schedule pointers.
func Clone(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for i, it := range items {
		out[i] = it
		out[i].ScheduleStart = copyTime(it.ScheduleStart)
		out[i].ScheduleEnd = copyTime(it.ScheduleEnd)
	}
	return out
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
