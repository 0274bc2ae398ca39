package settings

import "github.com/ariefcatur/zenzee-admin/internal/sections"

type HeroContent struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	CTAText   string `json:"cta_text"`
	CTALink   string `json:"cta_link"`
	MediaURL  string `json:"media_url,omitempty"`
	MediaType string `json:"media_type,omitempty"` // image | video
}

type AnnouncementBar struct {
	Enabled         bool     `json:"enabled"`
	Messages        []string `json:"messages"`
	Link            string   `json:"link,omitempty"`
	RotationSeconds int      `json:"rotation_seconds"`
}

type VideoShowcase struct {
	Enabled   bool   `json:"enabled"`
	Title     string `json:"title"`
	VideoURL  string `json:"video_url"`
	PosterURL string `json:"poster_url,omitempty"`
}

type CategoryBanner struct {
	Category string `json:"category"`
	ImageURL string `json:"image_url"`
	Link     string `json:"link"`
}

type SectionCopy struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

// SectionContent holds the headline copy per section kind.
type SectionContent map[sections.Kind]SectionCopy

func DefaultSectionContent() SectionContent {
	return SectionContent{
		sections.KindNewArrivals:      {Title: "New Arrivals"},
		sections.KindCategories:       {Title: "Shop by Category"},
		sections.KindFeaturedProducts: {Title: "Featured"},
		sections.KindBrandBanner:      {Title: "Made for Gen Z"},
	}
}

type MediaRef struct {
	URL      string `json:"url"`
	Type     string `json:"type"` // image | video
	PublicID string `json:"public_id,omitempty"`
}

// SectionMedia maps a section slot (e.g. "brandBanner") to uploaded media.
type SectionMedia map[string]MediaRef

const DefaultNotificationTemplate = "New order {order_id} from {customer}\nTotal: {total}\n{items}"

type OrderNotifications struct {
	Enabled  bool   `json:"enabled"`
	Phone    string `json:"phone"`
	Template string `json:"template"`
	AutoOpen bool   `json:"auto_open"`
}
