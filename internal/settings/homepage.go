package settings

import (
	"context"
	"time"

	"github.com/ariefcatur/zenzee-admin/internal/sections"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// HomepageSection is one rendered block: the order entry plus its copy and,
// for collection blocks, the collection definition.
type HomepageSection struct {
	sections.Item
	Copy       *SectionCopy                `json:"copy,omitempty"`
	Media      *MediaRef                   `json:"media,omitempty"`
	Collection *sections.ProductCollection `json:"collection,omitempty"`
}

// Homepage is everything the storefront needs to render the landing page.
type Homepage struct {
	Hero         HeroContent       `json:"hero"`
	Announcement AnnouncementBar   `json:"announcement"`
	Video        VideoShowcase     `json:"video"`
	Banners      []CategoryBanner  `json:"category_banners"`
	Sections     []HomepageSection `json:"sections"`
}

// LoadHomepage reads every slice concurrently, each falling back to its
// default, and keeps only the sections visible at now. A collection block
// whose collection is gone or disabled is skipped.
func LoadHomepage(ctx context.Context, st Store, now time.Time, log *zap.Logger) (Homepage, error) {
	var (
		hp      Homepage
		order   []sections.Item
		content SectionContent
		media   SectionMedia
		cols    []sections.ProductCollection
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { hp.Hero = Hero.Load(gctx, st, log); return nil })
	g.Go(func() error { hp.Announcement = Announcement.Load(gctx, st, log); return nil })
	g.Go(func() error { hp.Video = Video.Load(gctx, st, log); return nil })
	g.Go(func() error { hp.Banners = Banners.Load(gctx, st, log); return nil })
	g.Go(func() error { order = SectionOrder.Load(gctx, st, log); return nil })
	g.Go(func() error { content = Content.Load(gctx, st, log); return nil })
	g.Go(func() error { media = Media.Load(gctx, st, log); return nil })
	g.Go(func() error { cols = Collections.Load(gctx, st, log); return nil })
	if err := g.Wait(); err != nil {
		return Homepage{}, err
	}
	if err := ctx.Err(); err != nil {
		return Homepage{}, err
	}

	byID := make(map[string]sections.ProductCollection, len(cols))
	for _, c := range cols {
		byID[c.ID] = c
	}

	hp.Sections = make([]HomepageSection, 0, len(order))
	for _, it := range sections.Visible(order, now) {
		hs := HomepageSection{Item: it}
		if it.Kind == sections.KindCollection {
			c, ok := byID[it.CollectionID]
			if !ok || !c.Enabled {
				continue
			}
			hs.Collection = &c
		}
		if cp, ok := content[it.Kind]; ok {
			hs.Copy = &cp
		}
		if m, ok := media[string(it.Kind)]; ok {
			hs.Media = &m
		}
		hp.Sections = append(hp.Sections, hs)
	}
	return hp, nil
}
