package httpx

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ariefcatur/zenzee-admin/internal/sections"
	"github.com/ariefcatur/zenzee-admin/internal/settings"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SettingsHandler exposes each settings slice as its own resource with an
// independent load/save cycle.
type SettingsHandler struct {
	Store settings.Store
	Log   *zap.Logger
	Now   func() time.Time
}

func (h *SettingsHandler) Register(r chi.Router) {
	r.Route("/admin/settings", func(r chi.Router) {
		sliceRoutes(r, "/hero", settings.Hero, h, nil)
		sliceRoutes(r, "/announcement", settings.Announcement, h, validateAnnouncement)
		sliceRoutes(r, "/video", settings.Video, h, nil)
		sliceRoutes(r, "/category-banners", settings.Banners, h, validateBanners)
		sliceRoutes(r, "/section-content", settings.Content, h, nil)
		sliceRoutes(r, "/section-media", settings.Media, h, nil)
		sliceRoutes(r, "/collections", settings.Collections, h, validateCollections)
		sliceRoutes(r, "/order-notifications", settings.Notifications, h, nil)
	})
	r.Get("/homepage", h.homepage)
}

func sliceRoutes[T any](r chi.Router, path string, sl settings.Slice[T], h *SettingsHandler, validate func(T) error) {
	r.Get(path, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, sl.Load(r.Context(), h.Store, h.Log))
	})
	r.Put(path, func(w http.ResponseWriter, r *http.Request) {
		var v T
		if err := decode(r, &v); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if validate != nil {
			if err := validate(v); err != nil {
				writeError(w, http.StatusUnprocessableEntity, err)
				return
			}
		}
		if err := sl.Save(r.Context(), h.Store, v); err != nil {
			h.Log.Error("save setting", zap.String("key", sl.Key), zap.Error(err))
			writeError(w, http.StatusBadGateway, err)
			return
		}
		writeJSON(w, http.StatusOK, v)
	})
}

func (h *SettingsHandler) homepage(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	hp, err := settings.LoadHomepage(r.Context(), h.Store, now, h.Log)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}
	writeJSON(w, http.StatusOK, hp)
}

func validateAnnouncement(a settings.AnnouncementBar) error {
	if a.RotationSeconds < 1 {
		return errors.New("rotation_seconds must be at least 1")
	}
	if a.Enabled && len(a.Messages) == 0 {
		return errors.New("enabled announcement bar needs at least one message")
	}
	return nil
}

func validateBanners(bs []settings.CategoryBanner) error {
	for i, b := range bs {
		if strings.TrimSpace(b.Category) == "" || b.ImageURL == "" {
			return fmt.Errorf("banner %d: category and image_url are required", i)
		}
	}
	return nil
}

func validateCollections(cs []sections.ProductCollection) error {
	seen := map[string]bool{}
	for i, c := range cs {
		if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("collection %d: id and name are required", i)
		}
		if seen[c.ID] {
			return fmt.Errorf("duplicate collection id %q", c.ID)
		}
		seen[c.ID] = true
	}
	return nil
}
