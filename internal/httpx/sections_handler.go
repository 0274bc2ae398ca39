package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ariefcatur/zenzee-admin/internal/sections"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// saveTimeout bounds a section save once it has been handed to the store.
const saveTimeout = 30 * time.Second

type CollectionSource interface {
	LoadCollections(ctx context.Context) ([]sections.ProductCollection, error)
}

// SectionsHandler serves the homepage section editor. Each open admin page
// holds one editor session; its undo history lives only as long as the
// session.
type SectionsHandler struct {
	Sessions    *sections.Sessions
	Collections CollectionSource
	Log         *zap.Logger
	Now         func() time.Time
}

type openSessionResp struct {
	SessionID string         `json:"session_id"`
	State     sections.State `json:"state"`
}

type reorderReq struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type enabledReq struct {
	Key     sections.Key `json:"key"`
	Enabled bool         `json:"enabled"`
}

type scheduleReq struct {
	Key   sections.Key `json:"key"`
	Start *time.Time   `json:"start"`
	End   *time.Time   `json:"end"`
}

type addCollectionReq struct {
	CollectionID string `json:"collection_id"`
}

func (h *SectionsHandler) Register(r chi.Router) {
	r.Route("/admin/sections/sessions", func(r chi.Router) {
		r.Post("/", h.open)
		r.Route("/{sid}", func(r chi.Router) {
			r.Get("/", h.state)
			r.Delete("/", h.close)
			r.Post("/reorder", h.reorder)
			r.Post("/enabled", h.setEnabled)
			r.Post("/schedule", h.setSchedule)
			r.Get("/collections/available", h.available)
			r.Post("/collections", h.addCollection)
			r.Delete("/collections/{cid}", h.removeCollection)
			r.Post("/undo", h.undo)
			r.Post("/redo", h.redo)
			r.Post("/save", h.save)
			r.Post("/reload", h.reload)
			r.Get("/preview", h.preview)
		})
	})
}

func (h *SectionsHandler) editor(w http.ResponseWriter, r *http.Request) (*sections.Editor, bool) {
	ed, ok := h.Sessions.Get(chi.URLParam(r, "sid"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "editor session not found"})
	}
	return ed, ok
}

func (h *SectionsHandler) open(w http.ResponseWriter, r *http.Request) {
	id, ed := h.Sessions.Open(r.Context())
	writeJSON(w, http.StatusCreated, openSessionResp{SessionID: id, State: ed.State()})
}

func (h *SectionsHandler) state(w http.ResponseWriter, r *http.Request) {
	if ed, ok := h.editor(w, r); ok {
		writeJSON(w, http.StatusOK, ed.State())
	}
}

func (h *SectionsHandler) close(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Drop(chi.URLParam(r, "sid"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *SectionsHandler) reorder(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	var req reorderReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	st, err := ed.Reorder(req.From, req.To)
	h.respond(w, st, err)
}

func (h *SectionsHandler) setEnabled(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	var req enabledReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	st, err := ed.SetEnabled(req.Key, req.Enabled)
	h.respond(w, st, err)
}

func (h *SectionsHandler) setSchedule(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	var req scheduleReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	st, err := ed.SetSchedule(req.Key, req.Start, req.End)
	h.respond(w, st, err)
}

func (h *SectionsHandler) available(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	all, err := h.loadCollections(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, sections.AvailableCollections(all, ed.State().Items))
}

func (h *SectionsHandler) addCollection(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	var req addCollectionReq
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	all, err := h.loadCollections(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	for _, c := range sections.AvailableCollections(all, ed.State().Items) {
		if c.ID == req.CollectionID {
			st, err := ed.AddCollection(c)
			h.respond(w, st, err)
			return
		}
	}
	writeJSON(w, http.StatusConflict, map[string]string{"error": "collection unknown, disabled or already added"})
}

func (h *SectionsHandler) removeCollection(w http.ResponseWriter, r *http.Request) {
	if ed, ok := h.editor(w, r); ok {
		st, err := ed.RemoveCollection(chi.URLParam(r, "cid"))
		h.respond(w, st, err)
	}
}

func (h *SectionsHandler) undo(w http.ResponseWriter, r *http.Request) {
	if ed, ok := h.editor(w, r); ok {
		writeJSON(w, http.StatusOK, ed.Undo())
	}
}

func (h *SectionsHandler) redo(w http.ResponseWriter, r *http.Request) {
	if ed, ok := h.editor(w, r); ok {
		writeJSON(w, http.StatusOK, ed.Redo())
	}
}

func (h *SectionsHandler) save(w http.ResponseWriter, r *http.Request) {
	if ed, ok := h.editor(w, r); ok {
		// a save outlives the request: a dropped connection or the router
		// timeout must not abort the write halfway
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), saveTimeout)
		defer cancel()
		st, err := ed.Save(ctx)
		h.respond(w, st, err)
	}
}

func (h *SectionsHandler) reload(w http.ResponseWriter, r *http.Request) {
	if ed, ok := h.editor(w, r); ok {
		st, err := ed.Reload(r.Context())
		h.respond(w, st, err)
	}
}

// preview renders the visible subset of the editor's current list, at
// ?at=RFC3339 or now.
func (h *SectionsHandler) preview(w http.ResponseWriter, r *http.Request) {
	ed, ok := h.editor(w, r)
	if !ok {
		return
	}
	at := h.now()
	if s := r.URL.Query().Get("at"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		at = t
	}
	writeJSON(w, http.StatusOK, sections.Visible(ed.State().Items, at))
}

func (h *SectionsHandler) respond(w http.ResponseWriter, st sections.State, err error) {
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, st)
	case errors.Is(err, sections.ErrHeroLocked),
		errors.Is(err, sections.ErrInvalidSchedule):
		writeError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, sections.ErrUnknownSection):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, sections.ErrSaveInProgress):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, sections.ErrSessionClosed):
		writeError(w, http.StatusGone, err)
	default:
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": err.Error(), "state": st})
	}
}

func (h *SectionsHandler) loadCollections(ctx context.Context) ([]sections.ProductCollection, error) {
	all, err := h.Collections.LoadCollections(ctx)
	if err != nil {
		h.Log.Warn("load product collections", zap.Error(err))
		return nil, fmt.Errorf("load product collections: %w", err)
	}
	return all, nil
}

func (h *SectionsHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}
