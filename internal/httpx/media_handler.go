package httpx

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/ariefcatur/zenzee-admin/internal/media"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MediaService interface {
	Upload(ctx context.Context, slot, contentType string, size int64, r io.Reader) (media.Asset, error)
}

type MediaHandler struct {
	Service  MediaService
	MaxBytes int64
	Log      *zap.Logger
}

func (h *MediaHandler) Register(r chi.Router) {
	r.Post("/admin/media/{slot}", h.upload)
}

func (h *MediaHandler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.MaxBytes+(1<<20))
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, media.ErrTooLarge)
			return
		}
		writeError(w, http.StatusBadRequest, err)
		return
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "missing file"})
		return
	}
	defer file.Close()

	a, err := h.Service.Upload(r.Context(), chi.URLParam(r, "slot"), hdr.Header.Get("Content-Type"), hdr.Size, file)
	switch {
	case err == nil:
		writeJSON(w, http.StatusCreated, a)
	case errors.Is(err, media.ErrTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, err)
	case errors.Is(err, media.ErrUnsupported), errors.Is(err, media.ErrEmpty):
		writeError(w, http.StatusUnsupportedMediaType, err)
	default:
		h.Log.Error("media upload", zap.Error(err))
		writeError(w, http.StatusBadGateway, err)
	}
}
