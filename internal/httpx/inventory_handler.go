package httpx

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ariefcatur/zenzee-admin/internal/inventory"
	"github.com/go-chi/chi/v5"
)

type InventoryService interface {
	List(ctx context.Context, q inventory.Query) ([]inventory.Product, error)
	BulkUpdate(ctx context.Context, ids []string, op, qty string) ([]inventory.StockChange, error)
}

type InventoryHandler struct {
	Service InventoryService
}

// quantity stays a string so non-numeric input is reported by the same
// validation path as negative numbers.
type bulkReq struct {
	ProductIDs []string `json:"product_ids"`
	Op         string   `json:"op"`
	Quantity   string   `json:"quantity"`
}

func (h *InventoryHandler) Register(r chi.Router) {
	r.Get("/admin/inventory", h.list)
	r.Post("/admin/inventory/bulk", h.bulk)
}

func (h *InventoryHandler) list(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()
	q := inventory.Query{
		Search:   v.Get("search"),
		Category: v.Get("category"),
		Stock:    inventory.StockFilter(v.Get("stock")),
		Sort:     inventory.SortField(v.Get("sort")),
		Desc:     strings.EqualFold(v.Get("desc"), "true"),
	}
	if s := v.Get("low_at"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "low_at must be a number"})
			return
		}
		q.LowAt = n
	}
	ps, err := h.Service.List(r.Context(), q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, ps)
}

func (h *InventoryHandler) bulk(w http.ResponseWriter, r *http.Request) {
	var req bulkReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	changes, err := h.Service.BulkUpdate(r.Context(), req.ProductIDs, req.Op, req.Quantity)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]any{"changes": changes})
	case errors.Is(err, inventory.ErrInvalidQuantity),
		errors.Is(err, inventory.ErrInvalidOp),
		errors.Is(err, inventory.ErrEmptySelection):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, inventory.ErrUnknownProduct):
		writeError(w, http.StatusNotFound, err)
	default:
		writeError(w, http.StatusBadGateway, err)
	}
}
