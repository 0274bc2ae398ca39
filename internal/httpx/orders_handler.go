package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ariefcatur/zenzee-admin/internal/events"
	"github.com/ariefcatur/zenzee-admin/internal/notify"
	"github.com/ariefcatur/zenzee-admin/internal/orders"
	"github.com/ariefcatur/zenzee-admin/internal/redisx"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type OrderStore interface {
	CreateOrder(ctx context.Context, externalID string, c orders.Customer, items []orders.ItemInput) (orders.Order, bool, error)
	GetOrderStatus(ctx context.Context, orderID string) (orders.Status, error)
	ListOrders(ctx context.Context, status orders.Status, limit int) ([]orders.Order, error)
	UpdateStatus(ctx context.Context, orderID string, to orders.Status) error
}

type NotificationFeed interface {
	Recent(ctx context.Context, n int64) ([]notify.Notification, error)
}

type OrdersHandler struct {
	Repo          OrderStore
	Producer      events.Publisher
	Redis         *redis.Client
	Notifications NotificationFeed
	Service       string
	Log           *zap.Logger
}

type CreateOrderReq struct {
	ExternalID string             `json:"external_id"`
	Customer   orders.Customer    `json:"customer"`
	Items      []orders.ItemInput `json:"items"`
}

type CreateOrderResp struct {
	OrderID    string `json:"order_id"`
	TotalCents int    `json:"total_cents"`
	Idempotent bool   `json:"idempotent"`
}

type statusReq struct {
	Status orders.Status `json:"status"`
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Post("/orders", h.createOrder)
	r.Get("/orders/{id}", h.getOrder)

	r.Get("/admin/orders", h.listOrders)
	r.Patch("/admin/orders/{id}/status", h.updateStatus)
	r.Get("/admin/notifications", h.notifications)
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if err := orders.ValidateInput(req.ExternalID, req.Customer, req.Items); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// Redis shortcut for retried checkouts; the unique external_id in the
	// database stays authoritative.
	idemKey := fmt.Sprintf(redisx.KeyIdemOrderCreate, req.ExternalID)
	if s, err := h.Redis.Get(ctx, idemKey).Result(); err == nil {
		var prev CreateOrderResp
		if json.Unmarshal([]byte(s), &prev) == nil && prev.OrderID != "" {
			prev.Idempotent = true
			writeJSON(w, http.StatusOK, prev)
			return
		}
	}

	o, existed, err := h.Repo.CreateOrder(ctx, req.ExternalID, req.Customer, req.Items)
	if errors.Is(err, orders.ErrInvalidOrder) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		h.Log.Error("create order", zap.String("external_id", req.ExternalID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not create order"})
		return
	}

	resp := CreateOrderResp{OrderID: o.ID, TotalCents: o.TotalCents, Idempotent: existed}
	if b, err := json.Marshal(resp); err == nil {
		_ = h.Redis.Set(ctx, idemKey, b, redisx.TTLIdempotency).Err()
	}
	if existed {
		writeJSON(w, http.StatusOK, resp)
		return
	}

	h.cacheStatus(ctx, o.ID, orders.StatusPending)

	env, err := events.New(events.TypeOrderCreated, h.Service, o.ID, orders.PayloadFor(o))
	if err == nil {
		env.TraceID = r.Header.Get("X-Request-Id")
		err = events.Emit(h.Producer, env)
	}
	if err != nil {
		h.Log.Error("publish order created", zap.String("order_id", o.ID), zap.Error(err))
	}

	writeJSON(w, http.StatusAccepted, resp)
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		writeJSON(w, http.StatusOK, json.RawMessage(s))
		return
	}

	status, err := h.Repo.GetOrderStatus(ctx, orderID)
	if errors.Is(err, orders.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	h.cacheStatus(ctx, orderID, status)
	writeJSON(w, http.StatusOK, map[string]any{"status": status})
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	status := orders.Status(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "unknown status"})
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	list, err := h.Repo.ListOrders(r.Context(), status, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusReq
	if err := decode(r, &req); err != nil || !req.Status.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status"})
		return
	}
	id := chi.URLParam(r, "id")
	err := h.Repo.UpdateStatus(r.Context(), id, req.Status)
	switch {
	case err == nil:
		h.cacheStatus(r.Context(), id, req.Status)
		writeJSON(w, http.StatusOK, map[string]any{"id": id, "status": req.Status})
	case errors.Is(err, orders.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, orders.ErrInvalidTransition):
		writeError(w, http.StatusConflict, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func (h *OrdersHandler) notifications(w http.ResponseWriter, r *http.Request) {
	n, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	if n <= 0 || n > redisx.MaxNotifications {
		n = 20
	}
	ns, err := h.Notifications.Recent(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, ns)
}

func (h *OrdersHandler) cacheStatus(ctx context.Context, orderID string, s orders.Status) {
	b, _ := json.Marshal(map[string]any{"status": s})
	_ = h.Redis.Set(ctx, fmt.Sprintf(redisx.KeyOrderStatus, orderID), b, redisx.TTLStatusCache).Err()
}
