package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ariefcatur/zenzee-admin/internal/events"
	"github.com/ariefcatur/zenzee-admin/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type Store interface {
	ListProducts(ctx context.Context) ([]Product, error)
	ApplyBulk(ctx context.Context, ids []string, op Op, qty int) ([]StockChange, error)
}

type Service struct {
	Repo        Store
	Redis       *redis.Client
	Feed        events.Publisher
	ServiceName string
	Log         *zap.Logger
}

// BulkUpdate validates op and quantity before any I/O, applies the change
// to every selected product and announces it on the product feed.
func (s *Service) BulkUpdate(ctx context.Context, ids []string, opText, qtyText string) ([]StockChange, error) {
	op, err := ParseOp(opText)
	if err != nil {
		return nil, err
	}
	qty, err := ParseQuantity(qtyText)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrEmptySelection
	}

	changes, err := s.Repo.ApplyBulk(ctx, ids, op, qty)
	if err != nil {
		return nil, fmt.Errorf("bulk %s stock: %w", op, err)
	}
	s.Log.Info("bulk stock update", zap.String("op", string(op)), zap.Int("qty", qty), zap.Int("products", len(changes)))
	// the next List re-reads instead of serving the pre-update snapshot
	if err := s.Redis.Del(ctx, redisx.KeyInventorySnapshot).Err(); err != nil {
		s.Log.Warn("drop inventory snapshot", zap.Error(err))
	}

	if s.Feed == nil {
		return changes, nil
	}
	touched := make([]string, 0, len(changes))
	for _, c := range changes {
		touched = append(touched, c.ProductID)
	}
	env, err := events.New(events.TypeProductChanged, s.ServiceName, "inventory", events.ProductChangedPayload{
		ProductIDs: touched,
		Reason:     "bulk_" + string(op),
	})
	if err == nil {
		err = events.Emit(s.Feed, env)
	}
	if err != nil {
		s.Log.Warn("publish product change", zap.Error(err))
	}
	return changes, nil
}

// List serves the inventory table from the snapshot, falling back to a
// fresh read when the snapshot is missing.
func (s *Service) List(ctx context.Context, q Query) ([]Product, error) {
	ps, err := s.snapshot(ctx)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.Log.Warn("read inventory snapshot", zap.Error(err))
		}
		if ps, err = s.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return Filter(ps, q), nil
}

// Refresh re-reads every product and replaces the snapshot wholesale.
func (s *Service) Refresh(ctx context.Context) ([]Product, error) {
	ps, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	b, err := json.Marshal(ps)
	if err != nil {
		return nil, err
	}
	if err := s.Redis.Set(ctx, redisx.KeyInventorySnapshot, b, redisx.TTLSnapshot).Err(); err != nil {
		s.Log.Warn("write inventory snapshot", zap.Error(err))
	}
	return ps, nil
}

func (s *Service) snapshot(ctx context.Context) ([]Product, error) {
	b, err := s.Redis.Get(ctx, redisx.KeyInventorySnapshot).Bytes()
	if err != nil {
		return nil, err
	}
	var ps []Product
	if err := json.Unmarshal(b, &ps); err != nil {
		return nil, err
	}
	return ps, nil
}

// HandleProductChanged is the change-feed consumer: any product event
// triggers a full refresh.
func (s *Service) HandleProductChanged(ctx context.Context, m kafkago.Message) error {
	var env events.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		s.Log.Warn("drop undecodable product event", zap.Error(err))
		return nil
	}
	if env.EventType != events.TypeProductChanged {
		return nil
	}
	_, err := s.Refresh(ctx)
	return err
}
