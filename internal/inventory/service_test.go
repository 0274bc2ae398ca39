package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/ariefcatur/zenzee-admin/internal/events"
	"github.com/ariefcatur/zenzee-admin/internal/redisx"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memRepo struct {
	products []Product
	lists    int
	applies  int
	listErr  error
}

func (m *memRepo) ListProducts(ctx context.Context) ([]Product, error) {
	m.lists++
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]Product(nil), m.products...), nil
}

func (m *memRepo) ApplyBulk(ctx context.Context, ids []string, op Op, qty int) ([]StockChange, error) {
	m.applies++
	current := map[string]int{}
	for _, p := range m.products {
		current[p.ID] = p.Stock
	}
	changes, err := Plan(current, ids, op, qty)
	if err != nil {
		return nil, err
	}
	for _, c := range changes {
		for i := range m.products {
			if m.products[i].ID == c.ProductID {
				m.products[i].Stock = c.To
			}
		}
	}
	return changes, nil
}

type feed struct{ values [][]byte }

func (f *feed) Publish(key, value []byte, headers ...kafkago.Header) { f.values = append(f.values, value) }

func setupService(t *testing.T) (*miniredis.Miniredis, *memRepo, *feed, *Service) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	repo := &memRepo{products: sample()}
	f := &feed{}
	return mr, repo, f, &Service{Repo: repo, Redis: rdb, Feed: f, ServiceName: "test", Log: zap.NewNop()}
}

func TestBulkUpdate_ValidatesBeforeIO(t *testing.T) {
	_, repo, f, svc := setupService(t)
	ctx := context.Background()

	_, err := svc.BulkUpdate(ctx, []string{"1"}, "add", "ten")
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = svc.BulkUpdate(ctx, []string{"1"}, "double", "1")
	assert.ErrorIs(t, err, ErrInvalidOp)
	_, err = svc.BulkUpdate(ctx, nil, "add", "1")
	assert.ErrorIs(t, err, ErrEmptySelection)

	assert.Equal(t, 0, repo.applies)
	assert.Empty(t, f.values)
}

func TestBulkUpdate_AppliesAndPublishes(t *testing.T) {
	_, repo, f, svc := setupService(t)

	changes, err := svc.BulkUpdate(context.Background(), []string{"2", "3"}, "subtract", "4")
	require.NoError(t, err)
	assert.Equal(t, []StockChange{{ProductID: "2", From: 0, To: 0}, {ProductID: "3", From: 3, To: 0}}, changes)
	assert.Equal(t, 0, repo.products[2].Stock)

	require.Len(t, f.values, 1)
	var env events.Envelope
	require.NoError(t, json.Unmarshal(f.values[0], &env))
	p, err := events.Decode[events.ProductChangedPayload](env)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, p.ProductIDs)
	assert.Equal(t, "bulk_subtract", p.Reason)
}

func TestBulkUpdate_UnknownProductNoPartialWrite(t *testing.T) {
	_, repo, f, svc := setupService(t)

	_, err := svc.BulkUpdate(context.Background(), []string{"1", "missing"}, "set", "0")
	assert.ErrorIs(t, err, ErrUnknownProduct)
	assert.Equal(t, 12, repo.products[0].Stock)
	assert.Empty(t, f.values)
}

func TestList_UsesSnapshot(t *testing.T) {
	mr, repo, _, svc := setupService(t)
	ctx := context.Background()

	ps, err := svc.List(ctx, Query{Stock: StockOut})
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, ids(ps))
	assert.True(t, mr.Exists(redisx.KeyInventorySnapshot))

	_, err = svc.List(ctx, Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.lists)
}

func TestHandleProductChanged_RefreshesSnapshot(t *testing.T) {
	_, repo, f, svc := setupService(t)
	ctx := context.Background()
	_, err := svc.List(ctx, Query{})
	require.NoError(t, err)

	_, err = svc.BulkUpdate(ctx, []string{"2"}, "set", "9")
	require.NoError(t, err)
	require.NoError(t, svc.HandleProductChanged(ctx, kafkago.Message{Value: f.values[0]}))
	assert.Equal(t, 2, repo.lists)

	ps, err := svc.List(ctx, Query{Stock: StockOut})
	require.NoError(t, err)
	assert.Empty(t, ps)
}

func TestHandleProductChanged_IgnoresOtherEvents(t *testing.T) {
	_, repo, _, svc := setupService(t)
	env, err := events.New(events.TypeSettingChanged, "x", "k", events.SettingChangedPayload{Key: "k"})
	require.NoError(t, err)
	b, _ := json.Marshal(env)

	require.NoError(t, svc.HandleProductChanged(context.Background(), kafkago.Message{Value: b}))
	require.NoError(t, svc.HandleProductChanged(context.Background(), kafkago.Message{Value: []byte("junk")}))
	assert.Equal(t, 0, repo.lists)
}

func TestList_RepoError(t *testing.T) {
	_, repo, _, svc := setupService(t)
	repo.listErr = errors.New("db down")

	_, err := svc.List(context.Background(), Query{})
	assert.Error(t, err)
}

func TestBulkUpdate_DropsSnapshot(t *testing.T) {
	mr, _, _, svc := setupService(t)
	ctx := context.Background()
	_, err := svc.List(ctx, Query{})
	require.NoError(t, err)

	_, err = svc.BulkUpdate(ctx, []string{"2"}, "add", "1")
	require.NoError(t, err)
	assert.False(t, mr.Exists(redisx.KeyInventorySnapshot))

	ps, err := svc.List(ctx, Query{Stock: StockOut})
	require.NoError(t, err)
	assert.Empty(t, ps)
}
