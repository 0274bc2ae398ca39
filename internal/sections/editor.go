package sections

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ariefcatur/zenzee-admin/internal/history"
	"go.uber.org/zap"
)

var (
	ErrHeroLocked      = errors.New("hero section must stay first and enabled")
	ErrSaveInProgress  = errors.New("save already in progress")
	ErrSessionClosed   = errors.New("editor session closed")
	ErrInvalidSchedule = errors.New("schedule end is before start")
	ErrUnknownSection  = errors.New("section not found")
)

type OrderStore interface {
	LoadSectionOrder(ctx context.Context) ([]Item, error)
	SaveSectionOrder(ctx context.Context, items []Item) error
}

// State is what the admin page renders after every action.
type State struct {
	Items   []Item `json:"items"`
	CanUndo bool   `json:"can_undo"`
	CanRedo bool   `json:"can_redo"`
	Dirty   bool   `json:"dirty"`
	Saving  bool   `json:"saving"`
}

// Editor is one admin session over the homepage section order. Every edit
// becomes a snapshot in its history; only Save reaches the store.
type Editor struct {
	mu     sync.Mutex
	hist   *history.History[[]Item]
	saved  []Item
	saving bool
	closed bool

	store OrderStore
	log   *zap.Logger
}

func NewEditor(store OrderStore, initial []Item, limit int, log *zap.Logger) *Editor {
	return &Editor{
		hist: history.New(initial,
			history.WithLimit[[]Item](limit),
			history.WithClone(Clone)),
		saved: Clone(initial),
		store: store,
		log:   log,
	}
}

// OpenEditor loads the persisted order, falling back to the default order
// when the store cannot be read.
func OpenEditor(ctx context.Context, store OrderStore, limit int, log *zap.Logger) *Editor {
	items, err := store.LoadSectionOrder(ctx)
	if err != nil {
		log.Warn("load section order, using default", zap.Error(err))
		items = DefaultOrder()
	}
	return NewEditor(store, items, limit, log)
}

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *Editor) stateLocked() State {
	cur := e.hist.Current()
	return State{
		Items:   cur,
		CanUndo: e.hist.CanUndo(),
		CanRedo: e.hist.CanRedo(),
		Dirty:   !equalItems(cur, e.saved),
		Saving:  e.saving,
	}
}

func (e *Editor) Reorder(from, to int) (State, error) {
	return e.edit(func(cur []Item) ([]Item, error) {
		if from == to || from < 0 || to < 0 || from >= len(cur) || to >= len(cur) {
			return cur, nil
		}
		if heroFirst(cur) && (from == 0 || to == 0) {
			return nil, ErrHeroLocked
		}
		return Reorder(cur, from, to), nil
	})
}

func (e *Editor) SetEnabled(key Key, enabled bool) (State, error) {
	return e.edit(func(cur []Item) ([]Item, error) {
		if key.Kind == KindHero && !enabled {
			return nil, ErrHeroLocked
		}
		if indexOf(cur, key) < 0 {
			return nil, ErrUnknownSection
		}
		return SetEnabled(cur, key, enabled), nil
	})
}

func (e *Editor) SetSchedule(key Key, start, end *time.Time) (State, error) {
	return e.edit(func(cur []Item) ([]Item, error) {
		if start != nil && end != nil && end.Before(*start) {
			return nil, ErrInvalidSchedule
		}
		if indexOf(cur, key) < 0 {
			return nil, ErrUnknownSection
		}
		return SetSchedule(cur, key, start, end), nil
	})
}

func (e *Editor) AddCollection(c ProductCollection) (State, error) {
	return e.edit(func(cur []Item) ([]Item, error) {
		return AddCollection(cur, c), nil
	})
}

func (e *Editor) RemoveCollection(collectionID string) (State, error) {
	return e.edit(func(cur []Item) ([]Item, error) {
		return RemoveCollection(cur, collectionID), nil
	})
}

func (e *Editor) Undo() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hist.Undo()
	return e.stateLocked()
}

func (e *Editor) Redo() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.hist.Redo()
	return e.stateLocked()
}

// edit commits the result of fn unless it fails or changes nothing.
func (e *Editor) edit(fn func([]Item) ([]Item, error)) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return State{}, ErrSessionClosed
	}
	cur := e.hist.Current()
	next, err := fn(cur)
	if err != nil {
		return e.stateLocked(), err
	}
	if !equalItems(cur, next) {
		e.hist.Commit(next)
	}
	return e.stateLocked(), nil
}

// Save persists the current snapshot. A failed save leaves the history
// untouched so the user can retry. Only one save runs at a time.
func (e *Editor) Save(ctx context.Context) (State, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return State{}, ErrSessionClosed
	}
	if e.saving {
		st := e.stateLocked()
		e.mu.Unlock()
		return st, ErrSaveInProgress
	}
	e.saving = true
	snap := e.hist.Current()
	e.mu.Unlock()

	err := e.store.SaveSectionOrder(ctx, snap)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.saving = false
	if e.closed {
		// page already gone; nothing left to update
		return State{}, ErrSessionClosed
	}
	if err != nil {
		e.log.Error("save section order", zap.Error(err), zap.Int("items", len(snap)))
		return e.stateLocked(), fmt.Errorf("save section order: %w", err)
	}
	e.saved = snap
	e.log.Info("section order saved", zap.Int("items", len(snap)))
	return e.stateLocked(), nil
}

// Reload replaces the history with freshly loaded data. On read failure the
// current history is kept.
func (e *Editor) Reload(ctx context.Context) (State, error) {
	items, err := e.store.LoadSectionOrder(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return State{}, ErrSessionClosed
	}
	if err != nil {
		e.log.Warn("reload section order", zap.Error(err))
		return e.stateLocked(), fmt.Errorf("load section order: %w", err)
	}
	e.hist.Reset(items)
	e.saved = Clone(items)
	return e.stateLocked(), nil
}

// Close discards the history. Later calls return ErrSessionClosed.
func (e *Editor) Close() {
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
}

func heroFirst(items []Item) bool {
	return len(items) > 0 && items[0].Kind == KindHero
}

func equalItems(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		x, y := a[i], b[i]
		if x.Kind != y.Kind || x.Label != y.Label || x.Enabled != y.Enabled || x.CollectionID != y.CollectionID {
			return false
		}
		if !equalTime(x.ScheduleStart, y.ScheduleStart) || !equalTime(x.ScheduleEnd, y.ScheduleEnd) {
			return false
		}
	}
	return true
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
