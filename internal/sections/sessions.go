package sections

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type session struct {
	editor   *Editor
	lastSeen time.Time
}

// Sessions holds the open editors of the admin page, one per browser tab.
// Idle editors are closed by a background sweep; closing a tab drops its
// history for good.
type Sessions struct {
	mu    sync.Mutex
	open  map[string]*session
	store OrderStore
	limit int
	ttl   time.Duration
	now   func() time.Time
	log   *zap.Logger

	stop      chan struct{}
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

func NewSessions(store OrderStore, limit int, ttl time.Duration, log *zap.Logger) *Sessions {
	return &Sessions{
		open:  map[string]*session{},
		store: store,
		limit: limit,
		ttl:   ttl,
		now:   time.Now,
		log:   log,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start runs the idle sweep until Close. Only the first call has effect.
func (s *Sessions) Start(interval time.Duration) {
	s.startOnce.Do(func() {
		go func() {
			defer close(s.done)
			t := time.NewTicker(interval)
			defer t.Stop()
			for {
				select {
				case <-s.stop:
					return
				case <-t.C:
					s.Sweep()
				}
			}
		}()
	})
}

func (s *Sessions) Open(ctx context.Context) (string, *Editor) {
	ed := OpenEditor(ctx, s.store, s.limit, s.log)
	id := uuid.NewString()
	s.mu.Lock()
	s.open[id] = &session{editor: ed, lastSeen: s.now()}
	s.mu.Unlock()
	s.log.Debug("editor session opened", zap.String("session", id))
	return id, ed
}

func (s *Sessions) Get(id string) (*Editor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ss, ok := s.open[id]
	if !ok {
		return nil, false
	}
	ss.lastSeen = s.now()
	return ss.editor, true
}

func (s *Sessions) Drop(id string) {
	s.mu.Lock()
	ss, ok := s.open[id]
	delete(s.open, id)
	s.mu.Unlock()
	if ok {
		ss.editor.Close()
	}
}

// Sweep closes editors idle for longer than the ttl.
func (s *Sessions) Sweep() int {
	cutoff := s.now().Add(-s.ttl)
	var expired []*Editor
	s.mu.Lock()
	for id, ss := range s.open {
		if ss.lastSeen.Before(cutoff) {
			expired = append(expired, ss.editor)
			delete(s.open, id)
		}
	}
	s.mu.Unlock()
	for _, ed := range expired {
		ed.Close()
	}
	if len(expired) > 0 {
		s.log.Info("expired editor sessions", zap.Int("count", len(expired)))
	}
	return len(expired)
}

func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.open)
}

// Close stops the sweep and closes every open editor. It is safe to call
// more than once and from several goroutines.
func (s *Sessions) Close() {
	s.closeOnce.Do(func() {
		close(s.stop)
		// a sweeper that never started cannot close done itself
		s.startOnce.Do(func() { close(s.done) })

		s.mu.Lock()
		open := s.open
		s.open = map[string]*session{}
		s.mu.Unlock()
		for _, ss := range open {
			ss.editor.Close()
		}
	})
}

// Wait blocks until Close has run and the sweep goroutine, if any, has exited.
func (s *Sessions) Wait() { <-s.done }
