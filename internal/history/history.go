// Package history keeps a bounded, linear undo/redo list of state snapshots.
package history

// DefaultLimit is the number of snapshots kept when no limit is configured.
const DefaultLimit = 50

type Option[T any] func(*History[T])

// WithLimit caps the number of snapshots. Values below 1 are treated as 1.
func WithLimit[T any](n int) Option[T] {
	return func(h *History[T]) {
		if n < 1 {
			n = 1
		}
		h.limit = n
	}
}

// WithClone sets the copy function applied to every state entering or leaving
// the history, so callers never share memory with a stored snapshot.
func WithClone[T any](clone func(T) T) Option[T] {
	return func(h *History[T]) { h.clone = clone }
}

// History is not safe for concurrent use; callers serialize access.
type History[T any] struct {
	snapshots []T
	cursor    int
	limit     int
	clone     func(T) T
}

func New[T any](initial T, opts ...Option[T]) *History[T] {
	h := &History[T]{limit: DefaultLimit, clone: func(v T) T { return v }}
	for _, o := range opts {
		o(h)
	}
	h.snapshots = []T{h.clone(initial)}
	return h
}

func (h *History[T]) Current() T { return h.clone(h.snapshots[h.cursor]) }

// Commit drops any redo entries, appends next and makes it current. When the
// limit is exceeded the oldest snapshot is discarded.
func (h *History[T]) Commit(next T) {
	h.snapshots = append(h.snapshots[:h.cursor+1:h.cursor+1], h.clone(next))
	h.cursor = len(h.snapshots) - 1
	if over := len(h.snapshots) - h.limit; over > 0 {
		h.snapshots = append([]T(nil), h.snapshots[over:]...)
		h.cursor -= over
	}
}

// Apply commits fn(current).
func (h *History[T]) Apply(fn func(T) T) {
	h.Commit(fn(h.Current()))
}

func (h *History[T]) Undo() bool {
	if !h.CanUndo() {
		return false
	}
	h.cursor--
	return true
}

func (h *History[T]) Redo() bool {
	if !h.CanRedo() {
		return false
	}
	h.cursor++
	return true
}

func (h *History[T]) CanUndo() bool { return h.cursor > 0 }
func (h *History[T]) CanRedo() bool { return h.cursor < len(h.snapshots)-1 }

// Reset replaces the whole history with a single snapshot.
func (h *History[T]) Reset(initial T) {
	h.snapshots = []T{h.clone(initial)}
	h.cursor = 0
}

func (h *History[T]) Len() int    { return len(h.snapshots) }
func (h *History[T]) Cursor() int { return h.cursor }
func (h *History[T]) Limit() int  { return h.limit }
