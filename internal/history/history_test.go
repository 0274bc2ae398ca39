package history

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cloneInts(v []int) []int { return append([]int(nil), v...) }

func TestNew_SingleSnapshot(t *testing.T) {
	h := New(1)

	assert.Equal(t, 1, h.Current())
	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 0, h.Cursor())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
	assert.Equal(t, DefaultLimit, h.Limit())
}

func TestCommit_UndoRedoFlags(t *testing.T) {
	h := New(0)
	for i := 1; i <= 5; i++ {
		h.Commit(i)
		assert.True(t, h.CanUndo())
		assert.False(t, h.CanRedo())
	}
	assert.Equal(t, 5, h.Current())
}

func TestUndoThenRedo_RestoresState(t *testing.T) {
	h := New([]int{1}, WithClone(cloneInts))
	h.Commit([]int{1, 2})
	h.Commit([]int{1, 2, 3})

	before := h.Current()
	cursor := h.Cursor()

	require.True(t, h.Undo())
	assert.Equal(t, []int{1, 2}, h.Current())
	require.True(t, h.Redo())

	if diff := cmp.Diff(before, h.Current()); diff != "" {
		t.Fatalf("state after undo/redo mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, cursor, h.Cursor())
}

func TestCommitAfterUndo_TruncatesRedo(t *testing.T) {
	h := New(0)
	h.Commit(1)
	h.Commit(2)
	h.Commit(3)
	h.Undo()
	h.Undo()
	require.True(t, h.CanRedo())

	h.Commit(10)

	assert.False(t, h.CanRedo())
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 10, h.Current())
	h.Undo()
	assert.Equal(t, 1, h.Current())
}

func TestUndoRedo_NoopAtBounds(t *testing.T) {
	h := New("a")
	assert.False(t, h.Undo())
	assert.False(t, h.Redo())
	assert.Equal(t, "a", h.Current())
}

func TestCommit_BoundedAtLimit(t *testing.T) {
	h := New(0)
	for i := 1; i <= 50; i++ {
		h.Commit(i)
	}

	assert.Equal(t, 50, h.Len())
	assert.Equal(t, 50, h.Current())
	assert.Equal(t, 49, h.Cursor())

	for h.Undo() {
	}
	assert.Equal(t, 1, h.Current(), "oldest snapshot dropped")
}

func TestCommit_BoundAfterUndo(t *testing.T) {
	h := New(0, WithLimit[int](3))
	h.Commit(1)
	h.Commit(2)
	h.Undo()
	h.Commit(3)
	h.Commit(4)

	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 4, h.Current())
	h.Undo()
	h.Undo()
	assert.Equal(t, 1, h.Current())
	assert.False(t, h.CanUndo())
}

func TestWithLimit_Minimum(t *testing.T) {
	h := New(0, WithLimit[int](0))
	h.Commit(1)

	assert.Equal(t, 1, h.Len())
	assert.Equal(t, 1, h.Current())
	assert.False(t, h.CanUndo())
}

func TestApply(t *testing.T) {
	h := New([]int{1}, WithClone(cloneInts))
	h.Apply(func(v []int) []int { return append(v, 2) })

	assert.Equal(t, []int{1, 2}, h.Current())
	h.Undo()
	assert.Equal(t, []int{1}, h.Current())
}

func TestClone_NoAliasing(t *testing.T) {
	src := []int{1, 2}
	h := New(src, WithClone(cloneInts))
	src[0] = 99

	cur := h.Current()
	cur[1] = 42

	assert.Equal(t, []int{1, 2}, h.Current())
}

func TestReset(t *testing.T) {
	h := New(0)
	h.Commit(1)
	h.Commit(2)
	h.Undo()

	h.Reset(7)

	assert.Equal(t, 7, h.Current())
	assert.Equal(t, 1, h.Len())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}
