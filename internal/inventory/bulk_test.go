package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuantity(t *testing.T) {
	n, err := ParseQuantity(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, 12, n)

	for _, bad := range []string{"", "abc", "-1", "1.5"} {
		_, err := ParseQuantity(bad)
		assert.ErrorIs(t, err, ErrInvalidQuantity, bad)
	}
}

func TestParseOp(t *testing.T) {
	op, err := ParseOp("Subtract")
	require.NoError(t, err)
	assert.Equal(t, OpSubtract, op)

	_, err = ParseOp("multiply")
	assert.ErrorIs(t, err, ErrInvalidOp)
}

func TestOpApply(t *testing.T) {
	assert.Equal(t, 7, OpSet.Apply(3, 7))
	assert.Equal(t, 10, OpAdd.Apply(3, 7))
	assert.Equal(t, 1, OpSubtract.Apply(8, 7))
	assert.Equal(t, 0, OpSubtract.Apply(3, 7))
}

func TestPlan(t *testing.T) {
	current := map[string]int{"a": 4, "b": 0}

	got, err := Plan(current, []string{"a", "b", "a"}, OpAdd, 3)
	require.NoError(t, err)
	assert.Equal(t, []StockChange{{ProductID: "a", From: 4, To: 7}, {ProductID: "b", From: 0, To: 3}}, got)

	_, err = Plan(current, []string{"a", "zzz"}, OpSet, 1)
	assert.ErrorIs(t, err, ErrUnknownProduct)

	_, err = Plan(current, nil, OpSet, 1)
	assert.ErrorIs(t, err, ErrEmptySelection)
}
