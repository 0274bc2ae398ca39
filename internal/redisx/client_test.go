package redisx

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkOnce(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := New(mr.Addr())
	defer rdb.Close()
	ctx := context.Background()

	first, err := MarkOnce(ctx, rdb, "dedup:test:1", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := MarkOnce(ctx, rdb, "dedup:test:1", time.Minute)
	require.NoError(t, err)
	assert.False(t, second)

	assert.True(t, mr.Exists("dedup:test:1"))

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("dedup:test:1"))
	again, err := MarkOnce(ctx, rdb, "dedup:test:1", time.Minute)
	require.NoError(t, err)
	assert.True(t, again)
}
