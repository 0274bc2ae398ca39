package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	l := DefaultLimits(10, 100)

	k, err := l.Validate("newArrivals", "image/jpeg", 10*mb)
	require.NoError(t, err)
	assert.Equal(t, KindImage, k)

	_, err = l.Validate("newArrivals", "image/png", 10*mb+1)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = l.Validate("brandBanner", "video/mp4", 60*mb)
	assert.ErrorIs(t, err, ErrTooLarge)

	k, err = l.Validate("hero", "video/mp4", 60*mb)
	require.NoError(t, err)
	assert.Equal(t, KindVideo, k)

	_, err = l.Validate("hero", "video/mp4", 101*mb)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = l.Validate("hero", "application/pdf", 1)
	assert.ErrorIs(t, err, ErrUnsupported)

	_, err = l.Validate("hero", "image/gif", 0)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestLimitsMax(t *testing.T) {
	assert.Equal(t, int64(100*mb), DefaultLimits(10, 100).Max())
	assert.Equal(t, int64(50*mb), DefaultLimits(10, 20).Max())
}
