package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"":      zapcore.InfoLevel,
		"bogus": zapcore.InfoLevel,
	}
	for in, want := range cases {
		l, err := New(in, "json", "test")
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(want), "level %q", in)
		if want > zapcore.DebugLevel {
			assert.False(t, l.Core().Enabled(want-1), "level %q", in)
		}
	}
}

func TestNew_Console(t *testing.T) {
	l, err := New("info", "console", "")
	require.NoError(t, err)
	assert.NotNil(t, l)
}
