package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.TraceLevel, ParseLevel("trace"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(Config{Level: zerolog.DebugLevel, Format: "json"}, &buf)

	ctx := WithComponent(WithContext(context.Background(), logger), "resolver")
	FromContext(ctx).Info().Msg("hello")

	assert.Contains(t, buf.String(), `"component":"resolver"`)
	assert.Contains(t, buf.String(), `"message":"hello"`)
}

func TestFromContext_NoLogger(t *testing.T) {
	// Must not panic without a logger attached.
	FromContext(context.Background()).Info().Msg("dropped")
}

func TestNewWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "schemewatch.log")

	logger, cleanup, err := NewWithFile(Config{Level: zerolog.InfoLevel, Format: "json"}, path)
	require.NoError(t, err)
	logger.Info().Str("scheme", "dark").Msg("rendered")
	cleanup()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scheme":"dark"`)
}
