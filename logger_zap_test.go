package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.DebugLevel)
	logger := NewZapLogger(zap.New(core))

	logger.Debugf("GET %s", "123/messages")
	logger.Warnf("graph api error %d", 429)
	logger.Errorf("request failed: %v", "timeout")

	require.Equal(t, 3, logs.Len())
	entries := logs.All()
	assert.Equal(t, "GET 123/messages", entries[0].Message)
	assert.Equal(t, zap.DebugLevel, entries[0].Level)
	assert.Equal(t, "graph api error 429", entries[1].Message)
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, zap.ErrorLevel, entries[2].Level)
}

func TestNewZapLogger_NilFallsBackToNop(t *testing.T) {
	t.Parallel()

	logger := NewZapLogger(nil)
	// Must not panic.
	logger.Debugf("ignored")
}

func TestNewDefaultZapLogger(t *testing.T) {
	t.Parallel()

	logger, err := NewDefaultZapLogger()
	require.NoError(t, err)
	assert.NotNil(t, logger)
}
