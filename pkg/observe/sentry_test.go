package observe

import (
	"bytes"
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"weather-check/pkg/logger"
)

func TestSentryHook_DisabledWithoutDSN(t *testing.T) {
	h := NewSentryHook("testing", "test-app", false, "")

	assert.False(t, h.Enabled())
	assert.True(t, h.Flush())

	n, err := h.Write([]byte("not even json"))
	require.NoError(t, err)
	assert.Equal(t, len("not even json"), n)
}

func TestSentryHook_BuildEventFromLoggerOutput(t *testing.T) {
	var buf bytes.Buffer
	logger.NewZapLogger("test-app", &buf).WithEnv("testing").
		Error(errors.New("forecast: HTTP error (status 503)"))

	h := NewSentryHook("testing", "test-app", false, "")
	event, err := h.buildEvent(buf.Bytes())
	require.NoError(t, err)
	require.NotNil(t, event)

	assert.Equal(t, sentry.LevelError, event.Level)
	assert.Equal(t, "testing", event.Environment)
	assert.Equal(t, "forecast: HTTP error (status 503)", event.Message)
	assert.Equal(t, "test-app", event.Extra["AppName"])
	assert.Equal(t, "forecast: HTTP error (status 503)", event.Extra["Error"])
	assert.NotEmpty(t, event.Extra["Stack"])
	require.Len(t, event.Exception, 1)
	assert.Equal(t, "forecast: HTTP error (status 503)", event.Exception[0].Value)
	assert.False(t, event.Timestamp.IsZero())
}

func TestSentryHook_BuildEventSkipsLowLevels(t *testing.T) {
	var buf bytes.Buffer
	logger.NewZapLogger("test-app", &buf).Warning("location not found")

	h := NewSentryHook("testing", "test-app", false, "")
	event, err := h.buildEvent(buf.Bytes())
	require.NoError(t, err)
	assert.Nil(t, event)
}

func TestSentryHook_BuildEventRejectsGarbage(t *testing.T) {
	h := NewSentryHook("testing", "test-app", false, "")

	_, err := h.buildEvent([]byte("{"))
	assert.Error(t, err)

	_, err = h.buildEvent([]byte(`{"level":"loud","msg":"x"}`))
	assert.Error(t, err)
}

func TestSentryHook_MapLevel(t *testing.T) {
	h := &SentryHook{}

	assert.Equal(t, sentry.LevelDebug, h.mapLevel(zapcore.DebugLevel))
	assert.Equal(t, sentry.LevelInfo, h.mapLevel(zapcore.InfoLevel))
	assert.Equal(t, sentry.LevelWarning, h.mapLevel(zapcore.WarnLevel))
	assert.Equal(t, sentry.LevelError, h.mapLevel(zapcore.ErrorLevel))
	assert.Equal(t, sentry.LevelFatal, h.mapLevel(zapcore.FatalLevel))
	assert.Equal(t, sentry.LevelFatal, h.mapLevel(zapcore.DPanicLevel))
}

func TestSentryHook_BuildEventTagsSearchContext(t *testing.T) {
	var buf bytes.Buffer
	logger.NewZapLogger("test-app", &buf).Error(errors.New("search failed: upstream"), map[string]any{
		"query":      "Kolkata,IN",
		"kind":       "upstream",
		"generation": uint64(4),
	})

	h := NewSentryHook("testing", "test-app", false, "")
	event, err := h.buildEvent(buf.Bytes())
	require.NoError(t, err)
	require.NotNil(t, event)

	assert.Equal(t, "upstream", event.Tags["error_kind"])
	assert.Equal(t, "Kolkata,IN", event.Tags["query"])
	assert.Equal(t, []string{"search failed: upstream", "upstream"}, event.Fingerprint)
	assert.Equal(t, uint64(4), event.Extra["Generation"])
}
