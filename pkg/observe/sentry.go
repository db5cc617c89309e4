package observe

import (
	"encoding/json"
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"

	"weather-check/pkg/logger"
)

const (
	_sentryMaxErrorDepth        int           = 9
	_sentryFlushTimeout         time.Duration = 5 * time.Second
	_sentryServerRequestTimeout time.Duration = 5 * time.Second
	_logTimestampLayout                       = "2006-01-02T15-04-05.000"
)

// SentryHook is an io.Writer meant to sit next to stdout in the zap core.
// It forwards error, fatal and panic entries to Sentry and drops the rest.
type SentryHook struct {
	appZone string
	appName string
	enabled bool
	l       *logger.Logger
}

type logEntry struct {
	Level      string `json:"level"`
	AppName    string `json:"app_name"`
	AppZone    string `json:"app_zone"`
	CallerFile string `json:"caller_file"`
	CallerLine int    `json:"caller_line"`
	CallerFunc string `json:"caller_func"`
	Stack      string `json:"stack"`
	Message    string `json:"msg"`
	Error      string `json:"error"`
	Timestamp  string `json:"timestamp"`

	// search context attached by the pipeline and the view state controller
	Kind       string `json:"kind"`
	Query      string `json:"query"`
	Generation uint64 `json:"generation"`
}

// NewSentryHook initialises the global Sentry client. An empty dsn yields a
// disabled hook that accepts and discards writes.
func NewSentryHook(appZone, appName string, isDebug bool, dsn string) *SentryHook {
	h := &SentryHook{
		appZone: appZone,
		appName: appName,
	}
	if dsn == "" {
		return h
	}

	sentryTransport := sentry.NewHTTPTransport()
	sentryTransport.Timeout = _sentryServerRequestTimeout
	if err := sentry.Init(
		sentry.ClientOptions{
			AttachStacktrace: true,
			Debug:            isDebug,
			Dsn:              dsn,
			Environment:      appZone,
			MaxErrorDepth:    _sentryMaxErrorDepth,
			ServerName:       appName,
			Transport:        sentryTransport,
		}); err != nil {
		log.Println("sentry init error: ", err.Error())
		return h
	}

	h.enabled = true
	return h
}

func (h *SentryHook) Enabled() bool {
	return h.enabled
}

func (*SentryHook) mapLevel(zl zapcore.Level) sentry.Level {
	switch zl {
	case zapcore.DebugLevel, zapcore.InvalidLevel:
		return sentry.LevelDebug
	case zapcore.InfoLevel:
		return sentry.LevelInfo
	case zapcore.WarnLevel:
		return sentry.LevelWarning
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.FatalLevel, zapcore.PanicLevel, zapcore.DPanicLevel:
		return sentry.LevelFatal
	}

	return sentry.LevelDebug
}

func (h *SentryHook) Write(p []byte) (n int, err error) {
	if !h.enabled {
		return len(p), nil
	}

	event, err := h.buildEvent(p)
	if err != nil {
		h.report(err)
		return len(p), nil
	}
	if event != nil {
		sentry.CaptureEvent(event)
	}

	return len(p), nil
}

// buildEvent returns nil for entries below error level.
func (h *SentryHook) buildEvent(p []byte) (*sentry.Event, error) {
	var entry logEntry
	if err := json.Unmarshal(p, &entry); err != nil {
		return nil, errors.Wrap(err, "[SentryHook] json.Unmarshal data")
	}

	level, err := zapcore.ParseLevel(entry.Level)
	if err != nil {
		return nil, errors.Wrap(err, "[SentryHook] parse zap level")
	}
	if level < zapcore.ErrorLevel || entry.Message == "" {
		return nil, nil
	}

	timestamp, err := time.ParseInLocation(_logTimestampLayout, entry.Timestamp, time.UTC)
	if err != nil {
		timestamp = time.Now()
	}

	event := sentry.NewEvent()
	event.Environment = h.appZone
	event.Level = h.mapLevel(level)
	event.Timestamp = timestamp
	event.Message = entry.Message
	event.Extra["AppName"] = h.appName
	event.Extra["Error"] = entry.Error
	event.Extra["CallerFile"] = entry.CallerFile
	event.Extra["CallerLine"] = entry.CallerLine
	event.Extra["CallerFunc"] = entry.CallerFunc
	event.Extra["Stack"] = entry.Stack
	if entry.Kind != "" {
		event.Tags["error_kind"] = entry.Kind
	}
	if entry.Query != "" {
		event.Tags["query"] = entry.Query
		event.Fingerprint = []string{entry.Message, entry.Kind}
	}
	if entry.Generation > 0 {
		event.Extra["Generation"] = entry.Generation
	}
	event.Exception = append(event.Exception, sentry.Exception{
		Type:       entry.Message,
		Value:      entry.Error,
		Stacktrace: sentry.NewStacktrace(),
	})

	return event, nil
}

func (h *SentryHook) report(err error) {
	if h.l != nil {
		h.l.Warning(err.Error())
		return
	}
	log.Println(err.Error())
}

// SetLogger wires the application logger in after construction; the hook is
// itself one of that logger's writers.
func (h *SentryHook) SetLogger(l *logger.Logger) {
	if l != nil {
		h.l = l
	}
}

// Flush waits for buffered events to be delivered.
func (h *SentryHook) Flush() bool {
	if !h.enabled {
		return true
	}
	return sentry.Flush(_sentryFlushTimeout)
}
