package logger

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const timestampLayout = "2006-01-02T15-04-05.000"

type Logger struct {
	appEnv  string
	appName string
	level   zap.AtomicLevel
	l       *zap.Logger
}

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// NewZapLogger builds a JSON logger that fans out to every writer given, or
// to stdout when none is. The level starts at debug; see SetLevel.
func NewZapLogger(appName string, writers ...io.Writer) *Logger {
	if len(writers) == 0 {
		writers = []io.Writer{os.Stdout}
	}
	return newLogger(appName, zapcore.NewJSONEncoder(encoderConfig()), writers, nil)
}

// NewFormattedZapLogger writes to out in format ("json" or "console") and to
// every sink in JSON. Sinks parse the entries, so they never get console
// output.
func NewFormattedZapLogger(appName, format string, out io.Writer, sinks ...io.Writer) *Logger {
	var enc zapcore.Encoder
	if format == FormatConsole {
		enc = zapcore.NewConsoleEncoder(encoderConfig())
	} else {
		enc = zapcore.NewJSONEncoder(encoderConfig())
	}
	return newLogger(appName, enc, []io.Writer{out}, sinks)
}

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = timeEncoder(timestampLayout, time.UTC)
	cfg.TimeKey = "timestamp"
	return cfg
}

func newLogger(appName string, enc zapcore.Encoder, writers, jsonSinks []io.Writer) *Logger {
	level := zap.NewAtomicLevelAt(zapcore.DebugLevel)

	cores := []zapcore.Core{
		zapcore.NewCore(enc, syncers(writers), level),
	}
	if len(jsonSinks) > 0 {
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig()), syncers(jsonSinks), level))
	}

	return &Logger{
		appName: appName,
		level:   level,
		l:       zap.New(zapcore.NewTee(cores...)),
	}
}

func syncers(writers []io.Writer) zapcore.WriteSyncer {
	ws := make([]zapcore.WriteSyncer, 0, len(writers))
	for _, w := range writers {
		ws = append(ws, zapcore.AddSync(w))
	}
	return zapcore.NewMultiWriteSyncer(ws...)
}

// WithEnv tags every entry with app_zone.
func (l *Logger) WithEnv(appEnv string) *Logger {
	l.appEnv = appEnv
	return l
}

// SetLevel accepts zap level names ("debug", "info", "warn", "error").
func (l *Logger) SetLevel(level string) error {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	l.level.SetLevel(parsed)
	return nil
}

func (l *Logger) Stop() error {
	return l.l.Sync()
}

func (l *Logger) Error(err error, fields ...map[string]any) {
	file, line, funcName := getRuntimeParams(2)
	l.l.WithOptions(zap.Fields(firstFields(fields)...)).Error(
		err.Error(),
		zap.String("app_zone", l.appEnv),
		zap.String("app_name", l.appName),
		zap.String("error", err.Error()),
		zap.String("caller_file", file),
		zap.Int("caller_line", line),
		zap.String("caller_func", funcName),
		zap.Stack("stack"),
	)
}

func (l *Logger) Info(msg string, fields ...map[string]any) {
	l.write(zapcore.InfoLevel, msg, fields)
}

func (l *Logger) Warning(msg string, fields ...map[string]any) {
	l.write(zapcore.WarnLevel, msg, fields)
}

func (l *Logger) Debug(msg string, fields ...map[string]any) {
	l.write(zapcore.DebugLevel, msg, fields)
}

func (l *Logger) Fatal(msg string, fields ...map[string]any) {
	l.write(zapcore.FatalLevel, msg, fields)
}

func (l *Logger) write(level zapcore.Level, msg string, fields []map[string]any) {
	file, line, funcName := getRuntimeParams(3)
	ce := l.l.WithOptions(zap.Fields(firstFields(fields)...)).Check(level, msg)
	if ce == nil {
		return
	}
	ce.Write(
		zap.String("app_zone", l.appEnv),
		zap.String("app_name", l.appName),
		zap.String("caller_file", file),
		zap.Int("caller_line", line),
		zap.String("caller_func", funcName),
	)
}

// Log writes an info entry from alternating keys and values. A "msg" key,
// when present, becomes the message. The HTTP access log goes through here.
func (l *Logger) Log(keyvals ...any) error {
	msg := ""
	rest := make([]any, 0, len(keyvals))
	for i := 0; i < len(keyvals); i += 2 {
		if k, ok := keyvals[i].(string); ok && k == "msg" && i+1 < len(keyvals) {
			msg = fmt.Sprint(keyvals[i+1])
			continue
		}
		rest = append(rest, keyvals[i:min(i+2, len(keyvals))]...)
	}

	l.l.Info(msg, append(toZapFields(rest),
		zap.String("app_zone", l.appEnv),
		zap.String("app_name", l.appName),
	)...)

	return nil
}

func toZapFields(keyvals []any) []zap.Field {
	fields := make([]zap.Field, 0, len(keyvals)/2)

	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			key = "invalid-key"
		}

		fields = append(fields, zap.Any(key, keyvals[i+1]))
	}

	return fields
}

func firstFields(fields []map[string]any) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	return mapToZapFields(fields[0])
}

func mapToZapFields(data map[string]any) []zap.Field {
	zapFields := make([]zap.Field, 0, len(data))

	for k, v := range data {
		zapFields = append(zapFields, zap.Any(k, v))
	}

	return zapFields
}

// getRuntimeParams reports the caller skip frames above itself.
func getRuntimeParams(skip int) (file string, line int, funcName string) {
	pc, file, line, ok := runtime.Caller(skip)
	if !ok {
		return "not_defined", 0, "not_defined"
	}
	if fn := runtime.FuncForPC(pc); fn != nil {
		funcName = fn.Name()
	}
	return file, line, funcName
}

func timeEncoder(layout string, location *time.Location) func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	return func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		t = t.In(location)
		type appendTimeEncoder interface {
			AppendTimeLayout(time.Time, string)
		}
		if enc, ok := enc.(appendTimeEncoder); ok {
			enc.AppendTimeLayout(t, layout)
			return
		}
		enc.AppendString(t.Format(layout))
	}
}
