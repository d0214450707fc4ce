// Package log provides structured logging for colonnade, backed by logrus.
// It exposes a small options API (output, JSON, file sink) plus field helpers
// so call sites can attach structured context without importing logrus
// directly. Taxonomy errors from internal/errors are expanded into
// path/action/param fields automatically.
package log

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"colonnade/internal/errors"
)

var (
	isDebug = false
	logger  = NewLogger()
)

// Field is one structured key/value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Logger wraps a logrus logger configured through Options.
type Logger struct {
	rl   *logrus.Logger
	file *os.File
}

// Option configures a Logger.
type Option func(*Logger)

// WithOutput directs log output to w.
func WithOutput(w io.Writer) Option {
	return func(l *Logger) {
		l.rl.SetOutput(w)
	}
}

// WithJSON switches the logger to one-JSON-object-per-line output.
func WithJSON() Option {
	return func(l *Logger) {
		l.rl.SetFormatter(&jsonFormatter{})
	}
}

// WithFile tees log output to the named file in addition to stdout.
// The file is opened in append mode and kept open for the logger's lifetime.
func WithFile(name string) Option {
	return func(l *Logger) {
		f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log: cannot open %s: %v\n", name, err)
			return
		}
		l.file = f
		l.rl.SetOutput(io.MultiWriter(os.Stdout, f))
	}
}

// NewLogger builds a Logger with the given options applied over the
// defaults (stdout, text format).
func NewLogger(opts ...Option) *Logger {
	rl := logrus.New()
	rl.SetOutput(os.Stdout)
	rl.SetFormatter(&textFormatter{})
	rl.SetLevel(logrus.TraceLevel)
	l := &Logger{rl: rl}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Configure replaces the package-level logger with one built from opts.
func Configure(opts ...Option) {
	logger = NewLogger(opts...)
}

// SetDebug toggles emission of Debug-level messages globally.
func SetDebug(debug bool) {
	isDebug = debug
}

// Close releases the file sink, if any.
func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// Entry is a log entry carrying accumulated fields.
type Entry struct {
	entry *logrus.Entry
}

func (l *Logger) root() *Entry {
	return &Entry{entry: logrus.NewEntry(l.rl)}
}

// With returns an Entry carrying the given fields.
func (l *Logger) With(fields ...Field) *Entry {
	return l.root().With(fields...)
}

// WithContext returns an Entry bound to ctx. Reserved for cancellation-aware
// sinks; currently the context carries no log data.
func (l *Logger) WithContext(ctx context.Context) *Entry {
	e := l.root()
	if ctx != nil {
		e.entry = e.entry.WithContext(ctx)
	}
	return e
}

func (l *Logger) Info(args ...interface{})                  { l.root().Info(args...) }
func (l *Logger) Infof(format string, args ...interface{})  { l.root().Infof(format, args...) }
func (l *Logger) Warn(args ...interface{})                  { l.root().Warn(args...) }
func (l *Logger) Warnf(format string, args ...interface{})  { l.root().Warnf(format, args...) }
func (l *Logger) Error(args ...interface{})                 { l.root().Error(args...) }
func (l *Logger) Errorf(format string, args ...interface{}) { l.root().Errorf(format, args...) }
func (l *Logger) Debug(args ...interface{})                 { l.root().Debug(args...) }
func (l *Logger) Debugf(format string, args ...interface{}) { l.root().Debugf(format, args...) }

// With chains additional fields onto the entry.
func (e *Entry) With(fields ...Field) *Entry {
	data := make(logrus.Fields, len(fields))
	for _, f := range fields {
		data[f.Key] = f.Value
	}
	return &Entry{entry: e.entry.WithFields(data)}
}

func (e *Entry) Info(args ...interface{})                  { e.emit(logrus.InfoLevel, fmt.Sprint(args...)) }
func (e *Entry) Infof(format string, args ...interface{})  { e.emit(logrus.InfoLevel, fmt.Sprintf(format, args...)) }
func (e *Entry) Warn(args ...interface{})                  { e.emit(logrus.WarnLevel, fmt.Sprint(args...)) }
func (e *Entry) Warnf(format string, args ...interface{})  { e.emit(logrus.WarnLevel, fmt.Sprintf(format, args...)) }
func (e *Entry) Error(args ...interface{})                 { e.emit(logrus.ErrorLevel, fmt.Sprint(args...)) }
func (e *Entry) Errorf(format string, args ...interface{}) { e.emit(logrus.ErrorLevel, fmt.Sprintf(format, args...)) }
func (e *Entry) Debug(args ...interface{})                 { e.emit(logrus.DebugLevel, fmt.Sprint(args...)) }
func (e *Entry) Debugf(format string, args ...interface{}) { e.emit(logrus.DebugLevel, fmt.Sprintf(format, args...)) }

func (e *Entry) emit(level logrus.Level, msg string) {
	if level == logrus.DebugLevel && !isDebug {
		return
	}
	e.entry.WithField("caller", caller()).Log(level, msg)
}

// caller walks up the stack past this package's own frames and reports the
// first foreign file:line.
func caller() string {
	for skip := 2; skip < 12; skip++ {
		_, file, line, ok := runtime.Caller(skip)
		if !ok {
			break
		}
		if strings.HasSuffix(file, "internal/log/logger.go") {
			continue
		}
		return fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}
	return "unknown"
}

// Package-level convenience functions operating on the configured logger.

func Info(args ...interface{})                  { logger.Info(args...) }
func Infof(format string, args ...interface{})  { logger.Infof(format, args...) }
func Warn(args ...interface{})                  { logger.Warn(args...) }
func Warnf(format string, args ...interface{})  { logger.Warnf(format, args...) }
func Error(args ...interface{})                 { logger.Error(args...) }
func Errorf(format string, args ...interface{}) { logger.Errorf(format, args...) }
func Debug(args ...interface{})                 { logger.Debug(args...) }
func Debugf(format string, args ...interface{}) { logger.Debugf(format, args...) }

// With returns an Entry on the package logger carrying the given fields.
func With(fields ...Field) *Entry {
	return logger.With(fields...)
}

// LogWithFields returns an Entry on the package logger carrying the given
// fields.
func LogWithFields(fields ...Field) *Entry {
	return logger.With(fields...)
}

// LogWithError returns an Entry annotated with err and, for taxonomy errors,
// its kind plus any path/action/param the error carries.
func LogWithError(err error) *Entry {
	if err == nil {
		return logger.With(F("error", "<nil>"))
	}
	fields := []Field{
		F("error", err.Error()),
		F("error_kind", int(errors.KindOf(err))),
	}
	var pathErr *errors.PathError
	if errors.As(err, &pathErr) && pathErr.Path() != "" {
		fields = append(fields, F("path", pathErr.Path()))
	}
	var actionErr *errors.ActionError
	if errors.As(err, &actionErr) && actionErr.Action() != "" {
		fields = append(fields, F("action", actionErr.Action()))
	}
	var configErr *errors.ConfigError
	if errors.As(err, &configErr) && configErr.Param() != "" {
		fields = append(fields, F("param", configErr.Param()))
	}
	return logger.With(fields...)
}

// LogError logs err at error level with msg.
func LogError(err error, msg string) {
	LogWithError(err).Error(msg)
}

// textFormatter renders entries as "[timestamp] LEVEL: message k=v ...".
type textFormatter struct{}

func (f *textFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] %s: %s",
		e.Time.Format("2006-01-02 15:04:05"),
		strings.ToUpper(e.Level.String()),
		e.Message)
	for _, k := range sortedKeys(e.Data) {
		fmt.Fprintf(&b, " %s=%v", k, e.Data[k])
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// jsonFormatter renders entries as one JSON object per line with level,
// message and timestamp keys plus all attached fields.
type jsonFormatter struct{}

func (f *jsonFormatter) Format(e *logrus.Entry) ([]byte, error) {
	payload := make(map[string]interface{}, len(e.Data)+3)
	for k, v := range e.Data {
		payload[k] = v
	}
	payload["level"] = strings.ToUpper(e.Level.String())
	payload["message"] = e.Message
	payload["timestamp"] = e.Time.Format(time.RFC3339)
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func sortedKeys(data logrus.Fields) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
