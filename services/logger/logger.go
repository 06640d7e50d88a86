package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Level định nghĩa các mức độ log
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// ParseLevel đọc mức log từ biến môi trường, mặc định là info
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger interface định nghĩa các phương thức logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
	Debug(format string, v ...interface{})
	With(keyvals ...interface{}) Logger
}

// DefaultLogger ghi log dạng logfmt qua go-kit
type DefaultLogger struct {
	level Level
	base  kitlog.Logger
}

// NewDefaultLogger tạo logger ghi ra stderr
func NewDefaultLogger(lvl Level) *DefaultLogger {
	return NewLogger(os.Stderr, lvl)
}

// NewLogger tạo logger ghi ra w
func NewLogger(w io.Writer, lvl Level) *DefaultLogger {
	base := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
	base = kitlog.With(base, "ts", kitlog.DefaultTimestampUTC, "caller", kitlog.Caller(5))
	return &DefaultLogger{level: lvl, base: base}
}

func (l *DefaultLogger) Info(format string, v ...interface{}) {
	if l.level <= InfoLevel {
		_ = level.Info(l.base).Log("msg", fmt.Sprintf(format, v...))
	}
}

func (l *DefaultLogger) Warn(format string, v ...interface{}) {
	if l.level <= WarnLevel {
		_ = level.Warn(l.base).Log("msg", fmt.Sprintf(format, v...))
	}
}

func (l *DefaultLogger) Error(format string, v ...interface{}) {
	if l.level <= ErrorLevel {
		_ = level.Error(l.base).Log("msg", fmt.Sprintf(format, v...))
	}
}

func (l *DefaultLogger) Debug(format string, v ...interface{}) {
	if l.level <= DebugLevel {
		_ = level.Debug(l.base).Log("msg", fmt.Sprintf(format, v...))
	}
}

// With trả về logger con gắn thêm các cặp key/value
func (l *DefaultLogger) With(keyvals ...interface{}) Logger {
	return &DefaultLogger{level: l.level, base: kitlog.With(l.base, keyvals...)}
}

// NopLogger bỏ qua mọi bản ghi, dùng trong test
type NopLogger struct{}

func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Debug(string, ...interface{}) {}

func (n NopLogger) With(...interface{}) Logger { return n }

// Recorder lưu lại các dòng log, dùng để kiểm tra trong test
type Recorder struct {
	mu    sync.Mutex
	Lines []string
}

func (r *Recorder) add(lvl, format string, v ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Lines = append(r.Lines, lvl+" "+fmt.Sprintf(format, v...))
}

func (r *Recorder) Info(format string, v ...interface{})  { r.add("info", format, v...) }
func (r *Recorder) Warn(format string, v ...interface{})  { r.add("warn", format, v...) }
func (r *Recorder) Error(format string, v ...interface{}) { r.add("error", format, v...) }
func (r *Recorder) Debug(format string, v ...interface{}) { r.add("debug", format, v...) }

func (r *Recorder) With(...interface{}) Logger { return r }

// Contains báo có dòng log nào chứa chuỗi s
func (r *Recorder) Contains(s string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, line := range r.Lines {
		if strings.Contains(line, s) {
			return true
		}
	}
	return false
}
