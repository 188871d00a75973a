// Package logging provides the swappable structured logger shared by every
// package in the engine. It generalizes erparts-go-avebi's package-level
// Logger/SetLogger pair to a leveled, slog-backed implementation, following
// alxayo-rtmp-go/internal/logger's env-driven level resolution.
package logging

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// envLevel is the environment variable consulted in the package's init, mirroring
// alxayo-rtmp-go's RTMP_LOG_LEVEL pattern for this module.
const envLevel = "TLRENDER_LOG_LEVEL"

// Logger is the minimal interface every package logs through. It matches
// erparts-go-avebi's Logger shape (Printf-compatible) plus leveled methods.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type dynamicLevel struct{ v int64 }

func (d *dynamicLevel) Level() slog.Level { return slog.Level(atomic.LoadInt64(&d.v)) }
func (d *dynamicLevel) set(l slog.Level)  { atomic.StoreInt64(&d.v, int64(l)) }

var (
	atomicLevel = &dynamicLevel{v: int64(slog.LevelInfo)}
	initOnce    sync.Once

	mu      sync.RWMutex
	current Logger
)

type slogLogger struct{ l *slog.Logger }

func (s *slogLogger) Debugf(format string, args ...any) { s.l.Debug(fmt.Sprintf(format, args...)) }
func (s *slogLogger) Infof(format string, args ...any)  { s.l.Info(fmt.Sprintf(format, args...)) }
func (s *slogLogger) Warnf(format string, args ...any)  { s.l.Warn(fmt.Sprintf(format, args...)) }
func (s *slogLogger) Errorf(format string, args ...any) { s.l.Error(fmt.Sprintf(format, args...)) }

func init() {
	initOnce.Do(func() {
		atomicLevel.set(detectLevel())
		current = &slogLogger{l: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: atomicLevel}))}
	})
}

func detectLevel() slog.Level {
	switch strings.ToLower(os.Getenv(envLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetLogger replaces the package-level logger, e.g. to redirect to a host
// application's own sink.
func SetLogger(l Logger) {
	mu.Lock()
	current = l
	mu.Unlock()
}

// SetLevel adjusts the verbosity of the default slog-backed logger. It has
// no effect if SetLogger installed a different implementation.
func SetLevel(level slog.Level) { atomicLevel.set(level) }

func get() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func Debugf(format string, args ...any) { get().Debugf(format, args...) }
func Infof(format string, args ...any)  { get().Infof(format, args...) }
func Warnf(format string, args ...any)  { get().Warnf(format, args...) }
func Errorf(format string, args ...any) { get().Errorf(format, args...) }
