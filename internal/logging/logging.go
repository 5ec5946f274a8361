// Package logging provides named zap loggers that share one process-wide
// level, in the manner of a small flogging.
package logging

import (
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	out   = &writer{w: zapcore.Lock(os.Stderr)}
	root  = newRoot(out)
)

// writer is the sink behind every logger; SetWriter swaps its target.
type writer struct {
	mu sync.Mutex
	w  zapcore.WriteSyncer
}

func (w *writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Write(p)
}

func (w *writer) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w.Sync()
}

func (w *writer) set(ws zapcore.WriteSyncer) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.w = ws
}

func newRoot(sink zapcore.WriteSyncer) *zap.Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), sink, level)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.DPanicLevel))
}

// MustGetLogger returns a sugared logger with the given name.
func MustGetLogger(name string) *zap.SugaredLogger {
	return root.Named(name).Sugar()
}

// SetLevel changes the level of every logger handed out by this package,
// including ones created before the call.
func SetLevel(name string) error {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(name))); err != nil {
		return errors.Wrapf(err, "invalid log level %q", name)
	}
	level.SetLevel(l)
	return nil
}

// Level returns the current level.
func Level() zapcore.Level {
	return level.Level()
}

// SetWriter redirects the output of every logger handed out by this
// package, including ones created before the call.
func SetWriter(w zapcore.WriteSyncer) {
	out.set(w)
}
