// Package logger writes tally's diagnostic log as JSON lines under the data
// directory. Until Setup succeeds every record is dropped.
package logger

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

// ErrNotSetUp is the Status error before Setup and after cleanup.
var ErrNotSetUp = errors.New("logger: not set up")

// Config controls where and how verbosely tally logs.
type Config struct {
	DataDir string
	Debug   bool
}

// Status describes where records currently go.
type Status struct {
	Path  string
	Debug bool
	Since time.Time
	// Err says why logging is off. Nil while a file is open.
	Err error
}

// Enabled reports whether records reach a file.
func (s Status) Enabled() bool { return s.Path != "" }

func (s Status) String() string {
	switch {
	case !s.Enabled():
		if s.Err == nil {
			return "disabled"
		}
		return fmt.Sprintf("disabled (%v)", s.Err)
	case s.Debug:
		return s.Path + " (debug)"
	default:
		return s.Path
	}
}

type sink struct {
	log    *slog.Logger
	file   *os.File
	status Status
}

func (s *sink) close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

func disabled(err error) *sink {
	return &sink{log: slog.New(slog.DiscardHandler), status: Status{Err: err}}
}

var (
	notSetUp = disabled(ErrNotSetUp)
	active   atomic.Pointer[sink]
)

func load() *sink {
	if s := active.Load(); s != nil {
		return s
	}
	return notSetUp
}

// FilePath is the log file Setup opens for dataDir.
func FilePath(dataDir string) string {
	return filepath.Join(dataDir, "logs", "tally.log")
}

// Setup opens FilePath(cfg.DataDir) for appending and routes L() to it,
// replacing any earlier sink. On failure logging is off and Current().Err
// holds the cause. The returned cleanup closes the file.
func Setup(cfg Config) (func() error, error) {
	path := FilePath(cfg.DataDir)
	f, err := openAppend(path)
	if err != nil {
		_ = active.Swap(disabled(err)).close()
		return nil, err
	}

	s := &sink{
		log:    slog.New(jsonHandler(f, cfg.Debug)),
		file:   f,
		status: Status{Path: path, Debug: cfg.Debug, Since: time.Now()},
	}
	_ = active.Swap(s).close()
	s.log.Debug("logger.opened", "path", path)

	return func() error {
		if !active.CompareAndSwap(s, notSetUp) {
			// A later Setup already replaced and closed it.
			return nil
		}
		return s.close()
	}, nil
}

func openAppend(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //nolint:gosec // path built from data dir
}

func jsonHandler(f *os.File, debug bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo, AddSource: debug}
	if debug {
		opts.Level = slog.LevelDebug
	}
	opts.ReplaceAttr = func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
			return slog.String(slog.TimeKey, a.Value.Time().UTC().Format(time.RFC3339Nano))
		}
		return a
	}
	return slog.NewJSONHandler(f, opts)
}

// L returns the current logger.
func L() *slog.Logger { return load().log }

// Component returns L() tagged with a component name.
func Component(name string) *slog.Logger {
	return L().With("component", name)
}

// Current reports the active destination.
func Current() Status { return load().status }
