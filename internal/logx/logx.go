// Package logx builds the debug logger and annotates it per tab.
package logx

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"pkt.systems/pslog"

	"github.com/kk-code-lab/rtab/internal/config"
)

// New builds a structured logger from cfg. The returned closer releases the
// log file; with no file configured the logger discards everything.
func New(cfg config.LogConfig) (pslog.Logger, io.Closer, error) {
	if cfg.File == "" {
		return NewWithWriter(io.Discard, cfg.Level), nopCloser{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return nil, nil, errors.Wrapf(err, "couldn't create log directory for %s", cfg.File)
	}
	f, err := os.OpenFile(cfg.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "couldn't open log file %s", cfg.File)
	}
	return NewWithWriter(f, cfg.Level), f, nil
}

// NewWithWriter builds a structured logger writing to w at level.
func NewWithWriter(w io.Writer, level string) pslog.Logger {
	opts := pslog.Options{
		Mode:          pslog.ModeStructured,
		NoColor:       true,
		MinLevel:      pslog.InfoLevel,
		VerboseFields: true,
	}
	switch level {
	case "trace":
		opts.MinLevel = pslog.TraceLevel
	case "debug":
		opts.MinLevel = pslog.DebugLevel
	case "error":
		opts.MinLevel = pslog.ErrorLevel
	}
	return pslog.NewWithOptions(w, opts)
}

// WithTab annotates log with the tab identifier and its directory.
func WithTab(log pslog.Logger, tabID, cwd string) pslog.Logger {
	if tabID != "" {
		log = log.With("tab", tabID)
	}
	if cwd != "" {
		log = log.With("cwd", cwd)
	}
	return log
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
