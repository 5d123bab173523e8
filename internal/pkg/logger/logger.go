// Package logger builds the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/go-chi/httplog/v3"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	App     string
	Version string
	Env     string
	Level   string
	Format  string // json or text
	// File enables a rotated copy of the log next to stdout.
	File       string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
}

// New returns the logger and a closer for the rotated file, if any.
func New(opts Options, stdout io.Writer) (*slog.Logger, io.Closer) {
	if stdout == nil {
		stdout = os.Stdout
	}

	var out io.Writer = stdout
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSize,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAge,
			Compress:   true,
		}
		out = io.MultiWriter(stdout, file)
		closer = file
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var handler slog.Handler
	if opts.Format == "text" {
		handler = slog.NewTextHandler(out, handlerOpts)
	} else {
		handlerOpts.ReplaceAttr = httplog.SchemaECS.Concise(false).ReplaceAttr
		handler = slog.NewJSONHandler(out, handlerOpts)
	}

	return slog.New(handler).With(
		slog.String("app", opts.App),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	), closer
}

func ParseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
