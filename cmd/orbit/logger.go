package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

const errorLogFile = "errors.log"

// dualHandler writes every record to core and mirrors error records to errors.
type dualHandler struct {
	core   slog.Handler
	errors slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.core.Enabled(ctx, lvl) || h.errors.Enabled(ctx, lvl)
}

func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	var err error

	if h.core.Enabled(ctx, r.Level) {
		err = h.core.Handle(ctx, r)
	}

	if r.Level >= slog.LevelError && h.errors.Enabled(ctx, r.Level) {
		if fileErr := h.errors.Handle(ctx, r.Clone()); fileErr != nil {
			fmt.Fprintf(os.Stderr, "error log: %v\n", fileErr)
		}
	}

	return err
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dualHandler{core: h.core.WithAttrs(attrs), errors: h.errors.WithAttrs(attrs)}
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return &dualHandler{core: h.core.WithGroup(name), errors: h.errors.WithGroup(name)}
}

func coreHandler(env string, w io.Writer) slog.Handler {
	switch env {
	case envLocal:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	case envDev:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
}

func newLogger(env string, out, errs io.Writer) *slog.Logger {
	return slog.New(&dualHandler{
		core:   coreHandler(env, out),
		errors: slog.NewTextHandler(errs, &slog.HandlerOptions{Level: slog.LevelError}),
	})
}

// setupLogger logs to stdout by env and keeps errors in errorFile as well.
func setupLogger(env, errorFile string) *slog.Logger {
	f, err := os.OpenFile(errorFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log := slog.New(coreHandler(env, os.Stdout))
		log.Warn("cannot open error log file", slog.String("file", errorFile), slog.String("error", err.Error()))
		return log
	}

	return newLogger(env, os.Stdout, f)
}
