package main

import (
	"context"
	"log/slog"

	"github.com/aellingwood/skyforge/internal/watch"
)

// watchInputs reruns fn whenever one of files changes, until ctx is
// cancelled. Failed reruns are logged and watching continues.
func watchInputs(ctx context.Context, logger *slog.Logger, files []string, fn func(context.Context) error) error {
	w := watch.New(files, watch.DefaultDebounce, logger, func([]string) {
		if err := fn(ctx); err != nil {
			logger.Error("regeneration failed", "error", err)
		}
	})
	logger.Info("watching for changes", "files", w.Files())
	return w.Run(ctx)
}
