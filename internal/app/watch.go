package app

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thiagokokada/git-smartlog/internal/debounce"
)

const reloadDebounceDelay = 350 * time.Millisecond

// watch renders once, then re-renders whenever the repository metadata
// changes, until interrupted.
func (a *app) watch() error {
	if err := a.renderOnce(); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer watcher.Close()
	gitDir := a.svc.GitDir()
	if err := watcher.Add(gitDir); err != nil {
		return fmt.Errorf("watch %s: %w", gitDir, err)
	}

	// The debouncer fires on a timer goroutine; hand off through a channel so
	// all rendering stays on this one.
	reloadc := make(chan struct{}, 1)
	reload := debounce.New(reloadDebounceDelay, func() {
		select {
		case reloadc <- struct{}{}:
		default:
		}
	})
	defer reload.Stop()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if shouldIgnoreWatchPath(event.Name) {
				continue
			}
			slog.Debug("repository changed",
				slog.String("path", event.Name),
				slog.String("op", event.Op.String()),
			)
			reload.Trigger()
		case <-reloadc:
			fmt.Fprintln(a.out)
			if err := a.renderOnce(); err != nil {
				slog.Error("render", slog.Any("error", err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch", slog.Any("error", err))
		case <-interrupt:
			return nil
		}
	}
}

// Lock files churn during every git operation; the refs they guard are
// watched directly.
func shouldIgnoreWatchPath(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == ".lock"
}
