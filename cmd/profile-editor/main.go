// cmd/profile-editor/main.go
//
// Entry point for the profile editor. The current working directory is the
// "project": configuration, the profile record, and the session log all live
// there unless profile-editor.yaml says otherwise.

package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/remotedata/internal/config"
	"github.com/kingrea/remotedata/internal/logging"
	"github.com/kingrea/remotedata/internal/store"
	"github.com/kingrea/remotedata/internal/tui"
)

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting working directory: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.NewConfig(cwd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	st := store.New(cfg.StorePath,
		store.WithLatency(cfg.LoadLatency, cfg.SaveLatency),
		store.WithFailEvery(cfg.FailEvery),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := []tui.AppOption{tui.WithLogger(logger.Log)}
	watcher, err := store.Watch(ctx, st)
	if err != nil {
		// The editor still works without external-change detection.
		logger.Log.Warn().Err(err).Msg("file watching disabled")
	} else {
		defer watcher.Close()
		opts = append(opts, tui.WithWatchEvents(watcher.Events()))
	}

	app := tui.NewApp(st, opts...)
	logger.Log.Info().Str("store", cfg.StorePath).Msg("session opened")

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
	logger.Log.Info().Msg("session closed")
}
