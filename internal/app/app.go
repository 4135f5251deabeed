package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ledgerkit/ledger-tui/internal/input"
	"github.com/ledgerkit/ledger-tui/internal/logging"
	"github.com/ledgerkit/ledger-tui/internal/store"
	"github.com/ledgerkit/ledger-tui/internal/terminal"
	"github.com/ledgerkit/ledger-tui/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	Database          string
	Memory            bool
	Width             int
	Height            int
	ConfirmQuit       bool
	NotificationLimit int
	SampleSize        int
	ShowHelp          bool
}

// OpenStore returns the configured transaction store.
func OpenStore(cfg Config) (store.Store, error) {
	if cfg.Memory {
		return store.NewMemory(), nil
	}
	s, err := store.OpenSQLite(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// Run opens storage, starts the terminal and drives the controller until the
// user quits.
func Run(ctx context.Context, cfg Config) error {
	s, err := OpenStore(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			logging.Error(fmt.Errorf("close store: %w", cerr))
		}
	}()

	driver := terminal.Start(terminal.Options{AltScreen: true})
	return run(ctx, cfg, s, driver, driver)
}

type eventSource interface {
	input.Source
	Close() error
}

func run(ctx context.Context, cfg Config, s store.Store, src eventSource, r ui.Renderer) error {
	ctrl := ui.New(ui.Options{
		Store:             s,
		Width:             cfg.Width,
		Height:            cfg.Height,
		ConfirmQuit:       cfg.ConfirmQuit,
		NotificationLimit: cfg.NotificationLimit,
		SampleSize:        cfg.SampleSize,
		ShowHelp:          cfg.ShowHelp,
	})
	bridge := input.NewBridge(src)

	runErr := ctrl.Run(ctx, bridge.Events(), r)

	// The bridge may be parked in a blocking read; it is released when the
	// source closes and is not waited for.
	bridge.Stop()
	closeErr := src.Close()
	if runErr != nil {
		return runErr
	}
	if closeErr != nil && !errors.Is(closeErr, io.EOF) {
		return fmt.Errorf("close terminal: %w", closeErr)
	}
	if err := bridge.Err(); err != nil {
		logging.Error(fmt.Errorf("input: %w", err))
	}
	return nil
}
