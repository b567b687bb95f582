// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/aplane-algo/isojs/internal/util"
)

const watchDebounce = 200 * time.Millisecond

// evalFile evaluates path in a fresh session and prints the outcome.
func evalFile(config util.Config, verbose bool, path string) {
	source, err := readSource(path)
	if err != nil {
		out.failure(err)
		return
	}
	if err := evalInterruptible(newSession(config, verbose), source); err != nil {
		out.failure(err)
	}
}

// watchAndEval evaluates path once, then again after every change until
// interrupted. The parent directory is watched so editors that replace the
// file on save are followed.
func watchAndEval(config util.Config, verbose bool, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	out.note(fmt.Sprintf("Watching %s (Ctrl+C to stop)", path))
	evalFile(config, verbose, abs)

	changed := make(chan struct{}, 1)
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				select {
				case changed <- struct{}{}:
				default:
				}
			})

		case <-changed:
			out.note(fmt.Sprintf("--- %s changed", path))
			evalFile(config, verbose, abs)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			util.Debug("file watcher error", "error", err)
			out.note(fmt.Sprintf("File watcher error: %v", err))
		}
	}
}
