// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/aplane-algo/isojs/internal/engine"
	"github.com/aplane-algo/isojs/internal/jsapi"
	"github.com/aplane-algo/isojs/internal/util"
)

// newSession creates a session from config with print()/log() bound to stdout.
func newSession(config util.Config, verbose bool) *engine.Session {
	s := engine.New(engine.WithConfig(config.Engine), engine.WithLogger(util.Logger))

	api := jsapi.NewAPI(verbose, func(msg string) {
		fmt.Println(msg)
	})
	if err := s.Access(api.RegisterAll); err != nil {
		// Registration errors are programming bugs, not runtime errors
		panic("failed to register JS API: " + err.Error())
	}
	return s
}

// evalInterruptible evaluates source, terminating the script on Ctrl+C.
func evalInterruptible(s *engine.Session, source string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := s.EvalContext(ctx, source)
	if err != nil {
		return err
	}
	return out.result(result)
}

// readSource reads a script from a file, or from stdin when path is "-".
func readSource(path string) (string, error) {
	var content []byte
	var err error
	if path == "-" {
		content, err = io.ReadAll(os.Stdin)
	} else {
		content, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read script: %w", err)
	}
	return string(content), nil
}

// runSource evaluates one script and exits non-zero on failure.
func runSource(config util.Config, verbose bool, source string) {
	s := newSession(config, verbose)
	if err := evalInterruptible(s, source); err != nil {
		out.failure(err)
		os.Exit(1)
	}
}
