// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aplane-algo/isojs/internal/value"
)

// Eval runs source as a top-level script in the persistent context and
// returns its converted completion value. Empty sources yield NoValue.
// Errors are ErrTimeout (wrapped; test with errors.Is) or *ValueError.
func (s *Session) Eval(source string) (value.Value, error) {
	return s.EvalContext(context.Background(), source)
}

// EvalContext is Eval with cancellation: when ctx is done the running script
// is terminated and ErrTimeout is returned.
func (s *Session) EvalContext(ctx context.Context, source string) (value.Value, error) {
	if err := ctx.Err(); err != nil {
		return value.NoValue, fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	start := time.Now()
	result, err := AccessValue(s, func(sc *Scope) (value.Value, error) {
		if strings.TrimSpace(source) == "" {
			return value.NoValue, nil
		}

		stop := s.watch(ctx)
		defer stop()

		v, err := sc.Run(source)
		if err != nil {
			return value.NoValue, err
		}
		return sc.Convert(v)
	})

	if err != nil {
		s.logger.Debug("eval failed", "duration", time.Since(start), "error", err)
		return value.NoValue, err
	}
	s.logger.Debug("eval", "duration", time.Since(start), "kind", result.Kind())
	return result, nil
}

// Interrupt terminates the currently running script, which then fails with
// ErrTimeout. Safe to call from another goroutine. An interrupt issued while
// nothing runs is discarded when the next access starts.
func (s *Session) Interrupt() {
	s.imu.Lock()
	defer s.imu.Unlock()
	s.interruptLocked("script interrupted")
}

func (s *Session) interruptLocked(reason string) {
	s.interrupted = true
	s.vm.Interrupt(reason)
}

// resetInterrupt drops interrupts requested while no access was active.
func (s *Session) resetInterrupt() {
	s.imu.Lock()
	defer s.imu.Unlock()
	s.vm.ClearInterrupt()
	s.interrupted = false
}

func (s *Session) wasInterrupted() bool {
	s.imu.Lock()
	defer s.imu.Unlock()
	return s.interrupted
}

// checkInterrupt stops a host-side conversion once the running evaluation
// has been told to terminate.
func (s *Session) checkInterrupt() error {
	if s.wasInterrupted() {
		return fmt.Errorf("%w: conversion interrupted", ErrTimeout)
	}
	return nil
}

// watch arms the watchdog timer and the context hook for one evaluation.
// The returned stop disarms both and clears any pending interrupt.
func (s *Session) watch(ctx context.Context) (stop func()) {
	s.imu.Lock()
	gen := s.gen
	s.imu.Unlock()

	fire := func(reason string) {
		s.imu.Lock()
		defer s.imu.Unlock()
		if s.gen == gen {
			s.logger.Debug("terminating script", "reason", reason)
			s.interruptLocked(reason)
		}
	}

	var timer *time.Timer
	if s.timeout > 0 {
		timeout := s.timeout
		timer = time.AfterFunc(timeout, func() {
			fire(fmt.Sprintf("execution timed out after %v", timeout))
		})
	}
	stopCtx := context.AfterFunc(ctx, func() {
		fire(ctx.Err().Error())
	})

	return func() {
		if timer != nil {
			timer.Stop()
		}
		stopCtx()

		s.imu.Lock()
		s.gen++
		s.vm.ClearInterrupt()
		s.imu.Unlock()
	}
}
