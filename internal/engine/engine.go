// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package engine owns an embedded JavaScript runtime and evaluates scripts in
// one persistent execution context, returning owned value.Value results.
//
// A Session holds one goja runtime whose global object is the persistent
// context: every evaluation on a Session sees the bindings left by the
// previous ones. Engine handles (goja.Value) are only valid inside a scoped
// access (see Session.Access); results leave the session fully converted.
package engine

import (
	"log/slog"
	"sync"
	"time"

	"github.com/dop251/goja"

	"github.com/aplane-algo/isojs/internal/util"
	"github.com/aplane-algo/isojs/internal/value"
)

// Session is one runtime plus its persistent global context.
// A Session is safe for use by multiple goroutines; accesses are serialized.
// Interrupt may be called at any time.
type Session struct {
	mu sync.Mutex // one active scoped access at a time

	vm      *goja.Runtime
	global  *goja.Object
	entries goja.Callable // for-in property enumeration helper

	// Interrupt bookkeeping. gen increments at the end of every watched
	// evaluation so that late watchdog callbacks are ignored.
	imu         sync.Mutex
	gen         uint64
	interrupted bool

	timeout  time.Duration
	integers bool
	maxDepth int
	fieldTag string
	logger   *slog.Logger
}

// SessionOption is a functional option for configuring a Session
type SessionOption func(*Session)

// New creates a Session. It initializes the process-wide engine state on
// first use, allocates a runtime and binds the persistent context. New never
// fails; a broken built-in helper is a programming error and panics.
func New(opts ...SessionOption) *Session {
	ensureInitialized()

	s := &Session{
		vm:       goja.New(),
		maxDepth: value.DefaultMaxDepth,
		fieldTag: "json",
		logger:   util.Logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.fieldTag != "" {
		s.vm.SetFieldNameMapper(goja.TagFieldNameMapper(s.fieldTag, true))
	}
	s.global = s.vm.GlobalObject()
	s.entries = shared.instantiate(s.vm)

	s.logger.Debug("session created", "timeout", s.timeout, "integers", s.integers, "max_depth", s.maxDepth)
	return s
}

// WithTimeout sets the watchdog budget of each evaluation. Zero disables it.
func WithTimeout(d time.Duration) SessionOption {
	return func(s *Session) {
		s.timeout = d
	}
}

// WithIntegers enables uint32/int32 classification of integral numbers.
func WithIntegers(enabled bool) SessionOption {
	return func(s *Session) {
		s.integers = enabled
	}
}

// WithMaxDepth bounds conversion depth. Negative disables the bound.
func WithMaxDepth(n int) SessionOption {
	return func(s *Session) {
		if n == 0 {
			n = value.DefaultMaxDepth
		}
		s.maxDepth = n
	}
}

// WithFieldNameTag sets the struct tag used to name fields of Go values
// exposed to scripts. An empty tag keeps goja's default mapping.
func WithFieldNameTag(tag string) SessionOption {
	return func(s *Session) {
		s.fieldTag = tag
	}
}

// WithLogger sets the session logger.
func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithConfig applies an engine config block.
func WithConfig(cfg util.EngineConfig) SessionOption {
	return func(s *Session) {
		WithTimeout(cfg.Timeout)(s)
		WithIntegers(cfg.Integers)(s)
		WithMaxDepth(cfg.MaxDepth)(s)
		WithFieldNameTag(cfg.FieldNameTag)(s)
	}
}

func (s *Session) converterOptions() value.Options {
	return value.Options{
		Integers:  s.integers,
		MaxDepth:  s.maxDepth,
		Enumerate: s.enumerate,
		Check:     s.checkInterrupt,
	}
}
