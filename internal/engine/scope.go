// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package engine

import (
	"github.com/dop251/goja"

	"github.com/aplane-algo/isojs/internal/value"
)

// Scope is the handle passed to an Access callback. It and every goja.Value
// obtained through it are valid only until the callback returns; any Scope
// method called afterwards panics with ErrScopeClosed.
type Scope struct {
	s      *Session
	closed bool
}

func (sc *Scope) check() {
	if sc.closed {
		panic(ErrScopeClosed)
	}
}

// Runtime returns the underlying goja runtime.
func (sc *Scope) Runtime() *goja.Runtime {
	sc.check()
	return sc.s.vm
}

// Global returns the persistent context's global object.
func (sc *Scope) Global() *goja.Object {
	sc.check()
	return sc.s.global
}

// Run compiles and runs src as a top-level script in the persistent context
// and returns its completion value.
func (sc *Scope) Run(src string) (goja.Value, error) {
	sc.check()
	v, err := sc.s.vm.RunString(src)
	if err != nil {
		return nil, sc.s.classifyScript(err)
	}
	return v, nil
}

// Convert materializes v into an owned Value.
func (sc *Scope) Convert(v goja.Value) (value.Value, error) {
	sc.check()
	out, err := value.Convert(sc.s.vm, v, sc.s.converterOptions())
	if err != nil {
		return value.NoValue, sc.s.classify(err)
	}
	return out, nil
}

// Converter returns a converter configured like Convert. It stays bound to
// the session's runtime and may be kept by host functions registered in
// this scope; it must only be used while the session is executing.
func (sc *Scope) Converter() *value.Converter {
	sc.check()
	return value.NewConverter(sc.s.vm, sc.s.converterOptions())
}

// Get converts the global binding name. Missing bindings yield NoValue.
func (sc *Scope) Get(name string) (value.Value, error) {
	sc.check()
	return sc.Convert(sc.s.global.Get(name))
}

// Set binds name on the global object. Values of type value.Value are
// rebuilt as script values; anything else goes through goja's ToValue.
func (sc *Scope) Set(name string, v any) error {
	sc.check()
	jv, err := sc.ToJS(v)
	if err != nil {
		return err
	}
	return sc.s.classify(sc.s.global.Set(name, jv))
}

// ToJS converts a host value into a script value of this runtime.
func (sc *Scope) ToJS(v any) (goja.Value, error) {
	sc.check()
	if val, ok := v.(value.Value); ok {
		return sc.s.toJS(val)
	}
	return sc.s.vm.ToValue(v), nil
}

// Access runs f with a Scope bound to the persistent context. Only one access
// is active per session at a time; calling Access, Eval or GlobalRef methods
// from inside f deadlocks, use the Scope instead. Script exceptions and
// terminations raised inside f, including those thrown as engine panics, are
// returned as *ValueError and ErrTimeout.
func (s *Session) Access(f func(*Scope) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetInterrupt()

	sc := &Scope{s: s}
	defer func() { sc.closed = true }()
	return s.guard(func() error { return f(sc) })
}

// AccessValue is Access for callbacks producing a result.
func AccessValue[T any](s *Session, f func(*Scope) (T, error)) (T, error) {
	var out T
	err := s.Access(func(sc *Scope) error {
		var err error
		out, err = f(sc)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// guard runs f, converting engine panics into classified errors.
func (s *Session) guard(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			classified, ok := s.classifyPanic(r)
			if !ok {
				panic(r)
			}
			err = classified
		}
	}()
	return s.classify(f())
}
