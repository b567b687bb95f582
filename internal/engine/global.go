// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package engine

import (
	"github.com/dop251/goja"

	"github.com/aplane-algo/isojs/internal/value"
)

// GlobalRef is a persistent reference to a session's global object. Unlike a
// Scope it may be kept and used at any time; each call takes its own scoped
// access, so it must not be used from inside an Access callback.
type GlobalRef struct {
	s   *Session
	obj *goja.Object
}

// Global returns the persistent reference to the global object.
func (s *Session) Global() *GlobalRef {
	return &GlobalRef{s: s, obj: s.global}
}

// Get converts the global binding name. Missing bindings yield NoValue.
func (g *GlobalRef) Get(name string) (value.Value, error) {
	return AccessValue(g.s, func(sc *Scope) (value.Value, error) {
		return sc.Convert(g.obj.Get(name))
	})
}

// Set binds name on the global object (see Scope.Set).
func (g *GlobalRef) Set(name string, v any) error {
	return g.s.Access(func(sc *Scope) error {
		return sc.Set(name, v)
	})
}

// Delete removes the global binding name.
func (g *GlobalRef) Delete(name string) error {
	return g.s.Access(func(*Scope) error {
		return g.obj.Delete(name)
	})
}

// Keys returns the enumerable own property names of the global object.
func (g *GlobalRef) Keys() ([]string, error) {
	return AccessValue(g.s, func(*Scope) ([]string, error) {
		return g.obj.Keys(), nil
	})
}
