// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package engine

import (
	"sync"
	"sync/atomic"

	"github.com/dop251/goja"

	"github.com/aplane-algo/isojs/internal/util"
)

// entriesSource lists [name, value] pairs in for-in order: own and inherited
// enumerable string keys. Getters run inside the script, so a throwing getter
// comes back as an ordinary exception.
const entriesSource = `(function (o) {
	var out = [];
	for (var k in o) {
		out.push([k, o[k]]);
	}
	return out;
})`

// programs are compiled once per process and instantiated in every runtime.
type programs struct {
	entries *goja.Program
}

var (
	initOnce  sync.Once
	initCount atomic.Int32
	shared    programs
)

// ensureInitialized performs process-wide engine setup exactly once,
// regardless of how many sessions are created or from which goroutines.
func ensureInitialized() {
	initOnce.Do(func() {
		shared.entries = goja.MustCompile("isojs:entries", entriesSource, true)
		initCount.Add(1)
		util.Debug("engine initialized")
	})
}

// instantiate runs the shared programs in vm and returns the helper callable.
func (p *programs) instantiate(vm *goja.Runtime) goja.Callable {
	fn, err := vm.RunProgram(p.entries)
	if err != nil {
		panic("engine: failed to instantiate entries helper: " + err.Error())
	}
	call, ok := goja.AssertFunction(fn)
	if !ok {
		panic("engine: entries helper is not a function")
	}
	return call
}
