// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package jsapi provides the small set of host functions available to
// scripts run from the isojs command: print(), log() and console.log().
package jsapi

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"

	"github.com/aplane-algo/isojs/internal/engine"
	"github.com/aplane-algo/isojs/internal/util"
	"github.com/aplane-algo/isojs/internal/value"
)

// API provides JavaScript bindings for output.
type API struct {
	runtime *goja.Runtime
	conv    *value.Converter
	verbose bool
	output  func(string)
}

// NewAPI creates a new JavaScript API instance. A nil output discards
// printed text.
func NewAPI(verbose bool, output func(string)) *API {
	a := &API{verbose: verbose}
	a.SetOutput(output)
	return a
}

// SetOutput sets the function used for print() and log() output.
func (a *API) SetOutput(fn func(string)) {
	if fn == nil {
		a.output = func(string) {}
	} else {
		a.output = fn
	}
}

// SetVerbose toggles log() output.
func (a *API) SetVerbose(verbose bool) {
	a.verbose = verbose
}

// RegisterAll registers all API functions on the scope's global object.
func (a *API) RegisterAll(sc *engine.Scope) error {
	vm := sc.Runtime()
	a.runtime = vm
	a.conv = sc.Converter()

	if err := sc.Set("print", a.jsPrint); err != nil {
		return fmt.Errorf("failed to register print: %w", err)
	}
	if err := sc.Set("log", a.jsLog); err != nil {
		return fmt.Errorf("failed to register log: %w", err)
	}

	console := vm.NewObject()
	if err := console.Set("log", a.jsPrint); err != nil {
		return fmt.Errorf("failed to register console.log: %w", err)
	}
	if err := sc.Set("console", console); err != nil {
		return fmt.Errorf("failed to register console: %w", err)
	}
	return nil
}

// format renders call arguments separated by spaces, the way console.log does.
func (a *API) format(call goja.FunctionCall) string {
	parts := make([]string, len(call.Arguments))
	for i, arg := range call.Arguments {
		v, err := a.conv.Convert(arg)
		if err != nil {
			panic(a.runtime.NewGoError(err))
		}
		parts[i] = v.String()
	}
	return strings.Join(parts, " ")
}

// jsPrint outputs a message.
func (a *API) jsPrint(call goja.FunctionCall) goja.Value {
	a.output(a.format(call))
	return goja.Undefined()
}

// jsLog outputs a debug message (only in verbose mode).
func (a *API) jsLog(call goja.FunctionCall) goja.Value {
	msg := a.format(call)
	util.Debug("script log", "message", msg)
	if a.verbose {
		a.output("[debug] " + msg)
	}
	return goja.Undefined()
}
