// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package engine

import (
	"errors"
	"fmt"

	"github.com/dop251/goja"
)

var (
	// ErrTimeout indicates the script was terminated before completing
	// (watchdog timeout, Interrupt, or context cancellation).
	ErrTimeout = errors.New("script execution terminated")

	// ErrScopeClosed is the panic value raised when a Scope is used after
	// its access callback returned.
	ErrScopeClosed = errors.New("engine: scope used outside its access callback")

	// ErrForeignFunction is returned when a Function value produced by one
	// session is passed into another.
	ErrForeignFunction = errors.New("engine: function belongs to another session")
)

// ValueError is a script-level exception raised while compiling, running or
// converting. Message is the exception's display form, e.g. "Error: boom".
type ValueError struct {
	Message string
	// Stack is the engine's rendering including the call stack, if any.
	Stack string
}

func (e *ValueError) Error() string {
	return e.Message
}

// classify maps engine errors onto ErrTimeout and *ValueError. Errors that
// did not come from the engine pass through unchanged unless the script was
// being terminated.
func (s *Session) classify(err error) error {
	if err == nil {
		return nil
	}
	var ve *ValueError
	if errors.Is(err, ErrTimeout) || errors.As(err, &ve) {
		return err
	}

	var ie *goja.InterruptedError
	if errors.As(err, &ie) {
		return fmt.Errorf("%w: %v", ErrTimeout, ie.Value())
	}

	var ex *goja.Exception
	if errors.As(err, &ex) {
		return &ValueError{Message: exceptionMessage(ex), Stack: ex.String()}
	}

	if s.wasInterrupted() {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}

// classifyScript is classify for errors returned by compiling or running a
// script, where any failure is a script error.
func (s *Session) classifyScript(err error) error {
	err = s.classify(err)
	if err == nil || errors.Is(err, ErrTimeout) {
		return err
	}
	var ve *ValueError
	if errors.As(err, &ve) {
		return err
	}
	return &ValueError{Message: err.Error(), Stack: err.Error()}
}

// classifyPanic turns a recovered engine panic into an error. Panics that do
// not originate from script execution are reported as not handled.
func (s *Session) classifyPanic(r any) (error, bool) {
	switch x := r.(type) {
	case *goja.Exception:
		return s.classify(x), true
	case *goja.InterruptedError:
		return s.classify(x), true
	case error:
		var ex *goja.Exception
		var ie *goja.InterruptedError
		if errors.As(x, &ex) || errors.As(x, &ie) {
			return s.classify(x), true
		}
	}
	if s.wasInterrupted() {
		return fmt.Errorf("%w: %v", ErrTimeout, r), true
	}
	return nil, false
}

// exceptionMessage renders the thrown value. Rendering may call a script
// toString, which can itself throw; the engine's own text is the fallback.
func exceptionMessage(ex *goja.Exception) (msg string) {
	defer func() {
		if recover() != nil {
			msg = ex.Error()
		}
	}()
	if v := ex.Value(); v != nil {
		return v.String()
	}
	return ex.Error()
}
