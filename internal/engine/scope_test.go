// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dop251/goja"

	"github.com/aplane-algo/isojs/internal/value"
)

func TestWatchdogTimeout(t *testing.T) {
	s := New(WithTimeout(50 * time.Millisecond))

	start := time.Now()
	_, err := s.Eval("for (;;) {}")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("termination took %v", elapsed)
	}

	// A terminated session remains usable.
	got, err := s.Eval("1 + 1")
	if err != nil {
		t.Fatalf("Eval after timeout: %v", err)
	}
	if !got.Equal(value.Float(2)) {
		t.Errorf("got %#v, want Float(2)", got)
	}
}

func TestEvalContextCancel(t *testing.T) {
	s := New()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := s.EvalContext(ctx, "while (true) {}")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}

	done, cancelDone := context.WithCancel(context.Background())
	cancelDone()
	if _, err := s.EvalContext(done, "1"); !errors.Is(err, ErrTimeout) {
		t.Errorf("cancelled context: err = %v, want ErrTimeout", err)
	}
}

func TestInterruptFromAnotherGoroutine(t *testing.T) {
	s := New()

	started := make(chan struct{})
	var once sync.Once
	if err := s.Global().Set("ready", func() { once.Do(func() { close(started) }) }); err != nil {
		t.Fatalf("Set: %v", err)
	}

	go func() {
		<-started
		s.Interrupt()
	}()

	_, err := s.Eval("ready(); for (;;) {}")
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("err = %v, want ErrTimeout", err)
	}
}

func TestStaleInterruptIsDiscarded(t *testing.T) {
	s := New()
	s.Interrupt()

	got, err := s.Eval("40 + 2")
	if err != nil {
		t.Fatalf("Eval after idle Interrupt: %v", err)
	}
	if !got.Equal(value.Float(42)) {
		t.Errorf("got %#v, want Float(42)", got)
	}
}

func TestAccessSharesGlobal(t *testing.T) {
	s := New()
	var first, second *goja.Object

	if err := s.Access(func(sc *Scope) error {
		first = sc.Global()
		_, err := sc.Run("var shared = 'yes'")
		return err
	}); err != nil {
		t.Fatal(err)
	}
	if err := s.Access(func(sc *Scope) error {
		second = sc.Global()
		v, err := sc.Get("shared")
		if err != nil {
			return err
		}
		if !v.Equal(value.String("yes")) {
			t.Errorf("shared = %#v", v)
		}
		return nil
	}); err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("accesses saw different global objects")
	}
}

func TestScopeUseAfterAccessPanics(t *testing.T) {
	s := New()
	var leaked *Scope
	if err := s.Access(func(sc *Scope) error {
		leaked = sc
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic but got none")
		}
		if err, ok := r.(error); !ok || !errors.Is(err, ErrScopeClosed) {
			t.Errorf("panic = %v, want ErrScopeClosed", r)
		}
	}()
	leaked.Runtime()
}

func TestAccessErrorsPassThrough(t *testing.T) {
	s := New()
	sentinel := errors.New("host failure")
	err := s.Access(func(*Scope) error { return sentinel })
	if !errors.Is(err, sentinel) {
		t.Errorf("err = %v, want %v", err, sentinel)
	}
}

func TestAccessRecoversEnginePanics(t *testing.T) {
	s := New()
	err := s.Access(func(sc *Scope) error {
		obj, err := sc.Run("({ get bad() { throw new TypeError('nope') } })")
		if err != nil {
			return err
		}
		// A direct Get runs the getter outside the engine's own guard.
		obj.(*goja.Object).Get("bad")
		return nil
	})
	var ve *ValueError
	if !errors.As(err, &ve) {
		t.Fatalf("err = %v (%T), want *ValueError", err, err)
	}
	if ve.Message != "TypeError: nope" {
		t.Errorf("Message = %q", ve.Message)
	}
}

func TestAccessValue(t *testing.T) {
	s := New()
	n, err := AccessValue(s, func(sc *Scope) (int64, error) {
		v, err := sc.Run("6 * 7")
		if err != nil {
			return 0, err
		}
		return v.ToInteger(), nil
	})
	if err != nil || n != 42 {
		t.Errorf("AccessValue = %d, %v", n, err)
	}
}

func TestGlobalRef(t *testing.T) {
	s := New()
	g := s.Global()

	if err := g.Set("answer", 41); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := s.Eval("answer + 1")
	if err != nil || !got.Equal(value.Float(42)) {
		t.Errorf("answer + 1 = %#v, %v", got, err)
	}

	cfg := value.ObjectOf(
		value.String("name"), value.String("isojs"),
		value.String("tags"), value.Array(value.String("a"), value.String("b")),
		value.String("when"), value.Date(1741651200000),
	)
	if err := g.Set("cfg", cfg); err != nil {
		t.Fatalf("Set(cfg): %v", err)
	}
	got, err = s.Eval("cfg.name + ':' + cfg.tags.length + ':' + cfg.when.getUTCFullYear()")
	if err != nil || !got.Equal(value.String("isojs:2:2025")) {
		t.Errorf("got %#v, %v", got, err)
	}
	back, err := g.Get("cfg")
	if err != nil || !back.Equal(cfg) {
		t.Errorf("Get(cfg) = %#v, %v", back, err)
	}

	missing, err := g.Get("nothing_here")
	if err != nil || !missing.IsNoValue() {
		t.Errorf("Get(missing) = %#v, %v", missing, err)
	}

	keys, err := g.Keys()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, k := range keys {
		if k == "answer" {
			found = true
		}
	}
	if !found {
		t.Errorf("Keys() = %v, want to include answer", keys)
	}

	if err := g.Delete("answer"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := g.Get("answer"); !got.IsNoValue() {
		t.Errorf("answer still bound: %#v", got)
	}
}

func TestFunctionValuesStayInTheirSession(t *testing.T) {
	a := New()
	b := New()

	fn, err := a.Eval("(function double(x) { return x * 2 })")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}

	if err := a.Global().Set("twice", fn); err != nil {
		t.Fatalf("Set on owning session: %v", err)
	}
	got, err := a.Eval("twice(21)")
	if err != nil || !got.Equal(value.Float(42)) {
		t.Errorf("twice(21) = %#v, %v", got, err)
	}

	err = b.Global().Set("twice", fn)
	if !errors.Is(err, ErrForeignFunction) {
		t.Errorf("Set on other session err = %v, want ErrForeignFunction", err)
	}
	nested := value.ObjectOf(value.String("f"), fn)
	if err := b.Global().Set("holder", nested); !errors.Is(err, ErrForeignFunction) {
		t.Errorf("Set nested err = %v, want ErrForeignFunction", err)
	}
	if got, _ := b.Global().Get("twice"); !got.IsNoValue() {
		t.Errorf("foreign function was bound: %#v", got)
	}

	if err := b.Global().Set("orphan", value.Function(nil, "orphan")); err == nil {
		t.Error("Set of a function without engine reference should fail")
	}
}
