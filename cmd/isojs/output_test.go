// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/aplane-algo/isojs/internal/engine"
	"github.com/aplane-algo/isojs/internal/util"
	"github.com/aplane-algo/isojs/internal/value"
)

func testPrinter(format string) (*printer, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	config := util.DefaultConfig()
	config.Output = format
	config.Color = util.ColorNever
	config.PrettyWidth = 10
	return newPrinter(&stdout, &stderr, config), &stdout, &stderr
}

func TestPrinterResult(t *testing.T) {
	obj := value.ObjectOf(value.String("a"), value.Float(1))

	tests := []struct {
		name   string
		format string
		v      value.Value
		want   string
	}{
		{"debug float", util.OutputDebug, value.Float(2), "Result: Float(2)\n"},
		{"debug no value", util.OutputDebug, value.NoValue, "Result: NoValue\n"},
		{"json object", util.OutputJSON, obj, "{\"a\":1}\n"},
		{"json undefined", util.OutputJSON, value.Undefined, "null\n"},
		{"pretty string", util.OutputPretty, value.String("hi"), "hi\n"},
		{"pretty no value", util.OutputPretty, value.NoValue, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, stdout, _ := testPrinter(tt.format)
			if err := p.result(tt.v); err != nil {
				t.Fatalf("result() error: %v", err)
			}
			if got := stdout.String(); got != tt.want {
				t.Errorf("result() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrinterFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"timeout", fmt.Errorf("%w: deadline", engine.ErrTimeout), "Timeout: script execution terminated: deadline\n"},
		{"exception", &engine.ValueError{Message: "Error: boom"}, "Uncaught Error: boom\n"},
		{"other", errors.New("disk full"), "Error: disk full\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, stdout, stderr := testPrinter(util.OutputDebug)
			p.failure(tt.err)
			if got := stderr.String(); got != tt.want {
				t.Errorf("failure() = %q, want %q", got, tt.want)
			}
			if stdout.Len() != 0 {
				t.Errorf("failure() wrote to stdout: %q", stdout.String())
			}
		})
	}
}
