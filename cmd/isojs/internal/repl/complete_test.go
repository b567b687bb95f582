// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package repl

import (
	"reflect"
	"testing"
)

func TestGlobalCompleter(t *testing.T) {
	c := &GlobalCompleter{Names: func() []string {
		return []string{"Math", "JSON", "myValue", "myFunc", "Map"}
	}}

	tests := []struct {
		name    string
		line    string
		want    []string
		wantLen int
	}{
		{"prefix", "1 + my", []string{"Func", "Value"}, 2},
		{"case sensitive", "ma", nil, 2},
		{"two matches", "Ma", []string{"p", "th"}, 2},
		{"empty prefix", "x + ", nil, 0},
		{"property path skipped", "Math.my", nil, 0},
		{"exact name", "Math", nil, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := []rune(tt.line)
			got, n := c.Do(line, len(line))
			var strs []string
			for _, r := range got {
				strs = append(strs, string(r))
			}
			if !reflect.DeepEqual(strs, tt.want) {
				t.Errorf("suggestions = %q, want %q", strs, tt.want)
			}
			if n != tt.wantLen {
				t.Errorf("length = %d, want %d", n, tt.wantLen)
			}
		})
	}
}
