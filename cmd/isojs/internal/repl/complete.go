// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package repl holds line-editing helpers for the interactive shell.
package repl

import (
	"sort"
	"strings"

	"github.com/chzyer/readline"
)

// NameSource returns the identifiers currently available for completion.
type NameSource func() []string

// GlobalCompleter completes the identifier under the cursor against the
// names of the session's global object. Property paths (a.b) are not
// completed.
type GlobalCompleter struct {
	Names NameSource
}

var _ readline.AutoCompleter = (*GlobalCompleter)(nil)

// Do implements readline.AutoCompleter.
func (c *GlobalCompleter) Do(line []rune, pos int) ([][]rune, int) {
	if c.Names == nil || pos > len(line) {
		return nil, 0
	}
	start := pos
	for start > 0 && isIdentRune(line[start-1]) {
		start--
	}
	if start > 0 && line[start-1] == '.' {
		return nil, 0
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	matches := filterByPrefix(c.Names(), prefix)
	sort.Strings(matches)
	return stringsToRuneSuggestionsPartial(matches, len(prefix)), len([]rune(prefix))
}

func isIdentRune(r rune) bool {
	return r == '_' || r == '$' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// filterByPrefix returns strings that match the prefix (case-sensitive, as
// identifiers are).
func filterByPrefix(strs []string, prefix string) []string {
	var result []string
	for _, s := range strs {
		if strings.HasPrefix(s, prefix) && s != prefix {
			result = append(result, s)
		}
	}
	return result
}

// stringsToRuneSuggestionsPartial converts strings to suggestions showing only the remaining part
func stringsToRuneSuggestionsPartial(strs []string, partialLen int) [][]rune {
	suggestions := make([][]rune, 0, len(strs))
	for _, s := range strs {
		if partialLen < len(s) {
			suggestions = append(suggestions, []rune(s[partialLen:]))
		}
	}
	return suggestions
}
