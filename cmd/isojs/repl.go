// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"github.com/aplane-algo/isojs/cmd/isojs/internal/repl"
	"github.com/aplane-algo/isojs/internal/engine"
	"github.com/aplane-algo/isojs/internal/fsutil"
	"github.com/aplane-algo/isojs/internal/util"
)

const replPrompt = "\033[32misojs>\033[0m "

// globalNames lists every own property of the global object, including the
// non-enumerable builtins.
func globalNames(s *engine.Session) []string {
	names, err := engine.AccessValue(s, func(sc *engine.Scope) ([]string, error) {
		res, err := sc.Run("Object.getOwnPropertyNames(globalThis)")
		if err != nil {
			return nil, err
		}
		v, err := sc.Convert(res)
		if err != nil {
			return nil, err
		}
		elems, _ := v.AsArray()
		names := make([]string, 0, len(elems))
		for _, e := range elems {
			if name, ok := e.AsString(); ok {
				names = append(names, name)
			}
		}
		return names, nil
	})
	if err != nil {
		util.Debug("global name lookup failed", "error", err)
		return nil
	}
	return names
}

// handleLine evaluates one REPL line. It returns false when the user asked to quit.
func handleLine(s *engine.Session, line string) bool {
	trimmed := strings.TrimSpace(line)
	switch trimmed {
	case "":
		return true
	case ".exit", ".quit", "quit", "exit":
		return false
	case ".help":
		fmt.Println("Enter a JavaScript expression to evaluate it.")
		fmt.Println("  .help   Show this help")
		fmt.Println("  .exit   Leave the REPL")
		fmt.Println("Globals persist between lines. Ctrl+C interrupts a running script.")
		return true
	}
	if err := evalInterruptible(s, line); err != nil {
		out.failure(err)
	}
	return true
}

func startBasicREPL(s *engine.Session) {
	fmt.Println("Running in basic mode (no history/completion)")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("isojs> ")
		if !scanner.Scan() {
			break
		}
		if !handleLine(s, scanner.Text()) {
			break
		}
	}
}

func startREPL(config util.Config, verbose bool) {
	fmt.Println("isojs - JavaScript evaluation shell")
	fmt.Println("Type '.help' for help or '.exit' to exit")

	s := newSession(config, verbose)

	historyFile := config.HistoryFile
	if err := fsutil.EnsureParent(historyFile); err != nil {
		fmt.Printf("Warning: history disabled: %v\n", err)
		historyFile = ""
	}

	rlConfig := &readline.Config{
		Prompt:            replPrompt,
		HistoryFile:       historyFile,
		HistoryLimit:      1000,
		AutoComplete:      &repl.GlobalCompleter{Names: func() []string { return globalNames(s) }},
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	}

	rl, err := readline.NewEx(rlConfig)
	if err != nil {
		fmt.Printf("Failed to create readline instance, falling back to basic input: %v\n", err)
		startBasicREPL(s)
		return
	}
	defer func() {
		_ = rl.Close() // Best-effort close, errors during shutdown not critical
	}()

	for {
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					fmt.Println("Use '.exit' to exit")
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Println("\nGoodbye!")
				break
			}
			fmt.Printf("Error reading input: %v\n", err)
			continue
		}
		if !handleLine(s, line) {
			break
		}
	}
}
