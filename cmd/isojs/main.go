// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/aplane-algo/isojs/internal/util"
	"github.com/aplane-algo/isojs/internal/version"
)

// out is the process-wide result printer, set up once config is loaded.
var out *printer

func main() {
	// Define all flags upfront before parsing
	printVersion := flag.Bool("version", false, "Print version and exit")
	dataDir := flag.String("d", "", "Data directory (default: ~/.isojs or ISOJS_DATA)")
	jsExpr := flag.String("e", "", "Evaluate JavaScript expression")
	jsScript := flag.String("js", "", "Evaluate JavaScript file (use '-' for stdin)")
	interactive := flag.Bool("i", false, "Start interactive REPL")
	watchFile := flag.String("watch", "", "Re-evaluate JavaScript file whenever it changes")
	timeout := flag.Duration("timeout", -1, "Watchdog budget per evaluation, e.g. 2s (default from config)")
	output := flag.String("output", "", "Result format: debug, json or pretty (default from config)")
	integers := flag.Bool("integers", false, "Classify integral numbers as uint32/int32")
	verbose := flag.Bool("v", false, "Show log() output from scripts")
	flag.Parse()

	if *printVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Initialize logger (supports ISOJS_DEBUG environment variable)
	util.InitLogger()

	config, err := util.LoadConfig(util.GetDataDir(*dataDir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Flags override config
	if *timeout >= 0 {
		config.Engine.Timeout = *timeout
	}
	if *output != "" {
		config.Output = *output
	}
	if *integers {
		config.Engine.Integers = true
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out = newPrinter(os.Stdout, os.Stderr, config)

	switch {
	case *jsExpr != "":
		runSource(config, *verbose, *jsExpr)
	case *jsScript != "":
		source, err := readSource(*jsScript)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		runSource(config, *verbose, source)
	case *watchFile != "":
		if err := watchAndEval(config, *verbose, *watchFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case *interactive || isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()):
		startREPL(config, *verbose)
	default:
		source, err := readSource("-")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		runSource(config, *verbose, source)
	}
}
