// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/aplane-algo/isojs/internal/engine"
	"github.com/aplane-algo/isojs/internal/util"
	"github.com/aplane-algo/isojs/internal/value"
)

var (
	resultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	timeoutStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	noteStyle    = lipgloss.NewStyle().Faint(true)
)

// printer renders evaluation results in the configured format.
type printer struct {
	out    io.Writer
	errOut io.Writer
	format string
	color  bool
	width  int
}

func newPrinter(out, errOut io.Writer, config util.Config) *printer {
	return &printer{
		out:    out,
		errOut: errOut,
		format: config.Output,
		color:  util.UseColor(config.Color),
		width:  config.PrettyWidth,
	}
}

func (p *printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

// render formats v without trailing newline.
func (p *printer) render(v value.Value) (string, error) {
	switch p.format {
	case util.OutputJSON:
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("failed to encode result: %w", err)
		}
		return string(b), nil
	case util.OutputPretty:
		return p.style(resultStyle, v.Pretty(p.width)), nil
	default:
		return "Result: " + p.style(resultStyle, v.GoString()), nil
	}
}

// result prints v. In pretty mode an absent value prints nothing.
func (p *printer) result(v value.Value) error {
	if p.format == util.OutputPretty && v.IsNoValue() {
		return nil
	}
	s, err := p.render(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(p.out, s)
	return err
}

// failure prints an evaluation error to the error stream.
func (p *printer) failure(err error) {
	var ve *engine.ValueError
	switch {
	case errors.Is(err, engine.ErrTimeout):
		_, _ = fmt.Fprintln(p.errOut, p.style(timeoutStyle, "Timeout: ")+err.Error())
	case errors.As(err, &ve):
		_, _ = fmt.Fprintln(p.errOut, p.style(errorStyle, "Uncaught ")+ve.Message)
	default:
		_, _ = fmt.Fprintln(p.errOut, p.style(errorStyle, "Error: ")+err.Error())
	}
}

// note prints informational text.
func (p *printer) note(msg string) {
	_, _ = fmt.Fprintln(p.errOut, p.style(noteStyle, msg))
}
