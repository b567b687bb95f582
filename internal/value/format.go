// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/itchyny/timefmt-go"
	"github.com/mattn/go-runewidth"
)

const isoLayout = "%Y-%m-%dT%H:%M:%S"

// GoString returns the debug representation, e.g. Array([Float(1), Float(2)]).
func (v Value) GoString() string {
	var sb strings.Builder
	v.writeDebug(&sb)
	return sb.String()
}

func (v Value) writeDebug(sb *strings.Builder) {
	switch v.kind {
	case KindNoValue, KindUndefined, KindNull:
		sb.WriteString(v.kind.String())
		return
	case KindArray:
		sb.WriteString("Array([")
		for i, e := range v.arr {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.writeDebug(sb)
		}
		sb.WriteString("])")
		return
	case KindObject:
		sb.WriteString("Object({")
		for i, e := range v.obj.Entries() {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.Key.writeDebug(sb)
			sb.WriteString(": ")
			e.Value.writeDebug(sb)
		}
		sb.WriteString("})")
		return
	}

	sb.WriteString(v.kind.String())
	sb.WriteByte('(')
	switch v.kind {
	case KindBoolean:
		b, _ := v.AsBool()
		sb.WriteString(strconv.FormatBool(b))
	case KindFloat, KindDate:
		sb.WriteString(formatNumber(v.num))
	case KindInteger:
		i, _ := v.AsInt()
		sb.WriteString(strconv.FormatInt(int64(i), 10))
	case KindUnsignedInteger:
		sb.WriteString(strconv.FormatUint(uint64(uint32(v.bits)), 10))
	case KindString:
		sb.WriteString(strconv.Quote(v.str))
	case KindFunction:
		sb.WriteString(v.fn.displayName())
	}
	sb.WriteByte(')')
}

// String returns a JavaScript-like display form. Top-level strings are
// written raw; nested strings are quoted.
func (v Value) String() string {
	if v.kind == KindString {
		return v.str
	}
	var sb strings.Builder
	v.writeDisplay(&sb)
	return sb.String()
}

func (v Value) writeDisplay(sb *strings.Builder) {
	switch v.kind {
	case KindNoValue:
		sb.WriteString("<no value>")
	case KindUndefined:
		sb.WriteString("undefined")
	case KindNull:
		sb.WriteString("null")
	case KindBoolean:
		b, _ := v.AsBool()
		sb.WriteString(strconv.FormatBool(b))
	case KindFloat:
		sb.WriteString(formatNumber(v.num))
	case KindInteger, KindUnsignedInteger:
		n, _ := v.Number()
		sb.WriteString(formatNumber(n))
	case KindDate:
		sb.WriteString(v.isoDate())
	case KindString:
		sb.WriteString(strconv.Quote(v.str))
	case KindFunction:
		fmt.Fprintf(sb, "[Function %s]", v.fn.displayName())
	case KindArray:
		sb.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.writeDisplay(sb)
		}
		sb.WriteByte(']')
	case KindObject:
		if v.obj.Len() == 0 {
			sb.WriteString("{}")
			return
		}
		sb.WriteString("{ ")
		for i, e := range v.obj.Entries() {
			if i > 0 {
				sb.WriteString(", ")
			}
			if k, ok := e.Key.AsString(); ok {
				sb.WriteString(k)
			} else {
				e.Key.writeDisplay(sb)
			}
			sb.WriteString(": ")
			e.Value.writeDisplay(sb)
		}
		sb.WriteString(" }")
	}
}

// Pretty returns String truncated to width display cells. A width of zero or
// less disables truncation.
func (v Value) Pretty(width int) string {
	s := v.String()
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// isoDate renders a Date the way Date.prototype.toISOString does.
func (v Value) isoDate() string {
	t, ok := v.Time()
	if !ok {
		return "Invalid Date"
	}
	return timefmt.Format(t, isoLayout) + fmt.Sprintf(".%03dZ", t.Nanosecond()/1e6)
}

func (f *Func) displayName() string {
	if f == nil || f.name == "" {
		return "(anonymous)"
	}
	return f.name
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	if a := math.Abs(f); a == 0 || (a >= 1e-7 && a < 1e21) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
