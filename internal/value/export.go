// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package value

import (
	"bytes"
	"encoding/json"
	"math"
)

// MarshalJSON renders v as JSON. NoValue, Undefined, Function and non-finite
// numbers become null; dates become ISO-8601 strings. Object keys that are not
// strings use their display form.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindNoValue, KindUndefined, KindNull, KindFunction:
		buf.WriteString("null")
	case KindBoolean, KindInteger, KindUnsignedInteger:
		buf.WriteString(v.String())
	case KindFloat:
		if math.IsNaN(v.num) || math.IsInf(v.num, 0) {
			buf.WriteString("null")
			return nil
		}
		buf.WriteString(formatNumber(v.num))
	case KindDate:
		if _, ok := v.Time(); !ok {
			buf.WriteString("null")
			return nil
		}
		return writeJSONString(buf, v.isoDate())
	case KindString:
		return writeJSONString(buf, v.str)
	case KindArray:
		buf.WriteByte('[')
		for i, e := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := e.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindObject:
		buf.WriteByte('{')
		for i, e := range v.obj.Entries() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, e.Key.String()); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := e.Value.writeJSON(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// Interface converts v to plain Go data: nil, bool, float64, int32, uint32,
// time.Time, string, []any, map[string]any. Functions export as *Func.
// Object keys use their display form.
func (v Value) Interface() any {
	switch v.kind {
	case KindBoolean:
		b, _ := v.AsBool()
		return b
	case KindFloat:
		return v.num
	case KindInteger:
		i, _ := v.AsInt()
		return i
	case KindUnsignedInteger:
		u, _ := v.AsUint()
		return u
	case KindDate:
		if t, ok := v.Time(); ok {
			return t
		}
		return nil
	case KindString:
		return v.str
	case KindArray:
		out := make([]any, len(v.arr))
		for i, e := range v.arr {
			out[i] = e.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, v.obj.Len())
		for _, e := range v.obj.Entries() {
			out[e.Key.String()] = e.Value.Interface()
		}
		return out
	case KindFunction:
		return v.fn
	}
	return nil
}
