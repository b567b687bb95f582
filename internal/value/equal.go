// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package value

import (
	"encoding/binary"
	"math"

	metro "github.com/dgryski/go-metro"
)

// Discriminant tags written first by Hash. They are part of the hash format
// and must not be renumbered.
const (
	tagNoValue   byte = 0
	tagUndefined byte = 1
	tagNull      byte = 3
	tagTrue      byte = 4
	tagFalse     byte = 5
	tagFloat     byte = 6
	tagInteger   byte = 7
	tagUnsigned  byte = 8
	tagDate      byte = 9
	tagString    byte = 10
	tagArray     byte = 11
	tagFunction  byte = 12
	tagObject    byte = 13
)

const hashSeed = 0x15a7e5

// Equal reports whether v and w are the same kind with equal payloads.
// Numbers compare with ==, so NaN is not equal to itself. Arrays compare
// element-wise by index. Objects are equal when they hold the same key set
// with equal values under every key; insertion order is ignored. Functions
// compare by identity.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindNoValue, KindUndefined, KindNull:
		return true
	case KindBoolean, KindInteger, KindUnsignedInteger:
		return v.bits == w.bits
	case KindFloat, KindDate:
		return v.num == w.num
	case KindString:
		return v.str == w.str
	case KindArray:
		if len(v.arr) != len(w.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(w.arr[i]) {
				return false
			}
		}
		return true
	case KindFunction:
		if v.fn == nil || w.fn == nil {
			return v.fn == w.fn
		}
		if v.fn.ref == nil || w.fn.ref == nil {
			return v.fn == w.fn
		}
		return v.fn.ref == w.fn.ref
	case KindObject:
		if v.obj.Len() != w.obj.Len() {
			return false
		}
		for _, e := range v.obj.Entries() {
			other, ok := w.obj.Get(e.Key)
			if !ok || !e.Value.Equal(other) {
				return false
			}
		}
		return true
	}
	return false
}

// Compare always returns 0. Values have no meaningful total order; Compare
// exists only for APIs that demand a comparison function and must never be
// used to sort.
func (v Value) Compare(Value) int { return 0 }

// Hash returns a hash consistent with Equal: equal values hash equal.
func (v Value) Hash() uint64 {
	return metro.Hash64(v.AppendHash(nil), hashSeed)
}

// AppendHash appends the hash input of v to b: a discriminant tag byte
// followed by the variant payload.
func (v Value) AppendHash(b []byte) []byte {
	switch v.kind {
	case KindNoValue:
		return append(b, tagNoValue)
	case KindUndefined:
		return append(b, tagUndefined)
	case KindNull:
		return append(b, tagNull)
	case KindBoolean:
		if v.bits == 1 {
			return append(b, tagTrue)
		}
		return append(b, tagFalse)
	case KindFloat:
		return binary.LittleEndian.AppendUint64(append(b, tagFloat), floatBits(v.num))
	case KindInteger:
		return binary.LittleEndian.AppendUint32(append(b, tagInteger), uint32(v.bits))
	case KindUnsignedInteger:
		return binary.LittleEndian.AppendUint32(append(b, tagUnsigned), uint32(v.bits))
	case KindDate:
		return binary.LittleEndian.AppendUint64(append(b, tagDate), floatBits(v.num))
	case KindString:
		b = binary.AppendUvarint(append(b, tagString), uint64(len(v.str)))
		return append(b, v.str...)
	case KindArray:
		b = binary.AppendUvarint(append(b, tagArray), uint64(len(v.arr)))
		for _, e := range v.arr {
			b = e.AppendHash(b)
		}
		return b
	case KindFunction:
		return append(b, tagFunction)
	case KindObject:
		// Entry hashes are summed so that insertion order does not matter.
		var sum uint64
		var buf []byte
		for _, e := range v.obj.Entries() {
			buf = e.Value.AppendHash(e.Key.AppendHash(buf[:0]))
			sum += metro.Hash64(buf, hashSeed)
		}
		b = binary.AppendUvarint(append(b, tagObject), uint64(v.obj.Len()))
		return binary.LittleEndian.AppendUint64(b, sum)
	}
	return b
}

// floatBits returns the IEEE bits of f with -0 folded into +0 and every NaN
// folded into one pattern, keeping Hash consistent with ==.
func floatBits(f float64) uint64 {
	switch {
	case f == 0:
		return 0
	case f != f:
		return 0x7ff8000000000001
	}
	return math.Float64bits(f)
}
