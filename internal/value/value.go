// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// Package value defines the native representation of JavaScript values.
//
// A Value is a closed tagged union over every conversion target of a script
// value. Values are fully owned Go data: once converted they no longer depend
// on the runtime that produced them (functions excepted, which stay opaque).
//
// Files:
//   - value.go: Kind, Value, constructors and accessors
//   - object.go: hash-indexed insertion-ordered Object container
//   - equal.go: equality, ordering stub and hashing
//   - format.go: debug, display and pretty formatting
//   - export.go: JSON and plain Go export
//   - convert.go: conversion from goja values
package value

import (
	"time"

	"github.com/dop251/goja"
)

// Kind is the discriminant of a Value.
type Kind uint8

const (
	KindNoValue Kind = iota
	KindUndefined
	KindNull
	KindBoolean
	KindFloat
	KindInteger
	KindUnsignedInteger
	KindDate
	KindString
	KindArray
	KindFunction
	KindObject
)

var kindNames = [...]string{
	KindNoValue:         "NoValue",
	KindUndefined:       "Undefined",
	KindNull:            "Null",
	KindBoolean:         "Boolean",
	KindFloat:           "Float",
	KindInteger:         "Integer",
	KindUnsignedInteger: "UnsignedInteger",
	KindDate:            "Date",
	KindString:          "String",
	KindArray:           "Array",
	KindFunction:        "Function",
	KindObject:          "Object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Value is a converted script value. The zero Value is NoValue, which is
// distinct from script undefined.
type Value struct {
	kind Kind
	num  float64 // Float, Date
	bits uint64  // Boolean, Integer, UnsignedInteger
	str  string
	arr  []Value
	obj  *Object
	fn   *Func
}

// Func is an opaque reference to a script function. It compares by identity
// of the underlying engine object and is never converted deeply.
type Func struct {
	ref  *goja.Object
	name string
	vm   *goja.Runtime // owner, nil when unknown
}

// Name returns the function's name property at conversion time.
func (f *Func) Name() string { return f.name }

// Object returns the engine function object, or nil.
func (f *Func) Object() *goja.Object {
	if f == nil {
		return nil
	}
	return f.ref
}

// Runtime returns the runtime that owns the function, or nil when the
// value was not produced by conversion.
func (f *Func) Runtime() *goja.Runtime {
	if f == nil {
		return nil
	}
	return f.vm
}

// Callable returns the engine callable. It may only be invoked inside a
// scoped access of the session that produced it.
func (f *Func) Callable() (goja.Callable, bool) {
	if f == nil || f.ref == nil {
		return nil, false
	}
	return goja.AssertFunction(f.ref)
}

var (
	// NoValue represents the absence of a value.
	NoValue = Value{}
	// Undefined is script undefined.
	Undefined = Value{kind: KindUndefined}
	// Null is script null.
	Null = Value{kind: KindNull}
)

// Bool returns a Boolean value.
func Bool(b bool) Value {
	v := Value{kind: KindBoolean}
	if b {
		v.bits = 1
	}
	return v
}

// Float returns a Float value.
func Float(f float64) Value { return Value{kind: KindFloat, num: f} }

// Int returns an Integer value.
func Int(i int32) Value { return Value{kind: KindInteger, bits: uint64(uint32(i))} }

// Uint returns an UnsignedInteger value.
func Uint(u uint32) Value { return Value{kind: KindUnsignedInteger, bits: uint64(u)} }

// Date returns a Date value holding milliseconds since the Unix epoch.
func Date(ms float64) Value { return Value{kind: KindDate, num: ms} }

// DateOf returns the Date value for t, at millisecond precision.
func DateOf(t time.Time) Value { return Date(float64(t.UnixMilli())) }

// String returns a String value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Array returns an Array value holding elems. The slice is not copied.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, arr: elems}
}

// ObjectValue wraps o as an Object value. A nil o yields an empty object.
func ObjectValue(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// ObjectOf builds an Object value from alternating key, value pairs.
// It panics on an odd number of arguments.
func ObjectOf(kv ...Value) Value {
	if len(kv)%2 != 0 {
		panic("value: ObjectOf requires key/value pairs")
	}
	o := NewObject()
	for i := 0; i < len(kv); i += 2 {
		o.Set(kv[i], kv[i+1])
	}
	return ObjectValue(o)
}

// Function wraps an engine function object.
func Function(ref *goja.Object, name string) Value {
	return Value{kind: KindFunction, fn: &Func{ref: ref, name: name}}
}

// Kind returns the discriminant.
func (v Value) Kind() Kind { return v.kind }

// IsNoValue reports whether v is the absence of a value.
func (v Value) IsNoValue() bool { return v.kind == KindNoValue }

// AsBool returns the payload of a Boolean.
func (v Value) AsBool() (bool, bool) {
	return v.bits == 1, v.kind == KindBoolean
}

// AsFloat returns the payload of a Float.
func (v Value) AsFloat() (float64, bool) {
	return v.num, v.kind == KindFloat
}

// AsInt returns the payload of an Integer.
func (v Value) AsInt() (int32, bool) {
	return int32(uint32(v.bits)), v.kind == KindInteger
}

// AsUint returns the payload of an UnsignedInteger.
func (v Value) AsUint() (uint32, bool) {
	return uint32(v.bits), v.kind == KindUnsignedInteger
}

// AsDate returns the milliseconds since epoch of a Date.
func (v Value) AsDate() (float64, bool) {
	return v.num, v.kind == KindDate
}

// Time returns a Date as time.Time in UTC. Invalid dates (NaN) report false.
func (v Value) Time() (time.Time, bool) {
	if v.kind != KindDate || v.num != v.num {
		return time.Time{}, false
	}
	return time.UnixMilli(int64(v.num)).UTC(), true
}

// AsString returns the payload of a String.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsArray returns the elements of an Array. The slice is shared.
func (v Value) AsArray() ([]Value, bool) {
	return v.arr, v.kind == KindArray
}

// AsObject returns the container of an Object.
func (v Value) AsObject() (*Object, bool) {
	return v.obj, v.kind == KindObject
}

// AsFunction returns the opaque function reference.
func (v Value) AsFunction() (*Func, bool) {
	return v.fn, v.kind == KindFunction
}

// Number returns the numeric payload of Float, Integer, UnsignedInteger and
// Date values as a float64.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindFloat, KindDate:
		return v.num, true
	case KindInteger:
		i, _ := v.AsInt()
		return float64(i), true
	case KindUnsignedInteger:
		return float64(uint32(v.bits)), true
	}
	return 0, false
}
