// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package value

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/dop251/goja"
)

// DefaultMaxDepth bounds recursion into nested arrays and objects.
const DefaultMaxDepth = 1000

const (
	// checkInterval is how many elements or properties are converted
	// between calls to Options.Check.
	checkInterval = 1024

	// maxPrealloc caps the capacity reserved up front for array elements.
	// Script array lengths are not trusted for allocation.
	maxPrealloc = 1024
)

// Property is one enumerable property of an object: its name and its value.
type Property struct {
	Name  goja.Value
	Value goja.Value
}

// Enumerator lists the enumerable properties of obj, in engine order.
// Reading property values may run script getters, which may fail.
type Enumerator func(obj *goja.Object) ([]Property, error)

// Options controls conversion.
type Options struct {
	// Integers enables narrow number classification: values that fit uint32
	// become UnsignedInteger, then values that fit int32 become Integer, and
	// everything else stays Float. When false every number is a Float.
	Integers bool

	// MaxDepth bounds nesting; deeper nodes convert to NoValue. Zero means
	// DefaultMaxDepth, a negative value disables the bound.
	MaxDepth int

	// Enumerate lists object properties. Nil falls back to own enumerable
	// string keys.
	Enumerate Enumerator

	// Check is called periodically while arrays and objects are walked.
	// A non-nil error aborts the conversion and is returned as is.
	Check func() error
}

// Converter turns goja values into owned Values. It must only be used while
// the runtime it was built for is not executing on another goroutine.
type Converter struct {
	vm   *goja.Runtime
	opts Options

	// active holds the arrays and objects on the current conversion path.
	active map[*goja.Object]struct{}
	steps  int
}

// NewConverter returns a Converter for values of vm.
func NewConverter(vm *goja.Runtime, opts Options) *Converter {
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	return &Converter{vm: vm, opts: opts, active: make(map[*goja.Object]struct{})}
}

// Convert converts v using a fresh Converter.
func Convert(vm *goja.Runtime, v goja.Value, opts Options) (Value, error) {
	return NewConverter(vm, opts).Convert(v)
}

// Convert converts v. The result holds no engine handles except for the
// opaque reference inside Function values. An array or object reached again
// while it is still being converted (a cycle) converts to NoValue.
func (c *Converter) Convert(v goja.Value) (Value, error) {
	return c.convert(v, 0)
}

// classifier is one step of the conversion dispatch.
type classifier struct {
	name    string
	match   func(goja.Value) bool
	convert func(c *Converter, v goja.Value, depth int) (Value, error)
}

// classifiers are tried in order and the first match wins. Null precedes the
// object test, and the date test precedes the generic object test. The table
// is filled in init because the object step recurses through convert.
var classifiers []classifier

func init() {
	classifiers = []classifier{
		{"null", goja.IsNull, func(*Converter, goja.Value, int) (Value, error) { return Null, nil }},
		{"undefined", goja.IsUndefined, func(*Converter, goja.Value, int) (Value, error) { return Undefined, nil }},
		{"number", isNumber, (*Converter).convertNumber},
		{"string", isString, (*Converter).convertString},
		{"date", isDate, (*Converter).convertDate},
		{"boolean", isBoolean, (*Converter).convertBoolean},
		{"object", isObject, (*Converter).convertObject},
	}
}

func (c *Converter) convert(v goja.Value, depth int) (Value, error) {
	if v == nil {
		return NoValue, nil
	}
	if c.opts.MaxDepth > 0 && depth > c.opts.MaxDepth {
		return NoValue, nil
	}
	for _, cl := range classifiers {
		if cl.match(v) {
			return cl.convert(c, v, depth)
		}
	}
	return NoValue, nil
}

func primitiveKind(v goja.Value) reflect.Kind {
	if _, ok := v.(*goja.Object); ok {
		return reflect.Invalid
	}
	t := v.ExportType()
	if t == nil {
		return reflect.Invalid
	}
	return t.Kind()
}

func isNumber(v goja.Value) bool {
	switch primitiveKind(v) {
	case reflect.Int64, reflect.Float64:
		return true
	}
	return false
}

func isString(v goja.Value) bool { return primitiveKind(v) == reflect.String }

func isBoolean(v goja.Value) bool { return primitiveKind(v) == reflect.Bool }

func isObject(v goja.Value) bool {
	_, ok := v.(*goja.Object)
	return ok
}

func isDate(v goja.Value) bool {
	obj, ok := v.(*goja.Object)
	return ok && obj.ClassName() == "Date"
}

func (c *Converter) convertNumber(v goja.Value, _ int) (Value, error) {
	return c.number(v.ToFloat()), nil
}

func (c *Converter) number(f float64) Value {
	if !c.opts.Integers || f != math.Trunc(f) || (f == 0 && math.Signbit(f)) {
		return Float(f)
	}
	if f >= 0 && f <= math.MaxUint32 {
		return Uint(uint32(f))
	}
	if f >= math.MinInt32 && f <= math.MaxInt32 {
		return Int(int32(f))
	}
	return Float(f)
}

func (c *Converter) convertString(v goja.Value, _ int) (Value, error) {
	return String(strings.ToValidUTF8(v.String(), "\uFFFD")), nil
}

func (c *Converter) convertBoolean(v goja.Value, _ int) (Value, error) {
	return Bool(v.ToBoolean()), nil
}

func (c *Converter) convertDate(v goja.Value, _ int) (Value, error) {
	obj := v.(*goja.Object)
	getTime, ok := goja.AssertFunction(obj.Get("getTime"))
	if !ok {
		return NoValue, nil
	}
	ms, err := getTime(obj)
	if err != nil {
		return NoValue, err
	}
	return Date(ms.ToFloat()), nil
}

func (c *Converter) convertObject(v goja.Value, depth int) (Value, error) {
	obj := v.ToObject(c.vm)
	if obj == nil {
		return NoValue, nil
	}

	if _, ok := goja.AssertFunction(obj); ok {
		name := ""
		if n := obj.Get("name"); n != nil && !goja.IsUndefined(n) {
			name = n.String()
		}
		return Value{kind: KindFunction, fn: &Func{ref: obj, name: name, vm: c.vm}}, nil
	}

	if _, ok := c.active[obj]; ok {
		return NoValue, nil
	}
	c.active[obj] = struct{}{}
	defer delete(c.active, obj)

	if obj.ClassName() == "Array" {
		return c.convertArray(obj, depth)
	}

	props, err := c.enumerate(obj)
	if err != nil {
		return NoValue, err
	}
	out := NewObject()
	for _, p := range props {
		if err := c.step(); err != nil {
			return NoValue, err
		}
		k, err := c.convert(p.Name, depth+1)
		if err != nil {
			return NoValue, err
		}
		val, err := c.convert(p.Value, depth+1)
		if err != nil {
			return NoValue, err
		}
		out.Set(k, val)
	}
	return ObjectValue(out), nil
}

func (c *Converter) convertArray(obj *goja.Object, depth int) (Value, error) {
	n := obj.Get("length").ToInteger()
	if n < 0 {
		return NoValue, fmt.Errorf("invalid array length %d", n)
	}
	elems := make([]Value, 0, min(n, maxPrealloc))
	for i := int64(0); i < n; i++ {
		if err := c.step(); err != nil {
			return NoValue, err
		}
		ev := obj.Get(strconv.FormatInt(i, 10))
		if ev == nil {
			ev = goja.Undefined()
		}
		e, err := c.convert(ev, depth+1)
		if err != nil {
			return NoValue, err
		}
		elems = append(elems, e)
	}
	return Array(elems...), nil
}

// step counts one converted element and runs Options.Check at every
// checkInterval steps.
func (c *Converter) step() error {
	c.steps++
	if c.opts.Check == nil || c.steps%checkInterval != 0 {
		return nil
	}
	return c.opts.Check()
}

func (c *Converter) enumerate(obj *goja.Object) ([]Property, error) {
	if c.opts.Enumerate != nil {
		return c.opts.Enumerate(obj)
	}
	keys := obj.Keys()
	props := make([]Property, 0, len(keys))
	for _, k := range keys {
		props = append(props, Property{Name: c.vm.ToValue(k), Value: obj.Get(k)})
	}
	return props, nil
}
