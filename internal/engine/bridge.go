// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package engine

import (
	"fmt"
	"strconv"

	"github.com/dop251/goja"

	"github.com/aplane-algo/isojs/internal/value"
)

// enumerate lists obj's for-in properties through the shared helper.
func (s *Session) enumerate(obj *goja.Object) ([]value.Property, error) {
	res, err := s.entries(goja.Undefined(), obj)
	if err != nil {
		return nil, err
	}
	list := res.ToObject(s.vm)
	n := list.Get("length").ToInteger()
	props := make([]value.Property, 0, n)
	for i := int64(0); i < n; i++ {
		pair := list.Get(strconv.FormatInt(i, 10)).ToObject(s.vm)
		props = append(props, value.Property{Name: pair.Get("0"), Value: pair.Get("1")})
	}
	return props, nil
}

// toJS rebuilds a Value as a script value of this session's runtime.
func (s *Session) toJS(v value.Value) (goja.Value, error) {
	switch v.Kind() {
	case value.KindNoValue, value.KindUndefined:
		return goja.Undefined(), nil
	case value.KindNull:
		return goja.Null(), nil
	case value.KindDate:
		ms, _ := v.AsDate()
		return s.vm.New(s.vm.Get("Date"), s.vm.ToValue(ms))
	case value.KindArray:
		elems, _ := v.AsArray()
		items := make([]any, len(elems))
		for i, e := range elems {
			jv, err := s.toJS(e)
			if err != nil {
				return nil, err
			}
			items[i] = jv
		}
		return s.vm.NewArray(items...), nil
	case value.KindObject:
		o, _ := v.AsObject()
		out := s.vm.NewObject()
		for _, e := range o.Entries() {
			jv, err := s.toJS(e.Value)
			if err != nil {
				return nil, err
			}
			if err := out.Set(e.Key.String(), jv); err != nil {
				return nil, err
			}
		}
		return out, nil
	case value.KindFunction:
		fn, _ := v.AsFunction()
		obj := fn.Object()
		if obj == nil {
			return nil, fmt.Errorf("function value has no engine reference")
		}
		if fn.Runtime() != s.vm {
			return nil, fmt.Errorf("%w: %s", ErrForeignFunction, fn.Name())
		}
		return obj, nil
	}
	return s.vm.ToValue(v.Interface()), nil
}
