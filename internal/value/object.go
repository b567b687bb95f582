// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package value

// Entry is one key/value pair of an Object.
type Entry struct {
	Key   Value
	Value Value
}

// Object is a mapping from Value to Value with unique keys. Keys are compared
// with Equal and located through Hash. Iteration follows insertion order,
// which has no bearing on equality or hashing.
type Object struct {
	entries []Entry
	index   map[uint64][]int
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{index: make(map[uint64][]int)}
}

func (o *Object) find(key Value, h uint64) int {
	for _, i := range o.index[h] {
		if o.entries[i].Key.Equal(key) {
			return i
		}
	}
	return -1
}

// Set inserts or replaces the value stored under key. Replacing keeps the
// original position.
func (o *Object) Set(key, val Value) {
	if o.index == nil {
		o.index = make(map[uint64][]int)
	}
	h := key.Hash()
	if i := o.find(key, h); i >= 0 {
		o.entries[i].Value = val
		return
	}
	o.index[h] = append(o.index[h], len(o.entries))
	o.entries = append(o.entries, Entry{Key: key, Value: val})
}

// SetString is Set with a String key.
func (o *Object) SetString(key string, val Value) { o.Set(String(key), val) }

// Get returns the value stored under key.
func (o *Object) Get(key Value) (Value, bool) {
	if o == nil {
		return NoValue, false
	}
	if i := o.find(key, key.Hash()); i >= 0 {
		return o.entries[i].Value, true
	}
	return NoValue, false
}

// GetString is Get with a String key.
func (o *Object) GetString(key string) (Value, bool) { return o.Get(String(key)) }

// Has reports whether key is present.
func (o *Object) Has(key Value) bool {
	_, ok := o.Get(key)
	return ok
}

// Delete removes key and reports whether it was present.
func (o *Object) Delete(key Value) bool {
	if o == nil {
		return false
	}
	i := o.find(key, key.Hash())
	if i < 0 {
		return false
	}
	o.entries = append(o.entries[:i], o.entries[i+1:]...)
	o.reindex()
	return true
}

func (o *Object) reindex() {
	o.index = make(map[uint64][]int, len(o.entries))
	for i, e := range o.entries {
		h := e.Key.Hash()
		o.index[h] = append(o.index[h], i)
	}
}

// Len returns the number of entries.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.entries)
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []Value {
	keys := make([]Value, 0, o.Len())
	for _, e := range o.Entries() {
		keys = append(keys, e.Key)
	}
	return keys
}

// Entries returns the entries in insertion order. The slice is shared.
func (o *Object) Entries() []Entry {
	if o == nil {
		return nil
	}
	return o.entries
}

// Range calls fn for each entry in insertion order until fn returns false.
func (o *Object) Range(fn func(key, val Value) bool) {
	for _, e := range o.Entries() {
		if !fn(e.Key, e.Value) {
			return
		}
	}
}
