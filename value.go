// Copyright 2023 xgfone
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bencode

import (
	"bytes"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Kind identifies which of the four bencode shapes a Value holds.
type Kind uint8

// The kinds of the bencode values.
const (
	Invalid Kind = iota // The zero Value, which is no bencode value.
	Integer
	String
	List
	Dict
)

func (k Kind) String() string {
	switch k {
	case Integer:
		return "integer"
	case String:
		return "string"
	case List:
		return "list"
	case Dict:
		return "dictionary"
	}
	return "invalid"
}

// Value represents a bencode value, which is one of the four shapes:
// an integer, a string, a list or a dictionary.
//
// The zero Value is of the kind Invalid and represents no value at all.
// A Value is constructed once, either by the decoder or by one of the
// New* constructors, and must not be modified afterwards.
type Value struct {
	kind Kind
	i64  int64
	big  *big.Int // Only set when the integer does not fit into int64.
	str  []byte
	text bool
	list []Value
	dict *Dictionary
}

// NewInteger returns an Integer value from i.
func NewInteger(i int64) Value {
	return Value{kind: Integer, i64: i}
}

// NewBigInteger returns an Integer value from the arbitrary-precision
// integer i, which is stored as int64 whenever it fits.
func NewBigInteger(i *big.Int) Value {
	if i.IsInt64() {
		return Value{kind: Integer, i64: i.Int64()}
	}
	return Value{kind: Integer, big: new(big.Int).Set(i)}
}

// NewString returns a String value from the raw bytes b.
//
// The returned value references b, so the caller must not modify b
// afterwards.
func NewString(b []byte) Value {
	return Value{kind: String, str: b}
}

// NewText returns a String value from the text s.
//
// Contrary to NewString, the value is marked as text, so the encoder
// transcodes it by its configured character encoding.
func NewText(s string) Value {
	return Value{kind: String, str: []byte(s), text: true}
}

// NewList returns a List value containing the given elements in order.
func NewList(elems ...Value) Value {
	return Value{kind: List, list: elems}
}

// NewDict returns a Dict value wrapping the dictionary d.
//
// If d is nil, an empty dictionary is used instead.
func NewDict(d *Dictionary) Value {
	if d == nil {
		d = NewDictionary()
	}
	return Value{kind: Dict, dict: d}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind { return v.kind }

// Int64 returns the integer payload and true if the value is an Integer
// fitting into int64. For any other value it returns (0, false).
func (v Value) Int64() (int64, bool) {
	if v.kind != Integer || v.big != nil {
		return 0, false
	}
	return v.i64, true
}

// BigInt returns the integer payload as a new *big.Int, or nil if the
// value is not an Integer.
func (v Value) BigInt() *big.Int {
	if v.kind != Integer {
		return nil
	} else if v.big != nil {
		return new(big.Int).Set(v.big)
	}
	return big.NewInt(v.i64)
}

// Bytes returns the raw bytes of a String value, or nil otherwise.
//
// The returned slice is the payload itself and must not be modified.
func (v Value) Bytes() []byte {
	if v.kind != String {
		return nil
	}
	return v.str
}

// Text returns the string payload of a String value, or "" otherwise.
func (v Value) Text() string {
	if v.kind != String {
		return ""
	}
	return string(v.str)
}

// IsText reports whether the value is a String materialized as text
// under a character encoding, instead of raw bytes.
func (v Value) IsText() bool { return v.kind == String && v.text }

// List returns the elements of a List value, or nil otherwise.
//
// The returned slice is the payload itself and must not be modified.
func (v Value) List() []Value {
	if v.kind != List {
		return nil
	}
	return v.list
}

// Dict returns the dictionary payload of a Dict value, or nil otherwise.
func (v Value) Dict() *Dictionary {
	if v.kind != Dict {
		return nil
	}
	return v.dict
}

// Len returns the number of the elements for a List or Dict value,
// the number of the payload bytes for a String value, and 0 otherwise.
func (v Value) Len() int {
	switch v.kind {
	case String:
		return len(v.str)
	case List:
		return len(v.list)
	case Dict:
		return v.dict.Len()
	}
	return 0
}

// Equal reports whether v is structurally equal to o, that's,
// both have the same kind and the recursively equal payloads.
//
// Two dictionaries are compared as mappings, ignoring the insertion
// order of their keys. Whether a String value is marked as text does
// not affect the equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}

	switch v.kind {
	case Integer:
		if v.big == nil && o.big == nil {
			return v.i64 == o.i64
		}
		return v.BigInt().Cmp(o.BigInt()) == 0
	case String:
		return bytes.Equal(v.str, o.str)
	case List:
		if len(v.list) != len(o.list) {
			return false
		}
		for i, e := range v.list {
			if !e.Equal(o.list[i]) {
				return false
			}
		}
		return true
	case Dict:
		return v.dict.Equal(o.dict)
	}
	return true
}

// String returns a compact literal representation of the value,
// which is only used for debugging.
func (v Value) String() string {
	switch v.kind {
	case Integer:
		if v.big != nil {
			return v.big.String()
		}
		return strconv.FormatInt(v.i64, 10)
	case String:
		return strconv.Quote(string(v.str))
	case List:
		ss := make([]string, len(v.list))
		for i, e := range v.list {
			ss[i] = e.String()
		}
		return "[" + strings.Join(ss, ", ") + "]"
	case Dict:
		ss := make([]string, 0, v.dict.Len())
		v.dict.Range(func(k, e Value) bool {
			ss = append(ss, k.String()+": "+e.String())
			return true
		})
		return "{" + strings.Join(ss, ", ") + "}"
	}
	return "<invalid>"
}

// integerText returns the canonical decimal representation.
func (v Value) integerText() string {
	if v.big != nil {
		return v.big.String()
	}
	return strconv.FormatInt(v.i64, 10)
}

// Dictionary is a mapping from the Integer or String keys to the values,
// which preserves the insertion order of the keys.
//
// Setting an existing key again replaces its value but keeps the
// original position of the key, the same as the decoder handling
// the duplicate keys, that's, last-write-wins.
type Dictionary struct {
	keys   []Value
	values []Value
	index  map[string]int
}

// NewDictionary returns a new empty Dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{index: make(map[string]int)}
}

// mapKey returns the identity of a dictionary key, which distinguishes
// the Integer keys from the String keys.
func mapKey(key Value) string {
	if key.kind == Integer {
		return "i" + key.integerText()
	}
	return "s" + string(key.str)
}

// Len returns the number of the key-value pairs.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return len(d.keys)
}

// Set sets the value of the key, which must be an Integer or String
// value, and returns an error for the key of any other kind.
func (d *Dictionary) Set(key, value Value) error {
	if key.kind != Integer && key.kind != String {
		return fmt.Errorf("%w: dictionary key must be an integer or string, not %s",
			ErrUnsupportedType, key.kind)
	}

	if d.index == nil {
		d.index = make(map[string]int)
	}

	id := mapKey(key)
	if i, ok := d.index[id]; ok {
		d.values[i] = value
		return nil
	}

	d.index[id] = len(d.keys)
	d.keys = append(d.keys, key)
	d.values = append(d.values, value)
	return nil
}

// SetString is a convenience of Set with the text key.
func (d *Dictionary) SetString(key string, value Value) {
	d.Set(NewText(key), value)
}

// Get returns the value of the key and true, or the zero Value
// and false if the key does not exist.
func (d *Dictionary) Get(key Value) (Value, bool) {
	if d == nil || d.index == nil {
		return Value{}, false
	}
	if i, ok := d.index[mapKey(key)]; ok {
		return d.values[i], true
	}
	return Value{}, false
}

// GetString is a convenience of Get with the text key.
func (d *Dictionary) GetString(key string) (Value, bool) {
	return d.Get(NewText(key))
}

// Keys returns the keys in the insertion order.
func (d *Dictionary) Keys() []Value {
	if d == nil {
		return nil
	}
	return append([]Value(nil), d.keys...)
}

// Range traverses the key-value pairs in the insertion order until
// f returns false.
func (d *Dictionary) Range(f func(key, value Value) bool) {
	if d == nil {
		return
	}
	for i, key := range d.keys {
		if !f(key, d.values[i]) {
			return
		}
	}
}

// Equal reports whether d contains the same mapping as o, ignoring
// the insertion order of the keys.
func (d *Dictionary) Equal(o *Dictionary) bool {
	if d.Len() != o.Len() {
		return false
	}
	for i, key := range d.keys {
		value, ok := o.Get(key)
		if !ok || !d.values[i].Equal(value) {
			return false
		}
	}
	return true
}
