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
	"math/big"
	"testing"
)

func TestValue_Equal(t *testing.T) {
	if !NewInteger(42).Equal(NewInteger(42)) {
		t.Errorf("expect the equal integers")
	}
	if NewInteger(42).Equal(NewText("42")) {
		t.Errorf("expect the different kinds not to be equal")
	}

	// The text mark does not affect the equality.
	if !NewText("spam").Equal(NewString([]byte("spam"))) {
		t.Errorf("expect the text and the raw bytes to be equal")
	}

	// An int64 and the equal big integer are equal.
	if !NewInteger(42).Equal(NewBigInteger(big.NewInt(42))) {
		t.Errorf("expect the equal integers")
	}

	// The dictionaries are compared as mappings, ignoring the order.
	d1 := NewDictionary()
	d1.SetString("a", NewInteger(1))
	d1.SetString("b", NewInteger(2))

	d2 := NewDictionary()
	d2.SetString("b", NewInteger(2))
	d2.SetString("a", NewInteger(1))

	if !NewDict(d1).Equal(NewDict(d2)) {
		t.Errorf("expect the dictionaries to be equal regardless of the order")
	}

	d2.SetString("a", NewInteger(3))
	if NewDict(d1).Equal(NewDict(d2)) {
		t.Errorf("expect the dictionaries not to be equal")
	}

	// The lists are ordered.
	l1 := NewList(NewInteger(1), NewInteger(2))
	l2 := NewList(NewInteger(2), NewInteger(1))
	if l1.Equal(l2) {
		t.Errorf("expect the lists not to be equal")
	}
}

func TestDictionary(t *testing.T) {
	d := NewDictionary()
	d.SetString("foo", NewInteger(1))
	d.SetString("bar", NewInteger(2))
	d.SetString("foo", NewInteger(3))

	if d.Len() != 2 {
		t.Fatalf("expect 2 pairs, but got %d", d.Len())
	}

	// last-write-wins keeps the first position of the key.
	keys := d.Keys()
	if len(keys) != 2 || keys[0].Text() != "foo" || keys[1].Text() != "bar" {
		t.Errorf("unexpected keys %v", keys)
	}
	if v, ok := d.GetString("foo"); !ok {
		t.Errorf("missing the key 'foo'")
	} else if i, _ := v.Int64(); i != 3 {
		t.Errorf("expect 3, but got %s", v)
	}

	// The integer key 1 and the string key "1" are distinct.
	d.Set(NewInteger(1), NewText("int"))
	d.SetString("1", NewText("str"))
	if d.Len() != 4 {
		t.Errorf("expect 4 pairs, but got %d", d.Len())
	}
	if v, _ := d.Get(NewInteger(1)); v.Text() != "int" {
		t.Errorf("expect 'int', but got %s", v)
	}
	if v, _ := d.GetString("1"); v.Text() != "str" {
		t.Errorf("expect 'str', but got %s", v)
	}

	if err := d.Set(NewList(), NewInteger(1)); err == nil {
		t.Errorf("expect an error for the list key")
	}

	if _, ok := d.GetString("nothing"); ok {
		t.Errorf("expect the missing key")
	}
}

func TestNewValue(t *testing.T) {
	v, err := NewValue([]interface{}{42, "spam", []byte{1}, map[string]interface{}{"k": 1}})
	if err != nil {
		t.Fatal(err)
	}

	dict := NewDictionary()
	dict.SetString("k", NewInteger(1))
	expect := NewList(NewInteger(42), NewText("spam"), NewString([]byte{1}), NewDict(dict))
	if !v.Equal(expect) {
		t.Errorf("expect %s, but got %s", expect, v)
	}
}
