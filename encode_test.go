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
	"errors"
	"math/big"
	"testing"
)

func TestEncoder_Encode(t *testing.T) {
	var e Encoder

	for _, test := range []struct {
		value  Value
		expect string
	}{
		{NewInteger(42), "i42e"},
		{NewInteger(-42), "i-42e"},
		{NewInteger(0), "i0e"},
		{NewText("spam"), "4:spam"},
		{NewString([]byte{0, 1}), "2:\x00\x01"},
		{NewList(), "le"},
		{NewList(NewText("spam"), NewInteger(42)), "l4:spami42ee"},
		{NewDict(nil), "de"},
	} {
		if b, err := e.Encode(test.value); err != nil {
			t.Errorf("%s: %v", test.value, err)
		} else if string(b) != test.expect {
			t.Errorf("expect %q, but got %q", test.expect, b)
		}
	}

	big, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	if b, err := e.Encode(NewBigInteger(big)); err != nil {
		t.Error(err)
	} else if expect := "i123456789012345678901234567890e"; string(b) != expect {
		t.Errorf("expect %q, but got %q", expect, b)
	}

	if _, err := e.Encode(Value{}); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expect ErrUnsupportedType, but got %v", err)
	}
}

func TestEncoder_EncodeDictionary(t *testing.T) {
	dict := NewDictionary()
	dict.SetString("foo", NewInteger(1))
	dict.SetString("bar", NewInteger(2))
	dict.SetString("foo", NewInteger(3)) // Keeps the position, replaces the value.

	var e Encoder
	if b, err := e.EncodeDictionary(NewDict(dict)); err != nil {
		t.Error(err)
	} else if expect := "d3:fooi3e3:bari2ee"; string(b) != expect {
		t.Errorf("expect %q, but got %q", expect, b)
	}

	e.SortKeys = true
	if b, err := e.EncodeDictionary(NewDict(dict)); err != nil {
		t.Error(err)
	} else if expect := "d3:bari2e3:fooi3ee"; string(b) != expect {
		t.Errorf("expect %q, but got %q", expect, b)
	}

	// The integer keys are ordered before the string keys.
	dict.Set(NewInteger(10), NewText("ten"))
	dict.Set(NewInteger(2), NewText("two"))
	if b, err := e.EncodeDictionary(NewDict(dict)); err != nil {
		t.Error(err)
	} else if expect := "di2e3:twoi10e3:ten3:bari2e3:fooi3ee"; string(b) != expect {
		t.Errorf("expect %q, but got %q", expect, b)
	}

	if _, err := e.EncodeDictionary(NewInteger(1)); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expect ErrUnsupportedType, but got %v", err)
	}
}

func TestEncoder_SkipUnknown(t *testing.T) {
	e := Encoder{SkipUnknown: true}

	// The unknown element of a list is dropped.
	list := NewList(NewInteger(1), Value{}, NewText("x"))
	if b, err := e.Encode(list); err != nil {
		t.Error(err)
	} else if expect := "li1e1:xe"; string(b) != expect {
		t.Errorf("expect %q, but got %q", expect, b)
	}

	// The whole pair of a dictionary is dropped, never a dangling key.
	dict := NewDictionary()
	dict.SetString("bad", Value{})
	dict.SetString("good", NewInteger(1))
	if b, err := e.Encode(NewDict(dict)); err != nil {
		t.Error(err)
	} else if expect := "d4:goodi1ee"; string(b) != expect {
		t.Errorf("expect %q, but got %q", expect, b)
	}

	e.SkipUnknown = false
	if _, err := e.Encode(list); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expect ErrUnsupportedType, but got %v", err)
	}
}

func TestEncoder_EncodeAny(t *testing.T) {
	var e Encoder

	b, err := e.EncodeAny(map[string]interface{}{
		"int":    42,
		"bytes":  []byte("ab"),
		"list":   []interface{}{uint16(1), "x"},
		"string": "spam",
	})
	if err != nil {
		t.Fatal(err)
	}
	if expect := "d5:bytes2:ab3:inti42e4:listli1e1:xe6:string4:spame"; string(b) != expect {
		t.Errorf("expect %q, but got %q", expect, b)
	}

	if _, err = e.EncodeAny(func() {}); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expect ErrUnsupportedType, but got %v", err)
	}

	e.SkipUnknown = true
	if b, err = e.EncodeAny([]interface{}{1, func() {}, 2}); err != nil {
		t.Error(err)
	} else if expect := "li1ei2ee"; string(b) != expect {
		t.Errorf("expect %q, but got %q", expect, b)
	}

	if _, err = NewValue(struct{}{}); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("expect ErrUnsupportedType, but got %v", err)
	}
}

func TestEncoder_Encoding(t *testing.T) {
	e := Encoder{Encoding: "ISO-8859-1"}

	if b, err := e.Encode(NewText("café")); err != nil {
		t.Error(err)
	} else if expect := "4:caf\xe9"; string(b) != expect {
		t.Errorf("expect %q, but got %q", expect, b)
	}

	// The raw bytes are never transcoded.
	if b, err := e.Encode(NewString([]byte("caf\xc3\xa9"))); err != nil {
		t.Error(err)
	} else if expect := "5:caf\xc3\xa9"; string(b) != expect {
		t.Errorf("expect %q, but got %q", expect, b)
	}

	// The rune not representable in the target encoding fails.
	if _, err := e.Encode(NewText("名前")); !errors.Is(err, ErrStringEncoding) {
		t.Errorf("expect ErrStringEncoding, but got %v", err)
	}
}

func TestEncoder_MaxDepth(t *testing.T) {
	value := NewInteger(1)
	for i := 0; i < 100; i++ {
		value = NewList(value)
	}

	e := Encoder{MaxDepth: 10}
	if _, err := e.Encode(value); !errors.Is(err, ErrDepthExceeded) {
		t.Errorf("expect ErrDepthExceeded, but got %v", err)
	}

	e.MaxDepth = 101
	if _, err := e.Encode(value); err != nil {
		t.Errorf("expect no error, but got %v", err)
	}
}
