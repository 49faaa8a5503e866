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
	"sort"
	"strconv"
)

// Encoder encodes Values to the bencoded bytes.
//
// The zero Encoder is ready to use. An Encoder holds only the immutable
// configuration, so it may be used by multiple goroutines concurrently.
type Encoder struct {
	// Encoding, if not empty, is the IANA name of the character
	// encoding used to serialize the text-valued strings, that's,
	// the ones constructed by NewText or materialized by the decoder.
	//
	// The default serializes the text as its UTF-8 bytes.
	Encoding string

	// SkipUnknown, if true, lets a value of the kind Invalid contribute
	// no bytes instead of failing with ErrUnsupportedType: inside a
	// list the element is dropped, and inside a dictionary the whole
	// key-value pair is dropped, never leaving a dangling key.
	//
	// It also applies to the unsupported Go values met by EncodeAny.
	SkipUnknown bool

	// SortKeys, if true, emits the dictionary keys in the ascending
	// order instead of the insertion order, which produces the
	// canonical bencode for the already minimal values.
	//
	// The integer keys, a non-standard extension, are ordered
	// numerically before all the string keys.
	SortKeys bool

	// MaxDepth is the maximum nesting depth of the encoded value.
	// A deeper value fails with ErrDepthExceeded.
	//
	// The default is DefaultMaxDepth.
	MaxDepth int
}

func (e Encoder) maxDepth() int {
	if e.MaxDepth > 0 {
		return e.MaxDepth
	}
	return DefaultMaxDepth
}

// Encode encodes a value of any of the four shapes, dispatching on
// its kind.
//
// For the zero (Invalid) Value, it fails with ErrUnsupportedType,
// or returns no bytes if SkipUnknown is true.
func (e Encoder) Encode(v Value) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := e.encodeValue(buf, v, 1); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeInteger encodes an Integer value as "i" digits "e",
// and fails with ErrUnsupportedType for any other kind.
func (e Encoder) EncodeInteger(v Value) ([]byte, error) {
	return e.encodeKind(v, Integer)
}

// EncodeString encodes a String value as "length:content",
// and fails with ErrUnsupportedType for any other kind.
func (e Encoder) EncodeString(v Value) ([]byte, error) {
	return e.encodeKind(v, String)
}

// EncodeList encodes a List value as "l" elements "e",
// and fails with ErrUnsupportedType for any other kind.
func (e Encoder) EncodeList(v Value) ([]byte, error) {
	return e.encodeKind(v, List)
}

// EncodeDictionary encodes a Dict value as "d" pairs "e", and fails
// with ErrUnsupportedType for any other kind.
//
// The pairs are emitted in the insertion order of the dictionary.
// The canonical bencode requires the keys sorted in the ascending
// byte order, which is not enforced: a caller needing the canonical
// output sets SortKeys or pre-sorts the dictionary itself.
func (e Encoder) EncodeDictionary(v Value) ([]byte, error) {
	return e.encodeKind(v, Dict)
}

// EncodeAny encodes any Go value that type-checks as one of the four
// bencode shapes: the signed and unsigned integers and *big.Int,
// string and []byte, []interface{}, map[string]interface{}, and Value
// or *Dictionary themselves.
//
// The value is first classified into a Value and then encoded, so an
// unsupported Go value obeys SkipUnknown the same as an Invalid Value.
// The keys of a map are ordered ascending, since a Go map has no
// insertion order to preserve.
func (e Encoder) EncodeAny(x interface{}) ([]byte, error) {
	v, ok, err := e.valueOf(x)
	if err != nil {
		return nil, err
	} else if !ok {
		return []byte{}, nil
	}
	return e.Encode(v)
}

func (e Encoder) encodeKind(v Value, kind Kind) ([]byte, error) {
	if v.kind != kind {
		return nil, fmt.Errorf("%w: expect a %s, but got a %s",
			ErrUnsupportedType, kind, v.kind)
	}
	return e.Encode(v)
}

func (e Encoder) encodeValue(buf *bytes.Buffer, v Value, depth int) error {
	if depth > e.maxDepth() {
		return fmt.Errorf("%w: deeper than %d", ErrDepthExceeded, e.maxDepth())
	}

	switch v.kind {
	case Integer:
		buf.WriteByte('i')
		buf.WriteString(v.integerText())
		buf.WriteByte('e')

	case String:
		content := v.str
		if v.text && e.Encoding != "" {
			var err error
			if content, err = encodeCharset(e.Encoding, string(v.str)); err != nil {
				return err
			}
		}
		buf.WriteString(strconv.Itoa(len(content)))
		buf.WriteByte(':')
		buf.Write(content)

	case List:
		buf.WriteByte('l')
		for _, elem := range v.list {
			if elem.kind == Invalid && e.SkipUnknown {
				continue
			}
			if err := e.encodeValue(buf, elem, depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte('e')

	case Dict:
		buf.WriteByte('d')
		keys, values := v.dict.keys, v.dict.values
		for _, i := range e.dictOrder(v.dict) {
			if values[i].kind == Invalid && e.SkipUnknown {
				continue
			}
			if err := e.encodeValue(buf, keys[i], depth+1); err != nil {
				return err
			}
			if err := e.encodeValue(buf, values[i], depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte('e')

	default:
		if e.SkipUnknown {
			return nil
		}
		return fmt.Errorf("%w: not a bencode value", ErrUnsupportedType)
	}

	return nil
}

// dictOrder returns the emission order of the pairs of d.
func (e Encoder) dictOrder(d *Dictionary) []int {
	order := make([]int, len(d.keys))
	for i := range order {
		order[i] = i
	}

	if e.SortKeys {
		sort.SliceStable(order, func(i, j int) bool {
			return compareKeys(d.keys[order[i]], d.keys[order[j]]) < 0
		})
	}
	return order
}

// compareKeys orders the dictionary keys: the strings ascending by the
// raw byte value, the non-standard integer keys numerically before all
// the strings.
func compareKeys(a, b Value) int {
	if a.kind != b.kind {
		if a.kind == Integer {
			return -1
		}
		return 1
	}
	if a.kind == Integer {
		return a.BigInt().Cmp(b.BigInt())
	}
	return bytes.Compare(a.str, b.str)
}

// NewValue classifies a Go value into a Value of one of the four
// bencode shapes, and fails with ErrUnsupportedType for any other
// Go value. See Encoder.EncodeAny for the supported set.
func NewValue(x interface{}) (Value, error) {
	v, _, err := Encoder{}.valueOf(x)
	return v, err
}

// valueOf classifies x into a Value. ok is false when x is unsupported
// and skipped by SkipUnknown.
func (e Encoder) valueOf(x interface{}) (v Value, ok bool, err error) {
	switch t := x.(type) {
	case Value:
		return t, t.kind != Invalid || !e.SkipUnknown, nil
	case *Dictionary:
		return NewDict(t), true, nil
	case int:
		return NewInteger(int64(t)), true, nil
	case int8:
		return NewInteger(int64(t)), true, nil
	case int16:
		return NewInteger(int64(t)), true, nil
	case int32:
		return NewInteger(int64(t)), true, nil
	case int64:
		return NewInteger(t), true, nil
	case uint:
		return NewBigInteger(new(big.Int).SetUint64(uint64(t))), true, nil
	case uint8:
		return NewInteger(int64(t)), true, nil
	case uint16:
		return NewInteger(int64(t)), true, nil
	case uint32:
		return NewInteger(int64(t)), true, nil
	case uint64:
		return NewBigInteger(new(big.Int).SetUint64(t)), true, nil
	case *big.Int:
		return NewBigInteger(t), true, nil
	case string:
		return NewText(t), true, nil
	case []byte:
		return NewString(t), true, nil

	case []interface{}:
		elems := make([]Value, 0, len(t))
		for _, elem := range t {
			ev, eok, eerr := e.valueOf(elem)
			if eerr != nil {
				return v, false, eerr
			} else if eok {
				elems = append(elems, ev)
			}
		}
		return NewList(elems...), true, nil

	case map[string]interface{}:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		dict := NewDictionary()
		for _, key := range keys {
			ev, eok, eerr := e.valueOf(t[key])
			if eerr != nil {
				return v, false, eerr
			} else if eok {
				dict.SetString(key, ev)
			}
		}
		return NewDict(dict), true, nil
	}

	if e.SkipUnknown {
		return v, false, nil
	}
	return v, false, fmt.Errorf("%w: %T", ErrUnsupportedType, x)
}
