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
	"fmt"
	"reflect"
)

var tokenDecoder Decoder

// DecodeBytes decodes the bencoded bytes b into the Go value that v
// points to, which mirrors the set supported by EncodeBytes: the
// signed and unsigned integers, bool, string and []byte, the slices
// as lists, the maps with string keys and the structs with "bencode"
// tags as dictionaries, the types implementing the interface
// Unmarshaler, and *interface{} producing the native int64, string,
// []interface{} and map[string]interface{} trees.
//
// The buffer must contain exactly one bencode value: the trailing
// bytes fail with ErrInvalidValue. The dictionary keys unknown to a
// struct are skipped, and a duplicate key keeps only the last value.
// The non-standard integer dictionary keys are accepted and
// materialized as their decimal text.
func DecodeBytes(b []byte, v interface{}) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("bencode: the decode target must be a non-nil pointer, not %T", v)
	}

	next, err := unmarshalValue(b, 0, rv.Elem(), 1)
	if err != nil {
		return err
	} else if next != len(b) {
		return syntaxError(next, ErrInvalidValue, "trailing bytes after the value")
	}
	return nil
}

// DecodeString is the same as DecodeBytes, but decodes from a string.
func DecodeString(s string, v interface{}) error {
	return DecodeBytes([]byte(s), v)
}

func unmarshalValue(buf []byte, pos int, rv reflect.Value, depth int) (int, error) {
	if depth > DefaultMaxDepth {
		return pos, syntaxError(pos, ErrDepthExceeded, "deeper than %d", DefaultMaxDepth)
	}

	if rv.CanAddr() {
		if u, ok := rv.Addr().Interface().(Unmarshaler); ok {
			return unmarshalWith(u, buf, pos, depth)
		}
	}

	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return unmarshalValue(buf, pos, rv.Elem(), depth)
	}

	if rv.Kind() == reflect.Interface && rv.NumMethod() == 0 {
		native, next, err := unmarshalNative(buf, pos, depth)
		if err == nil {
			rv.Set(reflect.ValueOf(native))
		}
		return next, err
	}

	if pos >= len(buf) {
		return pos, syntaxError(pos, ErrInvalidValue, "unexpected end of the buffer")
	}

	switch c := buf[pos]; {
	case c == 'i':
		return unmarshalInteger(buf, pos, rv)
	case c >= '0' && c <= '9':
		return unmarshalString(buf, pos, rv)
	case c == 'l':
		return unmarshalList(buf, pos, rv, depth)
	case c == 'd':
		return unmarshalDictionary(buf, pos, rv, depth)
	}
	return pos, syntaxError(pos, ErrInvalidValue, "no bencode value starts with 0x%02x", buf[pos])
}

// unmarshalWith feeds the exact span of the value at pos to u.
func unmarshalWith(u Unmarshaler, buf []byte, pos, depth int) (int, error) {
	v, next, err := tokenDecoder.decodeValue(buf, pos, depth)
	if err != nil {
		return pos, err
	} else if v.kind == Invalid {
		return pos, syntaxError(pos, ErrInvalidValue, "no bencode value")
	}

	if err = u.UnmarshalBencode(buf[pos:next]); err != nil {
		return pos, err
	}
	return next, nil
}

func unmarshalInteger(buf []byte, pos int, rv reflect.Value) (int, error) {
	v, next, err := tokenDecoder.decodeInteger(buf, pos)
	if err != nil {
		return pos, err
	}

	i64, fit := v.Int64()
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !fit || rv.OverflowInt(i64) {
			return pos, syntaxError(pos, ErrInvalidInteger, "%s overflows %s", v, rv.Type())
		}
		rv.SetInt(i64)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		big := v.BigInt()
		if !big.IsUint64() || rv.OverflowUint(big.Uint64()) {
			return pos, syntaxError(pos, ErrInvalidInteger, "%s overflows %s", v, rv.Type())
		}
		rv.SetUint(big.Uint64())

	case reflect.Bool:
		rv.SetBool(fit && i64 != 0)

	default:
		return pos, fmt.Errorf("%w: cannot decode an integer into %s",
			ErrUnsupportedType, rv.Type())
	}
	return next, nil
}

func unmarshalString(buf []byte, pos int, rv reflect.Value) (int, error) {
	v, next, err := tokenDecoder.decodeString(buf, pos)
	if err != nil {
		return pos, err
	}

	switch {
	case rv.Kind() == reflect.String:
		rv.SetString(string(v.str))
	case rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8:
		rv.SetBytes(append([]byte(nil), v.str...))
	default:
		return pos, fmt.Errorf("%w: cannot decode a string into %s",
			ErrUnsupportedType, rv.Type())
	}
	return next, nil
}

func unmarshalList(buf []byte, pos int, rv reflect.Value, depth int) (int, error) {
	if rv.Kind() != reflect.Slice {
		return pos, fmt.Errorf("%w: cannot decode a list into %s",
			ErrUnsupportedType, rv.Type())
	}

	rv.Set(reflect.MakeSlice(rv.Type(), 0, 0))
	for i := pos + 1; ; {
		if i >= len(buf) {
			return pos, syntaxError(i, ErrInvalidList, "missing the end 'e'")
		} else if buf[i] == 'e' {
			return i + 1, nil
		}

		elem := reflect.New(rv.Type().Elem()).Elem()
		next, err := unmarshalValue(buf, i, elem, depth+1)
		if err != nil {
			return pos, err
		}

		rv.Set(reflect.Append(rv, elem))
		i = next
	}
}

func unmarshalDictionary(buf []byte, pos int, rv reflect.Value, depth int) (int, error) {
	switch rv.Kind() {
	case reflect.Map:
		return unmarshalMap(buf, pos, rv, depth)
	case reflect.Struct:
		return unmarshalStruct(buf, pos, rv, depth)
	}
	return pos, fmt.Errorf("%w: cannot decode a dictionary into %s",
		ErrUnsupportedType, rv.Type())
}

// unmarshalKey decodes a dictionary key at pos as its text form.
func unmarshalKey(buf []byte, pos int) (string, int, error) {
	if pos >= len(buf) {
		return "", pos, syntaxError(pos, ErrInvalidDictionary, "missing the end 'e'")
	}

	switch c := buf[pos]; {
	case c == 'i':
		v, next, err := tokenDecoder.decodeInteger(buf, pos)
		if err != nil {
			return "", pos, err
		}
		return v.integerText(), next, nil

	case c >= '0' && c <= '9':
		v, next, err := tokenDecoder.decodeString(buf, pos)
		if err != nil {
			return "", pos, err
		}
		return string(v.str), next, nil
	}
	return "", pos, syntaxError(pos, ErrInvalidDictionary,
		"invalid dictionary key 0x%02x", buf[pos])
}

// skipValue returns the offset just past the value at pos.
func skipValue(buf []byte, pos, depth int) (int, error) {
	v, next, err := tokenDecoder.decodeValue(buf, pos, depth)
	if err != nil {
		return pos, err
	} else if v.kind == Invalid {
		return pos, syntaxError(pos, ErrInvalidValue, "no bencode value")
	}
	return next, nil
}

func unmarshalMap(buf []byte, pos int, rv reflect.Value, depth int) (int, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return pos, fmt.Errorf("%w: the map key of %s is not a string",
			ErrUnsupportedType, rv.Type())
	}

	if rv.IsNil() {
		rv.Set(reflect.MakeMap(rv.Type()))
	}

	for i := pos + 1; ; {
		if i >= len(buf) {
			return pos, syntaxError(i, ErrInvalidDictionary, "missing the end 'e'")
		} else if buf[i] == 'e' {
			return i + 1, nil
		}

		key, next, err := unmarshalKey(buf, i)
		if err != nil {
			return pos, err
		}

		value := reflect.New(rv.Type().Elem()).Elem()
		if next, err = unmarshalValue(buf, next, value, depth+1); err != nil {
			return pos, err
		}

		rv.SetMapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()), value)
		i = next
	}
}

func unmarshalStruct(buf []byte, pos int, rv reflect.Value, depth int) (int, error) {
	fields := structFields(rv.Type())
	indexes := make(map[string]int, len(fields))
	for _, field := range fields {
		indexes[field.name] = field.index
	}

	for i := pos + 1; ; {
		if i >= len(buf) {
			return pos, syntaxError(i, ErrInvalidDictionary, "missing the end 'e'")
		} else if buf[i] == 'e' {
			return i + 1, nil
		}

		key, next, err := unmarshalKey(buf, i)
		if err != nil {
			return pos, err
		}

		index, ok := indexes[key]
		if !ok { // Skip the unknown key.
			if next, err = skipValue(buf, next, depth+1); err != nil {
				return pos, err
			}
			i = next
			continue
		}

		if next, err = unmarshalValue(buf, next, rv.Field(index), depth+1); err != nil {
			return pos, err
		}
		i = next
	}
}

// unmarshalNative decodes the value at pos into the native Go value:
// int64 for an integer, string for a string, []interface{} for a list,
// and map[string]interface{} for a dictionary with the last-write-wins
// duplicate keys.
func unmarshalNative(buf []byte, pos, depth int) (interface{}, int, error) {
	if depth > DefaultMaxDepth {
		return nil, pos, syntaxError(pos, ErrDepthExceeded, "deeper than %d", DefaultMaxDepth)
	}
	if pos >= len(buf) {
		return nil, pos, syntaxError(pos, ErrInvalidValue, "unexpected end of the buffer")
	}

	switch c := buf[pos]; {
	case c == 'i':
		v, next, err := tokenDecoder.decodeInteger(buf, pos)
		if err != nil {
			return nil, pos, err
		}
		if i64, fit := v.Int64(); fit {
			return i64, next, nil
		}
		return v.BigInt(), next, nil

	case c >= '0' && c <= '9':
		v, next, err := tokenDecoder.decodeString(buf, pos)
		if err != nil {
			return nil, pos, err
		}
		return string(v.str), next, nil

	case c == 'l':
		elems := make([]interface{}, 0)
		for i := pos + 1; ; {
			if i >= len(buf) {
				return nil, pos, syntaxError(i, ErrInvalidList, "missing the end 'e'")
			} else if buf[i] == 'e' {
				return elems, i + 1, nil
			}

			elem, next, err := unmarshalNative(buf, i, depth+1)
			if err != nil {
				return nil, pos, err
			}
			elems = append(elems, elem)
			i = next
		}

	case c == 'd':
		items := make(map[string]interface{})
		for i := pos + 1; ; {
			if i >= len(buf) {
				return nil, pos, syntaxError(i, ErrInvalidDictionary, "missing the end 'e'")
			} else if buf[i] == 'e' {
				return items, i + 1, nil
			}

			key, next, err := unmarshalKey(buf, i)
			if err != nil {
				return nil, pos, err
			}

			value, next, err := unmarshalNative(buf, next, depth+1)
			if err != nil {
				return nil, pos, err
			}

			items[key] = value
			i = next
		}
	}
	return nil, pos, syntaxError(pos, ErrInvalidValue,
		"no bencode value starts with 0x%02x", buf[pos])
}
