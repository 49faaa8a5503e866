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
	"reflect"
	"sort"
	"strconv"
	"strings"
)

var bigIntType = reflect.TypeOf(big.Int{})

// EncodeBytes encodes the Go value v to the bencoded bytes by the
// reflection, which supports the signed and unsigned integers, bool
// as i1e or i0e, string and []byte, the slices and arrays as lists,
// the maps with string keys and the structs as dictionaries, and the
// types implementing the interface Marshaler, such as RawMessage.
//
// A struct field is named by the "bencode" tag, or its field name
// without the tag. The tag "-" skips the field, and the option
// "omitempty" skips the field of a zero value. Since the Go maps and
// structs carry no insertion order, the dictionary keys are always
// emitted in the ascending order, so the output is canonical.
func EncodeBytes(v interface{}) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := marshalValue(buf, reflect.ValueOf(v), 1); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeString is the same as EncodeBytes, but returns the bencoded
// data as string.
func EncodeString(v interface{}) (string, error) {
	b, err := EncodeBytes(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func marshalValue(buf *bytes.Buffer, rv reflect.Value, depth int) error {
	if depth > DefaultMaxDepth {
		return fmt.Errorf("%w: deeper than %d", ErrDepthExceeded, DefaultMaxDepth)
	}
	if !rv.IsValid() {
		return fmt.Errorf("%w: cannot encode nil", ErrUnsupportedType)
	}

	if m, ok := marshalerOf(rv); ok {
		b, err := m.MarshalBencode()
		if err == nil {
			buf.Write(b)
		}
		return err
	}

	if rv.Type() == bigIntType {
		i := rv.Interface().(big.Int)
		buf.WriteByte('i')
		buf.WriteString(i.String())
		buf.WriteByte('e')
		return nil
	}

	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			buf.WriteString("i1e")
		} else {
			buf.WriteString("i0e")
		}

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		buf.WriteByte('i')
		buf.WriteString(strconv.FormatInt(rv.Int(), 10))
		buf.WriteByte('e')

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		buf.WriteByte('i')
		buf.WriteString(strconv.FormatUint(rv.Uint(), 10))
		buf.WriteByte('e')

	case reflect.String:
		marshalString(buf, rv.String())

	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			marshalString(buf, byteString(rv))
			return nil
		}

		buf.WriteByte('l')
		for i, _len := 0, rv.Len(); i < _len; i++ {
			if err := marshalValue(buf, rv.Index(i), depth+1); err != nil {
				return err
			}
		}
		buf.WriteByte('e')

	case reflect.Map:
		return marshalMap(buf, rv, depth)

	case reflect.Struct:
		return marshalStruct(buf, rv, depth)

	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return fmt.Errorf("%w: cannot encode nil", ErrUnsupportedType)
		}
		return marshalValue(buf, rv.Elem(), depth)

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, rv.Type())
	}

	return nil
}

func marshalerOf(rv reflect.Value) (Marshaler, bool) {
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		return nil, false
	}
	if m, ok := rv.Interface().(Marshaler); ok {
		return m, true
	}
	if rv.CanAddr() {
		if m, ok := rv.Addr().Interface().(Marshaler); ok {
			return m, true
		}
	}
	return nil, false
}

func marshalString(buf *bytes.Buffer, s string) {
	buf.WriteString(strconv.Itoa(len(s)))
	buf.WriteByte(':')
	buf.WriteString(s)
}

func byteString(rv reflect.Value) string {
	if rv.Kind() == reflect.Slice {
		return string(rv.Bytes())
	}

	bs := make([]byte, rv.Len())
	for i := range bs {
		bs[i] = byte(rv.Index(i).Uint())
	}
	return string(bs)
}

func marshalMap(buf *bytes.Buffer, rv reflect.Value, depth int) error {
	if rv.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("%w: the map key of %s is not a string",
			ErrUnsupportedType, rv.Type())
	}

	keys := make([]string, 0, rv.Len())
	for _, key := range rv.MapKeys() {
		keys = append(keys, key.String())
	}
	sort.Strings(keys)

	buf.WriteByte('d')
	for _, key := range keys {
		marshalString(buf, key)
		value := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if err := marshalValue(buf, value, depth+1); err != nil {
			return err
		}
	}
	buf.WriteByte('e')
	return nil
}

type structField struct {
	name      string
	index     int
	omitempty bool
}

func structFields(rt reflect.Type) (fields []structField) {
	fields = make([]structField, 0, rt.NumField())
	for i, _len := 0, rt.NumField(); i < _len; i++ {
		field := rt.Field(i)
		if field.PkgPath != "" { // unexported
			continue
		}

		name, omitempty := field.Name, false
		if tag := field.Tag.Get("bencode"); tag != "" {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" {
				continue
			} else if parts[0] != "" {
				name = parts[0]
			}
			for _, opt := range parts[1:] {
				if opt == "omitempty" {
					omitempty = true
				}
			}
		}

		fields = append(fields, structField{name: name, index: i, omitempty: omitempty})
	}

	sort.Slice(fields, func(i, j int) bool { return fields[i].name < fields[j].name })
	return
}

func marshalStruct(buf *bytes.Buffer, rv reflect.Value, depth int) error {
	buf.WriteByte('d')
	for _, field := range structFields(rv.Type()) {
		value := rv.Field(field.index)
		if field.omitempty && isEmptyValue(value) {
			continue
		}

		marshalString(buf, field.name)
		if err := marshalValue(buf, value, depth+1); err != nil {
			return err
		}
	}
	buf.WriteByte('e')
	return nil
}

func isEmptyValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
