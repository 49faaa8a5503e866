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
	"strconv"
)

// DefaultMaxDepth is the maximum nesting depth of the decoded or
// encoded data used when Decoder.MaxDepth or Encoder.MaxDepth is 0.
const DefaultMaxDepth = 4096

// Decoder decodes the bencoded data from a byte buffer into Values.
//
// The zero Decoder is ready to use. A Decoder holds only the immutable
// configuration, so it may be used by multiple goroutines concurrently.
//
// All the granular Decode* methods take the buffer and the offset to
// start parsing at, and return the decoded value and the offset of the
// first unconsumed byte. The decoded String values reference the input
// buffer, so the caller must not modify it afterwards.
type Decoder struct {
	// Encoding, if not empty, is the IANA name of the character
	// encoding, such as "UTF-8" or "ISO-8859-1", used to materialize
	// the decoded strings as text.
	//
	// The default keeps the decoded strings as raw bytes.
	Encoding string

	// MaxDepth is the maximum nesting depth of the decoded data.
	// Deeper data fails with ErrDepthExceeded instead of growing
	// the call stack without bound.
	//
	// The default is DefaultMaxDepth.
	MaxDepth int
}

func (d Decoder) maxDepth() int {
	if d.MaxDepth > 0 {
		return d.MaxDepth
	}
	return DefaultMaxDepth
}

// Decode decodes the whole buffer from the offset 0.
//
// The buffer is treated as the concatenation of one or more top-level
// values: for exactly one value, that value is returned directly; for
// several sibling values, a List value containing all of them in order
// is returned. Use DecodeAll to distinguish a decoded list from the
// several sibling values.
//
// An empty buffer, or a byte matching no bencode construct while bytes
// remain, fails with ErrInvalidValue.
func (d Decoder) Decode(buf []byte) (Value, error) {
	vs, err := d.DecodeAll(buf)
	switch {
	case err != nil:
		return Value{}, err
	case len(vs) == 0:
		return Value{}, syntaxError(0, ErrInvalidValue, "empty input")
	case len(vs) == 1:
		return vs[0], nil
	}
	return NewList(vs...), nil
}

// DecodeAll decodes the whole buffer from the offset 0 and returns
// every top-level value in order.
func (d Decoder) DecodeAll(buf []byte) (vs []Value, err error) {
	for pos := 0; pos < len(buf); {
		v, next, err := d.decodeValue(buf, pos, 1)
		if err != nil {
			return nil, err
		} else if v.kind == Invalid {
			return nil, syntaxError(pos, ErrInvalidValue,
				"no bencode value starts with 0x%02x", buf[pos])
		}

		vs = append(vs, v)
		pos = next
	}
	return
}

// DecodeValue decodes one value of any shape at pos, dispatching on
// the leading marker byte.
//
// A byte matching no construct, or the end of the buffer, is not an
// error at this layer: the zero (Invalid) Value is returned with the
// unchanged offset and a nil error, and the caller decides whether
// that is fatal.
func (d Decoder) DecodeValue(buf []byte, pos int) (Value, int, error) {
	return d.decodeValue(buf, pos, 1)
}

func (d Decoder) decodeValue(buf []byte, pos, depth int) (Value, int, error) {
	if pos >= len(buf) {
		return Value{}, pos, nil
	}

	switch c := buf[pos]; {
	case c == 'i':
		return d.decodeInteger(buf, pos)
	case c >= '0' && c <= '9':
		return d.decodeString(buf, pos)
	case c == 'l':
		return d.decodeList(buf, pos, depth)
	case c == 'd':
		return d.decodeDictionary(buf, pos, depth)
	}
	return Value{}, pos, nil
}

// DecodeInteger decodes an integer at pos, which is of the form
// "i" ["-"] digits "e".
//
// The digit run must be the canonical decimal form: no leading zero
// unless it is exactly "0", and no "-0". Any violation fails with
// ErrInvalidInteger.
func (d Decoder) DecodeInteger(buf []byte, pos int) (Value, int, error) {
	return d.decodeInteger(buf, pos)
}

func (d Decoder) decodeInteger(buf []byte, pos int) (v Value, n int, err error) {
	if pos >= len(buf) || buf[pos] != 'i' {
		err = syntaxError(pos, ErrInvalidInteger, "missing the start 'i'")
		return
	}

	i := pos + 1
	negative := false
	if i < len(buf) && buf[i] == '-' {
		negative = true
		i++
	}

	start := i
	for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
		i++
	}

	switch {
	case i == start:
		err = syntaxError(pos, ErrInvalidInteger, "no digits")
		return
	case i >= len(buf) || buf[i] != 'e':
		err = syntaxError(pos, ErrInvalidInteger, "missing the end 'e'")
		return
	case buf[start] == '0' && negative:
		err = syntaxError(pos, ErrInvalidInteger, "negative zero is not allowed")
		return
	case buf[start] == '0' && i-start > 1:
		err = syntaxError(pos, ErrInvalidInteger, "leading zero is not allowed")
		return
	}

	digits := string(buf[pos+1 : i]) // With the optional sign.
	if value, perr := strconv.ParseInt(digits, 10, 64); perr == nil {
		return NewInteger(value), i + 1, nil
	}

	// The integer exceeds int64, so fall back to the arbitrary precision.
	value, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		err = syntaxError(pos, ErrInvalidInteger, "invalid integer %q", digits)
		return
	}
	return NewBigInteger(value), i + 1, nil
}

// DecodeString decodes a string at pos, which is of the form
// "length:content", where length is the non-negative decimal number
// of the content bytes.
//
// A negative length, or a length exceeding the remaining buffer,
// fails with ErrInvalidString.
func (d Decoder) DecodeString(buf []byte, pos int) (Value, int, error) {
	return d.decodeString(buf, pos)
}

func (d Decoder) decodeString(buf []byte, pos int) (v Value, n int, err error) {
	if pos < len(buf) && buf[pos] == '-' {
		err = syntaxError(pos, ErrInvalidString, "negative string length")
		return
	}

	i := pos
	for i < len(buf) && buf[i] >= '0' && buf[i] <= '9' {
		i++
	}

	switch {
	case i == pos:
		err = syntaxError(pos, ErrInvalidString, "missing the string length")
		return
	case i >= len(buf) || buf[i] != ':':
		err = syntaxError(pos, ErrInvalidString, "missing the colon")
		return
	}

	length, perr := strconv.Atoi(string(buf[pos:i]))
	if perr != nil {
		err = syntaxError(pos, ErrInvalidString, "invalid string length %q", buf[pos:i])
		return
	}

	end := i + 1 + length
	if end > len(buf) || end < 0 {
		err = syntaxError(pos, ErrInvalidString,
			"string length %d exceeds the remaining %d bytes", length, len(buf)-i-1)
		return
	}

	content := buf[i+1 : end]
	if d.Encoding == "" {
		return NewString(content), end, nil
	}

	text, err := decodeCharset(d.Encoding, content)
	if err != nil {
		return v, pos, err
	}
	return NewText(text), end, nil
}

// DecodeList decodes a list at pos, which is of the form "l" value* "e".
//
// A missing terminator, or an element matching no bencode construct,
// fails with ErrInvalidList.
func (d Decoder) DecodeList(buf []byte, pos int) (Value, int, error) {
	return d.decodeList(buf, pos, 1)
}

func (d Decoder) decodeList(buf []byte, pos, depth int) (v Value, n int, err error) {
	if depth > d.maxDepth() {
		err = syntaxError(pos, ErrDepthExceeded, "deeper than %d", d.maxDepth())
		return
	}
	if pos >= len(buf) || buf[pos] != 'l' {
		err = syntaxError(pos, ErrInvalidList, "missing the start 'l'")
		return
	}

	var elems []Value
	for i := pos + 1; ; {
		if i >= len(buf) {
			err = syntaxError(i, ErrInvalidList, "missing the end 'e'")
			return
		} else if buf[i] == 'e' {
			return Value{kind: List, list: elems}, i + 1, nil
		}

		elem, next, eerr := d.decodeValue(buf, i, depth+1)
		if eerr != nil {
			return v, i, eerr
		} else if elem.kind == Invalid {
			err = syntaxError(i, ErrInvalidList, "invalid list element 0x%02x", buf[i])
			return
		}

		elems = append(elems, elem)
		i = next
	}
}

// DecodeDictionary decodes a dictionary at pos, which is of the form
// "d" (key value)* "e".
//
// A key must be an integer or a string, which diverges from the
// canonical bencode allowing only the string keys. The pairs keep
// their order of appearance, and a duplicate key keeps only the last
// value, that's, last-write-wins. A missing terminator, an invalid
// key, or a value matching no bencode construct fails with
// ErrInvalidDictionary.
func (d Decoder) DecodeDictionary(buf []byte, pos int) (Value, int, error) {
	return d.decodeDictionary(buf, pos, 1)
}

func (d Decoder) decodeDictionary(buf []byte, pos, depth int) (v Value, n int, err error) {
	if depth > d.maxDepth() {
		err = syntaxError(pos, ErrDepthExceeded, "deeper than %d", d.maxDepth())
		return
	}
	if pos >= len(buf) || buf[pos] != 'd' {
		err = syntaxError(pos, ErrInvalidDictionary, "missing the start 'd'")
		return
	}

	dict := NewDictionary()
	for i := pos + 1; ; {
		if i >= len(buf) {
			err = syntaxError(i, ErrInvalidDictionary, "missing the end 'e'")
			return
		} else if buf[i] == 'e' {
			return Value{kind: Dict, dict: dict}, i + 1, nil
		}

		var key Value
		var kerr error
		switch c := buf[i]; {
		case c == 'i':
			key, i, kerr = d.decodeInteger(buf, i)
		case c >= '0' && c <= '9':
			key, i, kerr = d.decodeString(buf, i)
		default:
			err = syntaxError(i, ErrInvalidDictionary, "invalid dictionary key 0x%02x", c)
			return
		}
		if kerr != nil {
			return v, i, kerr
		}

		value, next, verr := d.decodeValue(buf, i, depth+1)
		if verr != nil {
			return v, i, verr
		} else if value.kind == Invalid {
			err = syntaxError(i, ErrInvalidDictionary,
				"invalid value of the dictionary key %s", key)
			return
		}

		dict.Set(key, value)
		i = next
	}
}
