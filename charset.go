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
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// lookupCharset resolves the IANA name of a character encoding,
// such as "UTF-8" or "ISO-8859-1".
func lookupCharset(name string) (encoding.Encoding, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: unsupported character encoding %q",
			ErrStringEncoding, name)
	}
	return enc, nil
}

// decodeCharset converts the bytes b of the named character encoding
// to a UTF-8 string.
func decodeCharset(name string, b []byte) (string, error) {
	enc, err := lookupCharset(name)
	if err != nil {
		return "", err
	}

	// The UTF-8 transformer replaces the invalid bytes instead of
	// failing, so validate them explicitly.
	if enc == unicode.UTF8 {
		if !utf8.Valid(b) {
			return "", fmt.Errorf("%w: invalid UTF-8 bytes", ErrStringEncoding)
		}
		return string(b), nil
	}

	s, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrStringEncoding, err)
	}
	return string(s), nil
}

// encodeCharset converts the UTF-8 string s to the bytes of the named
// character encoding. The empty name keeps s as its UTF-8 bytes.
func encodeCharset(name string, s string) ([]byte, error) {
	if name == "" {
		return []byte(s), nil
	}

	enc, err := lookupCharset(name)
	if err != nil {
		return nil, err
	}
	if enc == unicode.UTF8 {
		return []byte(s), nil
	}

	b, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStringEncoding, err)
	}
	return b, nil
}
