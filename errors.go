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
	"fmt"
)

// The errors reported by the decoder and the encoder, one per syntactic
// construct, which may be inspected with errors.Is.
var (
	// ErrInvalidInteger is reported when parsing a malformed integer.
	ErrInvalidInteger = errors.New("bencode: invalid integer")

	// ErrInvalidString is reported when parsing a malformed string.
	ErrInvalidString = errors.New("bencode: invalid string")

	// ErrInvalidList is reported when parsing a malformed list.
	ErrInvalidList = errors.New("bencode: invalid list")

	// ErrInvalidDictionary is reported when parsing a malformed dictionary.
	ErrInvalidDictionary = errors.New("bencode: invalid dictionary")

	// ErrInvalidValue is reported by the top-level decode entry when
	// no bencode construct matches while bytes remain.
	ErrInvalidValue = errors.New("bencode: invalid value")

	// ErrDepthExceeded is reported when the nesting depth of the data
	// exceeds the configured maximum.
	ErrDepthExceeded = errors.New("bencode: max nesting depth exceeded")

	// ErrUnsupportedType is reported by the encoder for a value that
	// matches none of the four bencode shapes.
	ErrUnsupportedType = errors.New("bencode: unsupported type")

	// ErrStringEncoding is reported when a string cannot be transcoded
	// by the configured character encoding.
	ErrStringEncoding = errors.New("bencode: string encoding failure")
)

// SyntaxError describes a violation of the bencode grammar, carrying
// the byte offset at which it was detected.
//
// Err is one of the Err* sentinels above, so the kind of the violated
// construct may be checked with errors.Is.
type SyntaxError struct {
	Offset int
	Err    error
	msg    string
}

func (e *SyntaxError) Error() string {
	if e.msg == "" {
		return fmt.Sprintf("%s at offset %d", e.Err.Error(), e.Offset)
	}
	return fmt.Sprintf("%s at offset %d: %s", e.Err.Error(), e.Offset, e.msg)
}

// Unwrap returns the sentinel error of the violated construct.
func (e *SyntaxError) Unwrap() error { return e.Err }

func syntaxError(offset int, sentinel error, format string, args ...interface{}) error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &SyntaxError{Offset: offset, Err: sentinel, msg: msg}
}
