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

import "errors"

// Marshaler is the interface implemented by the types that can encode
// themselves to the bencoded bytes.
type Marshaler interface {
	MarshalBencode() ([]byte, error)
}

// Unmarshaler is the interface implemented by the types that can decode
// themselves from the bencoded bytes, which are the exact span of one
// bencode value.
type Unmarshaler interface {
	UnmarshalBencode([]byte) error
}

// RawMessage is a raw bencoded value, which is copied verbatim when
// encoding and decoding, so it may be used to delay the decoding of
// a part of the document or to keep its exact bytes, for example to
// hash the "info" dictionary of a torrent file.
type RawMessage []byte

var (
	_ Marshaler   = RawMessage(nil)
	_ Unmarshaler = new(RawMessage)
)

// MarshalBencode implements the interface Marshaler.
func (m RawMessage) MarshalBencode() ([]byte, error) {
	if len(m) == 0 {
		return nil, errors.New("bencode: empty RawMessage")
	}
	return m, nil
}

// UnmarshalBencode implements the interface Unmarshaler.
func (m *RawMessage) UnmarshalBencode(b []byte) error {
	*m = append((*m)[:0], b...)
	return nil
}
