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

// Package bencode implements encoding and decoding of bencoded objects.
//
// The package exposes two surfaces. The low-level surface is a typed
// Value model with the offset-based Decoder and Encoder, which give
// the caller full control over the byte buffer, for example to decode
// one bencoded construct embedded in a larger protocol message. The
// high-level surface is a reflection-based API similar to the
// encoding/json package, with EncodeBytes and DecodeBytes converting
// between bencoded data and Go values by the "bencode" struct tag.
//
// Both surfaces operate on in-memory byte buffers only. The package
// does no file or network I/O.
package bencode
