// Copyright © 2022 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
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

package abijson

import (
	"encoding/json"
	"strconv"
)

// Writer is the mirror of Lexer for the bin-to-json direction: it appends
// JSON text to a growable buffer, inserting the commas the lexer's Next
// would expect to read back.
type Writer struct {
	buf        []byte
	needsComma []bool
}

func NewWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Bytes() []byte {
	return w.buf
}

func (w *Writer) beforeValue() {
	if n := len(w.needsComma); n > 0 {
		if w.needsComma[n-1] {
			w.buf = append(w.buf, ',')
		}
		w.needsComma[n-1] = true
	}
}

func (w *Writer) StartObject() {
	w.beforeValue()
	w.buf = append(w.buf, '{')
	w.needsComma = append(w.needsComma, false)
}

func (w *Writer) EndObject() {
	w.buf = append(w.buf, '}')
	w.needsComma = w.needsComma[:len(w.needsComma)-1]
}

func (w *Writer) StartArray() {
	w.beforeValue()
	w.buf = append(w.buf, '[')
	w.needsComma = append(w.needsComma, false)
}

func (w *Writer) EndArray() {
	w.buf = append(w.buf, ']')
	w.needsComma = w.needsComma[:len(w.needsComma)-1]
}

// Key writes an object field name. Must be called only directly inside an
// object (after StartObject, or after a sibling value).
func (w *Writer) Key(name string) {
	if n := len(w.needsComma); n > 0 && w.needsComma[n-1] {
		w.buf = append(w.buf, ',')
	}
	w.buf = appendJSONString(w.buf, name)
	w.buf = append(w.buf, ':')
	if n := len(w.needsComma); n > 0 {
		w.needsComma[n-1] = false // the value that follows must not itself add a comma before it
	}
}

func (w *Writer) String(s string) {
	w.beforeValue()
	w.buf = appendJSONString(w.buf, s)
}

// RawNumber writes pre-formatted digits with no quoting (for 32-bit and
// narrower integers and for floats already in their final textual form).
func (w *Writer) RawNumber(s string) {
	w.beforeValue()
	w.buf = append(w.buf, s...)
}

// QuotedNumber writes digits wrapped in quotes (for 64-bit and 128-bit
// integers, which are emitted as strings to survive JSON number-precision
// limits).
func (w *Writer) QuotedNumber(s string) {
	w.beforeValue()
	w.buf = append(w.buf, '"')
	w.buf = append(w.buf, s...)
	w.buf = append(w.buf, '"')
}

func (w *Writer) Bool(b bool) {
	w.beforeValue()
	w.buf = append(w.buf, strconv.FormatBool(b)...)
}

func (w *Writer) Null() {
	w.beforeValue()
	w.buf = append(w.buf, "null"...)
}

func appendJSONString(buf []byte, s string) []byte {
	// json.Marshal on a string never fails and always produces a quoted,
	// escaped JSON string literal.
	quoted, _ := json.Marshal(s)
	return append(buf, quoted...)
}
