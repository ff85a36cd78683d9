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

package chaintypes

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/alacrityio/abiala/pkg/binstream"
)

// SymbolCode is a 64-bit value whose bytes are ASCII uppercase letters
// (A-Z) terminated by the first zero byte.
type SymbolCode uint64

// ParseSymbolCode packs up to 7 uppercase ASCII letters into a SymbolCode.
func ParseSymbolCode(s string) (SymbolCode, error) {
	if len(s) > 7 {
		return 0, badNumberf("symbol code %q is longer than 7 characters", s)
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			return 0, badNumberf("symbol code %q has non-uppercase character %q", s, c)
		}
		v |= uint64(c) << (8 * i)
	}
	return SymbolCode(v), nil
}

func (sc SymbolCode) String() string {
	v := uint64(sc)
	var b strings.Builder
	for i := 0; i < 7; i++ {
		c := byte(v >> (8 * i))
		if c == 0 {
			break
		}
		b.WriteByte(c)
	}
	return b.String()
}

func (sc SymbolCode) MarshalJSON() ([]byte, error) {
	return json.Marshal(sc.String())
}

func (sc *SymbolCode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseSymbolCode(s)
	if err != nil {
		return err
	}
	*sc = parsed
	return nil
}

func (sc SymbolCode) ToBin(w binstream.Writer) error {
	return binstream.WriteUint64(w, uint64(sc))
}

func FromBinSymbolCode(r *binstream.Reader) (SymbolCode, error) {
	v, err := binstream.ReadUint64(r)
	if err != nil {
		return 0, err
	}
	return SymbolCode(v), nil
}

// Symbol packs a decimal precision (0-18, the low byte) and a 7-byte
// SymbolCode (the upper 7 bytes) into 64 bits. Textual form is
// "<precision>,<CODE>".
type Symbol uint64

// ParseSymbol parses the "<precision>,<CODE>" textual form.
func ParseSymbol(s string) (Symbol, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, badNumberf("symbol %q is not of the form precision,CODE", s)
	}
	precision, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil || precision > 18 {
		return 0, badNumberf("symbol %q has invalid precision", s)
	}
	code, err := ParseSymbolCode(parts[1])
	if err != nil {
		return 0, err
	}
	return Symbol(precision) | Symbol(uint64(code)<<8), nil
}

func (s Symbol) Precision() uint8 {
	return uint8(s & 0xff)
}

func (s Symbol) Code() SymbolCode {
	return SymbolCode(uint64(s) >> 8)
}

func (s Symbol) String() string {
	return strconv.Itoa(int(s.Precision())) + "," + s.Code().String()
}

func (s Symbol) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Symbol) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	parsed, err := ParseSymbol(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s Symbol) ToBin(w binstream.Writer) error {
	return binstream.WriteUint64(w, uint64(s))
}

func FromBinSymbol(r *binstream.Reader) (Symbol, error) {
	v, err := binstream.ReadUint64(r)
	if err != nil {
		return 0, err
	}
	return Symbol(v), nil
}
