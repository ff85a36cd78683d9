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

// Package chaintypes implements the domain value types of the ABI codec:
// names, symbols, assets, timestamps, checksums and keys. Each type has
// MarshalJSON/UnmarshalJSON and String methods, a package-level Parse<Type>
// function for its textual form where it has one (there is no SetString
// method), plus ToBin/FromBin for the binary side.
package chaintypes

import (
	"encoding/json"
	"fmt"

	"github.com/alacrityio/abiala/pkg/binstream"
)

// nameCharmap is the base-32 alphabet used to pack/unpack Name: '.' is 0,
// then '1'-'5' are 1-5, then 'a'-'z' are 6-31.
const nameCharmap = ".12345abcdefghijklmnopqrstuvwxyz"

// Name is a 64-bit integer packing up to 13 base-32 characters; character k
// (0-indexed from the most significant end) occupies 5 bits, except the 13th
// which occupies only 4 bits.
type Name uint64

func charToNameValue(c byte) (uint64, bool) {
	switch {
	case c == '.':
		return 0, true
	case c >= '1' && c <= '5':
		return uint64(c-'1') + 1, true
	case c >= 'a' && c <= 'z':
		return uint64(c-'a') + 6, true
	default:
		return 0, false
	}
}

// ParseName converts a base-32 string (at most 13 characters) into its
// packed 64-bit form. Characters outside the alphabet fail with
// ErrBadNumber.
func ParseName(s string) (Name, error) {
	if len(s) > 13 {
		return 0, fmt.Errorf("%w: name %q is longer than 13 characters", ErrBadNumber, s)
	}
	var value uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		v, ok := charToNameValue(c)
		if !ok {
			return 0, fmt.Errorf("%w: invalid name character %q", ErrBadNumber, c)
		}
		if i == 12 {
			value |= v & 0x0f
		} else {
			shift := uint(64 - 5*(i+1))
			value |= (v & 0x1f) << shift
		}
	}
	return Name(value), nil
}

// String renders the Name back to its base-32 textual form, trimmed of
// trailing '.'.
func (n Name) String() string {
	v := uint64(n)
	var buf [13]byte
	for i := 0; i < 13; i++ {
		var charIdx uint64
		if i == 12 {
			charIdx = v & 0x0f
		} else {
			shift := uint(64 - 5*(i+1))
			charIdx = (v >> shift) & 0x1f
		}
		buf[i] = nameCharmap[charIdx]
	}
	end := 13
	for end > 0 && buf[end-1] == '.' {
		end--
	}
	return string(buf[:end])
}

func (n Name) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.String())
}

func (n *Name) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseName(s)
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

func (n Name) ToBin(w binstream.Writer) error {
	return binstream.WriteUint64(w, uint64(n))
}

func FromBinName(r *binstream.Reader) (Name, error) {
	v, err := binstream.ReadUint64(r)
	if err != nil {
		return 0, err
	}
	return Name(v), nil
}
