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

import "math/big"

// int128/uint128 are carried through the codec as a 16-byte little-endian
// array (the same shape binstream.WriteUint128/ReadUint128 move over the
// wire), with textual JSON conversion done via big.Int two's-complement
// arithmetic - the same trick the Solidity-ABI codec this module started
// from uses at 256-bit width.
var (
	singleBit128          = big.NewInt(1)
	oneMoreThanMaxUint128 = new(big.Int).Lsh(singleBit128, 128)
	fullBits128           = new(big.Int).Sub(oneMoreThanMaxUint128, big.NewInt(1))
	oneThen127Zeros       = new(big.Int).Lsh(singleBit128, 127)
)

// ParseWideInt parses a base-10 textual integer into its 16-byte
// little-endian wire representation. When signed is true, negative values are
// accepted and stored two's-complement. Values outside the int128 (signed) or
// uint128 (unsigned) range fail with ErrIntegerOverflow.
func ParseWideInt(text string, signed bool) ([16]byte, error) {
	i, ok := new(big.Int).SetString(text, 10)
	if !ok {
		return [16]byte{}, badNumberf("%s", text)
	}
	if signed {
		if i.Cmp(oneThen127Zeros) >= 0 || i.Cmp(new(big.Int).Neg(oneThen127Zeros)) < 0 {
			return [16]byte{}, ErrIntegerOverflow
		}
	} else if i.Sign() < 0 || i.Cmp(fullBits128) > 0 {
		return [16]byte{}, ErrIntegerOverflow
	}
	tc := new(big.Int).And(i, fullBits128)
	be := make([]byte, 16)
	tc.FillBytes(be)
	var out [16]byte
	for i, b := range be {
		out[15-i] = b
	}
	return out, nil
}

// FormatWideInt renders a 16-byte little-endian wire value as base-10 text.
// When signed is true, values with the top bit set are rendered negative.
func FormatWideInt(le [16]byte, signed bool) string {
	be := make([]byte, 16)
	for i, b := range le {
		be[15-i] = b
	}
	i := new(big.Int).SetBytes(be)
	if signed && i.Cmp(oneThen127Zeros) >= 0 {
		i.Sub(i, oneMoreThanMaxUint128)
	}
	return i.String()
}
