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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWideIntUnsignedRoundTrip(t *testing.T) {
	for _, s := range []string{"0", "1", "340282366920938463463374607431768211455" /* max uint128 */} {
		le, err := ParseWideInt(s, false)
		assert.NoError(t, err, s)
		assert.Equal(t, s, FormatWideInt(le, false), "round trip of %q", s)
	}
}

func TestParseWideIntSignedRoundTrip(t *testing.T) {
	for _, s := range []string{
		"0", "1", "-1",
		"170141183460469231731687303715884105727",  // max int128
		"-170141183460469231731687303715884105728", // min int128
	} {
		le, err := ParseWideInt(s, true)
		assert.NoError(t, err, s)
		assert.Equal(t, s, FormatWideInt(le, true), "round trip of %q", s)
	}
}

func TestParseWideIntRejectsNegativeUnsigned(t *testing.T) {
	_, err := ParseWideInt("-1", false)
	assert.ErrorIs(t, err, ErrIntegerOverflow)
}

func TestParseWideIntRejectsGarbage(t *testing.T) {
	_, err := ParseWideInt("not-a-number", false)
	assert.ErrorIs(t, err, ErrBadNumber)
}

func TestParseWideIntLittleEndianByteOrder(t *testing.T) {
	le, err := ParseWideInt("1", false)
	assert.NoError(t, err)
	assert.Equal(t, byte(1), le[0])
	for _, b := range le[1:] {
		assert.Equal(t, byte(0), b)
	}
}
