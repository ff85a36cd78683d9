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

package binstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVarUint32RoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 127, 128, 16383, 16384, 0xFFFFFFFF} {
		vec := NewVector(0)
		assert.NoError(t, WriteVarUint32(vec, v))
		r := NewReader(vec.Bytes())
		got, err := ReadVarUint32(r)
		assert.NoError(t, err)
		assert.Equal(t, v, got)
		assert.Equal(t, 0, r.Remaining())
	}
}

func TestVarUint32MaxEncoding(t *testing.T) {
	vec := NewVector(0)
	assert.NoError(t, WriteVarUint32(vec, 0xFFFFFFFF))
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFF, 0xFF, 0x0F}, vec.Bytes())
}

func TestVarUint32RejectsOverflowingFifthByte(t *testing.T) {
	r := NewReader([]byte{0xFF, 0xFF, 0xFF, 0xFF, 0x10})
	_, err := ReadVarUint32(r)
	assert.ErrorIs(t, err, ErrVarintTooLong)
}

func TestVarInt32ZigZagRoundTrip(t *testing.T) {
	for _, v := range []int32{0, 1, -1, 2, -2, 2147483647, -2147483648} {
		vec := NewVector(0)
		assert.NoError(t, WriteVarInt32(vec, v))
		got, err := ReadVarInt32(NewReader(vec.Bytes()))
		assert.NoError(t, err)
		assert.Equal(t, v, got)
	}
}

func TestFixedWidthLittleEndian(t *testing.T) {
	vec := NewVector(0)
	assert.NoError(t, WriteUint64(vec, 5))
	assert.Equal(t, []byte{5, 0, 0, 0, 0, 0, 0, 0}, vec.Bytes())
}

func TestStringRoundTrip(t *testing.T) {
	vec := NewVector(0)
	assert.NoError(t, WriteString(vec, "alaio"))
	got, err := ReadString(NewReader(vec.Bytes()))
	assert.NoError(t, err)
	assert.Equal(t, "alaio", got)
}

func TestReaderEOF(t *testing.T) {
	r := NewReader([]byte{1, 2})
	_, err := r.Read(3)
	assert.ErrorIs(t, err, ErrEOF)
}

func TestFixedBufOverflow(t *testing.T) {
	f := NewFixedBuf(make([]byte, 2))
	assert.NoError(t, WriteUint16(f, 1))
	_, err := f.Write([]byte{1})
	assert.ErrorIs(t, err, ErrBufferOverflow)
}

func TestSizeCounterMatchesVector(t *testing.T) {
	sc := &SizeCounter{}
	vec := NewVector(0)
	assert.NoError(t, WriteString(sc, "hello world"))
	assert.NoError(t, WriteString(vec, "hello world"))
	assert.Equal(t, sc.Size(), len(vec.Bytes()))
}
