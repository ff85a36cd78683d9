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
	"encoding/binary"
	"fmt"
	"math"
)

// Writer is the common sink for all primitive Write* helpers - satisfied by
// SizeCounter, Vector and FixedBuf.
type Writer interface {
	Write(p []byte) (int, error)
}

// ErrVarintTooLong is returned when a varuint32/varint32 would need a 6th
// continuation byte, or its 5th byte carries bits beyond the low nibble.
var ErrVarintTooLong = fmt.Errorf("varint is not a valid 32-bit value")

// ErrIntegerOverflow signals a JSON number that doesn't fit in the target width.
var ErrIntegerOverflow = fmt.Errorf("integer overflow")

func WriteUint8(w Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return err
}

func ReadUint8(r *Reader) (uint8, error) {
	return r.ReadByte()
}

func WriteUint16(w Writer, v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func ReadUint16(r *Reader) (uint16, error) {
	b, err := r.Read(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func WriteUint32(w Writer, v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func ReadUint32(r *Reader) (uint32, error) {
	b, err := r.Read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func WriteUint64(w Writer, v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func ReadUint64(r *Reader) (uint64, error) {
	b, err := r.Read(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// WriteUint128 writes a 128-bit unsigned integer given as 16 little-endian
// bytes (the representation chaintypes.Uint128 already keeps internally).
func WriteUint128(w Writer, v [16]byte) error {
	_, err := w.Write(v[:])
	return err
}

func ReadUint128(r *Reader) ([16]byte, error) {
	var out [16]byte
	b, err := r.Read(16)
	if err != nil {
		return out, err
	}
	copy(out[:], b)
	return out, nil
}

func WriteBool(w Writer, v bool) error {
	if v {
		return WriteUint8(w, 1)
	}
	return WriteUint8(w, 0)
}

func ReadBool(r *Reader) (bool, error) {
	b, err := ReadUint8(r)
	if err != nil {
		return false, err
	}
	return b != 0, nil
}

func WriteFloat32(w Writer, v float32) error {
	return WriteUint32(w, math.Float32bits(v))
}

func ReadFloat32(r *Reader) (float32, error) {
	b, err := ReadUint32(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(b), nil
}

func WriteFloat64(w Writer, v float64) error {
	return WriteUint64(w, math.Float64bits(v))
}

func ReadFloat64(r *Reader) (float64, error) {
	b, err := ReadUint64(r)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(b), nil
}

// WriteVarUint32 encodes v as unsigned LEB128, 1-5 bytes.
func WriteVarUint32(w Writer, v uint32) error {
	var buf [5]byte
	n := 0
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		buf[n] = b
		n++
		if v == 0 {
			break
		}
	}
	_, err := w.Write(buf[:n])
	return err
}

// ReadVarUint32 decodes unsigned LEB128. It fails with ErrVarintTooLong if a
// 6th continuation byte would be required, or the 5th byte carries bits
// beyond the low nibble (those bits would overflow 32 bits).
func ReadVarUint32(r *Reader) (uint32, error) {
	var result uint32
	var shift uint
	for i := 0; i < 5; i++ {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		if i == 4 && b&0xf0 != 0 {
			return 0, ErrVarintTooLong
		}
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, nil
		}
		shift += 7
	}
	return 0, ErrVarintTooLong
}

// WriteVarInt32 encodes v using zig-zag then unsigned LEB128.
func WriteVarInt32(w Writer, v int32) error {
	zz := uint32((v << 1) ^ (v >> 31))
	return WriteVarUint32(w, zz)
}

func ReadVarInt32(r *Reader) (int32, error) {
	zz, err := ReadVarUint32(r)
	if err != nil {
		return 0, err
	}
	return int32(zz>>1) ^ -int32(zz&1), nil
}

// WriteString writes a varuint32 length prefix followed by the UTF-8 bytes.
func WriteString(w Writer, s string) error {
	if err := WriteVarUint32(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

func ReadString(r *Reader) (string, error) {
	n, err := ReadVarUint32(r)
	if err != nil {
		return "", err
	}
	b, err := r.Read(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteBytes writes a varuint32 length prefix followed by raw bytes (the
// binary form of the ABI's opaque "bytes" primitive).
func WriteBytes(w Writer, b []byte) error {
	if err := WriteVarUint32(w, uint32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func ReadBytes(r *Reader) ([]byte, error) {
	n, err := ReadVarUint32(r)
	if err != nil {
		return nil, err
	}
	return r.Read(int(n))
}

// WriteFixedBytes writes raw bytes with no length prefix - used for checksums,
// names, symbols, keys and other fixed-width domain types.
func WriteFixedBytes(w Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}

func ReadFixedBytes(r *Reader, n int) ([]byte, error) {
	return r.Read(n)
}
