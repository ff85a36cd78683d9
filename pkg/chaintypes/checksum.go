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
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/alacrityio/abiala/pkg/binstream"
)

// Checksum160 is a fixed 20-byte hash value, JSON-encoded as lowercase hex.
type Checksum160 [20]byte

// Checksum256 is a fixed 32-byte hash value, JSON-encoded as lowercase hex.
type Checksum256 [32]byte

// Checksum512 is a fixed 64-byte hash value, JSON-encoded as lowercase hex.
type Checksum512 [64]byte

func (c Checksum160) String() string { return hex.EncodeToString(c[:]) }
func (c Checksum256) String() string { return hex.EncodeToString(c[:]) }
func (c Checksum512) String() string { return hex.EncodeToString(c[:]) }

func (c Checksum160) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }
func (c Checksum256) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }
func (c Checksum512) MarshalJSON() ([]byte, error) { return json.Marshal(c.String()) }

func (c *Checksum160) UnmarshalJSON(b []byte) error {
	raw, err := unmarshalFixedHex(b, len(c))
	if err != nil {
		return err
	}
	copy(c[:], raw)
	return nil
}

func (c *Checksum256) UnmarshalJSON(b []byte) error {
	raw, err := unmarshalFixedHex(b, len(c))
	if err != nil {
		return err
	}
	copy(c[:], raw)
	return nil
}

func (c *Checksum512) UnmarshalJSON(b []byte) error {
	raw, err := unmarshalFixedHex(b, len(c))
	if err != nil {
		return err
	}
	copy(c[:], raw)
	return nil
}

func unmarshalFixedHex(b []byte, width int) ([]byte, error) {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadHex, err)
	}
	if len(raw) != width {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrBadHex, width, len(raw))
	}
	return raw, nil
}

func (c Checksum160) ToBin(w binstream.Writer) error { return binstream.WriteFixedBytes(w, c[:]) }
func (c Checksum256) ToBin(w binstream.Writer) error { return binstream.WriteFixedBytes(w, c[:]) }
func (c Checksum512) ToBin(w binstream.Writer) error { return binstream.WriteFixedBytes(w, c[:]) }

func FromBinChecksum160(r *binstream.Reader) (Checksum160, error) {
	var out Checksum160
	raw, err := binstream.ReadFixedBytes(r, len(out))
	if err != nil {
		return out, err
	}
	copy(out[:], raw)
	return out, nil
}

func FromBinChecksum256(r *binstream.Reader) (Checksum256, error) {
	var out Checksum256
	raw, err := binstream.ReadFixedBytes(r, len(out))
	if err != nil {
		return out, err
	}
	copy(out[:], raw)
	return out, nil
}

func FromBinChecksum512(r *binstream.Reader) (Checksum512, error) {
	var out Checksum512
	raw, err := binstream.ReadFixedBytes(r, len(out))
	if err != nil {
		return out, err
	}
	copy(out[:], raw)
	return out, nil
}

// Float128 is an opaque 16-byte IEEE-754 quad precision value. No arithmetic
// is performed on it; it is carried as a raw blob and JSON-encoded as
// lowercase hex, matching the treatment of an opaque binary blob in the ABI
// codec's primitive set.
type Float128 [16]byte

func (f Float128) String() string                  { return hex.EncodeToString(f[:]) }
func (f Float128) MarshalJSON() ([]byte, error)    { return json.Marshal(f.String()) }
func (f Float128) ToBin(w binstream.Writer) error  { return binstream.WriteFixedBytes(w, f[:]) }

func (f *Float128) UnmarshalJSON(b []byte) error {
	raw, err := unmarshalFixedHex(b, len(f))
	if err != nil {
		return err
	}
	copy(f[:], raw)
	return nil
}

func FromBinFloat128(r *binstream.Reader) (Float128, error) {
	var out Float128
	raw, err := binstream.ReadFixedBytes(r, len(out))
	if err != nil {
		return out, err
	}
	copy(out[:], raw)
	return out, nil
}
