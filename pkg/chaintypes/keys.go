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
	"fmt"
	"strings"

	"github.com/alacrityio/abiala/pkg/binstream"
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // legacy hash, required by the textual key checksum format
)

// KeyType tags which curve/authenticator a key or signature payload belongs
// to. Only the textual/binary encoding of keys is in scope here - no
// signing or verification is performed (see spec Non-goals).
type KeyType uint32

const (
	KeyTypeK1 KeyType = iota
	KeyTypeR1
	KeyTypeWA
)

func (t KeyType) tag() string {
	switch t {
	case KeyTypeK1:
		return "K1"
	case KeyTypeR1:
		return "R1"
	case KeyTypeWA:
		return "WA"
	default:
		return "??"
	}
}

func keyTypeFromTag(tag string) (KeyType, error) {
	switch tag {
	case "K1":
		return KeyTypeK1, nil
	case "R1":
		return KeyTypeR1, nil
	case "WA":
		return KeyTypeWA, nil
	default:
		return 0, fmt.Errorf("%w: unknown key tag %q", ErrBadBase58, tag)
	}
}

// checksumRipemd160 computes the first 4 bytes of ripemd160(payload ++ suffix),
// matching the "PUB_<TAG>_..." and legacy "ALA..." textual key checksums.
func checksumRipemd160(payload []byte, suffix string) []byte {
	h := ripemd160.New()
	h.Write(payload)
	if suffix != "" {
		h.Write([]byte(suffix))
	}
	sum := h.Sum(nil)
	return sum[:4]
}

func encodeTaggedKey(prefix string, t KeyType, payload []byte) string {
	checksum := checksumRipemd160(payload, t.tag())
	buf := append(append([]byte{}, payload...), checksum...)
	return prefix + "_" + t.tag() + "_" + base58.Encode(buf)
}

func decodeTaggedKey(s, prefix string, payloadLen int) (KeyType, []byte, error) {
	rest := strings.TrimPrefix(s, prefix+"_")
	if rest == s {
		return 0, nil, fmt.Errorf("%w: %q is missing the %q prefix", ErrBadBase58, s, prefix)
	}
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 {
		return 0, nil, fmt.Errorf("%w: %q is missing a key-type tag", ErrBadBase58, s)
	}
	t, err := keyTypeFromTag(parts[0])
	if err != nil {
		return 0, nil, err
	}
	raw, err := base58.Decode(parts[1])
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s", ErrBadBase58, err)
	}
	if len(raw) != payloadLen+4 {
		return 0, nil, fmt.Errorf("%w: %q has the wrong payload length", ErrBadChecksum, s)
	}
	payload, checksum := raw[:payloadLen], raw[payloadLen:]
	want := checksumRipemd160(payload, t.tag())
	if string(checksum) != string(want) {
		return 0, nil, fmt.Errorf("%w: checksum mismatch in %q", ErrBadChecksum, s)
	}
	return t, payload, nil
}

// legacy ALA-prefixed k1 public keys checksum the raw payload alone (no tag
// suffix, no "K1_" component).
const legacyPrefix = "ALA"

func encodeLegacyK1(payload []byte) string {
	checksum := checksumRipemd160(payload, "")
	buf := append(append([]byte{}, payload...), checksum...)
	return legacyPrefix + base58.Encode(buf)
}

func decodeLegacyK1(s string, payloadLen int) ([]byte, error) {
	raw, err := base58.Decode(strings.TrimPrefix(s, legacyPrefix))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrBadBase58, err)
	}
	if len(raw) != payloadLen+4 {
		return nil, fmt.Errorf("%w: %q has the wrong payload length", ErrBadChecksum, s)
	}
	payload, checksum := raw[:payloadLen], raw[payloadLen:]
	want := checksumRipemd160(payload, "")
	if string(checksum) != string(want) {
		return nil, fmt.Errorf("%w: checksum mismatch in %q", ErrBadChecksum, s)
	}
	return payload, nil
}

// PublicKey is a tagged {k1, r1, wa} payload. k1/r1 payloads are the 33-byte
// compressed curve point; wa (WebAuthn) payloads are variable-length and
// carried opaquely.
type PublicKey struct {
	Type     KeyType
	Data     []byte
	isLegacy bool
}

const compressedKeyLen = 33

// ParsePublicKey parses either the "PUB_<TAG>_..." form or (for k1 only)
// the legacy "ALA..." form.
func ParsePublicKey(s string) (PublicKey, error) {
	if strings.HasPrefix(s, legacyPrefix) {
		payload, err := decodeLegacyK1(s, compressedKeyLen)
		if err != nil {
			return PublicKey{}, err
		}
		if _, err := btcec.ParsePubKey(payload); err != nil {
			return PublicKey{}, fmt.Errorf("%w: %s", ErrBadChecksum, err)
		}
		return PublicKey{Type: KeyTypeK1, Data: payload, isLegacy: true}, nil
	}
	t, payload, err := decodeTaggedKey(s, "PUB", compressedKeyLen)
	if err != nil {
		// WebAuthn payloads are variable length - retry without a fixed length
		// assumption only when the tag itself is well formed.
		if t2, payload2, err2 := decodeVariableTaggedKey(s, "PUB"); err2 == nil && t2 == KeyTypeWA {
			return PublicKey{Type: t2, Data: payload2}, nil
		}
		return PublicKey{}, err
	}
	if t == KeyTypeK1 {
		if _, err := btcec.ParsePubKey(payload); err != nil {
			return PublicKey{}, fmt.Errorf("%w: %s", ErrBadChecksum, err)
		}
	}
	return PublicKey{Type: t, Data: payload}, nil
}

func decodeVariableTaggedKey(s, prefix string) (KeyType, []byte, error) {
	rest := strings.TrimPrefix(s, prefix+"_")
	if rest == s {
		return 0, nil, fmt.Errorf("%w: %q is missing the %q prefix", ErrBadBase58, s, prefix)
	}
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 {
		return 0, nil, fmt.Errorf("%w: %q is missing a key-type tag", ErrBadBase58, s)
	}
	t, err := keyTypeFromTag(parts[0])
	if err != nil {
		return 0, nil, err
	}
	raw, err := base58.Decode(parts[1])
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s", ErrBadBase58, err)
	}
	if len(raw) < 4 {
		return 0, nil, fmt.Errorf("%w: %q is too short to carry a checksum", ErrBadChecksum, s)
	}
	payload, checksum := raw[:len(raw)-4], raw[len(raw)-4:]
	want := checksumRipemd160(payload, t.tag())
	if string(checksum) != string(want) {
		return 0, nil, fmt.Errorf("%w: checksum mismatch in %q", ErrBadChecksum, s)
	}
	return t, payload, nil
}

func (k PublicKey) String() string {
	if k.isLegacy {
		return encodeLegacyK1(k.Data)
	}
	return encodeTaggedKey("PUB", k.Type, k.Data)
}

func (k PublicKey) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

func (k *PublicKey) UnmarshalJSON(b []byte) error {
	var s string
	if err := jsonUnmarshalString(b, &s); err != nil {
		return err
	}
	parsed, err := ParsePublicKey(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k PublicKey) ToBin(w binstream.Writer) error {
	if err := binstream.WriteVarUint32(w, uint32(k.Type)); err != nil {
		return err
	}
	if k.Type == KeyTypeWA {
		return binstream.WriteBytes(w, k.Data)
	}
	return binstream.WriteFixedBytes(w, k.Data)
}

func FromBinPublicKey(r *binstream.Reader) (PublicKey, error) {
	tag, err := binstream.ReadVarUint32(r)
	if err != nil {
		return PublicKey{}, err
	}
	t := KeyType(tag)
	if t == KeyTypeWA {
		data, err := binstream.ReadBytes(r)
		if err != nil {
			return PublicKey{}, err
		}
		return PublicKey{Type: t, Data: data}, nil
	}
	data, err := binstream.ReadFixedBytes(r, compressedKeyLen)
	if err != nil {
		return PublicKey{}, err
	}
	return PublicKey{Type: t, Data: data}, nil
}

// PrivateKey is a tagged {k1, r1} 32-byte secret. wa has no private key form.
type PrivateKey struct {
	Type KeyType
	Data []byte
}

const privateKeyLen = 32

func ParsePrivateKey(s string) (PrivateKey, error) {
	t, payload, err := decodeTaggedKey(s, "PVT", privateKeyLen)
	if err != nil {
		return PrivateKey{}, err
	}
	if t == KeyTypeWA {
		return PrivateKey{}, fmt.Errorf("%w: webauthn keys have no private-key form", ErrBadBase58)
	}
	return PrivateKey{Type: t, Data: payload}, nil
}

func (k PrivateKey) String() string {
	return encodeTaggedKey("PVT", k.Type, k.Data)
}

func (k PrivateKey) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

func (k *PrivateKey) UnmarshalJSON(b []byte) error {
	var s string
	if err := jsonUnmarshalString(b, &s); err != nil {
		return err
	}
	parsed, err := ParsePrivateKey(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k PrivateKey) ToBin(w binstream.Writer) error {
	if err := binstream.WriteVarUint32(w, uint32(k.Type)); err != nil {
		return err
	}
	return binstream.WriteFixedBytes(w, k.Data)
}

func FromBinPrivateKey(r *binstream.Reader) (PrivateKey, error) {
	tag, err := binstream.ReadVarUint32(r)
	if err != nil {
		return PrivateKey{}, err
	}
	data, err := binstream.ReadFixedBytes(r, privateKeyLen)
	if err != nil {
		return PrivateKey{}, err
	}
	return PrivateKey{Type: KeyType(tag), Data: data}, nil
}

// Signature is a tagged {k1, r1, wa} signature payload. k1/r1 payloads are
// the 65-byte recoverable signature; wa payloads are variable length.
type Signature struct {
	Type KeyType
	Data []byte
}

const fixedSignatureLen = 65

func ParseSignature(s string) (Signature, error) {
	t, payload, err := decodeVariableTaggedKey(s, "SIG")
	if err != nil {
		return Signature{}, err
	}
	return Signature{Type: t, Data: payload}, nil
}

func (k Signature) String() string {
	return encodeTaggedKey("SIG", k.Type, k.Data)
}

func (k Signature) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

func (k *Signature) UnmarshalJSON(b []byte) error {
	var s string
	if err := jsonUnmarshalString(b, &s); err != nil {
		return err
	}
	parsed, err := ParseSignature(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func (k Signature) ToBin(w binstream.Writer) error {
	if err := binstream.WriteVarUint32(w, uint32(k.Type)); err != nil {
		return err
	}
	if k.Type == KeyTypeWA {
		return binstream.WriteBytes(w, k.Data)
	}
	return binstream.WriteFixedBytes(w, k.Data)
}

func FromBinSignature(r *binstream.Reader) (Signature, error) {
	tag, err := binstream.ReadVarUint32(r)
	if err != nil {
		return Signature{}, err
	}
	t := KeyType(tag)
	if t == KeyTypeWA {
		data, err := binstream.ReadBytes(r)
		if err != nil {
			return Signature{}, err
		}
		return Signature{Type: t, Data: data}, nil
	}
	data, err := binstream.ReadFixedBytes(r, fixedSignatureLen)
	if err != nil {
		return Signature{}, err
	}
	return Signature{Type: t, Data: data}, nil
}
