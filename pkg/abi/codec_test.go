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

package abi

import (
	"context"
	"encoding/hex"
	"testing"

	"github.com/alacrityio/abiala/internal/abiconfig"
	"github.com/alacrityio/abiala/pkg/binstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonToBinHex(t *testing.T, abi *ResolvedABI, typeName, jsonInput, mode string) string {
	t.Helper()
	buf := []byte(jsonInput)
	v := binstream.NewVector(len(buf))
	err := JSONToBin(context.Background(), abi, typeName, buf, v, mode)
	require.NoError(t, err)
	return hex.EncodeToString(v.Bytes())
}

func binHexToJSON(t *testing.T, abi *ResolvedABI, typeName, binHex string) string {
	t.Helper()
	raw, err := hex.DecodeString(binHex)
	require.NoError(t, err)
	r := binstream.NewReader(raw)
	out, err := BinToJSON(context.Background(), abi, typeName, r)
	require.NoError(t, err)
	return string(out)
}

func TestCodecBoolStructRoundTrip(t *testing.T) {
	abi := mustResolve(t, &Def{
		Version: "alaio::abi/1.0",
		Structs: []StructDef{{Name: "holder", Fields: []FieldDef{{Name: "v", Type: "bool"}}}},
	})
	binHex := jsonToBinHex(t, abi, "holder", `{"v":true}`, abiconfig.DecodeModeStrict)
	assert.Equal(t, "01", binHex)
	assert.JSONEq(t, `{"v":true}`, binHexToJSON(t, abi, "holder", binHex))
}

func TestCodecArrayRoundTrip(t *testing.T) {
	abi := mustResolve(t, &Def{
		Version: "alaio::abi/1.0",
		Structs: []StructDef{{Name: "s", Fields: []FieldDef{{Name: "v", Type: "int32[]"}}}},
	})
	binHex := jsonToBinHex(t, abi, "s", `{"v":[1,2,3]}`, abiconfig.DecodeModeStrict)
	assert.JSONEq(t, `{"v":[1,2,3]}`, binHexToJSON(t, abi, "s", binHex))
}

func TestCodecOptionalPresentAndAbsent(t *testing.T) {
	abi := mustResolve(t, &Def{
		Version: "alaio::abi/1.0",
		Structs: []StructDef{{Name: "s", Fields: []FieldDef{{Name: "v", Type: "int32?"}}}},
	})
	present := jsonToBinHex(t, abi, "s", `{"v":42}`, abiconfig.DecodeModeStrict)
	assert.JSONEq(t, `{"v":42}`, binHexToJSON(t, abi, "s", present))

	absent := jsonToBinHex(t, abi, "s", `{"v":null}`, abiconfig.DecodeModeStrict)
	assert.Equal(t, "00", absent)
	assert.JSONEq(t, `{"v":null}`, binHexToJSON(t, abi, "s", absent))
}

func TestCodecVariantRoundTrip(t *testing.T) {
	abi := mustResolve(t, &Def{
		Version:  "alaio::abi/1.0",
		Variants: []VariantDef{{Name: "either", Types: []string{"int32", "bool"}}},
	})
	binHex := jsonToBinHex(t, abi, "either", `["bool",true]`, abiconfig.DecodeModeStrict)
	assert.JSONEq(t, `["bool",true]`, binHexToJSON(t, abi, "either", binHex))
}

func TestCodecVariantUnknownAlternativeRejected(t *testing.T) {
	abi := mustResolve(t, &Def{
		Version:  "alaio::abi/1.0",
		Variants: []VariantDef{{Name: "either", Types: []string{"int32", "bool"}}},
	})
	buf := []byte(`["not_an_alt",1]`)
	v := binstream.NewVector(len(buf))
	err := JSONToBin(context.Background(), abi, "either", buf, v, abiconfig.DecodeModeStrict)
	require.Error(t, err)
	assert.Regexp(t, "FF23032", err)
}

// TestCodecStrictAndReorderableProduceIdenticalBinary exercises the
// boundary scenario where the same struct, with fields supplied out of
// declaration order, produces byte-identical wire output under
// reorderable mode and decodes back to the original strict-order JSON.
func TestCodecStrictAndReorderableProduceIdenticalBinary(t *testing.T) {
	abi := mustResolve(t, &Def{
		Version: "alaio::abi/1.0",
		Structs: []StructDef{{Name: "mixed", Fields: []FieldDef{
			{Name: "v", Type: "int32[]"},
			{Name: "o", Type: "int32"},
			{Name: "va", Type: "anint"},
		}}},
		Variants: []VariantDef{{Name: "anint", Types: []string{"int32"}}},
	})
	strictJSON := `{"v":[1,2],"o":3,"va":["int32",4]}`
	reorderedJSON := `{"o":3,"va":["int32",4],"v":[1,2]}`

	strictHex := jsonToBinHex(t, abi, "mixed", strictJSON, abiconfig.DecodeModeStrict)
	reorderedHex := jsonToBinHex(t, abi, "mixed", reorderedJSON, abiconfig.DecodeModeReorderable)
	assert.Equal(t, strictHex, reorderedHex)
	assert.JSONEq(t, strictJSON, binHexToJSON(t, abi, "mixed", strictHex))
}

func TestCodecReorderableRejectsMissingField(t *testing.T) {
	abi := mustResolve(t, &Def{
		Version: "alaio::abi/1.0",
		Structs: []StructDef{{Name: "s", Fields: []FieldDef{
			{Name: "a", Type: "int32"},
			{Name: "b", Type: "int32"},
		}}},
	})
	buf := []byte(`{"a":1}`)
	v := binstream.NewVector(len(buf))
	err := JSONToBin(context.Background(), abi, "s", buf, v, abiconfig.DecodeModeReorderable)
	require.Error(t, err)
	assert.Regexp(t, "FF23031", err)
}

// TestCodecTrailingExtensionTruncation exercises the boundary scenario
// where a struct ends in extension fields and the binary input is
// truncated right at the extension boundary: the decoder must treat the
// missing bytes as "extension fields omitted", not a framing error.
func TestCodecTrailingExtensionTruncation(t *testing.T) {
	abi := mustResolve(t, &Def{
		Version: "alaio::abi/1.0",
		Structs: []StructDef{{Name: "s", Fields: []FieldDef{
			{Name: "a", Type: "int32"},
			{Name: "b", Type: "int32$"},
		}}},
	})
	full := jsonToBinHex(t, abi, "s", `{"a":1,"b":2}`, abiconfig.DecodeModeStrict)

	// Truncate to just the non-extension prefix (4 bytes -> 8 hex chars).
	truncated := full[:8]
	assert.JSONEq(t, `{"a":1}`, binHexToJSON(t, abi, "s", truncated))
}

func TestCodecInt128RoundTrip(t *testing.T) {
	abi := mustResolve(t, &Def{
		Version: "alaio::abi/1.0",
		Structs: []StructDef{{Name: "s", Fields: []FieldDef{
			{Name: "a", Type: "int128"},
			{Name: "b", Type: "uint128"},
		}}},
	})
	input := `{"a":"-170141183460469231731687303715884105728","b":"340282366920938463463374607431768211455"}`
	binHex := jsonToBinHex(t, abi, "s", input, abiconfig.DecodeModeStrict)
	assert.JSONEq(t, input, binHexToJSON(t, abi, "s", binHex))
}

// TestCodecFloat64FiniteEmitsBareNumber exercises spec.md §4.2's float JSON
// form: a finite value decodes to a bare JSON number, not a quoted string.
func TestCodecFloat64FiniteEmitsBareNumber(t *testing.T) {
	abi := mustResolve(t, &Def{
		Version: "alaio::abi/1.0",
		Structs: []StructDef{{Name: "s", Fields: []FieldDef{{Name: "v", Type: "float64"}}}},
	})
	binHex := jsonToBinHex(t, abi, "s", `{"v":1.5}`, abiconfig.DecodeModeStrict)
	out := binHexToJSON(t, abi, "s", binHex)
	assert.JSONEq(t, `{"v":1.5}`, out)
	assert.NotContains(t, out, `"1.5"`)
}

// TestCodecFloatNonFiniteRoundTrip exercises spec.md §4.2's non-finite float
// JSON forms: quoted "Infinity"/"-Infinity"/"NaN", accepted on encode and
// produced on decode, for both float32 and float64.
func TestCodecFloatNonFiniteRoundTrip(t *testing.T) {
	abi := mustResolve(t, &Def{
		Version: "alaio::abi/1.0",
		Structs: []StructDef{{Name: "s", Fields: []FieldDef{
			{Name: "a", Type: "float64"},
			{Name: "b", Type: "float64"},
			{Name: "c", Type: "float64"},
			{Name: "d", Type: "float32"},
		}}},
	})
	input := `{"a":"Infinity","b":"-Infinity","c":"NaN","d":"Infinity"}`
	binHex := jsonToBinHex(t, abi, "s", input, abiconfig.DecodeModeStrict)
	assert.JSONEq(t, input, binHexToJSON(t, abi, "s", binHex))
}

func TestCodecExtraInputRejected(t *testing.T) {
	abi := mustResolve(t, &Def{
		Version: "alaio::abi/1.0",
		Structs: []StructDef{{Name: "s", Fields: []FieldDef{{Name: "a", Type: "bool"}}}},
	})
	buf := []byte(`{"a":true}garbage`)
	v := binstream.NewVector(len(buf))
	err := JSONToBin(context.Background(), abi, "s", buf, v, abiconfig.DecodeModeStrict)
	require.Error(t, err)
	assert.Regexp(t, "FF23033", err)
}
