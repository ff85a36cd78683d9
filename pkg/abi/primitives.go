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
	"math"
	"strconv"

	"github.com/alacrityio/abiala/internal/abimsgs"
	"github.com/alacrityio/abiala/pkg/abijson"
	"github.com/alacrityio/abiala/pkg/binstream"
	"github.com/alacrityio/abiala/pkg/chaintypes"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// encodePrimitiveValue consumes exactly one JSON token (or, for domain types,
// one JSON string) and writes its binary encoding.
func encodePrimitiveValue(ctx context.Context, kind PrimitiveKind, typeName string, lex *abijson.Lexer, w binstream.Writer) error {
	switch kind {
	case PrimBool:
		tok, err := lex.Next()
		if err != nil {
			return err
		}
		if tok.Kind != abijson.Bool {
			return i18n.NewError(ctx, abimsgs.MsgJSONSchemaMismatch, typeName, "expected bool")
		}
		return binstream.WriteBool(w, tok.Bool)

	case PrimInt8, PrimUint8, PrimInt16, PrimUint16, PrimInt32, PrimUint32, PrimVarInt32, PrimVarUint32:
		tok, err := lex.Next()
		if err != nil {
			return err
		}
		if tok.Kind != abijson.Number {
			return i18n.NewError(ctx, abimsgs.MsgJSONSchemaMismatch, typeName, "expected number")
		}
		return encodeSmallInt(ctx, kind, typeName, string(tok.Text), w)

	case PrimInt64, PrimUint64, PrimInt128, PrimUint128:
		tok, err := lex.Next()
		if err != nil {
			return err
		}
		text := tokenNumberText(tok)
		if text == "" {
			return i18n.NewError(ctx, abimsgs.MsgJSONSchemaMismatch, typeName, "expected 64/128-bit number")
		}
		return encodeWideInt(ctx, kind, typeName, text, w)

	case PrimFloat32:
		tok, err := lex.Next()
		if err != nil {
			return err
		}
		text := tokenNumberText(tok)
		if text == "" {
			return i18n.NewError(ctx, abimsgs.MsgJSONSchemaMismatch, typeName, "expected number")
		}
		f, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return i18n.NewError(ctx, abimsgs.MsgBadNumber, text)
		}
		return binstream.WriteFloat32(w, float32(f))

	case PrimFloat64:
		tok, err := lex.Next()
		if err != nil {
			return err
		}
		text := tokenNumberText(tok)
		if text == "" {
			return i18n.NewError(ctx, abimsgs.MsgJSONSchemaMismatch, typeName, "expected number")
		}
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return i18n.NewError(ctx, abimsgs.MsgBadNumber, text)
		}
		return binstream.WriteFloat64(w, f)

	case PrimString:
		tok, err := lex.Next()
		if err != nil {
			return err
		}
		if tok.Kind != abijson.String {
			return i18n.NewError(ctx, abimsgs.MsgJSONSchemaMismatch, typeName, "expected string")
		}
		return binstream.WriteString(w, string(tok.Text))

	case PrimBytes:
		tok, err := lex.Next()
		if err != nil {
			return err
		}
		if tok.Kind != abijson.String {
			return i18n.NewError(ctx, abimsgs.MsgJSONSchemaMismatch, typeName, "expected hex string")
		}
		raw, err := hex.DecodeString(string(tok.Text))
		if err != nil {
			return i18n.NewError(ctx, abimsgs.MsgBadHex, string(tok.Text))
		}
		return binstream.WriteBytes(w, raw)

	case PrimFloat128:
		tok, err := lex.Next()
		if err != nil {
			return err
		}
		var f chaintypes.Float128
		if err := f.UnmarshalJSON(quoteIfNeeded(tok)); err != nil {
			return err
		}
		return f.ToBin(w)

	case PrimName:
		s, err := nextDomainString(ctx, lex, typeName)
		if err != nil {
			return err
		}
		v, err := chaintypes.ParseName(s)
		if err != nil {
			return err
		}
		return v.ToBin(w)

	case PrimSymbolCode:
		s, err := nextDomainString(ctx, lex, typeName)
		if err != nil {
			return err
		}
		v, err := chaintypes.ParseSymbolCode(s)
		if err != nil {
			return err
		}
		return v.ToBin(w)

	case PrimSymbol:
		s, err := nextDomainString(ctx, lex, typeName)
		if err != nil {
			return err
		}
		v, err := chaintypes.ParseSymbol(s)
		if err != nil {
			return err
		}
		return v.ToBin(w)

	case PrimAsset:
		s, err := nextDomainString(ctx, lex, typeName)
		if err != nil {
			return err
		}
		v, err := chaintypes.ParseAsset(s)
		if err != nil {
			return err
		}
		return v.ToBin(w)

	case PrimTimePoint:
		s, err := nextDomainString(ctx, lex, typeName)
		if err != nil {
			return err
		}
		v, err := chaintypes.ParseTimePoint(s)
		if err != nil {
			return err
		}
		return v.ToBin(w)

	case PrimTimePointSec:
		s, err := nextDomainString(ctx, lex, typeName)
		if err != nil {
			return err
		}
		v, err := chaintypes.ParseTimePointSec(s)
		if err != nil {
			return err
		}
		return v.ToBin(w)

	case PrimBlockTimestamp:
		s, err := nextDomainString(ctx, lex, typeName)
		if err != nil {
			return err
		}
		v, err := chaintypes.ParseBlockTimestamp(s)
		if err != nil {
			return err
		}
		return v.ToBin(w)

	case PrimChecksum160:
		s, err := nextDomainString(ctx, lex, typeName)
		if err != nil {
			return err
		}
		var v chaintypes.Checksum160
		if err := v.UnmarshalJSON(quoted(s)); err != nil {
			return err
		}
		return v.ToBin(w)

	case PrimChecksum256:
		s, err := nextDomainString(ctx, lex, typeName)
		if err != nil {
			return err
		}
		var v chaintypes.Checksum256
		if err := v.UnmarshalJSON(quoted(s)); err != nil {
			return err
		}
		return v.ToBin(w)

	case PrimChecksum512:
		s, err := nextDomainString(ctx, lex, typeName)
		if err != nil {
			return err
		}
		var v chaintypes.Checksum512
		if err := v.UnmarshalJSON(quoted(s)); err != nil {
			return err
		}
		return v.ToBin(w)

	case PrimPublicKey:
		s, err := nextDomainString(ctx, lex, typeName)
		if err != nil {
			return err
		}
		v, err := chaintypes.ParsePublicKey(s)
		if err != nil {
			return err
		}
		return v.ToBin(w)

	case PrimPrivateKey:
		s, err := nextDomainString(ctx, lex, typeName)
		if err != nil {
			return err
		}
		v, err := chaintypes.ParsePrivateKey(s)
		if err != nil {
			return err
		}
		return v.ToBin(w)

	case PrimSignature:
		s, err := nextDomainString(ctx, lex, typeName)
		if err != nil {
			return err
		}
		v, err := chaintypes.ParseSignature(s)
		if err != nil {
			return err
		}
		return v.ToBin(w)

	default:
		return i18n.NewError(ctx, abimsgs.MsgUnknownType, typeName)
	}
}

func nextDomainString(ctx context.Context, lex *abijson.Lexer, typeName string) (string, error) {
	tok, err := lex.Next()
	if err != nil {
		return "", err
	}
	if tok.Kind != abijson.String {
		return "", i18n.NewError(ctx, abimsgs.MsgJSONSchemaMismatch, typeName, "expected string")
	}
	return string(tok.Text), nil
}

// tokenNumberText returns the digit text of a token that may arrive either
// unquoted (Number) or quoted (String), as 64/128-bit values do.
func tokenNumberText(tok abijson.Token) string {
	if tok.Kind == abijson.Number || tok.Kind == abijson.String {
		return string(tok.Text)
	}
	return ""
}

// writeFloatJSON emits a decoded float the way §4.2 requires: finite values
// as a bare JSON number, and the three non-finite values as the quoted
// strings "Infinity"/"-Infinity"/"NaN" (not Go's "+Inf"/"-Inf" spellings).
func writeFloatJSON(jw *abijson.Writer, v float64, bitSize int) {
	switch {
	case math.IsNaN(v):
		jw.QuotedNumber("NaN")
	case math.IsInf(v, 1):
		jw.QuotedNumber("Infinity")
	case math.IsInf(v, -1):
		jw.QuotedNumber("-Infinity")
	default:
		jw.RawNumber(strconv.FormatFloat(v, 'g', -1, bitSize))
	}
}

func quoted(s string) []byte {
	b := make([]byte, 0, len(s)+2)
	b = append(b, '"')
	b = append(b, s...)
	b = append(b, '"')
	return b
}

func quoteIfNeeded(tok abijson.Token) []byte {
	if tok.Kind == abijson.String {
		return quoted(string(tok.Text))
	}
	return tok.Text
}

func encodeSmallInt(ctx context.Context, kind PrimitiveKind, typeName, text string, w binstream.Writer) error {
	switch kind {
	case PrimInt8:
		v, err := strconv.ParseInt(text, 10, 8)
		if err != nil {
			return i18n.NewError(ctx, abimsgs.MsgIntegerOverflow, text, typeName)
		}
		return binstream.WriteUint8(w, uint8(int8(v)))
	case PrimUint8:
		v, err := strconv.ParseUint(text, 10, 8)
		if err != nil {
			return i18n.NewError(ctx, abimsgs.MsgIntegerOverflow, text, typeName)
		}
		return binstream.WriteUint8(w, uint8(v))
	case PrimInt16:
		v, err := strconv.ParseInt(text, 10, 16)
		if err != nil {
			return i18n.NewError(ctx, abimsgs.MsgIntegerOverflow, text, typeName)
		}
		return binstream.WriteUint16(w, uint16(int16(v)))
	case PrimUint16:
		v, err := strconv.ParseUint(text, 10, 16)
		if err != nil {
			return i18n.NewError(ctx, abimsgs.MsgIntegerOverflow, text, typeName)
		}
		return binstream.WriteUint16(w, uint16(v))
	case PrimInt32, PrimVarInt32:
		v, err := strconv.ParseInt(text, 10, 32)
		if err != nil {
			return i18n.NewError(ctx, abimsgs.MsgIntegerOverflow, text, typeName)
		}
		if kind == PrimVarInt32 {
			return binstream.WriteVarInt32(w, int32(v))
		}
		return binstream.WriteUint32(w, uint32(int32(v)))
	case PrimUint32, PrimVarUint32:
		v, err := strconv.ParseUint(text, 10, 32)
		if err != nil {
			return i18n.NewError(ctx, abimsgs.MsgIntegerOverflow, text, typeName)
		}
		if kind == PrimVarUint32 {
			return binstream.WriteVarUint32(w, uint32(v))
		}
		return binstream.WriteUint32(w, uint32(v))
	default:
		return i18n.NewError(ctx, abimsgs.MsgUnknownType, typeName)
	}
}

func encodeWideInt(ctx context.Context, kind PrimitiveKind, typeName, text string, w binstream.Writer) error {
	switch kind {
	case PrimInt64:
		v, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return i18n.NewError(ctx, abimsgs.MsgIntegerOverflow, text, typeName)
		}
		return binstream.WriteUint64(w, uint64(v))
	case PrimUint64:
		v, err := strconv.ParseUint(text, 10, 64)
		if err != nil {
			return i18n.NewError(ctx, abimsgs.MsgIntegerOverflow, text, typeName)
		}
		return binstream.WriteUint64(w, v)
	case PrimInt128, PrimUint128:
		b, err := chaintypes.ParseWideInt(text, kind == PrimInt128)
		if err != nil {
			return i18n.NewError(ctx, abimsgs.MsgIntegerOverflow, text, typeName)
		}
		return binstream.WriteUint128(w, b)
	default:
		return i18n.NewError(ctx, abimsgs.MsgUnknownType, typeName)
	}
}

// decodePrimitiveValue reads one binary-encoded primitive and appends its
// JSON form to jw.
func decodePrimitiveValue(ctx context.Context, kind PrimitiveKind, typeName string, r *binstream.Reader, jw *abijson.Writer) error {
	switch kind {
	case PrimBool:
		v, err := binstream.ReadBool(r)
		if err != nil {
			return err
		}
		jw.Bool(v)
		return nil

	case PrimInt8:
		v, err := binstream.ReadUint8(r)
		if err != nil {
			return err
		}
		jw.RawNumber(strconv.FormatInt(int64(int8(v)), 10))
		return nil
	case PrimUint8:
		v, err := binstream.ReadUint8(r)
		if err != nil {
			return err
		}
		jw.RawNumber(strconv.FormatUint(uint64(v), 10))
		return nil
	case PrimInt16:
		v, err := binstream.ReadUint16(r)
		if err != nil {
			return err
		}
		jw.RawNumber(strconv.FormatInt(int64(int16(v)), 10))
		return nil
	case PrimUint16:
		v, err := binstream.ReadUint16(r)
		if err != nil {
			return err
		}
		jw.RawNumber(strconv.FormatUint(uint64(v), 10))
		return nil
	case PrimInt32:
		v, err := binstream.ReadUint32(r)
		if err != nil {
			return err
		}
		jw.RawNumber(strconv.FormatInt(int64(int32(v)), 10))
		return nil
	case PrimUint32:
		v, err := binstream.ReadUint32(r)
		if err != nil {
			return err
		}
		jw.RawNumber(strconv.FormatUint(uint64(v), 10))
		return nil
	case PrimVarInt32:
		v, err := binstream.ReadVarInt32(r)
		if err != nil {
			return err
		}
		jw.RawNumber(strconv.FormatInt(int64(v), 10))
		return nil
	case PrimVarUint32:
		v, err := binstream.ReadVarUint32(r)
		if err != nil {
			return err
		}
		jw.RawNumber(strconv.FormatUint(uint64(v), 10))
		return nil
	case PrimInt64:
		v, err := binstream.ReadUint64(r)
		if err != nil {
			return err
		}
		jw.QuotedNumber(strconv.FormatInt(int64(v), 10))
		return nil
	case PrimUint64:
		v, err := binstream.ReadUint64(r)
		if err != nil {
			return err
		}
		jw.QuotedNumber(strconv.FormatUint(v, 10))
		return nil
	case PrimInt128, PrimUint128:
		b, err := binstream.ReadUint128(r)
		if err != nil {
			return err
		}
		jw.QuotedNumber(chaintypes.FormatWideInt(b, kind == PrimInt128))
		return nil
	case PrimFloat32:
		v, err := binstream.ReadFloat32(r)
		if err != nil {
			return err
		}
		writeFloatJSON(jw, float64(v), 32)
		return nil
	case PrimFloat64:
		v, err := binstream.ReadFloat64(r)
		if err != nil {
			return err
		}
		writeFloatJSON(jw, v, 64)
		return nil
	case PrimString:
		v, err := binstream.ReadString(r)
		if err != nil {
			return err
		}
		jw.String(v)
		return nil
	case PrimBytes:
		v, err := binstream.ReadBytes(r)
		if err != nil {
			return err
		}
		jw.String(hex.EncodeToString(v))
		return nil
	case PrimFloat128:
		v, err := chaintypes.FromBinFloat128(r)
		if err != nil {
			return err
		}
		jw.String(v.String())
		return nil
	case PrimName:
		v, err := chaintypes.FromBinName(r)
		if err != nil {
			return err
		}
		jw.String(v.String())
		return nil
	case PrimSymbolCode:
		v, err := chaintypes.FromBinSymbolCode(r)
		if err != nil {
			return err
		}
		jw.String(v.String())
		return nil
	case PrimSymbol:
		v, err := chaintypes.FromBinSymbol(r)
		if err != nil {
			return err
		}
		jw.String(v.String())
		return nil
	case PrimAsset:
		v, err := chaintypes.FromBinAsset(r)
		if err != nil {
			return err
		}
		jw.String(v.String())
		return nil
	case PrimTimePoint:
		v, err := chaintypes.FromBinTimePoint(r)
		if err != nil {
			return err
		}
		jw.String(v.String())
		return nil
	case PrimTimePointSec:
		v, err := chaintypes.FromBinTimePointSec(r)
		if err != nil {
			return err
		}
		jw.String(v.String())
		return nil
	case PrimBlockTimestamp:
		v, err := chaintypes.FromBinBlockTimestamp(r)
		if err != nil {
			return err
		}
		jw.String(v.String())
		return nil
	case PrimChecksum160:
		v, err := chaintypes.FromBinChecksum160(r)
		if err != nil {
			return err
		}
		jw.String(v.String())
		return nil
	case PrimChecksum256:
		v, err := chaintypes.FromBinChecksum256(r)
		if err != nil {
			return err
		}
		jw.String(v.String())
		return nil
	case PrimChecksum512:
		v, err := chaintypes.FromBinChecksum512(r)
		if err != nil {
			return err
		}
		jw.String(v.String())
		return nil
	case PrimPublicKey:
		v, err := chaintypes.FromBinPublicKey(r)
		if err != nil {
			return err
		}
		jw.String(v.String())
		return nil
	case PrimPrivateKey:
		v, err := chaintypes.FromBinPrivateKey(r)
		if err != nil {
			return err
		}
		jw.String(v.String())
		return nil
	case PrimSignature:
		v, err := chaintypes.FromBinSignature(r)
		if err != nil {
			return err
		}
		jw.String(v.String())
		return nil
	default:
		return i18n.NewError(ctx, abimsgs.MsgUnknownType, typeName)
	}
}
