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
	"strconv"

	"github.com/alacrityio/abiala/internal/abiconfig"
	"github.com/alacrityio/abiala/internal/abimsgs"
	"github.com/alacrityio/abiala/pkg/abijson"
	"github.com/alacrityio/abiala/pkg/binstream"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// codec is the per-call context threaded through the node engine: the
// resolved ABI it is executing against, and whether struct JSON decoding
// tolerates out-of-order keys (reorderable) or demands declaration order
// (strict, per abiconfig.DecodeModeStrict).
type codec struct {
	ctx        context.Context
	abi        *ResolvedABI
	reorderable bool
}

// JSONToBin encodes a JSON document (lexed in place from buf) against the
// named resolved type, writing wire bytes to w. Any non-whitespace bytes
// left over after the root value is fully consumed are rejected as
// extra-input (spec §7).
func JSONToBin(ctx context.Context, abi *ResolvedABI, typeName string, buf []byte, w binstream.Writer, mode string) error {
	node, err := abi.resolveNamed(typeName)
	if err != nil {
		return err
	}
	c := &codec{ctx: ctx, abi: abi, reorderable: mode == abiconfig.DecodeModeReorderable}
	lex := abijson.NewLexer(buf)
	if err := c.encodeNode(node, lex, w); err != nil {
		return err
	}
	if !lex.AtEnd() {
		return i18n.NewError(ctx, abimsgs.MsgExtraInput, typeName)
	}
	return nil
}

// BinToJSON decodes wire bytes for the named resolved type into a JSON text
// buffer. Any bytes left over in r after the root value is fully decoded are
// rejected as extra-input (spec §4.5/§7).
func BinToJSON(ctx context.Context, abi *ResolvedABI, typeName string, r *binstream.Reader) ([]byte, error) {
	node, err := abi.resolveNamed(typeName)
	if err != nil {
		return nil, err
	}
	c := &codec{ctx: ctx, abi: abi}
	jw := abijson.NewWriter()
	if err := c.decodeNode(node, r, jw); err != nil {
		return nil, err
	}
	if r.Remaining() != 0 {
		return nil, i18n.NewError(ctx, abimsgs.MsgExtraInput, typeName)
	}
	return jw.Bytes(), nil
}

// resolveNamed is the public entry point used by the façade: it looks up an
// already-resolved node by exact name match (including suffixed forms, which
// were interned during Resolve when referenced by a field/action/table).
func (r *ResolvedABI) resolveNamed(name string) (*Node, error) {
	n, ok := r.NodeForType(name)
	if !ok {
		return nil, i18n.NewError(context.Background(), abimsgs.MsgUnknownType, name)
	}
	return n, nil
}

func (c *codec) errSchema(typeName, detail string) error {
	return i18n.NewError(c.ctx, abimsgs.MsgJSONSchemaMismatch, typeName, detail)
}

// ---- encode: JSON -> binary ----

func (c *codec) encodeNode(n *Node, lex *abijson.Lexer, w binstream.Writer) error {
	switch n.Kind {
	case NodeAlias:
		return c.encodeNode(c.abi.Node(n.Child), lex, w)
	case NodePrimitive:
		return c.encodePrimitive(n, lex, w)
	case NodeStruct:
		return c.encodeStruct(n, lex, w)
	case NodeVariant:
		return c.encodeVariant(n, lex, w)
	case NodeArray:
		return c.encodeArray(n, lex, w)
	case NodeOptional:
		return c.encodeOptional(n, lex, w)
	case NodeExtension:
		// Only reachable when a lone extension-suffixed type is used outside
		// a struct's trailing field list; behaves like its inner type.
		return c.encodeNode(c.abi.Node(n.Child), lex, w)
	default:
		return c.errSchema(n.Name, "unresolvable node kind")
	}
}

func (c *codec) encodeOptional(n *Node, lex *abijson.Lexer, w binstream.Writer) error {
	if lex.PeekIsNull() { // PeekIsNull has already consumed the null
		return binstream.WriteBool(w, false)
	}
	if err := binstream.WriteBool(w, true); err != nil {
		return err
	}
	return c.encodeNode(c.abi.Node(n.Child), lex, w)
}

func (c *codec) encodeArray(n *Node, lex *abijson.Lexer, w binstream.Writer) error {
	tok, err := lex.Next()
	if err != nil {
		return err
	}
	if tok.Kind != abijson.StartArray {
		return c.errSchema(n.Name, "expected array")
	}
	count := uint32(0)
	bufW := binstream.NewVector(64)
	for {
		if lex.PeekIsClose() {
			if _, err := lex.Next(); err != nil { // consume the ']'
				return err
			}
			break
		}
		elemNode := c.abi.Node(n.Child)
		if err := c.encodeNode(elemNode, lex, bufW); err != nil {
			return err
		}
		count++
	}
	if err := binstream.WriteVarUint32(w, count); err != nil {
		return err
	}
	_, err = w.Write(bufW.Bytes())
	return err
}

func (c *codec) encodeVariant(n *Node, lex *abijson.Lexer, w binstream.Writer) error {
	tok, err := lex.Next()
	if err != nil {
		return err
	}
	if tok.Kind != abijson.StartArray {
		return c.errSchema(n.Name, "expected [alt-name, value] array")
	}
	nameTok, err := lex.Next()
	if err != nil {
		return err
	}
	if nameTok.Kind != abijson.String {
		return c.errSchema(n.Name, "expected alternative name as first array element")
	}
	altName := string(nameTok.Text)

	altTag := -1
	var altNode *Node
	for i, alt := range n.VariantAlts {
		if alt.Name == altName {
			altTag = i
			altNode = c.abi.Node(alt.Node)
			break
		}
	}
	if altTag < 0 {
		return i18n.NewError(c.ctx, abimsgs.MsgUnknownVariant, altName, n.Name)
	}

	if err := binstream.WriteVarUint32(w, uint32(altTag)); err != nil {
		return err
	}
	if err := c.encodeNode(altNode, lex, w); err != nil {
		return err
	}
	end, err := lex.Next()
	if err != nil {
		return err
	}
	if end.Kind != abijson.EndArray {
		return c.errSchema(n.Name, "expected end of [alt-name, value] array")
	}
	return nil
}

func (c *codec) encodeStruct(n *Node, lex *abijson.Lexer, w binstream.Writer) error {
	tok, err := lex.Next()
	if err != nil {
		return err
	}
	if tok.Kind != abijson.StartObject {
		return c.errSchema(n.Name, "expected object")
	}

	if c.reorderable {
		return c.encodeStructReorderable(n, lex, w)
	}
	return c.encodeStructStrict(n, lex, w)
}

func (c *codec) encodeStructStrict(n *Node, lex *abijson.Lexer, w binstream.Writer) error {
	for i, f := range n.StructFields {
		if lex.PeekIsClose() {
			if !f.Extension {
				return c.errSchema(n.Name, "missing field "+f.Name)
			}
			// remaining fields from i onward must all be extension fields
			for _, rest := range n.StructFields[i:] {
				if !rest.Extension {
					return c.errSchema(n.Name, "missing field "+rest.Name)
				}
			}
			if _, err := lex.Next(); err != nil {
				return err
			}
			return nil
		}

		keyTok, err := lex.Next()
		if err != nil {
			return err
		}
		if keyTok.Kind != abijson.Key || string(keyTok.Text) != f.Name {
			return c.errSchema(n.Name, "expected field "+f.Name+" in order")
		}
		if err := c.encodeNode(c.abi.Node(f.Node), lex, w); err != nil {
			return err
		}
	}
	end, err := lex.Next()
	if err != nil {
		return err
	}
	if end.Kind != abijson.EndObject {
		return c.errSchema(n.Name, "surplus fields")
	}
	return nil
}

func (c *codec) encodeStructReorderable(n *Node, lex *abijson.Lexer, w binstream.Writer) error {
	spans := make([][]byte, len(n.StructFields))
	present := make([]bool, len(n.StructFields))
	index := make(map[string]int, len(n.StructFields))
	for i, f := range n.StructFields {
		index[f.Name] = i
	}

	for {
		if lex.PeekIsClose() {
			if _, err := lex.Next(); err != nil {
				return err
			}
			break
		}
		keyTok, err := lex.Next()
		if err != nil {
			return err
		}
		if keyTok.Kind != abijson.Key {
			return c.errSchema(n.Name, "expected field key")
		}
		fieldName := string(keyTok.Text)
		i, ok := index[fieldName]
		if !ok {
			return c.errSchema(n.Name, "unknown field "+fieldName)
		}
		fieldW := binstream.NewVector(16)
		if err := c.encodeNode(c.abi.Node(n.StructFields[i].Node), lex, fieldW); err != nil {
			return err
		}
		spans[i] = fieldW.Bytes()
		present[i] = true
	}

	sawMissingExtension := false
	for i, f := range n.StructFields {
		if present[i] {
			if sawMissingExtension {
				return c.errSchema(n.Name, "extension field "+f.Name+" present after an earlier absent extension field")
			}
			if _, err := w.Write(spans[i]); err != nil {
				return err
			}
			continue
		}
		if !f.Extension {
			return c.errSchema(n.Name, "missing field "+f.Name)
		}
		sawMissingExtension = true
	}
	return nil
}

func (c *codec) encodePrimitive(n *Node, lex *abijson.Lexer, w binstream.Writer) error {
	return encodePrimitiveValue(c.ctx, n.Primitive, n.Name, lex, w)
}

// ---- decode: binary -> JSON ----

func (c *codec) decodeNode(n *Node, r *binstream.Reader, jw *abijson.Writer) error {
	switch n.Kind {
	case NodeAlias:
		return c.decodeNode(c.abi.Node(n.Child), r, jw)
	case NodePrimitive:
		return decodePrimitiveValue(c.ctx, n.Primitive, n.Name, r, jw)
	case NodeStruct:
		return c.decodeStruct(n, r, jw)
	case NodeVariant:
		return c.decodeVariant(n, r, jw)
	case NodeArray:
		return c.decodeArray(n, r, jw)
	case NodeOptional:
		return c.decodeOptional(n, r, jw)
	case NodeExtension:
		return c.decodeNode(c.abi.Node(n.Child), r, jw)
	default:
		return c.errSchema(n.Name, "unresolvable node kind")
	}
}

func (c *codec) decodeOptional(n *Node, r *binstream.Reader, jw *abijson.Writer) error {
	present, err := binstream.ReadBool(r)
	if err != nil {
		return err
	}
	if !present {
		jw.Null()
		return nil
	}
	return c.decodeNode(c.abi.Node(n.Child), r, jw)
}

func (c *codec) decodeArray(n *Node, r *binstream.Reader, jw *abijson.Writer) error {
	count, err := binstream.ReadVarUint32(r)
	if err != nil {
		return err
	}
	jw.StartArray()
	elemNode := c.abi.Node(n.Child)
	for i := uint32(0); i < count; i++ {
		if err := c.decodeNode(elemNode, r, jw); err != nil {
			return err
		}
	}
	jw.EndArray()
	return nil
}

func (c *codec) decodeVariant(n *Node, r *binstream.Reader, jw *abijson.Writer) error {
	tag, err := binstream.ReadVarUint32(r)
	if err != nil {
		return err
	}
	if int(tag) >= len(n.VariantAlts) {
		return i18n.NewError(c.ctx, abimsgs.MsgUnknownVariant, strconv.FormatUint(uint64(tag), 10), n.Name)
	}
	alt := n.VariantAlts[tag]
	jw.StartArray()
	jw.String(alt.Name)
	if err := c.decodeNode(c.abi.Node(alt.Node), r, jw); err != nil {
		return err
	}
	jw.EndArray()
	return nil
}

func (c *codec) decodeStruct(n *Node, r *binstream.Reader, jw *abijson.Writer) error {
	jw.StartObject()
	for _, f := range n.StructFields {
		if f.Extension && r.Remaining() == 0 {
			break
		}
		jw.Key(f.Name)
		if err := c.decodeNode(c.abi.Node(f.Node), r, jw); err != nil {
			return err
		}
	}
	jw.EndObject()
	return nil
}
