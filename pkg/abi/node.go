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

import "github.com/alacrityio/abiala/pkg/chaintypes"

// NodeKind tags the arm of a resolved codec Node.
type NodeKind int

const (
	NodePrimitive NodeKind = iota
	NodeStruct
	NodeVariant
	NodeArray
	NodeOptional
	NodeExtension
	NodeAlias
)

// PrimitiveKind enumerates the built-in leaf codecs.
type PrimitiveKind int

const (
	PrimBool PrimitiveKind = iota
	PrimInt8
	PrimUint8
	PrimInt16
	PrimUint16
	PrimInt32
	PrimUint32
	PrimInt64
	PrimUint64
	PrimInt128
	PrimUint128
	PrimVarInt32
	PrimVarUint32
	PrimFloat32
	PrimFloat64
	PrimFloat128
	PrimBytes
	PrimString
	PrimName
	PrimSymbolCode
	PrimSymbol
	PrimAsset
	PrimTimePoint
	PrimTimePointSec
	PrimBlockTimestamp
	PrimChecksum160
	PrimChecksum256
	PrimChecksum512
	PrimPublicKey
	PrimPrivateKey
	PrimSignature
)

// primitiveNames is the canonical ABI type-name for every built-in primitive,
// and the reverse lookup used by the resolver to recognize base identifiers.
var primitiveNames = map[string]PrimitiveKind{
	"bool":            PrimBool,
	"int8":            PrimInt8,
	"uint8":           PrimUint8,
	"int16":           PrimInt16,
	"uint16":          PrimUint16,
	"int32":           PrimInt32,
	"uint32":          PrimUint32,
	"int64":           PrimInt64,
	"uint64":          PrimUint64,
	"int128":          PrimInt128,
	"uint128":         PrimUint128,
	"varint32":        PrimVarInt32,
	"varuint32":       PrimVarUint32,
	"float32":         PrimFloat32,
	"float64":         PrimFloat64,
	"float128":        PrimFloat128,
	"bytes":           PrimBytes,
	"string":          PrimString,
	"name":            PrimName,
	"symbol_code":     PrimSymbolCode,
	"symbol":          PrimSymbol,
	"asset":           PrimAsset,
	"time_point":      PrimTimePoint,
	"time_point_sec":  PrimTimePointSec,
	"block_timestamp_type": PrimBlockTimestamp,
	"checksum160":     PrimChecksum160,
	"checksum256":     PrimChecksum256,
	"checksum512":     PrimChecksum512,
	"public_key":      PrimPublicKey,
	"private_key":     PrimPrivateKey,
	"signature":       PrimSignature,
}

// StructField is one wired field of a struct Node, in wire order (inherited
// base fields first, then the struct's own declared fields).
type StructField struct {
	Name      string
	Node      int
	Extension bool
}

// VariantAlt is one wired alternative of a variant Node.
type VariantAlt struct {
	Name string
	Node int
}

// Node is a resolved, executable representation of one ABI type. Aggregate
// nodes reference children by arena index (not pointer), so that a struct
// which transitively contains itself (via an array/optional/variant) can be
// wired by pre-allocating its own index before its fields are resolved.
type Node struct {
	Kind NodeKind
	Name string // the declared/synthetic type name this node was resolved for

	Primitive PrimitiveKind

	StructFields []StructField
	wired        bool // struct/variant only: true once fields/alts are filled in

	VariantAlts []VariantAlt

	Child int // array element / optional inner / extension inner / alias target
}

// ResolvedABI is the arena of Nodes produced by Resolve, plus the type-name
// index and the action/table/action-result lookup maps.
type ResolvedABI struct {
	Def   *Def
	nodes []Node

	byName map[string]int

	actionTypes       map[chaintypes.Name]string
	tableTypes        map[chaintypes.Name]string
	actionResultTypes map[chaintypes.Name]string
}

// Node returns the arena node at idx.
func (r *ResolvedABI) Node(idx int) *Node {
	return &r.nodes[idx]
}

// NodeForType looks up the resolved node for a declared (or primitive) type
// name. It does not itself apply suffixes: a name with trailing []/?/$ is
// found only if Resolve interned it because some declaration, action, table
// or action result referenced it.
func (r *ResolvedABI) NodeForType(name string) (*Node, bool) {
	idx, ok := r.byName[name]
	if !ok {
		return nil, false
	}
	return &r.nodes[idx], true
}

func (r *ResolvedABI) ActionType(name chaintypes.Name) (string, bool) {
	t, ok := r.actionTypes[name]
	return t, ok
}

func (r *ResolvedABI) TableType(name chaintypes.Name) (string, bool) {
	t, ok := r.tableTypes[name]
	return t, ok
}

func (r *ResolvedABI) ActionResultType(name chaintypes.Name) (string, bool) {
	t, ok := r.actionResultTypes[name]
	return t, ok
}
