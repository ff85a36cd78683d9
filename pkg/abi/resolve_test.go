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
	"testing"

	"github.com/alacrityio/abiala/pkg/chaintypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustName(t *testing.T, s string) chaintypes.Name {
	t.Helper()
	n, err := chaintypes.ParseName(s)
	require.NoError(t, err)
	return n
}

func mustResolve(t *testing.T, def *Def) *ResolvedABI {
	t.Helper()
	abi, err := Resolve(context.Background(), def)
	require.NoError(t, err)
	return abi
}

func TestResolveEmptyABI(t *testing.T) {
	abi := mustResolve(t, &Def{Version: "alaio::abi/1.0"})
	n, ok := abi.NodeForType("bool")
	require.True(t, ok)
	assert.Equal(t, NodePrimitive, n.Kind)
	assert.Equal(t, PrimBool, n.Primitive)
}

func TestResolveRejectsBadVersion(t *testing.T) {
	_, err := Resolve(context.Background(), &Def{Version: "not-a-version"})
	require.Error(t, err)
	assert.Regexp(t, "FF23043", err)
}

func TestResolveStructWithBase(t *testing.T) {
	def := &Def{
		Version: "alaio::abi/1.0",
		Structs: []StructDef{
			{Name: "base_s", Fields: []FieldDef{{Name: "a", Type: "int32"}}},
			{Name: "derived_s", Base: "base_s", Fields: []FieldDef{{Name: "b", Type: "int32"}}},
		},
	}
	abi := mustResolve(t, def)
	n, ok := abi.NodeForType("derived_s")
	require.True(t, ok)
	require.Len(t, n.StructFields, 2)
	assert.Equal(t, "a", n.StructFields[0].Name)
	assert.Equal(t, "b", n.StructFields[1].Name)
}

func TestResolveDetectsDuplicateDeclaration(t *testing.T) {
	def := &Def{
		Version: "alaio::abi/1.0",
		Structs: []StructDef{
			{Name: "dup"},
		},
		Variants: []VariantDef{
			{Name: "dup", Types: []string{"int32"}},
		},
	}
	_, err := Resolve(context.Background(), def)
	require.Error(t, err)
	assert.Regexp(t, "FF23041", err)
}

func TestResolveDetectsDuplicateField(t *testing.T) {
	def := &Def{
		Version: "alaio::abi/1.0",
		Structs: []StructDef{
			{Name: "s", Fields: []FieldDef{
				{Name: "a", Type: "int32"},
				{Name: "a", Type: "int32"},
			}},
		},
	}
	_, err := Resolve(context.Background(), def)
	require.Error(t, err)
	assert.Regexp(t, "FF23045", err)
}

func TestResolveDetectsBadExtensionOrdering(t *testing.T) {
	def := &Def{
		Version: "alaio::abi/1.0",
		Structs: []StructDef{
			{Name: "s", Fields: []FieldDef{
				{Name: "a", Type: "int32$"},
				{Name: "b", Type: "int32"},
			}},
		},
	}
	_, err := Resolve(context.Background(), def)
	require.Error(t, err)
	assert.Regexp(t, "FF23046", err)
}

func TestResolveDetectsStructBaseCycle(t *testing.T) {
	def := &Def{
		Version: "alaio::abi/1.0",
		Structs: []StructDef{
			{Name: "s", Base: "s"},
		},
	}
	_, err := Resolve(context.Background(), def)
	require.Error(t, err)
	assert.Regexp(t, "FF23044", err)
}

func TestResolveDetectsCircularAlias(t *testing.T) {
	def := &Def{
		Version: "alaio::abi/1.0",
		Types: []TypeDef{
			{NewTypeName: "a", Type: "b"},
			{NewTypeName: "b", Type: "a"},
		},
	}
	_, err := Resolve(context.Background(), def)
	require.Error(t, err)
	assert.Regexp(t, "FF23042", err)
}

func TestResolveUnknownTypeReference(t *testing.T) {
	def := &Def{
		Version: "alaio::abi/1.0",
		Structs: []StructDef{
			{Name: "s", Fields: []FieldDef{{Name: "a", Type: "no_such_type"}}},
		},
	}
	_, err := Resolve(context.Background(), def)
	require.Error(t, err)
	assert.Regexp(t, "FF23040", err)
}

func TestResolveSelfReferentialStructThroughArray(t *testing.T) {
	// A tree-shaped struct: node { children: node[] }. The array wraps the
	// struct, so the struct's own placeholder index is a valid back-edge
	// target before wireStruct finishes.
	def := &Def{
		Version: "alaio::abi/1.0",
		Structs: []StructDef{
			{Name: "tree_node", Fields: []FieldDef{
				{Name: "children", Type: "tree_node[]"},
			}},
		},
	}
	abi := mustResolve(t, def)
	n, ok := abi.NodeForType("tree_node")
	require.True(t, ok)
	require.Len(t, n.StructFields, 1)
	childArray := abi.Node(n.StructFields[0].Node)
	assert.Equal(t, NodeArray, childArray.Kind)
	assert.Equal(t, n, abi.Node(childArray.Child))
}

func TestResolveVariantAndAlias(t *testing.T) {
	def := &Def{
		Version: "alaio::abi/1.0",
		Types: []TypeDef{
			{NewTypeName: "anint", Type: "int32"},
		},
		Variants: []VariantDef{
			{Name: "either", Types: []string{"anint", "bool"}},
		},
	}
	abi := mustResolve(t, def)
	n, ok := abi.NodeForType("either")
	require.True(t, ok)
	require.Len(t, n.VariantAlts, 2)
	assert.Equal(t, "anint", n.VariantAlts[0].Name)
	aliasNode := abi.Node(n.VariantAlts[0].Node)
	assert.Equal(t, NodeAlias, aliasNode.Kind)
	assert.Equal(t, PrimInt32, abi.Node(aliasNode.Child).Primitive)
}

func TestResolveActionTableActionResultMaps(t *testing.T) {
	def := &Def{
		Version: "alaio::abi/1.0",
		Structs: []StructDef{
			{Name: "transfer", Fields: []FieldDef{{Name: "amount", Type: "int64"}}},
		},
		Actions: []NameTypeDef{{Name: mustName(t, "transfer"), Type: "transfer"}},
		Tables:  []NameTypeDef{{Name: mustName(t, "accounts"), Type: "transfer"}},
	}
	abi := mustResolve(t, def)
	typ, ok := abi.ActionType(mustName(t, "transfer"))
	require.True(t, ok)
	assert.Equal(t, "transfer", typ)
	typ, ok = abi.TableType(mustName(t, "accounts"))
	require.True(t, ok)
	assert.Equal(t, "transfer", typ)
}
