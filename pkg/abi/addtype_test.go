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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addTypeInner struct {
	Count int32 `abiala:"count"`
}

type addTypeOuter struct {
	Name    string       `abiala:"name"`
	Inner   addTypeInner `abiala:"inner"`
	Tags    []int32      `abiala:"tags"`
	Comment string       `abiala:"comment,extension"`
}

// addTypeUnregisteredInner is never passed to AddType on its own, so
// addTypeOuterBad's field lookup must fail.
type addTypeUnregisteredInner struct {
	Count int32 `abiala:"count"`
}

type addTypeOuterBad struct {
	Inner addTypeUnregisteredInner `abiala:"inner"`
}

func TestAddTypeRegistersComposedStructs(t *testing.T) {
	def := &Def{Version: "alaio::abi/1.0"}
	resolved, err := AddType[addTypeInner](context.Background(), def, "add_type_inner")
	require.NoError(t, err)
	require.NotNil(t, resolved)

	resolved, err = AddType[addTypeOuter](context.Background(), def, "add_type_outer")
	require.NoError(t, err)

	n, ok := resolved.NodeForType("add_type_outer")
	require.True(t, ok)
	require.Len(t, n.StructFields, 4)
	assert.Equal(t, "name", n.StructFields[0].Name)
	assert.Equal(t, "inner", n.StructFields[1].Name)
	assert.Equal(t, "tags", n.StructFields[2].Name)
	assert.Equal(t, "comment", n.StructFields[3].Name)
	assert.True(t, n.StructFields[3].Extension)

	innerField := resolved.Node(n.StructFields[1].Node)
	assert.Equal(t, NodeStruct, innerField.Kind)
	assert.Equal(t, "add_type_inner", innerField.Name)
}

func TestAddTypeRequiresFieldStructPreviouslyRegistered(t *testing.T) {
	def := &Def{Version: "alaio::abi/1.0"}
	_, err := AddType[addTypeOuterBad](context.Background(), def, "add_type_outer_bad")
	require.Error(t, err)
}
