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
	"fmt"
	"reflect"
	"sync"

	"github.com/alacrityio/abiala/pkg/reflectcodec"
)

var (
	typeNamesMu sync.RWMutex
	typeNames   = map[reflect.Type]string{}
)

// AddType introspects T's exported fields via reflectcodec.Register, appends
// the equivalent struct declaration to def under typeName, and re-resolves
// def in place - spec §4.6's "abi.add_type<T>()": T becomes encodable via
// schema look-up (JSONToBin/BinToJSON against typeName) on success.
//
// A struct-typed field must already have been added under its own AddType
// call before it can appear as a field of T; AddType only ever needs
// previously-declared field types, the same composition order a hand-written
// ABI document requires between a struct and its base/field types.
func AddType[T any](ctx context.Context, def *Def, typeName string) (*ResolvedABI, error) {
	info, err := reflectcodec.Register[T]()
	if err != nil {
		return nil, err
	}

	fields := make([]FieldDef, 0, len(info.Fields))
	for _, f := range info.Fields {
		abiType, err := reflectcodec.GoKindToABIType(f.Type, lookupTypeName)
		if err != nil {
			return nil, fmt.Errorf("abi: field %q of %s: %w", f.Name, info.GoType, err)
		}
		if f.Extension {
			abiType += "$"
		}
		fields = append(fields, FieldDef{Name: f.Name, Type: abiType})
	}

	def.Structs = append(def.Structs, StructDef{Name: typeName, Fields: fields})

	resolved, err := Resolve(ctx, def)
	if err != nil {
		def.Structs = def.Structs[:len(def.Structs)-1]
		return nil, err
	}

	typeNamesMu.Lock()
	typeNames[info.GoType] = typeName
	typeNamesMu.Unlock()
	return resolved, nil
}

func lookupTypeName(t reflect.Type) (string, bool) {
	typeNamesMu.RLock()
	defer typeNamesMu.RUnlock()
	name, ok := typeNames[t]
	return name, ok
}
