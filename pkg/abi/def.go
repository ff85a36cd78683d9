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

// Package abi implements the ABI model, its three-pass type resolver, and
// the codec node engine that drives JSON<->binary conversion against a
// resolved ABI. It is the direct descendant of the Solidity ABI codec this
// module started from, retargeted to the struct/variant/alias grammar of a
// chain-style ABI.
package abi

import (
	"context"
	"encoding/json"

	"github.com/alacrityio/abiala/internal/abimsgs"
	"github.com/alacrityio/abiala/pkg/binstream"
	"github.com/alacrityio/abiala/pkg/chaintypes"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

// Def is the wire form of an ABI document (spec §3 "ABI definition").
type Def struct {
	Version       string           `json:"version"`
	Types         []TypeDef        `json:"types,omitempty"`
	Structs       []StructDef      `json:"structs,omitempty"`
	Variants      []VariantDef     `json:"variants,omitempty"`
	Actions       []NameTypeDef    `json:"actions,omitempty"`
	Tables        []NameTypeDef    `json:"tables,omitempty"`
	ActionResults []NameTypeDef    `json:"action_results,omitempty"`
}

// TypeDef is a `types` alias entry: new_type_name resolves to type.
type TypeDef struct {
	NewTypeName string `json:"new_type_name"`
	Type        string `json:"type"`
}

// FieldDef is one field of a StructDef.
type FieldDef struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// StructDef declares a struct type, optionally extending a base struct.
type StructDef struct {
	Name   string     `json:"name"`
	Base   string     `json:"base,omitempty"`
	Fields []FieldDef `json:"fields,omitempty"`
}

// VariantDef declares a tagged union over an ordered list of alternative
// type names.
type VariantDef struct {
	Name  string   `json:"name"`
	Types []string `json:"types"`
}

// NameTypeDef is one entry of the actions/tables/action_results maps: a
// 64-bit contract name to the ABI type name that encodes it.
type NameTypeDef struct {
	Name chaintypes.Name `json:"name"`
	Type string          `json:"type"`
}

// acceptedVersions are the ABI wire-format version suffixes this codec
// understands, per spec §3/§6.
var acceptedVersions = map[string]bool{
	"alaio::abi/1.0": true,
	"alaio::abi/1.1": true,
	"alaio::abi/1.2": true,
}

// validateVersion checks the version string against the accepted set.
func validateVersion(ctx context.Context, version string) error {
	if acceptedVersions[version] {
		return nil
	}
	return i18n.NewError(ctx, abimsgs.MsgBadVersion, version)
}

// UnmarshalDefJSON parses an ABI document from its JSON text form. The
// struct tags on Def and its nested types already describe that shape, so
// this is a plain encoding/json round trip rather than a pass through the
// node engine - the node engine exists to interpret *resolved* types against
// arbitrary payloads, not to describe Def's own fixed Go-native shape.
func UnmarshalDefJSON(buf []byte, def *Def) error {
	return json.Unmarshal(buf, def)
}

// MarshalDefJSON renders an ABI document back to JSON text.
func MarshalDefJSON(def *Def) ([]byte, error) {
	return json.Marshal(def)
}

// MarshalDefBin writes an ABI document in its own binary wire form: the
// concatenation rules are the same ones the resolved-struct/array encoder
// uses (§4 of the wire format this package targets) applied directly to
// Def's fixed, known-in-advance shape, since Def is never itself a runtime
// value looked up by name against a ResolvedABI.
func MarshalDefBin(def *Def, w binstream.Writer) error {
	if err := binstream.WriteString(w, def.Version); err != nil {
		return err
	}
	if err := binstream.WriteVarUint32(w, uint32(len(def.Types))); err != nil {
		return err
	}
	for _, t := range def.Types {
		if err := binstream.WriteString(w, t.NewTypeName); err != nil {
			return err
		}
		if err := binstream.WriteString(w, t.Type); err != nil {
			return err
		}
	}
	if err := binstream.WriteVarUint32(w, uint32(len(def.Structs))); err != nil {
		return err
	}
	for _, s := range def.Structs {
		if err := binstream.WriteString(w, s.Name); err != nil {
			return err
		}
		if err := binstream.WriteString(w, s.Base); err != nil {
			return err
		}
		if err := binstream.WriteVarUint32(w, uint32(len(s.Fields))); err != nil {
			return err
		}
		for _, f := range s.Fields {
			if err := binstream.WriteString(w, f.Name); err != nil {
				return err
			}
			if err := binstream.WriteString(w, f.Type); err != nil {
				return err
			}
		}
	}
	if err := binstream.WriteVarUint32(w, uint32(len(def.Variants))); err != nil {
		return err
	}
	for _, v := range def.Variants {
		if err := binstream.WriteString(w, v.Name); err != nil {
			return err
		}
		if err := binstream.WriteVarUint32(w, uint32(len(v.Types))); err != nil {
			return err
		}
		for _, t := range v.Types {
			if err := binstream.WriteString(w, t); err != nil {
				return err
			}
		}
	}
	for _, group := range [][]NameTypeDef{def.Actions, def.Tables, def.ActionResults} {
		if err := binstream.WriteVarUint32(w, uint32(len(group))); err != nil {
			return err
		}
		for _, nt := range group {
			if err := nt.Name.ToBin(w); err != nil {
				return err
			}
			if err := binstream.WriteString(w, nt.Type); err != nil {
				return err
			}
		}
	}
	return nil
}

// UnmarshalDefBin is the inverse of MarshalDefBin.
func UnmarshalDefBin(r *binstream.Reader) (*Def, error) {
	def := &Def{}
	var err error
	if def.Version, err = binstream.ReadString(r); err != nil {
		return nil, err
	}

	nTypes, err := binstream.ReadVarUint32(r)
	if err != nil {
		return nil, err
	}
	def.Types = make([]TypeDef, nTypes)
	for i := range def.Types {
		if def.Types[i].NewTypeName, err = binstream.ReadString(r); err != nil {
			return nil, err
		}
		if def.Types[i].Type, err = binstream.ReadString(r); err != nil {
			return nil, err
		}
	}

	nStructs, err := binstream.ReadVarUint32(r)
	if err != nil {
		return nil, err
	}
	def.Structs = make([]StructDef, nStructs)
	for i := range def.Structs {
		if def.Structs[i].Name, err = binstream.ReadString(r); err != nil {
			return nil, err
		}
		if def.Structs[i].Base, err = binstream.ReadString(r); err != nil {
			return nil, err
		}
		nFields, err := binstream.ReadVarUint32(r)
		if err != nil {
			return nil, err
		}
		def.Structs[i].Fields = make([]FieldDef, nFields)
		for j := range def.Structs[i].Fields {
			if def.Structs[i].Fields[j].Name, err = binstream.ReadString(r); err != nil {
				return nil, err
			}
			if def.Structs[i].Fields[j].Type, err = binstream.ReadString(r); err != nil {
				return nil, err
			}
		}
	}

	nVariants, err := binstream.ReadVarUint32(r)
	if err != nil {
		return nil, err
	}
	def.Variants = make([]VariantDef, nVariants)
	for i := range def.Variants {
		if def.Variants[i].Name, err = binstream.ReadString(r); err != nil {
			return nil, err
		}
		nAlts, err := binstream.ReadVarUint32(r)
		if err != nil {
			return nil, err
		}
		def.Variants[i].Types = make([]string, nAlts)
		for j := range def.Variants[i].Types {
			if def.Variants[i].Types[j], err = binstream.ReadString(r); err != nil {
				return nil, err
			}
		}
	}

	for _, group := range []*[]NameTypeDef{&def.Actions, &def.Tables, &def.ActionResults} {
		n, err := binstream.ReadVarUint32(r)
		if err != nil {
			return nil, err
		}
		*group = make([]NameTypeDef, n)
		for i := range *group {
			name, err := chaintypes.FromBinName(r)
			if err != nil {
				return nil, err
			}
			(*group)[i].Name = name
			if (*group)[i].Type, err = binstream.ReadString(r); err != nil {
				return nil, err
			}
		}
	}

	return def, nil
}
