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

// Package abiconfig holds the root configuration keys for the abiala CLI:
// where to look for ABI files by default, and which struct-decode mode to
// use when none is specified on the command line.
package abiconfig

import (
	"github.com/hyperledger/firefly-common/pkg/config"
	"github.com/spf13/viper"
)

var ffc = config.AddRootKey

var (
	// ABISearchPath is a default ABI directory (default "."). No command
	// reads it: every command takes its ABI document from a file path
	// argument or the required --abi flag.
	ABISearchPath = ffc("abi.searchPath")
	// DecodeMode selects "strict" (fields must appear in declaration order)
	// or "reorderable" (fields may appear in any order) JSON-to-bin decoding.
	DecodeMode = ffc("decode.mode")
)

const (
	DecodeModeStrict      = "strict"
	DecodeModeReorderable = "reorderable"
)

func setDefaults() {
	viper.SetDefault(string(ABISearchPath), ".")
	viper.SetDefault(string(DecodeMode), DecodeModeStrict)
}

func Reset() {
	config.RootConfigReset(setDefaults)
}
