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

// Package abimsgs is the i18n-coded message catalogue for the ABI codec -
// one message per error kind named in the codec's error handling design.
package abimsgs

import "github.com/hyperledger/firefly-common/pkg/i18n"

var ffe = i18n.FFE

//revive:disable
var (
	// Stream failures
	MsgStreamEOF        = ffe("FF23001", "Unexpected end of binary input")
	MsgBufferOverflow   = ffe("FF23002", "Buffer overflow: wrote %d bytes into a %d byte buffer")
	MsgOutOfMemory      = ffe("FF23003", "Out of memory")

	// Textual decoding
	MsgBadUTF8     = ffe("FF23010", "Invalid UTF-8 sequence")
	MsgBadHex      = ffe("FF23011", "Invalid hex string: %s")
	MsgBadBase58   = ffe("FF23012", "Invalid base58 string: %s")
	MsgBadChecksum = ffe("FF23013", "Checksum mismatch decoding %q")

	// Numeric conversion
	MsgIntegerOverflow = ffe("FF23020", "Value %s overflows type %s")
	MsgBadNumber       = ffe("FF23021", "Invalid number: %s")

	// JSON layer
	MsgJSONSyntax          = ffe("FF23030", "Invalid JSON syntax at offset %d")
	MsgJSONSchemaMismatch  = ffe("FF23031", "JSON input does not match the schema for type %q: %s")
	MsgUnknownVariant      = ffe("FF23032", "Unknown variant alternative %q for type %q")
	MsgExtraInput          = ffe("FF23033", "Unexpected trailing input after decoding %q")

	// ABI layer
	MsgUnknownType     = ffe("FF23040", "Unknown type %q")
	MsgABIRedefinition = ffe("FF23041", "Type %q is declared more than once")
	MsgCircularAlias   = ffe("FF23042", "Circular alias chain detected for type %q")
	MsgBadVersion      = ffe("FF23043", "Unsupported ABI version %q")
	MsgStructBaseCycle = ffe("FF23044", "Circular base-struct chain detected for struct %q")
	MsgDuplicateField  = ffe("FF23045", "Struct %q declares field %q more than once")
	MsgBadExtension    = ffe("FF23046", "Field %q is not an extension field but follows one; extension fields may only appear at the end of a struct")

	// Lookup
	MsgUnknownContract     = ffe("FF23050", "Unknown contract %q")
	MsgUnknownAction       = ffe("FF23051", "Unknown action %q for contract %q")
	MsgUnknownTable        = ffe("FF23052", "Unknown table %q for contract %q")
	MsgUnknownActionResult = ffe("FF23053", "Unknown action result %q for contract %q")

	// Façade
	MsgUnexpectedPanic = ffe("FF23060", "Unexpected internal error: %s")
)
