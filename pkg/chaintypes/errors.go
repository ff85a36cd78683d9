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

package chaintypes

import (
	"encoding/json"
	"fmt"
)

// Sentinel errors for the textual-decoding and numeric-conversion error
// kinds of the domain value types. The ABI layer returns these as they are,
// not as i18n-coded errors; they stay plain so chaintypes has no dependency
// on the higher layers.
var (
	ErrBadNumber       = fmt.Errorf("bad number")
	ErrBadUTF8         = fmt.Errorf("bad utf-8")
	ErrBadHex          = fmt.Errorf("bad hex")
	ErrBadBase58       = fmt.Errorf("bad base58")
	ErrBadChecksum     = fmt.Errorf("bad checksum")
	ErrIntegerOverflow = fmt.Errorf("integer overflow")
)

func badNumberf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrBadNumber, fmt.Sprintf(format, args...))
}

// jsonUnmarshalString decodes a JSON string literal. The key types define
// their own UnmarshalJSON (rather than embedding a string field) so that
// MarshalJSON can omit the allocation of an intermediate string value.
func jsonUnmarshalString(b []byte, out *string) error {
	return json.Unmarshal(b, out)
}
