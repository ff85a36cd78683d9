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
	"strconv"
	"strings"

	"github.com/alacrityio/abiala/pkg/binstream"
)

// Asset is a signed 64-bit amount paired with a Symbol. Its textual form is
// "<integer>.<fraction> <CODE>" where fraction has exactly Symbol.Precision
// digits.
type Asset struct {
	Amount int64
	Sym    Symbol
}

// ParseAsset parses the "<integer>.<fraction> <CODE>" form, or a bare
// integer with no fraction when the symbol's precision is 0.
func ParseAsset(s string) (Asset, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return Asset{}, badNumberf("asset %q is not of the form \"<amount> <CODE>\"", s)
	}
	amountStr, codeStr := fields[0], fields[1]

	precision := 0
	digits := amountStr
	negative := strings.HasPrefix(digits, "-")
	if negative {
		digits = digits[1:]
	}
	if dot := strings.IndexByte(digits, '.'); dot >= 0 {
		precision = len(digits) - dot - 1
		digits = digits[:dot] + digits[dot+1:]
	}
	if digits == "" || !isAllDigits(digits) {
		return Asset{}, badNumberf("asset %q has an invalid amount", s)
	}
	amountVal, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return Asset{}, badNumberf("asset %q amount overflows 64 bits", s)
	}
	if negative {
		amountVal = -amountVal
	}

	sym, err := ParseSymbol(strconv.Itoa(precision) + "," + codeStr)
	if err != nil {
		return Asset{}, err
	}
	return Asset{Amount: amountVal, Sym: sym}, nil
}

func isAllDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (a Asset) String() string {
	precision := int(a.Sym.Precision())
	amount := a.Amount
	negative := amount < 0
	if negative {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)
	for len(digits) <= precision {
		digits = "0" + digits
	}
	var intPart, fracPart string
	if precision == 0 {
		intPart = digits
	} else {
		intPart = digits[:len(digits)-precision]
		fracPart = digits[len(digits)-precision:]
	}
	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString(intPart)
	if precision > 0 {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	b.WriteByte(' ')
	b.WriteString(a.Sym.Code().String())
	return b.String()
}

func (a Asset) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Asset) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseAsset(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a Asset) ToBin(w binstream.Writer) error {
	if err := binstream.WriteUint64(w, uint64(a.Amount)); err != nil {
		return err
	}
	return a.Sym.ToBin(w)
}

func FromBinAsset(r *binstream.Reader) (Asset, error) {
	amount, err := binstream.ReadUint64(r)
	if err != nil {
		return Asset{}, err
	}
	sym, err := FromBinSymbol(r)
	if err != nil {
		return Asset{}, err
	}
	return Asset{Amount: int64(amount), Sym: sym}, nil
}
