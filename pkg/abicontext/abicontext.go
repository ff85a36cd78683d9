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

// Package abicontext is the stateful façade spec.md §6 describes as a
// C-callable context handle: one long-lived object per caller that owns a
// bounded map of named contract ABIs, the last error/result produced by its
// most recent call, and converts panics deep in the resolver/codec into a
// stable error string rather than crashing the process.
package abicontext

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/alacrityio/abiala/internal/abiconfig"
	"github.com/alacrityio/abiala/internal/abimsgs"
	"github.com/alacrityio/abiala/pkg/abi"
	"github.com/alacrityio/abiala/pkg/binstream"
	"github.com/alacrityio/abiala/pkg/chaintypes"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/karlseguin/ccache"
)

// contractCacheTTL is refreshed on every hit, so a contract stays resident
// for as long as it keeps being used.
const contractCacheTTL = 30 * time.Minute

// Context is a scoped, single-threaded-per-call resource: it owns no global
// state, and its contract map/result buffers are released when it is
// garbage collected (there is no explicit destroy - unlike the C façade this
// models, Go has no manual free).
type Context struct {
	ctx context.Context

	contracts *ccache.Cache

	lastError    error
	resultBin    []byte
	resultString string
}

// New creates a context bound to ctx for logging. contracts are evicted LRU
// once more than maxContracts distinct names have been set.
func New(ctx context.Context, maxContracts int64) *Context {
	return &Context{
		ctx: ctx,
		contracts: ccache.New(
			ccache.Configure().MaxSize(maxContracts),
		),
	}
}

// GetError returns the human-readable message for the most recent failing
// call, or "" if the last call succeeded.
func (c *Context) GetError() string {
	if c.lastError == nil {
		return ""
	}
	return c.lastError.Error()
}

func (c *Context) GetBinSize() int { return len(c.resultBin) }

func (c *Context) GetBinData() []byte { return c.resultBin }

func (c *Context) GetBinHex() string { return hex.EncodeToString(c.resultBin) }

// recoverPanic is deferred at the top of every exported method that calls
// into the resolver or codec (the plain result getters do not), mirroring the
// façade's catch-all: a panic anywhere in the resolver or codec becomes a
// last_error string rather than crashing the caller.
func (c *Context) recoverPanic() {
	if r := recover(); r != nil {
		c.lastError = i18n.NewError(c.ctx, abimsgs.MsgUnexpectedPanic, fmt.Sprintf("%v", r))
		c.resultBin = nil
		c.resultString = ""
	}
}

func (c *Context) fail(err error) bool {
	c.lastError = err
	c.resultBin = nil
	c.resultString = ""
	return false
}

func (c *Context) succeed() bool {
	c.lastError = nil
	return true
}

type contract struct {
	abi *abi.ResolvedABI
}

// SetABIJSON parses and resolves an ABI document supplied as JSON text under
// name. The document is parsed with encoding/json, so jsonBuf is not
// modified (unlike the payload buffer of JSONToBin, which the lexer
// rewrites in place).
func (c *Context) SetABIJSON(name string, jsonBuf []byte) (ok bool) {
	defer c.recoverPanic()
	var def abi.Def
	if err := abi.UnmarshalDefJSON(jsonBuf, &def); err != nil {
		return c.fail(err)
	}
	return c.setABI(name, &def)
}

// SetABIBin parses and resolves an ABI document supplied in its own binary
// wire form.
func (c *Context) SetABIBin(name string, bin []byte) (ok bool) {
	defer c.recoverPanic()
	def, err := abi.UnmarshalDefBin(binstream.NewReader(bin))
	if err != nil {
		return c.fail(err)
	}
	return c.setABI(name, def)
}

// SetABIHex is SetABIBin over a hex-encoded string, for command-line and
// fuzzer-harness callers that only carry text.
func (c *Context) SetABIHex(name, hexStr string) (ok bool) {
	defer c.recoverPanic()
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return c.fail(fmt.Errorf("%w: %s", chaintypes.ErrBadHex, err))
	}
	def, err := abi.UnmarshalDefBin(binstream.NewReader(raw))
	if err != nil {
		return c.fail(err)
	}
	return c.setABI(name, def)
}

func (c *Context) setABI(name string, def *abi.Def) bool {
	resolved, err := abi.Resolve(c.ctx, def)
	if err != nil {
		return c.fail(err)
	}
	c.contracts.Set(name, &contract{abi: resolved}, contractCacheTTL)
	log.L(c.ctx).Debugf("resolved abi for contract %q (%d types, %d actions, %d tables)",
		name, len(def.Structs)+len(def.Variants)+len(def.Types), len(def.Actions), len(def.Tables))
	return c.succeed()
}

func (c *Context) lookupContract(name string) (*contract, error) {
	item := c.contracts.Get(name)
	if item == nil {
		return nil, i18n.NewError(c.ctx, abimsgs.MsgUnknownContract, name)
	}
	item.Extend(contractCacheTTL)
	return item.Value().(*contract), nil
}

// StringToName encodes a base-32 identifier string into its 64-bit packed
// form.
func (c *Context) StringToName(s string) (n uint64, ok bool) {
	defer c.recoverPanic()
	name, err := chaintypes.ParseName(s)
	if err != nil {
		c.fail(err)
		return 0, false
	}
	c.succeed()
	return uint64(name), true
}

// NameToString is the inverse of StringToName.
func (c *Context) NameToString(n uint64) (s string, ok bool) {
	defer c.recoverPanic()
	c.succeed()
	return chaintypes.Name(n).String(), true
}

// GetTypeForAction looks up the ABI type name bound to an action name in a
// previously set contract.
func (c *Context) GetTypeForAction(contractName string, action uint64) (typeName string, ok bool) {
	defer c.recoverPanic()
	ct, err := c.lookupContract(contractName)
	if err != nil {
		c.fail(err)
		return "", false
	}
	t, found := ct.abi.ActionType(chaintypes.Name(action))
	if !found {
		c.fail(i18n.NewError(c.ctx, abimsgs.MsgUnknownAction, chaintypes.Name(action).String(), contractName))
		return "", false
	}
	c.succeed()
	return t, true
}

// GetTypeForTable looks up the ABI type name bound to a table name.
func (c *Context) GetTypeForTable(contractName string, table uint64) (typeName string, ok bool) {
	defer c.recoverPanic()
	ct, err := c.lookupContract(contractName)
	if err != nil {
		c.fail(err)
		return "", false
	}
	t, found := ct.abi.TableType(chaintypes.Name(table))
	if !found {
		c.fail(i18n.NewError(c.ctx, abimsgs.MsgUnknownTable, chaintypes.Name(table).String(), contractName))
		return "", false
	}
	c.succeed()
	return t, true
}

// GetTypeForActionResult looks up the ABI type name bound to an action
// result name.
func (c *Context) GetTypeForActionResult(contractName string, actionResult uint64) (typeName string, ok bool) {
	defer c.recoverPanic()
	ct, err := c.lookupContract(contractName)
	if err != nil {
		c.fail(err)
		return "", false
	}
	t, found := ct.abi.ActionResultType(chaintypes.Name(actionResult))
	if !found {
		c.fail(i18n.NewError(c.ctx, abimsgs.MsgUnknownActionResult, chaintypes.Name(actionResult).String(), contractName))
		return "", false
	}
	c.succeed()
	return t, true
}

// JSONToBin encodes jsonBuf (a JSON document for typeName in contractName)
// to binary, leaving the result in GetBinData/GetBinHex. mode selects strict
// (declaration-order fields) or reorderable (any order) struct decoding.
func (c *Context) JSONToBin(contractName, typeName string, jsonBuf []byte, mode string) (ok bool) {
	defer c.recoverPanic()
	ct, err := c.lookupContract(contractName)
	if err != nil {
		return c.fail(err)
	}
	w := binstream.NewVector(len(jsonBuf))
	if err := abi.JSONToBin(c.ctx, ct.abi, typeName, jsonBuf, w, mode); err != nil {
		return c.fail(err)
	}
	c.resultBin = w.Bytes()
	return c.succeed()
}

// BinToJSON decodes bin (wire bytes for typeName in contractName) to JSON
// text, leaving the result accessible via ResultString.
func (c *Context) BinToJSON(contractName, typeName string, bin []byte) (ok bool) {
	defer c.recoverPanic()
	ct, err := c.lookupContract(contractName)
	if err != nil {
		return c.fail(err)
	}
	out, err := abi.BinToJSON(c.ctx, ct.abi, typeName, binstream.NewReader(bin))
	if err != nil {
		return c.fail(err)
	}
	c.resultString = string(out)
	return c.succeed()
}

// HexToJSON is BinToJSON over a hex-encoded wire payload.
func (c *Context) HexToJSON(contractName, typeName, hexStr string) (ok bool) {
	defer c.recoverPanic()
	raw, err := hex.DecodeString(hexStr)
	if err != nil {
		return c.fail(fmt.Errorf("%w: %s", chaintypes.ErrBadHex, err))
	}
	return c.BinToJSON(contractName, typeName, raw)
}

// ResultString returns the JSON text produced by the most recent BinToJSON /
// HexToJSON / ABIBinToJSON call.
func (c *Context) ResultString() string { return c.resultString }

// ABIJSONToBin round-trips the ABI document itself: decode JSON, resolve,
// re-encode to wire binary. Used to validate or normalize an ABI document
// without binding it to a contract name.
func (c *Context) ABIJSONToBin(jsonBuf []byte) (ok bool) {
	defer c.recoverPanic()
	var def abi.Def
	if err := abi.UnmarshalDefJSON(jsonBuf, &def); err != nil {
		return c.fail(err)
	}
	if _, err := abi.Resolve(c.ctx, &def); err != nil {
		return c.fail(err)
	}
	w := binstream.NewVector(len(jsonBuf))
	if err := abi.MarshalDefBin(&def, w); err != nil {
		return c.fail(err)
	}
	c.resultBin = w.Bytes()
	return c.succeed()
}

// ABIBinToJSON is the inverse of ABIJSONToBin.
func (c *Context) ABIBinToJSON(bin []byte) (ok bool) {
	defer c.recoverPanic()
	def, err := abi.UnmarshalDefBin(binstream.NewReader(bin))
	if err != nil {
		return c.fail(err)
	}
	if _, err := abi.Resolve(c.ctx, def); err != nil {
		return c.fail(err)
	}
	out, err := abi.MarshalDefJSON(def)
	if err != nil {
		return c.fail(err)
	}
	c.resultString = string(out)
	return c.succeed()
}

// DefaultMode is the struct-decode mode to use when a caller has no explicit
// preference: the constant abiconfig.DecodeModeStrict (it does not read the
// abiconfig.DecodeMode configuration key).
var DefaultMode = abiconfig.DecodeModeStrict
