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

package cmd

import (
	"fmt"
	"os"

	"github.com/alacrityio/abiala/pkg/abicontext"
	"github.com/spf13/cobra"
)

func setABICommand() *cobra.Command {
	var contractName string
	var binForm, hexForm bool

	cmd := &cobra.Command{
		Use:   "set-abi <abi-file>",
		Short: "Parse and resolve an ABI document, reporting any schema error",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cliContext()
			if err != nil {
				return err
			}
			payload, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			c := abicontext.New(ctx, 1)
			var ok bool
			switch {
			case hexForm:
				ok = c.SetABIHex(contractName, string(payload))
			case binForm:
				ok = c.SetABIBin(contractName, payload)
			default:
				ok = c.SetABIJSON(contractName, payload)
			}
			if !ok {
				return fmt.Errorf("%s", c.GetError())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok\n")
			return nil
		},
	}
	cmd.Flags().StringVar(&contractName, "contract", "default", "contract name to register the ABI under")
	cmd.Flags().BoolVar(&binForm, "bin", false, "the ABI file is the binary wire form")
	cmd.Flags().BoolVar(&hexForm, "hex", false, "the ABI file is a hex-encoded binary wire form")
	return cmd
}
