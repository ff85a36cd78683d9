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
	"strings"

	"github.com/alacrityio/abiala/pkg/abicontext"
	"github.com/spf13/cobra"
)

func binToJSONCommand() *cobra.Command {
	var abiFile, typeName string

	cmd := &cobra.Command{
		Use:   "bin-to-json <hex-string-or-@file>",
		Short: "Decode a hex wire payload for a named ABI type to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cliContext()
			if err != nil {
				return err
			}
			abiBuf, err := os.ReadFile(abiFile)
			if err != nil {
				return err
			}
			hexStr := args[0]
			if after, ok := strings.CutPrefix(hexStr, "@"); ok {
				raw, err := os.ReadFile(after)
				if err != nil {
					return err
				}
				hexStr = strings.TrimSpace(string(raw))
			}

			c := abicontext.New(ctx, 1)
			if !c.SetABIJSON("default", abiBuf) {
				return fmt.Errorf("%s", c.GetError())
			}
			if !c.HexToJSON("default", typeName, hexStr) {
				return fmt.Errorf("%s", c.GetError())
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.ResultString())
			return nil
		},
	}
	cmd.Flags().StringVar(&abiFile, "abi", "", "path to the ABI document")
	cmd.Flags().StringVar(&typeName, "type", "", "ABI type name to decode the payload as")
	_ = cmd.MarkFlagRequired("abi")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}
