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

	"github.com/alacrityio/abiala/internal/abiconfig"
	"github.com/alacrityio/abiala/pkg/abicontext"
	"github.com/hyperledger/firefly-common/pkg/config"
	"github.com/spf13/cobra"
)

func jsonToBinCommand() *cobra.Command {
	var abiFile, typeName, mode string

	cmd := &cobra.Command{
		Use:   "json-to-bin <json-file>",
		Short: "Encode a JSON payload for a named ABI type to its hex wire form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cliContext()
			if err != nil {
				return err
			}
			if mode == "" {
				mode = config.GetString(abiconfig.DecodeMode)
			}
			abiBuf, err := os.ReadFile(abiFile)
			if err != nil {
				return err
			}
			jsonBuf, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			c := abicontext.New(ctx, 1)
			if !c.SetABIJSON("default", abiBuf) {
				return fmt.Errorf("%s", c.GetError())
			}
			if !c.JSONToBin("default", typeName, jsonBuf, mode) {
				return fmt.Errorf("%s", c.GetError())
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.GetBinHex())
			return nil
		},
	}
	cmd.Flags().StringVar(&abiFile, "abi", "", "path to the ABI document")
	cmd.Flags().StringVar(&typeName, "type", "", "ABI type name to encode the payload as")
	cmd.Flags().StringVar(&mode, "mode", "", "strict or reorderable struct decoding")
	_ = cmd.MarkFlagRequired("abi")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}
