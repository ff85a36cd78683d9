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
	"strconv"

	"github.com/alacrityio/abiala/pkg/abicontext"
	"github.com/spf13/cobra"
)

func nameCommand() *cobra.Command {
	parent := &cobra.Command{
		Use:   "name",
		Short: "Convert between a base-32 name string and its packed 64-bit form",
	}
	parent.AddCommand(&cobra.Command{
		Use:   "encode <string>",
		Short: "Pack a name string into its uint64 form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cliContext()
			if err != nil {
				return err
			}
			c := abicontext.New(ctx, 1)
			n, ok := c.StringToName(args[0])
			if !ok {
				return fmt.Errorf("%s", c.GetError())
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	})
	parent.AddCommand(&cobra.Command{
		Use:   "decode <uint64>",
		Short: "Unpack a uint64 name into its string form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := cliContext()
			if err != nil {
				return err
			}
			n, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return err
			}
			c := abicontext.New(ctx, 1)
			s, ok := c.NameToString(n)
			if !ok {
				return fmt.Errorf("%s", c.GetError())
			}
			fmt.Fprintln(cmd.OutOrStdout(), s)
			return nil
		},
	})
	return parent
}
