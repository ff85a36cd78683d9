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
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alacrityio/abiala/internal/abiconfig"
	"github.com/hyperledger/firefly-common/pkg/config"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-common/pkg/log"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "abiala",
	Short: "ABI-driven binary/JSON codec",
	Long:  ``,
}

var cfgFile string

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "f", "", "config file")
	rootCmd.AddCommand(setABICommand())
	rootCmd.AddCommand(jsonToBinCommand())
	rootCmd.AddCommand(binToJSONCommand())
	rootCmd.AddCommand(nameCommand())
	rootCmd.AddCommand(versionCommand())
}

// Execute is the CLI entry point, invoked from main.go.
func Execute() error {
	return rootCmd.Execute()
}

func initConfig() {
	abiconfig.Reset()
}

// cliContext reads configuration and wires up logging exactly the way
// the teacher's run() does before constructing its server - here there is
// no server to start, just a synchronous command to execute.
func cliContext() (context.Context, error) {
	initConfig()
	err := config.ReadConfig("abiala", cfgFile)
	var notFound viper.ConfigFileNotFoundError
	if cfgFile == "" && errors.As(err, &notFound) {
		// No config file is needed: every key has a default.
		err = nil
	}

	ctx := context.Background()
	ctx = log.WithLogger(ctx, logrus.WithField("pid", fmt.Sprintf("%d", os.Getpid())))
	ctx = log.WithLogger(ctx, logrus.WithField("prefix", "abiala"))
	config.SetupLogging(ctx)

	if err != nil {
		return nil, i18n.WrapError(ctx, err, i18n.MsgConfigFailed)
	}
	return ctx, nil
}
