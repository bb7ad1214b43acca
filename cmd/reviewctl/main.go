// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// The reviewctl binary is the developer tool for kubereview modules.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"kpt.dev/kubereview/cmd/reviewctl/run"
	"kpt.dev/kubereview/cmd/reviewctl/serve"
	"kpt.dev/kubereview/cmd/reviewctl/webhookconfig"
	"kpt.dev/kubereview/pkg/util/log"
	pkgversion "kpt.dev/kubereview/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "reviewctl",
	Short: fmt.Sprintf("Run and serve kubereview modules (version %v)", pkgversion.VERSION),
	PersistentPreRun: func(*cobra.Command, []string) {
		log.Setup()
	},
}

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Prints the version of this binary",
	Example: `  reviewctl version`,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", pkgversion.VERSION)
	},
}

func init() {
	log.AddFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(run.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(webhookconfig.Cmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
