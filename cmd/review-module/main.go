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

// The review-module binary evaluates one review per invocation. The
// capability to run is the subcommand; the request document is read from
// stdin and the response document is written to stdout. A fault is reported
// on stderr and the process exits non-zero without writing a response.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"kpt.dev/kubereview/pkg/dispatch"
	"kpt.dev/kubereview/pkg/modules"
	"kpt.dev/kubereview/pkg/util/log"
	pkgversion "kpt.dev/kubereview/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:           "review-module",
	Short:         fmt.Sprintf("Review Kubernetes admission, authentication and authorization requests (version %v)", pkgversion.VERSION),
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	log.AddFlags(rootCmd.PersistentFlags())
	for _, capability := range modules.Default.Capabilities() {
		rootCmd.AddCommand(capabilityCmd(capability))
	}
}

func capabilityCmd(capability string) *cobra.Command {
	return &cobra.Command{
		Use:   capability,
		Short: fmt.Sprintf("Evaluate a %s review read from stdin", capability),
		Args:  cobra.NoArgs,
		// Faults are reported by main in their own format.
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			log.Setup()
			return serve(modules.Default, capability, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// serve runs one invocation of capability.
func serve(r *dispatch.Registry, capability string, in io.Reader, out io.Writer) error {
	return r.Serve(capability, in, out)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		dispatch.Fail(os.Stderr, err)
		os.Exit(1)
	}
}
