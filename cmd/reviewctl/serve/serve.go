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

// Package serve implements "reviewctl serve", which exposes the modules as
// Kubernetes webhooks.
package serve

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
	"kpt.dev/kubereview/pkg/modules"
	"kpt.dev/kubereview/pkg/webhook"
)

var (
	configPath    string
	listenAddress string
)

func init() {
	Cmd.Flags().StringVar(&configPath, "config", "",
		`Server configuration, in YAML or JSON. Defaults apply if unset.`)
	Cmd.Flags().StringVar(&listenAddress, "listen-address", "",
		`The host:port to listen on. Overrides the configuration.`)
}

// Cmd is the Cobra object representing the serve command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the modules as admission, authentication and authorization webhooks",
	Long: `Serves the modules as Kubernetes webhooks:

  ` + webhook.ValidatePath + `      validating admission (AdmissionReview)
  ` + webhook.MutatePath + `        mutating admission (AdmissionReview, JSONPatch patches)
  ` + webhook.AuthenticatePath + `  token authentication (TokenReview)
  ` + webhook.AuthorizePath + `     authorization (SubjectAccessReview)
  ` + webhook.MetricsPath + `       Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.SilenceUsage = true

		cfg, err := webhook.LoadConfig(configPath)
		if err != nil {
			return err
		}
		if listenAddress != "" {
			cfg.ListenAddress = listenAddress
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		// The API server only applies JSONPatch patches.
		srv := webhook.NewServer(cfg, modules.NewRegistry(reviewv1.PatchTypeJSONPatch), reg)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := srv.ListenAndServe(ctx); err != nil {
			return err
		}
		klog.Info("Webhook server stopped")
		return nil
	},
}
