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

// Package webhookconfig implements "reviewctl webhook-config", which prints
// the admission webhook configurations for a served kubereview.
package webhookconfig

import (
	"io"
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"kpt.dev/kubereview/pkg/webhook"
	"kpt.dev/kubereview/pkg/webhook/configuration"
)

var (
	options = configuration.Options{
		ValidatePath: webhook.ValidatePath,
		MutatePath:   webhook.MutatePath,
	}
	caBundlePath string
)

func init() {
	Cmd.Flags().StringVar(&options.ServiceName, "service-name", configuration.ShortName,
		`Name of the Service in front of "reviewctl serve".`)
	Cmd.Flags().StringVar(&options.ServiceNamespace, "service-namespace", "kube-system",
		`Namespace of the Service in front of "reviewctl serve".`)
	Cmd.Flags().Int32Var(&options.ServicePort, "service-port", 443,
		`Port of the Service in front of "reviewctl serve".`)
	Cmd.Flags().StringVar(&caBundlePath, "ca-bundle", "",
		`PEM file of the CA that signed the serving certificate.`)
	Cmd.Flags().BoolVar(&options.FailClosed, "fail-closed", false,
		`Reject requests when the webhook is unavailable or faults.`)
}

// Cmd is the Cobra object representing the webhook-config command.
var Cmd = &cobra.Command{
	Use:     "webhook-config",
	Short:   "Prints the ValidatingWebhookConfiguration and MutatingWebhookConfiguration for a served kubereview",
	Example: `  reviewctl webhook-config --ca-bundle ca.crt | kubectl apply -f -`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cmd.SilenceUsage = true
		o := options
		if caBundlePath != "" {
			ca, err := ioutil.ReadFile(caBundlePath)
			if err != nil {
				return errors.Wrapf(err, "reading CA bundle %q", caBundlePath)
			}
			o.CABundle = ca
		}
		return Print(cmd.OutOrStdout(), o)
	},
}

// Print writes both webhook configurations to out as a multi-document YAML
// stream.
func Print(out io.Writer, o configuration.Options) error {
	for i, obj := range []interface{}{configuration.Validating(o), configuration.Mutating(o)} {
		data, err := yaml.Marshal(obj)
		if err != nil {
			return errors.Wrap(err, "encoding webhook configuration")
		}
		if i > 0 {
			if _, err := io.WriteString(out, "---\n"); err != nil {
				return err
			}
		}
		if _, err := out.Write(data); err != nil {
			return err
		}
	}
	return nil
}
