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

// Package run implements "reviewctl run", which evaluates a review manifest
// against a module in-process.
package run

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	utilyaml "k8s.io/apimachinery/pkg/util/yaml"
	"k8s.io/klog/v2"
	"sigs.k8s.io/yaml"

	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
	"kpt.dev/kubereview/pkg/codec"
	"kpt.dev/kubereview/pkg/dispatch"
	"kpt.dev/kubereview/pkg/modules"
	"kpt.dev/kubereview/pkg/patch"
)

// Options configure one evaluation.
type Options struct {
	// Capability names the module to run.
	Capability string
	// ManifestPath is the YAML or JSON review to evaluate. "-" reads stdin.
	ManifestPath string
	// SettingsPath is an optional YAML or JSON settings document.
	SettingsPath string
	// PatchType is the encoding of the patches the mutating module emits.
	PatchType string
	// Output is "yaml" or "json".
	Output string
	// ShowPatched prints the object with the returned patch applied instead
	// of the response review.
	ShowPatched bool
}

var opts = Options{}

func init() {
	Cmd.Flags().StringVarP(&opts.ManifestPath, "filename", "f", "-",
		`Review manifest to evaluate, in YAML or JSON. "-" reads stdin.`)
	Cmd.Flags().StringVar(&opts.SettingsPath, "settings", "",
		`Settings document passed to the module, in YAML or JSON. The module's defaults apply if unset.`)
	Cmd.Flags().StringVar(&opts.PatchType, "patch-type", string(reviewv1.PatchTypeFull),
		fmt.Sprintf("Encoding of the patches emitted by the mutating module. One of %v.", patch.Types))
	Cmd.Flags().StringVarP(&opts.Output, "output", "o", "yaml",
		`Output format. Accepts 'yaml' and 'json'.`)
	Cmd.Flags().BoolVar(&opts.ShowPatched, "show-patched", false,
		`For mutate, print the reviewed object with the returned patch applied.`)
}

// Cmd is the Cobra object representing the run command.
var Cmd = &cobra.Command{
	Use:   "run CAPABILITY",
	Short: "Evaluates a review manifest against a module",
	Long: `Evaluates a review manifest against the module exporting CAPABILITY
(one of validate, mutate, authn, authz) and prints the response review.

A missing request uid (admission) or metadata.uid (authn, authz) is filled
with a random one.`,
	Example: `  reviewctl run validate -f pod-review.yaml
  reviewctl run mutate -f pod-review.yaml --patch-type JSONPatch --show-patched`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Don't show usage on error, as argument validation passed.
		cmd.SilenceUsage = true
		o := opts
		o.Capability = args[0]
		return Run(o, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

// Run evaluates the review described by o and prints the result to out.
func Run(o Options, stdin io.Reader, out io.Writer) error {
	switch o.Output {
	case "yaml", "json": // do nothing
	default:
		return errors.New("output must be 'yaml' or 'json'")
	}
	patchType, err := patch.ParseType(o.PatchType)
	if err != nil {
		return err
	}
	registry := modules.NewRegistry(patchType)

	review, err := readManifest(o.ManifestPath, stdin)
	if err != nil {
		return err
	}
	if err := fillUID(o.Capability, review); err != nil {
		return err
	}
	req := &codec.Request{}
	req.Request, err = json.Marshal(review.Object)
	if err != nil {
		return errors.Wrap(err, "encoding review")
	}
	if o.SettingsPath != "" {
		req.Settings, err = readSettings(o.SettingsPath)
		if err != nil {
			return err
		}
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return errors.Wrap(err, "encoding request document")
	}
	doc, err := registry.Call(o.Capability, payload)
	if err != nil {
		return err
	}
	klog.V(2).Infof("Response document: %s", doc)

	resp := struct {
		Response json.RawMessage `json:"response"`
	}{}
	if err := codec.Decode(doc, &resp, "response document"); err != nil {
		return err
	}
	result := []byte(resp.Response)
	if o.ShowPatched {
		result, err = patched(o.Capability, review, resp.Response)
		if err != nil {
			return err
		}
	}
	return write(out, o.Output, result)
}

func readManifest(path string, stdin io.Reader) (*unstructured.Unstructured, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "opening manifest %q", path)
		}
		defer f.Close()
		r = f
	}
	obj := map[string]interface{}{}
	if err := utilyaml.NewYAMLOrJSONDecoder(r, 4096).Decode(&obj); err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %q", path)
	}
	return &unstructured.Unstructured{Object: obj}, nil
}

func readSettings(path string) (json.RawMessage, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading settings %q", path)
	}
	settings, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing settings %q", path)
	}
	return settings, nil
}

// fillUID sets a random correlation id on review if it has none.
func fillUID(capability string, review *unstructured.Unstructured) error {
	var fields []string
	switch capability {
	case dispatch.Validate, dispatch.Mutate:
		fields = []string{"request", "uid"}
	case dispatch.Authn, dispatch.Authz:
		fields = []string{"metadata", "uid"}
	default:
		// The registry reports unknown capabilities.
		return nil
	}
	uid, found, err := unstructured.NestedString(review.Object, fields...)
	if err != nil {
		return errors.Wrap(err, "reading uid")
	}
	if found && uid != "" {
		return nil
	}
	if capability == dispatch.Validate || capability == dispatch.Mutate {
		if _, found := review.Object["request"]; !found {
			// Leave the missing request for the module to report.
			return nil
		}
	}
	return unstructured.SetNestedField(review.Object, uuid.New().String(), fields...)
}

// patched applies the patch of an admission response to the reviewed object.
func patched(capability string, review *unstructured.Unstructured, response []byte) ([]byte, error) {
	if capability != dispatch.Mutate {
		return nil, errors.Errorf("--show-patched only applies to %s", dispatch.Mutate)
	}
	ar := &reviewv1.AdmissionReview{}
	if err := codec.Decode(response, ar, "admission review"); err != nil {
		return nil, err
	}
	if ar.Response == nil || !ar.Response.Allowed {
		return nil, errors.New("request was denied, there is no patched object")
	}
	if ar.Response.PatchType == nil {
		return nil, errors.New("response carries no patch")
	}
	object, found, err := unstructured.NestedMap(review.Object, "request", "object")
	if err != nil || !found {
		return nil, errors.New("review has no request.object")
	}
	original, err := json.Marshal(object)
	if err != nil {
		return nil, errors.Wrap(err, "encoding request.object")
	}
	return patch.Apply(&patch.Patch{Bytes: ar.Response.Patch, Type: *ar.Response.PatchType}, original)
}

func write(out io.Writer, format string, data []byte) error {
	if format == "yaml" {
		y, err := yaml.JSONToYAML(data)
		if err != nil {
			return errors.Wrap(err, "converting output to YAML")
		}
		_, err = out.Write(y)
		return err
	}
	buf := &bytes.Buffer{}
	if err := json.Indent(buf, data, "", "  "); err != nil {
		return errors.Wrap(err, "formatting output")
	}
	buf.WriteString("\n")
	_, err := buf.WriteTo(out)
	return err
}
