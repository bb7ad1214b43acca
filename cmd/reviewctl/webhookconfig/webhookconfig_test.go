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

package webhookconfig

import (
	"bytes"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	admissionv1 "k8s.io/api/admissionregistration/v1"
	utilyaml "k8s.io/apimachinery/pkg/util/yaml"

	"kpt.dev/kubereview/pkg/webhook/configuration"
)

func TestPrint(t *testing.T) {
	o := configuration.Options{
		ServiceName:      "kubereview",
		ServiceNamespace: "kube-system",
		ServicePort:      443,
		ValidatePath:     "/validate",
		MutatePath:       "/mutate",
	}
	out := &bytes.Buffer{}
	if err := Print(out, o); err != nil {
		t.Fatal(err)
	}

	decoder := utilyaml.NewYAMLOrJSONDecoder(out, 4096)
	validating := &admissionv1.ValidatingWebhookConfiguration{}
	if err := decoder.Decode(validating); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(configuration.Validating(o), validating); diff != "" {
		t.Errorf("validating diff (-want +got):\n%s", diff)
	}
	mutating := &admissionv1.MutatingWebhookConfiguration{}
	if err := decoder.Decode(mutating); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(configuration.Mutating(o), mutating); diff != "" {
		t.Errorf("mutating diff (-want +got):\n%s", diff)
	}
	if err := decoder.Decode(&admissionv1.MutatingWebhookConfiguration{}); err != io.EOF {
		t.Errorf("got %v after two documents, want EOF", err)
	}
}
