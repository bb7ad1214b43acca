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

package run

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/types"
	"sigs.k8s.io/yaml"

	"kpt.dev/kubereview/pkg/admissioncontroller/annotator"
	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
	"kpt.dev/kubereview/pkg/status"
)

const podReview = `
apiVersion: admission.k8s.io/v1
kind: AdmissionReview
request:
  uid: review-1
  kind:
    group: ""
    version: v1
    kind: Pod
  resource:
    group: ""
    version: v1
    resource: pods
  operation: CREATE
  object:
    apiVersion: v1
    kind: Pod
    metadata:
      name: allowed-pod-name
      namespace: default
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0644))
	return path
}

func defaultOptions(capability, manifest string) Options {
	return Options{
		Capability:   capability,
		ManifestPath: manifest,
		PatchType:    string(reviewv1.PatchTypeFull),
		Output:       "yaml",
	}
}

func TestRun_Validate(t *testing.T) {
	out := &bytes.Buffer{}
	o := defaultOptions("validate", writeFile(t, "review.yaml", podReview))
	require.NoError(t, Run(o, nil, out))

	got := &reviewv1.AdmissionReview{}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), got))
	want := &reviewv1.AdmissionReview{
		TypeMeta: reviewv1.TypeMeta{Kind: "AdmissionReview", APIVersion: "admission.k8s.io/v1"},
		Response: &reviewv1.AdmissionResponse{UID: "review-1", Allowed: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("response diff (-want +got):\n%s", diff)
	}
}

func TestRun_Stdin(t *testing.T) {
	out := &bytes.Buffer{}
	o := defaultOptions("validate", "-")
	o.Output = "json"
	require.NoError(t, Run(o, strings.NewReader(podReview), out))
	require.Contains(t, out.String(), `"allowed": true`)
}

func TestRun_Settings(t *testing.T) {
	manifest := writeFile(t, "review.json", `{"kind":"TokenReview","apiVersion":"authentication.k8s.io/v1","metadata":{"uid":"tr-1"},"spec":{"token":"T"}}`)
	settings := writeFile(t, "settings.yaml", "token: T\nuid: \"7\"\nuser: alice\ngroups: [dev]\n")

	out := &bytes.Buffer{}
	o := defaultOptions("authn", manifest)
	o.SettingsPath = settings
	o.Output = "json"
	require.NoError(t, Run(o, nil, out))

	got := &reviewv1.TokenReview{}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), got))
	require.NotNil(t, got.Status)
	require.True(t, *got.Status.Authenticated)
	want := &reviewv1.UserInfo{Username: "alice", UID: "7", Groups: []string{"dev"}}
	if diff := cmp.Diff(want, got.Status.User); diff != "" {
		t.Errorf("user diff (-want +got):\n%s", diff)
	}
	require.Equal(t, types.UID("tr-1"), got.Metadata.UID)
}

func TestRun_FillsUID(t *testing.T) {
	manifest := writeFile(t, "review.yaml", "kind: SubjectAccessReview\napiVersion: authorization.k8s.io/v1\nspec:\n  user: jane\n")
	out := &bytes.Buffer{}
	require.NoError(t, Run(defaultOptions("authz", manifest), nil, out))

	got := &reviewv1.SubjectAccessReview{}
	require.NoError(t, yaml.Unmarshal(out.Bytes(), got))
	require.NotNil(t, got.Metadata)
	_, err := uuid.Parse(string(got.Metadata.UID))
	require.NoError(t, err)
}

func TestRun_ShowPatched(t *testing.T) {
	for _, pt := range []reviewv1.PatchType{reviewv1.PatchTypeFull, reviewv1.PatchTypeJSONPatch, reviewv1.PatchTypeJSONMergePatch} {
		t.Run(string(pt), func(t *testing.T) {
			out := &bytes.Buffer{}
			o := defaultOptions("mutate", writeFile(t, "review.yaml", podReview))
			o.PatchType = string(pt)
			o.ShowPatched = true
			require.NoError(t, Run(o, nil, out))

			pod := &corev1.Pod{}
			require.NoError(t, yaml.Unmarshal(out.Bytes(), pod))
			require.Equal(t, "allowed-pod-name", pod.Name)
			require.Equal(t, "true", pod.Annotations[annotator.MutatedAnnotation])
		})
	}
}

func TestRun_Errors(t *testing.T) {
	manifest := writeFile(t, "review.yaml", podReview)
	testCases := []struct {
		name     string
		mutate   func(o *Options)
		wantCode string
	}{
		{
			name:     "unknown capability",
			mutate:   func(o *Options) { o.Capability = "audit" },
			wantCode: status.UnknownCapabilityErrorCode,
		},
		{
			name:     "invalid settings",
			mutate:   func(o *Options) { o.SettingsPath = writeFile(t, "settings.yaml", "namespace: default\n") },
			wantCode: status.SettingsErrorCode,
		},
		{
			name:   "unknown output",
			mutate: func(o *Options) { o.Output = "xml" },
		},
		{
			name:   "unknown patch type",
			mutate: func(o *Options) { o.PatchType = "Strategic" },
		},
		{
			name:   "show-patched outside mutate",
			mutate: func(o *Options) { o.ShowPatched = true },
		},
		{
			name:   "missing manifest",
			mutate: func(o *Options) { o.ManifestPath = filepath.Join(t.TempDir(), "absent.yaml") },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := defaultOptions("validate", manifest)
			tc.mutate(&o)
			out := &bytes.Buffer{}
			err := Run(o, nil, out)
			require.Error(t, err)
			if tc.wantCode != "" {
				require.True(t, status.IsCode(err, tc.wantCode), "got %v, want code %s", err, tc.wantCode)
			}
			require.Zero(t, out.Len())
		})
	}
}
