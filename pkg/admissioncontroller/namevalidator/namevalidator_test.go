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

package namevalidator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"k8s.io/apimachinery/pkg/runtime"

	"kpt.dev/kubereview/pkg/admissioncontroller"
	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
	"kpt.dev/kubereview/pkg/status"
)

func podRequest(pod string) *reviewv1.AdmissionRequest {
	return &reviewv1.AdmissionRequest{
		UID:    "705ab4f5-6393-11e8-b7cc-42010a800002",
		Object: &runtime.RawExtension{Raw: []byte(pod)},
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name     string
		pod      string
		settings Settings
		want     bool
		wantCode string
	}{
		{
			name:     "allowed name in guarded namespace",
			pod:      `{"metadata":{"name":"allowed-pod-name","namespace":"default"}}`,
			settings: DefaultSettings(),
			want:     true,
		},
		{
			name:     "other name in guarded namespace",
			pod:      `{"metadata":{"name":"my-pod","namespace":"default"}}`,
			settings: DefaultSettings(),
			want:     false,
		},
		{
			name:     "other namespace",
			pod:      `{"metadata":{"name":"my-pod","namespace":"kube-system"}}`,
			settings: DefaultSettings(),
			want:     true,
		},
		{
			name:     "custom settings",
			pod:      `{"metadata":{"name":"my-pod","namespace":"prod"}}`,
			settings: Settings{Namespace: "prod", AllowedName: "blessed"},
			want:     false,
		},
		{
			name:     "missing namespace",
			pod:      `{"metadata":{"name":"my-pod"}}`,
			settings: DefaultSettings(),
			wantCode: status.ExtractionErrorCode,
		},
		{
			name:     "missing name",
			pod:      `{"metadata":{"namespace":"default"}}`,
			settings: DefaultSettings(),
			wantCode: status.ExtractionErrorCode,
		},
		{
			name:     "not a pod",
			pod:      `{"metadata":"pod"}`,
			settings: DefaultSettings(),
			wantCode: status.ExtractionErrorCode,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Validate(podRequest(tc.pod), tc.settings)
			if tc.wantCode != "" {
				if !status.IsCode(err, tc.wantCode) {
					t.Errorf("got error %v, want code %s", err, tc.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.Allowed != tc.want {
				t.Errorf("got allowed=%t, want %t", got.Allowed, tc.want)
			}
		})
	}
}

func TestValidate_IsPure(t *testing.T) {
	req := podRequest(`{"metadata":{"name":"my-pod","namespace":"default"}}`)
	first, err := Validate(req, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	second, err := Validate(req, DefaultSettings())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Error(diff)
	}
}

func TestNew(t *testing.T) {
	ar := &reviewv1.AdmissionReview{
		Request: podRequest(`{"metadata":{"name":"my-pod","namespace":"default"}}`),
	}
	got, err := New().Admit(ar)
	if err != nil {
		t.Fatal(err)
	}
	want := admissioncontroller.Deny(`pod "my-pod" is not allowed in namespace "default", only "allowed-pod-name" is`)
	if diff := cmp.Diff(want.Result, got.Response.Result); diff != "" {
		t.Error(diff)
	}
	if got.Response.UID != ar.Request.UID {
		t.Errorf("got uid %q, want %q", got.Response.UID, ar.Request.UID)
	}
	if got.Response.Patch != nil || got.Response.PatchType != nil {
		t.Errorf("validating response carries a patch: %+v", got.Response)
	}
}
