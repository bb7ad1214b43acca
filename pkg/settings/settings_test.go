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

package settings

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"k8s.io/utils/pointer"

	"kpt.dev/kubereview/pkg/codec"
	"kpt.dev/kubereview/pkg/status"
)

type testSettings struct {
	AllowAll *bool   `json:"allowAll" validate:"required"`
	Group    *string `json:"group,omitempty"`
}

func defaultTestSettings() testSettings {
	return testSettings{AllowAll: pointer.Bool(true)}
}

func TestResolve(t *testing.T) {
	testCases := []struct {
		name      string
		settings  string
		want      testSettings
		wantFault bool
		wantErr   string
	}{
		{
			name: "absent",
			want: defaultTestSettings(),
		},
		{
			name:     "null",
			settings: `null`,
			want:     defaultTestSettings(),
		},
		{
			name:     "supplied",
			settings: `{"allowAll":false,"group":"admins"}`,
			want:     testSettings{AllowAll: pointer.Bool(false), Group: pointer.String("admins")},
		},
		{
			name:     "defaults are not merged",
			settings: `{"allowAll":true}`,
			want:     testSettings{AllowAll: pointer.Bool(true)},
		},
		{
			name:     "missing required field",
			settings: `{"group":"admins"}`,
			wantErr:  `KRV2003: invalid settings: missing field "allowAll"`,
		},
		{
			name:     "unknown field",
			settings: `{"allowAll":true,"allow_all":true}`,
			wantErr:  `KRV2003: invalid settings: unknown field "allow_all"`,
		},
		{
			name:      "wrong type",
			settings:  `{"allowAll":"yes"}`,
			wantFault: true,
		},
		{
			name:      "not an object",
			settings:  `[1,2]`,
			wantFault: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := &codec.Request{Request: []byte(`{}`)}
			if tc.settings != "" {
				req.Settings = []byte(tc.settings)
			}
			got, err := Resolve(req, defaultTestSettings)
			if tc.wantFault || tc.wantErr != "" {
				if !status.IsCode(err, status.SettingsErrorCode) {
					t.Fatalf("got error %v, want code %s", err, status.SettingsErrorCode)
				}
				if tc.wantErr != "" && err.Error() != tc.wantErr {
					t.Errorf("got error %q, want %q", err.Error(), tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestResolve_DefaultsAreFresh(t *testing.T) {
	req := &codec.Request{Request: []byte(`{}`)}
	first, err := Resolve(req, defaultTestSettings)
	if err != nil {
		t.Fatal(err)
	}
	*first.AllowAll = false
	second, err := Resolve(req, defaultTestSettings)
	if err != nil {
		t.Fatal(err)
	}
	if !*second.AllowAll {
		t.Error("defaults changed across calls")
	}
}

func TestDecode_NonStruct(t *testing.T) {
	got, err := Decode[map[string]string]([]byte(`{"a":"b"}`))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]string{"a": "b"}, got); diff != "" {
		t.Error(diff)
	}
}
