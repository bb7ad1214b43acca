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

package annotator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"
	utiljson "sigs.k8s.io/json"

	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
	"kpt.dev/kubereview/pkg/patch"
	"kpt.dev/kubereview/pkg/status"
)

const testPod = `{"apiVersion":"v1","kind":"Pod","metadata":{"name":"my-pod","namespace":"default","annotations":{"existing":"yes"}},"spec":{"containers":[{"name":"c","image":"nginx"}]}}`

func review(pod string) *reviewv1.AdmissionReview {
	return &reviewv1.AdmissionReview{
		Request: &reviewv1.AdmissionRequest{
			UID:    "uid",
			Object: &runtime.RawExtension{Raw: []byte(pod)},
		},
	}
}

func decodePod(t *testing.T, data []byte) *corev1.Pod {
	t.Helper()
	pod := &corev1.Pod{}
	if err := utiljson.UnmarshalCaseSensitivePreserveInts(data, pod); err != nil {
		t.Fatalf("patched object is not a pod: %v", err)
	}
	return pod
}

func TestMutate_FullPatch(t *testing.T) {
	got, err := New(reviewv1.PatchTypeFull).Admit(review(testPod))
	if err != nil {
		t.Fatal(err)
	}
	if !got.Response.Allowed {
		t.Fatal("expected the pod to be admitted")
	}
	if got.Response.PatchType == nil || *got.Response.PatchType != reviewv1.PatchTypeFull {
		t.Fatalf("got patch type %v, want %q", got.Response.PatchType, reviewv1.PatchTypeFull)
	}

	pod := decodePod(t, got.Response.Patch)
	want := map[string]string{"existing": "yes", MutatedAnnotation: "true"}
	if diff := cmp.Diff(want, pod.Annotations); diff != "" {
		t.Error(diff)
	}
	if pod.Name != "my-pod" || pod.Spec.Containers[0].Image != "nginx" {
		t.Errorf("patch lost pod content: %+v", pod)
	}
}

func TestMutate_Idempotent(t *testing.T) {
	m := New(reviewv1.PatchTypeFull)
	first, err := m.Admit(review(testPod))
	if err != nil {
		t.Fatal(err)
	}
	second, err := m.Admit(review(string(first.Response.Patch)))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(string(first.Response.Patch), string(second.Response.Patch)); diff != "" {
		t.Error(diff)
	}
}

func TestMutate_PatchTypes(t *testing.T) {
	for _, pt := range patch.Types {
		t.Run(string(pt), func(t *testing.T) {
			got, err := New(pt).Review(review(testPod), Settings{Annotations: map[string]string{"existing": "overwritten"}})
			if err != nil {
				t.Fatal(err)
			}
			patched, err := patch.Apply(&patch.Patch{Bytes: got.Response.Patch, Type: *got.Response.PatchType}, []byte(testPod))
			if err != nil {
				t.Fatal(err)
			}
			want := map[string]string{"existing": "overwritten"}
			if diff := cmp.Diff(want, decodePod(t, patched).Annotations); diff != "" {
				t.Error(diff)
			}
		})
	}
}

func TestMutate_NoAnnotations(t *testing.T) {
	pod := `{"metadata":{"name":"bare"}}`
	got, err := Mutate(review(pod).Request, Settings{Annotations: map[string]string{}})
	if err != nil {
		t.Fatal(err)
	}
	if annotations := got.Object.(*corev1.Pod).Annotations; annotations != nil {
		t.Errorf("got annotations %v, want none", annotations)
	}
}

func TestMutate_MissingObject(t *testing.T) {
	ar := &reviewv1.AdmissionReview{Request: &reviewv1.AdmissionRequest{UID: "uid"}}
	_, err := New(reviewv1.PatchTypeFull).Admit(ar)
	if !status.IsCode(err, status.ExtractionErrorCode) {
		t.Errorf("got error %v, want code %s", err, status.ExtractionErrorCode)
	}
}
