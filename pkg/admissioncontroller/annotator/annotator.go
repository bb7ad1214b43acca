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

// Package annotator is a mutating admission module that adds a fixed set of
// annotations to every pod it admits.
package annotator

import (
	corev1 "k8s.io/api/core/v1"

	"kpt.dev/kubereview/pkg/admissioncontroller"
	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
)

// MutatedAnnotation is the annotation set by default.
const MutatedAnnotation = "kubereview.dev/mutated"

// Settings list the annotations to add.
type Settings struct {
	// Annotations overwrite existing annotations with the same key.
	Annotations map[string]string `json:"annotations" validate:"required"`
}

// DefaultSettings add MutatedAnnotation with value "true".
func DefaultSettings() Settings {
	return Settings{
		Annotations: map[string]string{MutatedAnnotation: "true"},
	}
}

// Mutate admits the pod under admission with the annotations of s merged
// into its own.
func Mutate(req *reviewv1.AdmissionRequest, s Settings) (*admissioncontroller.Mutation, error) {
	pod := &corev1.Pod{}
	if err := admissioncontroller.ObjectInto(req, pod); err != nil {
		return nil, err
	}
	if pod.Annotations == nil && len(s.Annotations) > 0 {
		pod.Annotations = make(map[string]string, len(s.Annotations))
	}
	for k, v := range s.Annotations {
		pod.Annotations[k] = v
	}
	return &admissioncontroller.Mutation{
		Verdict: *admissioncontroller.Allow(),
		Object:  pod,
	}, nil
}

// New returns the module, emitting patches of type patchType.
func New(patchType reviewv1.PatchType) *admissioncontroller.Mutator[Settings] {
	return &admissioncontroller.Mutator[Settings]{
		Mutate:    Mutate,
		Defaults:  DefaultSettings,
		PatchType: patchType,
	}
}
