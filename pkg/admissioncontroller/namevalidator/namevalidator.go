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

// Package namevalidator is a validating admission module that guards a
// namespace: the only pod it admits there is the one with the allowed name.
// Pods in other namespaces are always admitted.
package namevalidator

import (
	"fmt"

	corev1 "k8s.io/api/core/v1"

	"kpt.dev/kubereview/pkg/admissioncontroller"
	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
	"kpt.dev/kubereview/pkg/status"
)

// Settings configure the guarded namespace.
type Settings struct {
	// Namespace is the guarded namespace.
	Namespace string `json:"namespace" validate:"required"`
	// AllowedName is the name of the only pod admitted in Namespace.
	AllowedName string `json:"allowedName" validate:"required"`
}

// DefaultSettings guard namespace "default", admitting only
// "allowed-pod-name".
func DefaultSettings() Settings {
	return Settings{
		Namespace:   "default",
		AllowedName: "allowed-pod-name",
	}
}

// Validate decides whether the pod under admission may be admitted. The pod
// must carry both a namespace and a name.
func Validate(req *reviewv1.AdmissionRequest, s Settings) (*admissioncontroller.Verdict, error) {
	pod := &corev1.Pod{}
	if err := admissioncontroller.ObjectInto(req, pod); err != nil {
		return nil, err
	}
	if pod.Namespace == "" {
		return nil, status.MissingFieldError("request.object.metadata.namespace")
	}
	if pod.Name == "" {
		return nil, status.MissingFieldError("request.object.metadata.name")
	}

	if pod.Namespace == s.Namespace && pod.Name != s.AllowedName {
		return admissioncontroller.Deny(fmt.Sprintf(
			"pod %q is not allowed in namespace %q, only %q is", pod.Name, pod.Namespace, s.AllowedName)), nil
	}
	return admissioncontroller.Allow(), nil
}

// New returns the module.
func New() *admissioncontroller.Validator[Settings] {
	return &admissioncontroller.Validator[Settings]{
		Validate: Validate,
		Defaults: DefaultSettings,
	}
}
