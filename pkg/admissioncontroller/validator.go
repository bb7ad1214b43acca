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

package admissioncontroller

import (
	"k8s.io/klog/v2"

	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
	"kpt.dev/kubereview/pkg/status"
)

// ValidateFunc decides whether req is allowed. It must be a pure function of
// its arguments. A field it needs but cannot find is an extraction fault, never
// a denial.
type ValidateFunc[S any] func(req *reviewv1.AdmissionRequest, settings S) (*Verdict, error)

// Validator is a validating admission module with settings of type S.
type Validator[S any] struct {
	Validate ValidateFunc[S]
	// Defaults returns the settings used when none are supplied.
	Defaults func() S
}

var _ Admitter = &Validator[struct{}]{}

// Review runs the validation on ar with the passed settings. The response
// never carries a patch.
func (v *Validator[S]) Review(ar *reviewv1.AdmissionReview, settings S) (*reviewv1.AdmissionReview, error) {
	req, err := request(ar)
	if err != nil {
		return nil, err
	}
	verdict, err := v.Validate(req, settings)
	if err != nil {
		return nil, err
	}
	if verdict == nil {
		return nil, status.InternalError("validation returned no verdict")
	}
	klog.V(2).Infof("Admission decision for %s %s/%s: allowed=%t",
		req.Kind.Kind, req.Namespace, req.Name, verdict.Allowed)
	return response(ar, verdict), nil
}

// Admit implements Admitter.
func (v *Validator[S]) Admit(ar *reviewv1.AdmissionReview) (*reviewv1.AdmissionReview, error) {
	return v.Review(ar, v.Defaults())
}
