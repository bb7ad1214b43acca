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
	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
	"kpt.dev/kubereview/pkg/codec"
	"kpt.dev/kubereview/pkg/dispatch"
	"kpt.dev/kubereview/pkg/settings"
)

var (
	_ dispatch.Handler = &Validator[struct{}]{}
	_ dispatch.Handler = &Mutator[struct{}]{}
)

func decodeReview(req *codec.Request) (*reviewv1.AdmissionReview, error) {
	ar := &reviewv1.AdmissionReview{}
	if err := codec.Decode(req.Request, ar, "admission review"); err != nil {
		return nil, err
	}
	return ar, nil
}

// Handle implements dispatch.Handler.
func (v *Validator[S]) Handle(req *codec.Request) (interface{}, error) {
	ar, err := decodeReview(req)
	if err != nil {
		return nil, err
	}
	s, err := settings.Resolve(req, v.Defaults)
	if err != nil {
		return nil, err
	}
	return v.Review(ar, s)
}

// Handle implements dispatch.Handler.
func (m *Mutator[S]) Handle(req *codec.Request) (interface{}, error) {
	ar, err := decodeReview(req)
	if err != nil {
		return nil, err
	}
	s, err := settings.Resolve(req, m.Defaults)
	if err != nil {
		return nil, err
	}
	return m.Review(ar, s)
}
