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

// Package authorizer holds the contract of a subject access review module:
// given a subject and the action it attempts, decide whether the action is
// allowed, explicitly denied, or neither.
package authorizer

import (
	"github.com/davecgh/go-spew/spew"
	"k8s.io/klog/v2"
	"k8s.io/utils/pointer"

	"kpt.dev/kubereview/pkg/api/review"
	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
	"kpt.dev/kubereview/pkg/codec"
	"kpt.dev/kubereview/pkg/dispatch"
	"kpt.dev/kubereview/pkg/settings"
	"kpt.dev/kubereview/pkg/status"
)

// AccessReviewer reviews a subject access review with its default settings.
type AccessReviewer interface {
	ReviewAccess(sar *reviewv1.SubjectAccessReview) (*reviewv1.SubjectAccessReview, error)
}

// AuthorizeFunc decides on the action described by attrs. It must be a pure
// function of its arguments.
type AuthorizeFunc[S any] func(attrs *Attributes, settings S) (*reviewv1.SubjectAccessReviewStatus, error)

// Authorizer is a subject access review module with settings of type S.
type Authorizer[S any] struct {
	Authorize AuthorizeFunc[S]
	// Defaults returns the settings used when none are supplied.
	Defaults func() S
}

var (
	_ AccessReviewer   = &Authorizer[struct{}]{}
	_ dispatch.Handler = &Authorizer[struct{}]{}
)

// Allow returns a status allowing the action.
func Allow(reason string) *reviewv1.SubjectAccessReviewStatus {
	return &reviewv1.SubjectAccessReviewStatus{Allowed: true, Reason: reason}
}

// NoOpinion returns a status that neither allows nor denies the action, leaving
// the decision to other authorizers.
func NoOpinion(reason string) *reviewv1.SubjectAccessReviewStatus {
	return &reviewv1.SubjectAccessReviewStatus{Allowed: false, Reason: reason}
}

// Deny returns a status explicitly denying the action.
func Deny(reason string) *reviewv1.SubjectAccessReviewStatus {
	return &reviewv1.SubjectAccessReviewStatus{Allowed: false, Denied: pointer.Bool(true), Reason: reason}
}

// Review decides on sar with the passed settings.
func (a *Authorizer[S]) Review(sar *reviewv1.SubjectAccessReview, s S) (*reviewv1.SubjectAccessReview, error) {
	if sar == nil || sar.Spec == nil {
		return nil, status.MissingFieldError("spec")
	}
	result, err := a.Authorize(NewAttributes(sar.Spec), s)
	if err != nil {
		return nil, err
	}
	switch {
	case result == nil:
		return nil, status.InternalError("authorization returned no verdict")
	case result.Allowed && pointer.BoolDeref(result.Denied, false):
		return nil, status.InternalError("authorization both allowed and denied the action")
	}
	klog.V(4).Infof("Authorize: request=%v, status=%v", spew.Sdump(sar.Spec), spew.Sdump(result))

	out := &reviewv1.SubjectAccessReview{
		TypeMeta: reviewv1.ResponseTypeMeta(sar.TypeMeta, review.SubjectAccessReviewKind, review.AuthorizationAPIVersion),
		Status:   result,
	}
	if sar.Metadata != nil && sar.Metadata.UID != "" {
		out.Metadata = &reviewv1.ObjectMeta{UID: sar.Metadata.UID}
	}
	return out, nil
}

// ReviewAccess implements AccessReviewer.
func (a *Authorizer[S]) ReviewAccess(sar *reviewv1.SubjectAccessReview) (*reviewv1.SubjectAccessReview, error) {
	return a.Review(sar, a.Defaults())
}

// Handle implements dispatch.Handler.
func (a *Authorizer[S]) Handle(req *codec.Request) (interface{}, error) {
	sar := &reviewv1.SubjectAccessReview{}
	if err := codec.Decode(req.Request, sar, "subject access review"); err != nil {
		return nil, err
	}
	s, err := settings.Resolve(req, a.Defaults)
	if err != nil {
		return nil, err
	}
	return a.Review(sar, s)
}
