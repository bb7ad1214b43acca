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

// Package authenticator holds the contract of a token review module: it
// reads the bearer token a client presented and vouches, or refuses to vouch,
// for an identity.
package authenticator

import (
	"k8s.io/klog/v2"
	"k8s.io/utils/pointer"

	"kpt.dev/kubereview/pkg/api/review"
	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
	"kpt.dev/kubereview/pkg/codec"
	"kpt.dev/kubereview/pkg/dispatch"
	"kpt.dev/kubereview/pkg/settings"
	"kpt.dev/kubereview/pkg/status"
)

// TokenReviewer reviews a token review with its default settings.
type TokenReviewer interface {
	ReviewToken(tr *reviewv1.TokenReview) (*reviewv1.TokenReview, error)
}

// AuthenticateFunc evaluates the token in spec. It must be a pure function of
// its arguments.
type AuthenticateFunc[S any] func(spec *reviewv1.TokenReviewSpec, settings S) (*reviewv1.TokenReviewStatus, error)

// Authenticator is a token review module with settings of type S.
type Authenticator[S any] struct {
	Authenticate AuthenticateFunc[S]
	// Defaults returns the settings used when none are supplied.
	Defaults func() S
}

var (
	_ TokenReviewer    = &Authenticator[struct{}]{}
	_ dispatch.Handler = &Authenticator[struct{}]{}
)

// Authenticated returns the status of a token that identifies user.
func Authenticated(user reviewv1.UserInfo, audiences []string) *reviewv1.TokenReviewStatus {
	return &reviewv1.TokenReviewStatus{
		Authenticated: pointer.Bool(true),
		User:          &user,
		Audiences:     audiences,
	}
}

// Unauthenticated returns the status of a token that identifies no one.
func Unauthenticated(reason string) *reviewv1.TokenReviewStatus {
	return &reviewv1.TokenReviewStatus{
		Authenticated: pointer.Bool(false),
		Error:         reason,
	}
}

// Review evaluates tr with the passed settings.
func (a *Authenticator[S]) Review(tr *reviewv1.TokenReview, s S) (*reviewv1.TokenReview, error) {
	if tr == nil || tr.Spec == nil {
		return nil, status.MissingFieldError("spec")
	}
	result, err := a.Authenticate(tr.Spec, s)
	if err != nil {
		return nil, err
	}
	switch {
	case result == nil || result.Authenticated == nil:
		return nil, status.InternalError("authentication returned no verdict")
	case result.User != nil && result.Error != "":
		return nil, status.InternalError("authentication returned both a user and an error")
	}
	klog.V(2).Infof("Token review %q: authenticated=%t", tr.MetadataUID(), *result.Authenticated)

	out := &reviewv1.TokenReview{
		TypeMeta: reviewv1.ResponseTypeMeta(tr.TypeMeta, review.TokenReviewKind, review.AuthenticationAPIVersion),
		Status:   result,
	}
	if tr.Metadata != nil && tr.Metadata.UID != "" {
		out.Metadata = &reviewv1.ObjectMeta{UID: tr.Metadata.UID}
	}
	return out, nil
}

// ReviewToken implements TokenReviewer.
func (a *Authenticator[S]) ReviewToken(tr *reviewv1.TokenReview) (*reviewv1.TokenReview, error) {
	return a.Review(tr, a.Defaults())
}

// Handle implements dispatch.Handler.
func (a *Authenticator[S]) Handle(req *codec.Request) (interface{}, error) {
	tr := &reviewv1.TokenReview{}
	if err := codec.Decode(req.Request, tr, "token review"); err != nil {
		return nil, err
	}
	s, err := settings.Resolve(req, a.Defaults)
	if err != nil {
		return nil, err
	}
	return a.Review(tr, s)
}
