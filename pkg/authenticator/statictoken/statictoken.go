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

// Package statictoken is a token review module that knows a single token and
// the identity it belongs to.
package statictoken

import (
	"crypto/subtle"

	reviewv1 "kpt.dev/kubereview/pkg/api/review/v1"
	"kpt.dev/kubereview/pkg/authenticator"
	"kpt.dev/kubereview/pkg/status"
)

// InvalidToken is the error reported for any token but the known one.
const InvalidToken = "invalid token"

// Settings name the known token and its identity.
type Settings struct {
	Token  string   `json:"token" validate:"required"`
	UID    string   `json:"uid"`
	User   string   `json:"user" validate:"required"`
	Groups []string `json:"groups"`
}

// DefaultSettings vouch for user "my-user" in group "system:masters" when
// presented with "my-test-token".
func DefaultSettings() Settings {
	return Settings{
		Token:  "my-test-token",
		UID:    "1337",
		User:   "my-user",
		Groups: []string{"system:masters"},
	}
}

// Authenticate compares the presented token with the known one.
func Authenticate(spec *reviewv1.TokenReviewSpec, s Settings) (*reviewv1.TokenReviewStatus, error) {
	if spec.Token == nil {
		return nil, status.MissingFieldError("spec.token")
	}
	if subtle.ConstantTimeCompare([]byte(*spec.Token), []byte(s.Token)) != 1 {
		return authenticator.Unauthenticated(InvalidToken), nil
	}
	return authenticator.Authenticated(reviewv1.UserInfo{
		Username: s.User,
		UID:      s.UID,
		Groups:   s.Groups,
	}, spec.Audiences), nil
}

// New returns the module.
func New() *authenticator.Authenticator[Settings] {
	return &authenticator.Authenticator[Settings]{
		Authenticate: Authenticate,
		Defaults:     DefaultSettings,
	}
}
