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

// Package status defines the faults a review module can raise.
//
// Every fault aborts the invocation that raised it: the module writes no
// response and the host sees a failed call. Faults are never folded into a
// negative verdict, so a deny or an unauthenticated status always means the
// decision function actually ran.
package status

import (
	"github.com/pkg/errors"
)

// Error is a coded fault.
type Error interface {
	error

	// Code returns the four-digit code identifying the kind of fault.
	Code() string

	// Body returns the message of the Error without the KRV prefix.
	Body() string

	// Cause returns the innermost wrapped error, or nil.
	Cause() error
}

const codePrefix = "KRV"

// format formats the message of an Error consistently.
func format(err Error) string {
	return codePrefix + err.Code() + ": " + err.Body()
}

// formatBody joins two message fragments, dropping empty ones.
func formatBody(left, sep, right string) string {
	switch {
	case left == "":
		return right
	case right == "":
		return left
	default:
		return left + sep + right
	}
}

// CodeOf returns the code of the first status Error in err's chain, or the
// empty string if there is none.
func CodeOf(err error) string {
	var statusErr Error
	if errors.As(err, &statusErr) {
		return statusErr.Code()
	}
	return ""
}

// IsCode returns true if err is, or wraps, a status Error with the given code.
func IsCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// From converts err into a status Error. Errors that are already status
// Errors are returned as-is; anything else becomes an Undocumented error.
func From(err error) Error {
	if err == nil {
		return nil
	}
	var statusErr Error
	if errors.As(err, &statusErr) {
		return statusErr
	}
	return undocumented(err)
}
