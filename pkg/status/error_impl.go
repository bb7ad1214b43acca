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

package status

import "github.com/pkg/errors"

type baseErrorImpl struct {
	code string
}

var _ Error = baseErrorImpl{}

// Error implements error.
func (e baseErrorImpl) Error() string {
	return format(e)
}

// Code implements Error.
func (e baseErrorImpl) Code() string {
	return e.code
}

// Body implements Error.
func (e baseErrorImpl) Body() string {
	return ""
}

// Cause implements Error.
func (e baseErrorImpl) Cause() error {
	return nil
}

type messageErrorImpl struct {
	underlying Error
	message    string
}

var _ Error = messageErrorImpl{}

// Error implements error.
func (m messageErrorImpl) Error() string {
	return format(m)
}

// Code implements Error.
func (m messageErrorImpl) Code() string {
	return m.underlying.Code()
}

// Body implements Error.
func (m messageErrorImpl) Body() string {
	return formatBody(m.underlying.Body(), ": ", m.message)
}

// Cause implements Error.
func (m messageErrorImpl) Cause() error {
	return m.underlying.Cause()
}

// Unwrap lets the standard library walk the chain.
func (m messageErrorImpl) Unwrap() error {
	return m.Cause()
}

type wrappedErrorImpl struct {
	underlying Error
	wrapped    error
}

var _ Error = wrappedErrorImpl{}

// Error implements error.
func (w wrappedErrorImpl) Error() string {
	return format(w)
}

// Code implements Error.
func (w wrappedErrorImpl) Code() string {
	return w.underlying.Code()
}

// Body implements Error.
func (w wrappedErrorImpl) Body() string {
	return formatBody(w.underlying.Body(), ": ", w.wrapped.Error())
}

// Cause implements Error.
func (w wrappedErrorImpl) Cause() error {
	return errors.Cause(w.wrapped)
}

// Unwrap lets the standard library walk the chain.
func (w wrappedErrorImpl) Unwrap() error {
	return w.wrapped
}
