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

import (
	"fmt"

	"github.com/pkg/errors"
)

// InternalErrorCode is the error code for Internal.
const InternalErrorCode = "1000"

var internalErrorBuilder = NewErrorBuilder(InternalErrorCode).Sprint("internal error")

// InternalError errors represent conditions that should never happen, but that
// we check for so that we can control how the program terminates when these
// unexpected situations occur.
func InternalError(message string) Error {
	return InternalWrap(errors.New(message))
}

// InternalErrorf returns an Internal with a formatted message.
func InternalErrorf(format string, args ...interface{}) Error {
	return InternalError(fmt.Sprintf(format, args...))
}

// InternalWrap returns an Internal wrapping an error.
func InternalWrap(err error) Error {
	return internalErrorBuilder.Wrap(err).Build()
}
