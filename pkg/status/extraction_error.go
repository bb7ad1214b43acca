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

import "fmt"

// ExtractionErrorCode is the error code for a field the decision depends on
// that is absent or carries an invalid value.
const ExtractionErrorCode = "2002"

var extractionErrorBuilder = NewErrorBuilder(ExtractionErrorCode)

// MissingFieldError reports that a required field is absent from the review.
func MissingFieldError(field string) Error {
	return extractionErrorBuilder.Sprintf("required field %q is missing", field).Build()
}

// ExtractionError reports that the named field holds a value the decision
// cannot use.
func ExtractionError(err error, field string) Error {
	return extractionErrorBuilder.Sprintf("invalid value for field %q", field).Wrap(err).Build()
}

// ExtractionErrorf returns an extraction fault with a formatted message.
func ExtractionErrorf(format string, a ...interface{}) Error {
	return extractionErrorBuilder.Sprint(fmt.Sprintf(format, a...)).Build()
}
