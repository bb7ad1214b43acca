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
	"sort"
	"sync"
)

// ErrorBuilders handle the oft-duplicated logic we use for generating error
// messages.
//
// Each fault has a unique code, "KRV" followed by four digits. Construct a new
// ErrorBuilder by passing a code to NewErrorBuilder. If the code is not unique
// the call panics when packages are loaded, so duplicate codes can never ship.
//
//	var myErrorBuilder = NewErrorBuilder("1234").Sprint("a coloring problem")
//
// Libraries should keep ErrorBuilders package private and expose functions
// that take the correct number and position of formatting arguments.
//
//	func MyError(color string) Error {
//	  return myErrorBuilder.Sprintf("problem with color %q", color).Build()
//	}
type ErrorBuilder interface {
	// Build returns the constructed Error.
	Build() Error

	// Sprint wraps the ErrorBuilder with a message, and returns the result.
	Sprint(message string) ErrorBuilder

	// Sprintf wraps the ErrorBuilder with a formatted message, and returns the result.
	Sprintf(format string, a ...interface{}) ErrorBuilder

	// Wrap wraps toWrap with the ErrorBuilder. The resulting Error returns
	// toWrap if Cause() is called. If toWrap is nil, the final Error returned by
	// Build() is nil.
	Wrap(toWrap error) ErrorBuilder
}

var (
	codesMu sync.Mutex
	codes   = map[string]bool{}
)

// register marks code as used. Panics on a collision.
func register(code string) {
	codesMu.Lock()
	defer codesMu.Unlock()
	if codes[code] {
		panic(fmt.Sprintf("duplicate error code %s%s", codePrefix, code))
	}
	codes[code] = true
}

// Codes returns every registered error code, sorted.
func Codes() []string {
	codesMu.Lock()
	defer codesMu.Unlock()
	result := make([]string, 0, len(codes))
	for code := range codes {
		result = append(result, code)
	}
	sort.Strings(result)
	return result
}

// NewErrorBuilder returns an ErrorBuilder that can be used to generate errors.
// Registers this call with the passed unique code. Panics if there is an error
// code collision.
func NewErrorBuilder(code string) ErrorBuilder {
	register(code)
	return errorBuilder{error: baseErrorImpl{code: code}}
}

type errorBuilder struct {
	error Error
}

// Build implements ErrorBuilder.
func (eb errorBuilder) Build() Error {
	return eb.error
}

// Sprint implements ErrorBuilder.
func (eb errorBuilder) Sprint(message string) ErrorBuilder {
	return errorBuilder{error: messageErrorImpl{
		underlying: eb.error,
		message:    message,
	}}
}

// Sprintf implements ErrorBuilder.
func (eb errorBuilder) Sprintf(format string, a ...interface{}) ErrorBuilder {
	return eb.Sprint(fmt.Sprintf(format, a...))
}

// Wrap implements ErrorBuilder.
func (eb errorBuilder) Wrap(toWrap error) ErrorBuilder {
	if toWrap == nil {
		return nilErrorBuilder{}
	}
	if inner, ok := toWrap.(Error); ok && inner.Code() == eb.error.Code() {
		reportMisuse(fmt.Sprintf("wrapping %s%s error in an error with the same code: %v",
			codePrefix, inner.Code(), toWrap))
	}
	return errorBuilder{error: wrappedErrorImpl{
		underlying: eb.error,
		wrapped:    toWrap,
	}}
}

// nilErrorBuilder represents an ErrorBuilder that will return nil when built.
type nilErrorBuilder struct{}

// Build implements ErrorBuilder.
func (n nilErrorBuilder) Build() Error {
	return nil
}

// Sprint implements ErrorBuilder.
func (n nilErrorBuilder) Sprint(string) ErrorBuilder {
	return n
}

// Sprintf implements ErrorBuilder.
func (n nilErrorBuilder) Sprintf(string, ...interface{}) ErrorBuilder {
	return n
}

// Wrap implements ErrorBuilder.
func (n nilErrorBuilder) Wrap(error) ErrorBuilder {
	return n
}
