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

// Package dispatch is the boundary a host invokes: it reads one request
// document, runs the decision a capability names and writes one response
// document.
//
// An invocation either writes its complete response or writes nothing. Faults
// are returned to the caller, which reports them to the host out of band.
package dispatch

import (
	"fmt"
	"io"
	"io/ioutil"

	"github.com/davecgh/go-spew/spew"
	"k8s.io/klog/v2"

	"kpt.dev/kubereview/pkg/codec"
	"kpt.dev/kubereview/pkg/status"
)

// The capabilities a review module may export.
const (
	Validate = "validate"
	Mutate   = "mutate"
	Authn    = "authn"
	Authz    = "authz"
)

// Handler evaluates the review in a request document and returns the review
// to write back.
type Handler interface {
	Handle(req *codec.Request) (interface{}, error)
}

// HandlerFunc adapts a function to a Handler.
type HandlerFunc func(req *codec.Request) (interface{}, error)

var _ Handler = HandlerFunc(nil)

// Handle implements Handler.
func (f HandlerFunc) Handle(req *codec.Request) (interface{}, error) {
	return f(req)
}

// Evaluate runs h on an encoded request document and returns the encoded
// response document.
func Evaluate(h Handler, payload []byte) (result []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = status.InternalErrorf("decision panicked: %v", r)
		}
	}()

	if klog.V(4).Enabled() {
		klog.Infof("Request document: %s", payload)
	}
	req, err := codec.DecodeRequest(payload)
	if err != nil {
		return nil, err
	}
	resp, err := h.Handle(req)
	if err != nil {
		return nil, status.From(err)
	}
	klog.V(4).Infof("Response: %v", spew.Sdump(resp))
	return codec.EncodeResponse(resp)
}

// Serve reads one request document from in, runs h on it and writes the
// response document to out. Nothing is written to out unless h succeeds.
func Serve(h Handler, in io.Reader, out io.Writer) error {
	payload, err := ioutil.ReadAll(in)
	if err != nil {
		return status.DecodeError(err, "request stream")
	}
	result, err := Evaluate(h, payload)
	if err != nil {
		return err
	}
	if _, err := out.Write(result); err != nil {
		return status.EncodeError(err, "response stream")
	}
	return nil
}

// Fail reports a fault on w, in the form hosts expect on stderr.
func Fail(w io.Writer, err error) {
	statusErr := status.From(err)
	klog.Errorf("Review failed: %v", statusErr)
	_, _ = fmt.Fprintln(w, statusErr.Error())
}
