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

package dispatch

import (
	"io"
	"sort"

	"k8s.io/klog/v2"

	"kpt.dev/kubereview/pkg/status"
)

// Registry is the table of capabilities a module exports. It is built once
// and never changes afterwards, so it is safe for concurrent use.
type Registry struct {
	handlers map[string]Handler
	names    []string
}

// NewRegistry returns a Registry exporting handlers under their keys.
func NewRegistry(handlers map[string]Handler) *Registry {
	r := &Registry{handlers: make(map[string]Handler, len(handlers))}
	for name, h := range handlers {
		if h == nil {
			klog.Warningf("Ignoring capability %q without a handler", name)
			continue
		}
		r.handlers[name] = h
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r
}

// Lookup returns the handler exported as name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Capabilities returns the exported names, sorted.
func (r *Registry) Capabilities() []string {
	return append([]string(nil), r.names...)
}

func (r *Registry) lookup(name string) (Handler, error) {
	h, ok := r.Lookup(name)
	if !ok {
		return nil, status.UnknownCapabilityError(name, r.names)
	}
	return h, nil
}

// Call invokes the capability name on an encoded request document.
func (r *Registry) Call(name string, payload []byte) ([]byte, error) {
	h, err := r.lookup(name)
	if err != nil {
		return nil, err
	}
	klog.V(2).Infof("Calling %q", name)
	return Evaluate(h, payload)
}

// Serve invokes the capability name with the request document in in, writing
// the response document to out.
func (r *Registry) Serve(name string, in io.Reader, out io.Writer) error {
	h, err := r.lookup(name)
	if err != nil {
		return err
	}
	klog.V(2).Infof("Serving %q", name)
	return Serve(h, in, out)
}
