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

//go:build wasip1

package main

import (
	"os"

	"kpt.dev/kubereview/pkg/dispatch"
	"kpt.dev/kubereview/pkg/modules"
)

// export evaluates capability over the module's stdin and stdout. A fault
// exits the instance with status 1, which the host sees as a failed call.
func export(capability string) {
	if err := serve(modules.Default, capability, os.Stdin, os.Stdout); err != nil {
		dispatch.Fail(os.Stderr, err)
		os.Exit(1)
	}
}

//go:wasmexport validate
func validate() { export(dispatch.Validate) }

//go:wasmexport mutate
func mutate() { export(dispatch.Mutate) }

//go:wasmexport authn
func authn() { export(dispatch.Authn) }

//go:wasmexport authz
func authz() { export(dispatch.Authz) }
