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

package log

import (
	"flag"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"

	"kpt.dev/kubereview/pkg/version"
)

// AddFlags registers the klog flags on fs.
func AddFlags(fs *pflag.FlagSet) {
	goFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(goFlags)
	fs.AddGoFlagSet(goFlags)
}

// Setup logs the preamble of kubereview binaries.
func Setup() {
	klog.V(1).Infof("Build Version: %s", version.VERSION)
}
