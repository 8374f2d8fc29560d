// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// rageval is the command line front end for the evaluation analytics
// library. The verb packages register themselves with the root command on
// import.
package main

import (
	"google.golang.org/rageval/cmd/rageval/root"

	_ "google.golang.org/rageval/cmd/rageval/root/compare"
	_ "google.golang.org/rageval/cmd/rageval/root/plan"
	_ "google.golang.org/rageval/cmd/rageval/root/questions"
	_ "google.golang.org/rageval/cmd/rageval/root/runs"
	_ "google.golang.org/rageval/cmd/rageval/root/views"
)

func main() {
	root.Execute()
}
