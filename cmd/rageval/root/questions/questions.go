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

// Package questions implements the rageval questions verbs.
package questions

import (
	"github.com/spf13/cobra"

	"google.golang.org/rageval/cmd/rageval/root"
	"google.golang.org/rageval/questionset"
)

// QuestionsCmd groups the question-set verbs.
var QuestionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Inspect cached question sets",
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List question sets, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		lib := questionset.NewLibrary(root.Config().QuestionsDir)
		infos, err := lib.List(cmd.Context())
		if err != nil {
			return err
		}
		return root.PrintJSON(infos)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <set-id>",
	Short: "Print one question set",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		lib := questionset.NewLibrary(root.Config().QuestionsDir)
		qs, err := lib.Load(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return root.PrintJSON(qs)
	},
}

func init() {
	root.RootCmd.AddCommand(QuestionsCmd)
	QuestionsCmd.AddCommand(listCmd, showCmd)
}
