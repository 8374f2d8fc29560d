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

package storage

import "github.com/google/jsonschema-go/jsonschema"

// runSchema describes the stored run payload. Strict-mode repositories
// validate against it before decoding so that structural damage (a goals
// object instead of an array, a string score) is reported as such instead
// of silently decoding to zero values.
//
// Scores are deliberately not range-constrained: some metrics legitimately
// report values outside [0,1] and the analytics pass them through.
var runSchema = &jsonschema.Schema{
	Type:     "object",
	Required: []string{"overall_score", "goals"},
	Properties: map[string]*jsonschema.Schema{
		"overall_score": {Type: "number"},
		"goals": {
			Type: "array",
			Items: &jsonschema.Schema{
				Type:     "object",
				Required: []string{"name", "score"},
				Properties: map[string]*jsonschema.Schema{
					"name":   {Type: "string"},
					"score":  {Type: "number"},
					"weight": {Type: "number"},
					"questions": {
						Type: "array",
						Items: &jsonschema.Schema{
							Type:     "object",
							Required: []string{"text"},
							Properties: map[string]*jsonschema.Schema{
								"text":   {Type: "string"},
								"score":  {Type: "number"},
								"weight": {Type: "number"},
								"metrics": {
									Type: "array",
									Items: &jsonschema.Schema{
										Type:     "object",
										Required: []string{"id", "value"},
										Properties: map[string]*jsonschema.Schema{
											"id":     {Type: "string"},
											"value":  {Type: "number"},
											"weight": {Type: "number"},
											"individual_scores": {
												Type: "array",
												Items: &jsonschema.Schema{
													Type:     "object",
													Required: []string{"query", "score"},
													Properties: map[string]*jsonschema.Schema{
														"query":            {Type: "string"},
														"generated_answer": {Type: "string"},
														"question_type":    {Type: "string"},
														"score":            {Type: "number"},
													},
												},
											},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	},
}
