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

package evaluation

// ComponentAverages are the category roll-ups of a run, each a percentage in
// [0,100]. The x100 conversion happens here and nowhere earlier; all stored
// scores stay in [0,1].
type ComponentAverages struct {
	Retrieval  float64 `json:"retrieval"`
	Generation float64 `json:"generation"`
	System     float64 `json:"system"`

	// Composite is the unweighted mean of the three category percentages.
	// Empty categories average in as 0, diluting the composite; this
	// mirrors the upstream dashboard and is kept for compatibility.
	Composite float64 `json:"composite"`
}

// ComputeComponentAverages rolls a run's metric summaries up into category
// percentages. A category with no metrics in the run yields 0; unclassified
// metric ids contribute to no category.
func ComputeComponentAverages(summary map[MetricID]MetricSummary) ComponentAverages {
	byCategory := make(map[Category][]float64, 3)
	for id, ms := range summary {
		cat := id.Category()
		if cat == CategoryUnclassified {
			continue
		}
		byCategory[cat] = append(byCategory[cat], ms.AverageScore)
	}

	retrieval := categoryPercent(byCategory[CategoryRetrieval])
	generation := categoryPercent(byCategory[CategoryGeneration])
	system := categoryPercent(byCategory[CategorySystem])

	return ComponentAverages{
		Retrieval:  retrieval,
		Generation: generation,
		System:     system,
		Composite:  (retrieval + generation + system) / 3,
	}
}

func categoryPercent(averages []float64) float64 {
	if len(averages) == 0 {
		return 0
	}
	return mean(averages) * 100
}
