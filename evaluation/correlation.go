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

import "math"

// CorrelationMatrix holds pairwise correlation coefficients between every
// metric observed in a run's individual-score data. MetricIDs preserves
// first-seen order; Matrix[i][j] is the coefficient between MetricIDs[i] and
// MetricIDs[j], with the diagonal fixed at 1.
//
// The matrix is not guaranteed to be symmetric: each ordered pair is
// computed independently over a positional alignment of the two metrics'
// score sequences (see ComputeCorrelationMatrix).
type CorrelationMatrix struct {
	MetricIDs []MetricID  `json:"metric_ids"`
	Matrix    [][]float64 `json:"matrix"`
}

// ComputeCorrelationMatrix builds the metric correlation matrix from a run's
// flattened individual scores. Scores are grouped by metric id in first-seen
// order; each ordered pair of distinct metrics is correlated by aligning the
// two groups positionally and truncating to the shorter length. An aligned
// length of one or less, or zero variance on either side, yields 0 rather
// than NaN. No individual scores yield an empty matrix.
func ComputeCorrelationMatrix(cases []ScoredCase) *CorrelationMatrix {
	var order []MetricID
	groups := make(map[MetricID][]float64)
	for _, c := range cases {
		if _, seen := groups[c.MetricID]; !seen {
			order = append(order, c.MetricID)
		}
		groups[c.MetricID] = append(groups[c.MetricID], c.Score)
	}

	matrix := make([][]float64, len(order))
	for i, mi := range order {
		matrix[i] = make([]float64, len(order))
		for j, mj := range order {
			if i == j {
				matrix[i][j] = 1
				continue
			}
			matrix[i][j] = pearson(groups[mi], groups[mj])
		}
	}

	return &CorrelationMatrix{MetricIDs: order, Matrix: matrix}
}

// pearson computes the Pearson coefficient over the first min(len(x),
// len(y)) elements using the population mean and variance of exactly that
// window.
func pearson(x, y []float64) float64 {
	n := min(len(x), len(y))
	if n <= 1 {
		return 0
	}
	x, y = x[:n], y[:n]

	mx, my := mean(x), mean(y)
	var cov, varX, varY float64
	for k := range n {
		dx := x[k] - mx
		dy := y[k] - my
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}
