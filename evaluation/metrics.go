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

// MetricID identifies a specific evaluation metric.
//
// The vocabulary is closed: every metric the upstream pipeline emits belongs
// to exactly one of three categories (retrieval, generation, system).
// Identifiers outside the vocabulary still flow through the analytics
// untouched, but classify as CategoryUnclassified and contribute to no
// category average.
type MetricID string

const (
	// Retrieval metrics

	// MetricContextPrecision measures how relevant retrieved documents
	// are to the query.
	MetricContextPrecision MetricID = "context_precision"

	// MetricContextRecall measures completeness of retrieved relevant
	// information.
	MetricContextRecall MetricID = "context_recall"

	// MetricContextRelevance is an LLM-based evaluation of document
	// relevance to the query.
	MetricContextRelevance MetricID = "context_relevance"

	// MetricContextEntitiesRecall measures recall of important entities
	// in retrieved documents.
	MetricContextEntitiesRecall MetricID = "context_entities_recall"

	// MetricSemanticDiversity measures diversity of retrieved documents
	// to avoid redundancy.
	MetricSemanticDiversity MetricID = "semantic_diversity"

	// Generation metrics

	// MetricFaithfulness measures whether generated claims are supported
	// by the retrieved context.
	MetricFaithfulness MetricID = "faithfulness"

	// MetricAnswerRelevance evaluates how well the answer addresses the
	// user's query.
	MetricAnswerRelevance MetricID = "answer_relevance"

	// MetricAnswerCompleteness measures how completely the answer covers
	// all aspects of the query.
	MetricAnswerCompleteness MetricID = "answer_completeness"

	// MetricFactualConsistency detects hallucinations and measures
	// factual consistency.
	MetricFactualConsistency MetricID = "factual_consistency"

	// MetricBERTScore is the semantic similarity between the generated
	// answer and the context.
	MetricBERTScore MetricID = "bertscore"

	// MetricAttributionScore measures how well answers attribute
	// information to sources.
	MetricAttributionScore MetricID = "attribution_score"

	// MetricSelfConsistency measures internal consistency of generated
	// answers.
	MetricSelfConsistency MetricID = "self_consistency"

	// System metrics

	// MetricAnswerCorrectness compares generated answers against ground
	// truth.
	MetricAnswerCorrectness MetricID = "answer_correctness"

	// MetricMultiHopReasoning evaluates the ability to connect
	// information across multiple documents.
	MetricMultiHopReasoning MetricID = "multi_hop_reasoning"

	// MetricContextUtilization measures how effectively the system uses
	// the retrieved context.
	MetricContextUtilization MetricID = "context_utilization"
)

// AllMetrics returns the full metric vocabulary in category order.
func AllMetrics() []MetricID {
	return []MetricID{
		MetricContextPrecision,
		MetricContextRecall,
		MetricContextRelevance,
		MetricContextEntitiesRecall,
		MetricSemanticDiversity,
		MetricFaithfulness,
		MetricAnswerRelevance,
		MetricAnswerCompleteness,
		MetricFactualConsistency,
		MetricBERTScore,
		MetricAttributionScore,
		MetricSelfConsistency,
		MetricAnswerCorrectness,
		MetricMultiHopReasoning,
		MetricContextUtilization,
	}
}

// String returns the string representation of the metric id.
func (m MetricID) String() string {
	return string(m)
}

// Category groups metrics by the pipeline stage they evaluate.
type Category string

const (
	// CategoryRetrieval covers metrics scoring the retrieval stage.
	CategoryRetrieval Category = "retrieval"

	// CategoryGeneration covers metrics scoring the generation stage.
	CategoryGeneration Category = "generation"

	// CategorySystem covers end-to-end metrics.
	CategorySystem Category = "system"

	// CategoryUnclassified is the fallback for identifiers outside the
	// vocabulary.
	CategoryUnclassified Category = "unclassified"
)

// Category returns the fixed category a metric belongs to, or
// CategoryUnclassified for identifiers outside the vocabulary.
func (m MetricID) Category() Category {
	switch m {
	case MetricContextPrecision,
		MetricContextRecall,
		MetricContextRelevance,
		MetricContextEntitiesRecall,
		MetricSemanticDiversity:
		return CategoryRetrieval
	case MetricFaithfulness,
		MetricAnswerRelevance,
		MetricAnswerCompleteness,
		MetricFactualConsistency,
		MetricBERTScore,
		MetricAttributionScore,
		MetricSelfConsistency:
		return CategoryGeneration
	case MetricAnswerCorrectness,
		MetricMultiHopReasoning,
		MetricContextUtilization:
		return CategorySystem
	default:
		return CategoryUnclassified
	}
}

// MetricInfo carries the human-readable description of a metric.
type MetricInfo struct {
	Name        string
	Description string
	UseCases    []string
}

var metricInfo = map[MetricID]MetricInfo{
	MetricContextPrecision: {
		Name:        "Context Precision",
		Description: "Measures how relevant retrieved documents are to the query",
		UseCases:    []string{"document relevance", "retrieval quality", "precision of search results"},
	},
	MetricContextRecall: {
		Name:        "Context Recall",
		Description: "Measures completeness of retrieved relevant information",
		UseCases:    []string{"completeness of retrieval", "information coverage", "missing documents"},
	},
	MetricContextRelevance: {
		Name:        "Context Relevance",
		Description: "LLM-based evaluation of document relevance to query",
		UseCases:    []string{"semantic relevance", "contextual appropriateness", "query understanding"},
	},
	MetricContextEntitiesRecall: {
		Name:        "Context Entities Recall",
		Description: "Measures recall of important entities in retrieved documents",
		UseCases:    []string{"entity coverage", "important information recall", "named entity retrieval"},
	},
	MetricSemanticDiversity: {
		Name:        "Semantic Diversity",
		Description: "Measures diversity of retrieved documents to avoid redundancy",
		UseCases:    []string{"result diversity", "avoiding redundancy", "multiple perspectives"},
	},
	MetricFaithfulness: {
		Name:        "Faithfulness",
		Description: "Measures if generated claims are supported by retrieved context",
		UseCases:    []string{"factual accuracy", "grounding in context", "avoiding fabrication", "claim verification"},
	},
	MetricAnswerRelevance: {
		Name:        "Answer Relevance",
		Description: "Evaluates how well the answer addresses the user's query",
		UseCases:    []string{"query addressing", "response appropriateness", "answer completeness"},
	},
	MetricAnswerCompleteness: {
		Name:        "Answer Completeness",
		Description: "Measures how completely the answer addresses all aspects of the query",
		UseCases:    []string{"comprehensive answers", "multi-aspect coverage", "thoroughness"},
	},
	MetricFactualConsistency: {
		Name:        "Factual Consistency",
		Description: "Detects hallucinations and measures factual consistency",
		UseCases:    []string{"hallucination detection", "factual correctness", "avoiding made-up information"},
	},
	MetricBERTScore: {
		Name:        "BERTScore",
		Description: "Semantic similarity between generated answer and context",
		UseCases:    []string{"semantic similarity", "content alignment", "contextual consistency"},
	},
	MetricAttributionScore: {
		Name:        "Attribution Score",
		Description: "Measures how well answers attribute information to sources",
		UseCases:    []string{"source attribution", "verifiability", "transparency", "citation quality"},
	},
	MetricSelfConsistency: {
		Name:        "Self-Consistency",
		Description: "Measures internal consistency of generated answers",
		UseCases:    []string{"logical consistency", "avoiding contradictions", "coherent reasoning"},
	},
	MetricAnswerCorrectness: {
		Name:        "Answer Correctness",
		Description: "Compares generated answers against ground truth",
		UseCases:    []string{"accuracy against ground truth", "correctness verification", "benchmark comparison"},
	},
	MetricMultiHopReasoning: {
		Name:        "Multi-Hop Reasoning",
		Description: "Evaluates ability to connect information across multiple documents",
		UseCases:    []string{"complex reasoning", "information synthesis", "connecting facts"},
	},
	MetricContextUtilization: {
		Name:        "Context Utilization",
		Description: "Measures how effectively the system uses retrieved context",
		UseCases:    []string{"context usage", "information extraction", "retrieval effectiveness"},
	},
}

// Info returns the display metadata for a metric. The second return is false
// for identifiers outside the vocabulary.
func (m MetricID) Info() (MetricInfo, bool) {
	info, ok := metricInfo[m]
	return info, ok
}

// QuestionType labels the kind of test case a score was produced for.
// The analytics treat question types as free-form strings; this vocabulary
// reflects what the upstream question generator emits.
type QuestionType string

const (
	QuestionSimple         QuestionType = "simple"
	QuestionComplex        QuestionType = "complex"
	QuestionDistracting    QuestionType = "distracting"
	QuestionSituational    QuestionType = "situational"
	QuestionDouble         QuestionType = "double"
	QuestionConversational QuestionType = "conversational"
)

// AllQuestionTypes returns the known question type vocabulary.
func AllQuestionTypes() []QuestionType {
	return []QuestionType{
		QuestionSimple,
		QuestionComplex,
		QuestionDistracting,
		QuestionSituational,
		QuestionDouble,
		QuestionConversational,
	}
}

// String returns the string representation of the question type.
func (q QuestionType) String() string {
	return string(q)
}
