package scoring

import (
	"strings"

	"ariadne/internal/models"
)

var depthIndicators = []string{
	"consciousness", "intentionality", "phenomenology", "ontology",
	"epistemology", "dialectic", "transcendental", "hermeneutic",
	"metaphysics", "normativity", "qualia", "embodiment", "temporality",
	"intersubjectivity", "dasein",
}

var insightMarkers = []string{
	"i realize", "insight", "strikes me", "reveals", "i notice",
	"significant", "crucial", "it becomes clear",
}

var connectionMarkers = []string{
	"connects", "relates", "echoes", "resonates", "parallels", "recalls",
}

var phaseWeights = map[string]float64{
	models.PhaseInitialEncounter:     0.3,
	models.PhaseDeepAnalysis:         0.7,
	models.PhasePhilosophicalResp:    0.9,
	models.PhaseSynthesisIntegration: 1.0,
}

// ReadingDepth multiplies the capped density of philosophical-depth indicators
// by the weight of the phase the session belongs to.
func ReadingDepth(content, phase string) float64 {
	weight, ok := phaseWeights[phase]
	if !ok {
		weight = 0.3
	}
	lower := strings.ToLower(content)
	hits := countHits(lower, depthIndicators)
	density := clamp01(float64(hits) * 0.1)
	return clamp01(density * weight)
}

// ExtractInsights returns sentences carrying an insight marker word.
func ExtractInsights(content string) []string {
	return sentencesMatching(content, func(lower string) bool {
		return containsAny(lower, insightMarkers)
	})
}

// ExtractQuestions returns sentences ending in or containing a question mark.
func ExtractQuestions(content string) []string {
	return sentencesMatching(content, func(lower string) bool {
		return strings.Contains(lower, "?")
	})
}

// ExtractConnections returns sentences that tie the text to other material.
func ExtractConnections(content string) []string {
	return sentencesMatching(content, func(lower string) bool {
		return containsAny(lower, connectionMarkers)
	})
}

func sentencesMatching(content string, match func(lower string) bool) []string {
	out := make([]string, 0)
	for _, sent := range Sentences(content) {
		if match(strings.ToLower(sent)) {
			out = append(out, sent)
		}
	}
	return out
}
