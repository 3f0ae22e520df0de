package scoring

import (
	"testing"

	"ariadne/internal/models"

	"github.com/stretchr/testify/require"
)

func TestReadingDepthPhaseWeights(t *testing.T) {
	content := "consciousness intentionality phenomenology ontology epistemology " +
		"dialectic transcendental hermeneutic metaphysics normativity"

	initial := ReadingDepth(content, models.PhaseInitialEncounter)
	synthesis := ReadingDepth(content, models.PhaseSynthesisIntegration)
	require.InDelta(t, 0.3, initial, 1e-9)
	require.InDelta(t, 1.0, synthesis, 1e-9)
	require.Greater(t, synthesis, initial)
}

func TestReadingDepthCapsDensity(t *testing.T) {
	dense := ""
	for i := 0; i < 40; i++ {
		dense += "consciousness "
	}
	require.InDelta(t, 1.0, ReadingDepth(dense, models.PhaseSynthesisIntegration), 1e-9)
}

func TestExtraction(t *testing.T) {
	content := "I realize the claim is stronger than it looks. " +
		"Does the argument survive its own counterexample? " +
		"This position connects to the earlier debate. " +
		"Nothing notable here."

	require.Len(t, ExtractInsights(content), 1)
	require.Len(t, ExtractQuestions(content), 1)
	require.Len(t, ExtractConnections(content), 1)
}
