package scoring

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWeightedOverallWorkedExample(t *testing.T) {
	dims := SourceDimensions{
		Relevance:     0.9,
		Credibility:   0.9,
		Novelty:       1.0,
		Depth:         0.8,
		Accessibility: 0.9,
	}
	overall := WeightedOverall(dims)
	require.InDelta(t, 0.905, overall, 1e-9)
	require.Equal(t, "high_priority", RecommendationTier(overall))
}

func TestSourceQualityDeterministic(t *testing.T) {
	terms := []string{"phenomenology", "language", "embodiment"}
	existing := []string{"Being and Time"}
	content := "Phenomenology shows that language matters. The study demonstrates embodiment precisely. However, critics object."

	a := SourceQuality("Language and World", "Prof. A. Reader", "https://example.org/p", content, terms, existing)
	b := SourceQuality("Language and World", "Prof. A. Reader", "https://example.org/p", content, terms, existing)
	require.Equal(t, a, b)
}

func TestNoveltyFloorsOnDuplicateTitles(t *testing.T) {
	existing := []string{"The Phenomenology of Spirit"}

	require.Equal(t, 0.2, novelty("The Phenomenology of Spirit", existing))
	require.Equal(t, 0.2, novelty("the phenomenology of spirit ", existing))
	// Heavy token overlap also floors.
	require.Equal(t, 0.2, novelty("Phenomenology of Spirit", existing))
	require.Greater(t, novelty("A Treatise on Probability", existing), 0.5)
}

func TestRelevanceCountsMatchedTerms(t *testing.T) {
	content := "This essay concerns consciousness and nothing else."
	got := relevance("Essay", content, []string{"consciousness", "quantum chromodynamics"})
	require.InDelta(t, 0.5, got, 1e-9)
}

func TestAccessibilitySweetSpot(t *testing.T) {
	// Twelve words per sentence lands in the 10-20 band.
	content := "One two three four five six seven eight nine ten eleven twelve. " +
		"One two three four five six seven eight nine ten eleven twelve."
	require.Equal(t, 0.9, accessibility(content))
	require.Equal(t, 0.5, accessibility("Word. Word. Word."))
}

func TestRecommendationTiers(t *testing.T) {
	require.Equal(t, "high_priority", RecommendationTier(0.8))
	require.Equal(t, "medium_priority", RecommendationTier(0.6))
	require.Equal(t, "low_priority", RecommendationTier(0.4))
	require.Equal(t, "skip", RecommendationTier(0.39))
}
