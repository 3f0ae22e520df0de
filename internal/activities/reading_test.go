package activities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublicationCandidateNeedsDepthAndInsights(t *testing.T) {
	require.True(t, publicationCandidate(0.6, 2))
	require.True(t, publicationCandidate(0.9, 5))
	require.False(t, publicationCandidate(0.59, 2))
	require.False(t, publicationCandidate(0.9, 1))
	require.False(t, publicationCandidate(0.2, 0))
}
