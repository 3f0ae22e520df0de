package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPhaseRankFollowsReadingOrder(t *testing.T) {
	require.Equal(t, 0, PhaseRank(PhaseInitialEncounter))
	require.Equal(t, 3, PhaseRank(PhaseSynthesisIntegration))
	require.Equal(t, -1, PhaseRank("afterword"))
}

func TestCurrentProjectPhase(t *testing.T) {
	require.Equal(t, ProjectPhaseInitialSetup, CurrentProjectPhase(0, 0, 0))
	require.Equal(t, ProjectPhaseReading, CurrentProjectPhase(4, 0, 0))
	require.Equal(t, ProjectPhaseArgumentDev, CurrentProjectPhase(4, 2, 0))
	require.Equal(t, ProjectPhaseSynthesisReady, CurrentProjectPhase(4, 2, 1))
}

func TestNewArgumentStartsAtInitialConfidence(t *testing.T) {
	arg := NewArgument("proj-1", "Language precedes thought", "Grammar shapes what can be thought at all.", nil, nil)
	require.NotEmpty(t, arg.ArgumentID)
	require.Equal(t, InitialConfidence, arg.Confidence)
	require.Equal(t, 0.3, arg.Confidence)
	require.Zero(t, arg.CommunityWeight)
	require.Nil(t, arg.LastValidationScore)
}

func TestMinTextsForQuestion(t *testing.T) {
	require.Equal(t, 3, MinTextsForQuestion("What makes a promise binding?"))
	require.Equal(t, 4, MinTextsForQuestion("Is consciousness reducible to computation?"))
	require.Equal(t, 5, MinTextsForQuestion("Does phenomenology ground an ontology of the social world?"))
}
