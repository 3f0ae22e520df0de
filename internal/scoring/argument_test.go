package scoring

import (
	"strings"
	"testing"

	"ariadne/internal/models"

	"github.com/stretchr/testify/require"
)

func TestValidateArgumentFactorTiers(t *testing.T) {
	arg := models.Argument{
		InitialIntuition: "Language constitutes selfhood because expression precedes reflection; therefore the self is linguistic.",
		Evidence: []string{
			"The study of aphasia data supports this, specifically the observation that narrative breaks down.",
			"A passage in chapter four argues the same, in other words the text anticipates the claim.",
		},
		Citations: []string{"a", "b", "c"},
		CounterArguments: []models.CounterArgument{
			{Content: strings.Repeat("A sustained objection about pre-linguistic infant cognition. ", 5), Contributor: "reader"},
		},
	}

	res := ValidateArgument(arg)
	require.Equal(t, 0.9, res.Factors["logical_consistency"])
	require.Equal(t, 0.9, res.Factors["counter_treatment"])
	require.Equal(t, 0.9, res.Factors["citation_adequacy"])
	require.Equal(t, 1.0, res.Factors["clarity"])
	require.GreaterOrEqual(t, res.Score, 0.0)
	require.LessOrEqual(t, res.Score, 1.0)
}

func TestValidateArgumentEmpty(t *testing.T) {
	res := ValidateArgument(models.Argument{InitialIntuition: "A bare hunch."})
	require.Equal(t, 0.0, res.Factors["counter_treatment"])
	require.Equal(t, 0.2, res.Factors["citation_adequacy"])
	require.Equal(t, 0.3, res.Factors["logical_consistency"])
}

func TestContradictionPenalty(t *testing.T) {
	arg := models.Argument{InitialIntuition: "The claim is therefore true, although the premises are inconsistent."}
	res := ValidateArgument(arg)
	require.Equal(t, 0.2, res.Factors["logical_consistency"])
}

func TestCounterTreatmentLengthTiers(t *testing.T) {
	cases := []struct {
		chars int
		want  float64
	}{
		{0, 0.0}, {30, 0.3}, {150, 0.6}, {400, 0.9},
	}
	for _, c := range cases {
		var counters []models.CounterArgument
		if c.chars > 0 {
			counters = []models.CounterArgument{{Content: strings.Repeat("x", c.chars)}}
		}
		require.Equal(t, c.want, counterTreatment(counters), "chars=%d", c.chars)
	}
}
