package scoring

import (
	"strings"

	"ariadne/internal/models"
)

var contradictionMarkers = []string{"contradict", "inconsistent", "incoherent", "self-defeating"}

var logicalConnectives = []string{"therefore", "thus", "hence", "because", "follows that", "entails", "implies"}

var evidenceFamilies = [][]string{
	{"study", "data", "experiment", "observation", "empirical"},
	{"text", "passage", "quote", "chapter", "page"},
	{"argues", "according to", "scholar", "commentator"},
	{"example", "case", "instance", "illustration"},
}

var precisionMarkers = []string{"specifically", "precisely", "namely", "in particular", "exactly"}
var clarityMarkers = []string{"clear", "distinct", "define", "in other words", "that is to say"}

type ValidationResult struct {
	Score   float64            `json:"score"`
	Factors map[string]float64 `json:"factors"`
}

// ValidateArgument audits an argument on five independent factors and averages
// them. The result is stored alongside the argument; it never writes back into
// the confidence level, which stays an externally nudged field.
func ValidateArgument(arg models.Argument) ValidationResult {
	body := strings.ToLower(arg.InitialIntuition + "\n" + strings.Join(arg.Evidence, "\n"))

	factors := map[string]float64{
		"logical_consistency": logicalConsistency(body),
		"evidence_support":    evidenceSupport(body),
		"counter_treatment":   counterTreatment(arg.CounterArguments),
		"citation_adequacy":   citationAdequacy(len(arg.Citations)),
		"clarity":             clarity(body),
	}
	sum := 0.0
	for _, v := range factors {
		sum += v
	}
	return ValidationResult{Score: clamp01(sum / float64(len(factors))), Factors: factors}
}

func logicalConsistency(lower string) float64 {
	if containsAny(lower, contradictionMarkers) {
		return 0.2
	}
	hits := 0
	for _, c := range logicalConnectives {
		if strings.Contains(lower, c) {
			hits++
		}
	}
	switch {
	case hits >= 2:
		return 0.9
	case hits == 1:
		return 0.6
	default:
		return 0.3
	}
}

// evidenceSupport measures coverage across evidence-type keyword families.
func evidenceSupport(lower string) float64 {
	covered := 0
	for _, fam := range evidenceFamilies {
		if containsAny(lower, fam) {
			covered++
		}
	}
	return 0.2 + 0.7*float64(covered)/float64(len(evidenceFamilies))
}

// counterTreatment tiers on the total length of recorded counter-arguments.
func counterTreatment(counters []models.CounterArgument) float64 {
	total := 0
	for _, c := range counters {
		total += len(c.Content)
	}
	switch {
	case total == 0:
		return 0.0
	case total < 50:
		return 0.3
	case total < 200:
		return 0.6
	default:
		return 0.9
	}
}

func citationAdequacy(n int) float64 {
	switch {
	case n >= 3:
		return 0.9
	case n >= 1:
		return 0.6
	default:
		return 0.2
	}
}

// clarity grants 0.5 each for precision markers and clarity markers.
func clarity(lower string) float64 {
	score := 0.0
	if containsAny(lower, precisionMarkers) {
		score += 0.5
	}
	if containsAny(lower, clarityMarkers) {
		score += 0.5
	}
	return score
}
