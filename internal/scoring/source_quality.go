package scoring

import "strings"

// Weights of the five source-quality dimensions.
const (
	weightRelevance     = 0.30
	weightCredibility   = 0.25
	weightNovelty       = 0.20
	weightDepth         = 0.15
	weightAccessibility = 0.10
)

// DuplicateOverlap is the title-similarity threshold above which a candidate
// is treated as already on the reading list.
const DuplicateOverlap = 0.8

type SourceDimensions struct {
	Relevance     float64 `json:"relevance"`
	Credibility   float64 `json:"credibility"`
	Novelty       float64 `json:"novelty"`
	Depth         float64 `json:"depth"`
	Accessibility float64 `json:"accessibility"`
}

type SourceQualityResult struct {
	Dimensions     SourceDimensions `json:"dimensions"`
	Overall        float64          `json:"overall"`
	Recommendation string           `json:"recommendation"`
}

// WeightedOverall combines the five dimensions with the fixed weights.
func WeightedOverall(d SourceDimensions) float64 {
	return clamp01(weightRelevance*d.Relevance +
		weightCredibility*d.Credibility +
		weightNovelty*d.Novelty +
		weightDepth*d.Depth +
		weightAccessibility*d.Accessibility)
}

// SourceQuality scores a fetched candidate against a project's search terms and
// its existing reading-list titles. Deterministic for identical inputs.
func SourceQuality(title, author, url, content string, searchTerms, existingTitles []string) SourceQualityResult {
	dims := SourceDimensions{
		Relevance:     relevance(title, content, searchTerms),
		Credibility:   Credibility(title, author, content, url).Overall,
		Novelty:       novelty(title, existingTitles),
		Depth:         depth(content),
		Accessibility: accessibility(content),
	}
	overall := WeightedOverall(dims)
	return SourceQualityResult{
		Dimensions:     dims,
		Overall:        overall,
		Recommendation: RecommendationTier(overall),
	}
}

// relevance is the fraction of project search terms whose tokens appear in the
// candidate's title or content.
func relevance(title, content string, searchTerms []string) float64 {
	if len(searchTerms) == 0 {
		return 0.5
	}
	haystack := TokenSet(title + "\n" + content)
	matched := 0
	for _, term := range searchTerms {
		for _, tok := range Tokenize(term) {
			if len(tok) <= 3 {
				continue
			}
			if _, ok := haystack[tok]; ok {
				matched++
				break
			}
		}
	}
	return float64(matched) / float64(len(searchTerms))
}

// novelty is the inverse of the candidate's closest title similarity to the
// existing reading list. Exact or near-duplicate titles floor at 0.2.
func novelty(title string, existingTitles []string) float64 {
	maxSim := 0.0
	lowerTitle := strings.ToLower(strings.TrimSpace(title))
	for _, existing := range existingTitles {
		if strings.ToLower(strings.TrimSpace(existing)) == lowerTitle {
			return 0.2
		}
		if sim := TokenOverlap(title, existing); sim > maxSim {
			maxSim = sim
		}
	}
	if maxSim >= DuplicateOverlap {
		return 0.2
	}
	return clamp01(1 - maxSim)
}

func depth(content string) float64 {
	lower := strings.ToLower(content)
	lengthScore := 0.3
	switch {
	case len(content) >= 8000:
		lengthScore = 0.9
	case len(content) >= 3000:
		lengthScore = 0.7
	case len(content) >= 1000:
		lengthScore = 0.5
	}
	return (lengthScore + citationTier(lower) + argumentRigor(lower)) / 3
}

// accessibility rewards an average sentence length in the 10-20 word sweet spot.
func accessibility(content string) float64 {
	sentences := Sentences(content)
	if len(sentences) == 0 {
		return 0.5
	}
	words := len(Tokenize(content))
	avg := float64(words) / float64(len(sentences))
	switch {
	case avg >= 10 && avg <= 20:
		return 0.9
	case avg >= 5 && avg <= 30:
		return 0.7
	default:
		return 0.5
	}
}
