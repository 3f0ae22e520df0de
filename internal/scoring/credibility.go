package scoring

import (
	"strings"
	"time"
)

var recognizedPhilosophers = []string{
	"kant", "hegel", "heidegger", "husserl", "wittgenstein", "derrida",
	"merleau-ponty", "gadamer", "ricoeur", "foucault", "levinas", "arendt",
	"searle", "dennett", "nagel", "chalmers", "butler", "quine", "davidson",
	"putnam", "kripke", "rorty", "habermas",
}

var academicTitles = []string{"professor", "prof.", "dr.", "ph.d", "phd", "lecturer"}

var affiliationTerms = []string{"university", "institute", "college", "academy", "department of"}

var peerReviewTerms = []string{"journal", "peer-reviewed", "peer reviewed", "doi", "proceedings", "vol.", "issue"}

var primarySourceTerms = []string{"critique", "treatise", "meditations", "inquiry concerning", "phenomenology of", "being and time", "tractatus"}

var rigorFamilies = [][]string{
	{"therefore", "thus", "hence", "because", "follows that", "entails", "implies"},
	{"evidence", "demonstrates", "shows that", "study", "data", "observation"},
	{"however", "objection", "counter", "although", "nevertheless", "critics"},
	{"perhaps", "might", "may", "possibly", "arguably", "seems"},
	{"specifically", "precisely", "namely", "in particular", "exactly", "strictly"},
}

type CredibilityResult struct {
	Overall        float64            `json:"overall"`
	Recommendation string             `json:"recommendation"`
	Factors        map[string]float64 `json:"factors"`
}

// Credibility averages seven independent text-feature factors, each in [0,1].
// Deterministic for fixed inputs within a calendar year (recency is relative).
func Credibility(title, author, content, url string) CredibilityResult {
	lowerAuthor := strings.ToLower(author)
	lowerAll := strings.ToLower(title + "\n" + author + "\n" + content + "\n" + url)

	factors := map[string]float64{
		"author_reputation": authorReputation(lowerAuthor),
		"affiliation":       boolScore(containsAny(lowerAll, affiliationTerms), 0.8, 0.4),
		"citations":         citationTier(lowerAll),
		"rigor":             argumentRigor(strings.ToLower(content)),
		"primary_source":    boolScore(containsAny(lowerAll, primarySourceTerms), 0.9, 0.4),
		"recency":           recencyScore(LatestYear(title + " " + content)),
		"peer_review":       peerReviewScore(lowerAll),
	}

	sum := 0.0
	for _, v := range factors {
		sum += v
	}
	overall := clamp01(sum / float64(len(factors)))
	return CredibilityResult{
		Overall:        overall,
		Recommendation: RecommendationTier(overall),
		Factors:        factors,
	}
}

// RecommendationTier buckets an overall score at 0.8 / 0.6 / 0.4.
func RecommendationTier(overall float64) string {
	switch {
	case overall >= 0.8:
		return "high_priority"
	case overall >= 0.6:
		return "medium_priority"
	case overall >= 0.4:
		return "low_priority"
	default:
		return "skip"
	}
}

func authorReputation(lowerAuthor string) float64 {
	if containsAny(lowerAuthor, recognizedPhilosophers) {
		return 0.9
	}
	if containsAny(lowerAuthor, academicTitles) {
		return 0.7
	}
	return 0.3
}

func citationTier(lower string) float64 {
	hits := countHits(lower, []string{"(19", "(20", "ibid", "et al", "pp.", "op. cit"})
	switch {
	case hits >= 10:
		return 0.9
	case hits >= 5:
		return 0.7
	case hits >= 1:
		return 0.5
	default:
		return 0.2
	}
}

// argumentRigor averages the hit-ratio of five lexical marker families:
// logical connectives, evidence terms, counter-consideration, qualification,
// and precision terms.
func argumentRigor(lowerContent string) float64 {
	sum := 0.0
	for _, fam := range rigorFamilies {
		sum += familyHitRatio(lowerContent, fam)
	}
	return sum / float64(len(rigorFamilies))
}

func recencyScore(year int) float64 {
	if year <= 0 {
		return 0.3
	}
	age := time.Now().Year() - year
	switch {
	case age <= 5:
		return 0.9
	case age <= 10:
		return 0.7
	case age <= 20:
		return 0.5
	default:
		return 0.3
	}
}

func peerReviewScore(lower string) float64 {
	hits := 0
	for _, t := range peerReviewTerms {
		if strings.Contains(lower, t) {
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

func boolScore(ok bool, yes, no float64) float64 {
	if ok {
		return yes
	}
	return no
}
