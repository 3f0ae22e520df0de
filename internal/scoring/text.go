package scoring

import (
	"regexp"
	"strings"
)

var wordExpr = regexp.MustCompile(`[a-zA-Z][a-zA-Z'-]+`)
var yearExpr = regexp.MustCompile(`\b(1[5-9]\d{2}|20\d{2})\b`)

// Tokenize lowercases and extracts word tokens longer than one character.
func Tokenize(s string) []string {
	return wordExpr.FindAllString(strings.ToLower(s), -1)
}

// TokenSet returns the distinct tokens of s.
func TokenSet(s string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, tok := range Tokenize(s) {
		set[tok] = struct{}{}
	}
	return set
}

// TokenOverlap is the ratio of shared distinct tokens to the smaller token set.
// Both empty inputs count as identical.
func TokenOverlap(a, b string) float64 {
	sa := TokenSet(a)
	sb := TokenSet(b)
	if len(sa) == 0 && len(sb) == 0 {
		return 1
	}
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	shared := 0
	for tok := range sa {
		if _, ok := sb[tok]; ok {
			shared++
		}
	}
	denom := len(sa)
	if len(sb) < denom {
		denom = len(sb)
	}
	return float64(shared) / float64(denom)
}

// Sentences splits prose on terminal punctuation, keeping the terminator.
func Sentences(s string) []string {
	out := make([]string, 0)
	start := 0
	runes := []rune(s)
	for i, r := range runes {
		if r == '.' || r == '!' || r == '?' {
			sent := strings.TrimSpace(string(runes[start : i+1]))
			if sent != "" {
				out = append(out, sent)
			}
			start = i + 1
		}
	}
	tail := strings.TrimSpace(string(runes[start:]))
	if tail != "" {
		out = append(out, tail)
	}
	return out
}

// LatestYear returns the most recent plausible 4-digit year mentioned, or 0.
func LatestYear(s string) int {
	latest := 0
	for _, m := range yearExpr.FindAllString(s, -1) {
		y := 0
		for _, ch := range m {
			y = y*10 + int(ch-'0')
		}
		if y > latest {
			latest = y
		}
	}
	return latest
}

func containsAny(lower string, terms []string) bool {
	for _, t := range terms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

func countHits(lower string, terms []string) int {
	n := 0
	for _, t := range terms {
		n += strings.Count(lower, t)
	}
	return n
}

// familyHitRatio is the fraction of a marker family's terms present at least once.
func familyHitRatio(lower string, family []string) float64 {
	if len(family) == 0 {
		return 0
	}
	hit := 0
	for _, t := range family {
		if strings.Contains(lower, t) {
			hit++
		}
	}
	return float64(hit) / float64(len(family))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
