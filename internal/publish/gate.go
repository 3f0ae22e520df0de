package publish

import (
	"strings"

	"ariadne/internal/models"
	"ariadne/internal/scoring"
)

// Minimum content lengths per publication type. Anything shorter is rejected
// regardless of other factors.
const (
	MinAnnouncementChars = 200
	MinNoteChars         = 300
	MinEssayChars        = 1200
)

type GateResult struct {
	Pass   bool   `json:"pass"`
	Reason string `json:"reason,omitempty"`
}

// Gate applies the type-specific quality checks to composed content. A failed
// gate is a normal negative result, not an error; the candidate is dropped for
// the current scan only.
func Gate(pubType, title, content, centralQuestion string) GateResult {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" {
		return GateResult{Reason: "empty title"}
	}
	if content == "" {
		return GateResult{Reason: "empty content"}
	}

	switch pubType {
	case models.PubNote:
		if len(content) < MinNoteChars {
			return GateResult{Reason: "research note below minimum length"}
		}
	case models.PubEssay:
		if len(content) < MinEssayChars {
			return GateResult{Reason: "major essay below minimum length"}
		}
		if paragraphs(content) < 3 {
			return GateResult{Reason: "major essay lacks structure"}
		}
		if !mentionsQuestion(content, centralQuestion) {
			return GateResult{Reason: "major essay does not engage the central question"}
		}
	case models.PubAnnouncement:
		if len(content) < MinAnnouncementChars {
			return GateResult{Reason: "announcement below minimum length"}
		}
		if !mentionsQuestion(content, centralQuestion) {
			return GateResult{Reason: "announcement does not state the central question"}
		}
	default:
		return GateResult{Reason: "unknown publication type"}
	}
	return GateResult{Pass: true}
}

func paragraphs(content string) int {
	n := 0
	for _, p := range strings.Split(content, "\n\n") {
		if strings.TrimSpace(p) != "" {
			n++
		}
	}
	return n
}

// mentionsQuestion requires at least one substantial token of the central
// question to appear in the content. An empty question passes vacuously.
func mentionsQuestion(content, question string) bool {
	if strings.TrimSpace(question) == "" {
		return true
	}
	haystack := scoring.TokenSet(content)
	for _, tok := range scoring.Tokenize(question) {
		if len(tok) <= 3 {
			continue
		}
		if _, ok := haystack[tok]; ok {
			return true
		}
	}
	return false
}
