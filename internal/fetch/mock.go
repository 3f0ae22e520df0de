package fetch

import (
	"context"
	"fmt"
	"strings"
)

// MockLibrary returns deterministic candidates and content keyed by the input,
// so discovery runs are reproducible without network access.
type MockLibrary struct{}

func NewMockLibrary() *MockLibrary {
	return &MockLibrary{}
}

func (m *MockLibrary) Search(ctx context.Context, term string) ([]Candidate, error) {
	_ = ctx
	term = strings.TrimSpace(term)
	slug := strings.ReplaceAll(strings.ToLower(term), " ", "-")
	return []Candidate{
		{
			Title:  fmt.Sprintf("An Inquiry Concerning %s", term),
			Author: "Prof. M. Scholar",
			URL:    "https://mock.library/" + slug + "/1",
		},
		{
			Title:  fmt.Sprintf("Notes Toward %s", term),
			Author: "A. Essayist",
			URL:    "https://mock.library/" + slug + "/2",
		},
	}, nil
}

func (m *MockLibrary) Fetch(ctx context.Context, url string) (string, error) {
	_ = ctx
	body := "This essay therefore examines consciousness and intentionality with care. " +
		"The study demonstrates, specifically, how phenomenology frames the question (2021). " +
		"However, critics raise an objection that may qualify the claim. " +
		"Published in a peer-reviewed journal, vol. 12."
	return fmt.Sprintf("Source at %s\n%s", url, strings.Repeat(body, 6)), nil
}
