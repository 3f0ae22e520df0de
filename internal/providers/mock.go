package providers

import (
	"context"
	"fmt"
	"strings"
)

// MockProvider returns deterministic text keyed by operation so workflows and
// tests behave identically run to run.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (GenerateResponse, ProviderInfo, error) {
	_ = ctx
	op := strings.ToLower(req.Operation)
	text := "Mock response."
	switch {
	case strings.Contains(op, "framing"):
		text = "On the Question at Hand\n\nA sustained inquiry tracing how the question unfolds across its canonical and contemporary treatments."
	case strings.Contains(op, "terms"):
		text = `["phenomenology of language", "linguistic constitution of self", "hermeneutics", "speech acts", "meaning and existence", "philosophy of language", "embodied cognition", "narrative identity"]`
	case strings.Contains(op, "reading"):
		builder := strings.Builder{}
		builder.WriteString("I realize the text stakes out a stronger claim than its opening suggests. ")
		builder.WriteString("What remains unclear is whether the argument survives its own counterexample? ")
		builder.WriteString("This position connects to the broader debate raised in earlier sessions. ")
		builder.WriteString("The evidence presented is therefore consistent with the initial intuition, granted some qualification.")
		for i := range req.Context {
			builder.WriteString(fmt.Sprintf(" [C%d]", i+1))
		}
		text = builder.String()
	case strings.Contains(op, "publication"), strings.Contains(op, "compose"):
		para := "This inquiry examines the central question through accumulated reading and argument. " +
			"The sessions so far suggest a consistent line of interpretation, although important counter-considerations remain open. "
		text = strings.Repeat(para, 8)
	}
	if req.MaxLength > 0 && len(text) > req.MaxLength {
		text = text[:req.MaxLength]
	}
	return GenerateResponse{Text: text}, ProviderInfo{Name: "mock", Model: "mock-llm-v1", Key: "mock"}, nil
}
