package workflows

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ariadne/internal/activities"
	"ariadne/internal/fetch"
	"ariadne/internal/models"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"
)

func TestSourceDiscoveryWorkflowPromotesAtMostFive(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(SourceDiscoveryWorkflow)

	registerActivityName(env, "GetProjectActivity", func(context.Context, activities.GetProjectInput) (activities.GetProjectOutput, error) {
		return activities.GetProjectOutput{Project: models.Project{
			ProjectID:   "proj-1",
			SearchTerms: []string{"phenomenology of language"},
		}}, nil
	})
	registerActivityName(env, "ListItemTitlesActivity", func(context.Context, activities.ListItemTitlesInput) (activities.ListItemTitlesOutput, error) {
		return activities.ListItemTitlesOutput{}, nil
	})
	registerActivityName(env, "SearchSourcesActivity", func(_ context.Context, in activities.SearchSourcesInput) (activities.SearchSourcesOutput, error) {
		out := activities.SearchSourcesOutput{}
		for i := 0; i < 8; i++ {
			out.Candidates = append(out.Candidates, fetch.Candidate{
				Title: fmt.Sprintf("Candidate %d", i),
				URL:   fmt.Sprintf("https://mock.library/c/%d", i),
			})
		}
		return out, nil
	})
	registerActivityName(env, "ScoreSourceActivity", func(_ context.Context, in activities.ScoreSourceInput) (activities.ScoreSourceOutput, error) {
		return activities.ScoreSourceOutput{Source: models.DiscoveredSource{
			SourceID:       "src-" + in.Candidate.URL,
			ProjectID:      in.ProjectID,
			Title:          in.Candidate.Title,
			URL:            in.Candidate.URL,
			Overall:        0.85,
			Recommendation: models.RecommendHighPriority,
		}}, nil
	})
	promoted := 0
	registerActivityName(env, "PromoteSourceActivity", func(context.Context, activities.PromoteSourceInput) (activities.PromoteSourceOutput, error) {
		promoted++
		return activities.PromoteSourceOutput{ItemID: fmt.Sprintf("item-%d", promoted)}, nil
	})
	touched := false
	registerActivityName(env, "TouchDiscoveryActivity", func(context.Context, activities.TouchDiscoveryInput) error {
		touched = true
		return nil
	})

	env.ExecuteWorkflow(SourceDiscoveryWorkflow, SourceDiscoveryInput{ProjectID: "proj-1", MaxTerms: 3, MaxPromotions: 5})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out int
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, 5, out)
	require.Equal(t, 5, promoted)
	require.True(t, touched)
}

func TestSourceDiscoveryWorkflowDropsUnfetchableCandidates(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(SourceDiscoveryWorkflow)

	registerActivityName(env, "GetProjectActivity", func(context.Context, activities.GetProjectInput) (activities.GetProjectOutput, error) {
		return activities.GetProjectOutput{Project: models.Project{
			ProjectID:   "proj-1",
			SearchTerms: []string{"hermeneutics"},
		}}, nil
	})
	registerActivityName(env, "ListItemTitlesActivity", func(context.Context, activities.ListItemTitlesInput) (activities.ListItemTitlesOutput, error) {
		return activities.ListItemTitlesOutput{}, nil
	})
	registerActivityName(env, "SearchSourcesActivity", func(context.Context, activities.SearchSourcesInput) (activities.SearchSourcesOutput, error) {
		return activities.SearchSourcesOutput{Candidates: []fetch.Candidate{
			{Title: "Unreachable", URL: "https://mock.library/broken"},
			{Title: "Reachable", URL: "https://mock.library/ok"},
		}}, nil
	})
	registerActivityName(env, "ScoreSourceActivity", func(_ context.Context, in activities.ScoreSourceInput) (activities.ScoreSourceOutput, error) {
		if in.Candidate.URL == "https://mock.library/broken" {
			return activities.ScoreSourceOutput{}, errors.New("fetch candidate: connection refused")
		}
		return activities.ScoreSourceOutput{Source: models.DiscoveredSource{
			SourceID:       "src-ok",
			ProjectID:      in.ProjectID,
			Title:          in.Candidate.Title,
			URL:            in.Candidate.URL,
			Overall:        0.7,
			Recommendation: models.RecommendMediumPriority,
		}}, nil
	})
	promoted := 0
	registerActivityName(env, "PromoteSourceActivity", func(context.Context, activities.PromoteSourceInput) (activities.PromoteSourceOutput, error) {
		promoted++
		return activities.PromoteSourceOutput{ItemID: "item-ok"}, nil
	})
	registerActivityName(env, "TouchDiscoveryActivity", func(context.Context, activities.TouchDiscoveryInput) error { return nil })

	env.ExecuteWorkflow(SourceDiscoveryWorkflow, SourceDiscoveryInput{ProjectID: "proj-1"})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out int
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, 1, out)
	require.Equal(t, 1, promoted)
}

func TestProjectSetupWorkflowFallsBackToDerivedTerms(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(ProjectSetupWorkflow)
	env.RegisterWorkflow(SourceDiscoveryWorkflow)

	registerActivityName(env, "GetProjectActivity", func(context.Context, activities.GetProjectInput) (activities.GetProjectOutput, error) {
		return activities.GetProjectOutput{Project: models.Project{
			ProjectID:       "proj-1",
			Title:           "Language and Existence",
			CentralQuestion: "What does it mean to exist primarily in language?",
		}}, nil
	})
	registerActivityName(env, "LLMGenerateActivity", func(context.Context, activities.LLMGenerateInput) (activities.LLMGenerateOutput, error) {
		return activities.LLMGenerateOutput{}, errors.New("upstream quota exceeded")
	})
	var framing activities.UpdateProjectFramingInput
	registerActivityName(env, "UpdateProjectFramingActivity", func(_ context.Context, in activities.UpdateProjectFramingInput) error {
		framing = in
		return nil
	})
	var savedTerms []string
	registerActivityName(env, "UpdateSearchTermsActivity", func(_ context.Context, in activities.UpdateSearchTermsInput) error {
		savedTerms = in.Terms
		return nil
	})
	registerActivityName(env, "ListItemTitlesActivity", func(context.Context, activities.ListItemTitlesInput) (activities.ListItemTitlesOutput, error) {
		return activities.ListItemTitlesOutput{}, nil
	})
	registerActivityName(env, "SearchSourcesActivity", func(context.Context, activities.SearchSourcesInput) (activities.SearchSourcesOutput, error) {
		return activities.SearchSourcesOutput{}, nil
	})
	registerActivityName(env, "ScoreSourceActivity", func(context.Context, activities.ScoreSourceInput) (activities.ScoreSourceOutput, error) {
		return activities.ScoreSourceOutput{}, nil
	})
	registerActivityName(env, "PromoteSourceActivity", func(context.Context, activities.PromoteSourceInput) (activities.PromoteSourceOutput, error) {
		return activities.PromoteSourceOutput{}, nil
	})
	registerActivityName(env, "TouchDiscoveryActivity", func(context.Context, activities.TouchDiscoveryInput) error { return nil })

	env.ExecuteWorkflow(ProjectSetupWorkflow, ProjectSetupInput{ProjectID: "proj-1", LLMProviders: 1, CooldownSeconds: 10})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "completed", out)
	require.NotEmpty(t, savedTerms)
	require.Contains(t, savedTerms, "language")
	// The provided title survives; only the missing description is filled in.
	require.Equal(t, "Language and Existence", framing.Title)
	require.Contains(t, framing.Description, "What does it mean to exist primarily in language?")
}

func TestProjectSetupWorkflowPersistsGeneratedFraming(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(ProjectSetupWorkflow)
	env.RegisterWorkflow(SourceDiscoveryWorkflow)

	registerActivityName(env, "GetProjectActivity", func(context.Context, activities.GetProjectInput) (activities.GetProjectOutput, error) {
		return activities.GetProjectOutput{Project: models.Project{
			ProjectID:       "proj-1",
			CentralQuestion: "What does it mean to exist primarily in language?",
		}}, nil
	})
	registerActivityName(env, "LLMGenerateActivity", func(_ context.Context, in activities.LLMGenerateInput) (activities.LLMGenerateOutput, error) {
		if in.Operation == "project_framing" {
			return activities.LLMGenerateOutput{
				Text:         `{"title":"Dwelling in Language","description":"A study of linguistic existence."}`,
				ProviderName: "mock", Model: "mock-llm-v1",
			}, nil
		}
		return activities.LLMGenerateOutput{Text: `["language", "existence"]`, ProviderName: "mock", Model: "mock-llm-v1"}, nil
	})
	var framing activities.UpdateProjectFramingInput
	registerActivityName(env, "UpdateProjectFramingActivity", func(_ context.Context, in activities.UpdateProjectFramingInput) error {
		framing = in
		return nil
	})
	registerActivityName(env, "UpdateSearchTermsActivity", func(context.Context, activities.UpdateSearchTermsInput) error { return nil })
	registerActivityName(env, "ListItemTitlesActivity", func(context.Context, activities.ListItemTitlesInput) (activities.ListItemTitlesOutput, error) {
		return activities.ListItemTitlesOutput{}, nil
	})
	registerActivityName(env, "SearchSourcesActivity", func(context.Context, activities.SearchSourcesInput) (activities.SearchSourcesOutput, error) {
		return activities.SearchSourcesOutput{}, nil
	})
	registerActivityName(env, "ScoreSourceActivity", func(context.Context, activities.ScoreSourceInput) (activities.ScoreSourceOutput, error) {
		return activities.ScoreSourceOutput{}, nil
	})
	registerActivityName(env, "PromoteSourceActivity", func(context.Context, activities.PromoteSourceInput) (activities.PromoteSourceOutput, error) {
		return activities.PromoteSourceOutput{}, nil
	})
	registerActivityName(env, "TouchDiscoveryActivity", func(context.Context, activities.TouchDiscoveryInput) error { return nil })

	env.ExecuteWorkflow(ProjectSetupWorkflow, ProjectSetupInput{ProjectID: "proj-1", LLMProviders: 1, CooldownSeconds: 10})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	require.Equal(t, "proj-1", framing.ProjectID)
	require.Equal(t, "Dwelling in Language", framing.Title)
	require.Equal(t, "A study of linguistic existence.", framing.Description)
}
