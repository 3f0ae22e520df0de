package workflows

import (
	"context"
	"errors"
	"testing"

	"ariadne/internal/activities"
	"ariadne/internal/models"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/testsuite"
	"go.temporal.io/sdk/workflow"
)

func registerActivityName[T any](env *testsuite.TestWorkflowEnvironment, name string, fn T) {
	env.RegisterActivityWithOptions(fn, activity.RegisterOptions{Name: name})
}

func registerReadingStubs(env *testsuite.TestWorkflowEnvironment, phases *[]string, llmCalls *int, llmFailures int) {
	registerActivityName(env, "NextReadingItemActivity", func(context.Context, activities.NextReadingItemInput) (activities.NextReadingItemOutput, error) {
		return activities.NextReadingItemOutput{
			Item: models.ReadingListItem{
				ItemID:    "item-1",
				ProjectID: "proj-1",
				Title:     "Being and Time",
				SourceURL: "https://mock.library/being-and-time/1",
				Priority:  models.PriorityHigh,
				Status:    models.ItemFound,
			},
			Found: true,
		}, nil
	})
	registerActivityName(env, "GetReadingItemActivity", func(_ context.Context, in activities.GetReadingItemInput) (activities.GetReadingItemOutput, error) {
		return activities.GetReadingItemOutput{Item: models.ReadingListItem{
			ItemID:    in.ItemID,
			ProjectID: "proj-1",
			Title:     "Being and Time",
			SourceURL: "https://mock.library/being-and-time/1",
		}}, nil
	})
	registerActivityName(env, "FetchSourceTextActivity", func(context.Context, activities.FetchSourceTextInput) (activities.FetchSourceTextOutput, error) {
		return activities.FetchSourceTextOutput{Text: "The question of the meaning of being must be raised anew."}, nil
	})
	registerActivityName(env, "UpdateItemStatusActivity", func(context.Context, activities.UpdateItemStatusInput) error { return nil })
	registerActivityName(env, "ListOpenContributionsActivity", func(context.Context, activities.ListOpenContributionsInput) (activities.ListOpenContributionsOutput, error) {
		return activities.ListOpenContributionsOutput{}, nil
	})
	registerActivityName(env, "LLMGenerateActivity", func(_ context.Context, in activities.LLMGenerateInput) (activities.LLMGenerateOutput, error) {
		*llmCalls++
		if *llmCalls <= llmFailures {
			return activities.LLMGenerateOutput{}, errors.New("upstream unavailable")
		}
		return activities.LLMGenerateOutput{Text: "I realize the argument turns on temporality.", ProviderName: "mock", Model: "mock-llm-v1"}, nil
	})
	registerActivityName(env, "RecordReadingSessionActivity", func(_ context.Context, in activities.RecordReadingSessionInput) (activities.RecordReadingSessionOutput, error) {
		*phases = append(*phases, in.Phase)
		return activities.RecordReadingSessionOutput{Session: models.ReadingSession{
			SessionID: "sess-" + in.Phase,
			ProjectID: in.ProjectID,
			ItemID:    in.ItemID,
			Phase:     in.Phase,
			Content:   in.Content,
		}}, nil
	})
	registerActivityName(env, "WriteSessionArtifactActivity", func(context.Context, activities.WriteSessionArtifactInput) (activities.WriteSessionArtifactOutput, error) {
		return activities.WriteSessionArtifactOutput{Path: "/tmp/sess.json"}, nil
	})
	registerActivityName(env, "MarkContributionIncorporatedActivity", func(context.Context, activities.MarkContributionIncorporatedInput) error { return nil })
	registerActivityName(env, "LocateItemActivity", func(context.Context, activities.LocateItemInput) (activities.LocateItemOutput, error) {
		return activities.LocateItemOutput{}, nil
	})
}

func TestReadingSessionWorkflowRunsPhasesInOrder(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(ReadingSessionWorkflow)

	var phases []string
	llmCalls := 0
	registerReadingStubs(env, &phases, &llmCalls, 0)

	env.ExecuteWorkflow(ReadingSessionWorkflow, ReadingSessionInput{
		ProjectID:       "proj-1",
		PhaseDelayHours: 48,
		LLMProviders:    1,
		CooldownSeconds: 10,
	})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "completed", out)
	require.Equal(t, models.ReadingPhases, phases)
}

func TestReadingSessionWorkflowRetriesFailedPhase(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(ReadingSessionWorkflow)

	var phases []string
	llmCalls := 0
	registerReadingStubs(env, &phases, &llmCalls, 1)

	env.ExecuteWorkflow(ReadingSessionWorkflow, ReadingSessionInput{
		ProjectID:         "proj-1",
		PhaseDelayHours:   48,
		PhaseRetryMinutes: 60,
		LLMProviders:      1,
		CooldownSeconds:   10,
	})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "completed", out)
	require.Equal(t, models.ReadingPhases, phases)
	require.Greater(t, llmCalls, len(models.ReadingPhases))
}

func TestReadingSessionWorkflowDefersPhaseWhenGenerationUnavailable(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(ReadingSessionWorkflow)

	var phases []string
	llmCalls := 0
	registerReadingStubs(env, &phases, &llmCalls, 1000)

	env.ExecuteWorkflow(ReadingSessionWorkflow, ReadingSessionInput{
		ProjectID:         "proj-1",
		PhaseDelayHours:   48,
		PhaseRetryMinutes: 60,
		LLMProviders:      1,
		CooldownSeconds:   10,
	})
	require.True(t, env.IsWorkflowCompleted())

	// The item is handed to a fresh run at the same phase instead of failing.
	err := env.GetWorkflowError()
	require.Error(t, err)
	var canErr *workflow.ContinueAsNewError
	require.True(t, errors.As(err, &canErr))
	require.Empty(t, phases)
}

func TestReadingSessionWorkflowIdleWhenListExhausted(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(ReadingSessionWorkflow)

	registerActivityName(env, "NextReadingItemActivity", func(context.Context, activities.NextReadingItemInput) (activities.NextReadingItemOutput, error) {
		return activities.NextReadingItemOutput{}, nil
	})

	env.ExecuteWorkflow(ReadingSessionWorkflow, ReadingSessionInput{ProjectID: "proj-1", LLMProviders: 1})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out string
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, "idle", out)
}
