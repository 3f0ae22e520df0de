package workflows

import (
	"context"
	"testing"

	"ariadne/internal/activities"
	"ariadne/internal/models"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/testsuite"
)

func registerScanStubs(env *testsuite.TestWorkflowEnvironment, recentSends int, candidates []activities.PublicationCandidate, sends *[]activities.SendPublicationInput, gateFailFirst bool, completed *[]string) {
	registerActivityName(env, "CountRecentSendsActivity", func(context.Context, activities.CountRecentSendsInput) (activities.CountRecentSendsOutput, error) {
		return activities.CountRecentSendsOutput{Count: recentSends}, nil
	})
	registerActivityName(env, "EvaluateTriggersActivity", func(context.Context) (activities.EvaluateTriggersOutput, error) {
		return activities.EvaluateTriggersOutput{Candidates: candidates}, nil
	})
	registerActivityName(env, "GetProjectActivity", func(_ context.Context, in activities.GetProjectInput) (activities.GetProjectOutput, error) {
		return activities.GetProjectOutput{Project: models.Project{
			ProjectID:       in.ProjectID,
			Title:           "Language and Existence",
			CentralQuestion: "What does it mean to exist primarily in language?",
		}}, nil
	})
	registerActivityName(env, "LLMGenerateActivity", func(context.Context, activities.LLMGenerateInput) (activities.LLMGenerateOutput, error) {
		return activities.LLMGenerateOutput{Text: "A composed piece on language and existence.", ProviderName: "mock", Model: "mock-llm-v1"}, nil
	})
	registerActivityName(env, "SendPublicationActivity", func(_ context.Context, in activities.SendPublicationInput) (activities.SendPublicationOutput, error) {
		*sends = append(*sends, in)
		if gateFailFirst && len(*sends) == 1 {
			return activities.SendPublicationOutput{GatePassed: false, GateReason: "too short for a research note"}, nil
		}
		return activities.SendPublicationOutput{
			PublicationID: "pub-1",
			ExternalURL:   "https://mock.publication/1",
			GatePassed:    true,
		}, nil
	})
	registerActivityName(env, "MarkProjectCompletedActivity", func(_ context.Context, in activities.MarkProjectCompletedInput) error {
		*completed = append(*completed, in.ProjectID)
		return nil
	})
}

func TestPublicationScanSendsHighestPriorityOnly(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(PublicationScanWorkflow)

	var sends []activities.SendPublicationInput
	var completed []string
	registerScanStubs(env, 0, []activities.PublicationCandidate{
		{ProjectID: "proj-1", Type: models.PubEssay, TriggerReason: models.TriggerResearchComplete, Priority: 10},
		{ProjectID: "proj-1", Type: models.PubNote, TriggerReason: models.TriggerArgumentDevelopment + ":arg-1", Priority: 6},
	}, &sends, false, &completed)

	env.ExecuteWorkflow(PublicationScanWorkflow, PublicationScanInput{Once: true, LLMProviders: 1})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out int
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Equal(t, 1, out)
	require.Len(t, sends, 1)
	require.Equal(t, models.TriggerResearchComplete, sends[0].TriggerReason)
	require.Equal(t, []string{"proj-1"}, completed)
}

func TestPublicationScanRespectsSendWindow(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(PublicationScanWorkflow)

	var sends []activities.SendPublicationInput
	var completed []string
	registerScanStubs(env, 2, []activities.PublicationCandidate{
		{ProjectID: "proj-1", Type: models.PubNote, TriggerReason: models.TriggerSignificantReading + ":sess-1", Priority: 7},
	}, &sends, false, &completed)

	env.ExecuteWorkflow(PublicationScanWorkflow, PublicationScanInput{Once: true, SendWindowLimit: 2, LLMProviders: 1})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	var out int
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Zero(t, out)
	require.Empty(t, sends)
}

func TestPublicationScanGateRejectionSendsNothing(t *testing.T) {
	var ts testsuite.WorkflowTestSuite
	env := ts.NewTestWorkflowEnvironment()
	env.RegisterWorkflow(PublicationScanWorkflow)

	var sends []activities.SendPublicationInput
	var completed []string
	registerScanStubs(env, 0, []activities.PublicationCandidate{
		{ProjectID: "proj-1", Type: models.PubNote, TriggerReason: models.TriggerSignificantReading + ":sess-1", Priority: 7},
		{ProjectID: "proj-1", Type: models.PubNote, TriggerReason: models.TriggerCommunityInsight + ":contrib-1", Priority: 5, Mentions: []string{"reader-a"}},
	}, &sends, true, &completed)

	env.ExecuteWorkflow(PublicationScanWorkflow, PublicationScanInput{Once: true, LLMProviders: 1})
	require.True(t, env.IsWorkflowCompleted())
	require.NoError(t, env.GetWorkflowError())

	// Only the top candidate is gated; its rejection ends the scan without
	// promoting the lower-priority candidate.
	var out int
	require.NoError(t, env.GetWorkflowResult(&out))
	require.Zero(t, out)
	require.Len(t, sends, 1)
	require.Equal(t, models.TriggerSignificantReading+":sess-1", sends[0].TriggerReason)
	require.Empty(t, completed)
}
