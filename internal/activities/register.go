package activities

import "go.temporal.io/sdk/worker"

func Register(w worker.Worker, a *Activities) {
	w.RegisterActivity(a.GetProjectActivity)
	w.RegisterActivity(a.ListActiveProjectsActivity)
	w.RegisterActivity(a.LLMGenerateActivity)
	w.RegisterActivity(a.UpdateProjectFramingActivity)
	w.RegisterActivity(a.UpdateSearchTermsActivity)
	w.RegisterActivity(a.MarkProjectCompletedActivity)
	w.RegisterActivity(a.CheckResearchCompleteActivity)
	w.RegisterActivity(a.ListItemTitlesActivity)
	w.RegisterActivity(a.SearchSourcesActivity)
	w.RegisterActivity(a.ScoreSourceActivity)
	w.RegisterActivity(a.PromoteSourceActivity)
	w.RegisterActivity(a.TouchDiscoveryActivity)
	w.RegisterActivity(a.NextReadingItemActivity)
	w.RegisterActivity(a.GetReadingItemActivity)
	w.RegisterActivity(a.LocateItemActivity)
	w.RegisterActivity(a.UpdateItemStatusActivity)
	w.RegisterActivity(a.FetchSourceTextActivity)
	w.RegisterActivity(a.ListOpenContributionsActivity)
	w.RegisterActivity(a.MarkContributionIncorporatedActivity)
	w.RegisterActivity(a.RecordReadingSessionActivity)
	w.RegisterActivity(a.WriteSessionArtifactActivity)
	w.RegisterActivity(a.EvaluateTriggersActivity)
	w.RegisterActivity(a.CountRecentSendsActivity)
	w.RegisterActivity(a.SendPublicationActivity)
}
