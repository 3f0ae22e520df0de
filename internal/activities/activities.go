package activities

import (
	"context"
	"fmt"

	"ariadne/internal/config"
	"ariadne/internal/fetch"
	"ariadne/internal/providers"
	"ariadne/internal/publish"
	"ariadne/internal/storage"
)

type Activities struct {
	cfg              config.Config
	projectRepo      *storage.ProjectRepo
	readingRepo      *storage.ReadingRepo
	argumentRepo     *storage.ArgumentRepo
	sourceRepo       *storage.SourceRepo
	publicationRepo  *storage.PublicationRepo
	contributionRepo *storage.ContributionRepo
	library          fetch.Library
	channel          publish.Channel
	providers        *providers.Manager
}

func New(cfg config.Config, db *storage.DB) (*Activities, error) {
	pm, err := providers.NewManager(cfg.LLMProviders)
	if err != nil {
		return nil, err
	}
	var library fetch.Library = fetch.NewMockLibrary()
	if cfg.SearchBaseURL != "" && cfg.SearchBaseURL != "mock" {
		library = fetch.NewHTTPLibrary(cfg.SearchBaseURL, nil)
	}
	var channel publish.Channel = publish.NewMockChannel()
	if cfg.PublishBaseURL != "" && cfg.PublishBaseURL != "mock" {
		channel = publish.NewHTTPChannel(cfg.PublishBaseURL, nil)
	}
	return &Activities{
		cfg:              cfg,
		projectRepo:      storage.NewProjectRepo(db),
		readingRepo:      storage.NewReadingRepo(db),
		argumentRepo:     storage.NewArgumentRepo(db),
		sourceRepo:       storage.NewSourceRepo(db),
		publicationRepo:  storage.NewPublicationRepo(db),
		contributionRepo: storage.NewContributionRepo(db),
		library:          library,
		channel:          channel,
		providers:        pm,
	}, nil
}

func (a *Activities) GetProjectActivity(ctx context.Context, in GetProjectInput) (GetProjectOutput, error) {
	p, err := a.projectRepo.GetProject(ctx, in.ProjectID)
	if err != nil {
		return GetProjectOutput{}, err
	}
	return GetProjectOutput{Project: p}, nil
}

func (a *Activities) ListActiveProjectsActivity(ctx context.Context) (ListActiveProjectsOutput, error) {
	projects, err := a.projectRepo.ListActiveProjects(ctx)
	if err != nil {
		return ListActiveProjectsOutput{}, err
	}
	return ListActiveProjectsOutput{Projects: projects}, nil
}

func (a *Activities) LLMGenerateActivity(ctx context.Context, in LLMGenerateInput) (LLMGenerateOutput, error) {
	p, ref := a.providers.ProviderByIndex(in.ProviderIndex)
	resp, info, err := p.Generate(ctx, providers.GenerateRequest{
		Operation: in.Operation,
		Prompt:    in.Prompt,
		Context:   in.Context,
		MaxLength: in.MaxLength,
	})
	if err != nil {
		return LLMGenerateOutput{}, fmt.Errorf("llm generate via %s: %w", ref.Name, err)
	}
	return LLMGenerateOutput{Text: resp.Text, ProviderName: info.Name, Model: info.Model}, nil
}

func (a *Activities) UpdateProjectFramingActivity(ctx context.Context, in UpdateProjectFramingInput) error {
	return a.projectRepo.UpdateFraming(ctx, in.ProjectID, in.Title, in.Description)
}

func (a *Activities) UpdateSearchTermsActivity(ctx context.Context, in UpdateSearchTermsInput) error {
	return a.projectRepo.UpdateSearchTerms(ctx, in.ProjectID, in.Terms)
}

func (a *Activities) MarkProjectCompletedActivity(ctx context.Context, in MarkProjectCompletedInput) error {
	return a.projectRepo.MarkCompleted(ctx, in.ProjectID)
}

func (a *Activities) CheckResearchCompleteActivity(ctx context.Context, in CheckResearchCompleteInput) (CheckResearchCompleteOutput, error) {
	p, err := a.projectRepo.GetProject(ctx, in.ProjectID)
	if err != nil {
		return CheckResearchCompleteOutput{}, err
	}
	if p.TextsRead < p.MinTextsRequired {
		return CheckResearchCompleteOutput{}, nil
	}
	validated, err := a.argumentRepo.CountValidated(ctx, in.ProjectID)
	if err != nil {
		return CheckResearchCompleteOutput{}, err
	}
	return CheckResearchCompleteOutput{Complete: validated > 0}, nil
}
