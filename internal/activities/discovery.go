package activities

import (
	"context"
	"fmt"

	"ariadne/internal/models"
	"ariadne/internal/scoring"

	"github.com/google/uuid"
)

func (a *Activities) ListItemTitlesActivity(ctx context.Context, in ListItemTitlesInput) (ListItemTitlesOutput, error) {
	titles, err := a.readingRepo.ListItemTitles(ctx, in.ProjectID)
	if err != nil {
		return ListItemTitlesOutput{}, err
	}
	return ListItemTitlesOutput{Titles: titles}, nil
}

func (a *Activities) SearchSourcesActivity(ctx context.Context, in SearchSourcesInput) (SearchSourcesOutput, error) {
	candidates, err := a.library.Search(ctx, in.Term)
	if err != nil {
		return SearchSourcesOutput{}, err
	}
	return SearchSourcesOutput{Candidates: candidates}, nil
}

// ScoreSourceActivity fetches a candidate's text, scores it on the five quality
// dimensions, and records the result. Fetch failures surface as errors so the
// caller can drop the candidate without failing the run.
func (a *Activities) ScoreSourceActivity(ctx context.Context, in ScoreSourceInput) (ScoreSourceOutput, error) {
	content, err := a.library.Fetch(ctx, in.Candidate.URL)
	if err != nil {
		return ScoreSourceOutput{}, fmt.Errorf("fetch candidate %q: %w", in.Candidate.URL, err)
	}

	quality := scoring.SourceQuality(in.Candidate.Title, in.Candidate.Author, in.Candidate.URL, content, in.SearchTerms, in.ExistingTitles)
	source := models.DiscoveredSource{
		SourceID:       uuid.NewString(),
		ProjectID:      in.ProjectID,
		Title:          in.Candidate.Title,
		Author:         in.Candidate.Author,
		URL:            in.Candidate.URL,
		SearchTerm:     in.Term,
		Relevance:      quality.Dimensions.Relevance,
		Credibility:    quality.Dimensions.Credibility,
		Novelty:        quality.Dimensions.Novelty,
		Depth:          quality.Dimensions.Depth,
		Accessibility:  quality.Dimensions.Accessibility,
		Overall:        quality.Overall,
		Recommendation: quality.Recommendation,
	}
	if err := a.sourceRepo.RecordSource(ctx, source); err != nil {
		return ScoreSourceOutput{}, err
	}
	return ScoreSourceOutput{Source: source}, nil
}

// PromoteSourceActivity puts a scored source on the reading list. The priority
// follows the recommendation tier.
func (a *Activities) PromoteSourceActivity(ctx context.Context, in PromoteSourceInput) (PromoteSourceOutput, error) {
	priority := models.PriorityLow
	switch in.Source.Recommendation {
	case models.RecommendHighPriority:
		priority = models.PriorityHigh
	case models.RecommendMediumPriority:
		priority = models.PriorityMedium
	}
	item := models.ReadingListItem{
		ItemID:      uuid.NewString(),
		ProjectID:   in.Source.ProjectID,
		Title:       in.Source.Title,
		Author:      in.Source.Author,
		SourceURL:   in.Source.URL,
		Priority:    priority,
		Status:      models.ItemFound,
		SuggestedBy: "autonomous_discovery",
	}
	if err := a.readingRepo.AddItem(ctx, item); err != nil {
		return PromoteSourceOutput{}, err
	}
	if err := a.sourceRepo.MarkPromoted(ctx, in.Source.SourceID); err != nil {
		return PromoteSourceOutput{}, err
	}
	return PromoteSourceOutput{ItemID: item.ItemID}, nil
}

func (a *Activities) TouchDiscoveryActivity(ctx context.Context, in TouchDiscoveryInput) error {
	return a.projectRepo.TouchDiscovery(ctx, in.ProjectID)
}
