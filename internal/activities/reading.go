package activities

import (
	"context"
	"path/filepath"

	"ariadne/internal/models"
	"ariadne/internal/scoring"
	"ariadne/internal/util"

	"github.com/google/uuid"
)

// candidateDepth is the session depth below which a session is never a
// publication candidate.
const candidateDepth = 0.6

// publicationCandidate marks a session worth surfacing as a reading trigger:
// deep enough, with at least two insights to build a note on. Community input
// raises its own trigger through contributions and does not count here.
func publicationCandidate(depth float64, insightCount int) bool {
	return depth >= candidateDepth && insightCount >= 2
}

func (a *Activities) NextReadingItemActivity(ctx context.Context, in NextReadingItemInput) (NextReadingItemOutput, error) {
	item, found, err := a.readingRepo.NextSeekingItem(ctx, in.ProjectID)
	if err != nil {
		return NextReadingItemOutput{}, err
	}
	return NextReadingItemOutput{Item: item, Found: found}, nil
}

func (a *Activities) GetReadingItemActivity(ctx context.Context, in GetReadingItemInput) (GetReadingItemOutput, error) {
	item, err := a.readingRepo.GetItem(ctx, in.ItemID)
	if err != nil {
		return GetReadingItemOutput{}, err
	}
	return GetReadingItemOutput{Item: item}, nil
}

// LocateItemActivity searches the library for an item that was suggested
// without a source URL and records the first hit.
func (a *Activities) LocateItemActivity(ctx context.Context, in LocateItemInput) (LocateItemOutput, error) {
	candidates, err := a.library.Search(ctx, in.Title)
	if err != nil {
		return LocateItemOutput{}, err
	}
	if len(candidates) == 0 {
		return LocateItemOutput{}, nil
	}
	url := candidates[0].URL
	if err := a.readingRepo.SetItemSource(ctx, in.ItemID, url, models.ItemFound); err != nil {
		return LocateItemOutput{}, err
	}
	return LocateItemOutput{SourceURL: url, Located: true}, nil
}

func (a *Activities) UpdateItemStatusActivity(ctx context.Context, in UpdateItemStatusInput) error {
	return a.readingRepo.UpdateItemStatus(ctx, in.ItemID, in.Status)
}

func (a *Activities) FetchSourceTextActivity(ctx context.Context, in FetchSourceTextInput) (FetchSourceTextOutput, error) {
	text, err := a.library.Fetch(ctx, in.URL)
	if err != nil {
		return FetchSourceTextOutput{}, err
	}
	return FetchSourceTextOutput{Text: util.SanitizeText(text)}, nil
}

func (a *Activities) ListOpenContributionsActivity(ctx context.Context, in ListOpenContributionsInput) (ListOpenContributionsOutput, error) {
	contributions, err := a.contributionRepo.ListUnincorporated(ctx, in.ProjectID)
	if err != nil {
		return ListOpenContributionsOutput{}, err
	}
	return ListOpenContributionsOutput{Contributions: contributions}, nil
}

func (a *Activities) MarkContributionIncorporatedActivity(ctx context.Context, in MarkContributionIncorporatedInput) error {
	return a.contributionRepo.MarkIncorporated(ctx, in.ContributionID)
}

// RecordReadingSessionActivity derives the session's depth score and extracted
// material from its content, persists it, and advances the reading list item.
// Completing the synthesis phase counts the text as read.
func (a *Activities) RecordReadingSessionActivity(ctx context.Context, in RecordReadingSessionInput) (RecordReadingSessionOutput, error) {
	depth := scoring.ReadingDepth(in.Content, in.Phase)
	insights := scoring.ExtractInsights(in.Content)
	session := models.ReadingSession{
		SessionID:            uuid.NewString(),
		ProjectID:            in.ProjectID,
		ItemID:               in.ItemID,
		Phase:                in.Phase,
		Content:              in.Content,
		Insights:             insights,
		Questions:            scoring.ExtractQuestions(in.Content),
		Connections:          scoring.ExtractConnections(in.Content),
		DepthScore:           depth,
		CommunityInput:       in.CommunityInput,
		PublicationCandidate: publicationCandidate(depth, len(insights)),
	}
	if err := a.readingRepo.AppendSession(ctx, session); err != nil {
		return RecordReadingSessionOutput{}, err
	}

	itemStatus := models.ItemReading
	textsReadDelta := 0
	if in.Phase == models.PhaseSynthesisIntegration {
		itemStatus = models.ItemCompleted
		textsReadDelta = 1
	}
	if err := a.readingRepo.UpdateItemStatus(ctx, in.ItemID, itemStatus); err != nil {
		return RecordReadingSessionOutput{}, err
	}
	if err := a.projectRepo.RecordReadingProgress(ctx, in.ProjectID, textsReadDelta, depth*0.1); err != nil {
		return RecordReadingSessionOutput{}, err
	}
	return RecordReadingSessionOutput{Session: session}, nil
}

func (a *Activities) WriteSessionArtifactActivity(ctx context.Context, in WriteSessionArtifactInput) (WriteSessionArtifactOutput, error) {
	_ = ctx
	path := filepath.Join(a.cfg.DataOutRoot, in.Session.ProjectID, "sessions", in.Session.SessionID+".json")
	if err := util.WriteJSONAtomic(path, in.Session); err != nil {
		return WriteSessionArtifactOutput{}, err
	}
	return WriteSessionArtifactOutput{Path: path}, nil
}
