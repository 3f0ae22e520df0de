package activities

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"ariadne/internal/models"
	"ariadne/internal/publish"
	"ariadne/internal/util"

	"github.com/google/uuid"
)

// Send priority per trigger family. Higher wins when several triggers are
// pending in the same scan.
var triggerPriorities = map[string]int{
	models.TriggerResearchComplete:    10,
	models.TriggerNewProject:          9,
	models.TriggerSignificantReading:  7,
	models.TriggerArgumentDevelopment: 6,
	models.TriggerCommunityInsight:    5,
}

// validationPublishable is the validation score at which an argument is worth
// a research note.
const validationPublishable = 0.7

// EvaluateTriggersActivity walks every active project and returns the pending
// publication candidates, highest priority first. A trigger reason carries the
// identity of the row that raised it, so a reason that has already produced a
// publication is skipped for good.
func (a *Activities) EvaluateTriggersActivity(ctx context.Context) (EvaluateTriggersOutput, error) {
	projects, err := a.projectRepo.ListActiveProjects(ctx)
	if err != nil {
		return EvaluateTriggersOutput{}, err
	}

	out := EvaluateTriggersOutput{Candidates: make([]PublicationCandidate, 0)}
	for _, p := range projects {
		candidates, err := a.projectCandidates(ctx, p)
		if err != nil {
			return EvaluateTriggersOutput{}, err
		}
		out.Candidates = append(out.Candidates, candidates...)
	}
	sort.SliceStable(out.Candidates, func(i, j int) bool {
		return out.Candidates[i].Priority > out.Candidates[j].Priority
	})
	return out, nil
}

func (a *Activities) projectCandidates(ctx context.Context, p models.Project) ([]PublicationCandidate, error) {
	candidates := make([]PublicationCandidate, 0)

	add := func(pubType, reason, contextText string, mentions []string) error {
		exists, err := a.publicationRepo.ExistsForTrigger(ctx, p.ProjectID, reason)
		if err != nil || exists {
			return err
		}
		family, _, _ := strings.Cut(reason, ":")
		candidates = append(candidates, PublicationCandidate{
			ProjectID:     p.ProjectID,
			Type:          pubType,
			TriggerReason: reason,
			Priority:      triggerPriorities[family],
			Mentions:      mentions,
			ContextText:   contextText,
		})
		return nil
	}

	complete, err := a.CheckResearchCompleteActivity(ctx, CheckResearchCompleteInput{ProjectID: p.ProjectID})
	if err != nil {
		return nil, err
	}
	if complete.Complete {
		if err := add(models.PubEssay, models.TriggerResearchComplete, p.CentralQuestion, nil); err != nil {
			return nil, err
		}
	}

	if err := add(models.PubAnnouncement, models.TriggerNewProject, p.CentralQuestion, nil); err != nil {
		return nil, err
	}

	sessions, err := a.readingRepo.ListCandidateSessions(ctx, p.ProjectID)
	if err != nil {
		return nil, err
	}
	for _, s := range sessions {
		reason := fmt.Sprintf("%s:%s", models.TriggerSignificantReading, s.SessionID)
		if err := add(models.PubNote, reason, firstOrEmpty(s.Insights), nil); err != nil {
			return nil, err
		}
	}

	arguments, err := a.argumentRepo.List(ctx, p.ProjectID)
	if err != nil {
		return nil, err
	}
	for _, arg := range arguments {
		if arg.LastValidationScore == nil || *arg.LastValidationScore < validationPublishable {
			continue
		}
		reason := fmt.Sprintf("%s:%s", models.TriggerArgumentDevelopment, arg.ArgumentID)
		if err := add(models.PubNote, reason, arg.Title, nil); err != nil {
			return nil, err
		}
	}

	contributions, err := a.contributionRepo.ListByProject(ctx, p.ProjectID)
	if err != nil {
		return nil, err
	}
	for _, c := range contributions {
		if !c.Incorporated {
			continue
		}
		reason := fmt.Sprintf("%s:%s", models.TriggerCommunityInsight, c.ContributionID)
		if err := add(models.PubNote, reason, c.Content, []string{c.Contributor}); err != nil {
			return nil, err
		}
	}
	return candidates, nil
}

func (a *Activities) CountRecentSendsActivity(ctx context.Context, in CountRecentSendsInput) (CountRecentSendsOutput, error) {
	since := time.Now().UTC().Add(-time.Duration(in.WindowHours) * time.Hour)
	n, err := a.publicationRepo.CountSentSince(ctx, since)
	if err != nil {
		return CountRecentSendsOutput{}, err
	}
	return CountRecentSendsOutput{Count: n}, nil
}

// SendPublicationActivity runs the quality gate, delivers the document, and
// records the sent copy. A gate rejection is a normal outcome, not an error.
func (a *Activities) SendPublicationActivity(ctx context.Context, in SendPublicationInput) (SendPublicationOutput, error) {
	p, err := a.projectRepo.GetProject(ctx, in.ProjectID)
	if err != nil {
		return SendPublicationOutput{}, err
	}
	gate := publish.Gate(in.Type, in.Title, in.Content, p.CentralQuestion)
	if !gate.Pass {
		return SendPublicationOutput{GatePassed: false, GateReason: gate.Reason}, nil
	}

	externalURL, err := a.channel.Send(ctx, in.Title, in.Content)
	if err != nil {
		return SendPublicationOutput{}, fmt.Errorf("send publication: %w", err)
	}

	pub := models.Publication{
		PublicationID:     uuid.NewString(),
		ProjectID:         in.ProjectID,
		Type:              in.Type,
		Title:             in.Title,
		Content:           in.Content,
		TriggerReason:     in.TriggerReason,
		CommunityMentions: in.Mentions,
		ExternalURL:       externalURL,
	}
	if err := a.publicationRepo.Insert(ctx, pub); err != nil {
		return SendPublicationOutput{}, err
	}
	base := filepath.Join(a.cfg.DataOutRoot, in.ProjectID, "publications", pub.PublicationID)
	if err := util.WriteJSONAtomic(base+".json", pub); err != nil {
		return SendPublicationOutput{}, err
	}
	if err := util.WriteTextAtomic(base+".md", "# "+pub.Title+"\n\n"+pub.Content+"\n"); err != nil {
		return SendPublicationOutput{}, err
	}
	return SendPublicationOutput{PublicationID: pub.PublicationID, ExternalURL: externalURL, GatePassed: true}, nil
}

func firstOrEmpty(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[0]
}
