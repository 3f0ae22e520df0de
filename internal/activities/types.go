package activities

import (
	"ariadne/internal/fetch"
	"ariadne/internal/models"
)

type GetProjectInput struct {
	ProjectID string `json:"project_id"`
}

type GetProjectOutput struct {
	Project models.Project `json:"project"`
}

type ListActiveProjectsOutput struct {
	Projects []models.Project `json:"projects"`
}

type LLMGenerateInput struct {
	Operation     string   `json:"operation"`
	ProjectID     string   `json:"project_id"`
	Prompt        string   `json:"prompt"`
	Context       []string `json:"context"`
	MaxLength     int      `json:"max_length"`
	ProviderIndex int      `json:"provider_index"`
}

type LLMGenerateOutput struct {
	Text         string `json:"text"`
	ProviderName string `json:"provider_name"`
	Model        string `json:"model"`
}

type UpdateProjectFramingInput struct {
	ProjectID   string `json:"project_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type UpdateSearchTermsInput struct {
	ProjectID string   `json:"project_id"`
	Terms     []string `json:"terms"`
}

type ListItemTitlesInput struct {
	ProjectID string `json:"project_id"`
}

type ListItemTitlesOutput struct {
	Titles []string `json:"titles"`
}

type SearchSourcesInput struct {
	ProjectID string `json:"project_id"`
	Term      string `json:"term"`
}

type SearchSourcesOutput struct {
	Candidates []fetch.Candidate `json:"candidates"`
}

type ScoreSourceInput struct {
	ProjectID      string          `json:"project_id"`
	Term           string          `json:"term"`
	Candidate      fetch.Candidate `json:"candidate"`
	SearchTerms    []string        `json:"search_terms"`
	ExistingTitles []string        `json:"existing_titles"`
}

type ScoreSourceOutput struct {
	Source models.DiscoveredSource `json:"source"`
}

type PromoteSourceInput struct {
	Source models.DiscoveredSource `json:"source"`
}

type PromoteSourceOutput struct {
	ItemID string `json:"item_id"`
}

type TouchDiscoveryInput struct {
	ProjectID string `json:"project_id"`
}

type NextReadingItemInput struct {
	ProjectID string `json:"project_id"`
}

type NextReadingItemOutput struct {
	Item  models.ReadingListItem `json:"item"`
	Found bool                   `json:"found"`
}

type GetReadingItemInput struct {
	ItemID string `json:"item_id"`
}

type GetReadingItemOutput struct {
	Item models.ReadingListItem `json:"item"`
}

type LocateItemInput struct {
	ItemID string `json:"item_id"`
	Title  string `json:"title"`
}

type LocateItemOutput struct {
	SourceURL string `json:"source_url"`
	Located   bool   `json:"located"`
}

type UpdateItemStatusInput struct {
	ItemID string `json:"item_id"`
	Status string `json:"status"`
}

type FetchSourceTextInput struct {
	URL string `json:"url"`
}

type FetchSourceTextOutput struct {
	Text string `json:"text"`
}

type ListOpenContributionsInput struct {
	ProjectID string `json:"project_id"`
}

type ListOpenContributionsOutput struct {
	Contributions []models.Contribution `json:"contributions"`
}

type MarkContributionIncorporatedInput struct {
	ContributionID string `json:"contribution_id"`
}

type RecordReadingSessionInput struct {
	ProjectID      string `json:"project_id"`
	ItemID         string `json:"item_id"`
	Phase          string `json:"phase"`
	Content        string `json:"content"`
	CommunityInput bool   `json:"community_input"`
}

type RecordReadingSessionOutput struct {
	Session models.ReadingSession `json:"session"`
}

type WriteSessionArtifactInput struct {
	Session models.ReadingSession `json:"session"`
}

type WriteSessionArtifactOutput struct {
	Path string `json:"path"`
}

type CheckResearchCompleteInput struct {
	ProjectID string `json:"project_id"`
}

type CheckResearchCompleteOutput struct {
	Complete bool `json:"complete"`
}

type MarkProjectCompletedInput struct {
	ProjectID string `json:"project_id"`
}

// PublicationCandidate is one pending trigger with its send priority.
type PublicationCandidate struct {
	ProjectID     string   `json:"project_id"`
	Type          string   `json:"type"`
	TriggerReason string   `json:"trigger_reason"`
	Priority      int      `json:"priority"`
	Mentions      []string `json:"mentions,omitempty"`
	ContextText   string   `json:"context_text,omitempty"`
}

type EvaluateTriggersOutput struct {
	Candidates []PublicationCandidate `json:"candidates"`
}

type CountRecentSendsInput struct {
	WindowHours int `json:"window_hours"`
}

type CountRecentSendsOutput struct {
	Count int `json:"count"`
}

type SendPublicationInput struct {
	ProjectID     string   `json:"project_id"`
	Type          string   `json:"type"`
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	TriggerReason string   `json:"trigger_reason"`
	Mentions      []string `json:"mentions,omitempty"`
}

type SendPublicationOutput struct {
	PublicationID string `json:"publication_id"`
	ExternalURL   string `json:"external_url"`
	GatePassed    bool   `json:"gate_passed"`
	GateReason    string `json:"gate_reason,omitempty"`
}
