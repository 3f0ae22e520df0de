package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive    = "active"
	StatusCompleted = "completed"
)

const (
	PhaseInitialEncounter     = "initial_encounter"
	PhaseDeepAnalysis         = "deep_analysis"
	PhasePhilosophicalResp    = "philosophical_response"
	PhaseSynthesisIntegration = "synthesis_integration"
)

// ReadingPhases is the strict order a text moves through.
var ReadingPhases = []string{
	PhaseInitialEncounter,
	PhaseDeepAnalysis,
	PhasePhilosophicalResp,
	PhaseSynthesisIntegration,
}

// PhaseRank returns the position of a phase in the reading order, or -1.
func PhaseRank(phase string) int {
	for i, p := range ReadingPhases {
		if p == phase {
			return i
		}
	}
	return -1
}

const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

const (
	ItemSeeking   = "seeking"
	ItemFound     = "found"
	ItemReading   = "reading"
	ItemCompleted = "completed"
)

const (
	RecommendHighPriority   = "high_priority"
	RecommendMediumPriority = "medium_priority"
	RecommendLowPriority    = "low_priority"
	RecommendSkip           = "skip"
)

const (
	PubAnnouncement = "research_announcement"
	PubNote         = "research_note"
	PubEssay        = "major_essay"
)

const (
	TriggerResearchComplete    = "research_complete"
	TriggerNewProject          = "new_project"
	TriggerSignificantReading  = "significant_reading"
	TriggerArgumentDevelopment = "argument_development"
	TriggerCommunityInsight    = "community_insight"
)

type Project struct {
	ProjectID        string     `json:"project_id"`
	Title            string     `json:"title"`
	CentralQuestion  string     `json:"central_question"`
	Description      string     `json:"description,omitempty"`
	Status           string     `json:"status"`
	StartedAt        time.Time  `json:"started_at"`
	EstimatedWeeks   int        `json:"estimated_weeks"`
	MinTextsRequired int        `json:"min_texts_required"`
	SearchTerms      []string   `json:"search_terms"`
	TextsRead        int        `json:"texts_read"`
	ArgumentMaturity float64    `json:"argument_maturity"`
	LastDiscoveryAt  *time.Time `json:"last_discovery_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type ReadingListItem struct {
	ItemID      string    `json:"item_id"`
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	SourceURL   string    `json:"source_url,omitempty"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	SuggestedBy string    `json:"suggested_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ReadingSession struct {
	SessionID            string    `json:"session_id"`
	ProjectID            string    `json:"project_id"`
	ItemID               string    `json:"item_id"`
	Phase                string    `json:"phase"`
	Content              string    `json:"content"`
	Insights             []string  `json:"insights"`
	Questions            []string  `json:"questions"`
	Connections          []string  `json:"connections"`
	DepthScore           float64   `json:"depth_score"`
	CommunityInput       bool      `json:"community_input"`
	PublicationCandidate bool      `json:"publication_candidate"`
	CreatedAt            time.Time `json:"created_at"`
}

type CounterArgument struct {
	Content     string    `json:"content"`
	Contributor string    `json:"contributor"`
	At          time.Time `json:"at"`
}

type Argument struct {
	ArgumentID          string            `json:"argument_id"`
	ProjectID           string            `json:"project_id"`
	Title               string            `json:"title"`
	InitialIntuition    string            `json:"initial_intuition"`
	Evidence            []string          `json:"evidence"`
	CounterArguments    []CounterArgument `json:"counter_arguments"`
	Confidence          float64           `json:"confidence"`
	EvidenceStrength    float64           `json:"evidence_strength"`
	Citations           []string          `json:"citations"`
	CommunityWeight     float64           `json:"community_weight"`
	LastValidationScore *float64          `json:"last_validation_score,omitempty"`
	LastValidatedAt     *time.Time        `json:"last_validated_at,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// InitialConfidence is where every argument starts before any validation or
// community adjustment.
const InitialConfidence = 0.3

// NewArgument builds a fresh argument at the initial confidence.
func NewArgument(projectID, title, initialIntuition string, evidence, citations []string) Argument {
	return Argument{
		ArgumentID:       uuid.NewString(),
		ProjectID:        projectID,
		Title:            title,
		InitialIntuition: initialIntuition,
		Evidence:         evidence,
		Citations:        citations,
		Confidence:       InitialConfidence,
	}
}

type DiscoveredSource struct {
	SourceID       string    `json:"source_id"`
	ProjectID      string    `json:"project_id"`
	Title          string    `json:"title"`
	Author         string    `json:"author,omitempty"`
	URL            string    `json:"url"`
	SearchTerm     string    `json:"search_term"`
	Relevance      float64   `json:"relevance"`
	Credibility    float64   `json:"credibility"`
	Novelty        float64   `json:"novelty"`
	Depth          float64   `json:"depth"`
	Accessibility  float64   `json:"accessibility"`
	Overall        float64   `json:"overall"`
	Recommendation string    `json:"recommendation"`
	Promoted       bool      `json:"promoted"`
	CreatedAt      time.Time `json:"created_at"`
}

type Publication struct {
	PublicationID     string    `json:"publication_id"`
	ProjectID         string    `json:"project_id,omitempty"`
	Type              string    `json:"type"`
	Title             string    `json:"title"`
	Content           string    `json:"content"`
	TriggerReason     string    `json:"trigger_reason"`
	CommunityMentions []string  `json:"community_mentions,omitempty"`
	ExternalURL       string    `json:"external_url,omitempty"`
	SentAt            time.Time `json:"sent_at"`
	CreatedAt         time.Time `json:"created_at"`
}

type Contribution struct {
	ContributionID string    `json:"contribution_id"`
	ProjectID      string    `json:"project_id"`
	ItemID         string    `json:"item_id,omitempty"`
	Contributor    string    `json:"contributor"`
	Content        string    `json:"content"`
	Incorporated   bool      `json:"incorporated"`
	CreatedAt      time.Time `json:"created_at"`
}

const (
	ProjectPhaseInitialSetup   = "initial_setup"
	ProjectPhaseReading        = "reading_phase"
	ProjectPhaseArgumentDev    = "argument_development"
	ProjectPhaseSynthesisReady = "synthesis_ready"
)

// CurrentProjectPhase derives the project phase from stored counts so it can
// never drift from the underlying rows. An argument counts as refined once it
// has been validated at least once.
func CurrentProjectPhase(sessionCount, argumentCount, validatedArgumentCount int) string {
	switch {
	case sessionCount == 0:
		return ProjectPhaseInitialSetup
	case argumentCount == 0:
		return ProjectPhaseReading
	case validatedArgumentCount == 0:
		return ProjectPhaseArgumentDev
	default:
		return ProjectPhaseSynthesisReady
	}
}

var hardTopicKeywords = []string{
	"consciousness", "metaphysics", "phenomenology", "epistemology",
	"ontology", "transcendental", "dialectic",
}

// MinTextsForQuestion sets the reading floor for a project: three texts plus
// one for each hard-topic keyword the central question touches.
func MinTextsForQuestion(centralQuestion string) int {
	min := 3
	lower := strings.ToLower(centralQuestion)
	for _, kw := range hardTopicKeywords {
		if strings.Contains(lower, kw) {
			min++
		}
	}
	return min
}

// NextRecommendedAction maps the derived phase to the action a dashboard
// surfaces to the operator.
func NextRecommendedAction(phase string) string {
	switch phase {
	case ProjectPhaseInitialSetup:
		return "begin a reading session on the highest-priority reading list item"
	case ProjectPhaseReading:
		return "draft an initial argument from accumulated session insights"
	case ProjectPhaseArgumentDev:
		return "validate the developing arguments against their evidence"
	default:
		return "synthesize arguments toward a publishable essay"
	}
}
