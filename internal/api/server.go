package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"ariadne/internal/config"
	"ariadne/internal/models"
	"ariadne/internal/scoring"
	"ariadne/internal/storage"
	"ariadne/internal/workflows"

	"github.com/google/uuid"
	enumspb "go.temporal.io/api/enums/v1"
	tclient "go.temporal.io/sdk/client"
)

type Server struct {
	cfg              config.Config
	db               *storage.DB
	projectRepo      *storage.ProjectRepo
	readingRepo      *storage.ReadingRepo
	argumentRepo     *storage.ArgumentRepo
	sourceRepo       *storage.SourceRepo
	publicationRepo  *storage.PublicationRepo
	contributionRepo *storage.ContributionRepo
	temporal         tclient.Client
}

func NewServer(cfg config.Config) *Server {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	db, err := storage.NewDB(ctx, cfg.PostgresURL)
	if err != nil {
		panic(err)
	}
	tc, err := tclient.Dial(tclient.Options{HostPort: cfg.TemporalAddress})
	if err != nil {
		panic(err)
	}
	return &Server{
		cfg:              cfg,
		db:               db,
		projectRepo:      storage.NewProjectRepo(db),
		readingRepo:      storage.NewReadingRepo(db),
		argumentRepo:     storage.NewArgumentRepo(db),
		sourceRepo:       storage.NewSourceRepo(db),
		publicationRepo:  storage.NewPublicationRepo(db),
		contributionRepo: storage.NewContributionRepo(db),
		temporal:         tc,
	}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/projects", s.handleProjects)
	mux.HandleFunc("/projects/", s.handleProjectScoped)
	mux.HandleFunc("/arguments/", s.handleArgumentScoped)
	mux.HandleFunc("/publications/scan", s.handlePublicationScan)
	return withCORS(mux)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		projects, err := s.projectRepo.ListProjects(r.Context())
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"projects": projects})
	case http.MethodPost:
		var req struct {
			Title            string   `json:"title"`
			CentralQuestion  string   `json:"central_question"`
			Description      string   `json:"description"`
			EstimatedWeeks   int      `json:"estimated_weeks"`
			MinTextsRequired int      `json:"min_texts_required"`
			SearchTerms      []string `json:"search_terms"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
			return
		}
		req.Title = strings.TrimSpace(req.Title)
		req.CentralQuestion = strings.TrimSpace(req.CentralQuestion)
		if req.CentralQuestion == "" {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("central_question is required"))
			return
		}
		if req.EstimatedWeeks <= 0 {
			req.EstimatedWeeks = 4
		}
		if req.MinTextsRequired <= 0 {
			req.MinTextsRequired = models.MinTextsForQuestion(req.CentralQuestion)
		}
		if len(req.SearchTerms) > 10 {
			req.SearchTerms = req.SearchTerms[:10]
		}

		projectID := uuid.NewString()
		project := models.Project{
			ProjectID:        projectID,
			Title:            req.Title,
			CentralQuestion:  req.CentralQuestion,
			Description:      req.Description,
			Status:           models.StatusActive,
			EstimatedWeeks:   req.EstimatedWeeks,
			MinTextsRequired: req.MinTextsRequired,
			SearchTerms:      req.SearchTerms,
		}
		if err := s.projectRepo.CreateProject(r.Context(), project); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}

		we, err := s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
			ID:                    "setup-" + projectID,
			TaskQueue:             s.cfg.TemporalTaskQueue,
			WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		}, workflows.ProjectSetupWorkflow, workflows.ProjectSetupInput{
			ProjectID:       projectID,
			LLMProviders:    s.providerCount(),
			CooldownSeconds: s.cfg.ProviderCooldownSecs,
			MaxTerms:        s.cfg.MaxTermsPerRun,
			MaxPromotions:   s.cfg.MaxPromotionsPerRun,
		})
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{
			"project_id":  projectID,
			"workflow_id": we.GetID(),
			"run_id":      we.GetRunID(),
		})
	default:
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
	}
}

func (s *Server) handleProjectScoped(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/projects/"), "/"), "/")
	if len(parts) < 1 || parts[0] == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	projectID := parts[0]

	if len(parts) == 1 {
		if r.Method != http.MethodGet {
			writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
			return
		}
		project, err := s.projectRepo.GetProject(r.Context(), projectID)
		if err != nil {
			writeErr(w, http.StatusNotFound, err)
			return
		}
		writeJSON(w, http.StatusOK, project)
		return
	}

	switch parts[1] {
	case "dashboard":
		s.handleDashboard(w, r, projectID)
	case "discover":
		s.handleDiscover(w, r, projectID)
	case "items":
		s.handleItems(w, r, projectID)
	case "sessions":
		s.handleSessions(w, r, projectID)
	case "arguments":
		s.handleArguments(w, r, projectID)
	case "sources":
		s.handleSources(w, r, projectID)
	case "contributions":
		s.handleContributions(w, r, projectID)
	case "publications":
		s.handlePublications(w, r, projectID)
	default:
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
	}
}

// handleDashboard aggregates the project view from storage alone. Sub-queries
// that fail degrade the response instead of failing it; the degraded list
// names what is missing.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request, projectID string) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	project, err := s.projectRepo.GetProject(r.Context(), projectID)
	if err != nil {
		writeErr(w, http.StatusNotFound, err)
		return
	}

	degraded := make([]string, 0)
	out := map[string]any{"project": project}

	items, err := s.readingRepo.ListItems(r.Context(), projectID)
	if err != nil {
		degraded = append(degraded, "reading_list")
	} else {
		out["reading_list"] = items
	}

	sessionCount, err := s.readingRepo.CountSessions(r.Context(), projectID)
	if err != nil {
		degraded = append(degraded, "sessions")
		sessionCount = 0
	}
	out["session_count"] = sessionCount

	arguments, err := s.argumentRepo.List(r.Context(), projectID)
	if err != nil {
		degraded = append(degraded, "arguments")
	} else {
		out["arguments"] = arguments
	}
	validated, err := s.argumentRepo.CountValidated(r.Context(), projectID)
	if err != nil {
		degraded = append(degraded, "validated_arguments")
		validated = 0
	}

	sources, err := s.sourceRepo.ListSources(r.Context(), projectID)
	if err != nil {
		degraded = append(degraded, "sources")
	} else {
		out["sources"] = sources
	}

	publications, err := s.publicationRepo.ListByProject(r.Context(), projectID)
	if err != nil {
		degraded = append(degraded, "publications")
	} else {
		out["publications"] = publications
	}

	contributions, err := s.contributionRepo.ListByProject(r.Context(), projectID)
	if err != nil {
		degraded = append(degraded, "contributions")
	} else {
		out["contributions"] = contributions
	}

	phase := models.CurrentProjectPhase(sessionCount, len(arguments), validated)
	out["project_phase"] = phase
	out["next_recommended_action"] = models.NextRecommendedAction(phase)
	out["duration_days"] = int(time.Since(project.StartedAt).Hours() / 24)

	// Readiness tops out at 0.9 until at least one argument has survived
	// validation.
	readiness := 0.0
	if project.MinTextsRequired > 0 {
		readiness = float64(project.TextsRead) / float64(project.MinTextsRequired)
	}
	ceiling := 0.9
	if validated > 0 {
		ceiling = 1.0
	}
	if readiness > ceiling {
		readiness = ceiling
	}
	out["publication_readiness"] = readiness
	if len(degraded) > 0 {
		out["degraded"] = degraded
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDiscover(w http.ResponseWriter, r *http.Request, projectID string) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	we, err := s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
		ID:                    fmt.Sprintf("discovery-%s-%d", projectID, time.Now().Unix()),
		TaskQueue:             s.cfg.TemporalTaskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
	}, workflows.SourceDiscoveryWorkflow, workflows.SourceDiscoveryInput{
		ProjectID:       projectID,
		MaxTerms:        s.cfg.MaxTermsPerRun,
		MaxPromotions:   s.cfg.MaxPromotionsPerRun,
		LLMProviders:    s.providerCount(),
		CooldownSeconds: s.cfg.ProviderCooldownSecs,
	})
	if err != nil {
		writeErr(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"workflow_id": we.GetID(), "run_id": we.GetRunID()})
}

func (s *Server) handleItems(w http.ResponseWriter, r *http.Request, projectID string) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.readingRepo.ListItems(r.Context(), projectID)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	case http.MethodPost:
		var req struct {
			Title       string `json:"title"`
			Author      string `json:"author"`
			SourceURL   string `json:"source_url"`
			Priority    string `json:"priority"`
			SuggestedBy string `json:"suggested_by"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
			return
		}
		req.Title = strings.TrimSpace(req.Title)
		if req.Title == "" {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("title is required"))
			return
		}
		if req.Priority == "" {
			req.Priority = models.PriorityMedium
		}
		if req.SuggestedBy == "" {
			req.SuggestedBy = "community"
		}
		status := models.ItemSeeking
		if req.SourceURL != "" {
			status = models.ItemFound
		}
		item := models.ReadingListItem{
			ItemID:      uuid.NewString(),
			ProjectID:   projectID,
			Title:       req.Title,
			Author:      req.Author,
			SourceURL:   req.SourceURL,
			Priority:    req.Priority,
			Status:      status,
			SuggestedBy: req.SuggestedBy,
		}
		if err := s.readingRepo.AddItem(r.Context(), item); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusCreated, item)
	default:
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
	}
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request, projectID string) {
	switch r.Method {
	case http.MethodGet:
		sessions, err := s.readingRepo.ListSessions(r.Context(), projectID)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
	case http.MethodPost:
		var req struct {
			ItemID string `json:"item_id"`
		}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}
		wfID := fmt.Sprintf("reading-%s-%d", projectID, time.Now().Unix())
		we, err := s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
			ID:                    wfID,
			TaskQueue:             s.cfg.TemporalTaskQueue,
			WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
		}, workflows.ReadingSessionWorkflow, workflows.ReadingSessionInput{
			ProjectID:         projectID,
			ItemID:            req.ItemID,
			PhaseDelayHours:   s.cfg.PhaseDelayHours,
			PhaseRetryMinutes: s.cfg.PhaseRetryMinutes,
			LLMProviders:      s.providerCount(),
			CooldownSeconds:   s.cfg.ProviderCooldownSecs,
		})
		if err != nil {
			writeErr(w, http.StatusConflict, err)
			return
		}
		writeJSON(w, http.StatusAccepted, map[string]any{"workflow_id": we.GetID(), "run_id": we.GetRunID()})
	default:
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
	}
}

func (s *Server) handleArguments(w http.ResponseWriter, r *http.Request, projectID string) {
	switch r.Method {
	case http.MethodGet:
		arguments, err := s.argumentRepo.List(r.Context(), projectID)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"arguments": arguments})
	case http.MethodPost:
		var req struct {
			Title            string   `json:"title"`
			InitialIntuition string   `json:"initial_intuition"`
			Evidence         []string `json:"evidence"`
			Citations        []string `json:"citations"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
			return
		}
		req.Title = strings.TrimSpace(req.Title)
		req.InitialIntuition = strings.TrimSpace(req.InitialIntuition)
		if req.Title == "" || req.InitialIntuition == "" {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("title and initial_intuition are required"))
			return
		}
		arg := models.NewArgument(projectID, req.Title, req.InitialIntuition, req.Evidence, req.Citations)
		if err := s.argumentRepo.Create(r.Context(), arg); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusCreated, arg)
	default:
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
	}
}

func (s *Server) handleSources(w http.ResponseWriter, r *http.Request, projectID string) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	sources, err := s.sourceRepo.ListSources(r.Context(), projectID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"sources": sources})
}

func (s *Server) handleContributions(w http.ResponseWriter, r *http.Request, projectID string) {
	switch r.Method {
	case http.MethodGet:
		contributions, err := s.contributionRepo.ListByProject(r.Context(), projectID)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"contributions": contributions})
	case http.MethodPost:
		var req struct {
			ItemID      string `json:"item_id"`
			Contributor string `json:"contributor"`
			Content     string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
			return
		}
		req.Contributor = strings.TrimSpace(req.Contributor)
		req.Content = strings.TrimSpace(req.Content)
		if req.Contributor == "" || req.Content == "" {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("contributor and content are required"))
			return
		}
		contribution := models.Contribution{
			ContributionID: uuid.NewString(),
			ProjectID:      projectID,
			ItemID:         req.ItemID,
			Contributor:    req.Contributor,
			Content:        req.Content,
		}
		if err := s.contributionRepo.Insert(r.Context(), contribution); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusCreated, contribution)
	default:
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
	}
}

func (s *Server) handlePublications(w http.ResponseWriter, r *http.Request, projectID string) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	publications, err := s.publicationRepo.ListByProject(r.Context(), projectID)
	if err != nil {
		writeErr(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"publications": publications})
}

func (s *Server) handleArgumentScoped(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/arguments/"), "/"), "/")
	if len(parts) != 2 || parts[0] == "" {
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
		return
	}
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	argumentID := parts[0]

	switch parts[1] {
	case "evidence":
		var req struct {
			Evidence string `json:"evidence"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Evidence) == "" {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("evidence is required"))
			return
		}
		if err := s.argumentRepo.AppendEvidence(r.Context(), argumentID, req.Evidence); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	case "counter":
		var req struct {
			Content     string `json:"content"`
			Contributor string `json:"contributor"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Content) == "" {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("content is required"))
			return
		}
		counter := models.CounterArgument{Content: req.Content, Contributor: req.Contributor, At: time.Now().UTC()}
		if err := s.argumentRepo.AppendCounter(r.Context(), argumentID, counter); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	case "citations":
		var req struct {
			Citation string `json:"citation"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Citation) == "" {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("citation is required"))
			return
		}
		if err := s.argumentRepo.AppendCitation(r.Context(), argumentID, req.Citation); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	case "validate":
		arg, err := s.argumentRepo.Get(r.Context(), argumentID)
		if err != nil {
			writeErr(w, http.StatusNotFound, err)
			return
		}
		result := scoring.ValidateArgument(arg)
		if err := s.argumentRepo.SetValidation(r.Context(), argumentID, result.Score, result.Factors["evidence_support"]); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	case "confidence":
		var req struct {
			Delta                float64 `json:"delta"`
			CommunityWeightDelta float64 `json:"community_weight_delta"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("invalid json: %w", err))
			return
		}
		if req.Delta < -0.2 || req.Delta > 0.2 || req.CommunityWeightDelta < -0.2 || req.CommunityWeightDelta > 0.2 {
			writeErr(w, http.StatusBadRequest, fmt.Errorf("delta must be within [-0.2, 0.2]"))
			return
		}
		if err := s.argumentRepo.AdjustConfidence(r.Context(), argumentID, req.Delta, req.CommunityWeightDelta); err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		arg, err := s.argumentRepo.Get(r.Context(), argumentID)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, arg)
	default:
		writeErr(w, http.StatusNotFound, fmt.Errorf("not found"))
	}
}

func (s *Server) handlePublicationScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, fmt.Errorf("method not allowed"))
		return
	}
	we, err := s.temporal.ExecuteWorkflow(r.Context(), tclient.StartWorkflowOptions{
		ID:                    fmt.Sprintf("pubscan-%d", time.Now().Unix()),
		TaskQueue:             s.cfg.TemporalTaskQueue,
		WorkflowIDReusePolicy: enumspb.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE,
	}, workflows.PublicationScanWorkflow, workflows.PublicationScanInput{
		Once:            true,
		SendWindowHours: s.cfg.SendWindowHours,
		SendWindowLimit: s.cfg.SendWindowLimit,
		LLMProviders:    s.providerCount(),
		CooldownSeconds: s.cfg.ProviderCooldownSecs,
	})
	if err != nil {
		writeErr(w, http.StatusConflict, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"workflow_id": we.GetID(), "run_id": we.GetRunID()})
}

func (s *Server) providerCount() int {
	n := 0
	for _, part := range strings.Split(s.cfg.LLMProviders, "|") {
		if strings.TrimSpace(part) != "" {
			n++
		}
	}
	if n == 0 {
		n = 1
	}
	return n
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, err error) {
	apiErr := toAPIError(code, err)
	writeJSON(w, code, map[string]any{
		"error": map[string]any{
			"code":    apiErr.Code,
			"message": apiErr.Message,
		},
	})
}

type apiError struct {
	Code    string
	Message string
}

func toAPIError(status int, err error) apiError {
	msg := "Request failed."
	code := "AR-API-4000"
	raw := ""
	if err != nil {
		raw = strings.ToLower(err.Error())
	}

	switch {
	case status >= 500:
		switch {
		case strings.Contains(raw, "relation") && strings.Contains(raw, "does not exist"):
			return apiError{
				Code:    "AR-DB-5001",
				Message: "Database schema is not initialized. Restart the service to run schema setup.",
			}
		case strings.Contains(raw, "connect"), strings.Contains(raw, "dial tcp"), strings.Contains(raw, "connection refused"):
			return apiError{
				Code:    "AR-DB-5002",
				Message: "Database connection is unavailable. Check local services and retry.",
			}
		default:
			return apiError{
				Code:    "AR-API-5000",
				Message: "Internal server error. Please retry or check service logs.",
			}
		}
	case status == http.StatusBadRequest:
		code = "AR-API-4001"
		msg = "Invalid request. Check inputs and retry."
	case status == http.StatusNotFound:
		code = "AR-API-4004"
		msg = "Requested resource was not found."
	case status == http.StatusConflict:
		code = "AR-API-4009"
		msg = "Operation conflicts with current state. Retry after checking status."
	case status == http.StatusMethodNotAllowed:
		code = "AR-API-4005"
		msg = "This endpoint does not support the requested method."
	}

	// For 4xx, keep user-safe validation context only.
	if status >= 400 && status < 500 && err != nil {
		low := strings.ToLower(err.Error())
		switch {
		case strings.Contains(low, "central_question is required"):
			msg = "A central question is required."
		case strings.Contains(low, "title is required"):
			msg = "A title is required."
		case strings.Contains(low, "title and initial_intuition are required"):
			msg = "Both a title and an initial intuition are required."
		case strings.Contains(low, "contributor and content are required"):
			msg = "Both a contributor and content are required."
		case strings.Contains(low, "delta must be within"):
			msg = "Confidence delta must be within [-0.2, 0.2]."
		case strings.Contains(low, "invalid json"):
			msg = "Malformed JSON request body."
		}
	}

	return apiError{Code: code, Message: msg}
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
