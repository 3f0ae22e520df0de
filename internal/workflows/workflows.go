package workflows

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"ariadne/internal/activities"
	"ariadne/internal/models"
	"ariadne/internal/providers"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
)

const (
	QueryGetSetupProgress     = "GetSetupProgress"
	QueryGetDiscoveryProgress = "GetDiscoveryProgress"
	QueryGetReadingProgress   = "GetReadingProgress"
	QueryGetScanProgress      = "GetScanProgress"
)

// maxExcerptChars bounds how much source text goes into a reading prompt.
const maxExcerptChars = 6000

// maxSearchTerms caps how many search terms a project keeps, however many the
// generator returns.
const maxSearchTerms = 10

type providerState struct {
	disabledUntil map[int]time.Time
	retries       map[string]int
}

func newProviderState() providerState {
	return providerState{disabledUntil: map[int]time.Time{}, retries: map[string]int{}}
}

// ProjectSetupWorkflow frames a freshly created project: it generates and
// persists the title and description, derives search terms, and kicks off the
// first discovery run. Generation failures fall back to framing and terms
// derived from the central question so a project is never left half set up.
func ProjectSetupWorkflow(ctx workflow.Context, input ProjectSetupInput) (string, error) {
	progress := SetupProgress{ProjectID: input.ProjectID, CurrentStep: "init"}
	if err := workflow.SetQueryHandler(ctx, QueryGetSetupProgress, func() (SetupProgress, error) {
		return progress, nil
	}); err != nil {
		return "", err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	cooldown := durationOrDefault(input.CooldownSeconds, 900)
	providerCount := defaultInt(input.LLMProviders, 1)
	state := newProviderState()

	progress.CurrentStep = "load_project"
	var projectOut activities.GetProjectOutput
	if err := workflow.ExecuteActivity(ctx, "GetProjectActivity", activities.GetProjectInput{ProjectID: input.ProjectID}).Get(ctx, &projectOut); err != nil {
		return "", err
	}
	project := projectOut.Project

	progress.CurrentStep = "generate_framing"
	if project.Title == "" || project.Description == "" {
		title, description := project.Title, project.Description
		out, _, err := callLLMWithFailover(ctx, &state, providerCount, cooldown, activities.LLMGenerateInput{
			Operation: "project_framing",
			ProjectID: input.ProjectID,
			Prompt: fmt.Sprintf("Frame a research project around the question: %s\n"+
				"Return a JSON object with string fields \"title\" and \"description\".", project.CentralQuestion),
		}, state.retries)
		if err == nil {
			genTitle, genDescription := parseFraming(out.Text)
			if title == "" {
				title = genTitle
			}
			if description == "" {
				description = genDescription
			}
		}
		if title == "" {
			title = fallbackTitle(project.CentralQuestion)
		}
		if description == "" {
			description = "An open research inquiry into the question: " + project.CentralQuestion
		}
		if err := workflow.ExecuteActivity(ctx, "UpdateProjectFramingActivity", activities.UpdateProjectFramingInput{
			ProjectID:   input.ProjectID,
			Title:       title,
			Description: description,
		}).Get(ctx, nil); err != nil {
			return "", err
		}
		project.Title, project.Description = title, description
	}

	progress.CurrentStep = "generate_terms"
	terms := project.SearchTerms
	if len(terms) == 0 {
		out, _, err := callLLMWithFailover(ctx, &state, providerCount, cooldown, activities.LLMGenerateInput{
			Operation: "search_terms",
			ProjectID: input.ProjectID,
			Prompt:    fmt.Sprintf("List 8 to 12 search terms, as a JSON array of strings, for researching: %s", project.CentralQuestion),
		}, state.retries)
		if err == nil {
			terms = parseTermList(out.Text)
		}
		if len(terms) == 0 {
			terms = fallbackSearchTerms(project.CentralQuestion, project.Title)
		}
		if err := workflow.ExecuteActivity(ctx, "UpdateSearchTermsActivity", activities.UpdateSearchTermsInput{
			ProjectID: input.ProjectID,
			Terms:     terms,
		}).Get(ctx, nil); err != nil {
			return "", err
		}
	}
	progress.Terms = len(terms)

	progress.CurrentStep = "initial_discovery"
	childCtx := workflow.WithChildOptions(ctx, workflow.ChildWorkflowOptions{
		WorkflowID: "discovery-" + input.ProjectID + "-setup",
	})
	if err := workflow.ExecuteChildWorkflow(childCtx, SourceDiscoveryWorkflow, SourceDiscoveryInput{
		ProjectID:       input.ProjectID,
		MaxTerms:        input.MaxTerms,
		MaxPromotions:   input.MaxPromotions,
		LLMProviders:    input.LLMProviders,
		CooldownSeconds: input.CooldownSeconds,
	}).Get(ctx, nil); err != nil {
		return "", err
	}

	progress.CurrentStep = "done"
	return "completed", nil
}

// SourceDiscoveryWorkflow runs one discovery pass for a project: search each
// term, fetch and score every candidate, then promote the best scored sources
// onto the reading list. A candidate that fails to fetch is dropped, never
// fatal.
func SourceDiscoveryWorkflow(ctx workflow.Context, input SourceDiscoveryInput) (int, error) {
	progress := DiscoveryProgress{ProjectID: input.ProjectID}
	if err := workflow.SetQueryHandler(ctx, QueryGetDiscoveryProgress, func() (DiscoveryProgress, error) {
		return progress, nil
	}); err != nil {
		return 0, err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    2,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var projectOut activities.GetProjectOutput
	if err := workflow.ExecuteActivity(ctx, "GetProjectActivity", activities.GetProjectInput{ProjectID: input.ProjectID}).Get(ctx, &projectOut); err != nil {
		return 0, err
	}
	terms := projectOut.Project.SearchTerms
	maxTerms := defaultInt(input.MaxTerms, 3)
	if len(terms) > maxTerms {
		terms = terms[:maxTerms]
	}

	var titlesOut activities.ListItemTitlesOutput
	if err := workflow.ExecuteActivity(ctx, "ListItemTitlesActivity", activities.ListItemTitlesInput{ProjectID: input.ProjectID}).Get(ctx, &titlesOut); err != nil {
		return 0, err
	}
	existingTitles := titlesOut.Titles

	scored := make([]models.DiscoveredSource, 0)
	seenURLs := map[string]struct{}{}
	for _, term := range terms {
		var searchOut activities.SearchSourcesOutput
		if err := workflow.ExecuteActivity(ctx, "SearchSourcesActivity", activities.SearchSourcesInput{
			ProjectID: input.ProjectID,
			Term:      term,
		}).Get(ctx, &searchOut); err != nil {
			continue
		}
		progress.TermsSearched++

		for _, cand := range searchOut.Candidates {
			if _, ok := seenURLs[cand.URL]; ok {
				continue
			}
			seenURLs[cand.URL] = struct{}{}
			var scoreOut activities.ScoreSourceOutput
			if err := workflow.ExecuteActivity(ctx, "ScoreSourceActivity", activities.ScoreSourceInput{
				ProjectID:      input.ProjectID,
				Term:           term,
				Candidate:      cand,
				SearchTerms:    projectOut.Project.SearchTerms,
				ExistingTitles: existingTitles,
			}).Get(ctx, &scoreOut); err != nil {
				continue
			}
			progress.Scored++
			scored = append(scored, scoreOut.Source)
		}
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Overall > scored[j].Overall })
	maxPromotions := defaultInt(input.MaxPromotions, 5)
	for _, src := range scored {
		if progress.Promoted >= maxPromotions {
			break
		}
		if src.Recommendation != models.RecommendHighPriority && src.Recommendation != models.RecommendMediumPriority {
			continue
		}
		if err := workflow.ExecuteActivity(ctx, "PromoteSourceActivity", activities.PromoteSourceInput{Source: src}).Get(ctx, nil); err != nil {
			continue
		}
		progress.Promoted++
	}

	if err := workflow.ExecuteActivity(ctx, "TouchDiscoveryActivity", activities.TouchDiscoveryInput{ProjectID: input.ProjectID}).Get(ctx, nil); err != nil {
		return progress.Promoted, err
	}
	return progress.Promoted, nil
}

// DiscoveryCadenceWorkflow periodically re-runs discovery for every active
// project whose last run has gone stale. It continues as new to keep the
// history bounded.
func DiscoveryCadenceWorkflow(ctx workflow.Context, input DiscoveryCadenceInput) error {
	ao := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	cadence := time.Duration(defaultInt(input.CadenceHours, 72)) * time.Hour
	maxIterations := defaultInt(input.MaxIterations, 30)

	for i := 0; i < maxIterations; i++ {
		var listOut activities.ListActiveProjectsOutput
		if err := workflow.ExecuteActivity(ctx, "ListActiveProjectsActivity").Get(ctx, &listOut); err != nil {
			return err
		}
		for _, p := range listOut.Projects {
			if p.LastDiscoveryAt != nil && workflow.Now(ctx).Sub(*p.LastDiscoveryAt) < cadence {
				continue
			}
			childCtx := workflow.WithChildOptions(ctx, workflow.ChildWorkflowOptions{
				WorkflowID: fmt.Sprintf("discovery-%s-%d", p.ProjectID, i),
			})
			if err := workflow.ExecuteChildWorkflow(childCtx, SourceDiscoveryWorkflow, SourceDiscoveryInput{
				ProjectID:       p.ProjectID,
				MaxTerms:        input.MaxTerms,
				MaxPromotions:   input.MaxPromotions,
				LLMProviders:    input.LLMProviders,
				CooldownSeconds: input.CooldownSeconds,
			}).Get(ctx, nil); err != nil {
				workflow.GetLogger(ctx).Warn("discovery run failed", "project_id", p.ProjectID, "error", err)
			}
		}
		if err := workflow.Sleep(ctx, cadence); err != nil {
			return err
		}
	}
	return workflow.NewContinueAsNewError(ctx, DiscoveryCadenceWorkflow, input)
}

// ReadingSessionWorkflow takes one reading list item through the four phases
// in order, with a contemplation delay between phases. A failed phase is
// retried after a shorter delay; when generation stays unavailable the
// workflow continues as new at the same phase, so a text is never skipped or
// abandoned mid-sequence.
func ReadingSessionWorkflow(ctx workflow.Context, input ReadingSessionInput) (string, error) {
	progress := ReadingProgress{ProjectID: input.ProjectID, ItemID: input.ItemID, Status: "starting"}
	if err := workflow.SetQueryHandler(ctx, QueryGetReadingProgress, func() (ReadingProgress, error) {
		return progress, nil
	}); err != nil {
		return "", err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 3 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    2,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	cooldown := durationOrDefault(input.CooldownSeconds, 900)
	providerCount := defaultInt(input.LLMProviders, 1)
	phaseDelay := time.Duration(defaultInt(input.PhaseDelayHours, 48)) * time.Hour
	retryDelay := time.Duration(defaultInt(input.PhaseRetryMinutes, 60)) * time.Minute
	state := newProviderState()

	itemID := input.ItemID
	var itemTitle, itemURL string
	if itemID == "" {
		var nextOut activities.NextReadingItemOutput
		if err := workflow.ExecuteActivity(ctx, "NextReadingItemActivity", activities.NextReadingItemInput{ProjectID: input.ProjectID}).Get(ctx, &nextOut); err != nil {
			return "", err
		}
		if !nextOut.Found {
			progress.Status = "idle"
			return "idle", nil
		}
		itemID = nextOut.Item.ItemID
		itemTitle = nextOut.Item.Title
		itemURL = nextOut.Item.SourceURL
	} else {
		var itemOut activities.GetReadingItemOutput
		if err := workflow.ExecuteActivity(ctx, "GetReadingItemActivity", activities.GetReadingItemInput{ItemID: itemID}).Get(ctx, &itemOut); err != nil {
			return "", err
		}
		itemTitle = itemOut.Item.Title
		itemURL = itemOut.Item.SourceURL
	}
	progress.ItemID = itemID

	if itemURL == "" {
		var locOut activities.LocateItemOutput
		if err := workflow.ExecuteActivity(ctx, "LocateItemActivity", activities.LocateItemInput{ItemID: itemID, Title: itemTitle}).Get(ctx, &locOut); err != nil {
			return "", err
		}
		if !locOut.Located {
			progress.Status = "unlocated"
			return "unlocated", nil
		}
		itemURL = locOut.SourceURL
	}

	progress.Status = "fetching"
	var textOut activities.FetchSourceTextOutput
	if err := workflow.ExecuteActivity(ctx, "FetchSourceTextActivity", activities.FetchSourceTextInput{URL: itemURL}).Get(ctx, &textOut); err != nil {
		progress.Status = "fetch_failed"
		return "", err
	}
	excerpt := textOut.Text
	if len(excerpt) > maxExcerptChars {
		excerpt = excerpt[:maxExcerptChars]
	}

	if err := workflow.ExecuteActivity(ctx, "UpdateItemStatusActivity", activities.UpdateItemStatusInput{ItemID: itemID, Status: models.ItemReading}).Get(ctx, nil); err != nil {
		return "", err
	}

	startPhase := input.PhaseIndex
	if startPhase < 0 || startPhase >= len(models.ReadingPhases) {
		startPhase = 0
	}

	progress.Status = "reading"
	for phaseIdx := startPhase; phaseIdx < len(models.ReadingPhases); phaseIdx++ {
		phase := models.ReadingPhases[phaseIdx]
		progress.Phase = phase

		// Community contributions feed the analytical phases, where there is
		// an argument to respond to. First impressions and synthesis stay the
		// project's own.
		var contribOut activities.ListOpenContributionsOutput
		if phase == models.PhaseDeepAnalysis || phase == models.PhasePhilosophicalResp {
			if err := workflow.ExecuteActivity(ctx, "ListOpenContributionsActivity", activities.ListOpenContributionsInput{ProjectID: input.ProjectID}).Get(ctx, &contribOut); err != nil {
				return "", err
			}
		}
		contribContext := make([]string, 0, len(contribOut.Contributions))
		for _, c := range contribOut.Contributions {
			contribContext = append(contribContext, fmt.Sprintf("%s: %s", c.Contributor, c.Content))
		}

		var genOut activities.LLMGenerateOutput
		generated := false
		for attempt := 0; attempt < 3; attempt++ {
			out, _, err := callLLMWithFailover(ctx, &state, providerCount, cooldown, activities.LLMGenerateInput{
				Operation: "reading_" + phase,
				ProjectID: input.ProjectID,
				Prompt:    phasePrompt(phase, itemTitle, excerpt),
				Context:   contribContext,
			}, state.retries)
			if err == nil {
				genOut = out
				generated = true
				break
			}
			if err := workflow.Sleep(ctx, retryDelay); err != nil {
				return "", err
			}
		}
		if !generated {
			// Carry the current phase into a fresh run rather than failing
			// the item; the pending phase picks up on the next cycle.
			progress.Status = "deferred"
			input.ItemID = itemID
			input.PhaseIndex = phaseIdx
			return "", workflow.NewContinueAsNewError(ctx, ReadingSessionWorkflow, input)
		}

		var sessionOut activities.RecordReadingSessionOutput
		if err := workflow.ExecuteActivity(ctx, "RecordReadingSessionActivity", activities.RecordReadingSessionInput{
			ProjectID:      input.ProjectID,
			ItemID:         itemID,
			Phase:          phase,
			Content:        genOut.Text,
			CommunityInput: len(contribOut.Contributions) > 0,
		}).Get(ctx, &sessionOut); err != nil {
			return "", err
		}
		progress.Sessions++

		_ = workflow.ExecuteActivity(ctx, "WriteSessionArtifactActivity", activities.WriteSessionArtifactInput{Session: sessionOut.Session}).Get(ctx, nil)

		for _, c := range contribOut.Contributions {
			if err := workflow.ExecuteActivity(ctx, "MarkContributionIncorporatedActivity", activities.MarkContributionIncorporatedInput{ContributionID: c.ContributionID}).Get(ctx, nil); err != nil {
				return "", err
			}
		}

		if phaseIdx < len(models.ReadingPhases)-1 {
			if err := workflow.Sleep(ctx, phaseDelay); err != nil {
				return "", err
			}
		}
	}

	progress.Status = "completed"
	progress.Phase = ""
	return "completed", nil
}

// PublicationScanWorkflow evaluates pending triggers on a cadence and sends at
// most one publication per scan, respecting the rolling send window. Only the
// single highest-priority candidate is gated; a rejection drops it for this
// scan without promoting anything lower-priority in its place.
func PublicationScanWorkflow(ctx workflow.Context, input PublicationScanInput) (int, error) {
	progress := ScanProgress{}
	if err := workflow.SetQueryHandler(ctx, QueryGetScanProgress, func() (ScanProgress, error) {
		return progress, nil
	}); err != nil {
		return 0, err
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2,
			MaximumInterval:    20 * time.Second,
			MaximumAttempts:    3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)
	cooldown := durationOrDefault(input.CooldownSeconds, 900)
	providerCount := defaultInt(input.LLMProviders, 1)
	interval := time.Duration(defaultInt(input.ScanIntervalHours, 6)) * time.Hour
	windowHours := defaultInt(input.SendWindowHours, 72)
	windowLimit := defaultInt(input.SendWindowLimit, 2)
	maxIterations := defaultInt(input.MaxIterations, 30)
	state := newProviderState()

	for i := 0; i < maxIterations; i++ {
		progress.Scans++
		sent, err := runPublicationScan(ctx, &state, providerCount, cooldown, windowHours, windowLimit, &progress)
		if err != nil {
			workflow.GetLogger(ctx).Warn("publication scan failed", "error", err)
		}
		if input.Once {
			return sent, err
		}
		if err := workflow.Sleep(ctx, interval); err != nil {
			return progress.Sent, err
		}
	}
	return progress.Sent, workflow.NewContinueAsNewError(ctx, PublicationScanWorkflow, input)
}

func runPublicationScan(ctx workflow.Context, state *providerState, providerCount int, cooldown time.Duration, windowHours, windowLimit int, progress *ScanProgress) (int, error) {
	var countOut activities.CountRecentSendsOutput
	if err := workflow.ExecuteActivity(ctx, "CountRecentSendsActivity", activities.CountRecentSendsInput{WindowHours: windowHours}).Get(ctx, &countOut); err != nil {
		return 0, err
	}
	if countOut.Count >= windowLimit {
		return 0, nil
	}

	var trigOut activities.EvaluateTriggersOutput
	if err := workflow.ExecuteActivity(ctx, "EvaluateTriggersActivity").Get(ctx, &trigOut); err != nil {
		return 0, err
	}

	if len(trigOut.Candidates) == 0 {
		return 0, nil
	}
	cand := trigOut.Candidates[0]

	var projectOut activities.GetProjectOutput
	if err := workflow.ExecuteActivity(ctx, "GetProjectActivity", activities.GetProjectInput{ProjectID: cand.ProjectID}).Get(ctx, &projectOut); err != nil {
		return 0, err
	}
	project := projectOut.Project

	out, _, err := callLLMWithFailover(ctx, state, providerCount, cooldown, activities.LLMGenerateInput{
		Operation: "publication_compose",
		ProjectID: cand.ProjectID,
		Prompt:    composePrompt(cand, project),
		Context:   cand.Mentions,
	}, state.retries)
	content := out.Text
	if err != nil {
		// A templated body keeps announcements and notes flowing when no
		// provider is available. Essays get it too, but the quality gate
		// rejects anything that short.
		content = fallbackBody(cand, project)
	}

	var sendOut activities.SendPublicationOutput
	if err := workflow.ExecuteActivity(ctx, "SendPublicationActivity", activities.SendPublicationInput{
		ProjectID:     cand.ProjectID,
		Type:          cand.Type,
		Title:         publicationTitle(cand.Type, project.Title),
		Content:       content,
		TriggerReason: cand.TriggerReason,
		Mentions:      cand.Mentions,
	}).Get(ctx, &sendOut); err != nil {
		return 0, err
	}
	if !sendOut.GatePassed {
		workflow.GetLogger(ctx).Info("publication gated", "trigger", cand.TriggerReason, "reason", sendOut.GateReason)
		return 0, nil
	}
	progress.Sent++
	progress.LastRef = sendOut.ExternalURL
	if strings.HasPrefix(cand.TriggerReason, models.TriggerResearchComplete) {
		_ = workflow.ExecuteActivity(ctx, "MarkProjectCompletedActivity", activities.MarkProjectCompletedInput{ProjectID: cand.ProjectID}).Get(ctx, nil)
	}
	return 1, nil
}

func callLLMWithFailover(ctx workflow.Context, state *providerState, providerCount int, cooldown time.Duration, input activities.LLMGenerateInput, retryCounts map[string]int) (activities.LLMGenerateOutput, string, error) {
	if retryCounts == nil {
		retryCounts = map[string]int{}
	}
	if providerCount <= 0 {
		providerCount = 1
	}
	var lastErr error
	for attempt := 0; attempt < providerCount*4; attempt++ {
		idx := attempt % providerCount
		if isProviderDisabled(ctx, state, idx) {
			continue
		}
		input.ProviderIndex = idx
		var out activities.LLMGenerateOutput
		err := workflow.ExecuteActivity(ctx, "LLMGenerateActivity", input).Get(ctx, &out)
		if err == nil {
			return out, "", nil
		}
		lastErr = err
		errType := providers.ClassifyError(err)
		key := fmt.Sprintf("llm-%s-%d", input.Operation, idx)
		retryCounts[key]++
		switch errType {
		case providers.ErrorQuota:
			disableProviderUntil(ctx, state, idx, cooldown)
		case providers.ErrorRate:
			if retryCounts[key] <= 2 {
				workflow.Sleep(ctx, time.Duration(retryCounts[key]*2)*time.Second)
				attempt--
			} else {
				disableProviderUntil(ctx, state, idx, 2*time.Minute)
			}
		case providers.ErrorTransient:
			if retryCounts[key] <= 2 {
				workflow.Sleep(ctx, time.Duration(retryCounts[key])*time.Second)
				attempt--
			}
		case providers.ErrorContext:
			return activities.LLMGenerateOutput{}, string(providers.ErrorContext), err
		default:
			disableProviderUntil(ctx, state, idx, time.Minute)
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("all llm providers exhausted")
	}
	return activities.LLMGenerateOutput{}, string(providers.ClassifyError(lastErr)), lastErr
}

func isProviderDisabled(ctx workflow.Context, state *providerState, idx int) bool {
	until, ok := state.disabledUntil[idx]
	if !ok {
		return false
	}
	return workflow.Now(ctx).Before(until)
}

func disableProviderUntil(ctx workflow.Context, state *providerState, idx int, d time.Duration) {
	state.disabledUntil[idx] = workflow.Now(ctx).Add(d)
}

var phaseInstructions = map[string]string{
	models.PhaseInitialEncounter:     "Record your first impressions of the text: its central claim, its register, and what draws you in or puts you off.",
	models.PhaseDeepAnalysis:         "Work through the text's argument structure in detail: premises, moves, and where the weight of the case rests.",
	models.PhasePhilosophicalResp:    "Respond philosophically: where do you agree, where do you push back, and what would the author say to your objections?",
	models.PhaseSynthesisIntegration: "Integrate the text into the project: how does it bear on the central question, and what does it change in your developing arguments?",
}

func phasePrompt(phase, title, excerpt string) string {
	return fmt.Sprintf("%s\n\nText: %s\n\n%s", phaseInstructions[phase], title, excerpt)
}

func composePrompt(cand activities.PublicationCandidate, project models.Project) string {
	var b strings.Builder
	switch cand.Type {
	case models.PubAnnouncement:
		fmt.Fprintf(&b, "Announce a new research project titled %q. ", project.Title)
	case models.PubEssay:
		fmt.Fprintf(&b, "Compose a substantial essay concluding the research project %q. ", project.Title)
	default:
		fmt.Fprintf(&b, "Write a research note from the project %q. ", project.Title)
	}
	fmt.Fprintf(&b, "The central question is: %s.", project.CentralQuestion)
	if cand.ContextText != "" {
		fmt.Fprintf(&b, " Build on: %s", cand.ContextText)
	}
	return b.String()
}

// fallbackBody composes a plain templated document when every provider is
// down. It always states the central question so the gate's engagement check
// passes for the shorter publication types.
func fallbackBody(cand activities.PublicationCandidate, project models.Project) string {
	var b strings.Builder
	switch cand.Type {
	case models.PubAnnouncement:
		fmt.Fprintf(&b, "A new research project has begun: %s. ", project.Title)
		fmt.Fprintf(&b, "The inquiry centers on one question: %s ", project.CentralQuestion)
		b.WriteString("Over the coming weeks the project will assemble a reading list, work through each text in depth, and develop its arguments in the open. ")
		b.WriteString("Readings, session notes, and developing arguments will be shared as they mature, and contributions to the reading list are welcome.")
	default:
		fmt.Fprintf(&b, "A note from the research project %s, which asks: %s ", project.Title, project.CentralQuestion)
		if cand.ContextText != "" {
			fmt.Fprintf(&b, "The occasion for this note: %s ", cand.ContextText)
		}
		b.WriteString("The reading so far has sharpened rather than settled the question. ")
		b.WriteString("Each text read adds evidence for some developing arguments and pressure against others, and the project's working positions shift accordingly. ")
		b.WriteString("A fuller treatment will follow once the current line of reading is complete.")
	}
	return b.String()
}

func publicationTitle(pubType, projectTitle string) string {
	switch pubType {
	case models.PubAnnouncement:
		return "New Inquiry: " + projectTitle
	case models.PubEssay:
		return projectTitle
	default:
		return "Research Note: " + projectTitle
	}
}

// parseFraming pulls the generated title and description out of a framing
// response. Anything unparseable yields empty strings and the caller falls
// back to question-derived framing.
func parseFraming(text string) (string, string) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", ""
	}
	var framing struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &framing); err != nil {
		return "", ""
	}
	return strings.TrimSpace(framing.Title), strings.TrimSpace(framing.Description)
}

func fallbackTitle(centralQuestion string) string {
	title := strings.TrimSuffix(strings.TrimSpace(centralQuestion), "?")
	if title == "" {
		return "Untitled Inquiry"
	}
	if len(title) > 80 {
		title = strings.TrimSpace(title[:80])
	}
	return title
}

func parseTermList(text string) []string {
	text = strings.TrimSpace(text)
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end <= start {
		return nil
	}
	var terms []string
	if err := json.Unmarshal([]byte(text[start:end+1]), &terms); err != nil {
		return nil
	}
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
		if len(out) == maxSearchTerms {
			break
		}
	}
	return out
}

// fallbackSearchTerms derives terms from the central question and title when
// generation is unavailable, so discovery can still run.
func fallbackSearchTerms(centralQuestion, title string) []string {
	seen := map[string]struct{}{}
	terms := make([]string, 0, 8)
	add := func(text string) {
		for _, word := range strings.Fields(strings.ToLower(text)) {
			word = strings.Trim(word, ".,;:?!\"'()")
			if len(word) <= 4 {
				continue
			}
			if _, ok := seen[word]; ok {
				continue
			}
			seen[word] = struct{}{}
			if len(terms) < 8 {
				terms = append(terms, word)
			}
		}
	}
	add(centralQuestion)
	add(title)
	if len(terms) == 0 && title != "" {
		terms = append(terms, strings.ToLower(title))
	}
	return terms
}

func defaultInt(v, fallback int) int {
	if v <= 0 {
		return fallback
	}
	return v
}

func durationOrDefault(seconds, fallback int) time.Duration {
	if seconds <= 0 {
		seconds = fallback
	}
	return time.Duration(seconds) * time.Second
}
