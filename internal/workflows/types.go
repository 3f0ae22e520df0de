package workflows

type ProjectSetupInput struct {
	ProjectID       string `json:"project_id"`
	LLMProviders    int    `json:"llm_providers"`
	CooldownSeconds int    `json:"cooldown_seconds"`
	MaxTerms        int    `json:"max_terms"`
	MaxPromotions   int    `json:"max_promotions"`
}

type SourceDiscoveryInput struct {
	ProjectID       string `json:"project_id"`
	MaxTerms        int    `json:"max_terms"`
	MaxPromotions   int    `json:"max_promotions"`
	LLMProviders    int    `json:"llm_providers"`
	CooldownSeconds int    `json:"cooldown_seconds"`
}

type DiscoveryCadenceInput struct {
	CadenceHours    int `json:"cadence_hours"`
	MaxTerms        int `json:"max_terms"`
	MaxPromotions   int `json:"max_promotions"`
	LLMProviders    int `json:"llm_providers"`
	CooldownSeconds int `json:"cooldown_seconds"`
	MaxIterations   int `json:"max_iterations"`
}

type ReadingSessionInput struct {
	ProjectID         string `json:"project_id"`
	ItemID            string `json:"item_id,omitempty"`
	PhaseIndex        int    `json:"phase_index,omitempty"`
	PhaseDelayHours   int    `json:"phase_delay_hours"`
	PhaseRetryMinutes int    `json:"phase_retry_minutes"`
	LLMProviders      int    `json:"llm_providers"`
	CooldownSeconds   int    `json:"cooldown_seconds"`
}

type PublicationScanInput struct {
	Once              bool `json:"once"`
	ScanIntervalHours int  `json:"scan_interval_hours"`
	SendWindowHours   int  `json:"send_window_hours"`
	SendWindowLimit   int  `json:"send_window_limit"`
	LLMProviders      int  `json:"llm_providers"`
	CooldownSeconds   int  `json:"cooldown_seconds"`
	MaxIterations     int  `json:"max_iterations"`
}

type SetupProgress struct {
	ProjectID   string `json:"project_id"`
	CurrentStep string `json:"current_step"`
	Terms       int    `json:"terms"`
}

type DiscoveryProgress struct {
	ProjectID     string `json:"project_id"`
	TermsSearched int    `json:"terms_searched"`
	Scored        int    `json:"scored"`
	Promoted      int    `json:"promoted"`
}

type ReadingProgress struct {
	ProjectID string `json:"project_id"`
	ItemID    string `json:"item_id"`
	Phase     string `json:"phase"`
	Sessions  int    `json:"sessions"`
	Status    string `json:"status"`
}

type ScanProgress struct {
	Scans   int    `json:"scans"`
	Sent    int    `json:"sent"`
	LastRef string `json:"last_ref,omitempty"`
}
