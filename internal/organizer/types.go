package organizer

import "time"

// Suggestion proposes relocating one document. Suggestions are created fresh
// on each analysis run and never persisted.
type Suggestion struct {
	CurrentPath   string   `json:"current_path"`
	SuggestedPath string   `json:"suggested_path"`
	Category      string   `json:"category"`
	Confidence    float64  `json:"confidence"`
	Reasons       []string `json:"reasons"`
	AIEnhanced    bool     `json:"ai_enhanced"`
}

// AnalysisReport is the outcome of one GenerateSuggestions run.
type AnalysisReport struct {
	Root        string       `json:"root"`
	Suggestions []Suggestion `json:"suggestions"`

	// Counts over every discovered document.
	Total        int `json:"total"`
	Protected    int `json:"protected"`
	Unclassified int `json:"unclassified"`
	WellPlaced   int `json:"well_placed"`
	Suggested    int `json:"suggested"`

	// Errors are the non-fatal failures accumulated during the run.
	Errors []string `json:"errors,omitempty"`
}

// MoveResult records the outcome of one attempted relocation.
type MoveResult struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Applied bool   `json:"applied"`
	DryRun  bool   `json:"dry_run,omitempty"`
	Error   string `json:"error,omitempty"`
}

// ApplyReport is the outcome of one ApplyMoves run.
type ApplyReport struct {
	Results []MoveResult `json:"results"`
	Applied int          `json:"applied"`
	Failed  int          `json:"failed"`
	Skipped int          `json:"skipped"`
	DryRun  bool         `json:"dry_run"`

	// VCS carries the version-control safety check done before moving.
	VCS *VCSStatus `json:"vcs,omitempty"`
}

// VCSStatus summarizes the version-control state of the target tree. Moves
// are not transactional; a clean worktree is the safety net that makes an
// interrupted batch recoverable.
type VCSStatus struct {
	InRepository bool `json:"in_repository"`
	Clean        bool `json:"clean"`
}

// NamingFinding flags a document whose name violates naming conventions.
// The naming pass only reports; it never relocates.
type NamingFinding struct {
	Path  string `json:"path"`
	Issue string `json:"issue"`
}

// StaleFinding flags a document that has not been touched within the
// configured age.
type StaleFinding struct {
	Path     string    `json:"path"`
	Modified time.Time `json:"modified"`
}

// HealthReport is the outcome of a health check run.
type HealthReport struct {
	Root  string `json:"root"`
	Score int    `json:"score"`

	Total      int `json:"total"`
	WellPlaced int `json:"well_placed"`
	Misplaced  int `json:"misplaced"`

	// Orphaned documents matched no category at all.
	Orphaned []string        `json:"orphaned,omitempty"`
	Stale    []StaleFinding  `json:"stale,omitempty"`
	Naming   []NamingFinding `json:"naming,omitempty"`

	Errors []string `json:"errors,omitempty"`
}
