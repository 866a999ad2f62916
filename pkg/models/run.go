package models

// RunStatus represents the lifecycle state of a run.
type RunStatus string

const (
	// RunStatusActive indicates the run is in progress.
	RunStatusActive RunStatus = "active"
	// RunStatusExtracted indicates the run was closed out into a journal entry.
	RunStatusExtracted RunStatus = "extracted"
	// RunStatusAbandoned indicates the run was discarded without extraction.
	RunStatusAbandoned RunStatus = "abandoned"
)

// Valid returns true if the status is a known value.
func (s RunStatus) Valid() bool {
	switch s {
	case RunStatusActive, RunStatusExtracted, RunStatusAbandoned:
		return true
	default:
		return false
	}
}

// Terminal returns true if the run can no longer be mutated.
func (s RunStatus) Terminal() bool {
	return s == RunStatusExtracted || s == RunStatusAbandoned
}

// Run is one day's session of tasks. The server enforces at most one
// active run per user; the client mirrors the server's copy.
type Run struct {
	// ID is the server-assigned run identifier.
	ID int `json:"id"`
	// UserID is the owning user.
	UserID int `json:"user_id"`
	// RunDate is the calendar date of the session (YYYY-MM-DD).
	RunDate string `json:"run_date"`
	// DailyXP is the running XP total across completed and failed tasks.
	DailyXP int `json:"daily_xp"`
	// FocusEnergy is the current energy, always within [0, MaxEnergy].
	FocusEnergy int `json:"focus_energy"`
	// MaxEnergy is the energy ceiling for this run.
	MaxEnergy int `json:"max_energy"`
	// TotalFocusMinutes is the sum of completed task durations.
	TotalFocusMinutes int `json:"total_focus_minutes"`
	// Status is the lifecycle state of the run.
	Status RunStatus `json:"status"`
	// Tasks is the run's task list in server order.
	Tasks []Task `json:"tasks"`
	// StartedAt is when the run was created.
	StartedAt ServerTime `json:"started_at"`
	// ExtractedAt is when the run was extracted, if it was.
	ExtractedAt *ServerTime `json:"extracted_at,omitempty"`
}

// TaskByID returns a pointer to the task with the given id, or nil.
func (r *Run) TaskByID(id int) *Task {
	for i := range r.Tasks {
		if r.Tasks[i].ID == id {
			return &r.Tasks[i]
		}
	}
	return nil
}
