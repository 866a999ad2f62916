// Package models defines the domain types shared between the run store,
// the API gateway, and the journal cache. Field names and JSON tags match
// the server's response schemas exactly.
package models

// TaskStatus represents the current state of a task.
// Transitions are monotonic: pending -> active -> {completed, failed}.
type TaskStatus string

const (
	// TaskStatusPending indicates the task has not started.
	TaskStatusPending TaskStatus = "pending"
	// TaskStatusActive indicates the task is being worked on.
	TaskStatusActive TaskStatus = "active"
	// TaskStatusCompleted indicates the task finished successfully.
	TaskStatusCompleted TaskStatus = "completed"
	// TaskStatusFailed indicates the task was failed.
	TaskStatusFailed TaskStatus = "failed"
)

// Valid returns true if the status is a known value.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusActive, TaskStatusCompleted, TaskStatusFailed:
		return true
	default:
		return false
	}
}

// Terminal returns true if the status permits no further transitions.
func (s TaskStatus) Terminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

// Task represents a unit of work within a run. The ID is server-assigned;
// the client never invents ids for tasks it has not confirmed with the server.
type Task struct {
	// ID is the server-assigned identifier, stable once created.
	ID int `json:"id"`
	// RunID is the id of the run this task belongs to.
	RunID int `json:"run_id"`
	// Title is the short description of the task.
	Title string `json:"title"`
	// Tier is the risk/reward class (1-3).
	Tier Tier `json:"tier"`
	// Duration is the planned length in minutes, bounded per tier.
	Duration int `json:"duration"`
	// Status is the current state of the task.
	Status TaskStatus `json:"status"`
	// XPEarned is computed at creation and never changes afterwards.
	XPEarned int `json:"xp_earned"`
	// EnergyCost is fixed at creation from the tier.
	EnergyCost int `json:"energy_cost"`
	// UseTimer indicates whether a countdown runs for this task.
	UseTimer bool `json:"use_timer"`
	// CreatedAt is when the task was created.
	CreatedAt ServerTime `json:"created_at"`
	// StartedAt is set by the server on the transition to active.
	StartedAt *ServerTime `json:"started_at,omitempty"`
	// CompletedAt is set on the transition to completed or failed.
	CompletedAt *ServerTime `json:"completed_at,omitempty"`
}

// TaskSpec describes a task to create. Validation against tier bounds
// happens at the intent boundary, before the server is called.
type TaskSpec struct {
	Title    string `json:"title"`
	Tier     Tier   `json:"tier"`
	Duration int    `json:"duration"`
	UseTimer bool   `json:"use_timer"`
}
