package models

// Extraction is the immutable historical record of one completed run.
// It is created atomically server-side and never mutated afterwards.
type Extraction struct {
	ID    int `json:"id"`
	RunID int `json:"run_id"`
	// FinalXP is the day's XP after penalties.
	FinalXP int `json:"final_xp"`
	// XPBeforePenalties is the pre-penalty XP total.
	XPBeforePenalties int `json:"xp_before_penalties"`
	// PenaltyXP is the total XP lost to fail penalties.
	PenaltyXP int `json:"penalty_xp"`

	TasksCompleted int `json:"tasks_completed"`
	TasksFailed    int `json:"tasks_failed"`
	TasksTotal     int `json:"tasks_total"`

	TotalFocusMinutes int `json:"total_focus_minutes"`

	// Per-tier completion/failure counts.
	T1Completed int `json:"t1_completed"`
	T2Completed int `json:"t2_completed"`
	T3Completed int `json:"t3_completed"`
	T1Failed    int `json:"t1_failed"`
	T2Failed    int `json:"t2_failed"`
	T3Failed    int `json:"t3_failed"`

	// Timer discipline counts over completed tasks.
	CompletedWithTimer    int `json:"completed_with_timer"`
	CompletedWithoutTimer int `json:"completed_without_timer"`

	CreatedAt ServerTime `json:"created_at"`
}

// JournalEntry pairs an extraction with the metadata of the run it closed.
type JournalEntry struct {
	Extraction  Extraction  `json:"extraction"`
	RunDate     string      `json:"run_date"`
	StartedAt   ServerTime  `json:"started_at"`
	ExtractedAt *ServerTime `json:"extracted_at,omitempty"`
}

// UserStats holds a user's cumulative statistics across all extractions.
type UserStats struct {
	TotalXP             int `json:"total_xp"`
	TotalExtractions    int `json:"total_extractions"`
	TotalTasksCompleted int `json:"total_tasks_completed"`
	TotalFocusMinutes   int `json:"total_focus_minutes"`
	CurrentStreak       int `json:"current_streak"`
	BestStreak          int `json:"best_streak"`
}

// User is the profile record returned by the server.
type User struct {
	ID         int        `json:"id"`
	TelegramID int64      `json:"telegram_id"`
	Username   string     `json:"username,omitempty"`
	FirstName  string     `json:"first_name,omitempty"`
	Stats      UserStats  `json:"stats"`
	CreatedAt  ServerTime `json:"created_at"`
}
