package models

// Template is a saved task blueprint for quick re-creation.
type Template struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Tier     Tier   `json:"tier"`
	Duration int    `json:"duration"`
	UseTimer bool   `json:"use_timer"`
	Category string `json:"category,omitempty"`
	// Source records how the template was created ("manual" or "from_task").
	Source    string     `json:"source"`
	TimesUsed int        `json:"times_used"`
	CreatedAt ServerTime `json:"created_at"`
}

// Preset is a named, ordered collection of templates.
type Preset struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Emoji      string     `json:"emoji,omitempty"`
	IsFavorite bool       `json:"is_favorite"`
	Templates  []Template `json:"templates"`
	CreatedAt  ServerTime `json:"created_at"`
}

// PresetApplyResult reports the outcome of applying a preset to the
// current run. Templates the run cannot afford are skipped, not rejected.
type PresetApplyResult struct {
	TasksCreated    int    `json:"tasks_created"`
	TasksSkipped    int    `json:"tasks_skipped"`
	TotalEnergyCost int    `json:"total_energy_cost"`
	Message         string `json:"message"`
}
