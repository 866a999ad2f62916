package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ShayCichocki/rogueday/pkg/models"
)

const entryColumns = `id, run_id, run_date, final_xp, xp_before_penalties, penalty_xp,
	tasks_completed, tasks_failed, tasks_total, total_focus_minutes,
	t1_completed, t2_completed, t3_completed, t1_failed, t2_failed, t3_failed,
	completed_with_timer, completed_without_timer, started_at, extracted_at`

// Append records an extraction. Appending the same run twice replaces the
// row, so replaying a server sync over a locally cached entry is harmless.
func (db *DB) Append(entry models.JournalEntry) error {
	e := entry.Extraction
	var extractedAt *string
	if entry.ExtractedAt != nil {
		s := formatTime(entry.ExtractedAt.Time)
		extractedAt = &s
	}

	_, err := db.Exec(`
		INSERT OR REPLACE INTO extractions (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.RunID, entry.RunDate, e.FinalXP, e.XPBeforePenalties, e.PenaltyXP,
		e.TasksCompleted, e.TasksFailed, e.TasksTotal, e.TotalFocusMinutes,
		e.T1Completed, e.T2Completed, e.T3Completed, e.T1Failed, e.T2Failed, e.T3Failed,
		e.CompletedWithTimer, e.CompletedWithoutTimer, formatTime(entry.StartedAt.Time), extractedAt)
	if err != nil {
		return fmt.Errorf("append extraction: %w", err)
	}
	return nil
}

// GetByRunID retrieves the cached extraction for a run, or nil.
func (db *DB) GetByRunID(runID int) (*models.JournalEntry, error) {
	row := db.QueryRow(`
		SELECT `+entryColumns+` FROM extractions WHERE run_id = ?
	`, runID)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get extraction: %w", err)
	}
	return entry, nil
}

// List returns the most recent entries, newest run date first. A limit of
// zero or less returns everything.
func (db *DB) List(limit int) ([]models.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM extractions ORDER BY run_date DESC, id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = db.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = db.Query(query)
	}
	if err != nil {
		return nil, fmt.Errorf("list extractions: %w", err)
	}
	defer rows.Close()

	var entries []models.JournalEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan extraction: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// Sync merges server-side journal history into the cache. Rows the server
// returns win over locally cached ones with the same run id.
func (db *DB) Sync(entries []models.JournalEntry) error {
	return db.Transaction(func(tx *sql.Tx) error {
		for _, entry := range entries {
			e := entry.Extraction
			var extractedAt *string
			if entry.ExtractedAt != nil {
				s := formatTime(entry.ExtractedAt.Time)
				extractedAt = &s
			}
			if _, err := tx.Exec(`
				INSERT OR REPLACE INTO extractions (`+entryColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, e.ID, e.RunID, entry.RunDate, e.FinalXP, e.XPBeforePenalties, e.PenaltyXP,
				e.TasksCompleted, e.TasksFailed, e.TasksTotal, e.TotalFocusMinutes,
				e.T1Completed, e.T2Completed, e.T3Completed, e.T1Failed, e.T2Failed, e.T3Failed,
				e.CompletedWithTimer, e.CompletedWithoutTimer, formatTime(entry.StartedAt.Time), extractedAt); err != nil {
				return fmt.Errorf("sync run %d: %w", e.RunID, err)
			}
		}
		return nil
	})
}

// Count returns the number of cached extractions.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM extractions").Scan(&n); err != nil {
		return 0, fmt.Errorf("count extractions: %w", err)
	}
	return n, nil
}

// PurgeOlderThan deletes cached entries whose run date is before the cutoff.
// Returns the number of entries deleted.
func (db *DB) PurgeOlderThan(cutoff time.Time) (int64, error) {
	result, err := db.Exec(`
		DELETE FROM extractions WHERE run_date < ?
	`, cutoff.UTC().Format("2006-01-02"))
	if err != nil {
		return 0, fmt.Errorf("purge extractions: %w", err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}

	return count, nil
}

// GetSetting reads a settings value, returning the fallback when unset.
func (db *DB) GetSetting(key, fallback string) (string, error) {
	var value string
	err := db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting writes a settings value.
func (db *DB) SetSetting(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, key, value)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*models.JournalEntry, error) {
	var entry models.JournalEntry
	e := &entry.Extraction
	var startedAt string
	var extractedAt sql.NullString
	err := row.Scan(&e.ID, &e.RunID, &entry.RunDate, &e.FinalXP, &e.XPBeforePenalties, &e.PenaltyXP,
		&e.TasksCompleted, &e.TasksFailed, &e.TasksTotal, &e.TotalFocusMinutes,
		&e.T1Completed, &e.T2Completed, &e.T3Completed, &e.T1Failed, &e.T2Failed, &e.T3Failed,
		&e.CompletedWithTimer, &e.CompletedWithoutTimer, &startedAt, &extractedAt)
	if err != nil {
		return nil, err
	}
	ts, _ := parseTime(startedAt)
	entry.StartedAt = models.NewServerTime(ts)
	entry.ExtractedAt = parseNullableTime(extractedAt)
	if entry.ExtractedAt != nil {
		e.CreatedAt = *entry.ExtractedAt
	}
	return &entry, nil
}
