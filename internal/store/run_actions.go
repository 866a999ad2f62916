package store

import (
	"context"
	"fmt"

	"github.com/ShayCichocki/rogueday/pkg/models"
)

// StartNewRun creates a new run on the server and installs it as the
// mirror. Run creation is never optimistic: the run's identity, date, and
// starting energy are server-owned. On failure the mirror is untouched.
func (s *Store) StartNewRun(ctx context.Context) (*models.Run, error) {
	run, err := s.gw.StartRun(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.replaceRun(run)
	s.mu.Unlock()
	return cloneRun(run), nil
}

// ExtractRun closes out the active run. On success the mirror is discarded
// immediately, the extraction is appended to the local journal cache, and
// cumulative stats are refreshed best-effort; neither follow-up can roll
// back the extraction, which is already committed server-side.
func (s *Store) ExtractRun(ctx context.Context) (*models.Extraction, error) {
	s.mu.Lock()
	if s.run == nil {
		s.mu.Unlock()
		return nil, ErrNoActiveRun
	}
	runID := s.run.ID
	runDate := s.run.RunDate
	startedAt := s.run.StartedAt
	s.mu.Unlock()

	extraction, err := s.gw.ExtractRun(ctx, runID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.replaceRun(nil)
	s.mu.Unlock()

	if s.journal != nil {
		entry := models.JournalEntry{
			Extraction:  *extraction,
			RunDate:     runDate,
			StartedAt:   startedAt,
			ExtractedAt: &extraction.CreatedAt,
		}
		if err := s.journal.Append(entry); err != nil {
			logf("journal append for run %d failed: %v", runID, err)
		}
	}

	if err := s.RefreshStats(ctx); err != nil {
		logf("stats refresh after extraction failed: %v", err)
	}

	return extraction, nil
}

// ApplyPreset creates tasks from a preset in the current run, then
// refreshes the mirror to pick up the server's additions. Templates the
// run cannot afford are skipped server-side and reported in the result.
func (s *Store) ApplyPreset(ctx context.Context, presetID int) (*models.PresetApplyResult, error) {
	if !s.HasRun() {
		return nil, ErrNoActiveRun
	}

	result, err := s.gw.ApplyPreset(ctx, presetID)
	if err != nil {
		return nil, err
	}

	if err := s.Refresh(ctx); err != nil {
		logf("refresh after preset apply failed: %v", err)
	}
	return result, nil
}

// requireTask resolves preconditions shared by every task-scoped action.
// Caller holds s.mu.
func (s *Store) requireTask(taskID int) (*models.Task, error) {
	if s.run == nil {
		return nil, ErrNoActiveRun
	}
	task := s.run.TaskByID(taskID)
	if task == nil {
		return nil, fmt.Errorf("task %d: %w", taskID, ErrStaleTask)
	}
	if s.inflight[taskID] {
		return nil, fmt.Errorf("task %d: %w", taskID, ErrActionInFlight)
	}
	return task, nil
}
