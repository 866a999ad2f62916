package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/ShayCichocki/rogueday/internal/economy"
	"github.com/ShayCichocki/rogueday/pkg/models"
)

// AddTask creates a task via the server and refreshes the mirror. Task
// creation is never optimistic: a locally fabricated task would need a
// temporary id that later swaps for the server id, which breaks list
// identity downstream. The server's copy carries the permanent id.
func (s *Store) AddTask(ctx context.Context, spec models.TaskSpec) (*models.Task, error) {
	if strings.TrimSpace(spec.Title) == "" {
		return nil, fmt.Errorf("task title cannot be empty")
	}
	if !spec.Tier.Valid() {
		return nil, fmt.Errorf("invalid tier: %d", spec.Tier)
	}
	if err := economy.ValidateDuration(spec.Tier, spec.Duration); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.run == nil {
		s.mu.Unlock()
		return nil, ErrNoActiveRun
	}
	if !economy.IsTierUnlocked(spec.Tier, s.run.TotalFocusMinutes) {
		s.mu.Unlock()
		return nil, fmt.Errorf("tier %d is locked: more focus minutes required", spec.Tier)
	}
	s.mu.Unlock()

	task, err := s.gw.CreateTask(ctx, spec)
	if err != nil {
		return nil, err
	}

	// The create succeeded server-side; a failed refresh only delays the
	// mirror catching up.
	if err := s.Refresh(ctx); err != nil {
		logf("refresh after add task failed: %v", err)
	}
	return task, nil
}

// StartTask optimistically transitions a pending task to active: status
// flips, a provisional local started_at is stamped, and the tier's energy
// cost is deducted immediately. On server success the task row is replaced
// with the server's version, whose started_at becomes the countdown anchor
// (local and server clocks differ by network latency; the server wins).
// On failure every touched field reverts to its snapshot.
func (s *Store) StartTask(ctx context.Context, taskID int) error {
	s.mu.Lock()
	task, err := s.requireTask(taskID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if task.Status != models.TaskStatusPending {
		s.mu.Unlock()
		return fmt.Errorf("task %d is %s, only pending tasks can start", taskID, task.Status)
	}
	if s.run.FocusEnergy < task.EnergyCost {
		s.mu.Unlock()
		return fmt.Errorf("task %d needs %d energy, have %d: %w",
			taskID, task.EnergyCost, s.run.FocusEnergy, ErrInsufficientEnergy)
	}

	t := s.begin(task)
	now := models.NewServerTime(s.clock().UTC())
	task.Status = models.TaskStatusActive
	task.StartedAt = &now
	s.run.FocusEnergy -= task.EnergyCost
	s.mu.Unlock()

	serverTask, err := s.gw.StartTask(ctx, taskID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.rollback(t)
		return err
	}
	// Reconcile narrowly: the server row replaces the optimistic row.
	if s.run != nil && s.gen == t.gen {
		if row := s.run.TaskByID(taskID); row != nil {
			*row = *serverTask
		}
	}
	s.commit(t)
	return nil
}

// CompleteTask optimistically finishes a task. Four fields move as one
// local transaction: the task's status, the run's daily XP, its focus
// energy (the start cost returns, clamped to max), and its total focus
// minutes. A server failure reverses all four exactly; success triggers a
// full refresh to absorb any concurrent server-side effects.
func (s *Store) CompleteTask(ctx context.Context, taskID int) error {
	s.mu.Lock()
	task, err := s.requireTask(taskID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if task.Status.Terminal() {
		s.mu.Unlock()
		return fmt.Errorf("task %d is already %s", taskID, task.Status)
	}
	wasActive := task.Status == models.TaskStatusActive

	t := s.begin(task)
	now := models.NewServerTime(s.clock().UTC())
	task.Status = models.TaskStatusCompleted
	task.CompletedAt = &now
	s.run.DailyXP += task.XPEarned
	if wasActive {
		// Energy was spent at start; completing returns it.
		s.run.FocusEnergy = clampEnergy(s.run.FocusEnergy+task.EnergyCost, s.run.MaxEnergy)
	}
	s.run.TotalFocusMinutes += task.Duration
	s.mu.Unlock()

	_, err = s.gw.CompleteTask(ctx, taskID)

	s.mu.Lock()
	if err != nil {
		s.rollback(t)
		s.mu.Unlock()
		return err
	}
	s.commit(t)
	s.mu.Unlock()

	if err := s.Refresh(ctx); err != nil {
		logf("refresh after complete failed: %v", err)
	}
	return nil
}

// FailTask optimistically fails an active task. The tier's penalty is
// computed against the pre-failure daily XP; energy spent at start stays
// spent. A server failure restores status and adds the penalty back.
func (s *Store) FailTask(ctx context.Context, taskID int) error {
	s.mu.Lock()
	task, err := s.requireTask(taskID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if !economy.CanFail(task.Tier) {
		s.mu.Unlock()
		return fmt.Errorf("tier %d tasks cannot fail", task.Tier)
	}
	if task.Status != models.TaskStatusActive {
		s.mu.Unlock()
		return fmt.Errorf("task %d is %s, only active tasks can fail", taskID, task.Status)
	}

	t := s.begin(task)
	now := models.NewServerTime(s.clock().UTC())
	xpLoss, _ := economy.FailPenalty(task.Tier, s.run.DailyXP, task.EnergyCost)
	task.Status = models.TaskStatusFailed
	task.CompletedAt = &now
	s.run.DailyXP -= xpLoss
	s.mu.Unlock()

	_, err = s.gw.FailTask(ctx, taskID)

	s.mu.Lock()
	if err != nil {
		s.rollback(t)
		s.mu.Unlock()
		return err
	}
	s.commit(t)
	s.mu.Unlock()

	if err := s.Refresh(ctx); err != nil {
		logf("refresh after fail failed: %v", err)
	}
	return nil
}

// DeleteTask removes a pending task via the server, then refreshes. Not
// optimistic, for the same list-identity reason as AddTask: removing and
// re-adding a row on rollback would reorder ids under the presentation.
func (s *Store) DeleteTask(ctx context.Context, taskID int) error {
	s.mu.Lock()
	task, err := s.requireTask(taskID)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if task.Status != models.TaskStatusPending {
		s.mu.Unlock()
		return fmt.Errorf("task %d is %s, only pending tasks can be deleted", taskID, task.Status)
	}
	s.inflight[taskID] = true
	s.mu.Unlock()

	err = s.gw.DeleteTask(ctx, taskID)

	s.mu.Lock()
	delete(s.inflight, taskID)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if err := s.Refresh(ctx); err != nil {
		logf("refresh after delete failed: %v", err)
	}
	return nil
}
