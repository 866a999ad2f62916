package store

import (
	"github.com/google/uuid"

	"github.com/ShayCichocki/rogueday/pkg/models"
)

// txn is the reusable optimistic-update transaction. Each optimistic action
// declares its touched fields once by taking a snapshot before mutating;
// rollback restores every touched field or none at all. The snapshot is a
// full copy of the task row plus the run's three derived counters, so a
// forgotten field cannot leak through a partial rollback.
type txn struct {
	token  string
	taskID int
	// gen pins the mirror generation the snapshot was taken against.
	gen int

	task              models.Task
	dailyXP           int
	focusEnergy       int
	totalFocusMinutes int
}

// begin snapshots the task and run counters and marks the task in flight.
// Caller holds s.mu and has already verified the task exists.
func (s *Store) begin(task *models.Task) *txn {
	s.inflight[task.ID] = true
	return &txn{
		token:             uuid.New().String(),
		taskID:            task.ID,
		gen:               s.gen,
		task:              *task,
		dailyXP:           s.run.DailyXP,
		focusEnergy:       s.run.FocusEnergy,
		totalFocusMinutes: s.run.TotalFocusMinutes,
	}
}

// commit releases the in-flight guard, discarding the snapshot. Caller
// holds s.mu.
func (s *Store) commit(t *txn) {
	delete(s.inflight, t.taskID)
}

// rollback restores every field the snapshot captured, bit-for-bit. If the
// mirror was replaced since the snapshot (another action's refresh won the
// race), the snapshot is obsolete and only the in-flight guard is cleared:
// the replacement already is server truth. Caller holds s.mu.
func (s *Store) rollback(t *txn) {
	delete(s.inflight, t.taskID)

	if s.run == nil || s.gen != t.gen {
		logf("rollback %s skipped: mirror replaced since snapshot", t.token[:8])
		return
	}

	if task := s.run.TaskByID(t.taskID); task != nil {
		*task = t.task
	}
	s.run.DailyXP = t.dailyXP
	s.run.FocusEnergy = t.focusEnergy
	s.run.TotalFocusMinutes = t.totalFocusMinutes
}
