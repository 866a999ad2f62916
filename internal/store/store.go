// Package store maintains the client's authoritative mirror of the active
// run and mediates every mutation through an optimistic-update protocol:
// snapshot, mutate locally, call the server, then reconcile on success or
// roll back exactly on failure. The store is the mirror's single writer;
// everything else reads derived copies.
package store

import (
	"context"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/ShayCichocki/rogueday/pkg/models"
)

// Sentinel errors for precondition failures. These are rejected before any
// network call or local mutation, so no rollback is involved.
var (
	// ErrNoActiveRun means an operation needs a run and none is mirrored.
	ErrNoActiveRun = errors.New("no active run")
	// ErrStaleTask means the task id is not in the current mirror.
	ErrStaleTask = errors.New("task not found in current run")
	// ErrInsufficientEnergy means the run cannot afford the tier's cost.
	ErrInsufficientEnergy = errors.New("not enough focus energy")
	// ErrActionInFlight means another action for the same task is pending.
	ErrActionInFlight = errors.New("action already in flight for this task")
)

// Gateway is the backend surface the store depends on. *api.Client
// satisfies it; tests substitute stubs.
type Gateway interface {
	CurrentRun(ctx context.Context) (*models.Run, error)
	StartRun(ctx context.Context) (*models.Run, error)
	ExtractRun(ctx context.Context, runID int) (*models.Extraction, error)
	CreateTask(ctx context.Context, spec models.TaskSpec) (*models.Task, error)
	StartTask(ctx context.Context, taskID int) (*models.Task, error)
	CompleteTask(ctx context.Context, taskID int) (*models.Task, error)
	FailTask(ctx context.Context, taskID int) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID int) error
	ApplyPreset(ctx context.Context, presetID int) (*models.PresetApplyResult, error)
	Me(ctx context.Context) (*models.User, error)
}

// Journal receives extraction results for offline browsing. Appending is
// best-effort: the extraction is already committed server-side.
type Journal interface {
	Append(entry models.JournalEntry) error
}

// Store is the run synchronization store. Construct with New and share one
// instance; all methods are safe for interleaved use.
type Store struct {
	gw      Gateway
	journal Journal
	clock   func() time.Time

	mu  sync.Mutex
	run *models.Run
	// gen counts wholesale mirror replacements. A rollback whose snapshot
	// predates the current generation is obsolete: the replacement already
	// reflects server truth, so restoring stale values would corrupt it.
	gen int
	// inflight enforces at-most-one action per task id.
	inflight map[int]bool
	stats    *models.UserStats
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the wall clock, for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// New creates a Store around the given gateway and journal cache.
func New(gw Gateway, journal Journal, opts ...Option) *Store {
	s := &Store{
		gw:       gw,
		journal:  journal,
		clock:    time.Now,
		inflight: make(map[int]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run returns a deep copy of the current run mirror, or nil when no run is
// active. Callers never receive aliases into the mirror.
func (s *Store) Run() *models.Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRun(s.run)
}

// HasRun reports whether a run is currently mirrored.
func (s *Store) HasRun() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run != nil
}

// Stats returns the last fetched cumulative user statistics, or nil.
func (s *Store) Stats() *models.UserStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stats == nil {
		return nil
	}
	copied := *s.stats
	return &copied
}

// Tasks returns the presentation ordering of the run's tasks: active first,
// then pending, completed, failed; ties broken by server-assigned id. This
// is a read-side sort; the stored order never changes.
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.run == nil {
		return nil
	}
	tasks := make([]models.Task, len(s.run.Tasks))
	copy(tasks, s.run.Tasks)

	sort.SliceStable(tasks, func(i, j int) bool {
		ri, rj := statusRank(tasks[i].Status), statusRank(tasks[j].Status)
		if ri != rj {
			return ri < rj
		}
		return tasks[i].ID < tasks[j].ID
	})
	return tasks
}

func statusRank(s models.TaskStatus) int {
	switch s {
	case models.TaskStatusActive:
		return 0
	case models.TaskStatusPending:
		return 1
	case models.TaskStatusCompleted:
		return 2
	default:
		return 3
	}
}

// Refresh re-fetches the current run and replaces the mirror wholesale.
// This is the designated reconciliation step: any drift between optimistic
// local math and server math is silently corrected here.
func (s *Store) Refresh(ctx context.Context) error {
	run, err := s.gw.CurrentRun(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.replaceRun(run)
	s.mu.Unlock()
	return nil
}

// replaceRun installs a new mirror and bumps the generation. Caller holds mu.
func (s *Store) replaceRun(run *models.Run) {
	s.run = run
	s.gen++
}

// RefreshStats fetches cumulative user statistics. Best-effort callers log
// and move on when it fails.
func (s *Store) RefreshStats(ctx context.Context) error {
	user, err := s.gw.Me(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	stats := user.Stats
	s.stats = &stats
	s.mu.Unlock()
	return nil
}

// cloneRun deep-copies a run so callers cannot mutate the mirror.
func cloneRun(run *models.Run) *models.Run {
	if run == nil {
		return nil
	}
	copied := *run
	copied.Tasks = make([]models.Task, len(run.Tasks))
	copy(copied.Tasks, run.Tasks)
	return &copied
}

// clampEnergy keeps focus energy inside [0, max].
func clampEnergy(energy, max int) int {
	if energy < 0 {
		return 0
	}
	if energy > max {
		return max
	}
	return energy
}

// logf is the store's logging helper, in the repo's bracketed-prefix style.
func logf(format string, args ...any) {
	log.Printf("[store] "+format, args...)
}
