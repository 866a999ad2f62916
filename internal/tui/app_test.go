package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/rogueday/internal/store"
	"github.com/ShayCichocki/rogueday/pkg/models"
)

// fixedGateway serves a canned run for dashboard tests.
type fixedGateway struct {
	run *models.Run
}

func (g *fixedGateway) CurrentRun(ctx context.Context) (*models.Run, error) { return g.run, nil }
func (g *fixedGateway) StartRun(ctx context.Context) (*models.Run, error)   { return g.run, nil }
func (g *fixedGateway) ExtractRun(ctx context.Context, runID int) (*models.Extraction, error) {
	return &models.Extraction{RunID: runID}, nil
}
func (g *fixedGateway) CreateTask(ctx context.Context, spec models.TaskSpec) (*models.Task, error) {
	return &models.Task{ID: 1, Title: spec.Title}, nil
}
func (g *fixedGateway) StartTask(ctx context.Context, taskID int) (*models.Task, error) {
	return &models.Task{ID: taskID, Status: models.TaskStatusActive}, nil
}
func (g *fixedGateway) CompleteTask(ctx context.Context, taskID int) (*models.Task, error) {
	return &models.Task{ID: taskID, Status: models.TaskStatusCompleted}, nil
}
func (g *fixedGateway) FailTask(ctx context.Context, taskID int) (*models.Task, error) {
	return &models.Task{ID: taskID, Status: models.TaskStatusFailed}, nil
}
func (g *fixedGateway) DeleteTask(ctx context.Context, taskID int) error { return nil }
func (g *fixedGateway) ApplyPreset(ctx context.Context, presetID int) (*models.PresetApplyResult, error) {
	return &models.PresetApplyResult{}, nil
}
func (g *fixedGateway) Me(ctx context.Context) (*models.User, error) { return &models.User{}, nil }

func testApp(t *testing.T) *App {
	t.Helper()
	started := models.NewServerTime(time.Now().UTC().Add(-time.Minute))
	gw := &fixedGateway{
		run: &models.Run{
			ID:          1,
			RunDate:     "2025-03-10",
			DailyXP:     120,
			FocusEnergy: 35,
			MaxEnergy:   50,
			Status:      models.RunStatusActive,
			Tasks: []models.Task{
				{ID: 1, Title: "inbox zero", Tier: models.Tier1, Duration: 5,
					Status: models.TaskStatusPending},
				{ID: 2, Title: "deep work", Tier: models.Tier3, Duration: 25,
					Status: models.TaskStatusActive, UseTimer: true, StartedAt: &started},
			},
		},
	}
	s := store.New(gw, nil)
	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	app := New(s, nil, Options{Timeout: time.Second})
	app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return app
}

func TestViewShowsRunSummaryAndTasks(t *testing.T) {
	app := testApp(t)

	view := app.View()
	for _, want := range []string{"ROGUE-DAY", "2025-03-10", "inbox zero", "deep work", "35/50"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSelectionMovesAndClamps(t *testing.T) {
	app := testApp(t)

	if app.selected != 0 {
		t.Fatalf("initial selection = %d", app.selected)
	}
	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	if app.selected != 1 {
		t.Errorf("selection after down = %d, want 1", app.selected)
	}
	// Bottom of the list: stays put.
	app.Update(tea.KeyMsg{Type: tea.KeyDown})
	if app.selected != 1 {
		t.Errorf("selection past end = %d, want 1", app.selected)
	}
	app.Update(tea.KeyMsg{Type: tea.KeyUp})
	if app.selected != 0 {
		t.Errorf("selection after up = %d, want 0", app.selected)
	}
}

func TestCountdownFollowsActiveTimedTask(t *testing.T) {
	app := testApp(t)

	app.Update(tickMsg(time.Now()))
	if !app.countdown.Active() {
		t.Fatal("countdown should anchor to the active timed task")
	}
	// 25m task started 1m ago: roughly 24m left.
	if app.lastSnapshot.Remaining < 23*60 || app.lastSnapshot.Remaining > 24*60 {
		t.Errorf("remaining = %ds, want about 24 minutes", app.lastSnapshot.Remaining)
	}

	view := app.View()
	if !strings.Contains(view, app.lastSnapshot.Formatted) {
		t.Errorf("view should show countdown %q", app.lastSnapshot.Formatted)
	}
}

func TestInputModeOpensAndCancels(t *testing.T) {
	app := testApp(t)

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	if app.mode != viewInput {
		t.Fatal("a should open the task input")
	}

	app.Update(InputCanceledMsg{})
	if app.mode != viewDashboard {
		t.Error("cancel should return to the dashboard")
	}
}

func TestQuitKey(t *testing.T) {
	app := testApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("expected tea.Quit, got %T", msg)
	}
}
