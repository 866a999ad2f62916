// Package tui provides the terminal dashboard for Rogue-Day: the task list,
// focus energy bar, live countdown, and extraction journal.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/rogueday/internal/store"
	"github.com/ShayCichocki/rogueday/internal/timer"
	"github.com/ShayCichocki/rogueday/pkg/models"
)

// viewMode selects which screen the dashboard is showing.
type viewMode int

const (
	viewDashboard viewMode = iota
	viewInput
	viewJournal
	viewExtraction
)

// tickMsg drives the once-per-second countdown re-evaluation.
type tickMsg time.Time

// syncedMsg reports the result of a background refresh.
type syncedMsg struct {
	err error
}

// actionDoneMsg reports the result of a store action.
type actionDoneMsg struct {
	action string
	err    error
}

// extractedMsg carries a successful extraction result.
type extractedMsg struct {
	extraction *models.Extraction
	err        error
}

// journalLoadedMsg carries journal entries for the journal view.
type journalLoadedMsg struct {
	entries []models.JournalEntry
	err     error
}

// ConfigReloadedMsg carries fresh options after a config file change.
type ConfigReloadedMsg struct {
	Options Options
}

// JournalReader is the slice of the journal cache the TUI reads.
type JournalReader interface {
	List(limit int) ([]models.JournalEntry, error)
}

// Options configures the dashboard.
type Options struct {
	// Timeout bounds each backend call issued from the dashboard.
	Timeout time.Duration
	// Sounds rings the terminal bell when a countdown expires.
	Sounds bool
}

// App is the main bubbletea model for the Rogue-Day dashboard.
type App struct {
	store   *store.Store
	journal JournalReader
	opts    Options

	mode     viewMode
	selected int
	// timerFired latches the countdown expiry until the next tick handles it.
	timerFired bool
	// bell queues a terminal bell for the next render.
	bell bool
	// lastSnapshot is the countdown state rendered next to the active task.
	lastSnapshot timer.Snapshot
	countdown    *timer.Countdown

	lastExtraction *models.Extraction
	journalEntries []models.JournalEntry

	header    *Header
	energy    *EnergyBar
	tasks     *TasksView
	input     *TaskInput
	journalUI *JournalView
	footer    *Footer

	width    int
	height   int
	quitting bool
}

// New creates the dashboard around a synchronized store. journal may be nil.
func New(s *store.Store, journal JournalReader, opts Options) *App {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	a := &App{
		store:     s,
		journal:   journal,
		opts:      opts,
		header:    NewHeader(),
		energy:    NewEnergyBar(),
		tasks:     NewTasksView(),
		input:     NewTaskInput(),
		journalUI: NewJournalView(),
		footer:    NewFooter(),
	}
	a.countdown = timer.New(func() {
		a.timerFired = true
	})
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.syncCmd(), tickCmd())
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.header.SetWidth(msg.Width)
		a.energy.SetWidth(msg.Width)
		a.tasks.SetSize(msg.Width, msg.Height-8)
		a.input.SetWidth(msg.Width)
		a.journalUI.SetWidth(msg.Width)
		a.footer.SetWidth(msg.Width)
		return a, nil

	case tickMsg:
		a.evaluateCountdown()
		if a.timerFired {
			a.timerFired = false
			a.bell = a.opts.Sounds
			a.footer.SetMessage("time! complete or fail the task", false)
		}
		return a, tickCmd()

	case syncedMsg:
		if msg.err != nil {
			a.footer.SetMessage("sync failed: "+msg.err.Error(), true)
		}
		a.clampSelection()
		return a, nil

	case actionDoneMsg:
		if msg.err != nil {
			a.footer.SetMessage(msg.action+" failed: "+msg.err.Error(), true)
		} else {
			a.footer.SetMessage(msg.action, false)
		}
		a.clampSelection()
		return a, nil

	case extractedMsg:
		if msg.err != nil {
			a.footer.SetMessage("extract failed: "+msg.err.Error(), true)
			return a, nil
		}
		a.lastExtraction = msg.extraction
		a.mode = viewExtraction
		a.footer.SetMessage("", false)
		return a, nil

	case journalLoadedMsg:
		if msg.err != nil {
			a.footer.SetMessage("journal load failed: "+msg.err.Error(), true)
			return a, nil
		}
		a.journalEntries = msg.entries
		a.mode = viewJournal
		return a, nil

	case ConfigReloadedMsg:
		if msg.Options.Timeout > 0 {
			a.opts = msg.Options
		}
		return a, nil

	case TaskSubmittedMsg:
		a.mode = viewDashboard
		a.input.Blur()
		return a, a.addTaskCmd(msg.Spec)

	case InputCanceledMsg:
		a.mode = viewDashboard
		a.input.Blur()
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.mode == viewInput {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

// handleKey routes key presses by view mode.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.mode == viewInput {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	if a.mode == viewExtraction {
		a.mode = viewDashboard
		return a, a.syncCmd()
	}

	switch msg.String() {
	case "q", "ctrl+c":
		a.quitting = true
		return a, tea.Quit

	case "j":
		if a.mode == viewJournal {
			a.mode = viewDashboard
			return a, nil
		}
		return a, a.loadJournalCmd()
	}

	if a.mode == viewJournal {
		return a, nil
	}

	switch msg.String() {
	case "up", "k":
		if a.selected > 0 {
			a.selected--
		}
	case "down":
		if a.selected < len(a.store.Tasks())-1 {
			a.selected++
		}
	case "a":
		a.mode = viewInput
		return a, a.input.Focus()
	case "n":
		return a, a.startRunCmd()
	case "s":
		if task := a.selectedTask(); task != nil {
			return a, a.taskActionCmd("started "+task.Title, task.ID, a.store.StartTask)
		}
	case "c":
		if task := a.selectedTask(); task != nil {
			return a, a.taskActionCmd("completed "+task.Title, task.ID, a.store.CompleteTask)
		}
	case "f":
		if task := a.selectedTask(); task != nil {
			return a, a.taskActionCmd("failed "+task.Title, task.ID, a.store.FailTask)
		}
	case "d":
		if task := a.selectedTask(); task != nil {
			return a, a.taskActionCmd("deleted "+task.Title, task.ID, a.store.DeleteTask)
		}
	case "x":
		return a, a.extractCmd()
	case "r":
		return a, a.syncCmd()
	}
	return a, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	run := a.store.Run()
	stats := a.store.Stats()

	view := a.header.View(run, stats) + "\n"

	switch a.mode {
	case viewJournal:
		view += a.journalUI.View(a.journalEntries)
	case viewExtraction:
		if a.lastExtraction != nil {
			view += ExtractionSummary(a.lastExtraction)
		}
	default:
		if run != nil {
			view += a.energy.View(run) + "\n\n"
		}
		var snap *timer.Snapshot
		if a.countdown.Active() {
			snap = &a.lastSnapshot
		}
		view += a.tasks.View(a.store.Tasks(), a.selected, snap)
		if a.mode == viewInput {
			view += "\n" + a.input.View()
		}
	}

	view += "\n" + a.footer.View(a.mode)

	if a.bell {
		a.bell = false
		view += "\a"
	}

	return view
}

// evaluateCountdown re-anchors the countdown to the active timed task, if
// any, and records the fresh snapshot for rendering.
func (a *App) evaluateCountdown() {
	var active *models.Task
	for _, task := range a.store.Tasks() {
		if task.Status == models.TaskStatusActive && task.UseTimer {
			t := task
			active = &t
			break
		}
	}

	if active == nil || active.StartedAt == nil {
		a.countdown.Configure("", 0, false)
		a.lastSnapshot = timer.Snapshot{}
		return
	}

	a.countdown.Configure(active.StartedAt.Format(time.RFC3339Nano), active.Duration, true)
	a.lastSnapshot = a.countdown.Tick()
}

// selectedTask resolves the current selection against the live task list.
func (a *App) selectedTask() *models.Task {
	tasks := a.store.Tasks()
	if a.selected < 0 || a.selected >= len(tasks) {
		return nil
	}
	return &tasks[a.selected]
}

// clampSelection keeps the cursor inside the list after it shrinks.
func (a *App) clampSelection() {
	n := len(a.store.Tasks())
	if n == 0 {
		a.selected = 0
	} else if a.selected >= n {
		a.selected = n - 1
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (a *App) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), a.opts.Timeout)
}

func (a *App) syncCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()
		return syncedMsg{err: a.store.Refresh(ctx)}
	}
}

func (a *App) startRunCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()
		_, err := a.store.StartNewRun(ctx)
		return actionDoneMsg{action: "run started", err: err}
	}
}

func (a *App) addTaskCmd(spec models.TaskSpec) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()
		_, err := a.store.AddTask(ctx, spec)
		return actionDoneMsg{action: "added " + spec.Title, err: err}
	}
}

func (a *App) taskActionCmd(label string, taskID int, fn func(context.Context, int) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()
		return actionDoneMsg{action: label, err: fn(ctx, taskID)}
	}
}

func (a *App) extractCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := a.ctx()
		defer cancel()
		extraction, err := a.store.ExtractRun(ctx)
		return extractedMsg{extraction: extraction, err: err}
	}
}

func (a *App) loadJournalCmd() tea.Cmd {
	return func() tea.Msg {
		if a.journal == nil {
			return journalLoadedMsg{}
		}
		entries, err := a.journal.List(30)
		return journalLoadedMsg{entries: entries, err: err}
	}
}

// NewProgram creates the dashboard program without starting it, so the
// caller can Send messages (config reloads) from outside.
func NewProgram(s *store.Store, journal JournalReader, opts Options) (*tea.Program, *App) {
	app := New(s, journal, opts)
	p := tea.NewProgram(app, tea.WithAltScreen())
	return p, app
}

// Run starts the dashboard and blocks until the user quits.
func Run(s *store.Store, journal JournalReader, opts Options) error {
	p, _ := NewProgram(s, journal, opts)
	_, err := p.Run()
	return err
}
