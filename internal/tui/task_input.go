package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ShayCichocki/rogueday/internal/economy"
	"github.com/ShayCichocki/rogueday/pkg/models"
)

// TaskSubmittedMsg is sent when the user submits a new task from the input.
type TaskSubmittedMsg struct {
	Spec models.TaskSpec
}

// InputCanceledMsg is sent when the user dismisses the input.
type InputCanceledMsg struct{}

// ParseTaskSpec turns an input line into a task spec. The grammar is
// freeform with optional markers anywhere in the line:
//
//	!1 / !2 / !3      tier (default tier 1)
//	25m               duration in minutes (default: tier minimum)
//	+timer / -timer   opt in or out of the countdown where the tier allows
//
// Everything else becomes the title. Example: "!2 write report 15m +timer".
func ParseTaskSpec(line string) (models.TaskSpec, error) {
	spec := models.TaskSpec{Tier: models.Tier1}
	duration := 0
	timerChoice := ""

	var words []string
	for _, word := range strings.Fields(line) {
		switch {
		case word == "!1" || word == "!2" || word == "!3":
			n, _ := strconv.Atoi(word[1:])
			spec.Tier = models.Tier(n)
		case word == "+timer":
			timerChoice = "on"
		case word == "-timer":
			timerChoice = "off"
		case isDurationToken(word):
			duration, _ = strconv.Atoi(strings.TrimSuffix(word, "m"))
		default:
			words = append(words, word)
		}
	}

	spec.Title = strings.Join(words, " ")
	if spec.Title == "" {
		return spec, fmt.Errorf("task needs a title")
	}

	rules, _ := economy.Rules(spec.Tier)
	if duration == 0 {
		duration = rules.MinDuration
	}
	spec.Duration = duration

	switch rules.TimerMode {
	case models.TimerModeRequired:
		spec.UseTimer = true
	case models.TimerModeOptional:
		spec.UseTimer = timerChoice != "off"
	default:
		spec.UseTimer = false
	}

	return spec, nil
}

func isDurationToken(word string) bool {
	if !strings.HasSuffix(word, "m") || len(word) < 2 {
		return false
	}
	_, err := strconv.Atoi(strings.TrimSuffix(word, "m"))
	return err == nil
}

// TaskInput is the text input for adding tasks.
type TaskInput struct {
	input textinput.Model
	errMsg string
	width int
}

// NewTaskInput creates a new TaskInput.
func NewTaskInput() *TaskInput {
	ti := textinput.New()
	ti.Placeholder = "!2 write report 15m  (esc to cancel)"
	ti.CharLimit = 200
	ti.Width = 60

	return &TaskInput{
		input: ti,
		width: 80,
	}
}

// SetWidth sets the width of the input field.
func (f *TaskInput) SetWidth(width int) {
	f.width = width
	f.input.Width = width - 6
}

// Focus focuses the input and clears previous contents.
func (f *TaskInput) Focus() tea.Cmd {
	f.input.Reset()
	f.errMsg = ""
	return f.input.Focus()
}

// Blur removes focus.
func (f *TaskInput) Blur() {
	f.input.Blur()
}

// Update handles messages for the input field.
func (f *TaskInput) Update(msg tea.Msg) (*TaskInput, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			spec, err := ParseTaskSpec(f.input.Value())
			if err != nil {
				f.errMsg = err.Error()
				return f, nil
			}
			f.input.Reset()
			return f, func() tea.Msg {
				return TaskSubmittedMsg{Spec: spec}
			}
		case "esc":
			f.input.Reset()
			return f, func() tea.Msg {
				return InputCanceledMsg{}
			}
		}
	}

	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// View renders the input field.
func (f *TaskInput) View() string {
	view := boxStyle.Width(f.width - 2).Render(timerStyle.Render("+ ") + f.input.View())
	if f.errMsg != "" {
		view += "\n" + errorStyle.Render("  "+f.errMsg)
	}
	return view
}
