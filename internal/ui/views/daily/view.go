package daily

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "hdt/internal/modules/progress/dto"
	"hdt/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	GetDay(ctx context.Context, day int) (progressdto.DayView, error)
	NavigateDay(ctx context.Context, delta int) (progressdto.DayView, error)
	ToggleTask(ctx context.Context, day, index int, done bool) (progressdto.DayView, error)
	SaveReflection(ctx context.Context, day int, notes, challenges *string, understanding *int) (progressdto.DayView, error)
	CompleteDay(ctx context.Context, day int) (progressdto.CompleteDayOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

// DayLoadedMsg carries a fresh day view after any read or edit.
type DayLoadedMsg struct {
	Day progressdto.DayView
	Err error
}

// CompletedMsg bubbles up to the app so it can refresh the other tabs.
type CompletedMsg struct {
	Out progressdto.CompleteDayOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

type field int

const (
	fieldNone field = iota
	fieldNotes
	fieldChallenges
)

type Model struct {
	port    Port
	day     progressdto.DayView
	cursor  int
	editor  textarea.Model
	editing field
	err     error
	loaded  bool
	width   int
	height  int
}

func New(port Port) Model {
	ta := textarea.New()
	ta.Placeholder = "What did you learn today?"
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	return Model{port: port, editor: ta}
}

func (m Model) Init() tea.Cmd { return m.Load(0) }

// Load shows day; 0 means the current day.
func (m Model) Load(day int) tea.Cmd {
	return func() tea.Msg {
		d, err := m.port.GetDay(context.Background(), day)
		return DayLoadedMsg{Day: d, Err: err}
	}
}

// Refresh reloads the day being shown.
func (m Model) Refresh() tea.Cmd { return m.Load(m.day.Day) }

// Day is the day number on screen, 0 before the first load.
func (m Model) Day() int { return m.day.Day }

// Editing reports whether the notes editor owns the keyboard.
func (m Model) Editing() bool { return m.editing != fieldNone }

func (m Model) Navigate(delta int) tea.Cmd {
	return func() tea.Msg {
		d, err := m.port.NavigateDay(context.Background(), delta)
		return DayLoadedMsg{Day: d, Err: err}
	}
}

// ToggleTask flips the task at index on the shown day.
func (m Model) ToggleTask(index int) tea.Cmd {
	if index < 0 || index >= len(m.day.Tasks) {
		return func() tea.Msg {
			return DayLoadedMsg{Day: m.day, Err: fmt.Errorf("no task %d", index+1)}
		}
	}
	day, done := m.day.Day, !m.day.Tasks[index].Done
	return func() tea.Msg {
		d, err := m.port.ToggleTask(context.Background(), day, index, done)
		return DayLoadedMsg{Day: d, Err: err}
	}
}

func (m Model) SaveReflection(notes, challenges *string, understanding *int) tea.Cmd {
	day := m.day.Day
	return func() tea.Msg {
		d, err := m.port.SaveReflection(context.Background(), day, notes, challenges, understanding)
		return DayLoadedMsg{Day: d, Err: err}
	}
}

func (m Model) Complete() tea.Cmd {
	day := m.day.Day
	return func() tea.Msg {
		out, err := m.port.CompleteDay(context.Background(), day)
		return CompletedMsg{Out: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(max(m.width-6, 20))
		m.editor.SetHeight(max(m.height/4, 3))

	case DayLoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.day = msg.Day
			m.loaded = true
			m.cursor = min(m.cursor, max(len(m.day.Tasks)-1, 0))
		}

	case CompletedMsg:
		if msg.Err == nil {
			// Completion advances the current day; follow it.
			return m, m.Load(0)
		}
		m.err = msg.Err

	case tea.KeyMsg:
		if m.Editing() {
			return m.updateEditor(msg)
		}
		return m.updateKeys(msg)
	}

	if m.Editing() {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if !m.loaded {
		if m.err != nil {
			return theme.Bad.Render("Error: " + m.err.Error())
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Muted.Render("Loading day…"))
	}
	d := m.day
	var sb strings.Builder

	header := theme.Title.Render(fmt.Sprintf("Day %d: %s", d.Day, d.Topic))
	switch {
	case d.Completed:
		header += "  " + theme.Good.Render("✓ completed "+d.CompletedAt)
	case d.IsCurrent:
		header += "  " + theme.Hot.Render("today")
	}
	sb.WriteString(header + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%s · %s · ~%.0fh · %d min logged", d.PhaseName, d.Difficulty, d.EstimatedHours, d.Minutes)) + "\n")
	if len(d.Subtopics) > 0 {
		sb.WriteString(strings.Join(d.Subtopics, ", ") + "\n")
	}
	sb.WriteString(theme.Muted.Render("project: ") + d.Project + "\n\n")

	sb.WriteString(theme.Title.Render("Tasks") + "\n")
	for i, t := range d.Tasks {
		check := "[ ]"
		if t.Done {
			check = theme.Good.Render("[x]")
		}
		line := fmt.Sprintf("%s %d. %s", check, i+1, t.Label)
		if i == m.cursor && !m.Editing() {
			line = theme.Hot.Render("›") + " " + line
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString("\n" + theme.Title.Render("Understanding") + " " + stars(d.Understanding) + "\n\n")
	sb.WriteString(m.renderField(fieldNotes, "Notes", d.Notes))
	sb.WriteString(m.renderField(fieldChallenges, "Challenges", d.Challenges))

	if m.err != nil {
		sb.WriteString(theme.Bad.Render("Error: "+m.err.Error()) + "\n")
	}
	sb.WriteString(theme.Muted.Render(m.hint()))
	return theme.Pane.Width(max(m.width-4, 20)).Render(sb.String())
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) updateKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.day.Tasks)-1 {
			m.cursor++
		}
	case " ", "x":
		return m, m.ToggleTask(m.cursor)
	case "left", "h":
		return m, m.Navigate(-1)
	case "right", "l":
		return m, m.Navigate(1)
	case "1", "2", "3", "4", "5":
		u := int(msg.String()[0] - '0')
		return m, m.SaveReflection(nil, nil, &u)
	case "n":
		cmd := m.openEditor(fieldNotes, m.day.Notes)
		return m, cmd
	case "c":
		cmd := m.openEditor(fieldChallenges, m.day.Challenges)
		return m, cmd
	case "enter":
		return m, m.Complete()
	}
	return m, nil
}

func (m Model) updateEditor(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeEditor()
		return m, nil
	case "ctrl+s":
		text := m.editor.Value()
		f := m.editing
		m.closeEditor()
		if f == fieldNotes {
			return m, m.SaveReflection(&text, nil, nil)
		}
		return m, m.SaveReflection(nil, &text, nil)
	}
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) openEditor(f field, value string) tea.Cmd {
	m.editing = f
	m.editor.SetValue(value)
	return m.editor.Focus()
}

func (m *Model) closeEditor() {
	m.editing = fieldNone
	m.editor.Blur()
	m.editor.Reset()
}

func (m Model) renderField(f field, label, value string) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(label) + "\n")
	switch {
	case m.editing == f:
		sb.WriteString(m.editor.View() + "\n")
	case strings.TrimSpace(value) == "":
		sb.WriteString(theme.Muted.Render("(empty)") + "\n")
	default:
		sb.WriteString(value + "\n")
	}
	return sb.String() + "\n"
}

func (m Model) hint() string {
	if m.Editing() {
		return "ctrl+s: save  esc: cancel"
	}
	return "↑/↓: task  space: toggle  ←/→: day  1-5: understanding  n: notes  c: challenges  enter: complete"
}

func stars(n int) string {
	if n <= 0 {
		return theme.Muted.Render("not rated")
	}
	return theme.Hot.Render(strings.Repeat("★", n)) + theme.Muted.Render(strings.Repeat("☆", 5-n))
}
