package progress

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "hdt/internal/modules/progress/dto"
	"hdt/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Progress(ctx context.Context) (progressdto.ProgressView, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	View progressdto.ProgressView
	Err  error
}

// ─── model ───────────────────────────────────────────────────────────────────

const calendarColumns = 10

type Model struct {
	port     Port
	data     progressdto.ProgressView
	viewport viewport.Model
	bar      progress.Model
	err      error
	loaded   bool
	width    int
	height   int
}

func New(port Port) Model {
	return Model{
		port:     port,
		viewport: viewport.New(0, 0),
		bar:      newBar(),
	}
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		v, err := m.port.Progress(context.Background())
		return LoadedMsg{View: v, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width
		m.viewport.Height = max(m.height-1, 1)
		m.bar = newBar()
		m.bar.Width = max(m.width/3, 10)
		m.viewport.SetContent(m.render())
		return m, nil

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.data = msg.View
			m.loaded = true
		}
		m.viewport.SetContent(m.render())
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	footer := theme.Muted.Render(fmt.Sprintf("↑/↓: scroll  %.0f%%", m.viewport.ScrollPercent()*100))
	return lipgloss.JoinVertical(lipgloss.Left, m.viewport.View(), footer)
}

// ─── private ─────────────────────────────────────────────────────────────────

func newBar() progress.Model {
	return progress.New(progress.WithSolidFill(string(theme.Green)), progress.WithoutPercentage())
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Bad.Render("Error: " + m.err.Error())
	}
	if !m.loaded {
		return theme.Muted.Render("Loading progress…")
	}
	sections := []string{
		m.renderCalendar(),
		m.renderPhases(),
		m.renderSkills(),
		m.renderMilestones(),
	}
	return strings.Join(sections, "\n\n")
}

func (m Model) renderCalendar() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Calendar") + "\n")
	for i, c := range m.data.Calendar {
		cell := fmt.Sprintf("%3d", c.Day)
		switch c.Status {
		case "completed":
			cell = theme.Good.Render(cell)
		case "current":
			cell = theme.Hot.Render(cell)
		default:
			cell = theme.Muted.Render(cell)
		}
		sb.WriteString(cell + " ")
		if (i+1)%calendarColumns == 0 {
			sb.WriteString("\n")
		}
	}
	sb.WriteString(theme.Good.Render("■ done") + "  " + theme.Hot.Render("■ today") + "  " + theme.Muted.Render("■ ahead"))
	return sb.String()
}

func (m Model) renderPhases() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Phases"))
	for _, p := range m.data.Phases {
		sb.WriteString(fmt.Sprintf("\n%s  %s\n%s %3.0f%%  %d/%d  days %d-%d",
			p.Name, theme.Muted.Render(p.Description),
			m.bar.ViewAs(p.Percent/100), p.Percent, p.Completed, p.End-p.Start+1, p.Start, p.End))
	}
	return sb.String()
}

func (m Model) renderSkills() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Skills"))
	for _, s := range m.data.Skills {
		sb.WriteString(fmt.Sprintf("\n%-12s %s %4.1f", s.Name, m.bar.ViewAs(s.Level/10), s.Level))
	}
	return sb.String()
}

func (m Model) renderMilestones() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Milestones"))
	for _, ms := range m.data.Milestones {
		line := fmt.Sprintf("day %3d  %s %s  +%d XP", ms.Day, ms.Badge, ms.Name, ms.XP)
		if ms.Earned {
			line = theme.Good.Render(line)
		} else {
			line = theme.Muted.Render(line + "  " + ms.Description)
		}
		sb.WriteString("\n" + line)
	}
	return sb.String()
}
