package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "hdt/internal/modules/progress/dto"
	sessiondto "hdt/internal/modules/session/dto"
	"hdt/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Dashboard(ctx context.Context) (progressdto.Dashboard, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Dashboard progressdto.Dashboard
	Err       error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port    Port
	data    progressdto.Dashboard
	timer   sessiondto.StatusOutput
	bar     progress.Model
	err     error
	loading bool
	width   int
	height  int
}

func New(port Port) Model {
	return Model{
		port:    port,
		bar:     newBar(),
		loading: true,
	}
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

// Refresh reloads the dashboard from the port.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		d, err := m.port.Dashboard(context.Background())
		return LoadedMsg{Dashboard: d, Err: err}
	}
}

// SetTimer updates the focus timer panel.
func (m *Model) SetTimer(s sessiondto.StatusOutput) { m.timer = s }

// Data returns the last loaded dashboard.
func (m Model) Data() progressdto.Dashboard { return m.data }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar = newBar()
		m.bar.Width = max(m.width/2-8, 10)
	case LoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err == nil {
			m.data = msg.Dashboard
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, theme.Muted.Render("Loading dashboard…"))
	}
	if m.err != nil {
		return theme.Bad.Render("Error: " + m.err.Error())
	}
	d := m.data
	half := max(m.width/2-2, 20)

	today := []string{
		theme.Title.Render(fmt.Sprintf("Day %d of %d", d.CurrentDay, d.TotalDays)),
		d.Topic,
		theme.Muted.Render(d.PhaseName),
		m.bar.ViewAs(d.PhaseDayPercent / 100),
		"",
		theme.Title.Render("Today's goal"),
		fmt.Sprintf("%d / %d min", d.TodayMinutes, d.DailyGoal*60),
		m.bar.ViewAs(d.GoalPercent / 100),
	}

	stats := []string{
		theme.Title.Render(fmt.Sprintf("Level %d", d.Level)),
		fmt.Sprintf("%d XP  (%d / %d)", d.TotalXP, d.XPIntoLevel, d.XPPerLevel),
		m.bar.ViewAs(float64(d.XPIntoLevel) / float64(max(d.XPPerLevel, 1))),
		"",
		fmt.Sprintf("%s %d days", theme.Hot.Render("streak"), d.Streak),
		fmt.Sprintf("%s %d / %d", theme.Muted.Render("done"), d.CompletedCount, d.TotalDays),
		m.bar.ViewAs(d.OverallPercent / 100),
		fmt.Sprintf("%s %.1f h", theme.Muted.Render("hours"), d.TotalHours),
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Pane.Width(half).Render(strings.Join(today, "\n")),
		theme.Pane.Width(half).Render(strings.Join(stats, "\n")),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Pane.Width(half).Render(m.renderTimer()),
		theme.Pane.Width(half).Render(m.renderMilestones()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

// ─── private ─────────────────────────────────────────────────────────────────

func newBar() progress.Model {
	return progress.New(progress.WithSolidFill(string(theme.Lavender)), progress.WithoutPercentage())
}

func (m Model) renderTimer() string {
	t := m.timer
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Focus timer") + "\n")
	if !t.Active {
		sb.WriteString(theme.Muted.Render("idle  t: start"))
		return sb.String()
	}
	clock := FormatClock(t.Elapsed)
	if t.Mode == "countdown" {
		clock = FormatClock(t.Remaining)
	}
	sb.WriteString(fmt.Sprintf("%s  %s  day %d\n", theme.Hot.Render(clock), t.Mode, t.Day))
	if t.Mode == "countdown" && t.Duration > 0 {
		sb.WriteString(m.bar.ViewAs(float64(t.Elapsed)/float64(t.Duration)) + "\n")
	}
	sb.WriteString(theme.Muted.Render(t.State + "  t: start/pause  T: stop"))
	return sb.String()
}

func (m Model) renderMilestones() string {
	d := m.data
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Achievements") + "\n")
	if len(d.Achievements) == 0 {
		sb.WriteString(theme.Muted.Render("none yet") + "\n")
	}
	for _, a := range d.Achievements {
		sb.WriteString(fmt.Sprintf("%s %s\n", a.Badge, a.Name))
	}
	if d.NextMilestone != nil {
		n := d.NextMilestone
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("next: %s %s on day %d (+%d XP)", n.Badge, n.Name, n.Day, n.XP)))
	}
	return strings.TrimRight(sb.String(), "\n")
}
