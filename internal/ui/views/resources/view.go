package resources

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	progressdto "hdt/internal/modules/progress/dto"
	"hdt/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Resources(ctx context.Context, phase int) (progressdto.ResourcesView, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Resources progressdto.ResourcesView
	Err       error
}

// ─── model ───────────────────────────────────────────────────────────────────

const phaseCount = 5

type Model struct {
	port     Port
	data     progressdto.ResourcesView
	viewport viewport.Model
	renderer *glamour.TermRenderer
	style    string
	err      error
	width    int
	height   int
}

func New(port Port) Model {
	return Model{port: port, viewport: viewport.New(0, 0)}
}

func (m Model) Init() tea.Cmd { return m.Load(0) }

// Load fetches the resources of phase; 0 means the current phase.
func (m Model) Load(phase int) tea.Cmd {
	return func() tea.Msg {
		r, err := m.port.Resources(context.Background(), phase)
		return LoadedMsg{Resources: r, Err: err}
	}
}

func (m Model) Refresh() tea.Cmd { return m.Load(m.data.PhaseNumber) }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.width
		m.viewport.Height = max(m.height-2, 1)
		m.renderer = nil
		m.viewport.SetContent(m.renderContent())
		return m, nil

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.data = msg.Resources
		}
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			if m.data.PhaseNumber > 1 {
				return m, m.Load(m.data.PhaseNumber - 1)
			}
			return m, nil
		case "right", "l":
			if m.data.PhaseNumber < phaseCount {
				return m, m.Load(m.data.PhaseNumber + 1)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	header := theme.Title.Render("Resources") + theme.Muted.Render(fmt.Sprintf("  phase %d/%d  ←/→: phase  ↑/↓: scroll", m.data.PhaseNumber, phaseCount))
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View())
}

// Markdown renders the resources as a markdown document.
func Markdown(r progressdto.ResourcesView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", r.PhaseName)
	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&sb, "\n## %s\n\n", title)
		for _, it := range items {
			fmt.Fprintf(&sb, "- %s\n", it)
		}
	}
	section("Documentation", r.Documentation)
	section("Tutorials", r.Tutorials)
	section("Practice", r.Practice)
	section("Tools", r.Tools)
	return sb.String()
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) renderContent() string {
	if m.err != nil {
		return theme.Bad.Render("Error: " + m.err.Error())
	}
	if m.data.PhaseNumber == 0 {
		return theme.Muted.Render("Loading resources…")
	}
	md := Markdown(m.data)
	// The palette may change between renders; rebuild when it does.
	if m.renderer == nil || m.style != theme.GlamourStyle() {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(theme.GlamourStyle()),
			glamour.WithWordWrap(max(m.width-4, 20)),
		)
		if err != nil {
			return md
		}
		m.renderer, m.style = r, theme.GlamourStyle()
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return out
}
