package projects

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "hdt/internal/modules/progress/dto"
	"hdt/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Projects(ctx context.Context) ([]progressdto.ProjectView, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type LoadedMsg struct {
	Projects []progressdto.ProjectView
	Err      error
}

// ─── list item ───────────────────────────────────────────────────────────────

type projectItem struct {
	project progressdto.ProjectView
}

func (i projectItem) Title() string { return fmt.Sprintf("Day %d · %s", i.project.Day, i.project.Name) }
func (i projectItem) Description() string {
	return fmt.Sprintf("%s · %s", i.project.Status, i.project.Difficulty)
}
func (i projectItem) FilterValue() string {
	return i.project.Name + " " + strings.Join(i.project.Technologies, " ")
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port   Port
	list   list.Model
	err    error
	width  int
	height int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Projects"
	l.Styles.Title = theme.Title
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return Model{port: port, list: l}
}

func (m Model) Init() tea.Cmd { return m.Refresh() }

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		ps, err := m.port.Projects(context.Background())
		return LoadedMsg{Projects: ps, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(m.width/2, m.height)
		return m, nil

	case LoadedMsg:
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		items := make([]list.Item, len(msg.Projects))
		for i, p := range msg.Projects {
			items[i] = projectItem{project: p}
		}
		cmd := m.list.SetItems(items)
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Bad.Render("Error: " + m.err.Error())
	}
	detailW := max(m.width-m.width/2-4, 20)
	detail := theme.Pane.Width(detailW).Height(max(m.height-2, 1)).Render(m.renderDetail())
	return lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), detail)
}

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(projectItem)
	if !ok {
		return theme.Muted.Render("No projects")
	}
	p := item.project
	status := theme.Muted.Render(p.Status)
	switch p.Status {
	case "Completed":
		status = theme.Good.Render(p.Status)
	case "In Progress":
		status = theme.Hot.Render(p.Status)
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(p.Name) + "\n\n")
	sb.WriteString(p.Description + "\n\n")
	sb.WriteString(theme.Muted.Render("due:    ") + fmt.Sprintf("day %d", p.Day) + "\n")
	sb.WriteString(theme.Muted.Render("level:  ") + p.Difficulty + "\n")
	sb.WriteString(theme.Muted.Render("status: ") + status + "\n")
	sb.WriteString(theme.Muted.Render("stack:  ") + strings.Join(p.Technologies, ", "))
	return sb.String()
}
