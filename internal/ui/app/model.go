package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	progressdto "hdt/internal/modules/progress/dto"
	sessiondto "hdt/internal/modules/session/dto"
	apperrors "hdt/internal/platform/errors"
	"hdt/internal/ui/components"
	"hdt/internal/ui/theme"
	dailyview "hdt/internal/ui/views/daily"
	dashboardview "hdt/internal/ui/views/dashboard"
	progressview "hdt/internal/ui/views/progress"
	projectsview "hdt/internal/ui/views/projects"
	resourcesview "hdt/internal/ui/views/resources"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type progressPort interface {
	Dashboard(ctx context.Context) (progressdto.Dashboard, error)
	ShowDay(ctx context.Context, day int) (progressdto.DayView, error)
	NextDay(ctx context.Context) (progressdto.DayView, error)
	PrevDay(ctx context.Context) (progressdto.DayView, error)
	GoToDay(ctx context.Context, day int) (progressdto.DayView, error)
	SetTask(ctx context.Context, day, index int, done bool) (progressdto.DayView, error)
	SaveNote(ctx context.Context, day int, notes, challenges *string, understanding *int) (progressdto.DayView, error)
	Complete(ctx context.Context, day int, notes, challenges *string, understanding *int) (progressdto.CompleteDayOutput, error)
	Progress(ctx context.Context) (progressdto.ProgressView, error)
	Projects(ctx context.Context) ([]progressdto.ProjectView, error)
	Resources(ctx context.Context, phase int) (progressdto.ResourcesView, error)
	Settings(ctx context.Context) (progressdto.Settings, error)
	SetTheme(ctx context.Context, name string) (progressdto.Settings, error)
	SetStartDate(ctx context.Context, date string) (progressdto.Settings, error)
	SetDailyGoal(ctx context.Context, hours int) (progressdto.Settings, error)
	Reset(ctx context.Context, confirm bool) (progressdto.Dashboard, error)
	Export(ctx context.Context, format, dir string) (progressdto.ExportOutput, error)
}

type sessionPort interface {
	Start(ctx context.Context, mode string, duration time.Duration) (sessiondto.StatusOutput, error)
	Pause(ctx context.Context) (sessiondto.StatusOutput, error)
	Reset(ctx context.Context) (sessiondto.StatusOutput, error)
	Status(ctx context.Context) (sessiondto.StatusOutput, error)
	Tick(ctx context.Context, generation uint64) (sessiondto.TickOutput, error)
	Stop(ctx context.Context) (sessiondto.StopOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDashboard tabID = iota
	tabDaily
	tabProgress
	tabProjects
	tabResources
	tabCount
)

var tabLabels = [tabCount]string{
	"Dashboard", "Daily", "Progress", "Projects", "Resources",
}

const tickEvery = time.Second

// ─── async messages ───────────────────────────────────────────────────────────

type settingsLoadedMsg struct {
	settings progressdto.Settings
	note     string
	err      error
}

// timerTickMsg is scheduled by tea.Tick; only the generation that scheduled
// it can move the timer.
type timerTickMsg struct{ generation uint64 }

type timerStatusMsg struct {
	status sessiondto.StatusOutput
	verb   string
	err    error
}

type timerTickedMsg struct {
	out sessiondto.TickOutput
	err error
}

type timerStoppedMsg struct {
	out sessiondto.StopOutput
	err error
}

type statusMsg struct {
	text    string
	err     error
	refresh bool
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Timer    key.Binding
	Stop     key.Binding
	Day      key.Binding
	Task     key.Binding
	Notes    key.Binding
	Complete key.Binding
	Phase    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Timer:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "start/pause timer")),
		Stop:     key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "stop timer")),
		Day:      key.NewBinding(key.WithKeys("left", "right"), key.WithHelp("←/→", "day or phase")),
		Task:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle task")),
		Notes:    key.NewBinding(key.WithKeys("n", "c"), key.WithHelp("n/c", "notes/challenges")),
		Complete: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "complete day")),
		Phase:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter projects")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Timer, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Day, k.Phase},
		{k.Task, k.Notes, k.Complete},
		{k.Timer, k.Stop},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the focus timer,
// the help overlay and the command palette. Business logic lives behind the
// ports; rendering is delegated to sub-views.
type Model struct {
	exportDir string

	progress progressPort
	session  sessionPort

	dashView     dashboardview.Model
	dailyView    dailyview.Model
	progressView progressview.Model
	projectsView projectsview.Model
	resView      resourcesview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	timer     sessiondto.StatusOutput
	status    string
	width     int
	height    int
}

// ─── constructor ─────────────────────────────────────────────────────────────

func NewModel(progress progressPort, session sessionPort, exportDir string) Model {
	return Model{
		exportDir:    exportDir,
		progress:     progress,
		session:      session,
		dashView:     dashboardview.New(progress),
		dailyView:    dailyview.New(dailyPortBridge{p: progress}),
		progressView: progressview.New(progress),
		projectsView: projectsview.New(progress),
		resView:      resourcesview.New(progress),
		activeTab:    tabDashboard,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadSettingsCmd(),
		m.timerCmd("recovered", m.session.Status),
		m.dashView.Init(),
		m.dailyView.Init(),
		m.progressView.Init(),
		m.projectsView.Init(),
		m.resView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all keys while open; async results still flow.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, cmd
		}
		cmds = append(cmds, cmd)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case settingsLoadedMsg:
		if msg.err != nil {
			m.status = "settings: " + msg.err.Error()
			return m, nil
		}
		theme.Apply(msg.settings.Theme)
		if msg.note != "" {
			m.status = msg.note
		}
		m.propagateSize()
		return m, m.refreshAll()

	case timerStatusMsg:
		if msg.err != nil {
			if !errors.Is(msg.err, apperrors.ErrNoActiveSession) {
				m.status = "timer: " + msg.err.Error()
			}
			return m, nil
		}
		m.setTimer(msg.status)
		if msg.status.Active && msg.status.Done {
			// A countdown ran out while the app was closed.
			return m, m.stopTimerCmd()
		}
		if msg.verb != "recovered" || msg.status.Active {
			m.status = "timer " + msg.verb
		}
		return m, m.scheduleTick()

	case timerTickMsg:
		if msg.generation != m.timer.Generation || m.timer.State != "running" {
			return m, nil
		}
		gen := msg.generation
		return m, func() tea.Msg {
			out, err := m.session.Tick(context.Background(), gen)
			return timerTickedMsg{out: out, err: err}
		}

	case timerTickedMsg:
		if msg.err != nil {
			m.status = "timer: " + msg.err.Error()
			return m, nil
		}
		if !msg.out.Applied {
			return m, nil
		}
		// A pause or reset may have landed while this tick was in flight.
		if msg.out.Finished == nil && msg.out.Status.Generation != m.timer.Generation {
			return m, nil
		}
		m.setTimer(msg.out.Status)
		if f := msg.out.Finished; f != nil {
			m.setTimer(sessiondto.StatusOutput{State: "idle"})
			m.status = fmt.Sprintf("focus session complete: +%d XP, +%.1fh", f.XPAwarded, f.HoursAwarded)
			return m, m.refreshAll()
		}
		return m, m.scheduleTick()

	case timerStoppedMsg:
		if msg.err != nil {
			m.status = "timer: " + msg.err.Error()
			return m, nil
		}
		m.setTimer(sessiondto.StatusOutput{State: "idle"})
		m.status = describeStop(msg.out)
		return m, m.refreshAll()

	case statusMsg:
		if msg.err != nil {
			m.status = msg.text + ": " + msg.err.Error()
			return m, nil
		}
		m.status = msg.text
		if msg.refresh {
			return m, m.refreshAll()
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	// Completion bubbles up from the daily view; every tab shows derived data.
	case dailyview.CompletedMsg:
		if msg.Err != nil {
			m.status = "complete: " + msg.Err.Error()
		} else {
			m.status = describeCompletion(msg.Out)
			cmds = append(cmds, m.dashView.Refresh(), m.progressView.Refresh(), m.projectsView.Refresh())
		}

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to the sub-view while it owns free-text input.
		if m.subViewCapturing() {
			return m.updateActive(msg, cmds)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, m.refreshActive()
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, m.refreshActive()
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			cmd := m.palette.Open()
			return m, cmd
		case "t":
			if m.timer.Active && m.timer.State == "running" {
				return m, m.timerCmd("paused", m.session.Pause)
			}
			return m, m.startTimerCmd("", 0)
		case "T":
			return m, m.stopTimerCmd()
		}
		return m.updateActive(msg, cmds)
	}

	// Async results are routed to every view; each ignores what it does not own.
	return m.broadcast(msg, cmds)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	tabBarH := lipgloss.Height(tabBar)
	statusBarH := lipgloss.Height(statusBar)

	contentH := m.height - tabBarH - statusBarH
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabDashboard:
		return m.dashView.View()
	case tabDaily:
		return m.dailyView.View()
	case tabProgress:
		return m.progressView.View()
	case tabProjects:
		return m.projectsView.View()
	case tabResources:
		return m.resView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "hdt  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.timer.Active {
		clock := dashboardview.FormatClock(m.timer.Elapsed)
		if m.timer.Mode == "countdown" {
			clock = dashboardview.FormatClock(m.timer.Remaining)
		}
		mark := "●"
		if m.timer.State != "running" {
			mark = "‖"
		}
		left = theme.Hot.Render(mark+" "+clock) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:switch  t:timer  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
	switch parts[0] {
	case "day:goto":
		n, err := argInt(parts, "day:goto <n>")
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.activeTab = tabDaily
		return m, m.dayCmd(func(ctx context.Context) (progressdto.DayView, error) { return m.progress.GoToDay(ctx, n) })

	case "day:next":
		m.activeTab = tabDaily
		return m, m.dailyView.Navigate(1)

	case "day:prev":
		m.activeTab = tabDaily
		return m, m.dailyView.Navigate(-1)

	case "task":
		n, err := argInt(parts, "task <index>")
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.activeTab = tabDaily
		return m, m.dailyView.ToggleTask(n - 1)

	case "note":
		m.activeTab = tabDaily
		return m, m.dailyView.SaveReflection(&rest, nil, nil)

	case "challenges":
		m.activeTab = tabDaily
		return m, m.dailyView.SaveReflection(nil, &rest, nil)

	case "understanding":
		n, err := argInt(parts, "understanding <1-5>")
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.activeTab = tabDaily
		return m, m.dailyView.SaveReflection(nil, nil, &n)

	case "complete":
		m.activeTab = tabDaily
		return m, m.dailyView.Complete()

	case "timer:start":
		mode := ""
		var duration time.Duration
		if len(parts) >= 2 {
			mode = parts[1]
		}
		if len(parts) >= 3 {
			minutes, err := strconv.Atoi(parts[2])
			if err != nil || minutes <= 0 {
				m.status = "usage: timer:start [countdown|stopwatch] [minutes]"
				return m, nil
			}
			duration = time.Duration(minutes) * time.Minute
		}
		return m, m.startTimerCmd(mode, duration)

	case "timer:pause":
		return m, m.timerCmd("paused", m.session.Pause)

	case "timer:reset":
		return m, m.timerCmd("reset", m.session.Reset)

	case "timer:stop":
		return m, m.stopTimerCmd()

	case "theme":
		if rest == "" {
			m.status = "usage: theme <system|light|dark>"
			return m, nil
		}
		return m, func() tea.Msg {
			s, err := m.progress.SetTheme(context.Background(), rest)
			return settingsLoadedMsg{settings: s, note: "theme " + s.Theme, err: err}
		}

	case "goal":
		n, err := argInt(parts, "goal <hours>")
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.settingsCmd("daily goal", func(ctx context.Context) (progressdto.Settings, error) {
			return m.progress.SetDailyGoal(ctx, n)
		})

	case "start-date":
		if rest == "" {
			m.status = "usage: start-date <YYYY-MM-DD>"
			return m, nil
		}
		return m, m.settingsCmd("start date", func(ctx context.Context) (progressdto.Settings, error) {
			return m.progress.SetStartDate(ctx, rest)
		})

	case "export":
		format := "json"
		if len(parts) >= 2 {
			format = parts[1]
		}
		dir := m.exportDir
		return m, func() tea.Msg {
			out, err := m.progress.Export(context.Background(), format, dir)
			if err != nil {
				return statusMsg{text: "export", err: err}
			}
			return statusMsg{text: fmt.Sprintf("exported %d file(s) as %s to %s", len(out.Paths), out.Format, dir)}
		}

	case "reset!":
		return m, func() tea.Msg {
			if _, err := m.progress.Reset(context.Background(), true); err != nil {
				return statusMsg{text: "reset", err: err}
			}
			return statusMsg{text: "progress reset to defaults", refresh: true}
		}

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) subViewCapturing() bool {
	switch m.activeTab {
	case tabDaily:
		return m.dailyView.Editing()
	case tabProjects:
		return m.projectsView.Filtering()
	}
	return false
}

func (m Model) updateActive(msg tea.Msg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.activeTab {
	case tabDashboard:
		m.dashView, cmd = m.dashView.Update(msg)
	case tabDaily:
		m.dailyView, cmd = m.dailyView.Update(msg)
	case tabProgress:
		m.progressView, cmd = m.progressView.Update(msg)
	case tabProjects:
		m.projectsView, cmd = m.projectsView.Update(msg)
	case tabResources:
		m.resView, cmd = m.resView.Update(msg)
	}
	return m, tea.Batch(append(cmds, cmd)...)
}

func (m Model) broadcast(msg tea.Msg, cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.dashView, cmd = m.dashView.Update(msg)
	cmds = append(cmds, cmd)
	m.dailyView, cmd = m.dailyView.Update(msg)
	cmds = append(cmds, cmd)
	m.progressView, cmd = m.progressView.Update(msg)
	cmds = append(cmds, cmd)
	m.projectsView, cmd = m.projectsView.Update(msg)
	cmds = append(cmds, cmd)
	m.resView, cmd = m.resView.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.dashView, _ = m.dashView.Update(sz)
	m.dailyView, _ = m.dailyView.Update(sz)
	m.progressView, _ = m.progressView.Update(sz)
	m.projectsView, _ = m.projectsView.Update(sz)
	m.resView, _ = m.resView.Update(sz)
}

func (m *Model) setTimer(s sessiondto.StatusOutput) {
	m.timer = s
	m.dashView.SetTimer(s)
}

func (m Model) refreshActive() tea.Cmd {
	switch m.activeTab {
	case tabDashboard:
		return m.dashView.Refresh()
	case tabDaily:
		return m.dailyView.Refresh()
	case tabProgress:
		return m.progressView.Refresh()
	case tabProjects:
		return m.projectsView.Refresh()
	case tabResources:
		return m.resView.Refresh()
	}
	return nil
}

func (m Model) refreshAll() tea.Cmd {
	return tea.Batch(
		m.dashView.Refresh(),
		m.dailyView.Refresh(),
		m.progressView.Refresh(),
		m.projectsView.Refresh(),
		m.resView.Refresh(),
	)
}

// scheduleTick arms the next tick for the current generation. Ticks armed by
// an older generation are dropped on arrival.
func (m Model) scheduleTick() tea.Cmd {
	if !m.timer.Active || m.timer.State != "running" {
		return nil
	}
	gen := m.timer.Generation
	return tea.Tick(tickEvery, func(time.Time) tea.Msg { return timerTickMsg{generation: gen} })
}

func argInt(parts []string, usage string) (int, error) {
	if len(parts) < 2 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	return n, nil
}

func describeCompletion(out progressdto.CompleteDayOutput) string {
	if !out.Completed {
		return fmt.Sprintf("day %d was already completed", out.Day)
	}
	s := fmt.Sprintf("day %d complete: +%d XP", out.Day, out.XPGained)
	for _, ms := range out.Milestones {
		s += fmt.Sprintf("  %s %s", ms.Badge, ms.Name)
	}
	return s
}

func describeStop(out sessiondto.StopOutput) string {
	switch {
	case out.XPAwarded > 0 || out.HoursAwarded > 0:
		return fmt.Sprintf("focus session complete: +%d XP, +%.1fh", out.XPAwarded, out.HoursAwarded)
	case out.MinutesLogged > 0:
		return fmt.Sprintf("logged %d min to day %d", out.MinutesLogged, out.Day)
	default:
		return "timer stopped"
	}
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadSettingsCmd() tea.Cmd {
	return func() tea.Msg {
		s, err := m.progress.Settings(context.Background())
		return settingsLoadedMsg{settings: s, err: err}
	}
}

func (m Model) settingsCmd(what string, fn func(context.Context) (progressdto.Settings, error)) tea.Cmd {
	return func() tea.Msg {
		if _, err := fn(context.Background()); err != nil {
			return statusMsg{text: what, err: err}
		}
		return statusMsg{text: what + " updated", refresh: true}
	}
}

func (m Model) dayCmd(fn func(context.Context) (progressdto.DayView, error)) tea.Cmd {
	return func() tea.Msg {
		d, err := fn(context.Background())
		return dailyview.DayLoadedMsg{Day: d, Err: err}
	}
}

func (m Model) timerCmd(verb string, fn func(context.Context) (sessiondto.StatusOutput, error)) tea.Cmd {
	return func() tea.Msg {
		s, err := fn(context.Background())
		return timerStatusMsg{status: s, verb: verb, err: err}
	}
}

func (m Model) startTimerCmd(mode string, duration time.Duration) tea.Cmd {
	return m.timerCmd("started", func(ctx context.Context) (sessiondto.StatusOutput, error) {
		return m.session.Start(ctx, mode, duration)
	})
}

func (m Model) stopTimerCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.session.Stop(context.Background())
		return timerStoppedMsg{out: out, err: err}
	}
}

// ─── port bridges ─────────────────────────────────────────────────────────────
// The daily view speaks in day-level verbs; the bridge maps them onto the
// progress handler's CLI-shaped methods.

type dailyPortBridge struct{ p progressPort }

func (b dailyPortBridge) GetDay(ctx context.Context, day int) (progressdto.DayView, error) {
	return b.p.ShowDay(ctx, day)
}
func (b dailyPortBridge) NavigateDay(ctx context.Context, delta int) (progressdto.DayView, error) {
	if delta < 0 {
		return b.p.PrevDay(ctx)
	}
	return b.p.NextDay(ctx)
}
func (b dailyPortBridge) ToggleTask(ctx context.Context, day, index int, done bool) (progressdto.DayView, error) {
	return b.p.SetTask(ctx, day, index, done)
}
func (b dailyPortBridge) SaveReflection(ctx context.Context, day int, notes, challenges *string, understanding *int) (progressdto.DayView, error) {
	return b.p.SaveNote(ctx, day, notes, challenges, understanding)
}
func (b dailyPortBridge) CompleteDay(ctx context.Context, day int) (progressdto.CompleteDayOutput, error) {
	return b.p.Complete(ctx, day, nil, nil, nil)
}
