package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"hdt/internal/ui/theme"
)

// PaletteSubmitMsg carries the trimmed command line on enter.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is sent when the palette is dismissed with esc.
type PaletteCancelMsg struct{}

// Command describes one palette verb for hints and tab completion.
type Command struct {
	Name  string
	Args  string
	About string
}

// Commands must match the verbs handled by the app's palette executor.
var Commands = []Command{
	{"day:goto", "<n>", "jump to a day"},
	{"day:next", "", "next day"},
	{"day:prev", "", "previous day"},
	{"task", "<index>", "toggle a task on the shown day"},
	{"note", "<text>", "replace the day's notes"},
	{"challenges", "<text>", "replace the day's challenges"},
	{"understanding", "<1-5>", "rate the day"},
	{"complete", "", "complete the shown day"},
	{"timer:start", "[countdown|stopwatch] [minutes]", "start or resume"},
	{"timer:pause", "", "pause the timer"},
	{"timer:reset", "", "discard the timer"},
	{"timer:stop", "", "stop and credit the session"},
	{"theme", "<system|light|dark>", "switch palette"},
	{"goal", "<hours>", "daily goal, 1-12"},
	{"start-date", "<YYYY-MM-DD>", "challenge start date"},
	{"export", "[json|markdown]", "write an export"},
	{"reset!", "", "erase all progress"},
}

const maxHints = 5

// Palette is the ":" overlay. The first word selects a command; tab
// completes it.
type Palette struct {
	input   textinput.Model
	visible bool
	width   int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "command, tab completes"
	ti.CharLimit = 256
	ti.ShowSuggestions = true
	names := make([]string, len(Commands))
	for i, c := range Commands {
		names[i] = c.Name
	}
	ti.SetSuggestions(names)
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open clears any previous input and focuses the prompt.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.input.Reset()
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "enter":
			line := strings.TrimSpace(p.input.Value())
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: line} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command") + "\n")
	sb.WriteString(p.input.View() + "\n")
	if hints := matchCommands(p.input.Value()); len(hints) > 0 {
		sb.WriteString("\n")
		for _, c := range hints {
			usage := strings.TrimSpace(c.Name + " " + c.Args)
			sb.WriteString(theme.Hot.Render(usage) + theme.Muted.Render("  "+c.About) + "\n")
		}
	}

	w := p.width
	if w < 20 {
		w = 64
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Peach).
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(0, 1).
		Width(w - 2).
		Render(sb.String())
}

// matchCommands filters on the command word only, so the hint stays visible
// while arguments are typed.
func matchCommands(line string) []Command {
	word := ""
	if fields := strings.Fields(strings.ToLower(line)); len(fields) > 0 {
		word = fields[0]
	}
	var out []Command
	for _, c := range Commands {
		if word == "" || strings.HasPrefix(c.Name, word) {
			out = append(out, c)
			if len(out) == maxHints {
				break
			}
		}
	}
	return out
}
