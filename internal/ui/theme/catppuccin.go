package theme

import "github.com/charmbracelet/lipgloss"

// Palette is one Catppuccin flavour.
type Palette struct {
	Name     string
	Dark     bool
	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Lavender lipgloss.Color
	Sapphire lipgloss.Color
	Green    lipgloss.Color
	Peach    lipgloss.Color
	Red      lipgloss.Color
	Yellow   lipgloss.Color
}

var Mocha = Palette{
	Name:     "mocha",
	Dark:     true,
	Base:     lipgloss.Color("#1e1e2e"),
	Mantle:   lipgloss.Color("#181825"),
	Surface0: lipgloss.Color("#313244"),
	Surface1: lipgloss.Color("#45475a"),
	Text:     lipgloss.Color("#cdd6f4"),
	Subtext0: lipgloss.Color("#a6adc8"),
	Lavender: lipgloss.Color("#b4befe"),
	Sapphire: lipgloss.Color("#74c7ec"),
	Green:    lipgloss.Color("#a6e3a1"),
	Peach:    lipgloss.Color("#fab387"),
	Red:      lipgloss.Color("#f38ba8"),
	Yellow:   lipgloss.Color("#f9e2af"),
}

var Latte = Palette{
	Name:     "latte",
	Base:     lipgloss.Color("#eff1f5"),
	Mantle:   lipgloss.Color("#e6e9ef"),
	Surface0: lipgloss.Color("#ccd0da"),
	Surface1: lipgloss.Color("#bcc0cc"),
	Text:     lipgloss.Color("#4c4f69"),
	Subtext0: lipgloss.Color("#6c6f85"),
	Lavender: lipgloss.Color("#7287fd"),
	Sapphire: lipgloss.Color("#209fb5"),
	Green:    lipgloss.Color("#40a02b"),
	Peach:    lipgloss.Color("#fe640b"),
	Red:      lipgloss.Color("#d20f39"),
	Yellow:   lipgloss.Color("#df8e1d"),
}

var (
	Current Palette

	Base     lipgloss.Color
	Mantle   lipgloss.Color
	Surface0 lipgloss.Color
	Surface1 lipgloss.Color
	Text     lipgloss.Color
	Subtext0 lipgloss.Color
	Lavender lipgloss.Color
	Sapphire lipgloss.Color
	Green    lipgloss.Color
	Peach    lipgloss.Color
	Red      lipgloss.Color
	Yellow   lipgloss.Color

	App        lipgloss.Style
	Pane       lipgloss.Style
	PaneActive lipgloss.Style
	Title      lipgloss.Style
	Muted      lipgloss.Style
	Hot        lipgloss.Style
	Good       lipgloss.Style
	Bad        lipgloss.Style
)

func init() {
	Use(Mocha)
}

// Use switches every exported color and style to p. Styles are values, so
// views must read them at render time.
func Use(p Palette) {
	Current = p
	Base, Mantle, Surface0, Surface1 = p.Base, p.Mantle, p.Surface0, p.Surface1
	Text, Subtext0 = p.Text, p.Subtext0
	Lavender, Sapphire, Green, Peach, Red, Yellow = p.Lavender, p.Sapphire, p.Green, p.Peach, p.Red, p.Yellow

	App = lipgloss.NewStyle().
		Background(Base).
		Foreground(Text).
		Padding(1, 2)

	Pane = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Surface1).
		Foreground(Text).
		Padding(0, 1)

	PaneActive = Pane.BorderForeground(Lavender)

	Title = lipgloss.NewStyle().Foreground(Sapphire).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(Subtext0)
	Hot = lipgloss.NewStyle().Foreground(Peach).Bold(true)
	Good = lipgloss.NewStyle().Foreground(Green)
	Bad = lipgloss.NewStyle().Foreground(Red)
}

// darkTerminal is the detected terminal background. Detection queries the
// terminal, so it must run before bubbletea takes over stdin.
var darkTerminal = true

// DetectBackground records whether the terminal has a dark background.
func DetectBackground() {
	darkTerminal = lipgloss.HasDarkBackground()
}

// Apply maps the stored theme setting onto a palette. "system" follows the
// detected terminal background.
func Apply(setting string) {
	switch setting {
	case "light":
		Use(Latte)
	case "dark":
		Use(Mocha)
	default:
		if darkTerminal {
			Use(Mocha)
		} else {
			Use(Latte)
		}
	}
}

// GlamourStyle is the glamour standard style matching the current palette.
func GlamourStyle() string {
	if Current.Dark {
		return "dark"
	}
	return "light"
}
