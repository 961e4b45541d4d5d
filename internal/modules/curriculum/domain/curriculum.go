package domain

import (
	"fmt"
	"strings"
)

const (
	FirstDay  = 1
	TotalDays = 100
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
	DifficultyExpert       Difficulty = "Expert"
)

func (d Difficulty) Validate() error {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced, DifficultyExpert:
		return nil
	default:
		return fmt.Errorf("unsupported difficulty %q", string(d))
	}
}

type Day struct {
	Number         int        `yaml:"day"`
	Topic          string     `yaml:"topic"`
	Subtopics      []string   `yaml:"subtopics"`
	Project        string     `yaml:"project"`
	Difficulty     Difficulty `yaml:"difficulty"`
	EstimatedHours float64    `yaml:"estimated_hours"`
}

type SkillIncrement struct {
	Skill  string  `yaml:"skill"`
	Amount float64 `yaml:"amount"`
}

type Phase struct {
	Number      int              `yaml:"number"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Start       int              `yaml:"start"`
	End         int              `yaml:"end"`
	Skills      []SkillIncrement `yaml:"skills"`
}

func (p Phase) Contains(day int) bool {
	return day >= p.Start && day <= p.End
}

func (p Phase) Size() int {
	return p.End - p.Start + 1
}

type Milestone struct {
	Name        string `yaml:"name"`
	Day         int    `yaml:"day"`
	Description string `yaml:"description"`
	Badge       string `yaml:"badge"`
	XP          int    `yaml:"xp"`
}

type Project struct {
	Day          int        `yaml:"day"`
	Name         string     `yaml:"name"`
	Description  string     `yaml:"description"`
	Technologies []string   `yaml:"technologies"`
	Difficulty   Difficulty `yaml:"difficulty"`
}

type Resources struct {
	Phase         int      `yaml:"phase"`
	Documentation []string `yaml:"documentation"`
	Tutorials     []string `yaml:"tutorials"`
	Practice      []string `yaml:"practice"`
	Tools         []string `yaml:"tools"`
}

// Curriculum is the read-only reference table for the whole challenge.
type Curriculum struct {
	Title      string
	Days       map[int]Day
	Phases     []Phase
	Milestones []Milestone
	Projects   []Project
	Tasks      []string
	Skills     []string
	Resources  []Resources
}

// ClampDay maps any integer onto [FirstDay, TotalDays].
func ClampDay(day int) int {
	if day < FirstDay {
		return FirstDay
	}
	if day > TotalDays {
		return TotalDays
	}
	return day
}

// Day returns the entry for n, or a generic placeholder when n is not listed.
func (c Curriculum) Day(n int) Day {
	n = ClampDay(n)
	if d, ok := c.Days[n]; ok {
		return d
	}
	return Day{
		Number:         n,
		Topic:          fmt.Sprintf("Day %d Learning", n),
		Subtopics:      []string{"Study materials", "Practice exercises", "Project work"},
		Project:        fmt.Sprintf("Day %d project", n),
		Difficulty:     DifficultyIntermediate,
		EstimatedHours: 2,
	}
}

// PhaseFor returns the phase containing day after clamping it into range.
// Validate guarantees exactly one match.
func (c Curriculum) PhaseFor(day int) Phase {
	day = ClampDay(day)
	for _, p := range c.Phases {
		if p.Contains(day) {
			return p
		}
	}
	return c.Phases[len(c.Phases)-1]
}

// ResourcesFor returns the resource lists for a phase number.
func (c Curriculum) ResourcesFor(phase int) (Resources, bool) {
	for _, r := range c.Resources {
		if r.Phase == phase {
			return r, true
		}
	}
	return Resources{}, false
}

func (c Curriculum) Validate() error {
	if len(c.Phases) == 0 {
		return fmt.Errorf("curriculum has no phases")
	}
	next := FirstDay
	for i, p := range c.Phases {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("phase %d: name is required", i+1)
		}
		if p.Start != next {
			return fmt.Errorf("phase %q starts at day %d, want %d", p.Name, p.Start, next)
		}
		if p.End < p.Start {
			return fmt.Errorf("phase %q ends before it starts", p.Name)
		}
		next = p.End + 1
	}
	if next != TotalDays+1 {
		return fmt.Errorf("phases end at day %d, want %d", next-1, TotalDays)
	}

	seen := map[string]bool{}
	for _, m := range c.Milestones {
		if m.Day < FirstDay || m.Day > TotalDays {
			return fmt.Errorf("milestone %q: day %d out of range", m.Name, m.Day)
		}
		if m.XP < 0 {
			return fmt.Errorf("milestone %q: negative xp", m.Name)
		}
		if seen[m.Name] {
			return fmt.Errorf("duplicate milestone %q", m.Name)
		}
		seen[m.Name] = true
	}
	for n, d := range c.Days {
		if n < FirstDay || n > TotalDays {
			return fmt.Errorf("day entry %d out of range", n)
		}
		if err := d.Difficulty.Validate(); err != nil {
			return fmt.Errorf("day %d: %w", n, err)
		}
	}
	for _, p := range c.Projects {
		if p.Day < FirstDay || p.Day > TotalDays {
			return fmt.Errorf("project %q: day %d out of range", p.Name, p.Day)
		}
	}
	if len(c.Tasks) == 0 {
		return fmt.Errorf("task template is empty")
	}
	known := map[string]bool{}
	for _, s := range c.Skills {
		known[s] = true
	}
	for _, p := range c.Phases {
		for _, inc := range p.Skills {
			if !known[inc.Skill] {
				return fmt.Errorf("phase %q: unknown skill %q", p.Name, inc.Skill)
			}
		}
	}
	return nil
}
