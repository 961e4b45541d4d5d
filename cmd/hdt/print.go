package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	progressdto "hdt/internal/modules/progress/dto"
	sessiondto "hdt/internal/modules/session/dto"
)

func printDashboard(out io.Writer, d progressdto.Dashboard) {
	_, _ = fmt.Fprintf(out, "Day %d/%d  %s\n", d.CurrentDay, d.TotalDays, d.Topic)
	_, _ = fmt.Fprintf(out, "%s  (%.0f%% through phase)\n", d.PhaseName, d.PhaseDayPercent)
	_, _ = fmt.Fprintf(out, "completed: %d/%d (%.0f%%)\n", d.CompletedCount, d.TotalDays, d.OverallPercent)
	_, _ = fmt.Fprintf(out, "level %d  xp %d (%d/%d)\n", d.Level, d.TotalXP, d.XPIntoLevel, d.XPPerLevel)
	_, _ = fmt.Fprintf(out, "streak: %d  hours: %.1f\n", d.Streak, d.TotalHours)
	_, _ = fmt.Fprintf(out, "today: %d/%d min (%.0f%%)\n", d.TodayMinutes, d.DailyGoal*60, d.GoalPercent)
	if len(d.Achievements) > 0 {
		names := make([]string, len(d.Achievements))
		for i, a := range d.Achievements {
			names[i] = a.Badge + " " + a.Name
		}
		_, _ = fmt.Fprintf(out, "achievements: %s\n", strings.Join(names, ", "))
	}
	if n := d.NextMilestone; n != nil {
		_, _ = fmt.Fprintf(out, "next milestone: %s %s on day %d (+%d XP)\n", n.Badge, n.Name, n.Day, n.XP)
	}
}

func printDay(out io.Writer, d progressdto.DayView) {
	marker := ""
	switch {
	case d.Completed:
		marker = "  [completed " + d.CompletedAt + "]"
	case d.IsCurrent:
		marker = "  [current]"
	}
	_, _ = fmt.Fprintf(out, "Day %d: %s%s\n", d.Day, d.Topic, marker)
	_, _ = fmt.Fprintf(out, "phase: %s\n", d.PhaseName)
	if len(d.Subtopics) > 0 {
		_, _ = fmt.Fprintf(out, "subtopics: %s\n", strings.Join(d.Subtopics, ", "))
	}
	_, _ = fmt.Fprintf(out, "project: %s\ndifficulty: %s  estimated: %.0fh  logged: %d min\n", d.Project, d.Difficulty, d.EstimatedHours, d.Minutes)
	printTasks(out, d)
	if d.Understanding > 0 {
		_, _ = fmt.Fprintf(out, "understanding: %d/5\n", d.Understanding)
	}
	if d.Notes != "" {
		_, _ = fmt.Fprintf(out, "notes: %s\n", d.Notes)
	}
	if d.Challenges != "" {
		_, _ = fmt.Fprintf(out, "challenges: %s\n", d.Challenges)
	}
}

func printTasks(out io.Writer, d progressdto.DayView) {
	for i, t := range d.Tasks {
		check := " "
		if t.Done {
			check = "x"
		}
		_, _ = fmt.Fprintf(out, "[%s] %d. %s\n", check, i+1, t.Label)
	}
}

func printCompletion(out io.Writer, c progressdto.CompleteDayOutput) {
	if !c.Completed {
		_, _ = fmt.Fprintf(out, "day %d was already completed\n", c.Day)
		return
	}
	_, _ = fmt.Fprintf(out, "day %d completed: +%d XP\n", c.Day, c.XPGained)
	for _, m := range c.Milestones {
		_, _ = fmt.Fprintf(out, "milestone unlocked: %s %s (+%d XP)\n", m.Badge, m.Name, m.XP)
	}
	_, _ = fmt.Fprintf(out, "streak: %d  level: %d  now on day %d\n", c.Dashboard.Streak, c.Dashboard.Level, c.Dashboard.CurrentDay)
}

func printProgress(out io.Writer, p progressdto.ProgressView) {
	for i, c := range p.Calendar {
		mark := "."
		switch c.Status {
		case "completed":
			mark = "#"
		case "current":
			mark = ">"
		}
		_, _ = fmt.Fprintf(out, "%s%3d ", mark, c.Day)
		if (i+1)%10 == 0 {
			_, _ = fmt.Fprintln(out)
		}
	}
	_, _ = fmt.Fprintln(out, "\nphases:")
	for _, ph := range p.Phases {
		_, _ = fmt.Fprintf(out, "  %-40s %3.0f%%  (%d/%d)\n", ph.Name, ph.Percent, ph.Completed, ph.End-ph.Start+1)
	}
	_, _ = fmt.Fprintln(out, "skills:")
	for _, s := range p.Skills {
		_, _ = fmt.Fprintf(out, "  %-12s %4.1f/10\n", s.Name, s.Level)
	}
	_, _ = fmt.Fprintln(out, "milestones:")
	for _, m := range p.Milestones {
		state := " "
		if m.Earned {
			state = "x"
		}
		_, _ = fmt.Fprintf(out, "  [%s] day %3d  %s %s (+%d XP)\n", state, m.Day, m.Badge, m.Name, m.XP)
	}
}

func printResources(out io.Writer, r progressdto.ResourcesView) {
	_, _ = fmt.Fprintln(out, r.PhaseName)
	for _, sec := range []struct {
		title string
		items []string
	}{
		{"documentation", r.Documentation},
		{"tutorials", r.Tutorials},
		{"practice", r.Practice},
		{"tools", r.Tools},
	} {
		if len(sec.items) == 0 {
			continue
		}
		_, _ = fmt.Fprintf(out, "%s:\n", sec.title)
		for _, it := range sec.items {
			_, _ = fmt.Fprintf(out, "  - %s\n", it)
		}
	}
}

func printSettings(out io.Writer, s progressdto.Settings) {
	_, _ = fmt.Fprintf(out, "theme: %s\nstart date: %s\ndaily goal: %dh\n", s.Theme, s.StartDate, s.DailyGoal)
}

func printTimer(out io.Writer, s sessiondto.StatusOutput) {
	if !s.Active {
		_, _ = fmt.Fprintln(out, "timer idle")
		return
	}
	_, _ = fmt.Fprintf(out, "timer %s  %s  day %d  elapsed %s", s.State, s.Mode, s.Day, formatClock(s.Elapsed))
	if s.Mode == "countdown" {
		_, _ = fmt.Fprintf(out, "  remaining %s", formatClock(s.Remaining))
		if s.Done {
			_, _ = fmt.Fprint(out, "  (finished, run `hdt timer stop` to collect)")
		}
	}
	_, _ = fmt.Fprintln(out)
}

func printStop(out io.Writer, s sessiondto.StopOutput) {
	switch {
	case s.XPAwarded > 0 || s.HoursAwarded > 0:
		_, _ = fmt.Fprintf(out, "focus session complete: +%d XP, +%.1fh\n", s.XPAwarded, s.HoursAwarded)
	case s.MinutesLogged > 0:
		_, _ = fmt.Fprintf(out, "logged %d min to day %d\n", s.MinutesLogged, s.Day)
	default:
		_, _ = fmt.Fprintf(out, "timer stopped after %s, nothing credited\n", formatClock(s.Elapsed))
	}
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d/time.Minute), int(d%time.Minute/time.Second))
}
