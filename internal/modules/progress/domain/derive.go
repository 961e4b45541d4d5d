package domain

import (
	"math"
	"time"

	curriculum "hdt/internal/modules/curriculum/domain"
)

const (
	XPPerLevel    = 1000
	MaxSkillLevel = 10.0
)

// PhaseProgress is the share of the phase's days that are completed, in [0,100].
func PhaseProgress(p curriculum.Phase, completed IntSet) float64 {
	done := 0
	for d := p.Start; d <= p.End; d++ {
		if completed.Has(d) {
			done++
		}
	}
	return float64(done) / float64(p.Size()) * 100
}

// PhaseDayProgress is how far currentDay sits inside its phase, in [0,100].
func PhaseDayProgress(p curriculum.Phase, currentDay int) float64 {
	pos := currentDay - p.Start + 1
	if pos < 0 {
		pos = 0
	}
	return math.Min(float64(pos)/float64(p.Size())*100, 100)
}

// Streak counts consecutive completed days ending at anchor, scanning back
// towards day 1. It is 0 when anchor itself is not completed.
func Streak(anchor int, completed IntSet) int {
	streak := 0
	for d := anchor; d >= curriculum.FirstDay; d-- {
		if !completed.Has(d) {
			break
		}
		streak++
	}
	return streak
}

// LatestCompleted is the highest completed day at or before limit, or 0.
func LatestCompleted(limit int, completed IntSet) int {
	for d := curriculum.ClampDay(limit); d >= curriculum.FirstDay; d-- {
		if completed.Has(d) {
			return d
		}
	}
	return 0
}

func LevelFromXP(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/XPPerLevel + 1
}

func XPIntoLevel(xp int) int {
	if xp < 0 {
		return 0
	}
	return xp % XPPerLevel
}

// ApplySkillIncrements adds the phase's increments to skills, clamped to
// [0, MaxSkillLevel].
func ApplySkillIncrements(skills map[string]float64, p curriculum.Phase) {
	for _, inc := range p.Skills {
		skills[inc.Skill] = clampSkill(skills[inc.Skill] + inc.Amount)
	}
}

func clampSkill(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	return math.Min(v, MaxSkillLevel)
}

// CheckMilestones returns the milestones whose day is completed and whose
// name has not been granted yet, in curriculum order. It does not grant them.
func CheckMilestones(milestones []curriculum.Milestone, completed IntSet, achieved StringSet) []curriculum.Milestone {
	var unlocked []curriculum.Milestone
	for _, m := range milestones {
		if completed.Has(m.Day) && !achieved.Has(m.Name) {
			unlocked = append(unlocked, m)
		}
	}
	return unlocked
}

type CellStatus string

const (
	CellCompleted  CellStatus = "completed"
	CellCurrent    CellStatus = "current"
	CellIncomplete CellStatus = "incomplete"
)

type CalendarCell struct {
	Day    int
	Status CellStatus
}

// Calendar lays out all days; completion wins over being the current day.
func Calendar(currentDay int, completed IntSet) []CalendarCell {
	cells := make([]CalendarCell, 0, curriculum.TotalDays)
	for d := curriculum.FirstDay; d <= curriculum.TotalDays; d++ {
		status := CellIncomplete
		switch {
		case completed.Has(d):
			status = CellCompleted
		case d == currentDay:
			status = CellCurrent
		}
		cells = append(cells, CalendarCell{Day: d, Status: status})
	}
	return cells
}

type ProjectStatus string

const (
	ProjectPlanned    ProjectStatus = "Planned"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectCompleted  ProjectStatus = "Completed"
)

func ProjectStatusFor(c curriculum.Curriculum, p curriculum.Project, currentDay int, completed IntSet) ProjectStatus {
	if completed.Has(p.Day) {
		return ProjectCompleted
	}
	if currentDay <= p.Day && c.PhaseFor(p.Day).Contains(currentDay) {
		return ProjectInProgress
	}
	return ProjectPlanned
}

// DayFromStartDate maps today onto the challenge calendar, clamped to [1,100].
func DayFromStartDate(start, today time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	days := int(t.Sub(s).Hours() / 24)
	return curriculum.ClampDay(days + 1)
}

// GoalProgress is the percent of the daily goal covered by minutes, capped at 100.
func GoalProgress(minutes, goalHours int) float64 {
	if goalHours <= 0 {
		return 0
	}
	return math.Min(float64(minutes)/float64(goalHours*60)*100, 100)
}
