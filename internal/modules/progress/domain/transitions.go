package domain

import (
	"fmt"
	"strings"
	"time"

	curriculum "hdt/internal/modules/curriculum/domain"
	apperrors "hdt/internal/platform/errors"
)

// Reflection carries the free-form edits for one day. Nil fields are left
// untouched.
type Reflection struct {
	Notes         *string
	Challenges    *string
	Understanding *int
}

func (f Reflection) Empty() bool {
	return f.Notes == nil && f.Challenges == nil && f.Understanding == nil
}

type Completion struct {
	Day        int
	Completed  bool // false when the day was already completed
	XPGained   int
	Milestones []curriculum.Milestone
}

// GoTo moves the current day, clamped into range.
func (r *Record) GoTo(day int) {
	r.CurrentDay = curriculum.ClampDay(day)
}

func (r *Record) Navigate(delta int) {
	r.GoTo(r.CurrentDay + delta)
}

// SetTask marks a checklist entry for day. Task XP is granted the first time
// a (day, index) pair is checked and never again.
func (r *Record) SetTask(c curriculum.Curriculum, day, index int, done bool) (bool, error) {
	if index < 0 || index >= len(c.Tasks) {
		return false, fmt.Errorf("task index %d out of range [0,%d): %w", index, len(c.Tasks), apperrors.ErrInvalidInput)
	}
	day = curriculum.ClampDay(day)
	if !done {
		if set, ok := r.CompletedTasks[day]; ok {
			set.Remove(index)
			if len(set) == 0 {
				delete(r.CompletedTasks, day)
			}
		}
		return false, nil
	}
	if r.CompletedTasks[day] == nil {
		r.CompletedTasks[day] = IntSet{}
	}
	r.CompletedTasks[day].Add(index)
	if r.RewardedTasks[day] == nil {
		r.RewardedTasks[day] = IntSet{}
	}
	if !r.RewardedTasks[day].Add(index) {
		return false, nil
	}
	r.TotalXP += TaskXP
	return true, nil
}

func (r *Record) ApplyReflection(day int, f Reflection) {
	day = curriculum.ClampDay(day)
	if f.Notes != nil {
		setOrDelete(r.Notes, day, *f.Notes)
	}
	if f.Challenges != nil {
		setOrDelete(r.Challenges, day, *f.Challenges)
	}
	if f.Understanding != nil {
		r.Understanding[day] = clampInt(*f.Understanding, MinUnderstanding, MaxUnderstanding)
	}
}

// CompleteDay runs the day completion workflow. Completing an already
// completed day changes nothing, including the pending reflection. The
// current day moves to day+1 only when day is at or past it; back-filling an
// earlier day leaves it in place.
func (r *Record) CompleteDay(c curriculum.Curriculum, day int, f Reflection, now time.Time) Completion {
	day = curriculum.ClampDay(day)
	if r.CompletedDays.Has(day) {
		return Completion{Day: day}
	}

	r.ApplyReflection(day, f)
	r.CompletedDays.Add(day)
	r.CompletedAt[day] = now.Format(time.RFC3339)
	r.TotalHours += float64(r.DayMinutes[day]) / 60
	// The run ending at the latest completion up to the current day, so a
	// back-filled gap joins the runs on either side.
	r.CurrentStreak = Streak(LatestCompleted(max(r.CurrentDay, day), r.CompletedDays), r.CompletedDays)
	ApplySkillIncrements(r.Skills, c.PhaseFor(day))

	gained := DayXP
	unlocked := CheckMilestones(c.Milestones, r.CompletedDays, r.Achievements)
	for _, m := range unlocked {
		r.Achievements.Add(m.Name)
		gained += m.XP
	}
	r.TotalXP += gained

	if day >= r.CurrentDay {
		r.GoTo(day + 1)
	}
	return Completion{Day: day, Completed: true, XPGained: gained, Milestones: unlocked}
}

// LogMinutes adds timer-tracked minutes to a day.
func (r *Record) LogMinutes(day, minutes int) {
	if minutes <= 0 {
		return
	}
	r.DayMinutes[curriculum.ClampDay(day)] += minutes
}

// AwardSession credits one finished focus session.
func (r *Record) AwardSession(xp int, hours float64) {
	if xp > 0 {
		r.TotalXP += xp
	}
	if hours > 0 {
		r.TotalHours += hours
	}
}

func (r *Record) SetTheme(t Theme) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	r.Theme = t
	return nil
}

// SetStartDate stores the challenge start and re-derives the current day.
func (r *Record) SetStartDate(date string, today time.Time) error {
	start, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return fmt.Errorf("start date %q: %w", date, apperrors.ErrInvalidInput)
	}
	r.StartDate = start.Format(DateLayout)
	r.CurrentDay = DayFromStartDate(start, today)
	return nil
}

// SyncCalendar re-derives the current day from the stored start date.
func (r *Record) SyncCalendar(today time.Time) {
	start, err := time.Parse(DateLayout, r.StartDate)
	if err != nil {
		return
	}
	r.CurrentDay = DayFromStartDate(start, today)
}

func (r *Record) SetDailyGoal(hours int) {
	r.DailyGoal = clampInt(hours, MinDailyGoal, MaxDailyGoal)
}

func setOrDelete(m map[int]string, day int, v string) {
	if strings.TrimSpace(v) == "" {
		delete(m, day)
		return
	}
	m[day] = v
}
