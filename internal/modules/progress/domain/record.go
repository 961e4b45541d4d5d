package domain

import (
	"fmt"
	"math"
	"time"

	curriculum "hdt/internal/modules/curriculum/domain"
)

const (
	SchemaVersion = 1
	DateLayout    = "2006-01-02"

	TaskXP = 50
	DayXP  = 200

	DefaultDailyGoal = 2
	MinDailyGoal     = 1
	MaxDailyGoal     = 12

	MinUnderstanding = 1
	MaxUnderstanding = 5
)

type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

func (t Theme) Validate() error {
	switch t {
	case ThemeSystem, ThemeLight, ThemeDark:
		return nil
	default:
		return fmt.Errorf("unsupported theme %q", string(t))
	}
}

// Record is the single persisted progress document. It is always saved and
// loaded whole.
type Record struct {
	SchemaVersion  int                `json:"schemaVersion"`
	StartDate      string             `json:"startDate"`
	CurrentDay     int                `json:"currentDay"`
	DailyGoal      int                `json:"dailyGoal"`
	CompletedDays  IntSet             `json:"completedDays"`
	TotalXP        int                `json:"totalXP"`
	CurrentStreak  int                `json:"currentStreak"`
	TotalHours     float64            `json:"totalHours"`
	Notes          map[int]string     `json:"notes"`
	Challenges     map[int]string     `json:"challenges"`
	Understanding  map[int]int        `json:"understanding"`
	CompletedTasks map[int]IntSet     `json:"completedTasks"`
	RewardedTasks  map[int]IntSet     `json:"rewardedTasks"`
	DayMinutes     map[int]int        `json:"dayMinutes"`
	CompletedAt    map[int]string     `json:"completedAt"`
	Achievements   StringSet          `json:"achievements"`
	Skills         map[string]float64 `json:"skills"`
	Theme          Theme              `json:"theme"`
}

// NewRecord returns the defaults: day 1, zero XP, empty sets and maps, every
// curriculum skill at level 0, started today.
func NewRecord(c curriculum.Curriculum, today time.Time) Record {
	skills := make(map[string]float64, len(c.Skills))
	for _, s := range c.Skills {
		skills[s] = 0
	}
	return Record{
		SchemaVersion:  SchemaVersion,
		StartDate:      today.Format(DateLayout),
		CurrentDay:     curriculum.FirstDay,
		DailyGoal:      DefaultDailyGoal,
		CompletedDays:  IntSet{},
		Notes:          map[int]string{},
		Challenges:     map[int]string{},
		Understanding:  map[int]int{},
		CompletedTasks: map[int]IntSet{},
		RewardedTasks:  map[int]IntSet{},
		DayMinutes:     map[int]int{},
		CompletedAt:    map[int]string{},
		Achievements:   StringSet{},
		Skills:         skills,
		Theme:          ThemeSystem,
	}
}

// Normalize repairs a decoded record in place so every invariant holds.
// Nothing is rejected: bad values are clamped, dropped or defaulted.
func (r *Record) Normalize(c curriculum.Curriculum, today time.Time) {
	r.SchemaVersion = SchemaVersion
	if _, err := time.Parse(DateLayout, r.StartDate); err != nil {
		r.StartDate = today.Format(DateLayout)
	}
	r.CurrentDay = curriculum.ClampDay(r.CurrentDay)
	r.DailyGoal = clampInt(r.DailyGoal, MinDailyGoal, MaxDailyGoal)
	if r.TotalXP < 0 {
		r.TotalXP = 0
	}
	if r.CurrentStreak < 0 {
		r.CurrentStreak = 0
	}
	if r.TotalHours < 0 || math.IsNaN(r.TotalHours) || math.IsInf(r.TotalHours, 0) {
		r.TotalHours = 0
	}
	if r.Theme.Validate() != nil {
		r.Theme = ThemeSystem
	}

	days := IntSet{}
	for d := range r.CompletedDays {
		if inRange(d) {
			days.Add(d)
		}
	}
	r.CompletedDays = days

	r.Notes = keepDays(r.Notes)
	r.Challenges = keepDays(r.Challenges)
	r.CompletedAt = keepDays(r.CompletedAt)
	r.Understanding = keepDays(r.Understanding)
	for d, v := range r.Understanding {
		r.Understanding[d] = clampInt(v, MinUnderstanding, MaxUnderstanding)
	}
	r.DayMinutes = keepDays(r.DayMinutes)
	for d, v := range r.DayMinutes {
		if v < 0 {
			delete(r.DayMinutes, d)
		}
	}
	r.CompletedTasks = normalizeTasks(r.CompletedTasks, len(c.Tasks))
	r.RewardedTasks = normalizeTasks(r.RewardedTasks, len(c.Tasks))

	if r.Achievements == nil {
		r.Achievements = StringSet{}
	}
	if r.Skills == nil {
		r.Skills = map[string]float64{}
	}
	for _, s := range c.Skills {
		if _, ok := r.Skills[s]; !ok {
			r.Skills[s] = 0
		}
	}
	for s, v := range r.Skills {
		r.Skills[s] = clampSkill(v)
	}
}

// Clone returns a deep copy so a mutation can be prepared without touching
// the committed record.
func (r Record) Clone() Record {
	out := r
	out.CompletedDays = r.CompletedDays.Clone()
	out.Notes = cloneMap(r.Notes)
	out.Challenges = cloneMap(r.Challenges)
	out.Understanding = cloneMap(r.Understanding)
	out.DayMinutes = cloneMap(r.DayMinutes)
	out.CompletedAt = cloneMap(r.CompletedAt)
	out.Skills = cloneMap(r.Skills)
	out.Achievements = r.Achievements.Clone()
	out.CompletedTasks = make(map[int]IntSet, len(r.CompletedTasks))
	for d, s := range r.CompletedTasks {
		out.CompletedTasks[d] = s.Clone()
	}
	out.RewardedTasks = make(map[int]IntSet, len(r.RewardedTasks))
	for d, s := range r.RewardedTasks {
		out.RewardedTasks[d] = s.Clone()
	}
	return out
}

func inRange(day int) bool {
	return day >= curriculum.FirstDay && day <= curriculum.TotalDays
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func keepDays[V any](m map[int]V) map[int]V {
	out := make(map[int]V, len(m))
	for d, v := range m {
		if inRange(d) {
			out[d] = v
		}
	}
	return out
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func normalizeTasks(m map[int]IntSet, taskCount int) map[int]IntSet {
	out := make(map[int]IntSet, len(m))
	for d, set := range m {
		if !inRange(d) {
			continue
		}
		kept := IntSet{}
		for idx := range set {
			if idx >= 0 && idx < taskCount {
				kept.Add(idx)
			}
		}
		if len(kept) > 0 {
			out[d] = kept
		}
	}
	return out
}
