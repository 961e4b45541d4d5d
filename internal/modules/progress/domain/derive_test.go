package domain_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	curriculumout "hdt/internal/modules/curriculum/adapter/out"
	curriculum "hdt/internal/modules/curriculum/domain"
	"hdt/internal/modules/progress/domain"
)

func loadCurriculum(t *testing.T) curriculum.Curriculum {
	t.Helper()
	c, err := curriculumout.NewYAMLSource("").Load(context.Background())
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	return c
}

func TestStreakScansBackwardFromAnchor(t *testing.T) {
	t.Parallel()
	completed := domain.NewIntSet(1, 2, 3, 5, 6, 7, 10)

	assert.Equal(t, 0, domain.Streak(4, completed), "anchor not completed")
	assert.Equal(t, 3, domain.Streak(7, completed))
	assert.Equal(t, 3, domain.Streak(3, completed), "run reaching day 1 stops there")
	assert.Equal(t, 1, domain.Streak(10, completed))
	assert.Equal(t, 0, domain.Streak(1, domain.IntSet{}))
	assert.Equal(t, domain.Streak(7, completed), domain.Streak(7, completed), "recomputation is idempotent")
}

func TestStreakMatchesDefinitionForEveryAnchor(t *testing.T) {
	t.Parallel()
	completed := domain.NewIntSet(2, 3, 4, 9, 10, 50, 51, 52, 53, 99, 100)
	for anchor := 1; anchor <= 100; anchor++ {
		want := 0
		for d := anchor; d >= 1 && completed.Has(d); d-- {
			want++
		}
		require.Equal(t, want, domain.Streak(anchor, completed), "anchor %d", anchor)
		if want > 0 && anchor-want >= 1 {
			require.False(t, completed.Has(anchor-want), "run must end at a missing day")
		}
	}
}

func TestPhasesPartitionTheCurriculum(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	for day := 1; day <= 100; day++ {
		p := c.PhaseFor(day)
		require.True(t, p.Contains(day), "day %d", day)
	}
	assert.Equal(t, "Phase 1: Web Fundamentals", c.PhaseFor(25).Name)
	assert.Equal(t, "Phase 2: Advanced Frontend", c.PhaseFor(26).Name)
	assert.Equal(t, 3, c.PhaseFor(70).Number)
	assert.Equal(t, 4, c.PhaseFor(71).Number)
	assert.Equal(t, 5, c.PhaseFor(91).Number)
	assert.Equal(t, 1, c.PhaseFor(-3).Number, "out of range days are clamped")
}

func TestPhaseProgressIsExactAndBounded(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	completed := domain.NewIntSet(1, 2, 3, 4, 5, 26, 91, 92, 93, 94, 95, 96, 97, 98, 99, 100)
	for _, p := range c.Phases {
		got := domain.PhaseProgress(p, completed)
		done := 0
		for d := p.Start; d <= p.End; d++ {
			if completed.Has(d) {
				done++
			}
		}
		assert.InDelta(t, 100*float64(done)/float64(p.Size()), got, 1e-9, p.Name)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.LessOrEqual(t, got, 100.0)
	}
	assert.InDelta(t, 20.0, domain.PhaseProgress(c.Phases[0], completed), 1e-9)
	assert.InDelta(t, 100.0, domain.PhaseProgress(c.Phases[4], completed), 1e-9)
}

func TestPhaseDayProgress(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	assert.InDelta(t, 4.0, domain.PhaseDayProgress(c.PhaseFor(1), 1), 1e-9)
	assert.InDelta(t, 100.0, domain.PhaseDayProgress(c.PhaseFor(25), 25), 1e-9)
	assert.InDelta(t, 50.0, domain.PhaseDayProgress(c.PhaseFor(95), 95), 1e-9)
}

func TestLevelFromXP(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, domain.LevelFromXP(0))
	assert.Equal(t, 1, domain.LevelFromXP(999))
	assert.Equal(t, 2, domain.LevelFromXP(1000))
	assert.Equal(t, 4, domain.LevelFromXP(3250))
	assert.Equal(t, 250, domain.XPIntoLevel(3250))
	assert.Equal(t, 0, domain.XPIntoLevel(2000))
}

func TestSkillIncrementsClampAtMax(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	skills := map[string]float64{"HTML": 9.8, "CSS": 0, "JavaScript": 0}
	domain.ApplySkillIncrements(skills, c.PhaseFor(3))
	assert.InDelta(t, 10.0, skills["HTML"], 1e-9)
	assert.InDelta(t, 0.5, skills["CSS"], 1e-9)
	assert.InDelta(t, 0.3, skills["JavaScript"], 1e-9)

	full := map[string]float64{}
	for i := 0; i < 50; i++ {
		domain.ApplySkillIncrements(full, c.PhaseFor(80))
	}
	assert.InDelta(t, domain.MaxSkillLevel, full["Full-Stack"], 1e-9)
}

func TestCheckMilestonesSkipsGrantedNames(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	completed := domain.NewIntSet(7, 20, 21)
	unlocked := domain.CheckMilestones(c.Milestones, completed, domain.StringSet{})
	require.Len(t, unlocked, 2)
	assert.Equal(t, "Week 1 Champion", unlocked[0].Name)
	assert.Equal(t, "JavaScript Explorer", unlocked[1].Name)

	again := domain.CheckMilestones(c.Milestones, completed, domain.NewStringSet("Week 1 Champion", "JavaScript Explorer"))
	assert.Empty(t, again)
}

func TestCalendarMarksCompletedOverCurrent(t *testing.T) {
	t.Parallel()
	cells := domain.Calendar(3, domain.NewIntSet(1, 3))
	require.Len(t, cells, 100)
	assert.Equal(t, domain.CellCompleted, cells[0].Status)
	assert.Equal(t, domain.CellIncomplete, cells[1].Status)
	assert.Equal(t, domain.CellCompleted, cells[2].Status)

	cells = domain.Calendar(2, domain.NewIntSet(1))
	assert.Equal(t, domain.CellCurrent, cells[1].Status)
}

func TestProjectStatus(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	portfolio := c.Projects[0]
	assert.Equal(t, domain.ProjectInProgress, domain.ProjectStatusFor(c, portfolio, 10, domain.IntSet{}))
	assert.Equal(t, domain.ProjectPlanned, domain.ProjectStatusFor(c, c.Projects[1], 10, domain.IntSet{}))
	assert.Equal(t, domain.ProjectCompleted, domain.ProjectStatusFor(c, portfolio, 30, domain.NewIntSet(25)))
}

func TestDayFromStartDate(t *testing.T) {
	t.Parallel()
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, domain.DayFromStartDate(start, start.Add(23*time.Hour)))
	assert.Equal(t, 10, domain.DayFromStartDate(start, time.Date(2026, 1, 10, 18, 0, 0, 0, time.Local)))
	assert.Equal(t, 1, domain.DayFromStartDate(start, start.AddDate(0, 0, -5)))
	assert.Equal(t, 100, domain.DayFromStartDate(start, start.AddDate(1, 0, 0)))
}

func TestGoalProgress(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 50.0, domain.GoalProgress(60, 2), 1e-9)
	assert.InDelta(t, 100.0, domain.GoalProgress(500, 2), 1e-9)
	assert.Zero(t, domain.GoalProgress(30, 0))
}

func TestLatestCompleted(t *testing.T) {
	t.Parallel()
	completed := domain.NewIntSet(2, 3, 9)
	assert.Equal(t, 9, domain.LatestCompleted(11, completed))
	assert.Equal(t, 3, domain.LatestCompleted(8, completed))
	assert.Equal(t, 0, domain.LatestCompleted(1, completed))
	assert.Equal(t, 9, domain.LatestCompleted(500, completed))
}
