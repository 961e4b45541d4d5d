package domain_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hdt/internal/modules/progress/domain"
	apperrors "hdt/internal/platform/errors"
)

var today = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func TestCompleteDayFromFreshRecord(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	r := domain.NewRecord(c, today)
	r.GoTo(7)

	got := r.CompleteDay(c, 7, domain.Reflection{}, today)

	require.True(t, got.Completed)
	assert.Equal(t, 300, got.XPGained)
	assert.Equal(t, 300, r.TotalXP)
	assert.Equal(t, 1, r.CurrentStreak)
	assert.Equal(t, []int{7}, r.CompletedDays.Sorted())
	assert.True(t, r.Achievements.Has("Week 1 Champion"))
	require.Len(t, got.Milestones, 1)
	assert.Equal(t, 8, r.CurrentDay)
	assert.Equal(t, today.Format(time.RFC3339), r.CompletedAt[7])
	assert.InDelta(t, 0.5, r.Skills["HTML"], 1e-9)
}

func TestCompleteDayTwiceEqualsOnceForEveryDay(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	for day := 1; day <= 100; day++ {
		once := domain.NewRecord(c, today)
		once.GoTo(day)
		once.CompleteDay(c, day, domain.Reflection{}, today)

		twice := once.Clone()
		second := twice.CompleteDay(c, day, domain.Reflection{}, today.Add(time.Hour))

		require.False(t, second.Completed, "day %d", day)
		require.Zero(t, second.XPGained, "day %d", day)
		require.Equal(t, once, twice, "day %d", day)
	}
}

func TestSequentialCompletionBuildsStreak(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	r := domain.NewRecord(c, today)
	for day := 1; day <= 5; day++ {
		require.Equal(t, day, r.CurrentDay)
		r.CompleteDay(c, r.CurrentDay, domain.Reflection{}, today)
	}
	assert.Equal(t, 5, r.CurrentStreak)
	assert.Equal(t, 6, r.CurrentDay)
	assert.Equal(t, 5*domain.DayXP, r.TotalXP)
}

func TestCompletingEarlierDayKeepsCurrentDay(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	r := domain.NewRecord(c, today)
	r.GoTo(10)
	for day := 5; day <= 9; day++ {
		r.CompleteDay(c, day, domain.Reflection{}, today)
	}
	require.Equal(t, 5, r.CurrentStreak)

	r.CompleteDay(c, 4, domain.Reflection{}, today)
	assert.Equal(t, 10, r.CurrentDay)
	assert.Equal(t, 6, r.CurrentStreak, "streak ends at day 9, the latest completion before day 10")
}

func TestBackfilledGapJoinsStreak(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	r := domain.NewRecord(c, today)
	r.CompleteDay(c, 1, domain.Reflection{}, today)
	r.CompleteDay(c, 2, domain.Reflection{}, today)
	r.GoTo(4)
	for day := 4; day <= 10; day++ {
		r.CompleteDay(c, r.CurrentDay, domain.Reflection{}, today)
	}
	require.Equal(t, 7, r.CurrentStreak)
	require.Equal(t, 11, r.CurrentDay)

	r.CompleteDay(c, 3, domain.Reflection{}, today)

	assert.Equal(t, 11, r.CurrentDay)
	assert.Equal(t, 10, r.CurrentStreak)
	assert.Equal(t, domain.Streak(10, r.CompletedDays), r.CurrentStreak)
}

func TestCompletingAheadJumpsPastThatDay(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	r := domain.NewRecord(c, today)

	r.CompleteDay(c, 7, domain.Reflection{}, today)

	assert.Equal(t, 8, r.CurrentDay, "current day follows the completed day, not +1 from day 1")
	assert.Equal(t, 1, r.CurrentStreak)
}

func TestCompleteLastDayStaysAtHundred(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	r := domain.NewRecord(c, today)
	r.GoTo(100)
	got := r.CompleteDay(c, 100, domain.Reflection{}, today)
	assert.Equal(t, 100, r.CurrentDay)
	assert.Equal(t, domain.DayXP+2000, got.XPGained)
}

func TestCompleteDayAppliesReflectionAndLoggedMinutes(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	r := domain.NewRecord(c, today)
	notes, challenges, understanding := "flexbox clicked", "grid areas", 9
	r.LogMinutes(1, 90)
	r.CompleteDay(c, 1, domain.Reflection{Notes: &notes, Challenges: &challenges, Understanding: &understanding}, today)

	assert.Equal(t, notes, r.Notes[1])
	assert.Equal(t, challenges, r.Challenges[1])
	assert.Equal(t, domain.MaxUnderstanding, r.Understanding[1])
	assert.InDelta(t, 1.5, r.TotalHours, 1e-9)
}

func TestMilestoneGrantedOnce(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	r := domain.NewRecord(c, today)
	r.CompleteDay(c, 7, domain.Reflection{}, today)
	r.CompleteDay(c, 8, domain.Reflection{}, today)
	assert.Equal(t, 2*domain.DayXP+100, r.TotalXP)
	assert.Len(t, r.Achievements, 1)
}

func TestSetTaskAwardsXPOncePerDayAndIndex(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	r := domain.NewRecord(c, today)

	awarded, err := r.SetTask(c, 3, 0, true)
	require.NoError(t, err)
	assert.True(t, awarded)

	awarded, err = r.SetTask(c, 3, 0, false)
	require.NoError(t, err)
	assert.False(t, awarded)
	assert.False(t, r.CompletedTasks[3].Has(0))

	awarded, err = r.SetTask(c, 3, 0, true)
	require.NoError(t, err)
	assert.False(t, awarded, "re-checking a rewarded task grants nothing")
	assert.Equal(t, domain.TaskXP, r.TotalXP)

	awarded, err = r.SetTask(c, 4, 0, true)
	require.NoError(t, err)
	assert.True(t, awarded)
	assert.Equal(t, 2*domain.TaskXP, r.TotalXP)
}

func TestSetTaskRejectsUnknownIndex(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	r := domain.NewRecord(c, today)
	_, err := r.SetTask(c, 1, len(c.Tasks), true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	_, err = r.SetTask(c, 1, -1, true)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestNavigationIsClamped(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	r := domain.NewRecord(c, today)
	r.Navigate(-1)
	assert.Equal(t, 1, r.CurrentDay)
	r.GoTo(250)
	assert.Equal(t, 100, r.CurrentDay)
	r.Navigate(1)
	assert.Equal(t, 100, r.CurrentDay)
	r.Navigate(-30)
	assert.Equal(t, 70, r.CurrentDay)
}

func TestEmptyNotesAreRemoved(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	r := domain.NewRecord(c, today)
	text, blank := "draft", "   "
	r.ApplyReflection(2, domain.Reflection{Notes: &text})
	require.Equal(t, "draft", r.Notes[2])
	r.ApplyReflection(2, domain.Reflection{Notes: &blank})
	_, ok := r.Notes[2]
	assert.False(t, ok)
}

func TestSetStartDateDerivesCurrentDay(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	r := domain.NewRecord(c, today)
	require.NoError(t, r.SetStartDate("2026-02-20", today))
	assert.Equal(t, 10, r.CurrentDay)

	err := r.SetStartDate("next tuesday", today)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
	assert.Equal(t, "2026-02-20", r.StartDate)
}

func TestSettingsAreValidatedAndClamped(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	r := domain.NewRecord(c, today)
	require.NoError(t, r.SetTheme(domain.ThemeDark))
	assert.Equal(t, domain.ThemeDark, r.Theme)
	assert.True(t, errors.Is(r.SetTheme("sepia"), apperrors.ErrInvalidInput))
	r.SetDailyGoal(40)
	assert.Equal(t, domain.MaxDailyGoal, r.DailyGoal)
	r.SetDailyGoal(0)
	assert.Equal(t, domain.MinDailyGoal, r.DailyGoal)
}

func TestAwardSessionIgnoresNegativeCredit(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	r := domain.NewRecord(c, today)
	r.AwardSession(100, 0.5)
	r.AwardSession(-10, -1)
	assert.Equal(t, 100, r.TotalXP)
	assert.InDelta(t, 0.5, r.TotalHours, 1e-9)
}

func TestNormalizeRepairsMalformedRecord(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	raw := `{
		"startDate": "yesterday",
		"currentDay": 412,
		"dailyGoal": 0,
		"completedDays": [0, 3, 3, 101, 50],
		"totalXP": -20,
		"totalHours": -3,
		"notes": {"5": "ok", "400": "lost"},
		"understanding": {"5": 11},
		"completedTasks": {"5": [0, 9], "0": [1]},
		"skills": {"HTML": 42},
		"theme": "neon"
	}`
	var r domain.Record
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	r.Normalize(c, today)

	assert.Equal(t, domain.SchemaVersion, r.SchemaVersion)
	assert.Equal(t, "2026-03-01", r.StartDate)
	assert.Equal(t, 100, r.CurrentDay)
	assert.Equal(t, domain.MinDailyGoal, r.DailyGoal)
	assert.Equal(t, []int{3, 50}, r.CompletedDays.Sorted())
	assert.Zero(t, r.TotalXP)
	assert.Zero(t, r.TotalHours)
	assert.Equal(t, map[int]string{5: "ok"}, r.Notes)
	assert.Equal(t, domain.MaxUnderstanding, r.Understanding[5])
	assert.Equal(t, []int{0}, r.CompletedTasks[5].Sorted())
	assert.NotContains(t, r.CompletedTasks, 0)
	assert.InDelta(t, domain.MaxSkillLevel, r.Skills["HTML"], 1e-9)
	assert.Contains(t, r.Skills, "Full-Stack")
	assert.Equal(t, domain.ThemeSystem, r.Theme)
	assert.NotNil(t, r.Achievements)
	assert.NotNil(t, r.RewardedTasks)
}

func TestRecordJSONRoundTripKeepsSetsSorted(t *testing.T) {
	t.Parallel()
	c := loadCurriculum(t)
	r := domain.NewRecord(c, today)
	r.CompleteDay(c, 3, domain.Reflection{}, today)
	r.CompleteDay(c, 1, domain.Reflection{}, today)

	raw, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"completedDays":[1,3]`)

	var back domain.Record
	require.NoError(t, json.Unmarshal(raw, &back))
	back.Normalize(c, today)
	assert.Equal(t, r, back)
}
