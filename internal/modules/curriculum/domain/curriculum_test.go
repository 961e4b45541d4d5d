package domain_test

import (
	"testing"

	"hdt/internal/modules/curriculum/domain"
)

func validCurriculum() domain.Curriculum {
	return domain.Curriculum{
		Phases: []domain.Phase{
			{Number: 1, Name: "One", Start: 1, End: 40, Skills: []domain.SkillIncrement{{Skill: "Go", Amount: 1}}},
			{Number: 2, Name: "Two", Start: 41, End: 100},
		},
		Milestones: []domain.Milestone{{Name: "Half", Day: 50, XP: 10}},
		Tasks:      []string{"study"},
		Skills:     []string{"Go"},
	}
}

func TestClampDay(t *testing.T) {
	t.Parallel()
	cases := map[int]int{-5: 1, 0: 1, 1: 1, 57: 57, 100: 100, 101: 100}
	for in, want := range cases {
		if got := domain.ClampDay(in); got != want {
			t.Fatalf("ClampDay(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestDayFallsBackToPlaceholder(t *testing.T) {
	t.Parallel()
	c := validCurriculum()
	c.Days = map[int]domain.Day{3: {Number: 3, Topic: "Listed", Difficulty: domain.DifficultyBeginner}}
	if got := c.Day(3).Topic; got != "Listed" {
		t.Fatalf("expected listed topic, got %q", got)
	}
	placeholder := c.Day(4)
	if placeholder.Topic != "Day 4 Learning" || placeholder.EstimatedHours != 2 {
		t.Fatalf("unexpected placeholder %+v", placeholder)
	}
	if placeholder.Difficulty != domain.DifficultyIntermediate {
		t.Fatalf("placeholder difficulty should be Intermediate, got %s", placeholder.Difficulty)
	}
}

func TestValidateDetectsGapsAndDuplicates(t *testing.T) {
	t.Parallel()
	if err := validCurriculum().Validate(); err != nil {
		t.Fatalf("valid curriculum rejected: %v", err)
	}

	gap := validCurriculum()
	gap.Phases[1].Start = 42
	if err := gap.Validate(); err == nil {
		t.Fatalf("gap between phases must fail")
	}

	short := validCurriculum()
	short.Phases[1].End = 99
	if err := short.Validate(); err == nil {
		t.Fatalf("phases not reaching day 100 must fail")
	}

	dup := validCurriculum()
	dup.Milestones = append(dup.Milestones, domain.Milestone{Name: "Half", Day: 60})
	if err := dup.Validate(); err == nil {
		t.Fatalf("duplicate milestone names must fail")
	}

	noTasks := validCurriculum()
	noTasks.Tasks = nil
	if err := noTasks.Validate(); err == nil {
		t.Fatalf("empty task template must fail")
	}

	unknownSkill := validCurriculum()
	unknownSkill.Phases[1].Skills = []domain.SkillIncrement{{Skill: "Rust", Amount: 1}}
	if err := unknownSkill.Validate(); err == nil {
		t.Fatalf("unknown skill increment must fail")
	}
}
