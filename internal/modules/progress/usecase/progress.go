package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	curriculum "hdt/internal/modules/curriculum/domain"
	"hdt/internal/modules/progress/domain"
	"hdt/internal/modules/progress/dto"
	progressin "hdt/internal/modules/progress/port/in"
	"hdt/internal/modules/progress/service"
	apperrors "hdt/internal/platform/errors"
)

type Interactor struct {
	svc *service.ProgressService
}

func NewInteractor(svc *service.ProgressService) progressin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Dashboard(ctx context.Context) (dto.Dashboard, error) {
	return i.dashboard(i.svc.Snapshot(ctx)), nil
}

func (i *Interactor) GetDay(ctx context.Context, day int) (dto.DayView, error) {
	record := i.svc.Snapshot(ctx)
	return i.dayView(record, resolveDay(record, day)), nil
}

func (i *Interactor) NavigateDay(ctx context.Context, delta int) (dto.DayView, error) {
	record, err := i.svc.Mutate(ctx, func(r *domain.Record) error {
		r.Navigate(delta)
		return nil
	})
	return i.dayView(record, record.CurrentDay), err
}

func (i *Interactor) GoToDay(ctx context.Context, day int) (dto.DayView, error) {
	record, err := i.svc.Mutate(ctx, func(r *domain.Record) error {
		r.GoTo(day)
		return nil
	})
	return i.dayView(record, record.CurrentDay), err
}

func (i *Interactor) ToggleTask(ctx context.Context, input dto.ToggleTaskInput) (dto.DayView, error) {
	day := 0
	record, err := i.svc.Mutate(ctx, func(r *domain.Record) error {
		day = resolveDay(*r, input.Day)
		_, err := r.SetTask(i.svc.Curriculum(), day, input.Index, input.Done)
		return err
	})
	if err != nil {
		return dto.DayView{}, err
	}
	return i.dayView(record, day), nil
}

func (i *Interactor) SaveReflection(ctx context.Context, input dto.ReflectionInput) (dto.DayView, error) {
	reflection := toReflection(input)
	if reflection.Empty() {
		return dto.DayView{}, fmt.Errorf("nothing to save: %w", apperrors.ErrInvalidInput)
	}
	day := 0
	record, err := i.svc.Mutate(ctx, func(r *domain.Record) error {
		day = resolveDay(*r, input.Day)
		r.ApplyReflection(day, reflection)
		return nil
	})
	if err != nil {
		return dto.DayView{}, err
	}
	return i.dayView(record, day), nil
}

func (i *Interactor) CompleteDay(ctx context.Context, input dto.CompleteDayInput) (dto.CompleteDayOutput, error) {
	day := input.Day
	if day == 0 {
		day = i.svc.Snapshot(ctx).CurrentDay
	}
	completion, record, err := i.svc.CompleteDay(ctx, day, toReflection(input.Reflection))
	if err != nil {
		return dto.CompleteDayOutput{}, err
	}
	milestones := make([]dto.MilestoneView, 0, len(completion.Milestones))
	for _, m := range completion.Milestones {
		milestones = append(milestones, milestoneView(m, true))
	}
	return dto.CompleteDayOutput{
		Day:        completion.Day,
		Completed:  completion.Completed,
		XPGained:   completion.XPGained,
		Milestones: milestones,
		Dashboard:  i.dashboard(record),
	}, nil
}

func (i *Interactor) Progress(ctx context.Context) (dto.ProgressView, error) {
	record := i.svc.Snapshot(ctx)
	c := i.svc.Curriculum()

	cells := domain.Calendar(record.CurrentDay, record.CompletedDays)
	calendar := make([]dto.CalendarCell, 0, len(cells))
	for _, cell := range cells {
		calendar = append(calendar, dto.CalendarCell{Day: cell.Day, Status: string(cell.Status)})
	}

	phases := make([]dto.PhaseView, 0, len(c.Phases))
	for _, p := range c.Phases {
		done := 0
		for d := p.Start; d <= p.End; d++ {
			if record.CompletedDays.Has(d) {
				done++
			}
		}
		phases = append(phases, dto.PhaseView{
			Number:      p.Number,
			Name:        p.Name,
			Description: p.Description,
			Start:       p.Start,
			End:         p.End,
			Completed:   done,
			Percent:     domain.PhaseProgress(p, record.CompletedDays),
		})
	}

	return dto.ProgressView{
		CurrentDay: record.CurrentDay,
		Calendar:   calendar,
		Phases:     phases,
		Skills:     skillViews(c, record),
		Milestones: milestoneViews(c, record),
	}, nil
}

func (i *Interactor) Projects(ctx context.Context) ([]dto.ProjectView, error) {
	record := i.svc.Snapshot(ctx)
	c := i.svc.Curriculum()
	out := make([]dto.ProjectView, 0, len(c.Projects))
	for _, p := range c.Projects {
		out = append(out, dto.ProjectView{
			Day:          p.Day,
			Name:         p.Name,
			Description:  p.Description,
			Technologies: p.Technologies,
			Difficulty:   string(p.Difficulty),
			Status:       string(domain.ProjectStatusFor(c, p, record.CurrentDay, record.CompletedDays)),
		})
	}
	return out, nil
}

// Resources returns the lists for phase, or for the current day's phase when
// phase is 0.
func (i *Interactor) Resources(ctx context.Context, phase int) (dto.ResourcesView, error) {
	c := i.svc.Curriculum()
	if phase == 0 {
		phase = c.PhaseFor(i.svc.Snapshot(ctx).CurrentDay).Number
	}
	res, ok := c.ResourcesFor(phase)
	if !ok {
		return dto.ResourcesView{}, fmt.Errorf("resources for phase %d: %w", phase, apperrors.ErrNotFound)
	}
	name := ""
	for _, p := range c.Phases {
		if p.Number == phase {
			name = p.Name
		}
	}
	return dto.ResourcesView{
		PhaseNumber:   phase,
		PhaseName:     name,
		Documentation: res.Documentation,
		Tutorials:     res.Tutorials,
		Practice:      res.Practice,
		Tools:         res.Tools,
	}, nil
}

func (i *Interactor) Settings(ctx context.Context) (dto.Settings, error) {
	return settings(i.svc.Snapshot(ctx)), nil
}

func (i *Interactor) SetTheme(ctx context.Context, theme string) (dto.Settings, error) {
	record, err := i.svc.Mutate(ctx, func(r *domain.Record) error {
		return r.SetTheme(domain.Theme(strings.ToLower(strings.TrimSpace(theme))))
	})
	return settings(record), err
}

func (i *Interactor) SetStartDate(ctx context.Context, date string) (dto.Settings, error) {
	today := i.svc.Now()
	record, err := i.svc.Mutate(ctx, func(r *domain.Record) error {
		return r.SetStartDate(date, today)
	})
	return settings(record), err
}

func (i *Interactor) SetDailyGoal(ctx context.Context, hours int) (dto.Settings, error) {
	record, err := i.svc.Mutate(ctx, func(r *domain.Record) error {
		r.SetDailyGoal(hours)
		return nil
	})
	return settings(record), err
}

func (i *Interactor) LogMinutes(ctx context.Context, input dto.LogMinutesInput) error {
	if input.Minutes <= 0 {
		return nil
	}
	_, err := i.svc.Mutate(ctx, func(r *domain.Record) error {
		r.LogMinutes(resolveDay(*r, input.Day), input.Minutes)
		return nil
	})
	return err
}

func (i *Interactor) AwardSession(ctx context.Context, input dto.AwardSessionInput) (dto.Dashboard, error) {
	if input.XP < 0 || input.Hours < 0 {
		return dto.Dashboard{}, fmt.Errorf("session award must be non-negative: %w", apperrors.ErrInvalidInput)
	}
	record, err := i.svc.Mutate(ctx, func(r *domain.Record) error {
		r.AwardSession(input.XP, input.Hours)
		return nil
	})
	if err != nil {
		return dto.Dashboard{}, err
	}
	return i.dashboard(record), nil
}

func (i *Interactor) Reset(ctx context.Context, confirm bool) (dto.Dashboard, error) {
	if !confirm {
		return dto.Dashboard{}, apperrors.ErrConfirmationRequired
	}
	record, err := i.svc.Reset(ctx)
	if err != nil {
		return dto.Dashboard{}, err
	}
	return i.dashboard(record), nil
}

func (i *Interactor) Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error) {
	format := domain.ExportFormat(strings.ToLower(strings.TrimSpace(input.Format)))
	if format == "" {
		format = domain.ExportJSON
	}
	dir := input.Dir
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	paths, err := i.svc.Export(ctx, format, dir)
	if err != nil {
		return dto.ExportOutput{}, err
	}
	return dto.ExportOutput{Format: string(format), Paths: paths}, nil
}

func (i *Interactor) dashboard(record domain.Record) dto.Dashboard {
	c := i.svc.Curriculum()
	phase := c.PhaseFor(record.CurrentDay)
	out := dto.Dashboard{
		CurrentDay:      record.CurrentDay,
		Topic:           c.Day(record.CurrentDay).Topic,
		PhaseNumber:     phase.Number,
		PhaseName:       phase.Name,
		PhaseDayPercent: domain.PhaseDayProgress(phase, record.CurrentDay),
		CompletedCount:  len(record.CompletedDays),
		TotalDays:       curriculum.TotalDays,
		OverallPercent:  float64(len(record.CompletedDays)) / curriculum.TotalDays * 100,
		TotalXP:         record.TotalXP,
		Level:           domain.LevelFromXP(record.TotalXP),
		XPIntoLevel:     domain.XPIntoLevel(record.TotalXP),
		XPPerLevel:      domain.XPPerLevel,
		Streak:          record.CurrentStreak,
		TotalHours:      record.TotalHours,
		TodayMinutes:    record.DayMinutes[record.CurrentDay],
		DailyGoal:       record.DailyGoal,
		GoalPercent:     domain.GoalProgress(record.DayMinutes[record.CurrentDay], record.DailyGoal),
		StartDate:       record.StartDate,
		Theme:           string(record.Theme),
	}
	for _, m := range c.Milestones {
		if record.Achievements.Has(m.Name) {
			out.Achievements = append(out.Achievements, milestoneView(m, true))
			continue
		}
		if out.NextMilestone == nil {
			next := milestoneView(m, false)
			out.NextMilestone = &next
		}
	}
	return out
}

func (i *Interactor) dayView(record domain.Record, day int) dto.DayView {
	c := i.svc.Curriculum()
	entry := c.Day(day)
	done := record.CompletedTasks[day]
	tasks := make([]dto.TaskView, 0, len(c.Tasks))
	for idx, label := range c.Tasks {
		tasks = append(tasks, dto.TaskView{Index: idx, Label: label, Done: done.Has(idx)})
	}
	return dto.DayView{
		Day:            entry.Number,
		Topic:          entry.Topic,
		Subtopics:      entry.Subtopics,
		Project:        entry.Project,
		Difficulty:     string(entry.Difficulty),
		EstimatedHours: entry.EstimatedHours,
		PhaseName:      c.PhaseFor(day).Name,
		IsCurrent:      day == record.CurrentDay,
		Completed:      record.CompletedDays.Has(day),
		CompletedAt:    record.CompletedAt[day],
		Tasks:          tasks,
		Notes:          record.Notes[day],
		Challenges:     record.Challenges[day],
		Understanding:  record.Understanding[day],
		Minutes:        record.DayMinutes[day],
	}
}

func resolveDay(record domain.Record, day int) int {
	if day == 0 {
		return record.CurrentDay
	}
	return curriculum.ClampDay(day)
}

func toReflection(input dto.ReflectionInput) domain.Reflection {
	return domain.Reflection{Notes: input.Notes, Challenges: input.Challenges, Understanding: input.Understanding}
}

func settings(record domain.Record) dto.Settings {
	return dto.Settings{Theme: string(record.Theme), StartDate: record.StartDate, DailyGoal: record.DailyGoal}
}

func milestoneView(m curriculum.Milestone, earned bool) dto.MilestoneView {
	return dto.MilestoneView{Name: m.Name, Day: m.Day, Description: m.Description, Badge: m.Badge, XP: m.XP, Earned: earned}
}

func milestoneViews(c curriculum.Curriculum, record domain.Record) []dto.MilestoneView {
	out := make([]dto.MilestoneView, 0, len(c.Milestones))
	for _, m := range c.Milestones {
		out = append(out, milestoneView(m, record.Achievements.Has(m.Name)))
	}
	return out
}

// skillViews lists curriculum skills first, then any extra stored skills by name.
func skillViews(c curriculum.Curriculum, record domain.Record) []dto.SkillView {
	out := make([]dto.SkillView, 0, len(record.Skills))
	seen := map[string]bool{}
	for _, name := range c.Skills {
		out = append(out, dto.SkillView{Name: name, Level: record.Skills[name]})
		seen[name] = true
	}
	var extra []string
	for name := range record.Skills {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		out = append(out, dto.SkillView{Name: name, Level: record.Skills[name]})
	}
	return out
}
