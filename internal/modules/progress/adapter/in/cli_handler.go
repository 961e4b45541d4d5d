package in

import (
	"context"

	"hdt/internal/modules/progress/dto"
	progressin "hdt/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Dashboard(ctx context.Context) (dto.Dashboard, error) {
	return h.usecase.Dashboard(ctx)
}

func (h CLIHandler) ShowDay(ctx context.Context, day int) (dto.DayView, error) {
	return h.usecase.GetDay(ctx, day)
}

func (h CLIHandler) NextDay(ctx context.Context) (dto.DayView, error) {
	return h.usecase.NavigateDay(ctx, 1)
}

func (h CLIHandler) PrevDay(ctx context.Context) (dto.DayView, error) {
	return h.usecase.NavigateDay(ctx, -1)
}

func (h CLIHandler) GoToDay(ctx context.Context, day int) (dto.DayView, error) {
	return h.usecase.GoToDay(ctx, day)
}

func (h CLIHandler) SetTask(ctx context.Context, day, index int, done bool) (dto.DayView, error) {
	return h.usecase.ToggleTask(ctx, dto.ToggleTaskInput{Day: day, Index: index, Done: done})
}

// SaveNote writes only the fields that were supplied; nil leaves a field as is.
func (h CLIHandler) SaveNote(ctx context.Context, day int, notes, challenges *string, understanding *int) (dto.DayView, error) {
	return h.usecase.SaveReflection(ctx, dto.ReflectionInput{Day: day, Notes: notes, Challenges: challenges, Understanding: understanding})
}

func (h CLIHandler) Complete(ctx context.Context, day int, notes, challenges *string, understanding *int) (dto.CompleteDayOutput, error) {
	return h.usecase.CompleteDay(ctx, dto.CompleteDayInput{
		Day:        day,
		Reflection: dto.ReflectionInput{Day: day, Notes: notes, Challenges: challenges, Understanding: understanding},
	})
}

func (h CLIHandler) Progress(ctx context.Context) (dto.ProgressView, error) {
	return h.usecase.Progress(ctx)
}

func (h CLIHandler) Projects(ctx context.Context) ([]dto.ProjectView, error) {
	return h.usecase.Projects(ctx)
}

func (h CLIHandler) Resources(ctx context.Context, phase int) (dto.ResourcesView, error) {
	return h.usecase.Resources(ctx, phase)
}

func (h CLIHandler) Settings(ctx context.Context) (dto.Settings, error) {
	return h.usecase.Settings(ctx)
}

func (h CLIHandler) SetTheme(ctx context.Context, theme string) (dto.Settings, error) {
	return h.usecase.SetTheme(ctx, theme)
}

func (h CLIHandler) SetStartDate(ctx context.Context, date string) (dto.Settings, error) {
	return h.usecase.SetStartDate(ctx, date)
}

func (h CLIHandler) SetDailyGoal(ctx context.Context, hours int) (dto.Settings, error) {
	return h.usecase.SetDailyGoal(ctx, hours)
}

func (h CLIHandler) Reset(ctx context.Context, confirm bool) (dto.Dashboard, error) {
	return h.usecase.Reset(ctx, confirm)
}

func (h CLIHandler) Export(ctx context.Context, format, dir string) (dto.ExportOutput, error) {
	return h.usecase.Export(ctx, dto.ExportInput{Format: format, Dir: dir})
}
