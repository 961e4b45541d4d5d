package in

import (
	"context"

	"hdt/internal/modules/progress/dto"
)

type Usecase interface {
	Dashboard(ctx context.Context) (dto.Dashboard, error)
	GetDay(ctx context.Context, day int) (dto.DayView, error)
	NavigateDay(ctx context.Context, delta int) (dto.DayView, error)
	GoToDay(ctx context.Context, day int) (dto.DayView, error)
	ToggleTask(ctx context.Context, input dto.ToggleTaskInput) (dto.DayView, error)
	SaveReflection(ctx context.Context, input dto.ReflectionInput) (dto.DayView, error)
	CompleteDay(ctx context.Context, input dto.CompleteDayInput) (dto.CompleteDayOutput, error)
	Progress(ctx context.Context) (dto.ProgressView, error)
	Projects(ctx context.Context) ([]dto.ProjectView, error)
	Resources(ctx context.Context, phase int) (dto.ResourcesView, error)
	Settings(ctx context.Context) (dto.Settings, error)
	SetTheme(ctx context.Context, theme string) (dto.Settings, error)
	SetStartDate(ctx context.Context, date string) (dto.Settings, error)
	SetDailyGoal(ctx context.Context, hours int) (dto.Settings, error)
	LogMinutes(ctx context.Context, input dto.LogMinutesInput) error
	AwardSession(ctx context.Context, input dto.AwardSessionInput) (dto.Dashboard, error)
	Reset(ctx context.Context, confirm bool) (dto.Dashboard, error)
	Export(ctx context.Context, input dto.ExportInput) (dto.ExportOutput, error)
}
