package in

import (
	"context"

	"hdt/internal/modules/session/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.StatusOutput, error)
	Pause(ctx context.Context) (dto.StatusOutput, error)
	Reset(ctx context.Context) (dto.StatusOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Tick(ctx context.Context, generation uint64) (dto.TickOutput, error)
	Stop(ctx context.Context) (dto.StopOutput, error)
	Run(ctx context.Context, input dto.RunInput) (dto.StopOutput, error)
}
