package in

import (
	"context"
	"time"

	sessiondto "hdt/internal/modules/session/dto"
	sessionin "hdt/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
}

func NewCLIHandler(usecase sessionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, mode string, duration time.Duration) (sessiondto.StatusOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{Mode: mode, Duration: duration})
}

func (h CLIHandler) Pause(ctx context.Context) (sessiondto.StatusOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) (sessiondto.StatusOutput, error) {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) (sessiondto.StopOutput, error) {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Run(ctx context.Context, duration time.Duration, onTick func(sessiondto.StatusOutput)) (sessiondto.StopOutput, error) {
	return h.usecase.Run(ctx, sessiondto.RunInput{Duration: duration, OnTick: onTick})
}
