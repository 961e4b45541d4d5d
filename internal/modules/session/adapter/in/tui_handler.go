package in

import (
	"context"
	"time"

	sessiondto "hdt/internal/modules/session/dto"
	sessionin "hdt/internal/modules/session/port/in"
)

// TUIHandler drives the timer one tick message at a time; the bubbletea loop
// owns the cadence instead of Run.
type TUIHandler struct {
	usecase sessionin.Usecase
}

func NewTUIHandler(usecase sessionin.Usecase) TUIHandler {
	return TUIHandler{usecase: usecase}
}

func (h TUIHandler) Start(ctx context.Context, mode string, duration time.Duration) (sessiondto.StatusOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{Mode: mode, Duration: duration})
}

func (h TUIHandler) Pause(ctx context.Context) (sessiondto.StatusOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h TUIHandler) Reset(ctx context.Context) (sessiondto.StatusOutput, error) {
	return h.usecase.Reset(ctx)
}

func (h TUIHandler) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	return h.usecase.Status(ctx)
}

func (h TUIHandler) Tick(ctx context.Context, generation uint64) (sessiondto.TickOutput, error) {
	return h.usecase.Tick(ctx, generation)
}

func (h TUIHandler) Stop(ctx context.Context) (sessiondto.StopOutput, error) {
	return h.usecase.Stop(ctx)
}
