package out

import (
	"context"
	"time"

	"hdt/internal/modules/session/domain"
)

// ActiveSessionStore keeps the one running or paused timer between
// invocations. LoadActive returns apperrors.ErrNoActiveSession when empty.
type ActiveSessionStore interface {
	SaveActive(ctx context.Context, timer domain.Timer) error
	LoadActive(ctx context.Context) (domain.Timer, error)
	ClearActive(ctx context.Context) error
}

// Ticker delivers wall-clock ticks until stop is called.
type Ticker func(every time.Duration) (ticks <-chan time.Time, stop func())
