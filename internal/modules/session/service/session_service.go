package service

import (
	"time"

	"go.uber.org/zap"

	"hdt/internal/modules/session/domain"
	"hdt/internal/platform/clock"
	"hdt/internal/platform/id"
)

// Defaults come from the timer.* configuration keys.
type Defaults struct {
	Mode          domain.Mode
	FocusDuration time.Duration
	SessionXP     int
	SessionHours  float64
}

type SessionService struct {
	clock    clock.Clock
	idGen    id.Generator
	logger   *zap.Logger
	defaults Defaults
}

func NewSessionService(clock clock.Clock, idGen id.Generator, logger *zap.Logger, defaults Defaults) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaults.Mode == "" {
		defaults.Mode = domain.ModeCountdown
	}
	if defaults.FocusDuration <= 0 {
		defaults.FocusDuration = domain.DefaultFocusDuration
	}
	return &SessionService{clock: clock, idGen: idGen, logger: logger, defaults: defaults}
}

func (s *SessionService) Now() time.Time {
	return s.clock.Now()
}

// NewTimer builds an idle timer for day, filling mode and duration from the
// defaults when they are zero.
func (s *SessionService) NewTimer(day int, mode domain.Mode, duration time.Duration) (domain.Timer, error) {
	if mode == "" {
		mode = s.defaults.Mode
	}
	if duration <= 0 {
		duration = s.defaults.FocusDuration
	}
	return domain.NewTimer(s.idGen.New(), day, mode, duration)
}

// Award is the credit for one countdown that ran to zero.
func (s *SessionService) Award() (int, float64) {
	return s.defaults.SessionXP, s.defaults.SessionHours
}

func (s *SessionService) Logger() *zap.Logger {
	return s.logger
}
