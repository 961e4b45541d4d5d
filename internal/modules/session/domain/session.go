package domain

import (
	"fmt"
	"time"

	apperrors "hdt/internal/platform/errors"
)

const (
	SchemaVersion = 1

	DefaultFocusDuration = 25 * time.Minute
)

type Mode string

const (
	ModeCountdown Mode = "countdown"
	ModeStopwatch Mode = "stopwatch"
)

func (m Mode) Validate() error {
	switch m {
	case ModeCountdown, ModeStopwatch:
		return nil
	default:
		return fmt.Errorf("unsupported timer mode %q", string(m))
	}
}

type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Timer is a countdown or stopwatch. Elapsed time is always derived from
// wall-clock timestamps, never from counting ticks. Every state change bumps
// Generation so ticks scheduled before the change can be recognised as stale.
type Timer struct {
	ID          string        `json:"id"`
	Day         int           `json:"day"`
	Mode        Mode          `json:"mode"`
	Duration    time.Duration `json:"duration"`
	State       State         `json:"state"`
	Accumulated time.Duration `json:"accumulated"`
	StartedAt   time.Time     `json:"started_at"`
	Generation  uint64        `json:"generation"`
}

func NewTimer(id string, day int, mode Mode, duration time.Duration) (Timer, error) {
	if err := mode.Validate(); err != nil {
		return Timer{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if mode == ModeCountdown && duration <= 0 {
		return Timer{}, fmt.Errorf("countdown duration must be positive: %w", apperrors.ErrInvalidInput)
	}
	if mode == ModeStopwatch {
		duration = 0
	}
	return Timer{ID: id, Day: day, Mode: mode, Duration: duration, State: StateIdle}, nil
}

// Start moves an idle or paused timer to running.
func (t *Timer) Start(now time.Time) error {
	if t.State == StateRunning {
		return apperrors.ErrActiveSessionExists
	}
	t.State = StateRunning
	t.StartedAt = now
	t.Generation++
	return nil
}

// Pause folds the current run into Accumulated.
func (t *Timer) Pause(now time.Time) error {
	if t.State != StateRunning {
		return apperrors.ErrNoActiveSession
	}
	t.Accumulated = t.Elapsed(now)
	t.StartedAt = time.Time{}
	t.State = StatePaused
	t.Generation++
	return nil
}

func (t *Timer) Reset() {
	t.State = StateIdle
	t.Accumulated = 0
	t.StartedAt = time.Time{}
	t.Generation++
}

// Elapsed is the total running time, capped at Duration for a countdown.
func (t Timer) Elapsed(now time.Time) time.Duration {
	elapsed := t.Accumulated
	if t.State == StateRunning {
		if run := now.Sub(t.StartedAt); run > 0 {
			elapsed += run
		}
	}
	if t.Mode == ModeCountdown && elapsed > t.Duration {
		return t.Duration
	}
	return elapsed
}

// Remaining is zero for a stopwatch.
func (t Timer) Remaining(now time.Time) time.Duration {
	if t.Mode != ModeCountdown {
		return 0
	}
	return t.Duration - t.Elapsed(now)
}

// Done reports whether a countdown has run out.
func (t Timer) Done(now time.Time) bool {
	return t.Mode == ModeCountdown && t.State != StateIdle && t.Remaining(now) <= 0
}

type TickResult struct {
	Applied  bool
	Finished bool
	Elapsed  time.Duration
}

// Tick refreshes a running timer. Ticks from another generation, or arriving
// while the timer is not running, are ignored. A countdown that reaches zero
// finishes and resets to idle.
func (t *Timer) Tick(gen uint64, now time.Time) TickResult {
	if gen != t.Generation || t.State != StateRunning {
		return TickResult{}
	}
	elapsed := t.Elapsed(now)
	if !t.Done(now) {
		return TickResult{Applied: true, Elapsed: elapsed}
	}
	t.Reset()
	return TickResult{Applied: true, Finished: true, Elapsed: elapsed}
}
