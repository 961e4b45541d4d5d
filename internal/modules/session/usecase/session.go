package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	progressdto "hdt/internal/modules/progress/dto"
	progressin "hdt/internal/modules/progress/port/in"
	"hdt/internal/modules/session/domain"
	sessiondto "hdt/internal/modules/session/dto"
	sessionin "hdt/internal/modules/session/port/in"
	sessionout "hdt/internal/modules/session/port/out"
	"hdt/internal/modules/session/service"
	apperrors "hdt/internal/platform/errors"
)

const tickInterval = time.Second

type Interactor struct {
	svc         *service.SessionService
	progress    progressin.Usecase
	activeStore sessionout.ActiveSessionStore
	ticker      sessionout.Ticker

	mu sync.Mutex
}

func NewInteractor(svc *service.SessionService, progress progressin.Usecase, activeStore sessionout.ActiveSessionStore, ticker sessionout.Ticker) sessionin.Usecase {
	return &Interactor{svc: svc, progress: progress, activeStore: activeStore, ticker: ticker}
}

// Start resumes a paused timer or starts a new one for the current day.
func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.StatusOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	timer, err := i.start(ctx, input)
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	return i.status(timer, true), nil
}

func (i *Interactor) start(ctx context.Context, input sessiondto.StartInput) (domain.Timer, error) {
	timer, err := i.activeStore.LoadActive(ctx)
	switch {
	case err == nil:
		if timer.State == domain.StateRunning {
			return domain.Timer{}, apperrors.ErrActiveSessionExists
		}
	case errors.Is(err, apperrors.ErrNoActiveSession):
		dash, err := i.progress.Dashboard(ctx)
		if err != nil {
			return domain.Timer{}, err
		}
		timer, err = i.svc.NewTimer(dash.CurrentDay, domain.Mode(input.Mode), input.Duration)
		if err != nil {
			return domain.Timer{}, err
		}
	default:
		return domain.Timer{}, err
	}
	if err := timer.Start(i.svc.Now()); err != nil {
		return domain.Timer{}, err
	}
	if err := i.activeStore.SaveActive(ctx, timer); err != nil {
		return domain.Timer{}, err
	}
	i.svc.Logger().Debug("timer started", zap.String("id", timer.ID), zap.String("mode", string(timer.Mode)), zap.Int("day", timer.Day))
	return timer, nil
}

func (i *Interactor) Pause(ctx context.Context) (sessiondto.StatusOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	timer, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	if err := timer.Pause(i.svc.Now()); err != nil {
		return sessiondto.StatusOutput{}, err
	}
	if err := i.activeStore.SaveActive(ctx, timer); err != nil {
		return sessiondto.StatusOutput{}, err
	}
	return i.status(timer, true), nil
}

// Reset discards the active timer without crediting anything.
func (i *Interactor) Reset(ctx context.Context) (sessiondto.StatusOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if err := i.activeStore.ClearActive(ctx); err != nil {
		return sessiondto.StatusOutput{}, err
	}
	return sessiondto.StatusOutput{State: string(domain.StateIdle)}, nil
}

func (i *Interactor) Status(ctx context.Context) (sessiondto.StatusOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	timer, err := i.activeStore.LoadActive(ctx)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		return sessiondto.StatusOutput{State: string(domain.StateIdle)}, nil
	}
	if err != nil {
		return sessiondto.StatusOutput{}, err
	}
	return i.status(timer, true), nil
}

// Tick applies one tick of the given generation. A countdown reaching zero is
// credited here, exactly once, and the active timer is cleared.
func (i *Interactor) Tick(ctx context.Context, generation uint64) (sessiondto.TickOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	timer, err := i.activeStore.LoadActive(ctx)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		return sessiondto.TickOutput{Status: sessiondto.StatusOutput{State: string(domain.StateIdle)}}, nil
	}
	if err != nil {
		return sessiondto.TickOutput{}, err
	}
	return i.tick(ctx, timer, generation, i.svc.Now())
}

func (i *Interactor) tick(ctx context.Context, timer domain.Timer, generation uint64, now time.Time) (sessiondto.TickOutput, error) {
	before := timer
	res := timer.Tick(generation, now)
	if !res.Applied {
		return sessiondto.TickOutput{Status: statusAt(timer, true, now)}, nil
	}
	if !res.Finished {
		return sessiondto.TickOutput{Applied: true, Status: statusAt(timer, true, now)}, nil
	}
	stopped, err := i.finish(ctx, before, res.Elapsed, true)
	if err != nil {
		return sessiondto.TickOutput{}, err
	}
	return sessiondto.TickOutput{Applied: true, Status: statusAt(timer, false, now), Finished: &stopped}, nil
}

// Stop ends the active session. A finished countdown earns the session award,
// an unfinished one is dropped, and a stopwatch logs its minutes to its day.
func (i *Interactor) Stop(ctx context.Context) (sessiondto.StopOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	timer, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return sessiondto.StopOutput{}, err
	}
	now := i.svc.Now()
	return i.finish(ctx, timer, timer.Elapsed(now), timer.Done(now))
}

func (i *Interactor) finish(ctx context.Context, timer domain.Timer, elapsed time.Duration, countdownDone bool) (sessiondto.StopOutput, error) {
	out := sessiondto.StopOutput{
		ID:       timer.ID,
		Day:      timer.Day,
		Mode:     string(timer.Mode),
		Elapsed:  elapsed,
		Finished: countdownDone,
	}
	switch {
	case timer.Mode == domain.ModeCountdown && countdownDone:
		xp, hours := i.svc.Award()
		if _, err := i.progress.AwardSession(ctx, progressdto.AwardSessionInput{XP: xp, Hours: hours}); err != nil {
			return sessiondto.StopOutput{}, err
		}
		out.XPAwarded, out.HoursAwarded = xp, hours
	case timer.Mode == domain.ModeStopwatch:
		minutes := int(elapsed / time.Minute)
		if err := i.progress.LogMinutes(ctx, progressdto.LogMinutesInput{Day: timer.Day, Minutes: minutes}); err != nil {
			return sessiondto.StopOutput{}, err
		}
		out.MinutesLogged = minutes
	}
	if err := i.activeStore.ClearActive(ctx); err != nil {
		return sessiondto.StopOutput{}, err
	}
	i.svc.Logger().Info("timer finished",
		zap.String("id", timer.ID),
		zap.String("mode", out.Mode),
		zap.Duration("elapsed", elapsed),
		zap.Int("xp", out.XPAwarded),
		zap.Int("minutes", out.MinutesLogged),
	)
	return out, nil
}

// Run drives a countdown in the foreground until it finishes or ctx is
// cancelled. On cancellation the timer is paused so it can be resumed later.
func (i *Interactor) Run(ctx context.Context, input sessiondto.RunInput) (sessiondto.StopOutput, error) {
	i.mu.Lock()
	if active, err := i.activeStore.LoadActive(ctx); err == nil && active.Mode != domain.ModeCountdown {
		i.mu.Unlock()
		return sessiondto.StopOutput{}, fmt.Errorf("only a countdown can run in the foreground: %w", apperrors.ErrInvalidInput)
	}
	timer, err := i.start(ctx, sessiondto.StartInput{Mode: string(domain.ModeCountdown), Duration: input.Duration})
	i.mu.Unlock()
	if err != nil {
		return sessiondto.StopOutput{}, err
	}

	ticks, stop := i.ticker(tickInterval)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			return sessiondto.StopOutput{}, i.suspend(timer.Generation, ctx.Err())
		case now := <-ticks:
			out, err := i.runTick(ctx, timer.Generation, now)
			if err != nil {
				return sessiondto.StopOutput{}, err
			}
			if input.OnTick != nil {
				input.OnTick(out.Status)
			}
			if out.Finished != nil {
				return *out.Finished, nil
			}
			if !out.Applied {
				return sessiondto.StopOutput{}, errors.New("timer was changed by another command")
			}
		}
	}
}

func (i *Interactor) runTick(ctx context.Context, generation uint64, now time.Time) (sessiondto.TickOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	timer, err := i.activeStore.LoadActive(ctx)
	if errors.Is(err, apperrors.ErrNoActiveSession) {
		return sessiondto.TickOutput{}, nil
	}
	if err != nil {
		return sessiondto.TickOutput{}, err
	}
	return i.tick(ctx, timer, generation, now)
}

func (i *Interactor) suspend(generation uint64, cause error) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	// ctx is already cancelled; the snapshot write must still happen.
	bg := context.Background()
	timer, err := i.activeStore.LoadActive(bg)
	if err != nil || timer.Generation != generation {
		return cause
	}
	if err := timer.Pause(i.svc.Now()); err != nil {
		return cause
	}
	if err := i.activeStore.SaveActive(bg, timer); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

func (i *Interactor) status(timer domain.Timer, active bool) sessiondto.StatusOutput {
	return statusAt(timer, active, i.svc.Now())
}

func statusAt(timer domain.Timer, active bool, now time.Time) sessiondto.StatusOutput {
	return sessiondto.StatusOutput{
		Active:     active,
		ID:         timer.ID,
		Day:        timer.Day,
		Mode:       string(timer.Mode),
		State:      string(timer.State),
		Duration:   timer.Duration,
		Elapsed:    timer.Elapsed(now),
		Remaining:  timer.Remaining(now),
		Generation: timer.Generation,
		Done:       timer.Done(now),
	}
}
