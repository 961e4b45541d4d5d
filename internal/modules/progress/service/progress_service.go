package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	curriculum "hdt/internal/modules/curriculum/domain"
	"hdt/internal/modules/progress/domain"
	progressout "hdt/internal/modules/progress/port/out"
	"hdt/internal/platform/clock"
	apperrors "hdt/internal/platform/errors"
	"hdt/internal/platform/id"
)

type Options struct {
	Key            string
	FollowCalendar bool
}

// ProgressService owns the single progress record. Mutations run on a clone
// and are committed only after the store accepted the new record.
type ProgressService struct {
	clock      clock.Clock
	idGen      id.Generator
	logger     *zap.Logger
	store      progressout.KVStore
	exporter   progressout.Exporter
	curriculum curriculum.Curriculum
	opts       Options

	mu     sync.Mutex
	loaded bool
	record domain.Record
}

func NewProgressService(clock clock.Clock, idGen id.Generator, logger *zap.Logger, store progressout.KVStore, exporter progressout.Exporter, c curriculum.Curriculum, opts Options) *ProgressService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressService{
		clock:      clock,
		idGen:      idGen,
		logger:     logger,
		store:      store,
		exporter:   exporter,
		curriculum: c,
		opts:       opts,
	}
}

func (s *ProgressService) Curriculum() curriculum.Curriculum {
	return s.curriculum
}

// Load reads the stored record. Absent, unreadable or malformed data falls
// back to defaults; Load never fails.
func (s *ProgressService) Load(ctx context.Context) domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(ctx)
	return s.record.Clone()
}

func (s *ProgressService) loadLocked(ctx context.Context) {
	now := s.clock.Now()
	record := domain.NewRecord(s.curriculum, now)

	raw, err := s.store.Get(ctx, s.opts.Key)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		s.logger.Debug("no stored progress, using defaults", zap.String("key", s.opts.Key))
	case err != nil:
		s.logger.Warn("read progress failed, using defaults", zap.String("key", s.opts.Key), zap.Error(err))
	default:
		var decoded domain.Record
		if err := json.Unmarshal(raw, &decoded); err != nil {
			s.logger.Warn("stored progress is malformed, using defaults", zap.String("key", s.opts.Key), zap.Error(err))
		} else {
			decoded.Normalize(s.curriculum, now)
			record = decoded
		}
	}
	if s.opts.FollowCalendar {
		record.SyncCalendar(now)
	}
	s.record = record
	s.loaded = true
}

// Snapshot returns a copy of the committed record, loading it on first use.
func (s *ProgressService) Snapshot(ctx context.Context) domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.loadLocked(ctx)
	}
	return s.record.Clone()
}

// Mutate applies fn to a copy of the record and persists the result. The
// committed record only changes when both fn and the save succeed.
func (s *ProgressService) Mutate(ctx context.Context, fn func(r *domain.Record) error) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		s.loadLocked(ctx)
	}
	next := s.record.Clone()
	if err := fn(&next); err != nil {
		return s.record.Clone(), err
	}
	if err := s.save(ctx, next); err != nil {
		return s.record.Clone(), err
	}
	s.record = next
	return next.Clone(), nil
}

// CompleteDay runs the completion workflow and saves once. The advanced
// current day is part of the same save.
func (s *ProgressService) CompleteDay(ctx context.Context, day int, reflection domain.Reflection) (domain.Completion, domain.Record, error) {
	var completion domain.Completion
	record, err := s.Mutate(ctx, func(r *domain.Record) error {
		completion = r.CompleteDay(s.curriculum, day, reflection, s.clock.Now())
		return nil
	})
	if err != nil {
		return domain.Completion{}, record, err
	}
	if completion.Completed {
		fields := []zap.Field{zap.Int("day", completion.Day), zap.Int("xp", completion.XPGained), zap.Int("streak", record.CurrentStreak)}
		for _, m := range completion.Milestones {
			fields = append(fields, zap.String("milestone", m.Name))
		}
		s.logger.Info("day completed", fields...)
	}
	return completion, record, nil
}

// Reset clears the persisted key, then writes and adopts the defaults.
func (s *ProgressService) Reset(ctx context.Context) (domain.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fresh := domain.NewRecord(s.curriculum, s.clock.Now())
	if err := s.store.Delete(ctx, s.opts.Key); err != nil {
		return s.record.Clone(), fmt.Errorf("clear progress: %w", err)
	}
	// The key is gone, so defaults are what any reload sees from here on.
	s.record = fresh
	s.loaded = true
	if err := s.save(ctx, fresh); err != nil {
		return fresh.Clone(), err
	}
	s.logger.Info("progress reset")
	return fresh.Clone(), nil
}

func (s *ProgressService) save(ctx context.Context, r domain.Record) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode progress: %w", err)
	}
	if err := s.store.Put(ctx, s.opts.Key, payload); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// Export writes the record as a JSON snapshot or as a markdown journal of the
// completed days. It returns the written paths.
func (s *ProgressService) Export(ctx context.Context, format domain.ExportFormat, dir string) ([]string, error) {
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if s.exporter == nil {
		return nil, fmt.Errorf("exporter is not configured")
	}
	record := s.Snapshot(ctx)
	switch format {
	case domain.ExportMarkdown:
		return s.exporter.WriteJournal(ctx, dir, domain.Journal(s.curriculum, record))
	default:
		path, err := s.exporter.WriteSnapshot(ctx, dir, domain.Snapshot{
			ID:         s.idGen.New(),
			ExportedAt: s.clock.Now(),
			Record:     record,
		})
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}
}

func (s *ProgressService) Now() time.Time {
	return s.clock.Now()
}
