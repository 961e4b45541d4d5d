package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	curriculumout "hdt/internal/modules/curriculum/adapter/out"
	curriculum "hdt/internal/modules/curriculum/domain"
	progressadapter "hdt/internal/modules/progress/adapter/out"
	"hdt/internal/modules/progress/domain"
	"hdt/internal/modules/progress/dto"
	progressin "hdt/internal/modules/progress/port/in"
	"hdt/internal/modules/progress/service"
	"hdt/internal/modules/progress/usecase"
	"hdt/internal/platform/clock"
	apperrors "hdt/internal/platform/errors"
)

const storeKey = "hdt:progress"

var now = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

type fakeID struct{}

func (fakeID) New() string { return "export-1" }

type memStore struct {
	data       map[string][]byte
	deleted    []string
	failPut    error
	failGet    error
	failDelete error
}

func newMemStore() *memStore { return &memStore{data: map[string][]byte{}} }

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.failGet != nil {
		return nil, m.failGet
	}
	v, ok := m.data[key]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return v, nil
}

func (m *memStore) Put(_ context.Context, key string, value []byte) error {
	if m.failPut != nil {
		return m.failPut
	}
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	if m.failDelete != nil {
		return m.failDelete
	}
	m.deleted = append(m.deleted, key)
	delete(m.data, key)
	return nil
}

func (m *memStore) Close() error { return nil }

func loadCurriculum(t *testing.T) curriculum.Curriculum {
	t.Helper()
	c, err := curriculumout.NewYAMLSource("").Load(context.Background())
	if err != nil {
		t.Fatalf("load curriculum: %v", err)
	}
	return c
}

func newInteractor(t *testing.T, store *memStore, opts service.Options) (progressin.Usecase, curriculum.Curriculum) {
	t.Helper()
	c := loadCurriculum(t)
	if opts.Key == "" {
		opts.Key = storeKey
	}
	svc := service.NewProgressService(clock.Fixed(now), fakeID{}, zaptest.NewLogger(t), store, progressadapter.NewFileExporter(), c, opts)
	return usecase.NewInteractor(svc), c
}

func storedRecord(t *testing.T, store *memStore) domain.Record {
	t.Helper()
	raw, ok := store.data[storeKey]
	if !ok {
		t.Fatalf("nothing persisted under %s", storeKey)
	}
	var r domain.Record
	if err := json.Unmarshal(raw, &r); err != nil {
		t.Fatalf("decode stored record: %v", err)
	}
	return r
}

func TestMalformedStoredRecordFallsBackToDefaults(t *testing.T) {
	t.Parallel()
	for name, blob := range map[string]string{
		"not json":   "{{{",
		"wrong type": `{"currentDay":"seven"}`,
	} {
		store := newMemStore()
		store.data[storeKey] = []byte(blob)
		uc, _ := newInteractor(t, store, service.Options{})
		dash, err := uc.Dashboard(context.Background())
		if err != nil {
			t.Fatalf("%s: dashboard: %v", name, err)
		}
		if dash.CurrentDay != 1 || dash.TotalXP != 0 || dash.CompletedCount != 0 {
			t.Fatalf("%s: expected defaults, got %+v", name, dash)
		}
	}
}

func TestStoreReadFailureFallsBackToDefaults(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	store.failGet = errors.New("disk on fire")
	uc, _ := newInteractor(t, store, service.Options{})
	dash, err := uc.Dashboard(context.Background())
	if err != nil || dash.CurrentDay != 1 {
		t.Fatalf("expected defaults, got %+v, %v", dash, err)
	}
}

func TestCompleteDayPersistsAndAdvances(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	uc, _ := newInteractor(t, store, service.Options{})
	ctx := context.Background()

	if _, err := uc.GoToDay(ctx, 7); err != nil {
		t.Fatalf("go to day: %v", err)
	}
	note := "week one done"
	out, err := uc.CompleteDay(ctx, dto.CompleteDayInput{Reflection: dto.ReflectionInput{Notes: &note}})
	if err != nil {
		t.Fatalf("complete day: %v", err)
	}
	if !out.Completed || out.Day != 7 || out.XPGained != 300 {
		t.Fatalf("unexpected completion %+v", out)
	}
	if len(out.Milestones) != 1 || out.Milestones[0].Name != "Week 1 Champion" {
		t.Fatalf("expected week one milestone, got %+v", out.Milestones)
	}
	if out.Dashboard.CurrentDay != 8 || out.Dashboard.Streak != 1 {
		t.Fatalf("unexpected dashboard %+v", out.Dashboard)
	}

	stored := storedRecord(t, store)
	if stored.CurrentDay != 8 || !stored.CompletedDays.Has(7) || stored.TotalXP != 300 || stored.Notes[7] != note {
		t.Fatalf("stored record out of sync: %+v", stored)
	}

	again, err := uc.CompleteDay(ctx, dto.CompleteDayInput{Day: 7})
	if err != nil {
		t.Fatalf("complete again: %v", err)
	}
	if again.Completed || again.XPGained != 0 || again.Dashboard.TotalXP != 300 {
		t.Fatalf("second completion must be a no-op, got %+v", again)
	}
}

func TestStateSurvivesReload(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	ctx := context.Background()
	first, _ := newInteractor(t, store, service.Options{})
	if _, err := first.ToggleTask(ctx, dto.ToggleTaskInput{Index: 2, Done: true}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := first.CompleteDay(ctx, dto.CompleteDayInput{}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	second, _ := newInteractor(t, store, service.Options{})
	day, err := second.GetDay(ctx, 1)
	if err != nil {
		t.Fatalf("get day: %v", err)
	}
	if !day.Completed || !day.Tasks[2].Done || day.IsCurrent {
		t.Fatalf("reloaded day mismatch: %+v", day)
	}
	dash, _ := second.Dashboard(ctx)
	if dash.TotalXP != domain.TaskXP+domain.DayXP || dash.CurrentDay != 2 {
		t.Fatalf("reloaded dashboard mismatch: %+v", dash)
	}
}

func TestToggleTaskAwardsOnceAndRejectsBadIndex(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	uc, c := newInteractor(t, store, service.Options{})
	ctx := context.Background()

	for _, done := range []bool{true, false, true, true} {
		if _, err := uc.ToggleTask(ctx, dto.ToggleTaskInput{Day: 4, Index: 0, Done: done}); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
	if xp := storedRecord(t, store).TotalXP; xp != domain.TaskXP {
		t.Fatalf("expected one task award, got %d", xp)
	}

	_, err := uc.ToggleTask(ctx, dto.ToggleTaskInput{Day: 4, Index: len(c.Tasks), Done: true})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestNavigationClampsAtBounds(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t, newMemStore(), service.Options{})
	ctx := context.Background()
	view, err := uc.NavigateDay(ctx, -1)
	if err != nil || view.Day != 1 {
		t.Fatalf("prev from day 1: %+v, %v", view, err)
	}
	if _, err := uc.GoToDay(ctx, 100); err != nil {
		t.Fatalf("goto 100: %v", err)
	}
	view, _ = uc.NavigateDay(ctx, 1)
	if view.Day != 100 || !view.IsCurrent {
		t.Fatalf("next from day 100: %+v", view)
	}
	view, _ = uc.GoToDay(ctx, 150)
	if view.Day != 100 {
		t.Fatalf("goto clamp: %+v", view)
	}
}

func TestFailedSaveLeavesRecordUntouched(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	uc, _ := newInteractor(t, store, service.Options{})
	ctx := context.Background()
	if _, err := uc.GoToDay(ctx, 5); err != nil {
		t.Fatalf("go to: %v", err)
	}
	store.failPut = errors.New("read-only")

	if _, err := uc.CompleteDay(ctx, dto.CompleteDayInput{}); err == nil {
		t.Fatalf("expected save failure")
	}
	dash, _ := uc.Dashboard(ctx)
	if dash.CurrentDay != 5 || dash.CompletedCount != 0 || dash.TotalXP != 0 {
		t.Fatalf("failed save leaked into memory: %+v", dash)
	}
}

func TestResetRequiresConfirmationAndRestoresDefaults(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	uc, c := newInteractor(t, store, service.Options{})
	ctx := context.Background()
	for day := 1; day <= 8; day++ {
		if _, err := uc.CompleteDay(ctx, dto.CompleteDayInput{}); err != nil {
			t.Fatalf("complete %d: %v", day, err)
		}
	}
	if _, err := uc.SetTheme(ctx, "dark"); err != nil {
		t.Fatalf("theme: %v", err)
	}

	if _, err := uc.Reset(ctx, false); !errors.Is(err, apperrors.ErrConfirmationRequired) {
		t.Fatalf("expected confirmation error, got %v", err)
	}
	if storedRecord(t, store).TotalXP == 0 {
		t.Fatalf("unconfirmed reset must not touch the store")
	}

	dash, err := uc.Reset(ctx, true)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if dash.CurrentDay != 1 || dash.TotalXP != 0 || dash.CompletedCount != 0 || dash.Theme != "system" {
		t.Fatalf("unexpected dashboard after reset %+v", dash)
	}
	if len(store.deleted) != 1 || store.deleted[0] != storeKey {
		t.Fatalf("reset should clear %s before writing defaults, deleted %v", storeKey, store.deleted)
	}
	stored := storedRecord(t, store)
	stored.Normalize(c, now)
	if want := domain.NewRecord(c, now); !reflect.DeepEqual(stored, want) {
		t.Fatalf("persisted record differs from defaults:\n got %+v\nwant %+v", stored, want)
	}
}

func TestResetKeepsRecordWhenClearFails(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	uc, _ := newInteractor(t, store, service.Options{})
	ctx := context.Background()
	if _, err := uc.CompleteDay(ctx, dto.CompleteDayInput{}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	store.failDelete = errors.New("disk gone")

	if _, err := uc.Reset(ctx, true); err == nil {
		t.Fatalf("expected reset to fail when the key cannot be cleared")
	}
	dash, err := uc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.CompletedCount != 1 {
		t.Fatalf("failed reset must keep progress, got %+v", dash)
	}
}

func TestResetAdoptsDefaultsWhenWriteFailsAfterClear(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	uc, _ := newInteractor(t, store, service.Options{})
	ctx := context.Background()
	if _, err := uc.CompleteDay(ctx, dto.CompleteDayInput{}); err != nil {
		t.Fatalf("complete: %v", err)
	}
	store.failPut = errors.New("read-only")

	if _, err := uc.Reset(ctx, true); err == nil {
		t.Fatalf("expected the failed write to surface")
	}
	if _, ok := store.data[storeKey]; ok {
		t.Fatalf("key should have been cleared")
	}
	dash, err := uc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dash.CompletedCount != 0 || dash.TotalXP != 0 {
		t.Fatalf("in-memory record should match the cleared store, got %+v", dash)
	}
}

func TestPersistedRecordCarriesSchemaVersion(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	uc, _ := newInteractor(t, store, service.Options{})
	if _, err := uc.GoToDay(context.Background(), 3); err != nil {
		t.Fatalf("goto: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(store.data[storeKey], &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v, ok := raw["schemaVersion"].(float64); !ok || int(v) != domain.SchemaVersion {
		t.Fatalf("expected schemaVersion %d, got %v", domain.SchemaVersion, raw["schemaVersion"])
	}
}

func TestSessionAwardAndLoggedMinutes(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	uc, _ := newInteractor(t, store, service.Options{})
	ctx := context.Background()

	dash, err := uc.AwardSession(ctx, dto.AwardSessionInput{XP: 100, Hours: 0.5})
	if err != nil || dash.TotalXP != 100 || dash.TotalHours != 0.5 {
		t.Fatalf("award: %+v, %v", dash, err)
	}
	if _, err := uc.AwardSession(ctx, dto.AwardSessionInput{XP: -1}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("negative award: %v", err)
	}
	if err := uc.LogMinutes(ctx, dto.LogMinutesInput{Minutes: 60}); err != nil {
		t.Fatalf("log minutes: %v", err)
	}
	dash, _ = uc.Dashboard(ctx)
	if dash.TodayMinutes != 60 || dash.GoalPercent != 50 {
		t.Fatalf("unexpected goal progress %+v", dash)
	}
	out, _ := uc.CompleteDay(ctx, dto.CompleteDayInput{})
	if out.Dashboard.TotalHours != 1.5 {
		t.Fatalf("logged minutes not added at completion: %v", out.Dashboard.TotalHours)
	}
}

func TestSettings(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t, newMemStore(), service.Options{})
	ctx := context.Background()

	if _, err := uc.SetTheme(ctx, "sepia"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("unknown theme: %v", err)
	}
	s, err := uc.SetStartDate(ctx, "2026-03-01")
	if err != nil || s.StartDate != "2026-03-01" {
		t.Fatalf("start date: %+v, %v", s, err)
	}
	dash, _ := uc.Dashboard(ctx)
	if dash.CurrentDay != 10 {
		t.Fatalf("start date should derive day 10, got %d", dash.CurrentDay)
	}
	s, _ = uc.SetDailyGoal(ctx, 99)
	if s.DailyGoal != domain.MaxDailyGoal {
		t.Fatalf("daily goal not clamped: %d", s.DailyGoal)
	}
}

func TestFollowCalendarDerivesCurrentDayOnLoad(t *testing.T) {
	t.Parallel()
	store := newMemStore()
	store.data[storeKey] = []byte(`{"startDate":"2026-03-06","currentDay":1}`)
	uc, _ := newInteractor(t, store, service.Options{FollowCalendar: true})
	dash, _ := uc.Dashboard(context.Background())
	if dash.CurrentDay != 5 {
		t.Fatalf("expected calendar day 5, got %d", dash.CurrentDay)
	}
}

func TestViewsReflectProgress(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t, newMemStore(), service.Options{})
	ctx := context.Background()
	if _, err := uc.GoToDay(ctx, 25); err != nil {
		t.Fatalf("go to: %v", err)
	}
	if _, err := uc.CompleteDay(ctx, dto.CompleteDayInput{}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	progress, _ := uc.Progress(ctx)
	if len(progress.Calendar) != 100 || progress.Calendar[24].Status != "completed" || progress.Calendar[25].Status != "current" {
		t.Fatalf("unexpected calendar around day 25: %+v %+v", progress.Calendar[24], progress.Calendar[25])
	}
	if progress.Phases[0].Completed != 1 || math.Abs(progress.Phases[0].Percent-4) > 1e-9 {
		t.Fatalf("unexpected phase 1 progress %+v", progress.Phases[0])
	}

	projects, _ := uc.Projects(ctx)
	if projects[0].Status != "Completed" || projects[1].Status != "In Progress" {
		t.Fatalf("unexpected project statuses %+v", projects[:2])
	}

	res, err := uc.Resources(ctx, 0)
	if err != nil || res.PhaseNumber != 2 || len(res.Documentation) == 0 {
		t.Fatalf("resources for current phase: %+v, %v", res, err)
	}
	if _, err := uc.Resources(ctx, 9); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown phase: %v", err)
	}
}

func TestExportWritesSnapshotAndJournal(t *testing.T) {
	t.Parallel()
	uc, _ := newInteractor(t, newMemStore(), service.Options{})
	ctx := context.Background()
	dir := t.TempDir()
	if _, err := uc.CompleteDay(ctx, dto.CompleteDayInput{}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	out, err := uc.Export(ctx, dto.ExportInput{Dir: dir})
	if err != nil {
		t.Fatalf("export json: %v", err)
	}
	if out.Format != "json" || len(out.Paths) != 1 || out.Paths[0] != filepath.Join(dir, "100-days-progress-2026-03-10.json") {
		t.Fatalf("unexpected json export %+v", out)
	}

	out, err = uc.Export(ctx, dto.ExportInput{Format: "markdown", Dir: dir})
	if err != nil {
		t.Fatalf("export markdown: %v", err)
	}
	if len(out.Paths) != 1 {
		t.Fatalf("expected one journal note, got %v", out.Paths)
	}
	if _, err := os.Stat(filepath.Join(dir, "journal", "day-001-html-fundamentals.md")); err != nil {
		t.Fatalf("journal note missing: %v", err)
	}

	if _, err := uc.Export(ctx, dto.ExportInput{Format: "pdf", Dir: dir}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("unknown format: %v", err)
	}
}
