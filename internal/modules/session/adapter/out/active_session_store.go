package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hdt/internal/modules/session/domain"
	sessionout "hdt/internal/modules/session/port/out"
	apperrors "hdt/internal/platform/errors"
)

type activeSnapshot struct {
	SchemaVersion int          `json:"schema_version"`
	Timer         domain.Timer `json:"timer"`
}

type FileActiveSessionStore struct {
	path string
}

func NewFileActiveSessionStore(path string) sessionout.ActiveSessionStore {
	return &FileActiveSessionStore{path: path}
}

func (s *FileActiveSessionStore) SaveActive(_ context.Context, timer domain.Timer) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create active session dir: %w", err)
	}
	payload, err := json.MarshalIndent(activeSnapshot{SchemaVersion: domain.SchemaVersion, Timer: timer}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal active session: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("write active session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("commit active session: %w", err)
	}
	return nil
}

// LoadActive treats an unreadable snapshot as no session at all.
func (s *FileActiveSessionStore) LoadActive(_ context.Context) (domain.Timer, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Timer{}, apperrors.ErrNoActiveSession
		}
		return domain.Timer{}, fmt.Errorf("read active session: %w", err)
	}
	snapshot := activeSnapshot{}
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return domain.Timer{}, apperrors.ErrNoActiveSession
	}
	t := snapshot.Timer
	if t.ID == "" || t.Mode.Validate() != nil || t.State == domain.StateIdle {
		return domain.Timer{}, apperrors.ErrNoActiveSession
	}
	return t, nil
}

func (s *FileActiveSessionStore) ClearActive(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("clear active session: %w", err)
	}
	return nil
}

// SystemTicker wraps time.NewTicker.
func SystemTicker(every time.Duration) (<-chan time.Time, func()) {
	ticker := time.NewTicker(every)
	return ticker.C, ticker.Stop
}
