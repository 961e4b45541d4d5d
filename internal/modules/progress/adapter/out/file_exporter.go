package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hdt/internal/modules/progress/domain"
	progressout "hdt/internal/modules/progress/port/out"
	"hdt/internal/platform/markdown"
)

const journalDir = "journal"

type FileExporter struct{}

func NewFileExporter() progressout.Exporter {
	return FileExporter{}
}

func (FileExporter) WriteSnapshot(_ context.Context, dir string, snapshot domain.Snapshot) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	payload, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	path := filepath.Join(dir, domain.SnapshotFileName(snapshot.ExportedAt))
	if err := os.WriteFile(path, append(payload, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

type journalFrontmatter struct {
	Day           int      `yaml:"day"`
	Topic         string   `yaml:"topic"`
	Phase         string   `yaml:"phase"`
	CompletedAt   string   `yaml:"completed_at,omitempty"`
	Minutes       int      `yaml:"minutes"`
	Understanding int      `yaml:"understanding,omitempty"`
	Tasks         []string `yaml:"tasks,omitempty"`
}

func (FileExporter) WriteJournal(ctx context.Context, dir string, entries []domain.JournalEntry) ([]string, error) {
	target := filepath.Join(dir, journalDir)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	paths := make([]string, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		content, err := markdown.Render(journalFrontmatter{
			Day:           entry.Day,
			Topic:         entry.Topic,
			Phase:         entry.Phase,
			CompletedAt:   entry.CompletedAt,
			Minutes:       entry.Minutes,
			Understanding: entry.Understanding,
			Tasks:         entry.Tasks,
		}, journalBody(entry))
		if err != nil {
			return paths, fmt.Errorf("render day %d: %w", entry.Day, err)
		}
		path := filepath.Join(target, entry.FileName())
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return paths, fmt.Errorf("write day %d: %w", entry.Day, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func journalBody(entry domain.JournalEntry) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "# Day %d: %s\n", entry.Day, entry.Topic)
	if strings.TrimSpace(entry.Notes) != "" {
		b.WriteString("\n## Notes\n\n")
		b.WriteString(strings.TrimSpace(entry.Notes))
		b.WriteString("\n")
	}
	if strings.TrimSpace(entry.Challenges) != "" {
		b.WriteString("\n## Challenges\n\n")
		b.WriteString(strings.TrimSpace(entry.Challenges))
		b.WriteString("\n")
	}
	return b.String()
}
