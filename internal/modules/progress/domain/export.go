package domain

import (
	"fmt"
	"time"

	curriculum "hdt/internal/modules/curriculum/domain"
	"hdt/internal/platform/slug"
)

type ExportFormat string

const (
	ExportJSON     ExportFormat = "json"
	ExportMarkdown ExportFormat = "markdown"
)

func (f ExportFormat) Validate() error {
	switch f {
	case ExportJSON, ExportMarkdown:
		return nil
	default:
		return fmt.Errorf("unsupported export format %q", string(f))
	}
}

// Snapshot is the downloadable copy of the record.
type Snapshot struct {
	ID         string    `json:"exportId"`
	ExportedAt time.Time `json:"exportedAt"`
	Record
}

// SnapshotFileName is deterministic for a given calendar date.
func SnapshotFileName(at time.Time) string {
	return fmt.Sprintf("100-days-progress-%s.json", at.Format(DateLayout))
}

// JournalEntry is one completed day rendered as a markdown note.
type JournalEntry struct {
	Day           int
	Topic         string
	Phase         string
	CompletedAt   string
	Minutes       int
	Understanding int
	Notes         string
	Challenges    string
	Tasks         []string
}

func (e JournalEntry) FileName() string {
	return fmt.Sprintf("day-%03d-%s.md", e.Day, slug.Make(e.Topic))
}

// Journal builds entries for every completed day in ascending order.
func Journal(c curriculum.Curriculum, r Record) []JournalEntry {
	days := r.CompletedDays.Sorted()
	entries := make([]JournalEntry, 0, len(days))
	for _, d := range days {
		var tasks []string
		for _, idx := range r.CompletedTasks[d].Sorted() {
			tasks = append(tasks, c.Tasks[idx])
		}
		entries = append(entries, JournalEntry{
			Day:           d,
			Topic:         c.Day(d).Topic,
			Phase:         c.PhaseFor(d).Name,
			CompletedAt:   r.CompletedAt[d],
			Minutes:       r.DayMinutes[d],
			Understanding: r.Understanding[d],
			Notes:         r.Notes[d],
			Challenges:    r.Challenges[d],
			Tasks:         tasks,
		})
	}
	return entries
}
