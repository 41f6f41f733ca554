package learning

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Note is a user note tied to a playback position. The timestamp is the
// display time at the moment of submission, not at first keystroke.
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Timestamp float64   `json:"timestamp"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewNote creates a note stamped with the current display time. Empty or
// whitespace-only content is rejected by returning false.
func NewNote(content string, displayTime float64, now time.Time) (Note, bool) {
	if strings.TrimSpace(content) == "" {
		return Note{}, false
	}
	if displayTime < 0 {
		displayTime = 0
	}
	return Note{
		ID:        uuid.NewString(),
		Content:   content,
		Timestamp: displayTime,
		CreatedAt: now,
	}, true
}

// FormatTimestamp renders seconds as M:SS, or H:MM:SS for times of an hour
// or more.
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}

// InsertTimestampTag inserts a bracketed timestamp tag at the cursor byte
// offset and returns the new body plus the cursor position just past the
// inserted tag, so the user keeps typing without leaving the field.
func InsertTimestampTag(body string, cursor int, seconds float64) (string, int) {
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(body) {
		cursor = len(body)
	}
	tag := "[" + FormatTimestamp(seconds) + "] "
	return body[:cursor] + tag + body[cursor:], cursor + len(tag)
}

// SortNotesNewestFirst orders notes by creation time, newest first. This is
// the default panel ordering.
func SortNotesNewestFirst(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt.After(notes[j].CreatedAt)
	})
}

// SortNotesByTimestamp orders notes ascending by playback timestamp; notes
// sharing a timestamp group together in creation order.
func SortNotesByTimestamp(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if notes[i].Timestamp != notes[j].Timestamp {
			return notes[i].Timestamp < notes[j].Timestamp
		}
		return notes[i].CreatedAt.Before(notes[j].CreatedAt)
	})
}

// ExportNotes serializes notes the same way the panel persists them.
func ExportNotes(notes []Note) ([]byte, error) {
	return json.Marshal(notes)
}

// ImportNotes parses a serialized note list. Callers treat an error as a
// corrupted payload and start with an empty list instead of failing.
func ImportNotes(data []byte) ([]Note, error) {
	var notes []Note
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}
