package learning

import (
	"testing"
	"time"
)

func TestNewNoteCapturesDisplayTime(t *testing.T) {
	now := time.Unix(1700000000, 0)
	n, ok := NewNote("remember this", 125.4, now)
	if !ok {
		t.Fatalf("NewNote() rejected valid content")
	}
	if n.Timestamp != 125.4 || n.Content != "remember this" || n.ID == "" {
		t.Fatalf("unexpected note: %+v", n)
	}

	if _, ok := NewNote("   \n", 10, now); ok {
		t.Fatalf("NewNote() accepted whitespace-only content")
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{9, "0:09"},
		{65, "1:05"},
		{959.9, "15:59"},
		{3600, "1:00:00"},
		{3725, "1:02:05"},
		{-3, "0:00"},
	}
	for _, tt := range tests {
		if got := FormatTimestamp(tt.seconds); got != tt.want {
			t.Fatalf("FormatTimestamp(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestInsertTimestampTag(t *testing.T) {
	body, cursor := InsertTimestampTag("see  for details", 4, 65)
	if body != "see [1:05]  for details" {
		t.Fatalf("body = %q", body)
	}
	if cursor != 4+len("[1:05] ") {
		t.Fatalf("cursor = %d", cursor)
	}

	// Out-of-range cursors clamp.
	body, _ = InsertTimestampTag("x", 99, 0)
	if body != "x[0:00] " {
		t.Fatalf("clamped body = %q", body)
	}
	body, _ = InsertTimestampTag("x", -1, 0)
	if body != "[0:00] x" {
		t.Fatalf("clamped body = %q", body)
	}
}

func TestNoteOrderings(t *testing.T) {
	base := time.Unix(1700000000, 0)
	notes := []Note{
		{ID: "a", Timestamp: 300, CreatedAt: base},
		{ID: "b", Timestamp: 100, CreatedAt: base.Add(time.Minute)},
		{ID: "c", Timestamp: 100, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "d", Timestamp: 200, CreatedAt: base.Add(3 * time.Minute)},
	}

	newest := append([]Note(nil), notes...)
	SortNotesNewestFirst(newest)
	if got := ids(newest); got != "d,c,b,a" {
		t.Fatalf("newest-first order = %s, want d,c,b,a", got)
	}

	byTime := append([]Note(nil), notes...)
	SortNotesByTimestamp(byTime)
	// Identical timestamps group together in creation order.
	if got := ids(byTime); got != "b,c,d,a" {
		t.Fatalf("timestamp order = %s, want b,c,d,a", got)
	}
}

func ids(notes []Note) string {
	out := ""
	for i, n := range notes {
		if i > 0 {
			out += ","
		}
		out += n.ID
	}
	return out
}

func TestExportImportRoundTrip(t *testing.T) {
	base := time.Unix(1700000000, 0).UTC()
	notes := []Note{
		{ID: "a", Content: "first", Timestamp: 12.5, CreatedAt: base},
		{ID: "b", Content: "second [1:05] tag", Timestamp: 65, CreatedAt: base.Add(time.Hour)},
	}

	data, err := ExportNotes(notes)
	if err != nil {
		t.Fatalf("ExportNotes() error = %v", err)
	}
	back, err := ImportNotes(data)
	if err != nil {
		t.Fatalf("ImportNotes() error = %v", err)
	}
	if len(back) != len(notes) {
		t.Fatalf("round trip len = %d, want %d", len(back), len(notes))
	}
	for i := range notes {
		if back[i].ID != notes[i].ID || back[i].Content != notes[i].Content || back[i].Timestamp != notes[i].Timestamp {
			t.Fatalf("round trip mismatch at %d: %+v vs %+v", i, back[i], notes[i])
		}
		if !back[i].CreatedAt.Equal(notes[i].CreatedAt) {
			t.Fatalf("createdAt lost precision at %d", i)
		}
	}
}

func TestImportCorruptedPayload(t *testing.T) {
	if _, err := ImportNotes([]byte(`{"not":"a list"`)); err == nil {
		t.Fatalf("ImportNotes() accepted corrupted payload")
	}
}
