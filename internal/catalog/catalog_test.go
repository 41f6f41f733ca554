package catalog

import "testing"

func TestVideoByID(t *testing.T) {
	v, ok := VideoByID("1")
	if !ok {
		t.Fatalf("VideoByID(1) not found")
	}
	if v.ChannelName != "Code with Mosh" {
		t.Fatalf("unexpected channel: got %q", v.ChannelName)
	}

	if _, ok := VideoByID("does-not-exist"); ok {
		t.Fatalf("expected miss for unknown id")
	}
}

func TestRelatedExcludesSelf(t *testing.T) {
	related := Related("1", 5)
	if len(related) != 5 {
		t.Fatalf("Related() len = %d, want 5", len(related))
	}
	for _, v := range related {
		if v.ID == "1" {
			t.Fatalf("Related() must not include the video itself")
		}
	}
}

func TestChaptersForFallsBackToDefault(t *testing.T) {
	specific := ChaptersFor("2")
	if len(specific) != 7 {
		t.Fatalf("chapters for video 2: got %d, want 7", len(specific))
	}

	fallback := ChaptersFor("999")
	if len(fallback) == 0 {
		t.Fatalf("expected default chapters for unknown id")
	}
	if fallback[0].Title != "Introduction" {
		t.Fatalf("unexpected default first chapter: %q", fallback[0].Title)
	}
}

func TestChaptersAreOrderedAndContiguous(t *testing.T) {
	for _, id := range []string{"1", "2", "3", "4", "5", "default"} {
		chapters := ChaptersFor(id)
		for i := 1; i < len(chapters); i++ {
			prev, cur := chapters[i-1], chapters[i]
			if cur.TimeStart <= prev.TimeStart {
				t.Fatalf("video %s: chapters out of order at %d", id, i)
			}
			if cur.TimeStart != prev.TimeEnd+1 {
				t.Fatalf("video %s: gap between chapter %d and %d", id, i-1, i)
			}
		}
	}
}

func TestTotalDuration(t *testing.T) {
	if got := TotalDuration(ChaptersFor("1")); got != 960 {
		t.Fatalf("TotalDuration(video 1) = %v, want 960", got)
	}
	if got := TotalDuration(nil); got != 0 {
		t.Fatalf("TotalDuration(nil) = %v, want 0", got)
	}
}

func TestQuizzesForFallsBackToDefault(t *testing.T) {
	quizzes := QuizzesFor("unknown")
	if len(quizzes) != 2 {
		t.Fatalf("default quizzes: got %d, want 2", len(quizzes))
	}
	if quizzes[0].Title != "Topic Understanding Check" {
		t.Fatalf("unexpected default quiz title: %q", quizzes[0].Title)
	}
}

func TestYouTubeID(t *testing.T) {
	tests := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://www.youtube.com/watch?v=ZVnjOPwW4ZA", "ZVnjOPwW4ZA", true},
		{"https://youtu.be/4UZrsTqkcW4", "4UZrsTqkcW4", true},
		{"https://www.youtube.com/embed/_uQrJ0TkZlc", "_uQrJ0TkZlc", true},
		{"https://example.com/video.mp4", "", false},
		{"https://www.youtube.com/watch?v=short", "", false},
	}
	for _, tt := range tests {
		got, ok := YouTubeID(tt.url)
		if ok != tt.ok || got != tt.want {
			t.Fatalf("YouTubeID(%q) = %q, %v; want %q, %v", tt.url, got, ok, tt.want, tt.ok)
		}
	}
}
