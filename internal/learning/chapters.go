// Package learning contains the time-indexed feature drivers that consume
// the sync engine's display time: chapter highlighting, quiz triggering and
// note timestamping.
package learning

import (
	"sync"

	"github.com/treefix50/learntube/internal/catalog"
)

// ChapterHighlighter resolves the display time to the chapter it falls in.
// When the time runs past the last chapter it keeps the previous match
// highlighted rather than none; the fixture lists are contiguous, so a
// stale highlight only occurs at the very end.
type ChapterHighlighter struct {
	mu       sync.Mutex
	chapters []catalog.Chapter
	current  catalog.Chapter
	matched  bool
}

// NewChapterHighlighter takes the ordered, non-overlapping chapter list of
// the active video.
func NewChapterHighlighter(chapters []catalog.Chapter) *ChapterHighlighter {
	return &ChapterHighlighter{chapters: chapters}
}

// Update recomputes the highlighted chapter for the given display time and
// returns it. The first chapter satisfying timeStart <= t <= timeEnd wins.
func (h *ChapterHighlighter) Update(displayTime float64) (catalog.Chapter, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.chapters {
		if displayTime >= c.TimeStart && displayTime <= c.TimeEnd {
			h.current = c
			h.matched = true
			break
		}
	}
	return h.current, h.matched
}

// Current returns the last highlighted chapter without recomputing.
func (h *ChapterHighlighter) Current() (catalog.Chapter, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current, h.matched
}
