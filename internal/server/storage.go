package server

import (
	"time"

	"github.com/treefix50/learntube/internal/learning"
)

// LearningStore defines the storage operations used for notes and resume
// positions. A nil store is valid: the server then serves the catalog and
// live session state only.
type LearningStore interface {
	ReadOnly() bool
	SaveNote(videoID string, note learning.Note) error
	DeleteNote(videoID, noteID string) (bool, error)
	NotesFor(videoID string) ([]learning.Note, error)
	ReplaceNotes(videoID string, notes []learning.Note) error
	UpsertResume(videoID string, positionSeconds, durationSeconds float64, updatedAt time.Time) error
	GetResume(videoID string) (Resume, bool, error)
	DeleteResume(videoID string) error
}

// Resume is the stored last-watched position for a video.
type Resume struct {
	VideoID         string    `json:"videoId"`
	PositionSeconds float64   `json:"positionSeconds"`
	DurationSeconds float64   `json:"durationSeconds"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
