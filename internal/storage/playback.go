package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/treefix50/learntube/internal/server"
)

// UpsertResume records the last watched position for a video so the next
// session can offer to pick up where the viewer left off.
func (s *Store) UpsertResume(videoID string, positionSeconds, durationSeconds float64, updatedAt time.Time) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("storage: missing database connection")
	}
	if s.readOnly {
		return fmt.Errorf("storage: read-only mode")
	}
	if positionSeconds < 0 {
		positionSeconds = 0
	}
	_, err := s.db.Exec(`
		INSERT INTO playback_state (video_id, position_seconds, duration_seconds, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(video_id) DO UPDATE SET
			position_seconds = excluded.position_seconds,
			duration_seconds = excluded.duration_seconds,
			updated_at = excluded.updated_at`,
		videoID, positionSeconds, durationSeconds, updatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("storage: upsert resume for %s: %w", videoID, err)
	}
	return nil
}

func (s *Store) GetResume(videoID string) (server.Resume, bool, error) {
	if s == nil || s.db == nil {
		return server.Resume{}, false, fmt.Errorf("storage: missing database connection")
	}
	var (
		resume    server.Resume
		updatedAt int64
	)
	err := s.db.QueryRow(`
		SELECT video_id, position_seconds, duration_seconds, updated_at
		FROM playback_state
		WHERE video_id = ?`, videoID).
		Scan(&resume.VideoID, &resume.PositionSeconds, &resume.DurationSeconds, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return server.Resume{}, false, nil
	}
	if err != nil {
		return server.Resume{}, false, fmt.Errorf("storage: get resume for %s: %w", videoID, err)
	}
	resume.UpdatedAt = time.UnixMilli(updatedAt).UTC()
	return resume, true, nil
}

func (s *Store) DeleteResume(videoID string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("storage: missing database connection")
	}
	if s.readOnly {
		return fmt.Errorf("storage: read-only mode")
	}
	if _, err := s.db.Exec(`DELETE FROM playback_state WHERE video_id = ?`, videoID); err != nil {
		return fmt.Errorf("storage: delete resume for %s: %w", videoID, err)
	}
	return nil
}
