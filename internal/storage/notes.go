package storage

import (
	"fmt"
	"log"
	"time"

	"github.com/treefix50/learntube/internal/learning"
)

// Creation times are stored at millisecond precision so that notes taken
// within the same second keep their relative order across a restart.

func (s *Store) SaveNote(videoID string, note learning.Note) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("storage: missing database connection")
	}
	if s.readOnly {
		return fmt.Errorf("storage: read-only mode")
	}
	_, err := s.db.Exec(`
		INSERT INTO notes (id, video_id, content, timestamp, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			content = excluded.content,
			timestamp = excluded.timestamp`,
		note.ID, videoID, note.Content, note.Timestamp, note.CreatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("storage: save note %s: %w", note.ID, err)
	}
	return nil
}

func (s *Store) DeleteNote(videoID, noteID string) (bool, error) {
	if s == nil || s.db == nil {
		return false, fmt.Errorf("storage: missing database connection")
	}
	if s.readOnly {
		return false, fmt.Errorf("storage: read-only mode")
	}
	result, err := s.db.Exec(`DELETE FROM notes WHERE video_id = ? AND id = ?`, videoID, noteID)
	if err != nil {
		return false, fmt.Errorf("storage: delete note %s: %w", noteID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// NotesFor returns the notes for a video, newest first. Rows that fail to
// scan are skipped rather than failing the whole list.
func (s *Store) NotesFor(videoID string) ([]learning.Note, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("storage: missing database connection")
	}
	rows, err := s.db.Query(`
		SELECT id, content, timestamp, created_at
		FROM notes
		WHERE video_id = ?
		ORDER BY created_at DESC, id`, videoID)
	if err != nil {
		return nil, fmt.Errorf("storage: list notes for %s: %w", videoID, err)
	}
	defer rows.Close()

	var notes []learning.Note
	for rows.Next() {
		var (
			note      learning.Note
			createdAt int64
		)
		if err := rows.Scan(&note.ID, &note.Content, &note.Timestamp, &createdAt); err != nil {
			log.Printf("level=warn msg=\"skipping unreadable note row\" video=%s error=%q", videoID, err)
			continue
		}
		note.CreatedAt = time.UnixMilli(createdAt).UTC()
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return notes, nil
}

// ReplaceNotes swaps a video's notes for an imported set in one transaction.
func (s *Store) ReplaceNotes(videoID string, notes []learning.Note) (err error) {
	if s == nil || s.db == nil {
		return fmt.Errorf("storage: missing database connection")
	}
	if s.readOnly {
		return fmt.Errorf("storage: read-only mode")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: replace notes for %s: %w", videoID, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.Exec(`DELETE FROM notes WHERE video_id = ?`, videoID); err != nil {
		return fmt.Errorf("storage: replace notes for %s: %w", videoID, err)
	}
	for _, note := range notes {
		if _, err = tx.Exec(`
			INSERT INTO notes (id, video_id, content, timestamp, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			note.ID, videoID, note.Content, note.Timestamp, note.CreatedAt.UnixMilli()); err != nil {
			return fmt.Errorf("storage: replace notes for %s: %w", videoID, err)
		}
	}
	return tx.Commit()
}
