package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/treefix50/learntube/internal/catalog"
	"github.com/treefix50/learntube/internal/learning"
)

// Routes under /videos/{id}/notes[/{noteID}|/export|/import|/tag]
func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request, id string, rest []string) {
	if _, ok := catalog.VideoByID(id); !ok {
		s.writeError(w, errNotFound, http.StatusNotFound)
		return
	}

	if len(rest) == 0 || rest[0] == "" {
		s.handleNoteCollection(w, r, id)
		return
	}
	switch rest[0] {
	case "export":
		s.handleNoteExport(w, r, id)
	case "import":
		s.handleNoteImport(w, r, id)
	case "tag":
		s.handleNoteTag(w, r, id)
	default:
		s.handleNoteDetail(w, r, id, rest[0])
	}
}

func (s *Server) handleNoteCollection(w http.ResponseWriter, r *http.Request, id string) {
	if s.handleOptions(w, r, "GET, POST, OPTIONS") {
		return
	}
	if s.store == nil {
		s.writeError(w, "not available without database", http.StatusNotImplemented)
		return
	}

	switch r.Method {
	case http.MethodGet:
		notes, err := s.store.NotesFor(id)
		if err != nil {
			s.writeError(w, errInternal, http.StatusInternalServerError)
			return
		}
		if r.URL.Query().Get("order") == "timestamp" {
			learning.SortNotesByTimestamp(notes)
		} else {
			learning.SortNotesNewestFirst(notes)
		}
		if notes == nil {
			notes = []learning.Note{}
		}
		writeJSON(w, notes)

	case http.MethodPost:
		if s.readOnly {
			s.writeError(w, "read-only mode", http.StatusForbidden)
			return
		}
		if allowed, wait := s.noteLimiter.Allow("note:" + id); !allowed {
			w.Header().Set("Retry-After", strconv.FormatFloat(wait.Seconds(), 'f', 3, 64))
			s.writeError(w, "slow down", http.StatusTooManyRequests)
			return
		}

		var payload struct {
			Content   string   `json:"content"`
			Timestamp *float64 `json:"timestamp"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			s.writeError(w, "bad request", http.StatusBadRequest)
			return
		}

		// The timestamp is captured at submission time: explicit value if
		// the client sent one, else the session's current display time.
		timestamp := 0.0
		if payload.Timestamp != nil {
			timestamp = *payload.Timestamp
		} else if session, ok := s.sessions.Get(id); ok {
			timestamp = session.DisplayTime()
		}

		note, ok := learning.NewNote(payload.Content, timestamp, time.Now())
		if !ok {
			s.writeError(w, "content is required", http.StatusBadRequest)
			return
		}
		if err := s.store.SaveNote(id, note); err != nil {
			s.writeError(w, errInternal, http.StatusInternalServerError)
			return
		}

		writeJSON(w, struct {
			learning.Note
			Display string `json:"display"`
		}{Note: note, Display: learning.FormatTimestamp(note.Timestamp)})

	default:
		s.methodNotAllowed(w)
	}
}

func (s *Server) handleNoteDetail(w http.ResponseWriter, r *http.Request, id, noteID string) {
	if s.handleOptions(w, r, "DELETE, OPTIONS") {
		return
	}
	if r.Method != http.MethodDelete {
		s.methodNotAllowed(w)
		return
	}
	if s.store == nil {
		s.writeError(w, "not available without database", http.StatusNotImplemented)
		return
	}
	if s.readOnly {
		s.writeError(w, "read-only mode", http.StatusForbidden)
		return
	}

	deleted, err := s.store.DeleteNote(id, noteID)
	if err != nil {
		s.writeError(w, errInternal, http.StatusInternalServerError)
		return
	}
	if !deleted {
		s.writeError(w, errNotFound, http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNoteExport(w http.ResponseWriter, r *http.Request, id string) {
	if s.handleOptions(w, r, "GET, OPTIONS") {
		return
	}
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w)
		return
	}
	if s.store == nil {
		s.writeError(w, "not available without database", http.StatusNotImplemented)
		return
	}

	notes, err := s.store.NotesFor(id)
	if err != nil {
		s.writeError(w, errInternal, http.StatusInternalServerError)
		return
	}
	learning.SortNotesByTimestamp(notes)
	data, err := learning.ExportNotes(notes)
	if err != nil {
		s.writeError(w, errInternal, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="notes-`+id+`.json"`)
	_, _ = w.Write(data)
}

// POST /videos/{id}/notes/import replaces the video's notes with the
// uploaded export. A payload that fails to parse changes nothing.
func (s *Server) handleNoteImport(w http.ResponseWriter, r *http.Request, id string) {
	if s.handleOptions(w, r, "POST, OPTIONS") {
		return
	}
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w)
		return
	}
	if s.store == nil {
		s.writeError(w, "not available without database", http.StatusNotImplemented)
		return
	}
	if s.readOnly {
		s.writeError(w, "read-only mode", http.StatusForbidden)
		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		s.writeError(w, "bad request", http.StatusBadRequest)
		return
	}
	notes, err := learning.ImportNotes(data)
	if err != nil {
		s.writeError(w, "corrupted notes payload", http.StatusBadRequest)
		return
	}
	if err := s.store.ReplaceNotes(id, notes); err != nil {
		s.writeError(w, errInternal, http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]int{"imported": len(notes)})
}

// POST /videos/{id}/notes/tag inserts a timestamp tag for the current
// display time into a draft note body at the given cursor position.
func (s *Server) handleNoteTag(w http.ResponseWriter, r *http.Request, id string) {
	if s.handleOptions(w, r, "POST, OPTIONS") {
		return
	}
	if r.Method != http.MethodPost {
		s.methodNotAllowed(w)
		return
	}
	session, ok := s.sessions.Get(id)
	if !ok {
		s.writeError(w, errNoSession, http.StatusNotFound)
		return
	}

	var payload struct {
		Body   string `json:"body"`
		Cursor int    `json:"cursor"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, "bad request", http.StatusBadRequest)
		return
	}

	body, cursor := learning.InsertTimestampTag(payload.Body, payload.Cursor, session.DisplayTime())
	writeJSON(w, map[string]any{"body": body, "cursor": cursor})
}
