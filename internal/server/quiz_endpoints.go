package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/treefix50/learntube/internal/catalog"
	"github.com/treefix50/learntube/internal/learning"
)

// Routes under /videos/{id}/quizzes[/{quizID}/{action}]
func (s *Server) handleQuizzes(w http.ResponseWriter, r *http.Request, id string, rest []string) {
	if len(rest) == 0 || rest[0] == "" {
		s.handleQuizList(w, r, id)
		return
	}
	if len(rest) != 2 {
		s.writeError(w, errNotFound, http.StatusNotFound)
		return
	}
	s.handleQuizAction(w, r, id, rest[0], rest[1])
}

func (s *Server) handleQuizList(w http.ResponseWriter, r *http.Request, id string) {
	if s.handleOptions(w, r, "GET, OPTIONS") {
		return
	}
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w)
		return
	}
	if _, ok := catalog.VideoByID(id); !ok {
		s.writeError(w, errNotFound, http.StatusNotFound)
		return
	}
	writeJSON(w, catalog.QuizzesFor(id))
}

func (s *Server) handleQuizAction(w http.ResponseWriter, r *http.Request, id, quizID, action string) {
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
	tracker := session.Quizzes()

	var err error
	switch action {
	case "take":
		err = tracker.Take(quizID)
		if err == nil {
			writeJSON(w, map[string]any{"quizId": quizID, "answers": tracker.Answers(quizID)})
			return
		}

	case "dismiss":
		err = tracker.Dismiss(quizID)
		if err == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

	case "submit":
		var payload struct {
			Answers map[string]int `json:"answers"`
		}
		if decodeErr := json.NewDecoder(r.Body).Decode(&payload); decodeErr != nil {
			s.writeError(w, "bad request", http.StatusBadRequest)
			return
		}
		var score, total int
		score, total, err = tracker.Submit(quizID, payload.Answers, time.Now())
		if err == nil {
			completed, quizCount := tracker.Summary()
			writeJSON(w, map[string]any{
				"score": score,
				"total": total,
				"progress": quizProgress{
					Completed: completed,
					Total:     quizCount,
				},
			})
			return
		}

	case "retry":
		err = tracker.Retry(quizID)
		if err == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}

	default:
		s.writeError(w, errNotFound, http.StatusNotFound)
		return
	}

	if errors.Is(err, learning.ErrUnknownQuiz) {
		s.writeError(w, "unknown quiz", http.StatusNotFound)
		return
	}
	s.writeError(w, errInternal, http.StatusInternalServerError)
}
