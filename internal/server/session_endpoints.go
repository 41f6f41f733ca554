package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/treefix50/learntube/internal/catalog"
	"github.com/treefix50/learntube/internal/learning"
	"github.com/treefix50/learntube/internal/player"
	"github.com/treefix50/learntube/internal/playsync"
)

type seekCommand struct {
	Time float64 `json:"time"`
}

type quizProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type sessionView struct {
	VideoID        string                 `json:"videoId"`
	Generation     string                 `json:"generation"`
	PlayerState    string                 `json:"playerState"`
	Sync           playsync.State         `json:"sync"`
	CurrentChapter *catalog.Chapter       `json:"currentChapter,omitempty"`
	ActiveQuiz     *learning.Notification `json:"activeQuiz,omitempty"`
	PendingSeek    *seekCommand           `json:"pendingSeek,omitempty"`
	QuizProgress   quizProgress           `json:"quizProgress"`
}

func (s *Server) sessionView(session *Session, now time.Time) sessionView {
	view := sessionView{
		VideoID:     session.videoID,
		Generation:  session.Generation(),
		PlayerState: session.PlayerState().String(),
		Sync:        session.engine.State(),
	}
	if chapter, ok := session.CurrentChapter(); ok {
		view.CurrentChapter = &chapter
	}
	view.ActiveQuiz = session.ActiveQuiz(now)
	if target, ok := session.TakePendingSeek(); ok {
		view.PendingSeek = &seekCommand{Time: target}
	}
	completed, total := session.Quizzes().Summary()
	view.QuizProgress = quizProgress{Completed: completed, Total: total}
	return view
}

// Routes under /videos/{id}/session[/sample|/seek|/state]
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request, id string, rest []string) {
	if len(rest) == 0 || rest[0] == "" {
		s.handleSessionRoot(w, r, id)
		return
	}
	switch rest[0] {
	case "sample":
		s.handleSessionSample(w, r, id)
	case "seek":
		s.handleSessionSeek(w, r, id)
	case "state":
		s.handleSessionState(w, r, id)
	default:
		s.writeError(w, errNotFound, http.StatusNotFound)
	}
}

func (s *Server) handleSessionRoot(w http.ResponseWriter, r *http.Request, id string) {
	if s.handleOptions(w, r, "GET, POST, DELETE, OPTIONS") {
		return
	}
	switch r.Method {
	case http.MethodPost:
		session, err := s.sessions.Open(id)
		if err != nil {
			s.writeError(w, errNotFound, http.StatusNotFound)
			return
		}
		writeJSON(w, s.sessionView(session, time.Now()))

	case http.MethodGet:
		session, ok := s.sessions.Get(id)
		if !ok {
			s.writeError(w, errNoSession, http.StatusNotFound)
			return
		}
		writeJSON(w, s.sessionView(session, time.Now()))

	case http.MethodDelete:
		if !s.sessions.Close(id) {
			s.writeError(w, errNoSession, http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		s.methodNotAllowed(w)
	}
}

func (s *Server) handleSessionSample(w http.ResponseWriter, r *http.Request, id string) {
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

	if allowed, wait := s.sampleLimiter.Allow("sample:" + id); !allowed {
		w.Header().Set("Retry-After", strconv.FormatFloat(wait.Seconds(), 'f', 3, 64))
		s.writeError(w, "too many samples", http.StatusTooManyRequests)
		return
	}

	var payload struct {
		Time       float64 `json:"time"`
		Duration   float64 `json:"duration"`
		Generation string  `json:"generation"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, "bad request", http.StatusBadRequest)
		return
	}

	if !session.ApplySample(payload.Time, payload.Duration, payload.Generation, time.Now()) {
		s.writeError(w, "stale generation", http.StatusConflict)
		return
	}
	writeJSON(w, session.engine.State())
}

func (s *Server) handleSessionSeek(w http.ResponseWriter, r *http.Request, id string) {
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

	var payload playsync.SeekRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, "bad request", http.StatusBadRequest)
		return
	}
	if payload.Time < 0 {
		s.writeError(w, "time must not be negative", http.StatusBadRequest)
		return
	}

	session.RequestSeek(payload.Time)
	writeJSON(w, session.engine.State())
}

// POST /videos/{id}/session/state relays player lifecycle events reported
// by the client: {"event":"ready"} with the initial position, or
// {"event":"state"} with the numeric widget state.
func (s *Server) handleSessionState(w http.ResponseWriter, r *http.Request, id string) {
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
		Event    string  `json:"event"`
		State    int     `json:"state"`
		Time     float64 `json:"time"`
		Duration float64 `json:"duration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		s.writeError(w, "bad request", http.StatusBadRequest)
		return
	}

	switch payload.Event {
	case "ready":
		session.ReportReady(payload.Time, payload.Duration)
	case "state":
		st := player.State(payload.State)
		session.ReportState(st)
		if st == player.StatePaused || st == player.StateEnded {
			session.PersistResume(s.store)
		}
	default:
		s.writeError(w, "unknown event", http.StatusBadRequest)
		return
	}

	writeJSON(w, map[string]any{
		"generation":  session.Generation(),
		"playerState": session.PlayerState().String(),
		"ready":       session.handle.IsReady(),
	})
}
