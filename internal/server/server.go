package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	errNotFound  = "not found"
	errInternal  = "internal server error"
	errNoSession = "no active session for this video"
)

// Sample ingestion arrives on the sync tick cadence; anything much faster
// than a tick per 50ms is a misbehaving client. Note creation is a human
// action and gets a wider floor.
const (
	sampleMinInterval = 50 * time.Millisecond
	noteMinInterval   = 500 * time.Millisecond
)

type Server struct {
	addr        string
	store       LearningStore
	sessions    *SessionManager
	http        *http.Server
	corsEnabled bool
	readOnly    bool

	sampleLimiter *RateLimiter
	noteLimiter   *RateLimiter

	mu     sync.Mutex
	layout LayoutState
}

func New(addr string, store LearningStore, corsEnabled bool) (*Server, error) {
	s := &Server{
		addr:          addr,
		store:         store,
		sessions:      NewSessionManager(store),
		corsEnabled:   corsEnabled,
		sampleLimiter: NewRateLimiter(sampleMinInterval),
		noteLimiter:   NewRateLimiter(noteMinInterval),
		layout:        DefaultLayout(),
	}
	if store != nil {
		s.readOnly = store.ReadOnly()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/videos", s.handleVideoList)
	mux.HandleFunc("/videos/", s.handleVideos)
	mux.HandleFunc("/channels/", s.handleChannels)
	mux.HandleFunc("/layout", s.handleLayout)

	s.http = &http.Server{
		Addr:              addr,
		Handler:           logMiddleware(mux, corsEnabled),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

func (s *Server) Start() error { return s.http.ListenAndServe() }

func (s *Server) Close() error {
	s.sessions.Shutdown()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Routes under /videos/{id}[/{action}...]
func (s *Server) handleVideos(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/videos/")
	parts := strings.Split(path, "/")
	if len(parts) < 1 || parts[0] == "" {
		s.writeError(w, errNotFound, http.StatusNotFound)
		return
	}

	id := parts[0]
	action := ""
	if len(parts) >= 2 {
		action = parts[1]
	}

	switch action {
	case "":
		s.handleVideoDetail(w, r, id)
	case "related":
		s.handleRelated(w, r, id)
	case "chapters":
		s.handleChapters(w, r, id)
	case "quizzes":
		s.handleQuizzes(w, r, id, parts[2:])
	case "notes":
		s.handleNotes(w, r, id, parts[2:])
	case "resume":
		s.handleResume(w, r, id)
	case "session":
		s.handleSession(w, r, id, parts[2:])
	default:
		s.writeError(w, errNotFound, http.StatusNotFound)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func (s *Server) methodNotAllowed(w http.ResponseWriter) {
	s.writeError(w, "method not allowed", http.StatusMethodNotAllowed)
}

// handleOptions answers CORS preflight requests. Returns true when the
// request was a preflight and has been handled.
func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request, allow string) bool {
	if r.Method != http.MethodOptions {
		return false
	}
	setCORSHeaders(w, s.corsEnabled)
	w.Header().Set("Allow", allow)
	if s.corsEnabled {
		w.Header().Set("Access-Control-Allow-Methods", allow)
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	}
	w.WriteHeader(http.StatusNoContent)
	return true
}
