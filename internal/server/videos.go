package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/treefix50/learntube/internal/catalog"
	"github.com/treefix50/learntube/internal/learning"
)

func (s *Server) handleVideoList(w http.ResponseWriter, r *http.Request) {
	if s.handleOptions(w, r, "GET, OPTIONS") {
		return
	}
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w)
		return
	}
	writeJSON(w, catalog.Videos())
}

func (s *Server) handleVideoDetail(w http.ResponseWriter, r *http.Request, id string) {
	if s.handleOptions(w, r, "GET, OPTIONS") {
		return
	}
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w)
		return
	}
	video, ok := catalog.VideoByID(id)
	if !ok {
		s.writeError(w, errNotFound, http.StatusNotFound)
		return
	}
	writeJSON(w, video)
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request, id string) {
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
	related := catalog.Related(id, 5)
	if related == nil {
		related = []catalog.Video{}
	}
	writeJSON(w, related)
}

// GET /videos/{id}/chapters[?t=seconds] returns the chapter list, plus the
// chapter containing t when the query is present.
func (s *Server) handleChapters(w http.ResponseWriter, r *http.Request, id string) {
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

	chapters := catalog.ChaptersFor(id)
	response := struct {
		Chapters      []catalog.Chapter `json:"chapters"`
		TotalDuration float64           `json:"totalDuration"`
		Current       *catalog.Chapter  `json:"current,omitempty"`
	}{
		Chapters:      chapters,
		TotalDuration: catalog.TotalDuration(chapters),
	}

	if raw := r.URL.Query().Get("t"); raw != "" {
		t, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			s.writeError(w, "invalid t parameter", http.StatusBadRequest)
			return
		}
		h := learning.NewChapterHighlighter(chapters)
		if current, ok := h.Update(t); ok {
			response.Current = &current
		}
	}
	writeJSON(w, response)
}

// GET /channels/{name}/videos lists a channel's uploads for the channel
// page. The name is URL-escaped by the client.
func (s *Server) handleChannels(w http.ResponseWriter, r *http.Request) {
	if s.handleOptions(w, r, "GET, OPTIONS") {
		return
	}
	if r.Method != http.MethodGet {
		s.methodNotAllowed(w)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/channels/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] != "videos" {
		s.writeError(w, errNotFound, http.StatusNotFound)
		return
	}
	name, err := url.PathUnescape(parts[0])
	if err != nil {
		s.writeError(w, "bad request", http.StatusBadRequest)
		return
	}

	videos := catalog.ChannelVideos(name)
	if len(videos) == 0 {
		s.writeError(w, errNotFound, http.StatusNotFound)
		return
	}
	writeJSON(w, videos)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request, id string) {
	if s.handleOptions(w, r, "GET, DELETE, OPTIONS") {
		return
	}
	if s.store == nil {
		s.writeError(w, "not available without database", http.StatusNotImplemented)
		return
	}
	if _, ok := catalog.VideoByID(id); !ok {
		s.writeError(w, errNotFound, http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		resume, ok, err := s.store.GetResume(id)
		if err != nil {
			s.writeError(w, errInternal, http.StatusInternalServerError)
			return
		}
		if !ok {
			s.writeError(w, errNotFound, http.StatusNotFound)
			return
		}
		writeJSON(w, resume)

	case http.MethodDelete:
		if s.readOnly {
			s.writeError(w, "read-only mode", http.StatusForbidden)
			return
		}
		if err := s.store.DeleteResume(id); err != nil {
			s.writeError(w, errInternal, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		s.methodNotAllowed(w)
	}
}
