package server

import (
	"encoding/json"
	"net/http"
)

// LayoutState is the shell layout the client renders around the player.
// Values are immutable: every update returns a new state instead of
// mutating in place, so a handler can never leak a half-applied layout.
type LayoutState struct {
	SidebarVisible bool `json:"sidebarVisible"`
	LearningMode   bool `json:"learningMode"`
}

// DefaultLayout is the state for the home page: sidebar open, learning
// mode off.
func DefaultLayout() LayoutState {
	return LayoutState{SidebarVisible: true}
}

func (l LayoutState) WithSidebarVisible(visible bool) LayoutState {
	l.SidebarVisible = visible
	return l
}

func (l LayoutState) WithLearningMode(enabled bool) LayoutState {
	l.LearningMode = enabled
	return l
}

// ForPage applies the per-page defaults: video pages auto-hide the sidebar
// to make room for the learning panels.
func (l LayoutState) ForPage(page string) LayoutState {
	switch page {
	case "video":
		return l.WithSidebarVisible(false)
	case "home":
		return l.WithSidebarVisible(true)
	default:
		return l
	}
}

// GET returns the current layout; POST applies page defaults first, then
// any explicit toggles, and returns the resulting state.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	if s.handleOptions(w, r, "GET, POST, OPTIONS") {
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.mu.Lock()
		layout := s.layout
		s.mu.Unlock()
		writeJSON(w, layout)

	case http.MethodPost:
		var payload struct {
			Page           string `json:"page"`
			SidebarVisible *bool  `json:"sidebarVisible"`
			LearningMode   *bool  `json:"learningMode"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			s.writeError(w, "bad request", http.StatusBadRequest)
			return
		}

		s.mu.Lock()
		layout := s.layout
		if payload.Page != "" {
			layout = layout.ForPage(payload.Page)
		}
		if payload.SidebarVisible != nil {
			layout = layout.WithSidebarVisible(*payload.SidebarVisible)
		}
		if payload.LearningMode != nil {
			layout = layout.WithLearningMode(*payload.LearningMode)
		}
		s.layout = layout
		s.mu.Unlock()
		writeJSON(w, layout)

	default:
		s.methodNotAllowed(w)
	}
}
