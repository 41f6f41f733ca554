package server

import (
	"net/http"
	"testing"
	"time"

	"github.com/treefix50/learntube/internal/playsync"
)

func openReadySession(t *testing.T, s *Server, videoID string, duration float64) string {
	t.Helper()
	rr := do(t, s, http.MethodPost, "/videos/"+videoID+"/session", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("open session = %d: %s", rr.Code, rr.Body.String())
	}
	view := decode[sessionView](t, rr)
	if view.Generation == "" {
		t.Fatalf("session opened without a generation token")
	}
	rr = do(t, s, http.MethodPost, "/videos/"+videoID+"/session/state",
		map[string]any{"event": "ready", "time": 0.0, "duration": duration})
	if rr.Code != http.StatusOK {
		t.Fatalf("ready event = %d: %s", rr.Code, rr.Body.String())
	}
	ready := decode[map[string]any](t, rr)
	if ready["ready"] != true {
		t.Fatalf("handle not ready after ready event: %v", ready)
	}
	return view.Generation
}

func TestSessionSampleMovesDisplayTime(t *testing.T) {
	s := newTestServer(t, nil)
	gen := openReadySession(t, s, "1", 960)

	rr := do(t, s, http.MethodPost, "/videos/1/session/sample",
		map[string]any{"time": 30.2, "generation": gen})
	if rr.Code != http.StatusOK {
		t.Fatalf("sample = %d: %s", rr.Code, rr.Body.String())
	}
	state := decode[map[string]any](t, rr)
	if state["displayTime"] != 30.2 {
		t.Fatalf("displayTime = %v, want 30.2", state["displayTime"])
	}
	if state["isSimulating"] != false {
		t.Fatalf("fresh sample left simulated mode on")
	}
}

func TestVideoSwitchResetsStateAndGatesOldGeneration(t *testing.T) {
	s := newTestServer(t, nil)
	oldGen := openReadySession(t, s, "1", 960)
	do(t, s, http.MethodPost, "/videos/1/session/sample",
		map[string]any{"time": 300.0, "generation": oldGen})

	// Opening a session for another video tears the first one down.
	rr := do(t, s, http.MethodPost, "/videos/2/session", nil)
	view := decode[sessionView](t, rr)
	if view.Generation == oldGen {
		t.Fatalf("generation survived the video switch")
	}
	if view.Sync.DisplayTime != 0 {
		t.Fatalf("displayTime after switch = %v, want 0", view.Sync.DisplayTime)
	}

	if rr = do(t, s, http.MethodGet, "/videos/1/session", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("old session still reachable: %d", rr.Code)
	}

	// A sample still carrying the old token is rejected.
	rr = do(t, s, http.MethodPost, "/videos/2/session/sample",
		map[string]any{"time": 300.0, "generation": oldGen})
	if rr.Code != http.StatusConflict {
		t.Fatalf("stale-generation sample = %d, want 409", rr.Code)
	}
	if got := s.sessions.active.DisplayTime(); got != 0 {
		t.Fatalf("stale sample moved display time to %v", got)
	}
}

func TestSeekDeliveredToClientOnce(t *testing.T) {
	s := newTestServer(t, nil)
	gen := openReadySession(t, s, "1", 960)
	do(t, s, http.MethodPost, "/videos/1/session/sample",
		map[string]any{"time": 10.0, "generation": gen})

	rr := do(t, s, http.MethodPost, "/videos/1/session/seek", map[string]any{"time": 90.0})
	if rr.Code != http.StatusOK {
		t.Fatalf("seek = %d: %s", rr.Code, rr.Body.String())
	}
	state := decode[map[string]any](t, rr)
	if state["displayTime"] != 90.0 {
		t.Fatalf("optimistic displayTime = %v, want 90", state["displayTime"])
	}

	// A newer seek supersedes the unclaimed command.
	do(t, s, http.MethodPost, "/videos/1/session/seek", map[string]any{"time": 30.0})

	rr = do(t, s, http.MethodGet, "/videos/1/session", nil)
	view := decode[sessionView](t, rr)
	if view.PendingSeek == nil || view.PendingSeek.Time != 30 {
		t.Fatalf("pendingSeek = %+v, want 30", view.PendingSeek)
	}

	// Claimed once: the next poll sees nothing.
	rr = do(t, s, http.MethodGet, "/videos/1/session", nil)
	view = decode[sessionView](t, rr)
	if view.PendingSeek != nil {
		t.Fatalf("pendingSeek delivered twice: %+v", view.PendingSeek)
	}

	if rr = do(t, s, http.MethodPost, "/videos/1/session/seek", map[string]any{"time": -5.0}); rr.Code != http.StatusBadRequest {
		t.Fatalf("negative seek = %d, want 400", rr.Code)
	}
}

func TestSeekBeforeReadyKeepsOptimisticTime(t *testing.T) {
	s := newTestServer(t, nil)
	rr := do(t, s, http.MethodPost, "/videos/1/session", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("open session = %d", rr.Code)
	}

	// No ready event: the handle cannot deliver, but the UI time moves.
	rr = do(t, s, http.MethodPost, "/videos/1/session/seek", map[string]any{"time": 45.0})
	state := decode[map[string]any](t, rr)
	if state["displayTime"] != 45.0 {
		t.Fatalf("optimistic displayTime = %v, want 45", state["displayTime"])
	}

	// After the retry window passes the intent is dropped, display time stays.
	time.Sleep(3 * playsync.DefaultRetryDelay)
	if got := s.sessions.active.DisplayTime(); got < 45 {
		t.Fatalf("display time fell back to %v after dropped seek", got)
	}
}

func TestQuizFlowOverHTTP(t *testing.T) {
	s := newTestServer(t, nil)
	gen := openReadySession(t, s, "1", 960)

	// Display time lands inside quiz 1's window (timeToShow 110).
	do(t, s, http.MethodPost, "/videos/1/session/sample",
		map[string]any{"time": 110.0, "generation": gen})

	rr := do(t, s, http.MethodGet, "/videos/1/session", nil)
	view := decode[sessionView](t, rr)
	if view.ActiveQuiz == nil || view.ActiveQuiz.Quiz.ID != "1" {
		t.Fatalf("activeQuiz = %+v, want quiz 1", view.ActiveQuiz)
	}

	rr = do(t, s, http.MethodPost, "/videos/1/quizzes/1/submit",
		map[string]any{"answers": map[string]int{"1-1": 1, "1-2": 2}})
	if rr.Code != http.StatusOK {
		t.Fatalf("submit = %d: %s", rr.Code, rr.Body.String())
	}
	result := decode[struct {
		Score    int          `json:"score"`
		Total    int          `json:"total"`
		Progress quizProgress `json:"progress"`
	}](t, rr)
	if result.Score != 2 || result.Total != 2 {
		t.Fatalf("score = %d/%d, want 2/2", result.Score, result.Total)
	}
	if result.Progress.Completed != 1 || result.Progress.Total != 2 {
		t.Fatalf("progress = %+v, want 1/2", result.Progress)
	}

	// Retry reopens the quiz but the history ratio keeps counting it.
	if rr = do(t, s, http.MethodPost, "/videos/1/quizzes/1/retry", nil); rr.Code != http.StatusNoContent {
		t.Fatalf("retry = %d", rr.Code)
	}
	rr = do(t, s, http.MethodGet, "/videos/1/session", nil)
	view = decode[sessionView](t, rr)
	if view.QuizProgress.Completed != 1 {
		t.Fatalf("quiz progress lost after retry: %+v", view.QuizProgress)
	}

	if rr = do(t, s, http.MethodPost, "/videos/1/quizzes/99/dismiss", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("unknown quiz dismiss = %d, want 404", rr.Code)
	}
}

func TestPauseStoresResumePosition(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	gen := openReadySession(t, s, "1", 960)

	do(t, s, http.MethodPost, "/videos/1/session/sample",
		map[string]any{"time": 120.0, "generation": gen})
	rr := do(t, s, http.MethodPost, "/videos/1/session/state",
		map[string]any{"event": "state", "state": 2})
	if rr.Code != http.StatusOK {
		t.Fatalf("pause event = %d", rr.Code)
	}

	rr = do(t, s, http.MethodGet, "/videos/1/resume", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("GET resume = %d", rr.Code)
	}
	resume := decode[Resume](t, rr)
	if resume.PositionSeconds != 120 {
		t.Fatalf("resume position = %v, want 120", resume.PositionSeconds)
	}

	if rr = do(t, s, http.MethodDelete, "/videos/1/resume", nil); rr.Code != http.StatusNoContent {
		t.Fatalf("DELETE resume = %d", rr.Code)
	}
	if rr = do(t, s, http.MethodGet, "/videos/1/resume", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("resume survived deletion: %d", rr.Code)
	}
}

func TestCloseSessionStoresResumeAndStopsSession(t *testing.T) {
	store := newFakeStore()
	s := newTestServer(t, store)
	gen := openReadySession(t, s, "1", 960)
	do(t, s, http.MethodPost, "/videos/1/session/sample",
		map[string]any{"time": 240.0, "generation": gen})

	if rr := do(t, s, http.MethodDelete, "/videos/1/session", nil); rr.Code != http.StatusNoContent {
		t.Fatalf("close session = %d", rr.Code)
	}
	if rr := do(t, s, http.MethodDelete, "/videos/1/session", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("second close = %d, want 404", rr.Code)
	}
	if rr := do(t, s, http.MethodGet, "/videos/1/session", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("closed session still reachable")
	}

	resume, ok, _ := store.GetResume("1")
	if !ok || resume.PositionSeconds != 240 {
		t.Fatalf("resume after close = %+v, %v; want position 240", resume, ok)
	}
}

func TestReopeningSameVideoKeepsSession(t *testing.T) {
	s := newTestServer(t, nil)
	gen := openReadySession(t, s, "1", 960)
	do(t, s, http.MethodPost, "/videos/1/session/sample",
		map[string]any{"time": 50.0, "generation": gen})

	rr := do(t, s, http.MethodPost, "/videos/1/session", nil)
	view := decode[sessionView](t, rr)
	if view.Generation != gen {
		t.Fatalf("re-open replaced the session for the same video")
	}
	if view.Sync.DisplayTime != 50 {
		t.Fatalf("displayTime after re-open = %v, want 50", view.Sync.DisplayTime)
	}
}

func TestSampleWithoutSession(t *testing.T) {
	s := newTestServer(t, nil)
	rr := do(t, s, http.MethodPost, "/videos/1/session/sample", map[string]any{"time": 1.0})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("sample without session = %d, want 404", rr.Code)
	}
}
