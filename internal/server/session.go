package server

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/treefix50/learntube/internal/catalog"
	"github.com/treefix50/learntube/internal/learning"
	"github.com/treefix50/learntube/internal/player"
	"github.com/treefix50/learntube/internal/playsync"
)

// Session is the live playback state for one video: the player handle, the
// time sync engine driven by a 100ms tick loop, and the feature trackers
// that follow display time.
type Session struct {
	videoID  string
	video    catalog.Video
	chapters []catalog.Chapter

	handle      *player.Handle
	loader      *remoteLoader
	engine      *playsync.Engine
	coordinator *playsync.Coordinator
	bus         *playsync.Bus
	highlighter *learning.ChapterHighlighter
	tracker     *learning.QuizTracker

	unsubscribe func()
	ticker      *time.Ticker
	stop        chan struct{}

	mu          sync.Mutex
	playerState player.State
	closed      bool
}

// SessionManager owns the single active session. Opening a session for a
// different video tears the previous one down first, so callbacks from the
// old player instance land on a dead generation.
type SessionManager struct {
	mu     sync.Mutex
	active *Session
	store  LearningStore
}

func NewSessionManager(store LearningStore) *SessionManager {
	return &SessionManager{store: store}
}

// Open returns the session for videoID, creating it (and closing any
// session for another video) as needed.
func (m *SessionManager) Open(videoID string) (*Session, error) {
	video, ok := catalog.VideoByID(videoID)
	if !ok {
		return nil, fmt.Errorf("server: unknown video %q", videoID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.active != nil {
		if m.active.videoID == videoID {
			return m.active, nil
		}
		m.closeLocked(m.active)
	}

	session, err := newSession(video)
	if err != nil {
		return nil, err
	}
	m.active = session
	return session, nil
}

// Get returns the active session if it belongs to videoID.
func (m *SessionManager) Get(videoID string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil || m.active.videoID != videoID {
		return nil, false
	}
	return m.active, true
}

// Close tears down the session for videoID, reporting whether one existed.
func (m *SessionManager) Close(videoID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active == nil || m.active.videoID != videoID {
		return false
	}
	m.closeLocked(m.active)
	m.active = nil
	return true
}

// Shutdown closes whatever session is active.
func (m *SessionManager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.active != nil {
		m.closeLocked(m.active)
		m.active = nil
	}
}

func (m *SessionManager) closeLocked(s *Session) {
	s.persistResume(m.store)
	s.close()
}

func newSession(video catalog.Video) (*Session, error) {
	chapters := catalog.ChaptersFor(video.ID)
	quizzes := catalog.QuizzesFor(video.ID)

	s := &Session{
		videoID:     video.ID,
		video:       video,
		chapters:    chapters,
		loader:      &remoteLoader{},
		bus:         playsync.NewBus(),
		highlighter: learning.NewChapterHighlighter(chapters),
		tracker:     learning.NewQuizTracker(quizzes),
		playerState: player.StateUnstarted,
	}

	s.handle = player.NewHandle(player.CacheLoad(s.loader))
	s.handle.SetStateChangeFunc(func(generation string, st player.State) {
		s.onPlayerState(generation, st)
	})

	containerID := "player-" + video.ID
	externalID, _ := catalog.YouTubeID(video.VideoURL)
	if err := s.handle.Initialize(context.Background(), containerID, externalID); err != nil {
		return nil, err
	}

	generation := s.handle.Generation()
	s.engine = playsync.NewEngine(generation, catalog.TotalDuration(chapters))
	s.coordinator = playsync.NewCoordinator(s.handle, s.engine)
	s.unsubscribe = s.bus.Subscribe(func(req playsync.SeekRequest) {
		s.coordinator.RequestSeek(req.Time)
	})

	s.ticker = time.NewTicker(playsync.TickInterval)
	s.stop = make(chan struct{})
	go s.run()

	log.Printf("level=info msg=\"session opened\" video=%s generation=%s", video.ID, generation)
	return s, nil
}

func (s *Session) run() {
	for {
		select {
		case now := <-s.ticker.C:
			s.engine.Tick(now)
			st := s.engine.State()
			s.highlighter.Update(st.DisplayTime)
			s.tracker.Update(st.DisplayTime, now)
		case <-s.stop:
			s.ticker.Stop()
			return
		}
	}
}

func (s *Session) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	close(s.stop)
	s.unsubscribe()
	s.coordinator.Cancel()
	s.handle.Destroy()
	log.Printf("level=info msg=\"session closed\" video=%s", s.videoID)
}

// Generation returns the token the client must echo on every sample.
func (s *Session) Generation() string {
	return s.engine.Generation()
}

// ReportReady relays the client's player-ready event. The reported
// position seeds the widget so the readiness probe has something to read.
func (s *Session) ReportReady(position, duration float64) {
	widget, events := s.loader.current()
	if widget == nil {
		return
	}
	widget.report(position, duration)
	if duration > 0 {
		s.engine.SetTotalDuration(duration)
	}
	if events.OnReady != nil {
		events.OnReady()
	}
}

// ReportState relays a client player state change through the handle's
// generation gate.
func (s *Session) ReportState(st player.State) {
	_, events := s.loader.current()
	if events.OnStateChange != nil {
		events.OnStateChange(st)
	}
}

func (s *Session) onPlayerState(generation string, st player.State) {
	if generation != s.handle.Generation() {
		return
	}
	s.mu.Lock()
	s.playerState = st
	s.mu.Unlock()
}

// PlayerState returns the last reported widget state.
func (s *Session) PlayerState() player.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerState
}

// ApplySample folds a client-reported position into the engine. Samples
// carrying a stale generation token are dropped.
func (s *Session) ApplySample(position, duration float64, generation string, now time.Time) bool {
	current := s.engine.Generation()
	if generation == "" {
		generation = current
	}
	if generation != current {
		return false
	}

	if widget, _ := s.loader.current(); widget != nil {
		widget.report(position, duration)
	}
	if duration > 0 {
		s.engine.SetTotalDuration(duration)
	}
	s.engine.OnRealSample(playsync.Sample{
		Time:       position,
		ObservedAt: now,
		Generation: generation,
	})
	return true
}

// RequestSeek publishes a seek request on the session bus.
func (s *Session) RequestSeek(target float64) {
	s.bus.Publish(playsync.SeekRequest{Time: target})
}

// TakePendingSeek claims the seek command queued for the client, if any.
func (s *Session) TakePendingSeek() (float64, bool) {
	widget, _ := s.loader.current()
	if widget == nil {
		return 0, false
	}
	return widget.takePendingSeek()
}

// DisplayTime returns the engine's current display time.
func (s *Session) DisplayTime() float64 {
	return s.engine.State().DisplayTime
}

// CurrentChapter returns the chapter containing the current display time,
// or the last one it passed through.
func (s *Session) CurrentChapter() (catalog.Chapter, bool) {
	return s.highlighter.Current()
}

// ActiveQuiz returns the surfaced quiz notification, advancing the quiz
// lifecycle to the current instant first.
func (s *Session) ActiveQuiz(now time.Time) *learning.Notification {
	return s.tracker.Update(s.engine.State().DisplayTime, now)
}

// Quizzes exposes the session quiz tracker for the action endpoints.
func (s *Session) Quizzes() *learning.QuizTracker {
	return s.tracker
}

func (s *Session) persistResume(store LearningStore) {
	if store == nil || store.ReadOnly() {
		return
	}
	position := s.engine.State().DisplayTime
	if t, ok := s.handle.CurrentTime(); ok {
		position = t
	}
	duration := catalog.TotalDuration(s.chapters)
	if d, ok := s.handle.Duration(); ok {
		duration = d
	}
	if position <= 0 {
		return
	}
	if err := store.UpsertResume(s.videoID, position, duration, time.Now()); err != nil {
		log.Printf("level=warn msg=\"resume position not saved\" video=%s error=%q", s.videoID, err)
	}
}

// PersistResume snapshots the current position without closing the session,
// used when the player pauses or ends.
func (s *Session) PersistResume(store LearningStore) {
	s.persistResume(store)
}
