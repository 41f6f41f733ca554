package learning

import (
	"errors"
	"sync"
	"time"

	"github.com/treefix50/learntube/internal/catalog"
)

const (
	// EligibilityWindow is how close (in seconds) display time must be to
	// a quiz's timeToShow for the quiz to become eligible.
	EligibilityWindow = 5.0
	// NotificationTTL is how long a surfaced quiz notification stays up
	// without user action before it self-expires.
	NotificationTTL = 5 * time.Second
)

// ErrUnknownQuiz is returned for actions on quiz ids outside the session's
// catalog.
var ErrUnknownQuiz = errors.New("learning: unknown quiz id")

// Notification is a surfaced quiz prompt. At most one is active at a time.
type Notification struct {
	Quiz    catalog.Quiz `json:"quiz"`
	ShownAt time.Time    `json:"shownAt"`
}

// Attempt records one graded submission. History is append-only: retrying
// a quiz never removes its past attempts.
type Attempt struct {
	QuizID      string    `json:"quizId"`
	Score       int       `json:"score"`
	Total       int       `json:"total"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// QuizTracker owns the per-session quiz lifecycle:
// Pending -> Notified -> (Taken -> Graded) | Dismissed. Eligibility is a
// windowed proximity check against display time; dismissed and completed
// quizzes never re-surface.
type QuizTracker struct {
	mu        sync.Mutex
	quizzes   []catalog.Quiz
	dismissed map[string]struct{}
	completed map[string]struct{}
	answers   map[string]map[string]int
	scores    map[string]int
	attempts  []Attempt
	active    *Notification
	// expired holds quizzes whose notification timed out; they re-arm
	// only after display time leaves their eligibility window.
	expired map[string]struct{}
}

// NewQuizTracker takes the quiz list of the active video, in catalog order.
func NewQuizTracker(quizzes []catalog.Quiz) *QuizTracker {
	return &QuizTracker{
		quizzes:   quizzes,
		dismissed: make(map[string]struct{}),
		completed: make(map[string]struct{}),
		answers:   make(map[string]map[string]int),
		scores:    make(map[string]int),
		expired:   make(map[string]struct{}),
	}
}

func inWindow(q catalog.Quiz, displayTime float64) bool {
	d := displayTime - q.TimeToShow
	if d < 0 {
		d = -d
	}
	return d < EligibilityWindow
}

// Update advances the notification state for the given display time and
// returns the active notification, if any. When several quizzes are
// eligible at once the first in catalog order wins; the rest stay pending
// until the active one closes.
func (t *QuizTracker) Update(displayTime float64, now time.Time) *Notification {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Re-arm expired notifications once their window has been left.
	for id := range t.expired {
		if q, ok := t.quizByID(id); ok && !inWindow(q, displayTime) {
			delete(t.expired, id)
		}
	}

	if t.active != nil {
		if now.Sub(t.active.ShownAt) >= NotificationTTL {
			t.expired[t.active.Quiz.ID] = struct{}{}
			t.active = nil
		} else {
			n := *t.active
			return &n
		}
	}

	for _, q := range t.quizzes {
		if !inWindow(q, displayTime) {
			continue
		}
		if _, ok := t.dismissed[q.ID]; ok {
			continue
		}
		if _, ok := t.completed[q.ID]; ok {
			continue
		}
		if _, ok := t.expired[q.ID]; ok {
			continue
		}
		t.active = &Notification{Quiz: q, ShownAt: now}
		n := *t.active
		return &n
	}
	return nil
}

func (t *QuizTracker) quizByID(id string) (catalog.Quiz, bool) {
	for _, q := range t.quizzes {
		if q.ID == id {
			return q, true
		}
	}
	return catalog.Quiz{}, false
}

// Take opens the quiz: the notification closes, nothing else changes yet.
func (t *QuizTracker) Take(quizID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.quizByID(quizID); !ok {
		return ErrUnknownQuiz
	}
	if t.active != nil && t.active.Quiz.ID == quizID {
		t.active = nil
	}
	return nil
}

// Dismiss closes the notification and keeps the quiz from re-surfacing for
// the rest of the session.
func (t *QuizTracker) Dismiss(quizID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.quizByID(quizID); !ok {
		return ErrUnknownQuiz
	}
	t.dismissed[quizID] = struct{}{}
	if t.active != nil && t.active.Quiz.ID == quizID {
		t.active = nil
	}
	return nil
}

// Submit grades the given answers (question id to option index) against
// the quiz key, stores the score, and marks the quiz completed. Returns
// score and question count.
func (t *QuizTracker) Submit(quizID string, answers map[string]int, now time.Time) (int, int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	q, ok := t.quizByID(quizID)
	if !ok {
		return 0, 0, ErrUnknownQuiz
	}

	score := 0
	for _, question := range q.Questions {
		if sel, ok := answers[question.ID]; ok && sel == question.CorrectAnswer {
			score++
		}
	}

	stored := make(map[string]int, len(answers))
	for id, sel := range answers {
		stored[id] = sel
	}
	t.answers[quizID] = stored
	t.scores[quizID] = score
	t.completed[quizID] = struct{}{}
	t.attempts = append(t.attempts, Attempt{
		QuizID:      quizID,
		Score:       score,
		Total:       len(q.Questions),
		SubmittedAt: now,
	})
	if t.active != nil && t.active.Quiz.ID == quizID {
		t.active = nil
	}
	return score, len(q.Questions), nil
}

// Retry reopens a graded quiz: stored answers are cleared and the quiz
// leaves the completed set so it can be submitted again. Dismissal state
// and attempt history are untouched.
func (t *QuizTracker) Retry(quizID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.quizByID(quizID); !ok {
		return ErrUnknownQuiz
	}
	delete(t.answers, quizID)
	delete(t.scores, quizID)
	delete(t.completed, quizID)
	return nil
}

// Completed reports whether the quiz is currently marked completed.
func (t *QuizTracker) Completed(quizID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.completed[quizID]
	return ok
}

// Dismissed reports whether the quiz was dismissed this session.
func (t *QuizTracker) Dismissed(quizID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.dismissed[quizID]
	return ok
}

// Score returns the stored score for a completed quiz.
func (t *QuizTracker) Score(quizID string) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.scores[quizID]
	return s, ok
}

// Answers returns the stored answers for a quiz, or nil after a retry.
func (t *QuizTracker) Answers(quizID string) map[string]int {
	t.mu.Lock()
	defer t.mu.Unlock()
	stored, ok := t.answers[quizID]
	if !ok {
		return nil
	}
	out := make(map[string]int, len(stored))
	for id, sel := range stored {
		out[id] = sel
	}
	return out
}

// Attempts returns the append-only submission history.
func (t *QuizTracker) Attempts() []Attempt {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Attempt, len(t.attempts))
	copy(out, t.attempts)
	return out
}

// Summary reports how many quizzes have ever been graded this session
// against the total. A retried quiz still counts: the ratio is based on
// attempt history, not on current completed membership.
func (t *QuizTracker) Summary() (completed, total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ever := make(map[string]struct{})
	for _, a := range t.attempts {
		ever[a.QuizID] = struct{}{}
	}
	return len(ever), len(t.quizzes)
}
