// Package quiz implements the state machine driving a single quiz attempt:
// selection, per-question answer/reveal cycles, the countdown timer and final
// scoring. Sessions are ephemeral; persisting the finished attempt belongs to
// the caller.
package quiz

import (
	"math"
	"sync"
	"time"

	"learnhub/pkg/models"
)

// State names the coarse lifecycle phase of a session.
type State string

const (
	StateSelection  State = "selection"
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateAbandoned  State = "abandoned"
)

const unanswered = -1

// Session is one learner's run through one quiz. It is owned by the user who
// started it, but the countdown goroutine ticks it concurrently, so every
// transition takes the lock.
type Session struct {
	id         string
	userID     string
	definition models.QuizDefinition

	mu          sync.Mutex
	state       State
	current     int
	answers     []int
	revealed    bool
	remaining   int
	startedAt   time.Time
	completedAt time.Time
	now         func() time.Time
}

// NewSession validates the definition and returns a session in the selection
// state. The definition is captured by value: concurrent admin edits never
// reach a running session.
func NewSession(id, userID string, def models.QuizDefinition) (*Session, error) {
	return NewSessionWithClock(id, userID, def, time.Now)
}

// newSessionWithClock allows deterministic timestamps in tests.
func newSessionWithClock(id, userID string, def models.QuizDefinition, now func() time.Time) *Session {
	return &Session{
		id:         id,
		userID:     userID,
		definition: def,
		state:      StateSelection,
		now:        now,
	}
}

// NewSessionWithClock is test-only for deterministic timestamps.
func NewSessionWithClock(id, userID string, def models.QuizDefinition, now func() time.Time) (*Session, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return newSessionWithClock(id, userID, def, now), nil
}

func (s *Session) ID() string     { return s.id }
func (s *Session) UserID() string { return s.userID }
func (s *Session) QuizID() string { return s.definition.ID }

// Start moves the session from selection into play: question zero, a full
// answer sheet of blanks and the clock at the configured limit.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateCompleted, StateAbandoned:
		return models.ErrSessionCompleted
	case StateInProgress:
		return models.ErrSessionActive
	}
	if err := s.definition.Validate(); err != nil {
		return err
	}

	s.answers = make([]int, len(s.definition.Questions))
	for i := range s.answers {
		s.answers[i] = unanswered
	}
	s.current = 0
	s.revealed = false
	s.remaining = s.definition.TimeLimitSeconds
	s.startedAt = s.now()
	s.state = StateInProgress
	return nil
}

// AnswerFeedback is what the learner sees after locking in an answer.
type AnswerFeedback struct {
	Correct      bool   `json:"correct"`
	CorrectIndex int    `json:"correct_index"`
	Explanation  string `json:"explanation,omitempty"`
}

// SelectAnswer records the chosen option for the current question and reveals
// the correct answer. An answer is immutable once revealed: a second call for
// the same question returns the recorded feedback without changing anything,
// so the learner cannot revise after reading the explanation.
func (s *Session) SelectAnswer(optionIndex int) (AnswerFeedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return AnswerFeedback{}, models.ErrSessionCompleted
	}

	question := s.definition.Questions[s.current]
	if s.revealed {
		return s.feedbackLocked(question), nil
	}
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return AnswerFeedback{}, models.ErrAnswerOutOfRange
	}

	s.answers[s.current] = optionIndex
	s.revealed = true
	return s.feedbackLocked(question), nil
}

func (s *Session) feedbackLocked(q models.Question) AnswerFeedback {
	return AnswerFeedback{
		Correct:      s.answers[s.current] == q.CorrectIndex,
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
	}
}

// Advance moves to the next question, or completes the session when the
// current question was the last. Only legal after the answer was revealed.
func (s *Session) Advance() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return false, models.ErrSessionCompleted
	}
	if !s.revealed {
		return false, models.ErrAdvanceUnrevealed
	}

	if s.current == len(s.definition.Questions)-1 {
		s.completeLocked()
		return true, nil
	}
	s.current++
	s.revealed = false
	return false, nil
}

// Tick burns one second off the clock. Reaching zero force-completes the
// session with every unanswered question counted wrong. Ticks against a
// session that already left play are no-ops, so a stale timer goroutine can
// never double-complete or touch a later attempt.
func (s *Session) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInProgress {
		return false
	}
	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		s.completeLocked()
		return true
	}
	return false
}

// Abandon discards an unfinished session. Nothing is scored and nothing is
// persisted. Abandoning a completed session is a no-op.
func (s *Session) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateInProgress || s.state == StateSelection {
		s.state = StateAbandoned
	}
}

func (s *Session) completeLocked() {
	s.state = StateCompleted
	s.completedAt = s.now()
}

// Result scores a completed session. failedXPRate is the partial-credit
// fraction of the reward paid out on a failed attempt. The returned record
// has no ID yet; the caller assigns one when persisting.
func (s *Session) Result(failedXPRate float64) (models.QuizAttemptResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateCompleted {
		return models.QuizAttemptResult{}, models.ErrSessionNotFound
	}

	correct := 0
	for i, question := range s.definition.Questions {
		if s.answers[i] == question.CorrectIndex {
			correct++
		}
	}

	total := len(s.definition.Questions)
	scorePercent := float64(correct) / float64(total) * 100
	passed := scorePercent >= s.definition.PassingScorePercent

	xp := s.definition.XPReward
	if !passed {
		xp = int(math.Floor(float64(s.definition.XPReward) * failedXPRate))
	}

	return models.QuizAttemptResult{
		UserID:           s.userID,
		QuizID:           s.definition.ID,
		TopicID:          s.definition.TopicID,
		CorrectCount:     correct,
		TotalQuestions:   total,
		ScorePercent:     scorePercent,
		Passed:           passed,
		XPEarned:         xp,
		TimeTakenSeconds: s.definition.TimeLimitSeconds - s.remaining,
		CompletedAt:      s.completedAt,
	}, nil
}

// QuestionView is the client-facing shape of the current question. The
// correct index stays server-side until the answer is revealed.
type QuestionView struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
}

// View is a point-in-time snapshot of the session for transport layers.
type View struct {
	SessionID        string          `json:"session_id"`
	QuizID           string          `json:"quiz_id"`
	QuizTitle        string          `json:"quiz_title"`
	State            State           `json:"state"`
	CurrentIndex     int             `json:"current_index"`
	TotalQuestions   int             `json:"total_questions"`
	RemainingSeconds int             `json:"remaining_seconds"`
	Revealed         bool            `json:"revealed"`
	Question         *QuestionView   `json:"question,omitempty"`
	Feedback         *AnswerFeedback `json:"feedback,omitempty"`
}

// Snapshot renders the session for clients. While in play it carries the
// current question stripped of its answer key, plus feedback once revealed.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := View{
		SessionID:        s.id,
		QuizID:           s.definition.ID,
		QuizTitle:        s.definition.Title,
		State:            s.state,
		CurrentIndex:     s.current,
		TotalQuestions:   len(s.definition.Questions),
		RemainingSeconds: s.remaining,
		Revealed:         s.revealed,
	}
	if s.state == StateInProgress {
		question := s.definition.Questions[s.current]
		view.Question = &QuestionView{ID: question.ID, Prompt: question.Prompt, Options: question.Options}
		if s.revealed {
			feedback := s.feedbackLocked(question)
			view.Feedback = &feedback
		}
	}
	return view
}

// State returns the current lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
