package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"learnhub/internal/quiz"
	"learnhub/internal/repository"
	"learnhub/pkg/logger"
	"learnhub/pkg/models"
	"learnhub/pkg/utils"
)

// finalizeTimeout bounds the persistence work triggered by a timer expiry,
// which runs outside any request context.
const finalizeTimeout = 10 * time.Second

// QuizService drives quiz sessions end to end: start, answer/reveal cycles,
// countdown, completion scoring and the resulting XP award.
type QuizService interface {
	Create(ctx context.Context, quiz *models.QuizDefinition) error
	List(ctx context.Context) ([]models.QuizSummary, error)
	ListByTopic(ctx context.Context, topicID string) ([]models.QuizSummary, error)
	Start(ctx context.Context, userID, quizID string) (quiz.View, error)
	Current(ctx context.Context, userID string) (quiz.View, error)
	Answer(ctx context.Context, userID string, optionIndex int) (quiz.View, error)
	Advance(ctx context.Context, userID string) (*AdvanceOutcome, error)
	Abandon(ctx context.Context, userID string) error
	Attempts(ctx context.Context, userID string) ([]models.QuizAttemptResult, error)
}

// AdvanceOutcome carries the post-advance view plus, on completion, the
// persisted attempt and its award.
type AdvanceOutcome struct {
	View    quiz.View                 `json:"view"`
	Attempt *models.QuizAttemptResult `json:"attempt,omitempty"`
	Award   *models.AwardResult       `json:"award,omitempty"`
}

type quizService struct {
	quizRepo     repository.QuizRepository
	attemptRepo  repository.AttemptRepository
	gamification GamificationService
	failedXPRate float64

	store *quiz.Store
	mu    sync.Mutex
	stops map[string]stopEntry
}

// stopEntry ties a countdown stop to the session that owns it. Clearing is
// compare-and-clear on the session instance, so a finalizer racing with a
// fresh Start can never cancel the successor's timer.
type stopEntry struct {
	session *quiz.Session
	stop    func()
}

// NewQuizService creates the quiz session service.
func NewQuizService(
	quizRepo repository.QuizRepository,
	attemptRepo repository.AttemptRepository,
	gamificationSvc GamificationService,
	failedXPRate float64,
) QuizService {
	return &quizService{
		quizRepo:     quizRepo,
		attemptRepo:  attemptRepo,
		gamification: gamificationSvc,
		failedXPRate: failedXPRate,
		store:        quiz.NewStore(),
		stops:        make(map[string]stopEntry),
	}
}

func (s *quizService) Create(ctx context.Context, quiz *models.QuizDefinition) error {
	return s.quizRepo.Create(ctx, quiz)
}

func (s *quizService) List(ctx context.Context) ([]models.QuizSummary, error) {
	return s.quizRepo.List(ctx)
}

func (s *quizService) ListByTopic(ctx context.Context, topicID string) ([]models.QuizSummary, error) {
	return s.quizRepo.ListByTopic(ctx, topicID)
}

// Start loads the definition, registers a fresh session for the user and
// kicks off its countdown. One session per user at a time.
func (s *quizService) Start(ctx context.Context, userID, quizID string) (quiz.View, error) {
	definition, err := s.quizRepo.GetByID(ctx, quizID)
	if err != nil {
		return quiz.View{}, err
	}

	session, err := quiz.NewSession(utils.GenerateSessionID(), userID, *definition)
	if err != nil {
		return quiz.View{}, err
	}
	if err := s.store.Put(userID, session); err != nil {
		return quiz.View{}, err
	}
	if err := session.Start(); err != nil {
		s.store.Delete(userID)
		return quiz.View{}, err
	}

	stop := quiz.StartCountdown(session, time.Second, func() {
		s.onExpire(session)
	})
	s.setStop(userID, session, stop)

	logger.QuizSession(session.ID(), "started")
	return session.Snapshot(), nil
}

func (s *quizService) Current(ctx context.Context, userID string) (quiz.View, error) {
	session, ok := s.store.Get(userID)
	if !ok {
		return quiz.View{}, models.ErrSessionNotFound
	}
	return session.Snapshot(), nil
}

func (s *quizService) Answer(ctx context.Context, userID string, optionIndex int) (quiz.View, error) {
	session, ok := s.store.Get(userID)
	if !ok {
		return quiz.View{}, models.ErrSessionNotFound
	}
	if _, err := session.SelectAnswer(optionIndex); err != nil {
		return quiz.View{}, err
	}
	return session.Snapshot(), nil
}

// Advance moves the session forward and, when the last question falls,
// finalizes the attempt: persists the result and pushes the XP award through
// the gamification pipeline.
func (s *quizService) Advance(ctx context.Context, userID string) (*AdvanceOutcome, error) {
	session, ok := s.store.Get(userID)
	if !ok {
		return nil, models.ErrSessionNotFound
	}

	done, err := session.Advance()
	if err != nil {
		// A session left Completed in the store means an earlier finalize
		// failed mid-persistence. Re-run it; every write is idempotent.
		if errors.Is(err, models.ErrSessionCompleted) && session.State() == quiz.StateCompleted {
			done = true
		} else {
			return nil, err
		}
	}

	outcome := &AdvanceOutcome{View: session.Snapshot()}
	if !done {
		return outcome, nil
	}

	s.clearStop(userID, session)
	attempt, award, err := s.finalize(ctx, session)
	if err != nil {
		return nil, err
	}
	outcome.Attempt = attempt
	outcome.Award = award
	return outcome, nil
}

func (s *quizService) Abandon(ctx context.Context, userID string) error {
	session, ok := s.store.Get(userID)
	if !ok {
		return models.ErrSessionNotFound
	}
	s.clearStop(userID, session)
	session.Abandon()
	s.store.Remove(userID, session)
	logger.QuizSession(session.ID(), "abandoned")
	return nil
}

func (s *quizService) Attempts(ctx context.Context, userID string) ([]models.QuizAttemptResult, error) {
	return s.attemptRepo.ListByUser(ctx, userID)
}

// finalize scores a completed session and records it. The session id keys
// both the attempt row and the XP award, so a finalize that failed partway
// can be re-run safely: the surviving writes are no-ops on retry. The
// session stays in the store until every write lands, and only then is
// removed.
func (s *quizService) finalize(ctx context.Context, session *quiz.Session) (*models.QuizAttemptResult, *models.AwardResult, error) {
	attempt, err := session.Result(s.failedXPRate)
	if err != nil {
		return nil, nil, err
	}
	attempt.ID = "attempt-" + strings.TrimPrefix(session.ID(), "session-")

	if err := s.attemptRepo.Insert(ctx, &attempt); err != nil {
		return nil, nil, fmt.Errorf("failed to persist attempt: %w", err)
	}

	eventID := "quiz-" + session.ID()
	award, err := s.gamification.Award(ctx, session.UserID(), eventID, models.XPSourceQuizCompleted, attempt.XPEarned)
	if err != nil {
		return nil, nil, err
	}

	s.store.Remove(session.UserID(), session)
	logger.QuizSession(session.ID(), "completed")
	return &attempt, award, nil
}

// onExpire handles a countdown hitting zero: the session force-completed
// itself with unanswered questions counted wrong, so only the finalize step
// remains.
func (s *quizService) onExpire(session *quiz.Session) {
	ctx, cancel := context.WithTimeout(context.Background(), finalizeTimeout)
	defer cancel()

	s.clearStop(session.UserID(), session)
	if _, _, err := s.finalize(ctx, session); err != nil {
		logger.WithFields(map[string]interface{}{
			"session_id": session.ID(),
			"error":      err.Error(),
		}).Error("failed to finalize expired quiz session")
	}
	logger.QuizSession(session.ID(), "expired")
}

func (s *quizService) setStop(userID string, session *quiz.Session, stop func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.stops[userID]; ok {
		prev.stop()
	}
	s.stops[userID] = stopEntry{session: session, stop: stop}
}

// clearStop cancels the registered countdown only when it belongs to the
// given session. A stale entry for a different session is left alone.
func (s *quizService) clearStop(userID string, session *quiz.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.stops[userID]
	if !ok || entry.session != session {
		return
	}
	entry.stop()
	delete(s.stops, userID)
}
