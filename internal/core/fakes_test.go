package core

import (
	"context"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"learnhub/pkg/models"
)

// In-memory repository fakes. Tx parameters are ignored; WithTransaction
// just runs the function, which is enough to exercise the service logic.

type fakeProgressRepo struct {
	mu    sync.Mutex
	state map[string]*models.UserProgressState
	stats map[string]*models.UserStats
	users map[string]string // id -> username
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{
		state: make(map[string]*models.UserProgressState),
		stats: make(map[string]*models.UserStats),
		users: make(map[string]string),
	}
}

func (f *fakeProgressRepo) Ensure(_ context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.state[userID]; !ok {
		f.state[userID] = &models.UserProgressState{UserID: userID, Level: 1}
	}
	if _, ok := f.stats[userID]; !ok {
		f.stats[userID] = &models.UserStats{UserID: userID, Level: 1}
	}
	return nil
}

func (f *fakeProgressRepo) Get(_ context.Context, userID string) (*models.UserProgressState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	state, ok := f.state[userID]
	if !ok {
		return nil, models.NewHTTPError(models.ErrCodeNotFound, "progress not found", 404, nil)
	}
	copied := *state
	return &copied, nil
}

func (f *fakeProgressRepo) GetTx(ctx context.Context, _ pgx.Tx, userID string) (*models.UserProgressState, error) {
	return f.Get(ctx, userID)
}

func (f *fakeProgressRepo) IncrementXPTx(_ context.Context, _ pgx.Tx, userID string, delta int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state[userID].XPTotal += int64(delta)
	f.stats[userID].XPTotal = f.state[userID].XPTotal
	return f.state[userID].XPTotal, nil
}

func (f *fakeProgressRepo) SetLevelTx(_ context.Context, _ pgx.Tx, userID string, level int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state[userID].Level = level
	f.stats[userID].Level = level
	return nil
}

func (f *fakeProgressRepo) UpdateStreakTx(_ context.Context, _ pgx.Tx, userID string, streak int, lastActive time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state[userID].StreakCount = streak
	f.state[userID].LastActiveDate = lastActive
	f.stats[userID].StreakCount = streak
	return nil
}

func (f *fakeProgressRepo) StatsTx(_ context.Context, _ pgx.Tx, userID string) (models.UserStats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.stats[userID], nil
}

func (f *fakeProgressRepo) ListRanked(_ context.Context) ([]models.RankedUser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var users []models.RankedUser
	for id, username := range f.users {
		user := models.RankedUser{UserID: id, Username: username, Level: 1}
		if state, ok := f.state[id]; ok {
			user.Level = state.Level
			user.Score = state.XPTotal
		}
		users = append(users, user)
	}
	return users, nil
}

func (f *fakeProgressRepo) WithTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeXPEventRepo struct {
	mu     sync.Mutex
	events map[string]models.XPEvent // by event id
}

func newFakeXPEventRepo() *fakeXPEventRepo {
	return &fakeXPEventRepo{events: make(map[string]models.XPEvent)}
}

func (f *fakeXPEventRepo) InsertTx(_ context.Context, _ pgx.Tx, event *models.XPEvent) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[event.EventID]; ok {
		return false, nil
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	f.events[event.EventID] = *event
	return true, nil
}

func (f *fakeXPEventRepo) SumByUserSince(_ context.Context, since time.Time) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sums := make(map[string]int64)
	for _, event := range f.events {
		if !event.CreatedAt.Before(since) {
			sums[event.UserID] += int64(event.Amount)
		}
	}
	return sums, nil
}

func (f *fakeXPEventRepo) ListByUser(_ context.Context, userID string, limit int) ([]models.XPEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var events []models.XPEvent
	for _, event := range f.events {
		if event.UserID == userID && len(events) < limit {
			events = append(events, event)
		}
	}
	return events, nil
}

type fakeBadgeRepo struct {
	mu      sync.Mutex
	catalog map[string]models.Badge
	earned  map[string]map[string]time.Time // user -> badge -> earned at
}

func newFakeBadgeRepo() *fakeBadgeRepo {
	return &fakeBadgeRepo{
		catalog: make(map[string]models.Badge),
		earned:  make(map[string]map[string]time.Time),
	}
}

func (f *fakeBadgeRepo) SeedCatalog(_ context.Context, catalog []models.Badge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, badge := range catalog {
		f.catalog[badge.ID] = badge
	}
	return nil
}

func (f *fakeBadgeRepo) EarnedIDsTx(_ context.Context, _ pgx.Tx, userID string) (map[string]bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	earned := make(map[string]bool)
	for id := range f.earned[userID] {
		earned[id] = true
	}
	return earned, nil
}

func (f *fakeBadgeRepo) AwardTx(_ context.Context, _ pgx.Tx, userID, badgeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.earned[userID] == nil {
		f.earned[userID] = make(map[string]time.Time)
	}
	if _, ok := f.earned[userID][badgeID]; !ok {
		f.earned[userID][badgeID] = time.Now()
	}
	return nil
}

func (f *fakeBadgeRepo) ListByUser(_ context.Context, userID string) ([]models.UserBadge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []models.UserBadge
	for id, at := range f.earned[userID] {
		badge := f.catalog[id]
		list = append(list, models.UserBadge{UserID: userID, BadgeID: id, EarnedAt: at, Badge: &badge})
	}
	return list, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events []models.GamificationEvent
}

func (f *fakeNotifier) Notify(_ string, event models.GamificationEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakeNotifier) byType(eventType string) []models.GamificationEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []models.GamificationEvent
	for _, event := range f.events {
		if event.Type == eventType {
			matched = append(matched, event)
		}
	}
	return matched
}

type fakeQuizRepo struct {
	quizzes map[string]models.QuizDefinition
}

func newFakeQuizRepo(quizzes ...models.QuizDefinition) *fakeQuizRepo {
	repo := &fakeQuizRepo{quizzes: make(map[string]models.QuizDefinition)}
	for _, quiz := range quizzes {
		repo.quizzes[quiz.ID] = quiz
	}
	return repo
}

func (f *fakeQuizRepo) Create(_ context.Context, quiz *models.QuizDefinition) error {
	f.quizzes[quiz.ID] = *quiz
	return nil
}

func (f *fakeQuizRepo) GetByID(_ context.Context, id string) (*models.QuizDefinition, error) {
	quiz, ok := f.quizzes[id]
	if !ok {
		return nil, models.ErrQuizNotFound
	}
	return &quiz, nil
}

func (f *fakeQuizRepo) ListByTopic(_ context.Context, topicID string) ([]models.QuizSummary, error) {
	var summaries []models.QuizSummary
	for _, quiz := range f.quizzes {
		if quiz.TopicID == topicID {
			summaries = append(summaries, quiz.Summary())
		}
	}
	return summaries, nil
}

func (f *fakeQuizRepo) List(_ context.Context) ([]models.QuizSummary, error) {
	var summaries []models.QuizSummary
	for _, quiz := range f.quizzes {
		summaries = append(summaries, quiz.Summary())
	}
	return summaries, nil
}

type fakeAttemptRepo struct {
	mu        sync.Mutex
	attempts  []models.QuizAttemptResult
	insertErr error
}

func (f *fakeAttemptRepo) Insert(_ context.Context, attempt *models.QuizAttemptResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	for i := range f.attempts {
		if f.attempts[i].ID == attempt.ID {
			return nil
		}
	}
	f.attempts = append(f.attempts, *attempt)
	return nil
}

func (f *fakeAttemptRepo) setInsertErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.insertErr = err
}

func (f *fakeAttemptRepo) ListByUser(_ context.Context, userID string) ([]models.QuizAttemptResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []models.QuizAttemptResult
	for _, attempt := range f.attempts {
		if attempt.UserID == userID {
			list = append(list, attempt)
		}
	}
	return list, nil
}

type fakeTopicRepo struct {
	topics map[string]models.Topic
}

func newFakeTopicRepo(topics ...models.Topic) *fakeTopicRepo {
	repo := &fakeTopicRepo{topics: make(map[string]models.Topic)}
	for _, topic := range topics {
		repo.topics[topic.ID] = topic
	}
	return repo
}

func (f *fakeTopicRepo) Create(_ context.Context, topic *models.Topic) error {
	f.topics[topic.ID] = *topic
	return nil
}

func (f *fakeTopicRepo) GetByID(_ context.Context, id string) (*models.Topic, error) {
	topic, ok := f.topics[id]
	if !ok {
		return nil, models.ErrTopicNotFound
	}
	return &topic, nil
}

func (f *fakeTopicRepo) List(_ context.Context) ([]models.Topic, error) {
	var topics []models.Topic
	for _, topic := range f.topics {
		topics = append(topics, topic)
	}
	return topics, nil
}

type fakeTopicProgressRepo struct {
	mu   sync.Mutex
	rows map[string]*models.TopicProgress // user|topic
}

func newFakeTopicProgressRepo() *fakeTopicProgressRepo {
	return &fakeTopicProgressRepo{rows: make(map[string]*models.TopicProgress)}
}

func (f *fakeTopicProgressRepo) Upsert(_ context.Context, progress *models.TopicProgress) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := progress.UserID + "|" + progress.TopicID
	if existing, ok := f.rows[key]; ok {
		if existing.Percent > progress.Percent {
			progress.Percent = existing.Percent
		}
		progress.Completed = progress.Completed || existing.Completed
	}
	progress.UpdatedAt = time.Now()
	copied := *progress
	f.rows[key] = &copied
	return nil
}

func (f *fakeTopicProgressRepo) Get(_ context.Context, userID, topicID string) (*models.TopicProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[userID+"|"+topicID]
	if !ok {
		return nil, models.NewHTTPError(models.ErrCodeNotFound, "topic progress not found", 404, nil)
	}
	copied := *row
	return &copied, nil
}

func (f *fakeTopicProgressRepo) ListByUser(_ context.Context, userID string) ([]models.TopicProgress, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var list []models.TopicProgress
	for _, row := range f.rows {
		if row.UserID == userID {
			list = append(list, *row)
		}
	}
	return list, nil
}
