package core

import (
	"context"
	"fmt"

	"learnhub/internal/progress"
	"learnhub/internal/repository"
	"learnhub/pkg/models"
	"learnhub/pkg/utils"
)

// ProgressService handles topic progress writes and the derived dashboard
// report.
type ProgressService interface {
	UpdateTopicProgress(ctx context.Context, userID string, req models.UpdateTopicProgressRequest) (*models.TopicProgress, *models.AwardResult, error)
	ListTopicProgress(ctx context.Context, userID string) ([]models.TopicProgress, error)
	GetReport(ctx context.Context, userID string) (*models.ProgressReport, error)
	ListTopics(ctx context.Context) ([]models.Topic, error)
	CreateTopic(ctx context.Context, topic *models.Topic) error
}

type progressService struct {
	topicRepo         repository.TopicRepository
	topicProgressRepo repository.TopicProgressRepository
	attemptRepo       repository.AttemptRepository
	gamification      GamificationService
	aggregator        *progress.Aggregator
}

// NewProgressService creates the progress service.
func NewProgressService(
	topicRepo repository.TopicRepository,
	topicProgressRepo repository.TopicProgressRepository,
	attemptRepo repository.AttemptRepository,
	gamificationSvc GamificationService,
	aggregator *progress.Aggregator,
) ProgressService {
	return &progressService{
		topicRepo:         topicRepo,
		topicProgressRepo: topicProgressRepo,
		attemptRepo:       attemptRepo,
		gamification:      gamificationSvc,
		aggregator:        aggregator,
	}
}

// UpdateTopicProgress upserts a progress row and, when this write crosses
// into completion, grants the topic's XP reward. The topic id keys the award
// so a topic pays out once no matter how often completion is re-sent.
func (s *progressService) UpdateTopicProgress(ctx context.Context, userID string, req models.UpdateTopicProgressRequest) (*models.TopicProgress, *models.AwardResult, error) {
	topic, err := s.topicRepo.GetByID(ctx, req.TopicID)
	if err != nil {
		return nil, nil, err
	}

	percent := models.ClampPercent(req.Percent)
	completed := req.Completed || percent == 100
	if completed {
		percent = 100
	}

	row := &models.TopicProgress{
		UserID:    userID,
		TopicID:   req.TopicID,
		Percent:   percent,
		Completed: completed,
	}
	if err := s.topicProgressRepo.Upsert(ctx, row); err != nil {
		return nil, nil, err
	}

	if !row.Completed {
		return row, nil, nil
	}

	eventID := fmt.Sprintf("topic-%s-%s", userID, req.TopicID)
	award, err := s.gamification.Award(ctx, userID, eventID, models.XPSourceTopicCompleted, topic.XPReward)
	if err != nil {
		return nil, nil, err
	}
	return row, award, nil
}

func (s *progressService) ListTopicProgress(ctx context.Context, userID string) ([]models.TopicProgress, error) {
	return s.topicProgressRepo.ListByUser(ctx, userID)
}

// GetReport recomputes the dashboard aggregation from the authoritative
// rows. Pure read, safe to call as often as the charts refresh.
func (s *progressService) GetReport(ctx context.Context, userID string) (*models.ProgressReport, error) {
	topics, err := s.topicRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	topicProgress, err := s.topicProgressRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	attempts, err := s.attemptRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	report := s.aggregator.Summarize(topics, topicProgress, attempts)
	return &report, nil
}

func (s *progressService) ListTopics(ctx context.Context) ([]models.Topic, error) {
	return s.topicRepo.List(ctx)
}

func (s *progressService) CreateTopic(ctx context.Context, topic *models.Topic) error {
	if err := utils.ValidateTopicTitle(topic.Title); err != nil {
		return err
	}
	return s.topicRepo.Create(ctx, topic)
}
