package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"learnhub/pkg/models"
	"learnhub/pkg/utils"
)

// listTopics returns the topic catalog
func (s *Server) listTopics(c *gin.Context) {
	topics, err := s.progressSvc.ListTopics(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, "", gin.H{"topics": topics})
}

// getProgress returns the user's XP, level and streak state
func (s *Server) getProgress(c *gin.Context) {
	userID, _ := GetUserID(c)

	state, err := s.gamificationSvc.GetProgress(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, "", state)
}

// listTopicProgress returns the user's per-topic progress rows
func (s *Server) listTopicProgress(c *gin.Context) {
	userID, _ := GetUserID(c)

	rows, err := s.progressSvc.ListTopicProgress(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, "", gin.H{"progress": rows})
}

// updateTopicProgress upserts content progress and may trigger a completion
// award
func (s *Server) updateTopicProgress(c *gin.Context) {
	userID, _ := GetUserID(c)

	var req models.UpdateTopicProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, "invalid request body")
		return
	}
	if req.TopicID == "" {
		fail(c, 400, "topic_id is required")
		return
	}
	if req.Percent < 0 || req.Percent > 100 {
		fail(c, 400, "percent must be between 0 and 100")
		return
	}

	row, award, err := s.progressSvc.UpdateTopicProgress(c.Request.Context(), userID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	data := gin.H{"progress": row}
	if award != nil {
		data["award"] = award
	}
	ok(c, "Progress updated", data)
}

// getProgressReport returns the chart-facing aggregation
func (s *Server) getProgressReport(c *gin.Context) {
	userID, _ := GetUserID(c)

	report, err := s.progressSvc.GetReport(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, "", report)
}

// createTopic registers a new topic (admin only)
func (s *Server) createTopic(c *gin.Context) {
	var topic models.Topic
	if err := c.ShouldBindJSON(&topic); err != nil {
		fail(c, 400, "invalid request body")
		return
	}
	if topic.ID == "" {
		topic.ID = utils.GenerateID("topic")
	}

	if err := s.progressSvc.CreateTopic(c.Request.Context(), &topic); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(201, models.APIResponse{
		Success:   true,
		Message:   "Topic created",
		Data:      gin.H{"topic": topic},
		Timestamp: time.Now(),
	})
}
