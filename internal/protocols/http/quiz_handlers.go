package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"learnhub/pkg/models"
	"learnhub/pkg/utils"
)

// listQuizzes returns the quiz catalog without answer keys
func (s *Server) listQuizzes(c *gin.Context) {
	summaries, err := s.quizSvc.List(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, "", gin.H{"quizzes": summaries})
}

// listTopicQuizzes returns the quizzes attached to one topic
func (s *Server) listTopicQuizzes(c *gin.Context) {
	summaries, err := s.quizSvc.ListByTopic(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, "", gin.H{"quizzes": summaries})
}

type startSessionRequest struct {
	QuizID string `json:"quiz_id" binding:"required"`
}

// startQuizSession starts the user's quiz session and its countdown
func (s *Server) startQuizSession(c *gin.Context) {
	userID, _ := GetUserID(c)

	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, "quiz_id is required")
		return
	}

	view, err := s.quizSvc.Start(c.Request.Context(), userID, req.QuizID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, "Quiz session started", view)
}

// getQuizSession returns the current session snapshot
func (s *Server) getQuizSession(c *gin.Context) {
	userID, _ := GetUserID(c)

	view, err := s.quizSvc.Current(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, "", view)
}

type answerRequest struct {
	OptionIndex *int `json:"option_index" binding:"required"`
}

// answerQuizQuestion locks in an answer and reveals the correct option
func (s *Server) answerQuizQuestion(c *gin.Context) {
	userID, _ := GetUserID(c)

	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.OptionIndex == nil {
		fail(c, 400, "option_index is required")
		return
	}

	view, err := s.quizSvc.Answer(c.Request.Context(), userID, *req.OptionIndex)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, "", view)
}

// advanceQuizSession moves to the next question or completes the attempt
func (s *Server) advanceQuizSession(c *gin.Context) {
	userID, _ := GetUserID(c)

	outcome, err := s.quizSvc.Advance(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	message := ""
	if outcome.Attempt != nil {
		message = "Quiz completed"
	}
	ok(c, message, outcome)
}

// abandonQuizSession discards the session without scoring
func (s *Server) abandonQuizSession(c *gin.Context) {
	userID, _ := GetUserID(c)

	if err := s.quizSvc.Abandon(c.Request.Context(), userID); err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, "Quiz session abandoned", nil)
}

// listQuizAttempts returns the user's attempt history
func (s *Server) listQuizAttempts(c *gin.Context) {
	userID, _ := GetUserID(c)

	attempts, err := s.quizSvc.Attempts(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	ok(c, "", gin.H{"attempts": attempts})
}

// createQuiz registers a new quiz definition (admin only)
func (s *Server) createQuiz(c *gin.Context) {
	var quiz models.QuizDefinition
	if err := c.ShouldBindJSON(&quiz); err != nil {
		fail(c, 400, "invalid request body")
		return
	}
	if quiz.ID == "" {
		quiz.ID = utils.GenerateID("quiz")
	}
	if err := quiz.Validate(); err != nil {
		fail(c, 400, err.Error())
		return
	}

	if err := s.quizSvc.Create(c.Request.Context(), &quiz); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(201, models.APIResponse{
		Success:   true,
		Message:   "Quiz created",
		Data:      gin.H{"quiz": quiz.Summary()},
		Timestamp: time.Now(),
	})
}
