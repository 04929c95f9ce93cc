package http

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"learnhub/internal/core"
	"learnhub/pkg/models"
)

// register handles user registration
func (s *Server) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		fail(c, 400, "username and password are required")
		return
	}

	user, err := s.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		status := 400
		if errors.Is(err, core.ErrUsernameTaken) {
			status = 409
		}
		fail(c, status, err.Error())
		return
	}

	c.JSON(201, models.APIResponse{
		Success:   true,
		Message:   "User registered successfully",
		Data:      gin.H{"user": user},
		Timestamp: time.Now(),
	})
}

// login authenticates and returns a JWT token
func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, 400, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		fail(c, 400, "username and password are required")
		return
	}

	resp, err := s.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		fail(c, 401, "invalid credentials")
		return
	}

	ok(c, "Login successful", resp)
}

// dailyLogin grants the once-per-day login XP bonus
func (s *Server) dailyLogin(c *gin.Context) {
	userID, _ := GetUserID(c)

	result, err := s.gamificationSvc.DailyLogin(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	message := "Daily login bonus granted"
	if !result.Applied {
		message = "Daily login bonus already claimed today"
	}
	ok(c, message, result)
}

// me returns the authenticated user's profile with progression state
func (s *Server) me(c *gin.Context) {
	userID, _ := GetUserID(c)
	user, _ := GetUser(c)

	state, err := s.gamificationSvc.GetProgress(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	ok(c, "", gin.H{"user": user, "progress": state})
}

// ok writes the standard success envelope
func ok(c *gin.Context, message string, data interface{}) {
	c.JSON(200, models.APIResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}

// fail writes the standard error envelope
func fail(c *gin.Context, status int, message string) {
	c.JSON(status, models.APIResponse{
		Success:   false,
		Error:     message,
		Timestamp: time.Now(),
	})
}

// writeServiceError maps service errors onto HTTP statuses
func writeServiceError(c *gin.Context, err error) {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		status := appErr.StatusCode
		if status == 0 {
			status = 500
		}
		fail(c, status, appErr.Message)
		return
	}

	switch {
	case errors.Is(err, models.ErrSessionNotFound),
		errors.Is(err, models.ErrQuizNotFound),
		errors.Is(err, models.ErrTopicNotFound):
		fail(c, 404, err.Error())
	case errors.Is(err, models.ErrSessionActive):
		fail(c, 409, err.Error())
	case errors.Is(err, models.ErrSessionCompleted),
		errors.Is(err, models.ErrAnswerOutOfRange),
		errors.Is(err, models.ErrAdvanceUnrevealed),
		errors.Is(err, models.ErrNegativeXPDelta),
		errors.Is(err, models.ErrInvalidDate):
		fail(c, 400, err.Error())
	default:
		fail(c, 500, "internal server error")
	}
}
