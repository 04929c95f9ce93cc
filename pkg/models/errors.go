package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// Common error codes - HTTP focused but protocol-aware
const (
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeServiceUnavailable = "SERVICE_UNAVAILABLE"

	// Protocol-specific error codes
	ErrCodeWebSocketClose = "WEBSOCKET_CLOSE"
)

// Common errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrTopicNotFound      = errors.New("topic not found")
	ErrQuizNotFound       = errors.New("quiz not found")
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("unauthorized access")
	ErrForbidden          = errors.New("forbidden access")
	ErrInvalidInput       = errors.New("invalid input")

	// Quiz session errors
	ErrSessionNotFound    = errors.New("quiz session not found")
	ErrSessionCompleted   = errors.New("quiz session already completed")
	ErrSessionActive      = errors.New("a quiz session is already in progress")
	ErrAnswerOutOfRange   = errors.New("answer index out of range")
	ErrAdvanceUnrevealed  = errors.New("cannot advance before answering the current question")

	// Gamification errors
	ErrNegativeXPDelta = errors.New("xp delta cannot be negative")
	ErrInvalidDate     = errors.New("invalid activity date")
)

// AppError carries a code, message and per-protocol mapping hints
type AppError struct {
	Code          string                 `json:"code"`
	Message       string                 `json:"message"`
	StatusCode    int                    `json:"status_code,omitempty"`
	Details       map[string]interface{} `json:"details,omitempty"`
	Protocol      string                 `json:"protocol,omitempty"` // http, websocket
	WebSocketCode int                    `json:"websocket_code,omitempty"`
}

func (e *AppError) Error() string {
	if e.Protocol != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Protocol, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ToHTTPError converts to HTTP-compatible error response
func (e *AppError) ToHTTPError() *APIResponse {
	return &APIResponse{
		Success:   false,
		Error:     e.Message,
		Message:   e.Message,
		Timestamp: time.Now(),
	}
}

// ToWebSocketError returns WebSocket close code and message
func (e *AppError) ToWebSocketError() (int, string) {
	if e.WebSocketCode != 0 {
		return e.WebSocketCode, e.Message
	}
	switch e.Code {
	case ErrCodeUnauthorized, ErrCodeForbidden:
		return websocket.ClosePolicyViolation, e.Message
	case ErrCodeNotFound:
		return websocket.CloseNormalClosure, "resource not found"
	default:
		return websocket.CloseInternalServerErr, e.Message
	}
}

// NewHTTPError builds an HTTP-scoped application error
func NewHTTPError(code, message string, statusCode int, err error) *AppError {
	appErr := &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Protocol:   "http",
	}
	if err != nil {
		appErr.Details = map[string]interface{}{"original_error": err.Error()}
	}
	return appErr
}

// NewWebSocketError builds a WebSocket-scoped application error
func NewWebSocketError(wsCode int, code, message string, err error) *AppError {
	appErr := &AppError{
		Code:          code,
		Message:       message,
		WebSocketCode: wsCode,
		Protocol:      "websocket",
	}
	if err != nil {
		appErr.Details = map[string]interface{}{"original_error": err.Error()}
	}
	return appErr
}
