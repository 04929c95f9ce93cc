package utils

import (
	"regexp"
	"strings"

	"learnhub/pkg/models"
)

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)

// ValidateUsername checks username shape before it reaches the database
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return models.ErrInvalidInput
	}
	return nil
}

// ValidateTopicTitle validates a topic title
func ValidateTopicTitle(title string) error {
	if len(strings.TrimSpace(title)) < 2 {
		return models.ErrInvalidInput
	}
	if len(title) > 255 {
		return models.ErrInvalidInput
	}
	return nil
}
