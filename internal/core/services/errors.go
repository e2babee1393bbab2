package services

import (
	"errors"

	"github.com/sm8ta/station_control_console/internal/core/domain"
)

var (
	ErrSessionNotFound  = errors.New("form session not found")
	ErrSubmitInProgress = errors.New("submission already in progress")
	ErrInvalidDraft     = errors.New("draft is not valid")
)

// userMessage returns the server-provided message carried by err, or
// fallback when there is none.
func userMessage(err error, fallback string) string {
	var apiErr *domain.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
