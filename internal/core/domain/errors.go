package domain

import "fmt"

// APIError is a non-2xx answer from the station-control API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("station api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("station api: status %d: %s", e.StatusCode, e.Message)
}
