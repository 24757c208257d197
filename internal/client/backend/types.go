package backend

import "fmt"

// APIError is a non-2xx answer from the task API.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Detail     string `json:"error,omitempty"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "unexpected response"
	}
	if e.Detail != "" {
		return fmt.Sprintf("API error status %d: %s: %s", e.StatusCode, msg, e.Detail)
	}
	return fmt.Sprintf("API error status %d: %s", e.StatusCode, msg)
}

type DeleteTaskResponse struct {
	Message string `json:"message"`
}
