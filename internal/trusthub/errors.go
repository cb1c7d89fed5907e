package trusthub

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/twctl/twctl/internal/apperrors"
)

// APIError is a non-2xx Twilio response. It unwraps to the apperrors class
// for its HTTP status, so callers can test it with errors.Is.
type APIError struct {
	Status   int    `json:"status"`
	Code     int    `json:"code"`
	Message  string `json:"message"`
	MoreInfo string `json:"more_info"`
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{}
	if err := json.Unmarshal(body, e); err != nil || e.Message == "" {
		e.Message = strings.TrimSpace(string(body))
		if e.Message == "" {
			e.Message = http.StatusText(status)
		}
	}
	e.Status = status
	return e
}

func (e *APIError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("twilio: HTTP %d (error %d): %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("twilio: HTTP %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperrors.ErrAuth
	case http.StatusTooManyRequests:
		return apperrors.ErrRateLimited
	default:
		return apperrors.ErrRemote
	}
}
