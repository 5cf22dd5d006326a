package schoolapi

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrSessionInvalid is raised when the backend answers 401 on an
// authenticated call. By then the bound token store has already been
// cleared; a single top-level listener translates this signal into a
// navigation command (redirect to the login view), keeping transport
// code out of the routing business.
var ErrSessionInvalid = errors.New("session invalidated")

// APIError carries the backend's verdict on a failed call. Non-401
// failures are never retried here; callers own their user-facing
// messaging.
type APIError struct {
	Op         string
	StatusCode int
	Message    string
	Fields     map[string]string
	Err        error
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Err != nil && e.StatusCode > 0:
		return fmt.Sprintf("%s: status=%d: %v", e.Op, e.StatusCode, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "" && e.StatusCode > 0:
		return fmt.Sprintf("%s: status=%d: %s", e.Op, e.StatusCode, e.Message)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s: status=%d", e.Op, e.StatusCode)
	default:
		return e.Op
	}
}

func (e *APIError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// UserMessage returns the most presentable message the backend sent.
func (e *APIError) UserMessage() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	for _, msg := range e.Fields {
		return msg
	}
	return "request failed"
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// parseAPIError maps the backend's JSON error payloads onto an APIError.
// The backend answers either {"error": "..."} / {"message": "..."} /
// {"detail": "..."} or a per-field map of messages.
func parseAPIError(op string, status int, body []byte) *APIError {
	apiErr := &APIError{Op: op, StatusCode: status}
	if len(body) == 0 {
		return apiErr
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}

	for _, key := range []string{"error", "message", "detail"} {
		var msg string
		if raw, ok := payload[key]; ok && json.Unmarshal(raw, &msg) == nil {
			apiErr.Message = msg
			delete(payload, key)
			break
		}
	}

	for field, raw := range payload {
		var msg string
		if json.Unmarshal(raw, &msg) == nil {
			addFieldError(apiErr, field, msg)
			continue
		}
		var msgs []string
		if json.Unmarshal(raw, &msgs) == nil && len(msgs) > 0 {
			addFieldError(apiErr, field, msgs[0])
		}
	}
	return apiErr
}

func addFieldError(e *APIError, field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = msg
}
