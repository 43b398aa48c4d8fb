package unifiedauth

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prepbettr/unifiedauth/core"
)

// ErrorBody is the JSON failure shape shared by every adapter:
// {"error": ..., "code": ..., "details": ...}.
type ErrorBody struct {
	Error   string         `json:"error"`
	Code    core.ErrorCode `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is a ready-to-send platform error: an HTTP status plus
// the standard JSON body. Adapters build one per failure and emit it in
// their platform's idiom.
type ErrorResponse struct {
	StatusCode int
	Body       ErrorBody
}

// NewErrorResponse builds the response for a taxonomy error.
func NewErrorResponse(err *core.AuthError) *ErrorResponse {
	return &ErrorResponse{
		StatusCode: err.StatusCode,
		Body: ErrorBody{
			Error:   err.Message,
			Code:    err.Code,
			Details: err.Details,
		},
	}
}

// ResponseFromError converts any error into an ErrorResponse. Taxonomy
// errors keep their code and status; anything else becomes a 500
// UNKNOWN_ERROR, never leaking internal messages.
func ResponseFromError(err error) *ErrorResponse {
	if authErr, ok := core.AsAuthError(err); ok {
		return NewErrorResponse(authErr)
	}
	return &ErrorResponse{
		StatusCode: http.StatusInternalServerError,
		Body: ErrorBody{
			Error: "authentication failed unexpectedly",
			Code:  core.ErrorCodeUnknownError,
		},
	}
}

// Write emits the response on w.
func (r *ErrorResponse) Write(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.StatusCode)
	_ = json.NewEncoder(w).Encode(r.Body)
}

// HealthBody is the happy-path health-check shape:
// {"status": "healthy", "timestamp": ..., "service": ...}.
type HealthBody struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Service   string `json:"service"`
}

// NewHealthBody builds the health body for a service name.
func NewHealthBody(service string) HealthBody {
	return HealthBody{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   service,
	}
}
