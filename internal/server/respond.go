package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/javiermolinar/rocinante/internal/activity"
	"github.com/javiermolinar/rocinante/internal/dateutil"
	"github.com/javiermolinar/rocinante/internal/task"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

func respondError(w http.ResponseWriter, r *http.Request, status int, message string) {
	respondJSON(w, status, ErrorResponse{
		Error:     message,
		RequestID: middleware.GetReqID(r.Context()),
	})
}

// respondDomainError maps domain errors to status codes. Unknown errors are
// logged and reported as 500 without their detail.
func (s *Server) respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	var statusErr *activity.StatusError
	switch {
	case errors.Is(err, task.ErrProjectNotFound), errors.Is(err, task.ErrTaskNotFound):
		respondError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, task.ErrProjectExists), errors.Is(err, task.ErrAmbiguousTaskID):
		respondError(w, r, http.StatusConflict, err.Error())
	case errors.Is(err, task.ErrEmptyTitle),
		errors.Is(err, task.ErrEmptyProjectName),
		errors.Is(err, task.ErrInvalidPriority),
		errors.Is(err, task.ErrEndBeforeStart),
		errors.Is(err, dateutil.ErrInvalidDateFormat),
		errors.Is(err, dateutil.ErrInvalidMonthFormat):
		respondError(w, r, http.StatusBadRequest, err.Error())
	case errors.As(err, &statusErr):
		respondError(w, r, http.StatusBadGateway, statusErr.Error())
	default:
		s.logger.Error("request failed",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
		)
		respondError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

var (
	errInvalidMonth = errors.New("month must be between 1 and 12")
	errInvalidYear  = errors.New("year must be between 1 and 9999")
)

type queryError struct {
	key, value string
}

func (e *queryError) Error() string {
	return "invalid " + e.key + ": " + e.value
}
