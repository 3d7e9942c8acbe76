package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Ph2006/sistema-orbit-sub006/internal/service/calendar"
	"github.com/Ph2006/sistema-orbit-sub006/internal/service/dependency"
	"github.com/Ph2006/sistema-orbit-sub006/internal/service/planning"
	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

const DateLayout = time.DateOnly

// Status maps service errors to HTTP status codes. Unknown errors are 500.
func Status(err error) int {
	switch {
	case errors.Is(err, dependency.ErrAssignmentNotFound),
		errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, dependency.ErrDependencyCycle),
		errors.Is(err, planning.ErrReadOnlyWorkload):
		return http.StatusConflict
	case errors.Is(err, dependency.ErrInvalidDuration),
		errors.Is(err, dependency.ErrSelfDependency),
		errors.Is(err, planning.ErrInvalidProgress),
		errors.Is(err, planning.ErrMissingStart),
		errors.Is(err, planning.ErrInvalidPlan),
		errors.Is(err, planning.ErrInvalidWorkload),
		errors.Is(err, planning.ErrInvalidQuantity),
		errors.Is(err, planning.ErrInvalidTask),
		errors.Is(err, planning.ErrMissingHoliday),
		errors.Is(err, calendar.ErrNoWorkingDays):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error logs err and writes it with the mapped status. Internal details are not sent on 500.
func Error(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	status := Status(err)

	if status == http.StatusInternalServerError {
		log.Error("request failed", slog.String("op", op), slog.String("error", err.Error()))
		http.Error(w, "Internal error", status)
		return
	}

	log.Warn("request rejected", slog.String("op", op), slog.String("error", err.Error()))
	http.Error(w, err.Error(), status)
}

// ParseDate accepts YYYY-MM-DD or RFC 3339. Date-only values are midnight UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}
