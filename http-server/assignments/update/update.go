package update

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/Ph2006/sistema-orbit-sub006/http-server/api"
	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

type Scheduler interface {
	RescheduleAssignment(ctx context.Context, orderID, id string, start time.Time, duration float64) ([]storage.TaskAssignment, error)
	ToggleDependency(ctx context.Context, orderID, dependentID, predecessorID string, enabled bool) ([]storage.TaskAssignment, error)
}

type Response struct {
	OrderID     string                   `json:"order_id"`
	Assignments []storage.TaskAssignment `json:"assignments"`
}

type ScheduleRequest struct {
	StartDate string  `json:"start_date"`
	Duration  float64 `json:"duration"`
}

type DependencyRequest struct {
	PredecessorID string `json:"predecessor_id"`
	Enabled       bool   `json:"enabled"`
}

// RescheduleAssignment moves one assignment and answers with the whole order after propagation.
func RescheduleAssignment(log *slog.Logger, scheduler Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.assignments.RescheduleAssignment"

		orderID := chi.URLParam(r, "orderID")
		id := chi.URLParam(r, "id")

		var req ScheduleRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		start, err := api.ParseDate(req.StartDate)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := scheduler.RescheduleAssignment(ctx, orderID, id, start, req.Duration)
		if err != nil {
			api.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, Response{OrderID: orderID, Assignments: list})
	}
}

func ToggleDependency(log *slog.Logger, scheduler Scheduler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.assignments.ToggleDependency"

		orderID := chi.URLParam(r, "orderID")
		id := chi.URLParam(r, "id")

		var req DependencyRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		if req.PredecessorID == "" {
			http.Error(w, "predecessor_id is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := scheduler.ToggleDependency(ctx, orderID, id, req.PredecessorID, req.Enabled)
		if err != nil {
			api.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, Response{OrderID: orderID, Assignments: list})
	}
}
