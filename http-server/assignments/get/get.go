package get

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

type AssignmentsProvider interface {
	OrderAssignments(ctx context.Context, orderID string) ([]storage.TaskAssignment, error)
}

type Response struct {
	OrderID     string                   `json:"order_id"`
	Assignments []storage.TaskAssignment `json:"assignments"`
}

func GetAssignments(log *slog.Logger, provider AssignmentsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.assignments.GetAssignments"

		orderID := chi.URLParam(r, "orderID")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := provider.OrderAssignments(ctx, orderID)
		if err != nil {
			api.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, Response{OrderID: orderID, Assignments: list})
	}
}
