package save

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

type AssignmentCreator interface {
	CreateAssignment(ctx context.Context, a storage.TaskAssignment) (storage.TaskAssignment, error)
}

type Request struct {
	TaskID           string   `json:"task_id"`
	Duration         float64  `json:"duration"`
	StartDate        string   `json:"start_date"`
	Progress         int      `json:"progress"`
	DependsOn        []string `json:"depends_on"`
	ResponsibleEmail string   `json:"responsible_email"`
}

func CreateAssignment(log *slog.Logger, creator AssignmentCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.assignments.CreateAssignment"

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if req.TaskID == "" {
			http.Error(w, "task_id is required", http.StatusBadRequest)
			return
		}

		a := storage.TaskAssignment{
			OrderID:          chi.URLParam(r, "orderID"),
			TaskID:           req.TaskID,
			Duration:         req.Duration,
			Progress:         req.Progress,
			DependsOn:        req.DependsOn,
			ResponsibleEmail: req.ResponsibleEmail,
		}
		if req.StartDate != "" {
			start, err := api.ParseDate(req.StartDate)
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			a.StartDate = start
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		created, err := creator.CreateAssignment(ctx, a)
		if err != nil {
			api.Error(w, log, op, err)
			return
		}

		log.Info("assignment created", slog.String("op", op), slog.String("id", created.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, created)
	}
}
