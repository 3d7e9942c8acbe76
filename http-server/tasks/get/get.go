package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/Ph2006/sistema-orbit-sub006/http-server/api"
	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

type TaskLister interface {
	Tasks(ctx context.Context) ([]storage.Task, error)
}

func GetTasks(log *slog.Logger, lister TaskLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.tasks.GetTasks"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		tasks, err := lister.Tasks(ctx)
		if err != nil {
			api.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, tasks)
	}
}
