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

type WorkloadProvider interface {
	SectorWorkload(ctx context.Context, stages []string) ([]storage.SectorWorkload, error)
}

// GetWorkloadAdmin shows the workload the estimator sees for ?stage=A&stage=B.
func GetWorkloadAdmin(log *slog.Logger, provider WorkloadProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.GetWorkloadAdmin"

		stages := r.URL.Query()["stage"]
		if len(stages) == 0 {
			http.Error(w, "At least one 'stage' query parameter is required", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := provider.SectorWorkload(ctx, stages)
		if err != nil {
			api.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, list)
	}
}
