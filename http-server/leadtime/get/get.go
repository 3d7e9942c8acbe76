package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/Ph2006/sistema-orbit-sub006/http-server/api"
	"github.com/Ph2006/sistema-orbit-sub006/internal/service/planning"
)

type LeadTimeProvider interface {
	ProductLeadTime(ctx context.Context, productID string) (planning.LeadTime, error)
}

func GetLeadTime(log *slog.Logger, provider LeadTimeProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.leadtime.GetLeadTime"

		productID := chi.URLParam(r, "productID")
		if productID == "" {
			http.Error(w, "Missing product id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		lt, err := provider.ProductLeadTime(ctx, productID)
		if err != nil {
			api.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, lt)
	}
}
