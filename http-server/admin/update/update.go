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

type CalendarUpdater interface {
	SaveCalendar(ctx context.Context, cal storage.CompanyCalendar) error
}

type WorkloadUpdater interface {
	SaveSectorWorkload(ctx context.Context, list []storage.SectorWorkload) error
}

type PlanUpdater interface {
	SaveProductionPlan(ctx context.Context, plan storage.ProductionPlan) error
}

func UpdateCalendarAdmin(log *slog.Logger, updater CalendarUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.UpdateCalendarAdmin"

		var cal storage.CompanyCalendar
		if err := render.DecodeJSON(r.Body, &cal); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := updater.SaveCalendar(ctx, cal); err != nil {
			api.Error(w, log, op, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func UpdateWorkloadAdmin(log *slog.Logger, updater WorkloadUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.UpdateWorkloadAdmin"

		var list []storage.SectorWorkload
		if err := render.DecodeJSON(r.Body, &list); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := updater.SaveSectorWorkload(ctx, list); err != nil {
			api.Error(w, log, op, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func UpdateProductionPlanAdmin(log *slog.Logger, updater PlanUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.UpdateProductionPlanAdmin"

		var req struct {
			Stages []storage.Stage `json:"stages"`
		}
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		plan := storage.ProductionPlan{
			ProductID: chi.URLParam(r, "productID"),
			Stages:    req.Stages,
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := updater.SaveProductionPlan(ctx, plan); err != nil {
			api.Error(w, log, op, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
