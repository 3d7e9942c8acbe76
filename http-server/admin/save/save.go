package save

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/Ph2006/sistema-orbit-sub006/http-server/api"
	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

type HolidayStore interface {
	SaveHoliday(ctx context.Context, h storage.Holiday) (storage.Holiday, error)
	DeleteHoliday(ctx context.Context, id int64) error
}

type TaskStore interface {
	SaveTask(ctx context.Context, t storage.Task) (storage.Task, error)
}

type HolidayRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

func SaveHolidayAdmin(log *slog.Logger, store HolidayStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.SaveHolidayAdmin"

		var req HolidayRequest
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		date, err := api.ParseDate(req.Date)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		h, err := store.SaveHoliday(ctx, storage.Holiday{Date: date, Name: req.Name})
		if err != nil {
			api.Error(w, log, op, err)
			return
		}

		log.Info("holiday saved", slog.String("date", req.Date), slog.Int64("id", h.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, h)
	}
}

func DeleteHolidayAdmin(log *slog.Logger, store HolidayStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.DeleteHolidayAdmin"

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid holiday id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := store.DeleteHoliday(ctx, id); err != nil {
			api.Error(w, log, op, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func SaveTaskAdmin(log *slog.Logger, store TaskStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.SaveTaskAdmin"

		var task storage.Task
		if err := render.DecodeJSON(r.Body, &task); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		saved, err := store.SaveTask(ctx, task)
		if err != nil {
			api.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, saved)
	}
}
