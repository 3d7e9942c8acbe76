package get

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/render"

	"github.com/Ph2006/sistema-orbit-sub006/http-server/api"
	"github.com/Ph2006/sistema-orbit-sub006/internal/service/calendar"
	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

// MaxBusinessDays bounds the days parameter of GetAddBusinessDays to ten years either way.
const MaxBusinessDays = 3650

type CalendarLoader interface {
	LoadCalendar(ctx context.Context) (*calendar.Calendar, error)
}

type CalendarResponse struct {
	Days     storage.CompanyCalendar `json:"days"`
	Holidays []storage.Holiday       `json:"holidays"`
}

type WorkingDayResponse struct {
	Date       string               `json:"date"`
	WorkingDay bool                 `json:"working_day"`
	Hours      []storage.TimeWindow `json:"hours"`
}

type AddBusinessDaysResponse struct {
	Date   string `json:"date"`
	Days   int    `json:"days"`
	Result string `json:"result"`
}

func GetCalendar(log *slog.Logger, loader CalendarLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.GetCalendar"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		cal, err := loader.LoadCalendar(ctx)
		if err != nil {
			api.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, CalendarResponse{
			Days:     cal.Template(),
			Holidays: cal.Holidays().Holidays(),
		})
	}
}

func GetWorkingDay(log *slog.Logger, loader CalendarLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.GetWorkingDay"

		date, err := api.ParseDate(r.URL.Query().Get("date"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		cal, err := loader.LoadCalendar(ctx)
		if err != nil {
			api.Error(w, log, op, err)
			return
		}

		hours := cal.WorkingHours(date)
		if hours == nil {
			hours = []storage.TimeWindow{}
		}

		render.JSON(w, r, WorkingDayResponse{
			Date:       date.Format(api.DateLayout),
			WorkingDay: cal.IsWorkingDay(date),
			Hours:      hours,
		})
	}
}

func GetAddBusinessDays(log *slog.Logger, loader CalendarLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.calendar.GetAddBusinessDays"

		date, err := api.ParseDate(r.URL.Query().Get("date"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		days, err := strconv.Atoi(r.URL.Query().Get("days"))
		if err != nil {
			http.Error(w, "Query parameter 'days' must be an integer", http.StatusBadRequest)
			return
		}
		if days > MaxBusinessDays || days < -MaxBusinessDays {
			http.Error(w, fmt.Sprintf("Query parameter 'days' must be between %d and %d", -MaxBusinessDays, MaxBusinessDays), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		cal, err := loader.LoadCalendar(ctx)
		if err != nil {
			api.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, AddBusinessDaysResponse{
			Date:   date.Format(api.DateLayout),
			Days:   days,
			Result: cal.AddBusinessDays(date, days).Format(api.DateLayout),
		})
	}
}
