package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/rs/cors"

	getadmin "github.com/Ph2006/sistema-orbit-sub006/http-server/admin/get"
	saveadmin "github.com/Ph2006/sistema-orbit-sub006/http-server/admin/save"
	upadmin "github.com/Ph2006/sistema-orbit-sub006/http-server/admin/update"
	getassignments "github.com/Ph2006/sistema-orbit-sub006/http-server/assignments/get"
	saveassignments "github.com/Ph2006/sistema-orbit-sub006/http-server/assignments/save"
	upassignments "github.com/Ph2006/sistema-orbit-sub006/http-server/assignments/update"
	getcalendar "github.com/Ph2006/sistema-orbit-sub006/http-server/calendar/get"
	feasibilityhttp "github.com/Ph2006/sistema-orbit-sub006/http-server/feasibility"
	generate_excel "github.com/Ph2006/sistema-orbit-sub006/http-server/generate-report/generate-excel"
	getleadtime "github.com/Ph2006/sistema-orbit-sub006/http-server/leadtime/get"
	gettasks "github.com/Ph2006/sistema-orbit-sub006/http-server/tasks/get"
	"github.com/Ph2006/sistema-orbit-sub006/internal/config"
	"github.com/Ph2006/sistema-orbit-sub006/internal/middleware/auth"
	"github.com/Ph2006/sistema-orbit-sub006/internal/service/planning"
	"github.com/Ph2006/sistema-orbit-sub006/internal/service/report"
)

func routes(cfg config.Config, log *slog.Logger, svc *planning.Service, reports *report.Service) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})

	router.Route("/api", func(r chi.Router) {
		r.Get("/calendar", getcalendar.GetCalendar(log, svc))
		r.Get("/calendar/working-day", getcalendar.GetWorkingDay(log, svc))
		r.Get("/calendar/add-business-days", getcalendar.GetAddBusinessDays(log, svc))

		r.Get("/tasks", gettasks.GetTasks(log, svc))
		r.Get("/products/{productID}/lead-time", getleadtime.GetLeadTime(log, svc))

		r.Get("/orders/{orderID}/assignments", getassignments.GetAssignments(log, svc))
		r.Post("/orders/{orderID}/assignments", saveassignments.CreateAssignment(log, svc))
		r.Put("/orders/{orderID}/assignments/{id}/schedule", upassignments.RescheduleAssignment(log, svc))
		r.Put("/orders/{orderID}/assignments/{id}/dependency", upassignments.ToggleDependency(log, svc))

		r.Post("/feasibility", feasibilityhttp.CalculateFeasibility(log, svc))

		r.Post("/report/feasibility/excel", generate_excel.FeasibilityReportExcel(log, svc))
		r.Get("/report/schedule/excel", generate_excel.ScheduleReportExcel(log, reports))

		r.Mount("/admin", adminRoutes(cfg, log, svc))
	})

	return router
}

func adminRoutes(cfg config.Config, log *slog.Logger, svc *planning.Service) *chi.Mux {
	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(log, cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Put("/calendar", upadmin.UpdateCalendarAdmin(log, svc))
	adminRouter.Post("/holidays", saveadmin.SaveHolidayAdmin(log, svc))
	adminRouter.Delete("/holidays/{id}", saveadmin.DeleteHolidayAdmin(log, svc))
	adminRouter.Post("/tasks", saveadmin.SaveTaskAdmin(log, svc))
	adminRouter.Get("/workload", getadmin.GetWorkloadAdmin(log, svc))
	adminRouter.Put("/workload", upadmin.UpdateWorkloadAdmin(log, svc))
	adminRouter.Put("/products/{productID}/plan", upadmin.UpdateProductionPlanAdmin(log, svc))

	return adminRouter
}
