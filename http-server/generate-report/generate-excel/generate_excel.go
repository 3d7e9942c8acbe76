package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/Ph2006/sistema-orbit-sub006/http-server/api"
	feasibilityhttp "github.com/Ph2006/sistema-orbit-sub006/http-server/feasibility"
	"github.com/Ph2006/sistema-orbit-sub006/internal/service/report"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ScheduleExporter interface {
	ScheduleExcel(ctx context.Context, orderID string) ([]byte, error)
}

func writeExcel(w http.ResponseWriter, name string, data []byte) {
	fileName := fmt.Sprintf("%s_%s.xlsx", name, time.Now().Format("2006-01-02_150405"))

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
	w.Write(data)
}

// FeasibilityReportExcel runs a feasibility estimate for the posted items and returns it as a workbook.
func FeasibilityReportExcel(log *slog.Logger, calc feasibilityhttp.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.FeasibilityReportExcel"

		items, requested, err := feasibilityhttp.Decode(r)
		if err != nil {
			http.Error(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		res, err := calc.Feasibility(ctx, items, requested)
		if err != nil {
			api.Error(w, log, op, err)
			return
		}

		data, err := report.FeasibilityExcel(res, requested)
		if err != nil {
			api.Error(w, log, op, err)
			return
		}

		writeExcel(w, "Viabilidade", data)
	}
}

func ScheduleReportExcel(log *slog.Logger, exporter ScheduleExporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.ScheduleReportExcel"

		orderID := r.URL.Query().Get("order_id")
		if orderID == "" {
			http.Error(w, "Missing required query parameter 'order_id'", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		data, err := exporter.ScheduleExcel(ctx, orderID)
		if err != nil {
			api.Error(w, log, op, err)
			return
		}

		writeExcel(w, "Cronograma_"+orderID, data)
	}
}
