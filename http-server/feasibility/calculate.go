package feasibility

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/Ph2006/sistema-orbit-sub006/http-server/api"
	"github.com/Ph2006/sistema-orbit-sub006/internal/service/feasibility"
	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

type Calculator interface {
	Feasibility(ctx context.Context, items []storage.CalculatorItem, requested time.Time) (feasibility.Result, error)
}

type Request struct {
	Items         []storage.CalculatorItem `json:"items"`
	RequestedDate string                   `json:"requested_date"`
}

type Response struct {
	feasibility.Result
	Bottlenecks []string `json:"bottlenecks"`
}

// Decode reads a feasibility request body. It is shared with the Excel export.
func Decode(r *http.Request) ([]storage.CalculatorItem, time.Time, error) {
	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		return nil, time.Time{}, err
	}

	requested, err := api.ParseDate(req.RequestedDate)
	if err != nil {
		return nil, time.Time{}, err
	}

	return req.Items, requested, nil
}

func CalculateFeasibility(log *slog.Logger, calc Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.feasibility.CalculateFeasibility"

		items, requested, err := Decode(r)
		if err != nil {
			http.Error(w, "Invalid request: "+err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		res, err := calc.Feasibility(ctx, items, requested)
		if err != nil {
			api.Error(w, log, op, err)
			return
		}

		if res.Analysis == nil {
			res.Analysis = []feasibility.StageAnalysis{}
		}

		names := []string{}
		for _, b := range res.Bottlenecks() {
			names = append(names, b.StageName)
		}

		log.Debug("feasibility calculated",
			slog.String("op", op),
			slog.Bool("viable", res.IsViable),
			slog.Int("confidence", res.Confidence))

		render.JSON(w, r, Response{Result: res, Bottlenecks: names})
	}
}
