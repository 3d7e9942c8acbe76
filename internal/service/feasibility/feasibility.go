package feasibility

import (
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

type StageAnalysis struct {
	StageName        string  `json:"stage_name"`
	OriginalDuration float64 `json:"original_duration"`
	AdjustedDuration int     `json:"adjusted_duration"`
	Workload         float64 `json:"workload"`
	Factor           float64 `json:"factor"`
	Band             Band    `json:"band"`
	Bottleneck       bool    `json:"bottleneck"`
}

type Result struct {
	IsViable              bool            `json:"is_viable"`
	SuggestedDate         time.Time       `json:"suggested_date"`
	Analysis              []StageAnalysis `json:"analysis"`
	TotalAdjustedLeadTime int             `json:"total_adjusted_lead_time"`
	Confidence            int             `json:"confidence"`
	AvailableDays         int             `json:"available_days"`
}

func (r Result) Bottlenecks() []StageAnalysis {
	var out []StageAnalysis
	for _, a := range r.Analysis {
		if a.Bottleneck {
			out = append(out, a)
		}
	}
	return out
}

// sequentialPenalty inflates the longest non-bottleneck stage when bottlenecks force sequential work.
var sequentialPenalty = decimal.RequireFromString("1.2")

// Calculate estimates whether items can be delivered by requested, counting calendar days from today.
func Calculate(items []storage.CalculatorItem, workload map[string]float64, requested, today time.Time) Result {
	return calculate(items, workload, requested, today, func(start time.Time, days int) time.Time {
		return start.AddDate(0, 0, days)
	})
}

func calculate(items []storage.CalculatorItem, workload map[string]float64, requested, today time.Time, addDays func(time.Time, int) time.Time) Result {
	start := startOfDay(today)
	available := daysBetween(start, requested)

	names, loads := consolidate(items)
	if len(names) == 0 {
		return Result{
			IsViable:      true,
			SuggestedDate: start,
			Analysis:      []StageAnalysis{},
			Confidence:    confidence(0, 0, true, 0, 0),
			AvailableDays: available,
		}
	}

	analysis := make([]StageAnalysis, 0, len(names))
	var (
		bottleneckSum  int64
		bottlenecks    int
		maxNonBlocking int64
		maxAll         int64
		workloadSum    float64
	)

	for _, name := range names {
		w, ok := workload[name]
		if !ok {
			w = DefaultWorkload
		}
		w = clamp(w)

		factor, bottleneck, b := AdjustmentFactor(w)
		adjusted := loads[name].Mul(factor).Ceil().IntPart()

		f, _ := factor.Float64()
		load, _ := loads[name].Float64()
		analysis = append(analysis, StageAnalysis{
			StageName:        name,
			OriginalDuration: load,
			AdjustedDuration: int(adjusted),
			Workload:         w,
			Factor:           f,
			Band:             b,
			Bottleneck:       bottleneck,
		})

		workloadSum += w
		maxAll = max(maxAll, adjusted)
		if bottleneck {
			bottlenecks++
			bottleneckSum += adjusted
		} else {
			maxNonBlocking = max(maxNonBlocking, adjusted)
		}
	}

	total := maxAll
	if bottlenecks > 0 {
		inflated := decimal.NewFromInt(maxNonBlocking).Mul(sequentialPenalty).Ceil().IntPart()
		total = max(bottleneckSum, inflated)
	}

	suggested := addDays(start, int(total))
	needed := daysBetween(start, suggested)
	viable := available >= needed

	return Result{
		IsViable:              viable,
		SuggestedDate:         suggested,
		Analysis:              analysis,
		TotalAdjustedLeadTime: int(total),
		Confidence:            confidence(workloadSum/float64(len(names)), bottlenecks, viable, available, needed),
		AvailableDays:         available,
	}
}

// consolidate keeps, per stage name, the largest duration x quantity over all items.
// Names keep the order in which they first appear.
func consolidate(items []storage.CalculatorItem) ([]string, map[string]decimal.Decimal) {
	var names []string
	loads := make(map[string]decimal.Decimal)

	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		qty := decimal.NewFromInt(int64(item.Quantity))
		for _, s := range item.Stages {
			d := s.DurationDays
			if d < 0 {
				d = 0
			}
			load := decimal.NewFromFloat(d).Mul(qty)

			cur, ok := loads[s.StageName]
			if !ok {
				names = append(names, s.StageName)
				loads[s.StageName] = load
				continue
			}
			if load.GreaterThan(cur) {
				loads[s.StageName] = load
			}
		}
	}

	return names, loads
}

func confidence(avgWorkload float64, bottlenecks int, viable bool, available, needed int) int {
	c := 90 - avgWorkload*60 - 25*float64(bottlenecks)

	switch {
	case !viable:
		c -= 30
	case needed > 0:
		margin := float64(available-needed) / float64(needed)
		if margin < 0.2 {
			c -= 20
		} else if margin > 0.5 {
			c += 10
		}
	}

	return int(math.Round(math.Min(95, math.Max(5, c))))
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// daysBetween counts calendar days from the date of a to the date of b.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}
