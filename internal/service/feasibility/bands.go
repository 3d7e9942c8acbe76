package feasibility

import (
	"math"

	"github.com/shopspring/decimal"
)

type Band string

const (
	BandLow        Band = "low"
	BandNormal     Band = "normal"
	BandHigh       Band = "high"
	BandOverloaded Band = "overloaded"
	BandCritical   Band = "critical"
)

// DefaultWorkload is used for stages the provider knows nothing about.
const DefaultWorkload = 0.5

var (
	critical   = band{name: BandCritical, from: 0.9, width: 0.1, base: 2.5, top: 3.5, bottleneckAbove: -1}
	overloaded = band{name: BandOverloaded, from: 0.8, width: 0.1, base: 1.8, top: 2.5, bottleneckAbove: -1}
	high       = band{name: BandHigh, from: 0.7, width: 0.1, base: 1.3, top: 1.8, bottleneckAbove: 0.75}
	normal     = band{name: BandNormal, from: 0.5, width: 0.2, base: 1.0, top: 1.3, bottleneckAbove: 2}
	low        = band{name: BandLow, from: 0, width: 0.5, base: 0.8, top: 1.0, bottleneckAbove: 2}
)

// bottleneckAbove: workloads strictly above it are bottlenecks; -1 flags the whole band, 2 none of it.
type band struct {
	name            Band
	from, width     float64
	base, top       float64
	bottleneckAbove float64
}

// factor interpolates linearly from base at the band start to top at its end.
func (b band) factor(w decimal.Decimal) decimal.Decimal {
	base := decimal.NewFromFloat(b.base)
	slope := decimal.NewFromFloat(b.top).Sub(base).Div(decimal.NewFromFloat(b.width))
	return base.Add(w.Sub(decimal.NewFromFloat(b.from)).Mul(slope))
}

// clamp bounds w to [0,1]. NaN reads as DefaultWorkload.
func clamp(w float64) float64 {
	switch {
	case math.IsNaN(w):
		return DefaultWorkload
	case w < 0:
		return 0
	case w > 1:
		return 1
	default:
		return w
	}
}

// AdjustmentFactor maps a sector workload in [0,1] to the multiplier applied to the stage
// duration and tells whether the stage is a bottleneck at that load.
func AdjustmentFactor(workload float64) (decimal.Decimal, bool, Band) {
	w := clamp(workload)

	var b band
	switch {
	case w >= critical.from:
		b = critical
	case w >= overloaded.from:
		b = overloaded
	case w >= high.from:
		b = high
	case w >= normal.from:
		b = normal
	default:
		b = low
	}

	return b.factor(decimal.NewFromFloat(w)), w > b.bottleneckAbove, b.name
}
