package feasibility

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

// WorkloadProvider reports the current utilisation, in [0,1], of the sectors running the given stages.
// Stages missing from the returned map fall back to DefaultWorkload.
type WorkloadProvider interface {
	SectorWorkload(ctx context.Context, stages []string) (map[string]float64, error)
}

// BusinessDays is satisfied by *calendar.Calendar.
type BusinessDays interface {
	AddBusinessDays(start time.Time, delta int) time.Time
}

type Estimator struct {
	provider WorkloadProvider
	now      func() time.Time
	calendar BusinessDays
}

type Option func(*Estimator)

func WithClock(now func() time.Time) Option {
	return func(e *Estimator) { e.now = now }
}

// WithBusinessDays makes the suggested date count working days instead of calendar days.
func WithBusinessDays(cal BusinessDays) Option {
	return func(e *Estimator) { e.calendar = cal }
}

func NewEstimator(provider WorkloadProvider, opts ...Option) *Estimator {
	e := &Estimator{provider: provider, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Estimator) Estimate(ctx context.Context, items []storage.CalculatorItem, requested time.Time) (Result, error) {
	const op = "service.feasibility.Estimate"

	names, _ := consolidate(items)

	workload := map[string]float64{}
	if len(names) > 0 && e.provider != nil {
		var err error
		workload, err = e.provider.SectorWorkload(ctx, names)
		if err != nil {
			return Result{}, fmt.Errorf("%s: sector workload: %w", op, err)
		}
	}

	today := e.now()
	if e.calendar == nil {
		return Calculate(items, workload, requested, today), nil
	}

	return calculate(items, workload, requested, today, e.calendar.AddBusinessDays), nil
}

// StaticWorkload serves fixed values.
type StaticWorkload map[string]float64

func (s StaticWorkload) SectorWorkload(_ context.Context, stages []string) (map[string]float64, error) {
	out := make(map[string]float64, len(stages))
	for _, st := range stages {
		if w, ok := s[st]; ok {
			out[st] = w
		}
	}
	return out, nil
}

// SimulatedWorkload draws a load between 0.3 and 0.95 per stage. It stands in for shop-floor
// telemetry on installations without a workload feed.
type SimulatedWorkload struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewSimulatedWorkload(seed int64) *SimulatedWorkload {
	return &SimulatedWorkload{rnd: rand.New(rand.NewSource(seed))}
}

func (s *SimulatedWorkload) SectorWorkload(_ context.Context, stages []string) (map[string]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]float64, len(stages))
	for _, st := range stages {
		out[st] = 0.3 + s.rnd.Float64()*0.65
	}
	return out, nil
}
