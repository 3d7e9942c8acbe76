package planning

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Ph2006/sistema-orbit-sub006/internal/service/feasibility"
	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

const planLoadLimit = 8

// Feasibility estimates whether items can be delivered by requested. Items sent without stages
// use the stored production plan of their product; a product without one is storage.ErrNotFound.
func (s *Service) Feasibility(ctx context.Context, items []storage.CalculatorItem, requested time.Time) (feasibility.Result, error) {
	const op = "service.planning.Feasibility"

	for _, it := range items {
		if it.Quantity <= 0 {
			return feasibility.Result{}, fmt.Errorf("%s: product %s: %w", op, it.ProductID, ErrInvalidQuantity)
		}
	}

	resolved := make([]storage.CalculatorItem, len(items))
	copy(resolved, items)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(planLoadLimit)
	for i := range resolved {
		if len(resolved[i].Stages) > 0 {
			continue
		}
		g.Go(func() error {
			stages, err := s.storage.GetProductionPlan(gCtx, resolved[i].ProductID)
			if err != nil {
				return fmt.Errorf("plan of %s: %w", resolved[i].ProductID, err)
			}
			if len(stages) == 0 {
				return fmt.Errorf("plan of %s: no stages: %w", resolved[i].ProductID, storage.ErrNotFound)
			}
			resolved[i].Stages = stages
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return feasibility.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	opts := []feasibility.Option{feasibility.WithClock(s.now)}
	if s.businessDays {
		cal, err := s.LoadCalendar(ctx)
		if err != nil {
			return feasibility.Result{}, fmt.Errorf("%s: %w", op, err)
		}
		opts = append(opts, feasibility.WithBusinessDays(cal))
	}

	res, err := feasibility.NewEstimator(s.workload, opts...).Estimate(ctx, resolved, requested)
	if err != nil {
		return feasibility.Result{}, fmt.Errorf("%s: %w", op, err)
	}

	return res, nil
}
