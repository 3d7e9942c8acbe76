package planning

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Ph2006/sistema-orbit-sub006/internal/service/calendar"
	"github.com/Ph2006/sistema-orbit-sub006/internal/service/dependency"
	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

func (s *Service) loadOrder(ctx context.Context, orderID string) (*calendar.Calendar, []storage.TaskAssignment, error) {
	var (
		cal  *calendar.Calendar
		list []storage.TaskAssignment
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cal, err = s.LoadCalendar(gCtx)
		return err
	})
	g.Go(func() error {
		var err error
		list, err = s.storage.GetOrderAssignments(gCtx, orderID)
		if err != nil {
			return fmt.Errorf("assignments: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	s.warnDangling(orderID, list)

	return cal, list, nil
}

func (s *Service) warnDangling(orderID string, list []storage.TaskAssignment) {
	for id, missing := range dependency.DanglingDependencies(list) {
		s.log.Warn("assignment depends on unknown ids, ignoring them",
			slog.String("order_id", orderID),
			slog.String("assignment_id", id),
			slog.Any("missing", missing))
	}
}

func (s *Service) OrderAssignments(ctx context.Context, orderID string) ([]storage.TaskAssignment, error) {
	const op = "service.planning.OrderAssignments"

	list, err := s.storage.GetOrderAssignments(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.warnDangling(orderID, list)

	if list == nil {
		list = []storage.TaskAssignment{}
	}
	return list, nil
}

// CreateAssignment stores a new assignment of an order. With predecessors it starts when the
// latest of them ends; its end date is always derived from the calendar.
func (s *Service) CreateAssignment(ctx context.Context, a storage.TaskAssignment) (storage.TaskAssignment, error) {
	const op = "service.planning.CreateAssignment"

	if !dependency.ValidDuration(a.Duration) {
		return storage.TaskAssignment{}, fmt.Errorf("%s: duration=%v: %w", op, a.Duration, dependency.ErrInvalidDuration)
	}
	if a.Progress < 0 || a.Progress > 100 {
		return storage.TaskAssignment{}, fmt.Errorf("%s: progress=%d: %w", op, a.Progress, ErrInvalidProgress)
	}
	if len(a.DependsOn) == 0 && a.StartDate.IsZero() {
		return storage.TaskAssignment{}, fmt.Errorf("%s: %w", op, ErrMissingStart)
	}

	cal, list, err := s.loadOrder(ctx, a.OrderID)
	if err != nil {
		return storage.TaskAssignment{}, fmt.Errorf("%s: %w", op, err)
	}

	if a.ID == "" {
		a.ID = s.newID()
	}

	preds := a.DependsOn
	a.DependsOn = nil
	list = append(list, a)

	for _, pred := range preds {
		if slices.Contains(a.DependsOn, pred) {
			continue
		}
		if err := dependency.ValidateDependency(list, a.ID, pred); err != nil {
			return storage.TaskAssignment{}, fmt.Errorf("%s: %w", op, err)
		}
		a.DependsOn = append(a.DependsOn, pred)
		list[len(list)-1] = a
	}

	if len(a.DependsOn) > 0 {
		a.StartDate = latestEnd(list, a.DependsOn)
	}
	a.EndDate = cal.AddWorkingDays(a.StartDate, a.Duration)

	if err := s.storage.SaveAssignments(ctx, []storage.TaskAssignment{a}); err != nil {
		return storage.TaskAssignment{}, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("assignment created",
		slog.String("order_id", a.OrderID),
		slog.String("assignment_id", a.ID),
		slog.Time("start_date", a.StartDate),
		slog.Time("end_date", a.EndDate))

	return a, nil
}

func latestEnd(list []storage.TaskAssignment, ids []string) time.Time {
	var end time.Time
	for _, a := range list {
		if slices.Contains(ids, a.ID) && a.EndDate.After(end) {
			end = a.EndDate
		}
	}
	return end
}

// RescheduleAssignment moves one assignment, propagates to its dependents and persists the
// rows whose dates changed. It returns the whole order after the change.
func (s *Service) RescheduleAssignment(ctx context.Context, orderID, id string, start time.Time, duration float64) ([]storage.TaskAssignment, error) {
	const op = "service.planning.RescheduleAssignment"

	cal, before, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	after, err := dependency.Reschedule(before, id, start, duration, cal)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.persistChanges(ctx, op, orderID, before, after); err != nil {
		return nil, err
	}

	return after, nil
}

func (s *Service) ToggleDependency(ctx context.Context, orderID, dependentID, predecessorID string, enabled bool) ([]storage.TaskAssignment, error) {
	const op = "service.planning.ToggleDependency"

	cal, before, err := s.loadOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	after, err := dependency.ToggleDependency(before, dependentID, predecessorID, enabled, cal)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.persistChanges(ctx, op, orderID, before, after); err != nil {
		return nil, err
	}

	return after, nil
}

func (s *Service) persistChanges(ctx context.Context, op, orderID string, before, after []storage.TaskAssignment) error {
	changed := dependency.ChangedAssignments(before, after)
	if len(changed) == 0 {
		return nil
	}

	if err := s.storage.SaveAssignments(ctx, changed); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("assignments updated",
		slog.String("op", op),
		slog.String("order_id", orderID),
		slog.Int("changed", len(changed)))

	return nil
}
