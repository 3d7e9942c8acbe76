package planning

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/Ph2006/sistema-orbit-sub006/internal/service/calendar"
	"github.com/Ph2006/sistema-orbit-sub006/internal/service/feasibility"
	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

func (s *Service) SaveCalendar(ctx context.Context, cal storage.CompanyCalendar) error {
	const op = "service.planning.SaveCalendar"

	if _, err := calendar.New(cal, calendar.HolidaySet{}, s.log); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.SaveCompanyCalendar(ctx, cal); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Service) SaveHoliday(ctx context.Context, h storage.Holiday) (storage.Holiday, error) {
	const op = "service.planning.SaveHoliday"

	if h.Date.IsZero() {
		return storage.Holiday{}, fmt.Errorf("%s: %w", op, ErrMissingHoliday)
	}

	id, err := s.storage.SaveHoliday(ctx, h)
	if err != nil {
		return storage.Holiday{}, fmt.Errorf("%s: %w", op, err)
	}
	h.ID = id

	return h, nil
}

func (s *Service) DeleteHoliday(ctx context.Context, id int64) error {
	const op = "service.planning.DeleteHoliday"

	if err := s.storage.DeleteHoliday(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Service) Tasks(ctx context.Context) ([]storage.Task, error) {
	const op = "service.planning.Tasks"

	tasks, err := s.storage.GetTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if tasks == nil {
		tasks = []storage.Task{}
	}

	return tasks, nil
}

func (s *Service) SaveTask(ctx context.Context, t storage.Task) (storage.Task, error) {
	const op = "service.planning.SaveTask"

	if t.Name == "" {
		return storage.Task{}, fmt.Errorf("%s: %w", op, ErrInvalidTask)
	}
	if t.ID == "" {
		t.ID = s.newID()
	}

	if err := s.storage.SaveTask(ctx, t); err != nil {
		return storage.Task{}, fmt.Errorf("%s: %w", op, err)
	}

	return t, nil
}

// SaveProductionPlan replaces the stages of a product. Stage names must be unique and durations non-negative.
func (s *Service) SaveProductionPlan(ctx context.Context, plan storage.ProductionPlan) error {
	const op = "service.planning.SaveProductionPlan"

	seen := make(map[string]bool, len(plan.Stages))
	for _, st := range plan.Stages {
		if st.StageName == "" {
			return fmt.Errorf("%s: empty stage name: %w", op, ErrInvalidPlan)
		}
		if seen[st.StageName] {
			return fmt.Errorf("%s: duplicate stage %q: %w", op, st.StageName, ErrInvalidPlan)
		}
		if st.DurationDays < 0 {
			return fmt.Errorf("%s: stage %q has negative duration: %w", op, st.StageName, ErrInvalidPlan)
		}
		seen[st.StageName] = true
	}

	if err := s.storage.SaveProductionPlan(ctx, plan); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SectorWorkload reports the workload the estimator would use. Stages unknown to the source get the nominal value.
func (s *Service) SectorWorkload(ctx context.Context, stages []string) ([]storage.SectorWorkload, error) {
	const op = "service.planning.SectorWorkload"

	known := map[string]float64{}
	if s.workload != nil && len(stages) > 0 {
		var err error
		known, err = s.workload.SectorWorkload(ctx, stages)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	out := make([]storage.SectorWorkload, 0, len(stages))
	for _, st := range stages {
		w, ok := known[st]
		if !ok {
			w = feasibility.DefaultWorkload
		}
		out = append(out, storage.SectorWorkload{StageName: st, Workload: w})
	}

	return out, nil
}

func (s *Service) SaveSectorWorkload(ctx context.Context, list []storage.SectorWorkload) error {
	const op = "service.planning.SaveSectorWorkload"

	if s.writer == nil {
		return fmt.Errorf("%s: %w", op, ErrReadOnlyWorkload)
	}

	for _, sw := range list {
		if math.IsNaN(sw.Workload) || sw.Workload < 0 || sw.Workload > 1 {
			return fmt.Errorf("%s: stage %q workload=%v: %w", op, sw.StageName, sw.Workload, ErrInvalidWorkload)
		}
	}

	if err := s.writer.SaveSectorWorkload(ctx, list); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("sector workload updated", slog.Int("stages", len(list)))

	return nil
}
