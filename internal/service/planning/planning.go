package planning

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/Ph2006/sistema-orbit-sub006/internal/service/calendar"
	"github.com/Ph2006/sistema-orbit-sub006/internal/service/feasibility"
	"github.com/Ph2006/sistema-orbit-sub006/internal/service/leadtime"
	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

var (
	ErrInvalidProgress  = errors.New("progress must be between 0 and 100")
	ErrMissingStart     = errors.New("start date is required without predecessors")
	ErrInvalidPlan      = errors.New("invalid production plan")
	ErrInvalidWorkload  = errors.New("workload must be between 0 and 1")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrInvalidTask      = errors.New("task name is required")
	ErrMissingHoliday   = errors.New("holiday date is required")
	ErrReadOnlyWorkload = errors.New("workload source is read-only")
)

type Storage interface {
	GetCompanyCalendar(ctx context.Context) (storage.CompanyCalendar, error)
	SaveCompanyCalendar(ctx context.Context, cal storage.CompanyCalendar) error
	GetHolidays(ctx context.Context) ([]storage.Holiday, error)
	SaveHoliday(ctx context.Context, h storage.Holiday) (int64, error)
	DeleteHoliday(ctx context.Context, id int64) error
	GetProductionPlan(ctx context.Context, productID string) ([]storage.Stage, error)
	SaveProductionPlan(ctx context.Context, plan storage.ProductionPlan) error
	GetTasks(ctx context.Context) ([]storage.Task, error)
	SaveTask(ctx context.Context, t storage.Task) error
	GetOrderAssignments(ctx context.Context, orderID string) ([]storage.TaskAssignment, error)
	SaveAssignments(ctx context.Context, list []storage.TaskAssignment) error
}

type WorkloadWriter interface {
	SaveSectorWorkload(ctx context.Context, list []storage.SectorWorkload) error
}

type Service struct {
	log          *slog.Logger
	storage      Storage
	workload     feasibility.WorkloadProvider
	writer       WorkloadWriter
	holidays     calendar.HolidaySet
	businessDays bool
	now          func() time.Time
	newID        func() string
}

type Option func(*Service)

// WithLocaleHolidays adds holidays from a locale file to the ones stored per tenant.
func WithLocaleHolidays(h calendar.HolidaySet) Option {
	return func(s *Service) { s.holidays = h }
}

func WithWorkloadWriter(w WorkloadWriter) Option {
	return func(s *Service) { s.writer = w }
}

// WithBusinessDaySuggestion makes feasibility suggest dates counted in working days.
func WithBusinessDaySuggestion(enabled bool) Option {
	return func(s *Service) { s.businessDays = enabled }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDGenerator(gen func() string) Option {
	return func(s *Service) { s.newID = gen }
}

func New(log *slog.Logger, st Storage, workload feasibility.WorkloadProvider, opts ...Option) *Service {
	s := &Service{
		log:      log,
		storage:  st,
		workload: workload,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadCalendar builds the effective calendar: the stored weekly template, or the default one
// when nothing is stored, with stored and locale holidays merged.
func (s *Service) LoadCalendar(ctx context.Context) (*calendar.Calendar, error) {
	const op = "service.planning.LoadCalendar"

	var (
		template storage.CompanyCalendar
		rows     []storage.Holiday
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		template, err = s.storage.GetCompanyCalendar(gCtx)
		if err != nil {
			return fmt.Errorf("calendar: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rows, err = s.storage.GetHolidays(gCtx)
		if err != nil {
			return fmt.Errorf("holidays: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(template) == 0 {
		s.log.Debug("no stored calendar, using default", slog.String("op", op))
		template = calendar.DefaultCalendar()
	}

	cal, err := calendar.New(template, s.holidays.Merge(calendar.HolidaySetFrom(rows)), s.log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cal, nil
}

type LeadTime struct {
	ProductID string          `json:"product_id"`
	Days      int             `json:"days"`
	Badge     leadtime.Badge  `json:"badge"`
	Stages    []storage.Stage `json:"stages"`
}

func (s *Service) ProductLeadTime(ctx context.Context, productID string) (LeadTime, error) {
	const op = "service.planning.ProductLeadTime"

	stages, err := s.storage.GetProductionPlan(ctx, productID)
	if err != nil {
		return LeadTime{}, fmt.Errorf("%s: %w", op, err)
	}

	days := leadtime.Calculate(stages)

	return LeadTime{
		ProductID: productID,
		Days:      days,
		Badge:     leadtime.Classify(days),
		Stages:    stages,
	}, nil
}
