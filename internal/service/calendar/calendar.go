package calendar

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

// ErrNoWorkingDays is returned for a weekly template with every day disabled.
// Business-day walking can never converge on such a calendar.
var ErrNoWorkingDays = errors.New("calendar has no working days")

// IsWorkingDay reports whether date is a business day: its weekday is enabled in cal
// and it is not in holidays. A weekday missing from cal counts as disabled.
func IsWorkingDay(date time.Time, cal storage.CompanyCalendar, holidays HolidaySet) bool {
	day, ok := cal[storage.Weekdays[date.Weekday()]]
	if !ok || !day.Enabled {
		return false
	}

	return !holidays.Contains(date)
}

type Calendar struct {
	days     storage.CompanyCalendar
	holidays HolidaySet
}

// New validates the weekly template and binds it to a holiday set.
func New(days storage.CompanyCalendar, holidays HolidaySet, log *slog.Logger) (*Calendar, error) {
	const op = "service.calendar.New"

	if log == nil {
		log = slog.Default()
	}

	known := make(map[string]bool, len(storage.Weekdays))
	enabled := 0
	var missing []string
	for _, name := range storage.Weekdays {
		known[name] = true
		day, ok := days[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		if day.Enabled {
			enabled++
		}
	}

	if len(missing) > 0 {
		log.Warn("weekly template is missing weekdays, treating them as disabled",
			slog.String("op", op), slog.Any("missing", missing))
	}

	var unknown []string
	for name := range days {
		if !known[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		log.Warn("weekly template has unknown keys", slog.String("op", op), slog.Any("keys", unknown))
	}

	if enabled == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoWorkingDays)
	}

	cp := make(storage.CompanyCalendar, len(days))
	for k, v := range days {
		cp[k] = v
	}

	return &Calendar{days: cp, holidays: holidays}, nil
}

// DefaultCalendar is Monday to Friday, 08:00-12:00 and 13:00-17:00.
func DefaultCalendar() storage.CompanyCalendar {
	hours := []storage.TimeWindow{{Start: "08:00", End: "12:00"}, {Start: "13:00", End: "17:00"}}

	cal := make(storage.CompanyCalendar, len(storage.Weekdays))
	for i, name := range storage.Weekdays {
		wd := time.Weekday(i)
		if wd == time.Saturday || wd == time.Sunday {
			cal[name] = storage.WorkingDay{Enabled: false, Hours: []storage.TimeWindow{}}
			continue
		}
		cal[name] = storage.WorkingDay{Enabled: true, Hours: append([]storage.TimeWindow(nil), hours...)}
	}

	return cal
}

func (c *Calendar) IsWorkingDay(date time.Time) bool {
	return IsWorkingDay(date, c.days, c.holidays)
}

func (c *Calendar) Template() storage.CompanyCalendar {
	cp := make(storage.CompanyCalendar, len(c.days))
	for k, v := range c.days {
		cp[k] = v
	}
	return cp
}

func (c *Calendar) Holidays() HolidaySet {
	return c.holidays
}

// WorkingHours returns the windows configured for date. Empty means either a
// non-working day or an enabled day without hour constraints.
func (c *Calendar) WorkingHours(date time.Time) []storage.TimeWindow {
	if !c.IsWorkingDay(date) {
		return nil
	}
	return append([]storage.TimeWindow(nil), c.days[storage.Weekdays[date.Weekday()]].Hours...)
}

// AddBusinessDays moves delta working days away from start, never counting start itself.
// A zero delta returns start as is, even when start is not a working day.
func (c *Calendar) AddBusinessDays(start time.Time, delta int) time.Time {
	if delta == 0 {
		return start
	}

	step := 1
	remaining := delta
	if delta < 0 {
		step = -1
		remaining = -delta
	}

	current := start
	for remaining > 0 {
		current = current.AddDate(0, 0, step)
		if c.IsWorkingDay(current) {
			remaining--
		}
	}

	return current
}

// AddWorkingDays snaps start forward to the next working day when needed and then
// advances floor(duration) working days. Durations under one day leave the date alone.
func (c *Calendar) AddWorkingDays(start time.Time, duration float64) time.Time {
	current := start
	if !c.IsWorkingDay(current) {
		current = c.AddBusinessDays(current, 1)
	}

	if duration < 1 {
		return current
	}

	// TODO: carry the fractional remainder into the end date using WorkingHours.
	return c.AddBusinessDays(current, int(math.Floor(duration)))
}
