package storage

import "time"

// Weekdays are the canonical keys of CompanyCalendar, indexed by time.Weekday.
var Weekdays = [7]string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

type TimeWindow struct {
	Start string `json:"start"` // "08:00"
	End   string `json:"end"`
}

type WorkingDay struct {
	Enabled bool         `json:"enabled"`
	Hours   []TimeWindow `json:"hours"`
}

// CompanyCalendar is the weekly template keyed by weekday name.
type CompanyCalendar map[string]WorkingDay

type Holiday struct {
	ID   int64     `json:"id"`
	Date time.Time `json:"date"`
	Name string    `json:"name"`
}
