package calendar

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

type civilDate struct {
	year  int
	month time.Month
	day   int
}

func dateOf(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{year: y, month: m, day: d}
}

// HolidaySet matches dates by (year, month, day); time of day and location are ignored.
type HolidaySet struct {
	days map[civilDate]string
}

func NewHolidaySet(dates ...time.Time) HolidaySet {
	h := HolidaySet{days: make(map[civilDate]string, len(dates))}
	for _, d := range dates {
		h.Add(d, "")
	}
	return h
}

// HolidaySetFrom builds a set from stored holiday rows.
func HolidaySetFrom(rows []storage.Holiday) HolidaySet {
	h := HolidaySet{days: make(map[civilDate]string, len(rows))}
	for _, r := range rows {
		h.Add(r.Date, r.Name)
	}
	return h
}

func (h *HolidaySet) Add(date time.Time, name string) {
	if h.days == nil {
		h.days = make(map[civilDate]string)
	}
	h.days[dateOf(date)] = name
}

func (h HolidaySet) Contains(date time.Time) bool {
	_, ok := h.days[dateOf(date)]
	return ok
}

func (h HolidaySet) Len() int {
	return len(h.days)
}

// Merge returns a new set holding the holidays of both sets. Names from other win.
func (h HolidaySet) Merge(other HolidaySet) HolidaySet {
	out := HolidaySet{days: make(map[civilDate]string, len(h.days)+len(other.days))}
	for k, v := range h.days {
		out.days[k] = v
	}
	for k, v := range other.days {
		out.days[k] = v
	}
	return out
}

// Holidays lists the set in date order, at midnight UTC.
func (h HolidaySet) Holidays() []storage.Holiday {
	out := make([]storage.Holiday, 0, len(h.days))
	for k, name := range h.days {
		out = append(out, storage.Holiday{
			Date: time.Date(k.year, k.month, k.day, 0, 0, 0, 0, time.UTC),
			Name: name,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

type holidayFile struct {
	Locale   string `yaml:"locale"`
	Holidays []struct {
		Date string `yaml:"date"`
		Name string `yaml:"name"`
	} `yaml:"holidays"`
}

// ParseHolidays reads a locale holiday file:
//
//	locale: pt-BR
//	holidays:
//	  - date: 2024-01-01
//	    name: Confraternização Universal
func ParseHolidays(r io.Reader) (string, HolidaySet, error) {
	const op = "service.calendar.ParseHolidays"

	var f holidayFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if err == io.EOF {
			return "", NewHolidaySet(), nil
		}
		return "", HolidaySet{}, fmt.Errorf("%s: decode yaml: %w", op, err)
	}

	set := NewHolidaySet()
	for i, h := range f.Holidays {
		d, err := time.Parse(time.DateOnly, h.Date)
		if err != nil {
			return "", HolidaySet{}, fmt.Errorf("%s: holiday %d (%q): %w", op, i, h.Name, err)
		}
		set.Add(d, h.Name)
	}

	return f.Locale, set, nil
}

func LoadHolidaysFile(path string) (string, HolidaySet, error) {
	const op = "service.calendar.LoadHolidaysFile"

	file, err := os.Open(path)
	if err != nil {
		return "", HolidaySet{}, fmt.Errorf("%s: %w", op, err)
	}
	defer file.Close()

	return ParseHolidays(file)
}
