package mysql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

// GetCompanyCalendar returns the stored weekly template. An empty map means nothing was saved yet.
func (s *Storage) GetCompanyCalendar(ctx context.Context) (storage.CompanyCalendar, error) {
	const op = "storage.mysql.GetCompanyCalendar"

	rows, err := s.db.QueryContext(ctx, `SELECT weekday, enabled, hours FROM orbit_calendar`)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	cal := make(storage.CompanyCalendar)
	for rows.Next() {
		var (
			weekday string
			day     storage.WorkingDay
			hours   []byte
		)
		if err := rows.Scan(&weekday, &day.Enabled, &hours); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		if len(hours) > 0 {
			if err := json.Unmarshal(hours, &day.Hours); err != nil {
				return nil, fmt.Errorf("%s: decode hours for %s: %w", op, weekday, err)
			}
		}
		cal[weekday] = day
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return cal, nil
}

// SaveCompanyCalendar upserts the canonical weekdays present in cal. Other keys are not stored.
func (s *Storage) SaveCompanyCalendar(ctx context.Context, cal storage.CompanyCalendar) error {
	const op = "storage.mysql.SaveCompanyCalendar"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO orbit_calendar (weekday, enabled, hours)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE
			enabled = VALUES(enabled),
			hours = VALUES(hours)
	`)
	if err != nil {
		return fmt.Errorf("%s: prepare statement: %w", op, err)
	}
	defer stmt.Close()

	for _, weekday := range storage.Weekdays {
		day, ok := cal[weekday]
		if !ok {
			continue
		}
		hours := day.Hours
		if hours == nil {
			hours = []storage.TimeWindow{}
		}
		raw, err := json.Marshal(hours)
		if err != nil {
			return fmt.Errorf("%s: encode hours for %s: %w", op, weekday, err)
		}
		if _, err := stmt.ExecContext(ctx, weekday, day.Enabled, raw); err != nil {
			return fmt.Errorf("%s: save %s: %w", op, weekday, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

func (s *Storage) GetHolidays(ctx context.Context) ([]storage.Holiday, error) {
	const op = "storage.mysql.GetHolidays"

	rows, err := s.db.QueryContext(ctx, `SELECT id, holiday_date, name FROM orbit_holidays ORDER BY holiday_date`)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	var holidays []storage.Holiday
	for rows.Next() {
		var h storage.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return holidays, nil
}

// SaveHoliday stores a holiday. Saving a date twice renames it.
func (s *Storage) SaveHoliday(ctx context.Context, h storage.Holiday) (int64, error) {
	const op = "storage.mysql.SaveHoliday"

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO orbit_holidays (holiday_date, name)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id), name = VALUES(name)
	`, h.Date.Format("2006-01-02"), h.Name)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return res.LastInsertId()
}

func (s *Storage) DeleteHoliday(ctx context.Context, id int64) error {
	const op = "storage.mysql.DeleteHoliday"

	res, err := s.db.ExecContext(ctx, `DELETE FROM orbit_holidays WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: rows affected: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: holiday %d: %w", op, id, storage.ErrNotFound)
	}

	return nil
}
