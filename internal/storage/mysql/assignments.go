package mysql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

const assignmentColumns = `id, order_id, task_id, duration, start_date, end_date, progress, depends_on, responsible_email`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssignment(row rowScanner) (storage.TaskAssignment, error) {
	var (
		a    storage.TaskAssignment
		deps []byte
	)
	err := row.Scan(&a.ID, &a.OrderID, &a.TaskID, &a.Duration, &a.StartDate, &a.EndDate,
		&a.Progress, &deps, &a.ResponsibleEmail)
	if err != nil {
		return a, err
	}
	if len(deps) > 0 {
		if err := json.Unmarshal(deps, &a.DependsOn); err != nil {
			return a, fmt.Errorf("decode depends_on of %s: %w", a.ID, err)
		}
	}
	return a, nil
}

// GetOrderAssignments returns every assignment of an order sorted by start date.
func (s *Storage) GetOrderAssignments(ctx context.Context, orderID string) ([]storage.TaskAssignment, error) {
	const op = "storage.mysql.GetOrderAssignments"

	rows, err := s.db.QueryContext(ctx, `SELECT `+assignmentColumns+`
		FROM orbit_task_assignments
		WHERE order_id = ?
		ORDER BY start_date, id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	var list []storage.TaskAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return list, nil
}

// SaveAssignments upserts the given assignments in one transaction.
func (s *Storage) SaveAssignments(ctx context.Context, list []storage.TaskAssignment) error {
	const op = "storage.mysql.SaveAssignments"

	if len(list) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO orbit_task_assignments (`+assignmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			task_id = VALUES(task_id),
			duration = VALUES(duration),
			start_date = VALUES(start_date),
			end_date = VALUES(end_date),
			progress = VALUES(progress),
			depends_on = VALUES(depends_on),
			responsible_email = VALUES(responsible_email)
	`)
	if err != nil {
		return fmt.Errorf("%s: prepare statement: %w", op, err)
	}
	defer stmt.Close()

	for _, a := range list {
		deps := a.DependsOn
		if deps == nil {
			deps = []string{}
		}
		raw, err := json.Marshal(deps)
		if err != nil {
			return fmt.Errorf("%s: encode depends_on of %s: %w", op, a.ID, err)
		}
		_, err = stmt.ExecContext(ctx, a.ID, a.OrderID, a.TaskID, a.Duration, a.StartDate, a.EndDate,
			a.Progress, raw, a.ResponsibleEmail)
		if err != nil {
			return fmt.Errorf("%s: save assignment %s: %w", op, a.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}
