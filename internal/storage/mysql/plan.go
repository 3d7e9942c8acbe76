package mysql

import (
	"context"
	"fmt"

	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

// GetProductionPlan returns the stages of a product in their saved order.
func (s *Storage) GetProductionPlan(ctx context.Context, productID string) ([]storage.Stage, error) {
	const op = "storage.mysql.GetProductionPlan"

	rows, err := s.db.QueryContext(ctx, `
		SELECT stage_name, duration_days
		FROM orbit_product_stages
		WHERE product_id = ?
		ORDER BY sort_stage
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	stages := []storage.Stage{}
	for rows.Next() {
		var st storage.Stage
		if err := rows.Scan(&st.StageName, &st.DurationDays); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		stages = append(stages, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return stages, nil
}

// SaveProductionPlan replaces every stage of the product.
func (s *Storage) SaveProductionPlan(ctx context.Context, plan storage.ProductionPlan) error {
	const op = "storage.mysql.SaveProductionPlan"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM orbit_product_stages WHERE product_id = ?`, plan.ProductID); err != nil {
		return fmt.Errorf("%s: clear stages: %w", op, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO orbit_product_stages (product_id, stage_name, duration_days, sort_stage)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("%s: prepare statement: %w", op, err)
	}
	defer stmt.Close()

	for i, st := range plan.Stages {
		if _, err := stmt.ExecContext(ctx, plan.ProductID, st.StageName, st.DurationDays, i); err != nil {
			return fmt.Errorf("%s: save stage %q: %w", op, st.StageName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}

func (s *Storage) GetTasks(ctx context.Context) ([]storage.Task, error) {
	const op = "storage.mysql.GetTasks"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(description, ''), color, sort_order
		FROM orbit_tasks
		ORDER BY sort_order, id
	`)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	var tasks []storage.Task
	for rows.Next() {
		var t storage.Task
		if err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.Color, &t.Order); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return tasks, nil
}

func (s *Storage) SaveTask(ctx context.Context, t storage.Task) error {
	const op = "storage.mysql.SaveTask"

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO orbit_tasks (id, name, description, color, sort_order)
		VALUES (?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			name = VALUES(name),
			description = VALUES(description),
			color = VALUES(color),
			sort_order = VALUES(sort_order)
	`, t.ID, t.Name, t.Description, t.Color, t.Order)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
