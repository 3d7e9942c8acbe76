package mysql

import (
	"context"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS orbit_calendar (
		weekday VARCHAR(16) NOT NULL PRIMARY KEY,
		enabled BOOLEAN NOT NULL DEFAULT FALSE,
		hours JSON NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS orbit_holidays (
		id BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		holiday_date DATE NOT NULL,
		name VARCHAR(255) NOT NULL DEFAULT '',
		UNIQUE KEY uq_holiday_date (holiday_date)
	)`,
	`CREATE TABLE IF NOT EXISTS orbit_product_stages (
		product_id VARCHAR(64) NOT NULL,
		stage_name VARCHAR(128) NOT NULL,
		duration_days DOUBLE NOT NULL DEFAULT 0,
		sort_stage INT NOT NULL,
		PRIMARY KEY (product_id, stage_name)
	)`,
	`CREATE TABLE IF NOT EXISTS orbit_tasks (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT,
		color VARCHAR(16) NOT NULL DEFAULT '',
		sort_order INT NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS orbit_task_assignments (
		id VARCHAR(64) NOT NULL PRIMARY KEY,
		order_id VARCHAR(64) NOT NULL,
		task_id VARCHAR(64) NOT NULL,
		duration DOUBLE NOT NULL,
		start_date DATETIME NOT NULL,
		end_date DATETIME NOT NULL,
		progress INT NOT NULL DEFAULT 0,
		depends_on JSON NOT NULL,
		responsible_email VARCHAR(255) NOT NULL DEFAULT '',
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		KEY idx_assignments_order (order_id)
	)`,
	`CREATE TABLE IF NOT EXISTS orbit_sector_workload (
		stage_name VARCHAR(128) NOT NULL PRIMARY KEY,
		workload DOUBLE NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
}

// Migrate creates the tables the scheduler needs. Existing tables are left as they are.
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.mysql.Migrate"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: statement %d: %w", op, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}
