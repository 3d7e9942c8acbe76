package mysql

import (
	"context"
	"fmt"

	"github.com/Ph2006/sistema-orbit-sub006/internal/storage"
)

// SectorWorkload returns the stored occupancy of the requested stages. Unknown stages are absent from the map.
func (s *Storage) SectorWorkload(ctx context.Context, stages []string) (map[string]float64, error) {
	const op = "storage.mysql.SectorWorkload"

	out := make(map[string]float64, len(stages))
	if len(stages) == 0 {
		return out, nil
	}

	args := make([]any, len(stages))
	for i, name := range stages {
		args[i] = name
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT stage_name, workload FROM orbit_sector_workload WHERE stage_name IN (`+placeholders(len(stages))+`)`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("%s: query: %w", op, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			name string
			w    float64
		)
		if err := rows.Scan(&name, &w); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out[name] = w
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return out, nil
}

func (s *Storage) SaveSectorWorkload(ctx context.Context, list []storage.SectorWorkload) error {
	const op = "storage.mysql.SaveSectorWorkload"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO orbit_sector_workload (stage_name, workload)
		VALUES (?, ?)
		ON DUPLICATE KEY UPDATE workload = VALUES(workload)
	`)
	if err != nil {
		return fmt.Errorf("%s: prepare statement: %w", op, err)
	}
	defer stmt.Close()

	for _, sw := range list {
		if _, err := stmt.ExecContext(ctx, sw.StageName, sw.Workload); err != nil {
			return fmt.Errorf("%s: save %q: %w", op, sw.StageName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit transaction: %w", op, err)
	}

	return nil
}
