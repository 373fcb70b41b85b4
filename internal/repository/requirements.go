package repository

import (
	"context"
	"database/sql"

	"github.com/crewdesk/staffing/backend/internal/domain"
)

func (r *Repository) GetRequirementsByShiftID(shiftID int64) ([]*domain.WorkerRequirement, error) {
	query := `
		SELECT id, role_code, required_count
		FROM worker_requirements
		WHERE shift_id = $1
		ORDER BY role_code
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, shiftID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requirements := make([]*domain.WorkerRequirement, 0)
	for rows.Next() {
		requirement := &domain.WorkerRequirement{
			ShiftID: shiftID,
		}
		if err := rows.Scan(&requirement.ID, &requirement.RoleCode, &requirement.RequiredCount); err != nil {
			return nil, err
		}
		requirements = append(requirements, requirement)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requirements, nil
}

// ReplaceRequirements swaps the whole requirement set for a shift in one
// transaction. Delete-then-recreate keeps the set internally consistent; a
// role dropped from the new configuration cannot leave a stale row behind.
func (r *Repository) ReplaceRequirements(shiftID int64, counts map[domain.RoleCode]int32) error {
	return withRetry(func() error {
		ctx, cancel := r.txContext()
		defer cancel()

		tx, err := r.dbpool.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() {
			_ = tx.Rollback()
		}()

		if _, err := replaceRequirementsTx(ctx, tx, shiftID, counts); err != nil {
			return err
		}

		return tx.Commit()
	})
}

// replaceRequirementsTx is shared with the import sync, which replaces the
// requirement set inside its own larger transaction.
func replaceRequirementsTx(ctx context.Context, tx *sql.Tx, shiftID int64, counts map[domain.RoleCode]int32) (int32, error) {
	query := `
		DELETE FROM worker_requirements WHERE shift_id = $1
	`
	if _, err := tx.ExecContext(ctx, query, shiftID); err != nil {
		return 0, err
	}

	query = `
		INSERT INTO worker_requirements (shift_id, role_code, required_count)
		VALUES ($1, $2, $3)
	`

	var written int32
	for _, code := range domain.AllRoleCodes() {
		count, ok := counts[code]
		if !ok {
			continue
		}
		if _, err := tx.ExecContext(ctx, query, shiftID, code, count); err != nil {
			return 0, err
		}
		written++
	}

	return written, nil
}
