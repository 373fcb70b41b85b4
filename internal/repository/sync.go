package repository

import (
	"github.com/crewdesk/staffing/backend/internal/domain"
)

// SyncShiftFromImport replaces a shift's requirement set, assigned personnel
// and time entries from a validated import batch, all inside one transaction.
// Any failure rolls the whole replacement back; the shift's data is never left
// half swapped. Running the same batch twice yields the same final state.
func (r *Repository) SyncShiftFromImport(shift *domain.Shift, records []domain.WorkerRecord) (*domain.SyncSummary, error) {
	counts, err := domain.ComputeRequirements(records)
	if err != nil {
		return nil, err
	}

	summary := &domain.SyncSummary{}

	err = withRetry(func() error {
		*summary = domain.SyncSummary{MissingCrewChief: true}

		ctx, cancel := r.txContext()
		defer cancel()

		tx, err := r.dbpool.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() {
			_ = tx.Rollback()
		}()

		written, err := replaceRequirementsTx(ctx, tx, shift.ID, counts)
		if err != nil {
			return err
		}
		summary.RequirementsWritten = written

		// drop the old personnel set and its entries before rebuilding
		query := `
			DELETE FROM time_entries
			WHERE assigned_personnel_id IN (
				SELECT id FROM assigned_personnel WHERE shift_id = $1
			)
		`
		if _, err := tx.ExecContext(ctx, query, shift.ID); err != nil {
			return err
		}

		query = `
			DELETE FROM assigned_personnel WHERE shift_id = $1
		`
		if _, err := tx.ExecContext(ctx, query, shift.ID); err != nil {
			return err
		}

		// one personnel row per (worker, role); a worker may contribute
		// several clock pairs to the same assignment
		type assignmentKey struct {
			userID int64
			role   domain.RoleCode
		}

		// status reflects every record for the assignment, not the first one:
		// an open entry means clocked in no matter where it sits in the batch
		statuses := make(map[assignmentKey]domain.AssignmentStatus)
		for _, record := range records {
			key := assignmentKey{userID: record.UserID, role: record.RoleCode}
			switch {
			case record.ClockIn != nil && record.ClockOut == nil:
				statuses[key] = domain.AssignmentClockedIn
			case record.ClockIn != nil:
				if statuses[key] != domain.AssignmentClockedIn {
					statuses[key] = domain.AssignmentClockedOut
				}
			default:
				if statuses[key] == "" {
					statuses[key] = domain.AssignmentAssigned
				}
			}
		}

		assignmentIDs := make(map[assignmentKey]int64)

		for _, record := range records {
			if record.RoleCode == domain.RoleCrewChief {
				summary.MissingCrewChief = false
			}

			key := assignmentKey{userID: record.UserID, role: record.RoleCode}
			assignmentID, ok := assignmentIDs[key]
			if !ok {
				status := statuses[key]

				query = `
					INSERT INTO assigned_personnel (shift_id, user_id, role_code, status)
					VALUES ($1, $2, $3, $4)
					RETURNING id
				`
				if err := tx.QueryRowContext(ctx, query, shift.ID, record.UserID, record.RoleCode, status).Scan(&assignmentID); err != nil {
					return err
				}
				assignmentIDs[key] = assignmentID
				summary.PersonnelWritten++
			}

			if record.ClockIn == nil {
				continue
			}

			query = `
				INSERT INTO time_entries (assigned_personnel_id, entry_number, clock_in, clock_out, is_active)
				VALUES ($1, $2, $3, $4, $5)
			`
			params := []any{assignmentID, record.EntryNumber, record.ClockIn, record.ClockOut, record.ClockOut == nil}
			if _, err := tx.ExecContext(ctx, query, params...); err != nil {
				return err
			}
			summary.TimeEntriesCreated++
		}

		return tx.Commit()
	})
	if err != nil {
		return nil, err
	}

	return summary, nil
}
