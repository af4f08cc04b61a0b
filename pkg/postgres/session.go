package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jakechorley/task-allocator/pkg/db"
)

// GetSessions retrieves the latest sessions, newest first
func (d *DB) GetSessions(ctx context.Context, limit int) ([]db.Session, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id::text, created_at, planning_date, scorer_kind, task_count, allocated_count, unallocated_count
		FROM allocation_session
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []db.Session
	for rows.Next() {
		var s db.Session
		var createdAt, planningDate time.Time
		if err := rows.Scan(&s.ID, &createdAt, &planningDate, &s.ScorerKind, &s.TaskCount, &s.AllocatedCount, &s.UnallocatedCount); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		s.CreatedAt = createdAt.UTC().Format(time.RFC3339)
		s.PlanningDate = planningDate.Format("2006-01-02")
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}

	return sessions, nil
}

// InsertSession inserts a session and its allocations in one transaction
func (d *DB) InsertSession(ctx context.Context, session *db.Session, allocations []db.TaskAllocation) error {
	createdAt, err := time.Parse(time.RFC3339, session.CreatedAt)
	if err != nil {
		return fmt.Errorf("invalid session created_at %q: %w", session.CreatedAt, err)
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO allocation_session (id, created_at, planning_date, scorer_kind, task_count, allocated_count, unallocated_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, session.ID, createdAt, session.PlanningDate, session.ScorerKind, session.TaskCount, session.AllocatedCount, session.UnallocatedCount)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	for _, a := range allocations {
		_, err := tx.Exec(ctx, `
			INSERT INTO task_allocation (id, session_id, task_id, task_name, employee_id, employee_name, start_hour, end_hour, match_score)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, a.ID, a.SessionID, a.TaskID, a.TaskName, a.EmployeeID, a.EmployeeName, a.StartHour, a.EndHour, a.MatchScore)
		if err != nil {
			return fmt.Errorf("failed to insert allocation for task %s: %w", a.TaskID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
