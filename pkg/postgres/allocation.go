package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/task-allocator/pkg/db"
)

// GetTaskAllocations retrieves the allocations of a session in start order
func (d *DB) GetTaskAllocations(ctx context.Context, sessionID string) ([]db.TaskAllocation, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id::text, session_id::text, task_id, task_name, employee_id, employee_name, start_hour, end_hour, match_score
		FROM task_allocation
		WHERE session_id = $1
		ORDER BY employee_id, start_hour
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	var allocations []db.TaskAllocation
	for rows.Next() {
		var a db.TaskAllocation
		if err := rows.Scan(&a.ID, &a.SessionID, &a.TaskID, &a.TaskName, &a.EmployeeID, &a.EmployeeName, &a.StartHour, &a.EndHour, &a.MatchScore); err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocations: %w", err)
	}

	return allocations, nil
}
