package services

import (
	"context"
	"fmt"

	"github.com/jakechorley/task-allocator/pkg/db"
)

// ViewSessions returns the latest count sessions, newest first
func ViewSessions(ctx context.Context, store db.SessionStore, count int) ([]db.Session, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}

	sessions, err := store.GetSessions(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch sessions: %w", err)
	}
	return sessions, nil
}

// ViewAllocations returns the stored allocations of one session
func ViewAllocations(ctx context.Context, store db.AllocationStore, sessionID string) ([]db.TaskAllocation, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session id must not be empty")
	}

	allocations, err := store.GetTaskAllocations(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch allocations: %w", err)
	}
	return allocations, nil
}
