package db

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = errors.New("record not found")

// SessionStore defines the interface for allocation session operations
type SessionStore interface {
	// GetSessions returns the latest sessions, newest first
	GetSessions(ctx context.Context, limit int) ([]Session, error)

	// InsertSession stores a session together with its allocations atomically
	InsertSession(ctx context.Context, session *Session, allocations []TaskAllocation) error
}

// AllocationStore defines the interface for reading allocations back
type AllocationStore interface {
	GetTaskAllocations(ctx context.Context, sessionID string) ([]TaskAllocation, error)
}

// ModelStore defines the interface for learned scorer artifacts
type ModelStore interface {
	// GetLatestModelArtifact returns ErrNotFound when nothing has been stored
	GetLatestModelArtifact(ctx context.Context) (*ModelArtifact, error)
	InsertModelArtifact(ctx context.Context, artifact *ModelArtifact) error
}

// Database defines the interface for all database operations
type Database interface {
	SessionStore
	AllocationStore
	ModelStore
}
