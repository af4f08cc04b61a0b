package services

import (
	"context"

	"github.com/jakechorley/task-allocator/pkg/db"
)

// mockStore implements db.Database in memory
type mockStore struct {
	sessions    []db.Session
	allocations map[string][]db.TaskAllocation
	artifacts   []db.ModelArtifact

	getSessionsErr    error
	insertSessionErr  error
	getAllocationsErr error
	getArtifactErr    error
	insertArtifactErr error

	requestedLimit int
}

func newMockStore() *mockStore {
	return &mockStore{allocations: make(map[string][]db.TaskAllocation)}
}

func (m *mockStore) GetSessions(_ context.Context, limit int) ([]db.Session, error) {
	m.requestedLimit = limit
	if m.getSessionsErr != nil {
		return nil, m.getSessionsErr
	}
	if limit > len(m.sessions) {
		limit = len(m.sessions)
	}
	return m.sessions[:limit], nil
}

func (m *mockStore) InsertSession(_ context.Context, session *db.Session, allocations []db.TaskAllocation) error {
	if m.insertSessionErr != nil {
		return m.insertSessionErr
	}
	m.sessions = append([]db.Session{*session}, m.sessions...)
	m.allocations[session.ID] = allocations
	return nil
}

func (m *mockStore) GetTaskAllocations(_ context.Context, sessionID string) ([]db.TaskAllocation, error) {
	if m.getAllocationsErr != nil {
		return nil, m.getAllocationsErr
	}
	return m.allocations[sessionID], nil
}

func (m *mockStore) GetLatestModelArtifact(_ context.Context) (*db.ModelArtifact, error) {
	if m.getArtifactErr != nil {
		return nil, m.getArtifactErr
	}
	if len(m.artifacts) == 0 {
		return nil, db.ErrNotFound
	}
	latest := m.artifacts[len(m.artifacts)-1]
	return &latest, nil
}

func (m *mockStore) InsertModelArtifact(_ context.Context, artifact *db.ModelArtifact) error {
	if m.insertArtifactErr != nil {
		return m.insertArtifactErr
	}
	m.artifacts = append(m.artifacts, *artifact)
	return nil
}
