package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jakechorley/task-allocator/pkg/db"
)

// GetLatestModelArtifact retrieves the most recently stored model
func (d *DB) GetLatestModelArtifact(ctx context.Context) (*db.ModelArtifact, error) {
	var a db.ModelArtifact
	var createdAt time.Time
	err := d.pool.QueryRow(ctx, `
		SELECT id::text, created_at, samples, loss, content
		FROM model_artifact
		ORDER BY created_at DESC
		LIMIT 1
	`).Scan(&a.ID, &createdAt, &a.Samples, &a.Loss, &a.Content)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, db.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query model artifact: %w", err)
	}

	a.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	return &a, nil
}

// InsertModelArtifact stores a trained model
func (d *DB) InsertModelArtifact(ctx context.Context, artifact *db.ModelArtifact) error {
	createdAt, err := time.Parse(time.RFC3339, artifact.CreatedAt)
	if err != nil {
		return fmt.Errorf("invalid artifact created_at %q: %w", artifact.CreatedAt, err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO model_artifact (id, created_at, samples, loss, content)
		VALUES ($1, $2, $3, $4, $5)
	`, artifact.ID, createdAt, artifact.Samples, artifact.Loss, artifact.Content)
	if err != nil {
		return fmt.Errorf("failed to insert model artifact: %w", err)
	}
	return nil
}
