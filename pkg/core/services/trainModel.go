package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/task-allocator/internal/config"
	"github.com/jakechorley/task-allocator/pkg/core/scoring"
	"github.com/jakechorley/task-allocator/pkg/db"
)

// TrainModelResult represents a completed training run
type TrainModelResult struct {
	Artifact db.ModelArtifact
	Path     string
	Stored   bool
}

// TrainModel trains the learned scorer on the configured seed data and writes
// the artifact to outPath and, when store is not nil, to the database
func TrainModel(ctx context.Context, store db.ModelStore, cfg *config.Config, logger *zap.Logger, outPath string) (*TrainModelResult, error) {
	if outPath == "" {
		return nil, fmt.Errorf("output path must not be empty")
	}

	seed, err := loadSeed(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("Training model", zap.Int("samples", len(seed)), zap.Int("epochs", cfg.Scorer.Epochs))

	learned, err := scoring.TrainLearned(seed, trainConfig(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to train model: %w", err)
	}

	content, err := learned.MarshalArtifact()
	if err != nil {
		return nil, err
	}

	if err := scoring.SaveLearned(learned, outPath); err != nil {
		return nil, err
	}
	logger.Debug("Model written", zap.String("path", outPath), zap.Float64("loss", learned.Loss()))

	result := &TrainModelResult{
		Artifact: db.ModelArtifact{
			ID:        uuid.New().String(),
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
			Samples:   len(seed),
			Loss:      learned.Loss(),
			Content:   content,
		},
		Path: outPath,
	}

	if store == nil {
		return result, nil
	}

	if err := store.InsertModelArtifact(ctx, &result.Artifact); err != nil {
		return nil, fmt.Errorf("failed to store model: %w", err)
	}
	result.Stored = true

	logger.Debug("Model stored", zap.String("artifact_id", result.Artifact.ID))

	return result, nil
}
