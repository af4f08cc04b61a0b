package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/task-allocator/internal/config"
	"github.com/jakechorley/task-allocator/pkg/core/scoring"
	"github.com/jakechorley/task-allocator/pkg/db"
)

// selectScorer resolves the scorer for one run. A model path in config wins
// over a stored artifact, which wins over training on the seed data.
// store may be nil.
func selectScorer(ctx context.Context, store db.ModelStore, cfg *config.Config, logger *zap.Logger) (scoring.Scorer, error) {
	selectCfg := scoring.SelectConfig{
		Kind:      scoring.Kind(cfg.Scorer.Mode),
		ModelPath: cfg.Scorer.ModelPath,
		Train:     trainConfig(cfg),
	}

	if selectCfg.Kind == scoring.KindHeuristic {
		return scoring.Select(selectCfg, logger), nil
	}

	if selectCfg.ModelPath == "" && store != nil {
		logger.Debug("Fetching latest stored model")
		artifact, err := store.GetLatestModelArtifact(ctx)
		switch {
		case errors.Is(err, db.ErrNotFound):
			logger.Debug("No stored model, training from seed data")
		case err != nil:
			logger.Warn("Failed to fetch stored model, training from seed data", zap.Error(err))
		default:
			logger.Debug("Using stored model", zap.String("artifact_id", artifact.ID), zap.String("created_at", artifact.CreatedAt))
			selectCfg.Artifact = artifact.Content
		}
	}

	if selectCfg.Artifact == nil && selectCfg.ModelPath == "" {
		seed, err := loadSeed(cfg)
		if err != nil {
			return nil, err
		}
		selectCfg.Seed = seed
	}

	return scoring.Select(selectCfg, logger), nil
}

func trainConfig(cfg *config.Config) scoring.TrainConfig {
	return scoring.TrainConfig{
		Epochs:       cfg.Scorer.Epochs,
		BatchSize:    cfg.Scorer.BatchSize,
		LearningRate: cfg.Scorer.LearningRate,
		Seed:         cfg.Scorer.Seed,
	}
}

// loadSeed returns the configured training data, or the built-in samples
func loadSeed(cfg *config.Config) ([]scoring.TrainingSample, error) {
	if cfg.Scorer.SeedDataPath == "" {
		return scoring.DefaultSeedData(), nil
	}
	seed, err := scoring.LoadSeedData(cfg.Scorer.SeedDataPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load seed data: %w", err)
	}
	return seed, nil
}
