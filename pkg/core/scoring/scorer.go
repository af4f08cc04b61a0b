package scoring

import (
	"go.uber.org/zap"

	"github.com/jakechorley/task-allocator/pkg/core/model"
)

// Kind identifies which scorer variant is active
type Kind string

const (
	KindHeuristic Kind = "heuristic"
	KindLearned   Kind = "learned"
)

// Scorer rates an employee-task pair on a 0-100 scale. Implementations never
// fail; a learned scorer that cannot predict returns the heuristic score.
type Scorer interface {
	Score(employee model.Employee, task model.Task) int
	Kind() Kind
}

// SelectConfig describes how to obtain the scorer for a session
type SelectConfig struct {
	// Kind is the requested variant; KindHeuristic skips the learned scorer entirely
	Kind Kind

	// Artifact, when set, is decoded instead of training (e.g. loaded from the database)
	Artifact []byte

	// ModelPath, when set and Artifact is empty, is loaded instead of training
	ModelPath string

	// Seed is the training dataset; DefaultSeedData is used when empty
	Seed []TrainingSample

	Train TrainConfig
}

// Select resolves the scorer for one session. A learned scorer that cannot be
// loaded or trained leaves the heuristic active.
func Select(cfg SelectConfig, logger *zap.Logger) Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.Kind == KindHeuristic {
		logger.Debug("Using heuristic scorer")
		return Heuristic{}
	}

	if len(cfg.Artifact) > 0 {
		learned, err := UnmarshalLearned(cfg.Artifact, logger)
		if err != nil {
			logger.Warn("Failed to decode stored model, using heuristic scorer", zap.Error(err))
			return Heuristic{}
		}
		logger.Info("Using stored learned scorer")
		return learned
	}

	if cfg.ModelPath != "" {
		learned, err := LoadLearned(cfg.ModelPath, logger)
		if err != nil {
			logger.Warn("Failed to load model, using heuristic scorer",
				zap.String("model_path", cfg.ModelPath),
				zap.Error(err))
			return Heuristic{}
		}
		logger.Info("Loaded learned scorer", zap.String("model_path", cfg.ModelPath))
		return learned
	}

	seed := cfg.Seed
	if len(seed) == 0 {
		seed = DefaultSeedData()
	}

	learned, err := TrainLearned(seed, cfg.Train, logger)
	if err != nil {
		logger.Warn("Failed to train model, using heuristic scorer", zap.Error(err))
		return Heuristic{}
	}

	logger.Info("Trained learned scorer",
		zap.Int("samples", len(seed)),
		zap.Float64("final_loss", learned.Loss()))
	return learned
}
