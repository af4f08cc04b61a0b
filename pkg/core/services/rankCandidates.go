package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/task-allocator/internal/config"
	"github.com/jakechorley/task-allocator/pkg/core/allocator"
	"github.com/jakechorley/task-allocator/pkg/core/scoring"
	"github.com/jakechorley/task-allocator/pkg/db"
	"github.com/jakechorley/task-allocator/pkg/roster"
)

// RankCandidatesResult is the ranked candidate list per task in the order
// the allocator would attempt them
type RankCandidatesResult struct {
	Tasks      []allocator.TaskMatches
	ScorerKind scoring.Kind
}

// RankCandidates scores every employee for every task without committing
// anything. store may be nil.
func RankCandidates(ctx context.Context, store db.ModelStore, cfg *config.Config, logger *zap.Logger, r *roster.Roster) (*RankCandidatesResult, error) {
	scorer, err := selectScorer(ctx, store, cfg, logger)
	if err != nil {
		return nil, err
	}

	matches, err := allocator.FindBestMatches(ctx, scorer, r.Employees, r.Tasks,
		allocator.WithLogger(logger),
		allocator.WithWorkers(cfg.Matcher.Workers))
	if err != nil {
		return nil, fmt.Errorf("failed to rank candidates: %w", err)
	}

	logger.Debug("Ranked candidates", zap.Int("tasks", len(matches)), zap.String("scorer", string(scorer.Kind())))

	return &RankCandidatesResult{
		Tasks:      allocator.SequenceByPriority(matches),
		ScorerKind: scorer.Kind(),
	}, nil
}
