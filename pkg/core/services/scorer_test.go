package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/task-allocator/pkg/core/scoring"
	"github.com/jakechorley/task-allocator/pkg/db"
)

func dbArtifact(id string, content []byte) db.ModelArtifact {
	return db.ModelArtifact{ID: id, CreatedAt: "2024-03-04T09:00:00Z", Content: content}
}

func TestSelectScorer_Heuristic(t *testing.T) {
	store := newMockStore()
	store.getArtifactErr = errors.New("should not be called")

	scorer, err := selectScorer(context.Background(), store, heuristicConfig(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, scoring.KindHeuristic, scorer.Kind())
}

func TestSelectScorer_TrainsWhenNothingStored(t *testing.T) {
	scorer, err := selectScorer(context.Background(), newMockStore(), fastLearnedConfig(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, scoring.KindLearned, scorer.Kind())
}

func TestSelectScorer_StoreErrorStillTrains(t *testing.T) {
	store := newMockStore()
	store.getArtifactErr = errors.New("timeout")

	scorer, err := selectScorer(context.Background(), store, fastLearnedConfig(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, scoring.KindLearned, scorer.Kind())
}

func TestSelectScorer_CorruptStoredArtifactFallsBack(t *testing.T) {
	store := newMockStore()
	store.artifacts = append(store.artifacts, dbArtifact("bad", []byte("version: 99\n")))

	scorer, err := selectScorer(context.Background(), store, fastLearnedConfig(), zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, scoring.KindHeuristic, scorer.Kind())
}

func TestSelectScorer_ModelPathWinsOverStore(t *testing.T) {
	store := newMockStore()
	store.getArtifactErr = errors.New("should not be called")

	cfg := fastLearnedConfig()
	cfg.Scorer.ModelPath = filepath.Join(t.TempDir(), "missing.yaml")

	scorer, err := selectScorer(context.Background(), store, cfg, zap.NewNop())
	require.NoError(t, err)
	// missing file leaves the heuristic active
	assert.Equal(t, scoring.KindHeuristic, scorer.Kind())
}

func TestSelectScorer_MissingSeedData(t *testing.T) {
	cfg := fastLearnedConfig()
	cfg.Scorer.SeedDataPath = filepath.Join(t.TempDir(), "missing.yaml")

	_, err := selectScorer(context.Background(), nil, cfg, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load seed data")
}

func TestSelectScorer_SeedDataFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	seed := `
samples:
  - skillMatch: 1.0
    energyLevel: 90
    performance: 85
    taskUrgency: 2
    taskDuration: 2
    successScore: 92
  - skillMatch: 0.2
    energyLevel: 30
    performance: 40
    taskUrgency: 0
    taskDuration: 6
    successScore: 25
`
	require.NoError(t, os.WriteFile(path, []byte(seed), 0644))

	cfg := fastLearnedConfig()
	cfg.Scorer.SeedDataPath = path

	scorer, err := selectScorer(context.Background(), nil, cfg, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, scoring.KindLearned, scorer.Kind())
}
