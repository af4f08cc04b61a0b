package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/task-allocator/pkg/core/scoring"
)

func TestTrainModel_WritesFileAndStore(t *testing.T) {
	store := newMockStore()
	out := filepath.Join(t.TempDir(), "model.yaml")

	result, err := TrainModel(context.Background(), store, fastLearnedConfig(), zap.NewNop(), out)
	require.NoError(t, err)

	assert.True(t, result.Stored)
	assert.Equal(t, out, result.Path)
	assert.Equal(t, len(scoring.DefaultSeedData()), result.Artifact.Samples)

	loaded, err := scoring.LoadLearned(out, nil)
	require.NoError(t, err)
	assert.Equal(t, scoring.KindLearned, loaded.Kind())

	require.Len(t, store.artifacts, 1)
	fromStore, err := scoring.UnmarshalLearned(store.artifacts[0].Content, nil)
	require.NoError(t, err)

	r := testRoster()
	for _, e := range r.Employees {
		for _, task := range r.Tasks {
			assert.Equal(t, loaded.Score(e, task), fromStore.Score(e, task))
		}
	}
}

func TestTrainModel_NoStore(t *testing.T) {
	out := filepath.Join(t.TempDir(), "model.yaml")

	result, err := TrainModel(context.Background(), nil, fastLearnedConfig(), zap.NewNop(), out)
	require.NoError(t, err)
	assert.False(t, result.Stored)
}

func TestTrainModel_Errors(t *testing.T) {
	t.Run("empty output path", func(t *testing.T) {
		_, err := TrainModel(context.Background(), nil, fastLearnedConfig(), zap.NewNop(), "")
		require.Error(t, err)
	})

	t.Run("unwritable output path", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "missing-dir", "model.yaml")
		_, err := TrainModel(context.Background(), nil, fastLearnedConfig(), zap.NewNop(), out)
		require.Error(t, err)
	})

	t.Run("store failure", func(t *testing.T) {
		store := newMockStore()
		store.insertArtifactErr = errors.New("disk full")
		out := filepath.Join(t.TempDir(), "model.yaml")

		_, err := TrainModel(context.Background(), store, fastLearnedConfig(), zap.NewNop(), out)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to store model")
	})
}
