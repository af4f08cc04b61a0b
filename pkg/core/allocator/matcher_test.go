package allocator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/task-allocator/pkg/core/model"
	"github.com/jakechorley/task-allocator/pkg/core/scoring"
)

func TestFindBestMatches_RanksDescendingWithStableTies(t *testing.T) {
	employees := []model.Employee{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	tasks := []model.Task{{ID: "t1"}, {ID: "t2"}}
	scorer := fixedScorer{scores: map[string]int{"a": 50, "b": 80, "c": 50, "d": 90}}

	matches, err := FindBestMatches(context.Background(), scorer, employees, tasks)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Equal(t, "t1", matches[0].Task.ID)
	assert.Equal(t, "t2", matches[1].Task.ID)

	for _, tm := range matches {
		ids := make([]string, len(tm.Candidates))
		for i, c := range tm.Candidates {
			ids[i] = c.Employee.ID
			assert.Equal(t, tm.Task.ID, c.Task.ID)
		}
		assert.Equal(t, []string{"d", "b", "a", "c"}, ids)
	}
}

func TestFindBestMatches_Idempotent(t *testing.T) {
	employees := []model.Employee{
		{ID: "e1", Skills: []string{"Go"}, EnergyLevel: 70, Performance: 80, Availability: []int{9, 10}},
		{ID: "e2", Skills: []string{"SQL"}, EnergyLevel: 90, Performance: 60, Availability: []int{11}},
		{ID: "e3", Skills: []string{"Go", "SQL"}, EnergyLevel: 50, Performance: 50},
	}
	tasks := []model.Task{
		{ID: "t1", Skills: []string{"Go"}, Duration: 1, Priority: model.PriorityHigh},
		{ID: "t2", Skills: []string{"SQL", "Go"}, Duration: 2, Priority: model.PriorityLow},
		{ID: "t3", Duration: 1, Priority: model.PriorityMedium},
	}

	first, err := FindBestMatches(context.Background(), scoring.Heuristic{}, employees, tasks, WithWorkers(3))
	require.NoError(t, err)
	second, err := FindBestMatches(context.Background(), scoring.Heuristic{}, employees, tasks, WithWorkers(1))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFindBestMatches_DoesNotAliasCallerData(t *testing.T) {
	employees := []model.Employee{{ID: "e1", Availability: []int{9, 10}}}
	tasks := []model.Task{{ID: "t1", Duration: 1}}

	matches, err := FindBestMatches(context.Background(), scoring.Heuristic{}, employees, tasks)
	require.NoError(t, err)

	matches[0].Candidates[0].Employee.Availability[0] = 99
	assert.Equal(t, []int{9, 10}, employees[0].Availability)
}

func TestFindBestMatches_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindBestMatches(ctx, scoring.Heuristic{}, []model.Employee{{ID: "e1"}}, []model.Task{{ID: "t1"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFindBestMatches_Empty(t *testing.T) {
	matches, err := FindBestMatches(context.Background(), scoring.Heuristic{}, nil, []model.Task{{ID: "t1"}})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Empty(t, matches[0].Candidates)
}
