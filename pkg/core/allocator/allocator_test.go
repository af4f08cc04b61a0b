package allocator

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jakechorley/task-allocator/pkg/core/model"
	"github.com/jakechorley/task-allocator/pkg/core/scoring"
)

func TestRun_PriorityOrderRegardlessOfInput(t *testing.T) {
	employees := []model.Employee{{ID: "e1", Availability: []int{9, 10, 11, 12, 13, 14}}}
	tasks := []model.Task{
		{ID: "B", Name: "B", Duration: 1, Priority: model.PriorityLow},
		{ID: "C", Name: "C", Duration: 1, Priority: model.PriorityHigh},
		{ID: "A", Name: "A", Duration: 1, Priority: model.PriorityCritical},
	}

	outcome, err := Run(context.Background(), scoring.Heuristic{}, employees, tasks)
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "C", "B"}, allocatedTaskIDs(outcome.Allocations))
	assert.Equal(t, 9, outcome.Allocations[0].StartHour)
	assert.Equal(t, 10, outcome.Allocations[1].StartHour)
	assert.Equal(t, 11, outcome.Allocations[2].StartHour)
}

func TestRun_SlotSearchUsesListOrder(t *testing.T) {
	employees := []model.Employee{{ID: "e1", Availability: []int{9, 10, 11, 13, 14}}}
	tasks := []model.Task{{ID: "t1", Duration: 2, Priority: model.PriorityMedium}}

	outcome, err := Run(context.Background(), scoring.Heuristic{}, employees, tasks)
	require.NoError(t, err)

	require.Len(t, outcome.Allocations, 1)
	assert.Equal(t, 9, outcome.Allocations[0].StartHour)
	assert.Equal(t, 11, outcome.Allocations[0].EndHour())
}

func TestAllocate_Unallocatable(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logger := zap.New(core)

	employees := []model.Employee{{ID: "e1", Availability: []int{9}}}
	tasks := []model.Task{{ID: "t1", Name: "Write report", Duration: 3, Priority: model.PriorityHigh}}

	outcome, err := Run(context.Background(), scoring.Heuristic{}, employees, tasks, WithLogger(logger))
	require.NoError(t, err)

	assert.Empty(t, outcome.Allocations)
	assert.Equal(t, []string{"t1"}, taskIDs(outcome.Unallocated))
	assert.Equal(t, TaskUnallocated, outcome.States["t1"])

	entries := logs.FilterMessage("Could not allocate task").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Write report", entries[0].ContextMap()["task_name"])
}

func TestAllocate_Exhaustion(t *testing.T) {
	reporter := &recordingReporter{}

	employees := []model.Employee{{ID: "e1", Availability: []int{9, 10}}}
	tasks := []model.Task{
		{ID: "second", Duration: 2, Priority: model.PriorityMedium},
		{ID: "first", Duration: 2, Priority: model.PriorityCritical},
	}

	outcome, err := Run(context.Background(), scoring.Heuristic{}, employees, tasks, WithReporter(reporter))
	require.NoError(t, err)

	assert.Equal(t, []string{"first"}, allocatedTaskIDs(outcome.Allocations))
	assert.Equal(t, []string{"second"}, taskIDs(reporter.tasks))
	assert.Equal(t, TaskAllocated, outcome.States["first"])
	assert.Equal(t, TaskUnallocated, outcome.States["second"])
}

func TestAllocate_FallsThroughToNextCandidate(t *testing.T) {
	employees := []model.Employee{
		{ID: "busy", Availability: []int{9}},
		{ID: "free", Availability: []int{14, 15, 16}},
	}
	tasks := []model.Task{{ID: "t1", Duration: 2, Priority: model.PriorityHigh}}
	scorer := fixedScorer{scores: map[string]int{"busy": 95, "free": 40}}

	outcome, err := Run(context.Background(), scorer, employees, tasks)
	require.NoError(t, err)

	require.Len(t, outcome.Allocations, 1)
	allocation := outcome.Allocations[0]
	assert.Equal(t, "free", allocation.Employee.ID)
	assert.Equal(t, 40, allocation.MatchScore)
	assert.Equal(t, 14, allocation.StartHour)
}

func TestAllocate_SkipsCandidatesOutsideSession(t *testing.T) {
	matches := []TaskMatches{{
		Task: model.Task{ID: "t1", Duration: 1},
		Candidates: []model.MatchScore{
			{Employee: model.Employee{ID: "ghost", Availability: []int{9}}, Task: model.Task{ID: "t1", Duration: 1}, Score: 100},
			{Employee: model.Employee{ID: "e1", Availability: []int{10}}, Task: model.Task{ID: "t1", Duration: 1}, Score: 10},
		},
	}}
	employees := []model.Employee{{ID: "e1", Availability: []int{10}}}

	outcome := Allocate(employees, matches)

	require.Len(t, outcome.Allocations, 1)
	assert.Equal(t, "e1", outcome.Allocations[0].Employee.ID)
}

func TestAllocate_DoesNotMutateCallerEmployees(t *testing.T) {
	employees := []model.Employee{{ID: "e1", Skills: []string{"Go"}, Availability: []int{9, 10, 11}}}
	tasks := []model.Task{
		{ID: "t1", Duration: 2, Priority: model.PriorityHigh},
		{ID: "t2", Duration: 1, Priority: model.PriorityLow},
	}

	outcome, err := Run(context.Background(), scoring.Heuristic{}, employees, tasks)
	require.NoError(t, err)
	require.Len(t, outcome.Allocations, 2)

	assert.Equal(t, []int{9, 10, 11}, employees[0].Availability)
	assert.Equal(t, 11, outcome.Allocations[1].StartHour)

	// a second session starts from the caller's data again
	again, err := Run(context.Background(), scoring.Heuristic{}, employees, tasks)
	require.NoError(t, err)
	assert.Equal(t, outcome.Allocations, again.Allocations)
}

func TestAllocate_NoDoubleBooking(t *testing.T) {
	employees := []model.Employee{
		{ID: "e1", Skills: []string{"Go", "SQL"}, EnergyLevel: 90, Performance: 95, Availability: []int{9, 10, 11, 12, 13, 14, 15, 16}},
		{ID: "e2", Skills: []string{"Go"}, EnergyLevel: 70, Performance: 80, Availability: []int{13, 9, 10, 14}},
		{ID: "e3", Skills: []string{"Design"}, EnergyLevel: 60, Performance: 85, Availability: []int{9, 10, 11}},
	}
	tasks := []model.Task{
		{ID: "t1", Skills: []string{"Go"}, Duration: 3, Priority: model.PriorityCritical},
		{ID: "t2", Skills: []string{"Go", "SQL"}, Duration: 2, Priority: model.PriorityHigh},
		{ID: "t3", Skills: []string{"Go"}, Duration: 2, Priority: model.PriorityHigh},
		{ID: "t4", Skills: []string{"Design"}, Duration: 1, Priority: model.PriorityMedium},
		{ID: "t5", Duration: 4, Priority: model.PriorityLow},
		{ID: "t6", Skills: []string{"SQL"}, Duration: 8, Priority: model.PriorityLow},
	}

	outcome, err := Run(context.Background(), scoring.Heuristic{}, employees, tasks, WithWorkers(2))
	require.NoError(t, err)

	assert.Empty(t, ValidateAllocations(employees, outcome.Allocations))
	assert.Equal(t, len(tasks), len(outcome.Allocations)+len(outcome.Unallocated))
	for _, task := range tasks {
		assert.NotEqual(t, TaskPending, outcome.States[task.ID], task.ID)
	}
}

func TestTaskState_String(t *testing.T) {
	assert.Equal(t, "Pending", TaskPending.String())
	assert.Equal(t, "Allocated", TaskAllocated.String())
	assert.Equal(t, "Unallocated", TaskUnallocated.String())
	assert.Equal(t, "Unknown", TaskState(9).String())
}

func TestRun_OversizedDurationIsUnallocated(t *testing.T) {
	employees := []model.Employee{{ID: "e1", Availability: []int{9}}}
	tasks := []model.Task{{ID: "t1", Duration: math.MaxInt, Priority: model.PriorityHigh}}

	outcome, err := Run(context.Background(), scoring.Heuristic{}, employees, tasks)
	require.NoError(t, err)

	assert.Empty(t, outcome.Allocations)
	assert.Equal(t, []string{"t1"}, taskIDs(outcome.Unallocated))
	assert.Empty(t, ValidateAllocations(employees, outcome.Allocations))
}

func TestAllocate_RepeatedTaskIDIsReported(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	reporter := &recordingReporter{}

	employees := []model.Employee{{ID: "e1", Availability: []int{9, 10}}}
	first := model.Task{ID: "t1", Name: "first", Duration: 1, Priority: model.PriorityHigh}
	repeat := model.Task{ID: "t1", Name: "repeat", Duration: 1, Priority: model.PriorityHigh}
	candidate := func(task model.Task) TaskMatches {
		return TaskMatches{Task: task, Candidates: []model.MatchScore{{Employee: employees[0], Task: task, Score: 50}}}
	}

	outcome := Allocate(employees, []TaskMatches{candidate(first), candidate(repeat)},
		WithLogger(zap.New(core)), WithReporter(reporter))

	require.Len(t, outcome.Allocations, 1)
	assert.Equal(t, "first", outcome.Allocations[0].Task.Name)
	require.Len(t, outcome.Unallocated, 1)
	assert.Equal(t, "repeat", outcome.Unallocated[0].Name)
	assert.Equal(t, TaskAllocated, outcome.States["t1"])

	require.Len(t, reporter.tasks, 1)
	assert.Equal(t, "repeat", reporter.tasks[0].Name)
	assert.Equal(t, 1, logs.FilterMessage("Skipping task with an ID already resolved in this session").Len())
}
