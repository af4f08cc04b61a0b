package allocator

import (
	"sync"

	"github.com/jakechorley/task-allocator/pkg/core/model"
	"github.com/jakechorley/task-allocator/pkg/core/scoring"
)

// fixedScorer returns a preset score per employee ID, 0 for anyone else
type fixedScorer struct {
	scores map[string]int
}

func (s fixedScorer) Kind() scoring.Kind { return scoring.KindHeuristic }

func (s fixedScorer) Score(employee model.Employee, _ model.Task) int {
	return s.scores[employee.ID]
}

// recordingReporter captures unallocated tasks
type recordingReporter struct {
	mu    sync.Mutex
	tasks []model.Task
}

func (r *recordingReporter) TaskUnallocated(task model.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, task)
}

func taskIDs(tasks []model.Task) []string {
	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	return ids
}

func allocatedTaskIDs(allocations []model.Allocation) []string {
	ids := make([]string, len(allocations))
	for i, a := range allocations {
		ids[i] = a.Task.ID
	}
	return ids
}
