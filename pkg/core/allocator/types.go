package allocator

import (
	"go.uber.org/zap"

	"github.com/jakechorley/task-allocator/pkg/core/model"
)

// TaskState tracks a task's progress through one allocation session
type TaskState int

const (
	// TaskPending means the task has not been attempted yet
	TaskPending TaskState = iota

	// TaskAllocated means the task was committed to an employee (terminal)
	TaskAllocated

	// TaskUnallocated means no candidate had a free block long enough (terminal)
	TaskUnallocated
)

func (s TaskState) String() string {
	switch s {
	case TaskPending:
		return "Pending"
	case TaskAllocated:
		return "Allocated"
	case TaskUnallocated:
		return "Unallocated"
	default:
		return "Unknown"
	}
}

// TaskMatches is a task together with every employee ranked by score, best first
type TaskMatches struct {
	Task       model.Task
	Candidates []model.MatchScore
}

// Outcome represents the result of one allocation session
type Outcome struct {
	// Allocations in the order tasks were resolved (priority order)
	Allocations []model.Allocation

	// Unallocated tasks in the order they were resolved
	Unallocated []model.Task

	// States holds the terminal state of every task by task ID
	States map[string]TaskState
}

// ValidationError describes a constraint violation found in a set of allocations
type ValidationError struct {
	EmployeeID  string
	TaskID      string
	Hour        int
	Description string
}

// Reporter receives diagnostics for tasks that end Unallocated
type Reporter interface {
	TaskUnallocated(task model.Task)
}

// LogReporter reports unallocated tasks as zap warnings
type LogReporter struct {
	logger *zap.Logger
}

func NewLogReporter(logger *zap.Logger) *LogReporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogReporter{logger: logger}
}

func (r *LogReporter) TaskUnallocated(task model.Task) {
	r.logger.Warn("Could not allocate task",
		zap.String("task_id", task.ID),
		zap.String("task_name", task.Name),
		zap.Int("duration", task.Duration),
		zap.String("priority", string(task.Priority)))
}
