package allocator

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/jakechorley/task-allocator/pkg/core/model"
	"github.com/jakechorley/task-allocator/pkg/core/scoring"
	"github.com/jakechorley/task-allocator/pkg/metrics"
)

// Allocate walks the tasks in the given order and commits each one to the
// first ranked candidate with a free block of task.Duration consecutive hours.
// Tasks that no candidate can take end Unallocated and are sent to the
// reporter. Committed hours are removed from the session's copy of the
// employee's availability; employees passed in are never modified.
//
// tasks is expected to already be sequenced (see SequenceByPriority).
func Allocate(employees []model.Employee, tasks []TaskMatches, opts ...Option) *Outcome {
	o := buildOptions(opts)
	start := time.Now()

	s := newSession(employees, tasks)

	for _, tm := range tasks {
		if s.states[tm.Task.ID] != TaskPending {
			// the first task with this ID keeps its state; the repeat is reported, not dropped
			o.logger.Warn("Skipping task with an ID already resolved in this session",
				zap.String("task_id", tm.Task.ID),
				zap.String("state", s.states[tm.Task.ID].String()))
			s.skipDuplicate(tm.Task)
			metrics.RecordTaskUnallocated()
			o.reporter.TaskUnallocated(tm.Task)
			continue
		}

		allocated := false
		for _, candidate := range tm.Candidates {
			hours, ok := s.freeHours(candidate.Employee.ID)
			if !ok {
				continue
			}

			startHour, found := FindSlot(hours, tm.Task.Duration)
			if !found {
				continue
			}

			allocation := s.commit(candidate, startHour)
			metrics.RecordTaskAllocated()
			o.logger.Debug("Allocated task",
				zap.String("task_id", tm.Task.ID),
				zap.String("employee_id", candidate.Employee.ID),
				zap.Int("start_hour", allocation.StartHour),
				zap.Int("end_hour", allocation.EndHour()),
				zap.Int("score", allocation.MatchScore))
			allocated = true
			break
		}

		if !allocated {
			s.markUnallocated(tm.Task)
			metrics.RecordTaskUnallocated()
			o.reporter.TaskUnallocated(tm.Task)
		}
	}

	metrics.ObserveSessionDuration(time.Since(start).Seconds())

	return s.outcome()
}

// Run is the whole engine pass: score all pairs, sequence by priority, then
// allocate greedily
func Run(ctx context.Context, scorer scoring.Scorer, employees []model.Employee, tasks []model.Task, opts ...Option) (*Outcome, error) {
	matches, err := FindBestMatches(ctx, scorer, employees, tasks, opts...)
	if err != nil {
		return nil, err
	}

	return Allocate(employees, SequenceByPriority(matches), opts...), nil
}
