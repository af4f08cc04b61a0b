package allocator

import (
	"slices"

	"github.com/jakechorley/task-allocator/pkg/core/model"
)

// session is the working set for one Allocate call. It owns copies of every
// employee's availability and is never shared with callers.
type session struct {
	availability map[string][]int
	states       map[string]TaskState
	allocations  []model.Allocation
	unallocated  []model.Task
}

func newSession(employees []model.Employee, tasks []TaskMatches) *session {
	s := &session{
		availability: make(map[string][]int, len(employees)),
		states:       make(map[string]TaskState, len(tasks)),
	}

	for _, e := range employees {
		// first record wins for a repeated ID
		if _, ok := s.availability[e.ID]; ok {
			continue
		}
		s.availability[e.ID] = slices.Clone(e.Availability)
	}

	for _, tm := range tasks {
		s.states[tm.Task.ID] = TaskPending
	}

	return s
}

// freeHours returns the employee's current working availability and whether
// they are part of the session at all
func (s *session) freeHours(employeeID string) ([]int, bool) {
	hours, ok := s.availability[employeeID]
	return hours, ok
}

// commit records the allocation and removes its hours from the employee's
// working availability
func (s *session) commit(candidate model.MatchScore, startHour int) model.Allocation {
	allocation := model.Allocation{
		Task:       candidate.Task,
		Employee:   candidate.Employee.Clone(),
		MatchScore: candidate.Score,
		StartHour:  startHour,
	}

	end := allocation.EndHour()
	s.availability[candidate.Employee.ID] = slices.DeleteFunc(s.availability[candidate.Employee.ID], func(h int) bool {
		return h >= startHour && h < end
	})

	s.states[candidate.Task.ID] = TaskAllocated
	s.allocations = append(s.allocations, allocation)
	return allocation
}

func (s *session) markUnallocated(task model.Task) {
	s.states[task.ID] = TaskUnallocated
	s.unallocated = append(s.unallocated, task)
}

// skipDuplicate lists a repeated task as unallocated without touching the
// state recorded for the first task with that ID
func (s *session) skipDuplicate(task model.Task) {
	s.unallocated = append(s.unallocated, task)
}

func (s *session) outcome() *Outcome {
	// Initialise with empty slices (not nil) for easier consumption
	outcome := &Outcome{
		Allocations: []model.Allocation{},
		Unallocated: []model.Task{},
		States:      s.states,
	}
	outcome.Allocations = append(outcome.Allocations, s.allocations...)
	outcome.Unallocated = append(outcome.Unallocated, s.unallocated...)
	return outcome
}
