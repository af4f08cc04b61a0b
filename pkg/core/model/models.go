package model

import "slices"

// Priority is the urgency tier of a task
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

// Urgency returns the ordinal encoding of the tier (Low=0 ... Critical=3).
// Unknown tiers are treated as Low.
func (p Priority) Urgency() int {
	switch p {
	case PriorityCritical:
		return 3
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 1
	default:
		return 0
	}
}

func (p Priority) IsValid() bool {
	return p == PriorityCritical || p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

// Employee represents a person that tasks can be allocated to
type Employee struct {
	ID             string
	Name           string
	Skills         []string
	Availability   []int // free hour slots, order is significant for slot search
	EnergyLevel    int   // 0-100
	Performance    int   // 0-100
	CompletedTasks int
}

// Clone returns a deep copy so that callers' slices are never shared
func (e Employee) Clone() Employee {
	e.Skills = slices.Clone(e.Skills)
	e.Availability = slices.Clone(e.Availability)
	return e
}

// HasSkill reports whether the employee has the given skill tag
func (e Employee) HasSkill(skill string) bool {
	return slices.Contains(e.Skills, skill)
}

// Task represents a unit of work with a fixed duration in whole hours
type Task struct {
	ID       string
	Name     string
	Skills   []string
	Duration int
	Priority Priority
	Deadline string // opaque to the engine
	Status   string // opaque to the engine
}

// MatchScore pairs an employee with a task and the score the active scorer gave them
type MatchScore struct {
	Employee Employee
	Task     Task
	Score    int
}

// Allocation is a committed assignment of a task to an employee starting at StartHour
type Allocation struct {
	Task       Task
	Employee   Employee
	MatchScore int
	StartHour  int
}

// EndHour returns the exclusive end of the allocated block
func (a Allocation) EndHour() int {
	return a.StartHour + a.Task.Duration
}

// Hours returns every hour slot covered by the allocation
func (a Allocation) Hours() []int {
	hours := make([]int, 0, max(0, min(a.Task.Duration, 24)))
	for h := a.StartHour; h < a.EndHour(); h++ {
		hours = append(hours, h)
	}
	return hours
}
