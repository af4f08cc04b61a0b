// Package roster reads the employees and tasks for one planning window from YAML.
package roster

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/task-allocator/pkg/core/model"
)

// ErrInvalidRoster is wrapped by every validation failure
var ErrInvalidRoster = errors.New("invalid roster")

// EmployeeRecord is an employee as written in a roster file. Availability is
// either a list of hours or an RRULE expanded over the planning date.
type EmployeeRecord struct {
	ID               string   `yaml:"id" validate:"required"`
	Name             string   `yaml:"name" validate:"required"`
	Skills           []string `yaml:"skills,omitempty" validate:"dive,required"`
	Availability     []int    `yaml:"availability,omitempty" validate:"excluded_with=AvailabilityRule,dive,min=0,max=23"`
	AvailabilityRule string   `yaml:"availabilityRule,omitempty"`
	EnergyLevel      int      `yaml:"energyLevel" validate:"min=0,max=100"`
	Performance      int      `yaml:"performance" validate:"min=0,max=100"`
	CompletedTasks   int      `yaml:"completedTasks,omitempty" validate:"min=0"`
}

// TaskRecord is a task as written in a roster file
type TaskRecord struct {
	ID       string   `yaml:"id" validate:"required"`
	Name     string   `yaml:"name" validate:"required"`
	Skills   []string `yaml:"skills,omitempty" validate:"dive,required"`
	Duration int      `yaml:"duration" validate:"min=1,max=24"`
	Priority string   `yaml:"priority" validate:"required,oneof=Critical High Medium Low"`
	Deadline string   `yaml:"deadline,omitempty"`
	Status   string   `yaml:"status,omitempty"`
}

type rosterFile struct {
	Employees []EmployeeRecord `yaml:"employees" validate:"dive"`
	Tasks     []TaskRecord     `yaml:"tasks" validate:"dive"`
}

// Roster holds the parsed engine inputs
type Roster struct {
	Employees []model.Employee
	Tasks     []model.Task
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load reads and validates a roster file. Availability rules are expanded
// over planningDate.
func Load(path string, planningDate time.Time) (*Roster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}

	return Parse(data, planningDate)
}

// Parse decodes and validates roster YAML
func Parse(data []byte, planningDate time.Time) (*Roster, error) {
	var file rosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: failed to parse roster: %v", ErrInvalidRoster, err)
	}

	if err := validate.Struct(&file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRoster, err)
	}

	roster := &Roster{
		Employees: make([]model.Employee, 0, len(file.Employees)),
		Tasks:     make([]model.Task, 0, len(file.Tasks)),
	}

	seenEmployees := make(map[string]bool, len(file.Employees))
	for i, record := range file.Employees {
		if seenEmployees[record.ID] {
			return nil, fmt.Errorf("%w: duplicate employee id %q", ErrInvalidRoster, record.ID)
		}
		seenEmployees[record.ID] = true

		if record.AvailabilityRule != "" {
			hours, err := ExpandAvailability(record.AvailabilityRule, planningDate)
			if err != nil {
				return nil, fmt.Errorf("%w: employees[%d]: %v", ErrInvalidRoster, i, err)
			}
			record.Availability = hours
		}

		roster.Employees = append(roster.Employees, model.Employee{
			ID:             record.ID,
			Name:           record.Name,
			Skills:         record.Skills,
			Availability:   record.Availability,
			EnergyLevel:    record.EnergyLevel,
			Performance:    record.Performance,
			CompletedTasks: record.CompletedTasks,
		})
	}

	seenTasks := make(map[string]bool, len(file.Tasks))
	for _, record := range file.Tasks {
		if seenTasks[record.ID] {
			return nil, fmt.Errorf("%w: duplicate task id %q", ErrInvalidRoster, record.ID)
		}
		seenTasks[record.ID] = true

		roster.Tasks = append(roster.Tasks, model.Task{
			ID:       record.ID,
			Name:     record.Name,
			Skills:   record.Skills,
			Duration: record.Duration,
			Priority: model.Priority(record.Priority),
			Deadline: record.Deadline,
			Status:   record.Status,
		})
	}

	return roster, nil
}

// ExpandAvailability returns the hours of day on which rule fires during
// planningDate, in occurrence order
func ExpandAvailability(rule string, planningDate time.Time) ([]int, error) {
	r, err := rrule.StrToRRule(rule)
	if err != nil {
		return nil, fmt.Errorf("invalid availability rule %q: %w", rule, err)
	}

	dayStart := time.Date(planningDate.Year(), planningDate.Month(), planningDate.Day(), 0, 0, 0, 0, planningDate.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Second)

	r.DTStart(dayStart)

	hours := []int{}
	seen := make(map[int]bool)
	for _, occurrence := range r.Between(dayStart, dayEnd, true) {
		h := occurrence.Hour()
		if seen[h] {
			continue
		}
		seen[h] = true
		hours = append(hours, h)
	}

	return hours, nil
}
