package allocator

import (
	"fmt"
	"slices"

	"github.com/jakechorley/task-allocator/pkg/core/model"
)

// ValidateAllocations checks a finished set of allocations against the
// employees' original availability.
// Returns a slice of validation errors for any constraint violations.
// An empty slice indicates the allocations are valid.
func ValidateAllocations(employees []model.Employee, allocations []model.Allocation) []ValidationError {
	errors := []ValidationError{}

	available := make(map[string][]int, len(employees))
	for _, e := range employees {
		if _, ok := available[e.ID]; !ok {
			available[e.ID] = e.Availability
		}
	}

	// employee ID -> hour -> task ID holding it
	booked := make(map[string]map[int]string)

	for _, a := range allocations {
		employeeID := a.Employee.ID

		hours, ok := available[employeeID]
		if !ok {
			errors = append(errors, ValidationError{
				EmployeeID:  employeeID,
				TaskID:      a.Task.ID,
				Hour:        a.StartHour,
				Description: fmt.Sprintf("task %s allocated to unknown employee %s", a.Task.ID, employeeID),
			})
			continue
		}

		if booked[employeeID] == nil {
			booked[employeeID] = make(map[int]string)
		}

		for _, h := range a.Hours() {
			if !slices.Contains(hours, h) {
				errors = append(errors, ValidationError{
					EmployeeID:  employeeID,
					TaskID:      a.Task.ID,
					Hour:        h,
					Description: fmt.Sprintf("task %s uses hour %d outside the availability of %s", a.Task.ID, h, employeeID),
				})
			}

			if other, taken := booked[employeeID][h]; taken {
				errors = append(errors, ValidationError{
					EmployeeID:  employeeID,
					TaskID:      a.Task.ID,
					Hour:        h,
					Description: fmt.Sprintf("employee %s double booked at hour %d by tasks %s and %s", employeeID, h, other, a.Task.ID),
				})
				continue
			}
			booked[employeeID][h] = a.Task.ID
		}
	}

	return errors
}
