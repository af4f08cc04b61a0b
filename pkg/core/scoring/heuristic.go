package scoring

import (
	"math"

	"github.com/jakechorley/task-allocator/pkg/core/model"
)

// Heuristic weights
const (
	weightSkillMatch  = 0.5
	weightEnergy      = 0.2
	weightPerformance = 0.3
)

// Heuristic scores a pair with a fixed weighted sum of skill match, energy and
// performance. It is deterministic and never fails.
type Heuristic struct{}

func (Heuristic) Kind() Kind {
	return KindHeuristic
}

func (Heuristic) Score(employee model.Employee, task model.Task) int {
	skillMatch := SkillMatchRatio(employee.Skills, task.Skills)
	energy := float64(employee.EnergyLevel) / 100
	performance := float64(employee.Performance) / 100

	return int(math.Round((skillMatch*weightSkillMatch + energy*weightEnergy + performance*weightPerformance) * 100))
}
