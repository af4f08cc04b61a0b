package scoring

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jakechorley/task-allocator/pkg/core/model"
)

// SkillMatchRatio returns the fraction of the task's required skills the
// employee has. A task with no required skills has a ratio of 0.
func SkillMatchRatio(employeeSkills, taskSkills []string) float64 {
	if len(taskSkills) == 0 {
		return 0
	}

	have := make(map[string]struct{}, len(employeeSkills))
	for _, skill := range employeeSkills {
		have[skill] = struct{}{}
	}

	matching := 0
	for _, skill := range taskSkills {
		if _, ok := have[skill]; ok {
			matching++
		}
	}

	return float64(matching) / float64(len(taskSkills))
}

// TrainingSample is one historical observation used to fit the learned scorer
type TrainingSample struct {
	SkillMatch   float64 `yaml:"skillMatch"`
	EnergyLevel  float64 `yaml:"energyLevel"`
	Performance  float64 `yaml:"performance"`
	TaskUrgency  float64 `yaml:"taskUrgency"`
	TaskDuration float64 `yaml:"taskDuration"`
	SuccessScore float64 `yaml:"successScore"` // 0-100
}

// DefaultSeedData returns the small bootstrap dataset used when no real
// historical data is configured
func DefaultSeedData() []TrainingSample {
	return []TrainingSample{
		{SkillMatch: 1.0, EnergyLevel: 85, Performance: 92, TaskUrgency: 2, TaskDuration: 3, SuccessScore: 95},
		{SkillMatch: 0.5, EnergyLevel: 90, Performance: 88, TaskUrgency: 1, TaskDuration: 4, SuccessScore: 75},
		{SkillMatch: 0.0, EnergyLevel: 78, Performance: 85, TaskUrgency: 3, TaskDuration: 2, SuccessScore: 40},
		{SkillMatch: 1.0, EnergyLevel: 65, Performance: 75, TaskUrgency: 0, TaskDuration: 5, SuccessScore: 60},
		{SkillMatch: 0.7, EnergyLevel: 95, Performance: 90, TaskUrgency: 2, TaskDuration: 1, SuccessScore: 85},
	}
}

type seedFile struct {
	Samples []TrainingSample `yaml:"samples"`
}

// LoadSeedData reads training samples from a YAML file with a top level
// "samples" list
func LoadSeedData(path string) ([]TrainingSample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed data: %w", err)
	}

	var file seedFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}

	if len(file.Samples) == 0 {
		return nil, fmt.Errorf("seed data %s contains no samples", path)
	}

	return file.Samples, nil
}

// sampleFeatures builds the normalized feature vector for a training sample
func (n *Normalizer) sampleFeatures(s TrainingSample) ([]float64, error) {
	return n.vector([]float64{s.SkillMatch, s.EnergyLevel, s.Performance, s.TaskUrgency, s.TaskDuration})
}

// pairFeatures builds the normalized feature vector for an employee-task pair
func (n *Normalizer) pairFeatures(employee model.Employee, task model.Task) ([]float64, error) {
	return n.vector([]float64{
		SkillMatchRatio(employee.Skills, task.Skills),
		float64(employee.EnergyLevel),
		float64(employee.Performance),
		float64(task.Priority.Urgency()),
		float64(task.Duration),
	})
}

func (n *Normalizer) vector(raw []float64) ([]float64, error) {
	features := make([]float64, len(FeatureOrder))
	for i, feature := range FeatureOrder {
		v, err := n.Normalize(raw[i], feature)
		if err != nil {
			return nil, err
		}
		features[i] = v
	}
	return features, nil
}
