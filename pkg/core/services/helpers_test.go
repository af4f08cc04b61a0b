package services

import (
	"github.com/jakechorley/task-allocator/internal/config"
	"github.com/jakechorley/task-allocator/pkg/core/model"
	"github.com/jakechorley/task-allocator/pkg/roster"
)

func heuristicConfig() *config.Config {
	cfg := config.Default()
	cfg.Scorer.Mode = "heuristic"
	cfg.Planning.Date = "2024-03-04"
	return cfg
}

// fastLearnedConfig trains a tiny model so tests stay quick
func fastLearnedConfig() *config.Config {
	cfg := config.Default()
	cfg.Scorer.Epochs = 2
	cfg.Planning.Date = "2024-03-04"
	return cfg
}

func testRoster() *roster.Roster {
	return &roster.Roster{
		Employees: []model.Employee{
			{ID: "e1", Name: "Alice", Skills: []string{"go", "sql"}, Availability: []int{9, 10, 11, 12}, EnergyLevel: 90, Performance: 80},
			{ID: "e2", Name: "Bob", Skills: []string{"design"}, Availability: []int{14, 15}, EnergyLevel: 60, Performance: 70},
		},
		Tasks: []model.Task{
			{ID: "t1", Name: "API", Skills: []string{"go"}, Duration: 2, Priority: model.PriorityHigh},
			{ID: "t2", Name: "Mockups", Skills: []string{"design"}, Duration: 2, Priority: model.PriorityCritical},
			{ID: "t3", Name: "Migration", Skills: []string{"sql"}, Duration: 8, Priority: model.PriorityLow},
		},
	}
}
