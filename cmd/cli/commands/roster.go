package commands

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jakechorley/task-allocator/pkg/roster"
)

func loadRoster(app *AppContext, path string) (*roster.Roster, error) {
	planningDate, err := app.Cfg.PlanningDate()
	if err != nil {
		return nil, err
	}

	r, err := roster.Load(path, planningDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	app.Logger.Debug("Roster loaded",
		zap.String("path", path),
		zap.Int("employees", len(r.Employees)),
		zap.Int("tasks", len(r.Tasks)))

	return r, nil
}
