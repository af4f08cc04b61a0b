package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/task-allocator/internal/config"
	"github.com/jakechorley/task-allocator/pkg/db"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg *config.Config

	// Database is nil when no database URL is configured
	Database db.Database

	Logger *zap.Logger
	Ctx    context.Context
}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
)

func (app *AppContext) requireDatabase() error {
	if app.Database == nil {
		return errNoDatabase
	}
	return nil
}
