package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/task-allocator/cmd/cli/commands"
	"github.com/jakechorley/task-allocator/internal/config"
	"github.com/jakechorley/task-allocator/pkg/metrics"
	"github.com/jakechorley/task-allocator/pkg/postgres"
	"github.com/jakechorley/task-allocator/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     *commands.AppContext
	pgDB    *postgres.DB
)

func main() {
	app = &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "allocator",
		Short: "Task allocator - assign tasks to employees",
		Long:  `A CLI tool that scores employees against tasks and allocates tasks to free hours in priority order.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			shutdown()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: dev, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs on the console")
	_ = rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.AllocateTasksCmd(app))
	rootCmd.AddCommand(commands.RankCandidatesCmd(app))
	rootCmd.AddCommand(commands.TrainModelCmd(app))
	rootCmd.AddCommand(commands.ViewSessionsCmd(app))
	rootCmd.AddCommand(commands.ViewAllocationsCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config and database
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env, logging.WithVerbose(verbose))
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Starting application", zap.String("environment", env))

	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Logger.Debug("Configuration loaded successfully",
		zap.String("scorer_mode", app.Cfg.Scorer.Mode),
		zap.Bool("database", app.Cfg.DatabaseURL != ""))

	if app.Cfg.DatabaseURL == "" {
		app.Logger.Info("No database configured, results will not be saved")
		return nil
	}

	app.Logger.Info("Connecting to database")
	pgDB, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	applied, err := pgDB.RunMigrations(app.Ctx)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	for _, name := range applied {
		app.Logger.Info("Applied migration", zap.String("file", name))
	}

	app.Database = pgDB
	app.Logger.Debug("Database initialized successfully")

	return nil
}

func shutdown() {
	if app.Logger == nil {
		return
	}

	if app.Cfg != nil && app.Cfg.Metrics.TextfilePath != "" {
		if err := metrics.WriteTextfile(app.Cfg.Metrics.TextfilePath); err != nil {
			app.Logger.Warn("Failed to write metrics", zap.Error(err))
		} else {
			app.Logger.Debug("Metrics written", zap.String("path", app.Cfg.Metrics.TextfilePath))
		}
	}

	if pgDB != nil {
		pgDB.Close()
	}

	_ = app.Logger.Sync()
}
