package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jakechorley/task-allocator/internal/config"
	"github.com/jakechorley/task-allocator/pkg/core/allocator"
	"github.com/jakechorley/task-allocator/pkg/core/model"
	"github.com/jakechorley/task-allocator/pkg/core/scoring"
	"github.com/jakechorley/task-allocator/pkg/db"
	"github.com/jakechorley/task-allocator/pkg/roster"
)

// AllocateTasksStore is the persistence needed by AllocateTasks
type AllocateTasksStore interface {
	db.SessionStore
	db.ModelStore
}

// AllocateTasksOptions controls a single allocation run
type AllocateTasksOptions struct {
	// DryRun skips persisting the session
	DryRun bool

	// Reporter receives unallocated tasks; defaults to logging a warning
	Reporter allocator.Reporter
}

// AllocateTasksResult represents the result of an allocation run
type AllocateTasksResult struct {
	Session     db.Session
	Allocations []model.Allocation
	Unallocated []model.Task
	ScorerKind  scoring.Kind
	Persisted   bool
}

// AllocateTasks selects a scorer, runs the allocation engine over the roster,
// checks the result and stores it. store may be nil, in which case nothing is
// persisted.
func AllocateTasks(ctx context.Context, store AllocateTasksStore, cfg *config.Config, logger *zap.Logger, r *roster.Roster, opts AllocateTasksOptions) (*AllocateTasksResult, error) {
	logger.Debug("Allocating tasks",
		zap.Int("employees", len(r.Employees)),
		zap.Int("tasks", len(r.Tasks)),
		zap.Bool("dry_run", opts.DryRun))

	planningDate, err := cfg.PlanningDate()
	if err != nil {
		return nil, err
	}

	var modelStore db.ModelStore
	if store != nil {
		modelStore = store
	}
	scorer, err := selectScorer(ctx, modelStore, cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("Scorer selected", zap.String("kind", string(scorer.Kind())))

	engineOpts := []allocator.Option{
		allocator.WithLogger(logger),
		allocator.WithWorkers(cfg.Matcher.Workers),
	}
	if opts.Reporter != nil {
		engineOpts = append(engineOpts, allocator.WithReporter(opts.Reporter))
	}

	outcome, err := allocator.Run(ctx, scorer, r.Employees, r.Tasks, engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to run allocation: %w", err)
	}

	if errs := allocator.ValidateAllocations(r.Employees, outcome.Allocations); len(errs) > 0 {
		for _, e := range errs {
			logger.Error("Allocation validation failed",
				zap.String("employee_id", e.EmployeeID),
				zap.String("task_id", e.TaskID),
				zap.Int("hour", e.Hour),
				zap.String("description", e.Description))
		}
		return nil, fmt.Errorf("allocation produced %d validation errors", len(errs))
	}

	session := db.Session{
		ID:               uuid.New().String(),
		CreatedAt:        time.Now().UTC().Format(time.RFC3339),
		PlanningDate:     planningDate.Format("2006-01-02"),
		ScorerKind:       string(scorer.Kind()),
		TaskCount:        len(r.Tasks),
		AllocatedCount:   len(outcome.Allocations),
		UnallocatedCount: len(outcome.Unallocated),
	}

	logger.Info("Allocation complete",
		zap.String("session_id", session.ID),
		zap.Int("allocated", session.AllocatedCount),
		zap.Int("unallocated", session.UnallocatedCount))

	result := &AllocateTasksResult{
		Session:     session,
		Allocations: outcome.Allocations,
		Unallocated: outcome.Unallocated,
		ScorerKind:  scorer.Kind(),
	}

	if opts.DryRun || store == nil {
		logger.Debug("Skipping persistence", zap.Bool("dry_run", opts.DryRun), zap.Bool("has_store", store != nil))
		return result, nil
	}

	rows := taskAllocationRows(session.ID, outcome.Allocations)
	if err := store.InsertSession(ctx, &session, rows); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	result.Persisted = true

	logger.Debug("Session saved", zap.String("session_id", session.ID), zap.Int("allocations", len(rows)))

	return result, nil
}

// taskAllocationRows flattens engine allocations into database records
func taskAllocationRows(sessionID string, allocations []model.Allocation) []db.TaskAllocation {
	rows := make([]db.TaskAllocation, len(allocations))
	for i, a := range allocations {
		rows[i] = db.TaskAllocation{
			ID:           uuid.New().String(),
			SessionID:    sessionID,
			TaskID:       a.Task.ID,
			TaskName:     a.Task.Name,
			EmployeeID:   a.Employee.ID,
			EmployeeName: a.Employee.Name,
			StartHour:    a.StartHour,
			EndHour:      a.EndHour(),
			MatchScore:   a.MatchScore,
		}
	}
	return rows
}
