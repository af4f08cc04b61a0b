package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/task-allocator/pkg/core/model"
	"github.com/jakechorley/task-allocator/pkg/core/services"
)

// AllocateTasksCmd creates the allocateTasks command
func AllocateTasksCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocateTasks <roster.yaml>",
		Short: "Allocate the roster's tasks to employees",
		Long:  "Score every employee for every task, then assign tasks in priority order to the best candidate with a free block of hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			app.Logger.Debug("allocateTasks command",
				zap.String("roster", args[0]),
				zap.Bool("dry_run", dryRun))

			r, err := loadRoster(app, args[0])
			if err != nil {
				return err
			}

			result, err := services.AllocateTasks(app.Ctx, app.Database, app.Cfg, app.Logger, r, services.AllocateTasksOptions{
				DryRun: dryRun,
			})
			if err != nil {
				return fmt.Errorf("allocation failed: %w", err)
			}

			fmt.Printf("\n🎯 Task Allocation Results\n\n")
			fmt.Printf("Session ID:    %s\n", result.Session.ID)
			fmt.Printf("Planning Date: %s\n", result.Session.PlanningDate)
			fmt.Printf("Scorer:        %s\n", result.ScorerKind)
			switch {
			case dryRun:
				fmt.Printf("Mode:          🧪 DRY RUN (not saved)\n")
			case result.Persisted:
				fmt.Printf("Status:        ✅ SAVED\n")
			default:
				fmt.Printf("Status:        ⚠️  NOT SAVED (no database)\n")
			}
			fmt.Println()

			printAllocationTable(result.Allocations)

			if len(result.Unallocated) > 0 {
				fmt.Printf("%s⚠️  Unallocated Tasks (%d):%s\n", colorYellow, len(result.Unallocated), colorReset)
				for _, task := range result.Unallocated {
					fmt.Printf("  • %s (%s) - %dh, %s\n", task.Name, task.ID, task.Duration, task.Priority)
				}
				fmt.Println()
			}

			fmt.Printf("Allocated %d of %d tasks.\n", len(result.Allocations), result.Session.TaskCount)

			return nil
		},
	}

	cmd.Flags().Bool("dry-run", false, "Run without saving to database")

	return cmd
}

func printAllocationTable(allocations []model.Allocation) {
	if len(allocations) == 0 {
		fmt.Println("No tasks were allocated.")
		fmt.Println()
		return
	}

	taskColWidth := len("Task")
	employeeColWidth := len("Employee")
	for _, a := range allocations {
		taskColWidth = max(taskColWidth, len(a.Task.Name))
		employeeColWidth = max(employeeColWidth, len(a.Employee.Name))
	}
	taskColWidth += 2
	employeeColWidth += 2

	fmt.Printf("%s%-*s  %-*s  %-9s  %-8s  %s%s\n",
		colorBold,
		taskColWidth, "Task",
		employeeColWidth, "Employee",
		"Priority",
		"Hours",
		"Score",
		colorReset)
	fmt.Println(strings.Repeat("-", taskColWidth+employeeColWidth+9+8+5+8))

	for _, a := range allocations {
		fmt.Printf("%-*s  %s%-*s%s  %-9s  %-8s  %s\n",
			taskColWidth, a.Task.Name,
			colorGreen, employeeColWidth, a.Employee.Name, colorReset,
			a.Task.Priority,
			fmt.Sprintf("%02d-%02d", a.StartHour, a.EndHour()),
			colorScore(a.MatchScore))
	}
	fmt.Println()
}

func colorScore(score int) string {
	switch {
	case score >= 75:
		return fmt.Sprintf("%s%d%s", colorGreen, score, colorReset)
	case score < 50:
		return fmt.Sprintf("%s%d%s", colorRed, score, colorReset)
	default:
		return fmt.Sprintf("%d", score)
	}
}
