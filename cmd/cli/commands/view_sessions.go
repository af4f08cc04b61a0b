package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/task-allocator/pkg/core/services"
)

// ViewSessionsCmd creates the viewSessions command
func ViewSessionsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewSessions <count>",
		Short: "List the latest allocation sessions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("count must be a number: %w", err)
			}
			if err := app.requireDatabase(); err != nil {
				return err
			}

			app.Logger.Debug("viewSessions command", zap.Int("count", count))

			sessions, err := services.ViewSessions(app.Ctx, app.Database, count)
			if err != nil {
				return err
			}

			if len(sessions) == 0 {
				fmt.Println("No sessions found.")
				return nil
			}

			fmt.Printf("\n%s%-36s  %-20s  %-10s  %-9s  %s%s\n", colorBold, "Session ID", "Created", "Date", "Scorer", "Allocated", colorReset)
			fmt.Println(strings.Repeat("-", 36+20+10+9+12+8))
			for _, s := range sessions {
				allocated := fmt.Sprintf("%d/%d", s.AllocatedCount, s.TaskCount)
				if s.UnallocatedCount > 0 {
					allocated = fmt.Sprintf("%s%s%s", colorYellow, allocated, colorReset)
				}
				fmt.Printf("%-36s  %-20s  %-10s  %-9s  %s\n", s.ID, s.CreatedAt, s.PlanningDate, s.ScorerKind, allocated)
			}
			fmt.Println()

			return nil
		},
	}
}

// ViewAllocationsCmd creates the viewAllocations command
func ViewAllocationsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "viewAllocations <session_id>",
		Short: "Show the allocations saved for a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.requireDatabase(); err != nil {
				return err
			}

			app.Logger.Debug("viewAllocations command", zap.String("session_id", args[0]))

			allocations, err := services.ViewAllocations(app.Ctx, app.Database, args[0])
			if err != nil {
				return err
			}

			if len(allocations) == 0 {
				fmt.Println("No allocations found for this session.")
				return nil
			}

			fmt.Printf("\n%s%-24s  %-20s  %-8s  %s%s\n", colorBold, "Task", "Employee", "Hours", "Score", colorReset)
			fmt.Println(strings.Repeat("-", 24+20+8+5+6))
			for _, a := range allocations {
				fmt.Printf("%-24s  %-20s  %-8s  %s\n",
					a.TaskName,
					a.EmployeeName,
					fmt.Sprintf("%02d-%02d", a.StartHour, a.EndHour),
					colorScore(a.MatchScore))
			}
			fmt.Println()

			return nil
		},
	}
}
