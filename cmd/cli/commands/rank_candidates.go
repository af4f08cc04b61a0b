package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/task-allocator/pkg/core/services"
)

// RankCandidatesCmd creates the rankCandidates command
func RankCandidatesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rankCandidates <roster.yaml>",
		Short: "Show every employee's score for every task without allocating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			top, _ := cmd.Flags().GetInt("top")

			app.Logger.Debug("rankCandidates command", zap.String("roster", args[0]), zap.Int("top", top))

			r, err := loadRoster(app, args[0])
			if err != nil {
				return err
			}

			result, err := services.RankCandidates(app.Ctx, app.Database, app.Cfg, app.Logger, r)
			if err != nil {
				return err
			}

			fmt.Printf("\n📊 Candidate Rankings (%s scorer)\n\n", result.ScorerKind)

			for _, tm := range result.Tasks {
				fmt.Printf("%s%s%s (%s) - %dh, %s\n", colorBold, tm.Task.Name, colorReset, tm.Task.ID, tm.Task.Duration, tm.Task.Priority)
				candidates := tm.Candidates
				if top > 0 && len(candidates) > top {
					candidates = candidates[:top]
				}
				for i, c := range candidates {
					fmt.Printf("  %2d. %-24s %s\n", i+1, c.Employee.Name, colorScore(c.Score))
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().Int("top", 0, "Only show the best N candidates per task (0 shows all)")

	return cmd
}
