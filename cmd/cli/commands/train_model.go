package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/task-allocator/pkg/core/services"
)

// TrainModelCmd creates the trainModel command
func TrainModelCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trainModel <output.yaml>",
		Short: "Train the learned scorer and save it",
		Long:  "Train the learned scorer on the configured seed data, write it to a file and store it in the database when one is configured",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app.Logger.Debug("trainModel command", zap.String("output", args[0]))

			result, err := services.TrainModel(app.Ctx, app.Database, app.Cfg, app.Logger, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\n✓ Model trained successfully!\n\n")
			fmt.Printf("Artifact ID: %s\n", result.Artifact.ID)
			fmt.Printf("Samples:     %d\n", result.Artifact.Samples)
			fmt.Printf("Final Loss:  %.6f\n", result.Artifact.Loss)
			fmt.Printf("Written To:  %s\n", result.Path)
			if result.Stored {
				fmt.Printf("Database:    %s✅ stored%s\n", colorGreen, colorReset)
			} else {
				fmt.Printf("Database:    %snot configured%s\n", colorYellow, colorReset)
			}
			fmt.Println()

			return nil
		},
	}

	return cmd
}
