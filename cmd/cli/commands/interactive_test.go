package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommandLine(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    []string
		wantErr bool
	}{
		{name: "plain", line: "allocateTasks roster.yaml --dry-run", want: []string{"allocateTasks", "roster.yaml", "--dry-run"}},
		{name: "double quotes", line: `allocateTasks "my roster.yaml"`, want: []string{"allocateTasks", "my roster.yaml"}},
		{name: "single quotes", line: `trainModel 'out dir/model.yaml'`, want: []string{"trainModel", "out dir/model.yaml"}},
		{name: "extra spaces", line: "viewSessions    5  ", want: []string{"viewSessions", "5"}},
		{name: "empty", line: "", want: nil},
		{name: "unclosed quote", line: `allocateTasks "roster.yaml`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCommandLine(tt.line)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunInteractive_ResetsFlags(t *testing.T) {
	var seen []bool
	cmd := &cobra.Command{
		Use:  "allocateTasks <roster.yaml>",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			seen = append(seen, dryRun)
			return nil
		},
	}
	cmd.Flags().Bool("dry-run", false, "")

	require.NoError(t, runInteractive(cmd, []string{"roster.yaml", "--dry-run"}))
	require.NoError(t, runInteractive(cmd, []string{"roster.yaml"}))
	assert.Equal(t, []bool{true, false}, seen)

	assert.Error(t, runInteractive(cmd, nil))
}

func TestColorScore(t *testing.T) {
	assert.Equal(t, colorGreen+"93"+colorReset, colorScore(93))
	assert.Equal(t, "60", colorScore(60))
	assert.Equal(t, colorRed+"25"+colorReset, colorScore(25))
}
