// internal/commands/models_rm.go
package promptforge

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nerrospl/promptforge/internal/ollama"
)

// modelsRmCmd implements 'models rm', which deletes a model's on-disk weights.
var modelsRmCmd = &cobra.Command{
	Use:   "rm <model>",
	Short: "Delete a model from local storage",
	Long:  `The 'rm' subcommand invokes the external remove tool under a bounded timeout and reports the outcome.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		manager := ollama.New(*GetConfig())
		outcome := manager.DeleteModel(args[0])
		if outcome.Success {
			color.Green("%s", outcome.Message)
		} else {
			color.Red("%s", outcome.Message)
		}
	},
}

func init() {
	modelsCmd.AddCommand(modelsRmCmd)
}
