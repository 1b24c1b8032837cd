// internal/commands/models_unload.go
package promptforge

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nerrospl/promptforge/internal/ollama"
)

// modelsUnloadCmd implements 'models unload', which evicts a model from the
// daemon's memory without touching its on-disk weights.
var modelsUnloadCmd = &cobra.Command{
	Use:   "unload <model>",
	Short: "Evict a model from daemon memory",
	Long:  `The 'unload' subcommand sends an empty generate request with keep_alive set to 0, asking the daemon for immediate eviction.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		manager := ollama.New(*GetConfig())
		outcome := manager.UnloadModel(args[0])
		if outcome.Success {
			color.Green("%s", outcome.Message)
		} else {
			color.Red("%s", outcome.Message)
		}
	},
}

func init() {
	modelsCmd.AddCommand(modelsUnloadCmd)
}
