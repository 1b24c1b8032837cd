// internal/commands/status.go
package promptforge

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nerrospl/promptforge/internal/ollama"
)

// statusCmd implements the 'status' command, a liveness probe against the
// configured daemon.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the Ollama daemon is reachable",
	Long:  `The 'status' command probes the daemon's listing endpoint with a short timeout and reports the result.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := GetConfig()
		manager := ollama.New(*cfg)
		if manager.CheckRunning() {
			color.Green("Ollama daemon is reachable at %s", cfg.URL())
		} else {
			color.Red("Ollama daemon is not reachable at %s", cfg.URL())
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
