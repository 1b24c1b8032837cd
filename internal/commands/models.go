// internal/commands/models.go
package promptforge

import (
	"github.com/spf13/cobra"
)

// modelsCmd represents the 'models' command group for model lifecycle operations.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Group commands for managing daemon models",
	Long:  `The 'models' command groups subcommands that list, pull, unload, and delete models on the local daemon.`,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
