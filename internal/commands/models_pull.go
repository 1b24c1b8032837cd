// internal/commands/models_pull.go
package promptforge

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nerrospl/promptforge/internal/ollama"
	"github.com/nerrospl/promptforge/internal/tui"
)

var pullPlain bool

// runPullView is a function alias to tui.RunPull for starting the
// interactive progress view.
var runPullView = tui.RunPull

// modelsPullCmd implements 'models pull', which downloads a model with
// streamed progress.
var modelsPullCmd = &cobra.Command{
	Use:   "pull <model>",
	Short: "Download a model to the daemon's local storage",
	Long:  `The 'pull' subcommand runs the external pull tool and streams its progress output until the download completes.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		manager := ollama.New(*GetConfig())
		modelName := args[0]

		var outcome ollama.Outcome
		if pullPlain {
			outcome = manager.PullModel(modelName, func(percent int, message string) {
				if percent > 0 {
					fmt.Printf("%3d%%  %s\n", percent, message)
				} else {
					fmt.Printf("      %s\n", message)
				}
			})
		} else {
			var err error
			outcome, err = runPullView(manager, modelName)
			if err != nil {
				color.Red("Pull view error: %v", err)
				return
			}
		}

		if outcome.Success {
			color.Green("%s", outcome.Message)
		} else {
			color.Red("%s", outcome.Message)
		}
	},
}

func init() {
	modelsPullCmd.Flags().BoolVar(&pullPlain, "plain", false, "print progress lines instead of the interactive view")
	modelsCmd.AddCommand(modelsPullCmd)
}
