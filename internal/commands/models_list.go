// internal/commands/models_list.go
package promptforge

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/nerrospl/promptforge/internal/ollama"
)

var (
	modelNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	modelMetaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// modelsListCmd implements 'models list', which prints installed models with
// their size and modification time.
var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List models installed on the daemon",
	Long:  `The 'list' subcommand lists installed models. An empty listing can mean either no models or an unreachable daemon.`,
	Run: func(cmd *cobra.Command, args []string) {
		manager := ollama.New(*GetConfig())
		descriptors := manager.ListModels()
		if len(descriptors) == 0 {
			fmt.Println("No models found (the daemon may be unreachable).")
			return
		}
		for _, d := range descriptors {
			fmt.Printf("  %s %s\n",
				modelNameStyle.Render(fmt.Sprintf("- %s", d.Name)),
				modelMetaStyle.Render(fmt.Sprintf("(%.2f GB, modified %s)", d.SizeGB, d.ModifiedAt)))
		}
	},
}

func init() {
	modelsCmd.AddCommand(modelsListCmd)
}
