// internal/commands/analyze.go
package promptforge

import (
	"fmt"
	"strings"

	"github.com/k0kubun/pp"
	"github.com/spf13/cobra"

	"github.com/nerrospl/promptforge/internal/imaging"
)

// analyzeCmd implements the 'analyze' command, which prints the technical
// measurements and heuristic attributes of an image.
var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Analyze an image's pixel statistics and attributes",
	Long:  `The 'analyze' command decodes an image and reports channel means, luminance, color temperature, brightness, and a probable-person flag.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := imaging.AnalyzeFile(args[0])
		if err != nil {
			return err
		}

		if DebugEnabled() {
			pp.Println(report)
			return nil
		}

		fmt.Printf("%s (%s, %.1f KB)\n", report.Filename, report.Format, report.SizeKB)
		fmt.Printf("  %dx%d px, %.1f MP, aspect %.2f\n", report.Width, report.Height, report.Megapixels, report.AspectRatio)
		fmt.Printf("  channel means: R %.1f / G %.1f / B %.1f, luminance %.1f\n", report.RMean, report.GMean, report.BMean, report.Luminance)
		fmt.Printf("  color temperature: %s, brightness: %s\n", report.ColorTemp, report.Brightness)
		fmt.Printf("  probable person: %t\n", report.HasPerson)
		if len(report.Detected) > 0 {
			fmt.Printf("  detected: %s\n", strings.Join(report.Detected, ", "))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
