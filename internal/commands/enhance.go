// internal/commands/enhance.go
package promptforge

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/nerrospl/promptforge/internal/enhance"
	"github.com/nerrospl/promptforge/internal/imaging"
)

var (
	enhanceModel      string
	enhanceLanguage   string
	enhanceCreativity float64
	enhanceWords      int
	enhanceDetail     string
	enhanceStyle      string
	enhanceImagePath  string
)

var sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

// enhanceCmd implements the 'enhance' command, which enriches a prompt into
// a bilingual record via the local language model.
var enhanceCmd = &cobra.Command{
	Use:   "enhance <prompt>",
	Short: "Enrich a prompt into a detailed bilingual record",
	Long: `The 'enhance' command expands the prompt into key visual elements, asks the
configured model for an enriched English/Polish prompt pair, and validates the
result. An image can be supplied to ground the enrichment in its attributes.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		enhancer := enhance.New(*cfg)
		if enhanceModel != "" {
			enhancer.SetModel(enhanceModel)
		}

		req := enhance.Request{
			Prompt:      strings.Join(args, " "),
			Language:    enhanceLanguage,
			Creativity:  enhanceCreativity,
			WordCount:   enhanceWords,
			DetailLevel: enhanceDetail,
			Style:       enhanceStyle,
		}

		if enhanceImagePath != "" {
			report, err := imaging.AnalyzeFile(enhanceImagePath)
			if err != nil {
				return fmt.Errorf("could not analyze image: %w", err)
			}
			req.Image = &report
		}

		result, err := enhancer.Enhance(context.Background(), req)
		if err != nil {
			return err
		}

		fmt.Println(sectionStyle.Render("Prompt (EN):"))
		fmt.Println(result.Record.PromptEN)
		fmt.Println()
		fmt.Println(sectionStyle.Render("Prompt (PL):"))
		fmt.Println(result.Record.PromptPL)

		if result.ExpandedPrompt != "" {
			fmt.Println()
			fmt.Println(sectionStyle.Render("Identified elements:"))
			fmt.Println(result.ExpandedPrompt)
		}
		if result.Record.IsFallback() {
			color.Yellow("Model output was not well-formed; showing raw text fallback.")
		}
		if result.ValidationWarning != "" {
			color.Yellow("Validation warning: %s", result.ValidationWarning)
		}
		return nil
	},
}

func init() {
	enhanceCmd.Flags().StringVar(&enhanceModel, "model", "", "override the configured enhancement model")
	enhanceCmd.Flags().StringVar(&enhanceLanguage, "language", "pl", "prompt language (pl or en)")
	enhanceCmd.Flags().Float64Var(&enhanceCreativity, "creativity", 0.7, "sampling temperature between 0.0 and 1.0")
	enhanceCmd.Flags().IntVar(&enhanceWords, "words", 200, "target word count (50-500)")
	enhanceCmd.Flags().StringVar(&enhanceDetail, "detail", "medium", "detail level: low, medium, or high")
	enhanceCmd.Flags().StringVar(&enhanceStyle, "style", "cinematic", "description style: cinematic, artistic, or technical")
	enhanceCmd.Flags().StringVar(&enhanceImagePath, "image", "", "image file whose attributes should ground the enrichment")
	rootCmd.AddCommand(enhanceCmd)
}
