package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ironsheep/photo-color-mcp/internal/imaging"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "analyze FILE",
		Short: "Analyze a photo and optionally write a corrected copy",
		Example: `  # Print the diagnosis and Lightroom suggestions
  photo-color-mcp analyze holiday.jpg

  # Also write the corrected photo
  photo-color-mcp analyze holiday.jpg -o holiday_corrected.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := imaging.ReadFile(args[0])
			if err != nil {
				return err
			}

			res, err := a.processor().Process(data)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, res.Diagnostic)
			fmt.Fprintln(out)
			fmt.Fprintln(out, res.Recommendations)

			if output == "" {
				return nil
			}
			if err := os.WriteFile(output, res.Image, 0o644); err != nil {
				return fmt.Errorf("failed to write corrected image: %w", err)
			}
			a.logger.Info("corrected photo written",
				zap.String("path", output),
				zap.String("format", res.OutputFormat))
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%s\n%s\n", res.Caption, output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the corrected image to this path")

	return cmd
}
