package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/gbhl/piwg-citations/internal/segmentcmd"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "citations",
		Short: "Build BHL article segment spreadsheets from TOC text or Crossref",
		Long: `Citations builds article-level metadata for journal volumes in the
Biodiversity Heritage Library, formatted for the BHL segment import.

Article metadata comes from an OCRed table of contents combined with BHL page
level metadata, or from Crossref combined with BHL item enumeration. The
BHL API key is read from BHL_API_KEY (a .env file in the working directory
is loaded if present).`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			logLevel := slog.LevelInfo
			if verbose {
				logLevel = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
			slog.SetDefault(logger)
		},
	}

	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	cmd.AddCommand(segmentcmd.NewTOCCmd())
	cmd.AddCommand(segmentcmd.NewCrossrefCmd())
	cmd.AddCommand(segmentcmd.NewBioStorCmd())

	return cmd
}
