package segmentcmd

import (
	"github.com/spf13/cobra"

	"github.com/gbhl/piwg-citations/internal/segments"
)

// NewTOCCmd creates the toc command for building segments from an OCRed
// table of contents and BHL page metadata
func NewTOCCmd() *cobra.Command {
	var opts tocOptions
	var format string

	cmd := &cobra.Command{
		Use:   "toc",
		Short: "Build article segments from an OCRed table of contents",
		Long: `Build article metadata for one BHL item from its OCRed table of contents
and the item's page level metadata.

Title, author and starting page come from the table of contents. Item id,
volume, issue, year and starting page id come from BHL page metadata, so
the page metadata must be complete and correct. End pages are not inferred.

The table of contents is expected to look like:

  SURNAME, Given.
  Title of first article 12
  Title of second article 27`,
		Example: `  # Build segments for item 123456 from a saved TOC page
  citations toc --item 123456 --toc TOC_OCR.txt

  # Read the TOC from stdin, write parquet, and look for existing parts
  curl -s https://www.biodiversitylibrary.org/pagetext/10373385 | \
    citations toc --item 123456 --toc - --format parquet --output papilio.parquet --check-existing`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateBHLID("item", opts.ItemID); err != nil {
				return err
			}
			f, err := segments.ParseFormat(format)
			if err != nil {
				return err
			}
			opts.Format = f
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeTOC(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.ItemID, "item", "", "BHL item id (required)")
	cmd.Flags().StringVar(&opts.TOCPath, "toc", "TOC_OCR.txt", "Path to the OCRed table of contents, or - for stdin")
	cmd.Flags().StringVar(&opts.Output, "output", "BHL_art_md.tsv", "Path to the output file")
	cmd.Flags().StringVar(&format, "format", "tsv", "Output format (tsv, parquet, or yaml)")
	cmd.Flags().BoolVar(&opts.CheckExisting, "check-existing", false, "Match articles to existing BHL parts (slow)")

	_ = cmd.MarkFlagRequired("item")
	return cmd
}

// NewCrossrefCmd creates the crossref command for building segments from
// Crossref journal metadata
func NewCrossrefCmd() *cobra.Command {
	var opts crossrefOptions
	var format string

	cmd := &cobra.Command{
		Use:   "crossref",
		Short: "Build article segments from Crossref metadata for a journal",
		Long: `Pull all article metadata from Crossref for a journal ISSN and range of
publication years and format it for the BHL segment import.

BHL item ids are found by matching each article's volume against the volume
enumeration of the BHL items for the same ISSN. Only enumerations in the
"v.N=..." or "v.N-M=..." form are understood; other items contribute no ids.
Verify that the BHL title record carries the ISSN before running.

The output file is named <prefix>_<from>_<until>.<format>.`,
		Example: `  # American Journal of Botany, 1922-1923
  citations crossref --issn 0002-9122 --from 1922 --until 1923 --prefix ajb

  # Also look for articles already defined in BHL (slow)
  citations crossref --issn 0002-9122 --from 1922 --until 1923 --prefix ajb --check-existing`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := validateISSN(opts.ISSN); err != nil {
				return err
			}
			if err := validateYear("from", opts.FromYear); err != nil {
				return err
			}
			if err := validateYear("until", opts.UntilYear); err != nil {
				return err
			}
			if err := validatePrefix(opts.Prefix); err != nil {
				return err
			}
			f, err := segments.ParseFormat(format)
			if err != nil {
				return err
			}
			opts.Format = f
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeCrossref(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.ISSN, "issn", "", "Journal ISSN in xxxx-xxxx format (required)")
	cmd.Flags().StringVar(&opts.FromYear, "from", "", "First publication year, YYYY (required)")
	cmd.Flags().StringVar(&opts.UntilYear, "until", "", "Last publication year, YYYY (required)")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "Short prefix for the output file name (required)")
	cmd.Flags().StringVar(&format, "format", "tsv", "Output format (tsv, parquet, or yaml)")
	cmd.Flags().BoolVar(&opts.CheckExisting, "check-existing", false, "Match articles to existing BHL parts (slow)")

	for _, name := range []string{"issn", "from", "until", "prefix"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

// NewBioStorCmd creates the biostor command for listing BioStor ids of a
// title's parts
func NewBioStorCmd() *cobra.Command {
	var titleID string
	var output string

	cmd := &cobra.Command{
		Use:   "biostor",
		Short: "List BHL part ids with their BioStor ids for a title",
		Long: `Write every BHL part id of a title with its BioStor id as a two column
TSV file. Upload it to a tab of the segment spreadsheet and use VLOOKUP to
add BioStor ids to the segment rows, e.g.

  =VLOOKUP(A381,BioStor!A:B,2,false)`,
		Example: `  citations biostor --title 7414 --output BioStor.tsv`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return validateBHLID("title", titleID)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeBioStor(cmd.Context(), titleID, output, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&titleID, "title", "", "BHL title id (required)")
	cmd.Flags().StringVar(&output, "output", "BioStor.tsv", "Path to the output TSV file")

	_ = cmd.MarkFlagRequired("title")
	return cmd
}
