// Package segments writes reconciled articles in the layout expected by the
// BHL segment import spreadsheet.
package segments

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/parquet-go/parquet-go"
	"gopkg.in/yaml.v3"

	"github.com/gbhl/piwg-citations/internal/reconcile"
)

// Columns is the fixed header of the segment spreadsheet.
var Columns = []string{
	"Title",
	"Translated Title",
	"Item ID",
	"Volume",
	"Issue",
	"Series",
	"Date",
	"Language",
	"Authors",
	"Start Page",
	"End Page",
	"Start Page ID",
	"End Page ID",
	"Additional Page IDs",
	"Article DOI",
}

// PartIDColumn is appended to Columns when existing parts were looked up.
const PartIDColumn = "Part ID"

// Format is an output file format.
type Format string

const (
	FormatTSV     Format = "tsv"
	FormatParquet Format = "parquet"
	FormatYAML    Format = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatTSV, FormatParquet, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s (supported: tsv, parquet, yaml)", s)
	}
}

// Ext returns the file extension for the format.
func (f Format) Ext() string {
	return "." + string(f)
}

// Options controls how articles are written.
type Options struct {
	Format     Format
	WithPartID bool
}

// Header returns the spreadsheet header for opts.
func Header(withPartID bool) []string {
	header := append([]string(nil), Columns...)
	if withPartID {
		header = append(header, PartIDColumn)
	}
	return header
}

// Write writes articles to w in the requested format.
func Write(w io.Writer, articles []reconcile.Article, opts Options) error {
	switch opts.Format {
	case FormatTSV, "":
		rows := make([][]string, 0, len(articles))
		for _, a := range articles {
			rows = append(rows, a.Fields(opts.WithPartID))
		}
		return WriteTSV(w, Header(opts.WithPartID), rows)
	case FormatParquet:
		return writeParquet(w, articles)
	case FormatYAML:
		return writeYAML(w, articles)
	default:
		return fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

// WriteFile creates path and writes articles to it.
func WriteFile(path string, articles []reconcile.Article, opts Options) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := Write(file, articles, opts); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	slog.Debug("Wrote segments", "path", path, "articles", len(articles), "format", opts.Format)
	return file.Close()
}

// WriteTSV writes a header and rows as tab-separated values with CRLF line
// endings, the dialect spreadsheet imports expect.
func WriteTSV(w io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	writer.Comma = '\t'
	writer.UseCRLF = true

	if err := writer.Write(header); err != nil {
		return err
	}
	for i, row := range rows {
		if len(row) != len(header) {
			return fmt.Errorf("row %d has %d columns, expected %d", i+1, len(row), len(header))
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeParquet(w io.Writer, articles []reconcile.Article) error {
	writer := parquet.NewGenericWriter[reconcile.Article](w)
	if _, err := writer.Write(articles); err != nil {
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, articles []reconcile.Article) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(articles); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return encoder.Close()
}
