package segmentcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gbhl/piwg-citations/internal/bhl"
	"github.com/gbhl/piwg-citations/internal/index"
	"github.com/gbhl/piwg-citations/internal/match"
	"github.com/gbhl/piwg-citations/internal/reconcile"
	"github.com/gbhl/piwg-citations/internal/segments"
	"github.com/gbhl/piwg-citations/internal/toc"
)

type tocOptions struct {
	ItemID        string
	TOCPath       string
	Output        string
	Format        segments.Format
	CheckExisting bool
}

func executeTOC(ctx context.Context, opts tocOptions, stdin io.Reader, stdout io.Writer) error {
	client, err := bhl.NewClientFromEnv()
	if err != nil {
		return err
	}

	slog.Info("Reading BHL page level metadata", "item_id", opts.ItemID)
	item, err := client.GetItemMetadata(ctx, bhl.ItemQuery{ID: opts.ItemID, Pages: true})
	if err != nil {
		return fmt.Errorf("unable to read BHL page level metadata for item: %w", err)
	}
	pages := index.BuildPages(item.Pages)
	slog.Info("Page index built", "pages", len(item.Pages), "page_numbers", pages.Len())

	stubs, err := readTOC(opts.TOCPath, stdin)
	if err != nil {
		return err
	}
	slog.Info("Table of contents parsed", "articles", len(stubs))

	var matcher reconcile.PartMatcher
	if opts.CheckExisting {
		matcher = match.New(client)
	}

	articles := reconcile.New(index.Volumes{}, pages, matcher).FromTOC(ctx, stubs)

	if err := segments.WriteFile(opts.Output, articles, segments.Options{
		Format:     opts.Format,
		WithPartID: opts.CheckExisting,
	}); err != nil {
		return err
	}

	printSummary(stdout, runSummary{
		Source:   "BHL item " + opts.ItemID,
		Articles: articles,
		Matched:  opts.CheckExisting,
		Output:   opts.Output,
	})
	return nil
}

func readTOC(path string, stdin io.Reader) ([]toc.Stub, error) {
	if path == "-" {
		return toc.Classify(stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table of contents: %w", err)
	}
	defer file.Close()

	return toc.Classify(file)
}
