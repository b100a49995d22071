package segmentcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/gbhl/piwg-citations/internal/bhl"
	"github.com/gbhl/piwg-citations/internal/crossref"
	"github.com/gbhl/piwg-citations/internal/index"
	"github.com/gbhl/piwg-citations/internal/match"
	"github.com/gbhl/piwg-citations/internal/reconcile"
	"github.com/gbhl/piwg-citations/internal/segments"
)

type crossrefOptions struct {
	ISSN          string
	FromYear      string
	UntilYear     string
	Prefix        string
	Format        segments.Format
	CheckExisting bool
}

func (o crossrefOptions) outputPath() string {
	return fmt.Sprintf("%s_%s_%s%s", o.Prefix, o.FromYear, o.UntilYear, o.Format.Ext())
}

func executeCrossref(ctx context.Context, opts crossrefOptions, stdout io.Writer) error {
	client, err := bhl.NewClientFromEnv()
	if err != nil {
		return err
	}

	slog.Info("Reading BHL items", "issn", opts.ISSN)
	title, err := client.GetTitleMetadata(ctx, bhl.TitleQuery{ID: opts.ISSN, IDType: "issn", Items: true})
	if err != nil {
		return fmt.Errorf("failed to retrieve items: %w", err)
	}

	var items []bhl.Item
	if title != nil {
		items = title.Items
	} else {
		slog.Warn("No BHL title found for ISSN; item ids will be empty", "issn", opts.ISSN)
	}
	volumes := index.BuildVolumes(items)
	slog.Info("Volume index built", "items", len(items), "volumes", volumes.Len())

	slog.Info("Searching Crossref", "issn", opts.ISSN, "from", opts.FromYear, "until", opts.UntilYear)
	works, err := crossref.NewClientFromEnv().SearchWorks(ctx, crossref.NewJournalQuery(opts.ISSN, opts.FromYear, opts.UntilYear))
	if err != nil {
		return fmt.Errorf("failed to search Crossref: %w", err)
	}
	slog.Info("Crossref works retrieved", "works", len(works))

	var matcher reconcile.PartMatcher
	if opts.CheckExisting {
		slog.Info("Checking for existing BHL articles; this is slow")
		matcher = match.New(client)
	}

	articles := reconcile.New(volumes, index.Pages{}, matcher).FromCrossref(ctx, works)

	output := opts.outputPath()
	if err := segments.WriteFile(output, articles, segments.Options{
		Format:     opts.Format,
		WithPartID: true,
	}); err != nil {
		return err
	}

	printSummary(stdout, runSummary{
		Source:   "Crossref ISSN " + opts.ISSN,
		Articles: articles,
		Matched:  opts.CheckExisting,
		Output:   output,
	})
	return nil
}
