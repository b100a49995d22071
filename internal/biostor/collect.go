// Package biostor lists the BioStor identifiers of every part of a BHL
// title, for use as a lookup tab in the segment spreadsheet.
package biostor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gbhl/piwg-citations/internal/bhl"
)

// IdentifierName is the BHL identifier name for BioStor references.
const IdentifierName = "BioStor"

// Header is the column header of the BioStor lookup table.
var Header = []string{"BHL part id", "BioStor id"}

// MetadataClient is the subset of the BHL client used to walk a title.
type MetadataClient interface {
	GetTitleMetadata(ctx context.Context, q bhl.TitleQuery) (*bhl.Title, error)
	GetItemMetadata(ctx context.Context, q bhl.ItemQuery) (*bhl.Item, error)
	GetPartMetadata(ctx context.Context, partID string) (*bhl.Part, error)
}

// PartIdentifier pairs a BHL part with its BioStor id ("" when none).
type PartIdentifier struct {
	PartID    string
	BioStorID string
}

// Collect walks title → items → parts and returns one entry per part in
// provider order. Any metadata failure aborts the walk.
func Collect(ctx context.Context, client MetadataClient, titleID string) ([]PartIdentifier, error) {
	title, err := client.GetTitleMetadata(ctx, bhl.TitleQuery{ID: titleID, Items: true})
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve items: %w", err)
	}
	if title == nil {
		return nil, fmt.Errorf("title %s not found", titleID)
	}

	var ids []PartIdentifier
	for i, summary := range title.Items {
		slog.Info("Processing item", "item_id", summary.ItemID, "progress", fmt.Sprintf("%d/%d", i+1, len(title.Items)))

		item, err := client.GetItemMetadata(ctx, bhl.ItemQuery{ID: summary.ItemID.String(), Parts: true})
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve parts: %w", err)
		}

		for _, p := range item.Parts {
			part, err := client.GetPartMetadata(ctx, p.PartID.String())
			if err != nil {
				return nil, fmt.Errorf("failed to retrieve part %s: %w", p.PartID, err)
			}
			ids = append(ids, PartIdentifier{
				PartID:    part.PartID.String(),
				BioStorID: part.Identifier(IdentifierName),
			})
		}
	}

	return ids, nil
}

// Rows converts identifiers to table rows matching Header.
func Rows(ids []PartIdentifier) [][]string {
	rows := make([][]string, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []string{id.PartID, id.BioStorID})
	}
	return rows
}
