package segmentcmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gbhl/piwg-citations/internal/bhl"
	"github.com/gbhl/piwg-citations/internal/biostor"
	"github.com/gbhl/piwg-citations/internal/segments"
)

func executeBioStor(ctx context.Context, titleID, output string, stdout io.Writer) error {
	client, err := bhl.NewClientFromEnv()
	if err != nil {
		return err
	}

	ids, err := biostor.Collect(ctx, client, titleID)
	if err != nil {
		return err
	}

	file, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := segments.WriteTSV(file, biostor.Header, biostor.Rows(ids)); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}
	if err := file.Close(); err != nil {
		return err
	}

	withBioStor := 0
	for _, id := range ids {
		if id.BioStorID != "" {
			withBioStor++
		}
	}
	slog.Info("BioStor lookup complete", "parts", len(ids), "with_biostor", withBioStor)

	fmt.Fprintf(stdout, "\nWrote %d parts (%d with BioStor ids) to %s\n", len(ids), withBioStor, output)
	return nil
}
