package segmentcmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/gbhl/piwg-citations/internal/reconcile"
)

type runSummary struct {
	Source   string
	Articles []reconcile.Article
	Matched  bool
	Output   string
}

func (s runSummary) rows() [][]string {
	resolved, parts := 0, 0
	for _, a := range s.Articles {
		if a.ItemID != "" {
			resolved++
		}
		if a.PartID != "" {
			parts++
		}
	}

	rows := [][]string{
		{"Source", s.Source},
		{"Articles written", strconv.Itoa(len(s.Articles))},
		{"Resolved to a BHL item", strconv.Itoa(resolved)},
	}
	if s.Matched {
		rows = append(rows, []string{"Matched existing parts", strconv.Itoa(parts)})
	}
	rows = append(rows, []string{"Output", s.Output})
	return rows
}

func printSummary(w io.Writer, s runSummary) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Segment summary", ""})
	for _, row := range s.rows() {
		tw.AppendRow(table.Row{row[0], row[1]})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	fmt.Fprintln(w, tw.Render())
}
