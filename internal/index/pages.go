package index

import (
	"github.com/gbhl/piwg-citations/internal/bhl"
)

// PagePrefix is the numbering stream used for page lookups. Other streams
// (plates, running numbers) are ignored.
const PagePrefix = "Page"

// PageEntry is the page-level metadata recorded for a printed page number.
type PageEntry struct {
	ItemID bhl.ID
	Volume string
	Issue  string
	Year   string
	PageID bhl.ID
}

// Pages maps printed page numbers to page metadata.
type Pages struct {
	entries map[string]PageEntry
}

// BuildPages indexes every "Page"-prefixed number of every page. Later
// pages overwrite earlier ones sharing a number.
func BuildPages(pages []bhl.Page) Pages {
	p := Pages{entries: make(map[string]PageEntry)}
	for _, page := range pages {
		for _, num := range page.PageNumbers {
			if num.Prefix != PagePrefix || num.Number == "" {
				continue
			}
			p.entries[num.Number] = PageEntry{
				ItemID: page.ItemID,
				Volume: page.Volume,
				Issue:  page.Issue,
				Year:   page.Year,
				PageID: page.PageID,
			}
		}
	}
	return p
}

// Lookup returns the metadata for a printed page number.
func (p Pages) Lookup(number string) (PageEntry, bool) {
	e, ok := p.entries[number]
	return e, ok
}

// Len returns the number of indexed page numbers.
func (p Pages) Len() int {
	return len(p.entries)
}
