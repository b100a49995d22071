// Package reconcile joins article stubs from a table of contents or from
// Crossref with BHL item and page metadata.
package reconcile

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gbhl/piwg-citations/internal/crossref"
	"github.com/gbhl/piwg-citations/internal/index"
	"github.com/gbhl/piwg-citations/internal/toc"
)

// PartMatcher finds an existing BHL part for an article. It returns "" when
// there is no match or the lookup fails.
type PartMatcher interface {
	MatchPart(ctx context.Context, title, volume, startPage string) string
}

// Reconciler builds Articles from stubs using read-only indices.
type Reconciler struct {
	volumes index.Volumes
	pages   index.Pages
	matcher PartMatcher
}

// New returns a Reconciler. matcher may be nil, in which case no existing
// parts are looked up.
func New(volumes index.Volumes, pages index.Pages, matcher PartMatcher) *Reconciler {
	return &Reconciler{
		volumes: volumes,
		pages:   pages,
		matcher: matcher,
	}
}

// FromTOC resolves table-of-contents stubs against the page index. Stubs
// whose start page is not indexed are still emitted with their TOC fields.
// End pages are never inferred.
func (r *Reconciler) FromTOC(ctx context.Context, stubs []toc.Stub) []Article {
	articles := make([]Article, 0, len(stubs))
	for _, stub := range stubs {
		a := Article{
			Title:     strings.ReplaceAll(stub.Title, "\n", " "),
			Authors:   stub.Author,
			StartPage: stub.StartPage,
		}

		if page, ok := r.pages.Lookup(stub.StartPage); ok {
			a.ItemID = page.ItemID.String()
			a.Volume = page.Volume
			a.Issue = page.Issue
			a.Date = page.Year
			a.StartPageID = page.PageID.String()
		} else {
			slog.Debug("Start page not in page metadata", "start_page", stub.StartPage, "title", a.Title)
		}

		a.PartID = r.matchPart(ctx, a)
		articles = append(articles, a)
	}
	return articles
}

// FromCrossref resolves Crossref journal articles against the volume index.
// Works of any other type are skipped.
func (r *Reconciler) FromCrossref(ctx context.Context, works []crossref.Work) []Article {
	articles := make([]Article, 0, len(works))
	for _, w := range works {
		if w.Type != crossref.TypeJournalArticle {
			continue
		}

		a := Article{
			Title:   w.FirstTitle(),
			Volume:  w.Volume,
			Issue:   w.Issue,
			Date:    w.PrintDate(),
			DOI:     w.DOI,
			Authors: w.Authors(),
		}
		a.StartPage, a.EndPage = w.PageRange()

		if itemID, ok := r.volumes.Lookup(w.Volume); ok {
			a.ItemID = itemID.String()
		} else {
			slog.Debug("Volume not held by any item", "volume", w.Volume, "doi", w.DOI)
		}

		a.PartID = r.matchPart(ctx, a)
		articles = append(articles, a)
	}
	return articles
}

func (r *Reconciler) matchPart(ctx context.Context, a Article) string {
	if r.matcher == nil {
		return ""
	}
	return r.matcher.MatchPart(ctx, a.Title, a.Volume, a.StartPage)
}
