// Package match binds newly derived articles to parts already defined in BHL.
package match

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gbhl/piwg-citations/internal/bhl"
)

// GenreArticle is the OpenURL genre of article citations.
const GenreArticle = "Article"

// Lookuper resolves an article title to candidate citations.
type Lookuper interface {
	LookupOpenURL(ctx context.Context, title string) (*bhl.OpenURLResponse, error)
}

// Matcher looks up existing BHL parts through the OpenURL resolver. It is
// best-effort: failures yield an empty part id.
type Matcher struct {
	lookup Lookuper
}

// New returns a Matcher backed by lookup.
func New(lookup Lookuper) *Matcher {
	return &Matcher{lookup: lookup}
}

// MatchPart returns the id of the existing part whose volume and start page
// equal the article's, or "" when there is none. When several parts match,
// the first is returned and the ambiguity is logged.
func (m *Matcher) MatchPart(ctx context.Context, title, volume, startPage string) string {
	if strings.TrimSpace(title) == "" {
		return ""
	}

	resp, err := m.lookup.LookupOpenURL(ctx, title)
	if err != nil {
		slog.Warn("Existing article lookup failed", "title", title, "error", err)
		return ""
	}
	if resp == nil {
		return ""
	}

	var matches []string
	for _, c := range resp.Citations {
		if c.Genre != GenreArticle {
			continue
		}
		if c.Volume != volume || c.SPage != startPage {
			continue
		}
		matches = append(matches, partIDFromURL(c.PartURL))
	}

	switch len(matches) {
	case 0:
		return ""
	case 1:
		return matches[0]
	default:
		slog.Warn("Multiple existing parts match article",
			"title", title,
			"volume", volume,
			"start_page", startPage,
			"part_ids", matches)
		return matches[0]
	}
}

func partIDFromURL(u string) string {
	return u[strings.LastIndex(u, "/")+1:]
}
