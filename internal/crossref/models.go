// Package crossref searches the Crossref REST API for journal articles.
package crossref

import (
	"fmt"
	"strconv"
	"strings"
)

// TypeJournalArticle is the Crossref work type for journal articles.
const TypeJournalArticle = "journal-article"

// WorkList is one page of a works search.
type WorkList struct {
	TotalResults int    `json:"total-results"`
	NextCursor   string `json:"next-cursor"`
	Items        []Work `json:"items"`
}

// Work is a Crossref work restricted to the selected fields.
type Work struct {
	Title          []string  `json:"title"`
	DOI            string    `json:"DOI"`
	Volume         string    `json:"volume"`
	Issue          string    `json:"issue"`
	Page           string    `json:"page"`
	Author         []Author  `json:"author"`
	PublishedPrint *DateInfo `json:"published-print"`
	Type           string    `json:"type"`
}

// Author is a contributor name as recorded by Crossref.
type Author struct {
	Given  string `json:"given"`
	Family string `json:"family"`
}

// DateInfo holds Crossref's date-parts, e.g. [[1930, 3, 1]]. Missing
// components decode as nil.
type DateInfo struct {
	DateParts [][]*int `json:"date-parts"`
}

// FirstTitle returns the work's primary title with line breaks flattened.
func (w Work) FirstTitle() string {
	if len(w.Title) == 0 {
		return ""
	}
	return strings.ReplaceAll(w.Title[0], "\n", " ")
}

// PageRange splits a page field such as "45-52" into its first and last
// page. A single page is both the start and the end.
func (w Work) PageRange() (start, end string) {
	if w.Page == "" {
		return "", ""
	}
	parts := strings.Split(w.Page, "-")
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[len(parts)-1])
}

// PrintDate formats the print publication date as YYYY, YYYY-MM or
// YYYY-MM-DD. It returns "" when no year is recorded.
func (w Work) PrintDate() string {
	if w.PublishedPrint == nil || len(w.PublishedPrint.DateParts) == 0 {
		return ""
	}
	parts := w.PublishedPrint.DateParts[0]
	if len(parts) == 0 || parts[0] == nil {
		return ""
	}

	date := strconv.Itoa(*parts[0])
	for _, p := range parts[1:] {
		if p == nil {
			break
		}
		date += fmt.Sprintf("-%02d", *p)
	}
	return date
}

// Authors formats contributors as "Family, Given" separated by semicolons.
// Contributors without a family name (usually organizations) are skipped.
func (w Work) Authors() string {
	names := make([]string, 0, len(w.Author))
	for _, a := range w.Author {
		family := strings.TrimSpace(a.Family)
		if family == "" {
			continue
		}
		if given := strings.TrimSpace(a.Given); given != "" {
			names = append(names, family+", "+given)
		} else {
			names = append(names, family)
		}
	}
	return strings.Join(names, ";")
}
