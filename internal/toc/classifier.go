// Package toc turns OCRed table-of-contents text into article stubs.
//
// The classifier expects the layout used by early journal TOCs:
//
//	SURNAME, Given.
//	Title of first article 12
//	Title of a second article that wraps
//	onto the next line 27
//
// Author lines end with a period, article lines end with their starting
// page number, and anything else continues the current title.
package toc

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Stub is an article as read from the table of contents, before it is
// reconciled with page metadata.
type Stub struct {
	Title     string
	Author    string
	StartPage string
}

var trailingPageRe = regexp.MustCompile(`(\d+)\s*$`)

// Classifier is a line-oriented state machine. The zero value is not
// usable; call NewClassifier.
type Classifier struct {
	title  strings.Builder
	author string
	stubs  []Stub

	upper cases.Caser
	lower cases.Caser
}

// NewClassifier returns a classifier with empty state.
func NewClassifier() *Classifier {
	return &Classifier{
		upper: cases.Upper(language.Und),
		lower: cases.Lower(language.Und),
	}
}

// Feed classifies one line of text. The line may carry its newline.
func (c *Classifier) Feed(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}

	if strings.HasSuffix(strings.TrimRight(line, " \t\r\n"), ".") {
		c.author = c.formatAuthor(strings.TrimSpace(line))
		return
	}

	if loc := trailingPageRe.FindStringSubmatchIndex(line); loc != nil {
		c.title.WriteString(line[:loc[2]])
		c.stubs = append(c.stubs, Stub{
			Title:     c.title.String(),
			Author:    c.author,
			StartPage: line[loc[2]:loc[3]],
		})
		c.title.Reset()
		return
	}

	c.title.WriteString(strings.TrimSpace(line))
	c.title.WriteByte(' ')
}

// Stubs returns the articles emitted so far, in document order.
func (c *Classifier) Stubs() []Stub {
	return c.stubs
}

// Pending returns title text that has not yet been closed by a page number.
func (c *Classifier) Pending() string {
	return c.title.String()
}

// formatAuthor normalizes an author line such as "SMITH, J." to "Smith, J.".
// Running headers ("Page.") clear the current author instead.
func (c *Classifier) formatAuthor(line string) string {
	if strings.HasPrefix(c.lower.String(line), "page") {
		return ""
	}

	surname, rest := line, ""
	if i := strings.IndexByte(line, ','); i >= 0 {
		surname, rest = line[:i], line[i:]
	}

	author := rest
	if surname != "" {
		first, size := utf8.DecodeRuneInString(surname)
		author = c.upper.String(string(first)) + c.lower.String(surname[size:]) + rest
	}

	// A period after a one-letter token belongs to an initial.
	if !endsWithInitial(author) {
		author = strings.TrimRight(author, ".")
	}
	return author
}

func endsWithInitial(s string) bool {
	if !strings.HasSuffix(s, ".") {
		return false
	}
	r := []rune(s)
	if len(r) < 3 {
		return len(r) == 2
	}
	return r[len(r)-3] == ' '
}

// Classify reads r line by line and returns the article stubs it contains.
// Title text left without a page number at the end of input is dropped.
func Classify(r io.Reader) ([]Stub, error) {
	c := NewClassifier()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		c.Feed(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading table of contents: %w", err)
	}

	if pending := strings.TrimSpace(c.Pending()); pending != "" {
		slog.Debug("Dropping title without page number", "title", pending)
	}
	return c.Stubs(), nil
}
