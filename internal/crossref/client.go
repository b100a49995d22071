package crossref

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultAPIURL = "https://api.crossref.org"

	// maxRows is the largest page size Crossref accepts.
	maxRows = 1000
)

// DefaultSelect lists the work fields needed to build segment rows.
var DefaultSelect = []string{"title", "DOI", "volume", "issue", "page", "author", "published-print", "type"}

// Query describes a works search. It is rendered into request parameters
// field by field; no part of it is evaluated.
type Query struct {
	ISSN         string
	FromPubDate  string
	UntilPubDate string
	Select       []string
	Sort         string
	Order        string
	Rows         int
}

// NewJournalQuery returns a query for every work published in the journal
// between two years, oldest first.
func NewJournalQuery(issn, fromYear, untilYear string) Query {
	return Query{
		ISSN:         issn,
		FromPubDate:  fromYear,
		UntilPubDate: untilYear,
		Select:       DefaultSelect,
		Sort:         "issued",
		Order:        "asc",
		Rows:         maxRows,
	}
}

// Values renders the query as URL parameters for the /works endpoint.
func (q Query) Values() url.Values {
	var filters []string
	if q.ISSN != "" {
		filters = append(filters, "issn:"+q.ISSN)
	}
	if q.FromPubDate != "" {
		filters = append(filters, "from-pub-date:"+q.FromPubDate)
	}
	if q.UntilPubDate != "" {
		filters = append(filters, "until-pub-date:"+q.UntilPubDate)
	}

	v := url.Values{}
	if len(filters) > 0 {
		v.Set("filter", strings.Join(filters, ","))
	}
	if len(q.Select) > 0 {
		v.Set("select", strings.Join(q.Select, ","))
	}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	rows := q.Rows
	if rows <= 0 || rows > maxRows {
		rows = maxRows
	}
	v.Set("rows", strconv.Itoa(rows))
	return v
}

// Client represents a Crossref REST API client
type Client struct {
	BaseURL    string
	Mailto     string
	httpClient *http.Client
}

// NewClient creates a new Crossref client. mailto, when set, routes requests
// to Crossref's polite pool.
func NewClient(baseURL, mailto string) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Mailto:  mailto,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// NewClientFromEnv creates a client from CROSSREF_API_URL and CROSSREF_MAILTO.
func NewClientFromEnv() *Client {
	return NewClient(os.Getenv("CROSSREF_API_URL"), os.Getenv("CROSSREF_MAILTO"))
}

// SearchWorks returns every work matching q, following Crossref's deep
// paging cursor until the result set is exhausted.
func (c *Client) SearchWorks(ctx context.Context, q Query) ([]Work, error) {
	params := q.Values()
	if c.Mailto != "" {
		params.Set("mailto", c.Mailto)
	}
	rows, _ := strconv.Atoi(params.Get("rows"))

	var works []Work
	cursor := "*"
	for page := 1; ; page++ {
		params.Set("cursor", cursor)

		list, err := c.fetchWorks(ctx, params)
		if err != nil {
			return nil, err
		}
		works = append(works, list.Items...)
		slog.Debug("Fetched Crossref works page", "page", page, "items", len(list.Items), "total_results", list.TotalResults)

		if len(list.Items) < rows || list.NextCursor == "" || len(works) >= list.TotalResults {
			break
		}
		cursor = list.NextCursor
	}

	return works, nil
}

func (c *Client) fetchWorks(ctx context.Context, params url.Values) (*WorkList, error) {
	endpoint := c.BaseURL + "/works?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Crossref request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch from Crossref: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("Crossref API returned status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		Message WorkList `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode Crossref response: %w", err)
	}

	return &response.Message, nil
}
