package bhl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"
)

const (
	DefaultAPIURL     = "https://www.biodiversitylibrary.org/api3"
	DefaultOpenURLURL = "https://www.biodiversitylibrary.org/openurl"
)

// ErrMissingAPIKey is returned when no BHL API key is configured.
var ErrMissingAPIKey = errors.New("BHL_API_KEY environment variable not set")

// StatusError reports an api3 response whose Status is not "ok".
type StatusError struct {
	Op      string
	ID      string
	Status  string
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("BHL %s(%s) returned status %q: %s", e.Op, e.ID, e.Status, e.Message)
}

// Client represents a BHL api3 and OpenURL client
type Client struct {
	BaseURL    string
	OpenURLURL string
	APIKey     string
	httpClient *http.Client
}

// NewClient creates a new BHL client
func NewClient(baseURL, openURLURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	if openURLURL == "" {
		openURLURL = DefaultOpenURLURL
	}
	return &Client{
		BaseURL:    baseURL,
		OpenURLURL: openURLURL,
		APIKey:     apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewClientFromEnv creates a client from BHL_API_KEY, BHL_API_URL and
// BHL_OPENURL_URL.
func NewClientFromEnv() (*Client, error) {
	apiKey := os.Getenv("BHL_API_KEY")
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return NewClient(os.Getenv("BHL_API_URL"), os.Getenv("BHL_OPENURL_URL"), apiKey), nil
}

// TitleQuery selects a title by BHL title id or by another identifier type
// (e.g. IDType "issn").
type TitleQuery struct {
	ID     string
	IDType string
	Items  bool
}

// ItemQuery selects an item and the sub-records to include.
type ItemQuery struct {
	ID    string
	Pages bool
	Parts bool
}

// GetTitleMetadata fetches a title and, when requested, its items.
// It returns nil without error when the title is unknown.
func (c *Client) GetTitleMetadata(ctx context.Context, q TitleQuery) (*Title, error) {
	params := url.Values{}
	params.Set("op", "GetTitleMetadata")
	params.Set("id", q.ID)
	if q.IDType != "" {
		params.Set("idtype", q.IDType)
	}
	if q.Items {
		params.Set("items", "t")
	}

	var env envelope[Title]
	if err := c.call(ctx, params, &env); err != nil {
		return nil, err
	}
	if env.Status != "ok" {
		return nil, &StatusError{Op: "GetTitleMetadata", ID: q.ID, Status: env.Status, Message: env.ErrorMessage}
	}
	if len(env.Result) == 0 {
		return nil, nil
	}
	return &env.Result[0], nil
}

// GetItemMetadata fetches an item and, when requested, its pages and parts.
func (c *Client) GetItemMetadata(ctx context.Context, q ItemQuery) (*Item, error) {
	params := url.Values{}
	params.Set("op", "GetItemMetadata")
	params.Set("id", q.ID)
	if q.Pages {
		params.Set("pages", "t")
	}
	if q.Parts {
		params.Set("parts", "t")
	}

	var env envelope[Item]
	if err := c.call(ctx, params, &env); err != nil {
		return nil, err
	}
	if env.Status != "ok" {
		return nil, &StatusError{Op: "GetItemMetadata", ID: q.ID, Status: env.Status, Message: env.ErrorMessage}
	}
	if len(env.Result) == 0 {
		return nil, fmt.Errorf("BHL GetItemMetadata(%s) returned no result", q.ID)
	}
	return &env.Result[0], nil
}

// GetPartMetadata fetches a part with its identifiers.
func (c *Client) GetPartMetadata(ctx context.Context, partID string) (*Part, error) {
	params := url.Values{}
	params.Set("op", "GetPartMetadata")
	params.Set("id", partID)

	var env envelope[Part]
	if err := c.call(ctx, params, &env); err != nil {
		return nil, err
	}
	if env.Status != "ok" {
		return nil, &StatusError{Op: "GetPartMetadata", ID: partID, Status: env.Status, Message: env.ErrorMessage}
	}
	if len(env.Result) == 0 {
		return nil, fmt.Errorf("BHL GetPartMetadata(%s) returned no result", partID)
	}
	return &env.Result[0], nil
}

// LookupOpenURL asks the BHL OpenURL resolver for citations matching title.
func (c *Client) LookupOpenURL(ctx context.Context, title string) (*OpenURLResponse, error) {
	params := url.Values{}
	params.Set("title", title)
	params.Set("format", "json")

	var resp OpenURLResponse
	if err := c.get(ctx, c.OpenURLURL+"?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) call(ctx context.Context, params url.Values, out any) error {
	params.Set("format", "json")
	slog.Debug("Calling BHL API", "op", params.Get("op"), "id", params.Get("id"))
	params.Set("apikey", c.APIKey)
	return c.get(ctx, c.BaseURL+"?"+params.Encode(), out)
}

func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create BHL request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch from BHL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("BHL returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode BHL response: %w", err)
	}
	return nil
}
