// Package limitless is the thin HTTP client and background poller for the
// Limitless lifelog API. It is I/O plumbing: it fetches transcripts and
// hands them to the store, nothing more.
package limitless

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/lifelog"
)

// Client talks to the Limitless lifelog API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates an API client. baseURL has no trailing slash.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type apiLifelog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Markdown  string    `json:"markdown"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

type listResponse struct {
	Data struct {
		Lifelogs []apiLifelog `json:"lifelogs"`
	} `json:"data"`
	Meta struct {
		Lifelogs struct {
			NextCursor string `json:"nextCursor"`
			Count      int    `json:"count"`
		} `json:"lifelogs"`
	} `json:"meta"`
}

type getResponse struct {
	Data struct {
		Lifelog apiLifelog `json:"lifelog"`
	} `json:"data"`
}

// ListLifelogs fetches one page of lifelogs starting at cursor. An empty
// returned cursor means the listing is exhausted.
func (c *Client) ListLifelogs(ctx context.Context, cursor string, limit int) ([]*lifelog.Lifelog, string, error) {
	q := url.Values{}
	q.Set("includeMarkdown", "true")
	q.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	var resp listResponse
	if err := c.get(ctx, "/lifelogs?"+q.Encode(), &resp); err != nil {
		return nil, "", err
	}

	logs := make([]*lifelog.Lifelog, 0, len(resp.Data.Lifelogs))
	for _, al := range resp.Data.Lifelogs {
		logs = append(logs, toLifelog(al))
	}
	return logs, resp.Meta.Lifelogs.NextCursor, nil
}

// GetByID fetches a single lifelog.
func (c *Client) GetByID(ctx context.Context, id string) (*lifelog.Lifelog, error) {
	var resp getResponse
	if err := c.get(ctx, "/lifelogs/"+url.PathEscape(id)+"?includeMarkdown=true", &resp); err != nil {
		return nil, err
	}
	return toLifelog(resp.Data.Lifelog), nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("lifelog API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("lifelog API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode lifelog API response: %w", err)
	}
	return nil
}

func toLifelog(al apiLifelog) *lifelog.Lifelog {
	return &lifelog.Lifelog{
		ID:        al.ID,
		Title:     al.Title,
		Markdown:  al.Markdown,
		StartTime: al.StartTime,
		EndTime:   al.EndTime,
	}
}
