// Package tavily provides the Researcher's web search tool over the Tavily
// search REST API.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/time/rate"

	"github.com/supraja777/multiagent/pkg/domain"
)

// ToolName is the name the model uses to call the search tool.
const ToolName = "web_search"

const (
	DefaultBaseURL    = "https://api.tavily.com"
	DefaultMaxResults = 2
)

// Config holds client settings.
type Config struct {
	APIKey     string
	BaseURL    string
	MaxResults int
	Timeout    time.Duration
	// RateLimit caps requests per second. Zero disables pacing.
	RateLimit float64
}

// Result is one ranked search hit.
type Result struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type searchRequest struct {
	Query       string `json:"query"`
	MaxResults  int    `json:"max_results"`
	SearchDepth string `json:"search_depth,omitempty"`
}

type searchResponse struct {
	Results []Result `json:"results"`
}

type searchArgs struct {
	Query string `mapstructure:"query"`
}

// Client implements ports.ToolRunner.
type Client struct {
	config  Config
	http    *http.Client
	limiter *rate.Limiter
}

// New creates a search client.
func New(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.MaxResults <= 0 {
		config.MaxResults = DefaultMaxResults
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	c := &Client{
		config: config,
		http:   &http.Client{Timeout: config.Timeout},
	}
	if config.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}
	return c
}

// Definition implements ports.ToolRunner.
func (c *Client) Definition() domain.Tool {
	return domain.Tool{
		Name:        ToolName,
		Description: fmt.Sprintf("Search the web. Returns up to %d ranked results with title, url and content.", c.config.MaxResults),
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The search query.",
				},
			},
			"required": []string{"query"},
		},
	}
}

// Execute implements ports.ToolRunner. Provider failures are reported in
// the result so the model can react to them.
func (c *Client) Execute(ctx context.Context, call domain.ToolCall) (domain.ToolResult, error) {
	var args searchArgs
	if err := mapstructure.Decode(call.Args, &args); err != nil {
		return domain.ToolResult{ID: call.ID, IsError: true, Error: fmt.Sprintf("invalid arguments: %v", err)}, nil
	}
	if strings.TrimSpace(args.Query) == "" {
		return domain.ToolResult{ID: call.ID, IsError: true, Error: "query is required"}, nil
	}

	results, err := c.Search(ctx, args.Query)
	if err != nil {
		return domain.ToolResult{ID: call.ID, IsError: true, Error: err.Error()}, nil
	}
	return domain.ToolResult{ID: call.ID, Result: results}, nil
}

// Search runs a query and returns at most MaxResults hits.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	if c.config.APIKey == "" {
		return nil, errors.New("tavily api key is not configured")
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	body, err := json.Marshal(searchRequest{Query: query, MaxResults: c.config.MaxResults, SearchDepth: "basic"})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.config.BaseURL, "/")+"/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.config.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("search failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decoding search response: %w", err)
	}
	if len(out.Results) > c.config.MaxResults {
		out.Results = out.Results[:c.config.MaxResults]
	}
	return out.Results, nil
}
