// Package research gives the agent a web search tool backed by Tavily, for
// checking recent news while drafting an issue.
package research

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/newsletter-agent/log"
	"github.com/va6996/newsletter-agent/tools"
)

// DefaultBaseURL is the Tavily API endpoint.
const DefaultBaseURL = "https://api.tavily.com"

// Client is the Tavily API client
type Client struct {
	BaseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a Tavily client and registers the search tool. Without an
// API key no tool is registered.
func NewClient(apiKey string, timeout time.Duration, gk *genkit.Genkit, registry *tools.Registry) *Client {
	client := &Client{
		BaseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}

	if apiKey == "" {
		log.Debugf(context.Background(), "Tavily API key not set, web search disabled")
		return client
	}
	if gk != nil && registry != nil {
		NewSearchTool(client, gk, registry)
	}
	return client
}

// SearchRequest is the Tavily search payload
type SearchRequest struct {
	Query      string `json:"query" description:"What to search for"`
	Topic      string `json:"topic,omitempty" description:"general or news (default: news)"`
	TimeRange  string `json:"time_range,omitempty" description:"day, week, month or year"`
	MaxResults int    `json:"max_results,omitempty" description:"Number of results, 1-10 (default: 5)"`
}

// SearchResult is a single search hit
type SearchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// SearchResponse is the Tavily search response
type SearchResponse struct {
	Query   string         `json:"query"`
	Answer  string         `json:"answer,omitempty"`
	Results []SearchResult `json:"results"`
}

// Search performs a Tavily search
func (c *Client) Search(ctx context.Context, req *SearchRequest) (*SearchResponse, error) {
	if req == nil || req.Query == "" {
		return nil, fmt.Errorf("query is required")
	}

	payload := *req
	if payload.Topic == "" {
		payload.Topic = "news"
	}
	if payload.MaxResults <= 0 || payload.MaxResults > 10 {
		payload.MaxResults = 5
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/search", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	log.Debugf(ctx, "[Tavily] search query=%q topic=%s max_results=%d", payload.Query, payload.Topic, payload.MaxResults)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API returned status %s", resp.Status)
	}

	var searchResp SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &searchResp, nil
}
