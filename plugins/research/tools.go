package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/newsletter-agent/log"
	"github.com/va6996/newsletter-agent/tools"
)

// SearchTool exposes Client.Search to the model as a markdown digest.
type SearchTool struct {
	client *Client
}

// NewSearchTool creates the tool and registers it
func NewSearchTool(client *Client, gk *genkit.Genkit, registry *tools.Registry) *SearchTool {
	t := &SearchTool{client: client}

	registry.Register(genkit.DefineTool[*SearchRequest, string](
		gk,
		t.Name(),
		t.Description(),
		func(ctx *ai.ToolContext, input *SearchRequest) (string, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		query, ok := args["query"].(string)
		if !ok {
			return nil, fmt.Errorf("query is required and must be a string")
		}
		req := &SearchRequest{Query: query}
		if topic, ok := args["topic"].(string); ok {
			req.Topic = topic
		}
		if timeRange, ok := args["time_range"].(string); ok {
			req.TimeRange = timeRange
		}
		if maxResults, ok := args["max_results"].(float64); ok {
			req.MaxResults = int(maxResults)
		}
		return t.Execute(ctx, req)
	})

	return t
}

func (t *SearchTool) Name() string {
	return "web_search"
}

func (t *SearchTool) Description() string {
	return "Searches the web for recent news and facts to reference in the newsletter. Returns titles, URLs and short excerpts."
}

func (t *SearchTool) Execute(ctx context.Context, input *SearchRequest) (string, error) {
	resp, err := t.client.Search(ctx, input)
	if err != nil {
		log.Errorf(ctx, "[Tavily] web_search failed: %v", err)
		return "", err
	}
	return Digest(resp), nil
}

// Digest renders search results as a markdown list.
func Digest(resp *SearchResponse) string {
	if resp == nil || (len(resp.Results) == 0 && resp.Answer == "") {
		return "No results found."
	}

	var b strings.Builder
	if resp.Answer != "" {
		b.WriteString(resp.Answer)
		b.WriteString("\n\n")
	}
	for _, r := range resp.Results {
		fmt.Fprintf(&b, "- [%s](%s): %s\n", r.Title, r.URL, strings.TrimSpace(r.Content))
	}
	return strings.TrimRight(b.String(), "\n")
}
