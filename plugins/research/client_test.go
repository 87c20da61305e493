package research

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/firebase/genkit/go/genkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/va6996/newsletter-agent/tools"
)

func TestNewClient_RegistersOnlyWithKey(t *testing.T) {
	gk := genkit.Init(context.Background())

	registry := tools.NewRegistry()
	NewClient("", time.Second, gk, registry)
	assert.Empty(t, registry.Names())

	registry = tools.NewRegistry()
	NewClient("key", time.Second, gk, registry)
	assert.Equal(t, []string{"web_search"}, registry.Names())
}

func TestClient_Search(t *testing.T) {
	var got SearchRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(SearchResponse{
			Query: got.Query,
			Results: []SearchResult{
				{Title: "Go 1.26 released", URL: "https://go.dev/blog", Content: " Release notes. "},
			},
		})
	}))
	defer ts.Close()

	client := NewClient("test-key", time.Second, nil, nil)
	client.BaseURL = ts.URL

	tool := &SearchTool{client: client}
	out, err := tool.Execute(context.Background(), &SearchRequest{Query: "go release", MaxResults: 50})
	require.NoError(t, err)
	assert.Equal(t, "- [Go 1.26 released](https://go.dev/blog): Release notes.", out)

	assert.Equal(t, "news", got.Topic)
	assert.Equal(t, 5, got.MaxResults)
}

func TestClient_SearchErrors(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := NewClient("bad", time.Second, nil, nil)
	client.BaseURL = ts.URL

	_, err := client.Search(context.Background(), &SearchRequest{Query: "x"})
	assert.Error(t, err)

	_, err = client.Search(context.Background(), &SearchRequest{})
	assert.EqualError(t, err, "query is required")
}

func TestDigest(t *testing.T) {
	assert.Equal(t, "No results found.", Digest(nil))
	assert.Equal(t, "No results found.", Digest(&SearchResponse{}))
	assert.Equal(t, "Short answer", Digest(&SearchResponse{Answer: "Short answer"}))
}
