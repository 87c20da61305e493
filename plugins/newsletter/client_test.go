package newsletter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/firebase/genkit/go/genkit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/va6996/newsletter-agent/content"
	"github.com/va6996/newsletter-agent/tools"
)

func setupContent(t *testing.T, files map[string]string) *content.Paths {
	t.Helper()
	root := t.TempDir()
	base := filepath.Join(root, content.PrimaryDirName)
	for name, body := range files {
		path := filepath.Join(base, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	}
	return content.DefaultLayout(root).Resolve()
}

func TestNewClient_RegistersTools(t *testing.T) {
	registry := tools.NewRegistry()
	NewClient(genkit.Init(context.Background()), registry, setupContent(t, nil))

	assert.Equal(t, []string{BriefingTool, GuidelinesTool, PastNewslettersTool, IndexTool}, registry.Names())
}

func TestClient_Tools(t *testing.T) {
	ctx := context.Background()
	paths := setupContent(t, map[string]string{
		content.GuidelinesFile:               "Write in plain English.",
		content.BriefingFile:                 "Issue 12 covers the migration.",
		"past_newsletter/2024-02-01.md":      "# February\nSecond",
		"past_newsletter/2024-01-01.md":      "---\ntitle: January\n---\nFirst",
		"past_newsletter/scratch/ignored.md": "nested files are not part of the collection",
	})
	registry := tools.NewRegistry()
	NewClient(genkit.Init(ctx), registry, paths)

	tests := []struct {
		tool string
		want string
	}{
		{GuidelinesTool, "Write in plain English."},
		{BriefingTool, "Issue 12 covers the migration."},
		{PastNewslettersTool, "## 2024-01-01.md\n---\ntitle: January\n---\nFirst\n\n## 2024-02-01.md\n# February\nSecond"},
		{IndexTool, "- 2024-01-01.md: January\n- 2024-02-01.md: February"},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			res, err := registry.ExecuteTool(ctx, tt.tool, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestClient_MissingContent(t *testing.T) {
	ctx := context.Background()
	c := NewClient(nil, nil, setupContent(t, nil))

	_, err := c.Guidelines(ctx)
	assert.ErrorIs(t, err, content.ErrNotFound)

	_, err = c.Briefing(ctx)
	assert.ErrorIs(t, err, content.ErrNotFound)

	_, err = c.PastNewsletters(ctx)
	assert.ErrorIs(t, err, content.ErrNotFound)

	_, err = c.Index(ctx)
	assert.ErrorIs(t, err, content.ErrNotFound)
}

func TestClient_EmptyCollection(t *testing.T) {
	ctx := context.Background()
	c := NewClient(nil, nil, setupContent(t, map[string]string{
		"past_newsletter/notes.txt": "not markdown",
	}))

	res, err := c.PastNewsletters(ctx)
	require.NoError(t, err)
	assert.Equal(t, "No past newsletters found.", res)

	res, err = c.Index(ctx)
	require.NoError(t, err)
	assert.Equal(t, "No past newsletters found.", res)
}
