package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		clearEnv(t, "AI_PLUGIN", "AI_MAX_TURNS", "OPENAI_MODEL", "OLLAMA_MODEL", "OLLAMA_BASE_URL",
			"CONTENT_PROJECT_ROOT", "CONTENT_DIR_NAMES", "CONTENT_GUIDELINES_FILE", "HISTORY_DRIVER", "LOG_LEVEL")

		cfg, err := Load()
		assert.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "openai", cfg.AI.Plugin)
		assert.Equal(t, 10, cfg.AI.MaxTurns)
		assert.Equal(t, "gpt-4o", cfg.AI.OpenAI.Model)
		assert.Equal(t, "qwen3:4b", cfg.AI.Ollama.Model)
		assert.Equal(t, "http://localhost:11434", cfg.AI.Ollama.BaseURL)
		assert.Empty(t, cfg.Content.ProjectRoot)
		assert.Equal(t, []string{"markdown-files", "markdown-flies"}, cfg.Content.DirNames)
		assert.Equal(t, "Editorial Guidelines.md", cfg.Content.GuidelinesFile)
		assert.Equal(t, "none", cfg.History.Driver)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("EnvironmentVariables", func(t *testing.T) {
		t.Setenv("AI_PLUGIN", "ollama")
		t.Setenv("OPENAI_API_KEY", "test-key")
		t.Setenv("CONTENT_PROJECT_ROOT", "/srv/newsletter")
		t.Setenv("HISTORY_DRIVER", "sqlite")

		cfg, err := Load()
		assert.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "ollama", cfg.AI.Plugin)
		assert.Equal(t, "test-key", cfg.AI.OpenAI.APIKey)
		assert.Equal(t, "/srv/newsletter", cfg.Content.ProjectRoot)
		assert.Equal(t, "sqlite", cfg.History.Driver)
	})

	t.Run("ConfigFile", func(t *testing.T) {
		clearEnv(t, "AI_PLUGIN", "OPENAI_MODEL", "CONTENT_BRIEFING_FILE", "CONTENT_NEWSLETTERS_DIR")

		path := filepath.Join(t.TempDir(), "config.yaml")
		data := "ai:\n  plugin: gemini\n  openai:\n    model: gpt-4o-mini\ncontent:\n  briefing_file: Brief.md\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		cfg, err := LoadFrom(path)
		assert.NoError(t, err)
		require.NotNil(t, cfg)
		assert.Equal(t, "gemini", cfg.AI.Plugin)
		assert.Equal(t, "gpt-4o-mini", cfg.AI.OpenAI.Model)
		assert.Equal(t, "Brief.md", cfg.Content.BriefingFile)
		assert.Equal(t, "past_newsletter", cfg.Content.NewslettersDir)
	})
}

// clearEnv unsets keys for the duration of the test.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
