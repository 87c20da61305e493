package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultFile is the config file read by Load when present.
const DefaultFile = "config.yaml"

// Config aggregates all application configuration
type Config struct {
	AI       AIConfig       `yaml:"ai"`
	Content  ContentConfig  `yaml:"content"`
	Research ResearchConfig `yaml:"research"`
	History  HistoryConfig  `yaml:"history"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

type AIConfig struct {
	Plugin   string       `yaml:"plugin" env:"AI_PLUGIN" env-default:"openai"`
	MaxTurns int          `yaml:"max_turns" env:"AI_MAX_TURNS" env-default:"10"`
	OpenAI   OpenAIConfig `yaml:"openai"`
	Gemini   GeminiConfig `yaml:"gemini"`
	Ollama   OllamaConfig `yaml:"ollama"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key" env:"OPENAI_API_KEY"`
	Model   string `yaml:"model" env:"OPENAI_MODEL" env-default:"gpt-4o"`
	BaseURL string `yaml:"base_url" env:"OPENAI_BASE_URL" env-default:"https://api.openai.com/v1/"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model  string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-1.5-flash"`
}

type OllamaConfig struct {
	Model   string `yaml:"model" env:"OLLAMA_MODEL" env-default:"qwen3:4b"`
	BaseURL string `yaml:"base_url" env:"OLLAMA_BASE_URL" env-default:"http://localhost:11434"`
}

// ContentConfig locates the markdown documents. DirNames are tried in order.
// An empty ProjectRoot searches the working directory, then the directory of
// the executable.
type ContentConfig struct {
	ProjectRoot    string   `yaml:"project_root" env:"CONTENT_PROJECT_ROOT"`
	DirNames       []string `yaml:"dir_names" env:"CONTENT_DIR_NAMES" env-default:"markdown-files,markdown-flies"`
	GuidelinesFile string   `yaml:"guidelines_file" env:"CONTENT_GUIDELINES_FILE" env-default:"Editorial Guidelines.md"`
	BriefingFile   string   `yaml:"briefing_file" env:"CONTENT_BRIEFING_FILE" env-default:"Briefing.md"`
	NewslettersDir string   `yaml:"newsletters_dir" env:"CONTENT_NEWSLETTERS_DIR" env-default:"past_newsletter"`
}

// ResearchConfig enables the web search tool when an API key is set.
type ResearchConfig struct {
	TavilyAPIKey   string `yaml:"tavily_api_key" env:"TAVILY_API_KEY"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env:"TAVILY_TIMEOUT" env-default:"30"`
}

// HistoryConfig selects where conversation transcripts are stored.
// Driver is one of "none", "sqlite" or "postgres".
type HistoryConfig struct {
	Driver string `yaml:"driver" env:"HISTORY_DRIVER" env-default:"none"`
	DSN    string `yaml:"dsn" env:"HISTORY_DSN" env-default:"newsletter_history.db"`
}

type ServerConfig struct {
	Port string `yaml:"port" env:"PORT" env-default:"8000"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from config.yaml and environment variables
// Priority: Env Vars > Config File > Defaults
func Load() (*Config, error) {
	return LoadFrom(DefaultFile)
}

// LoadFrom is Load with an explicit config file path. A missing or unreadable
// file falls back to environment variables only.
func LoadFrom(path string) (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	}

	return &cfg, nil
}
