package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"
	"github.com/va6996/newsletter-agent/agents"
	"github.com/va6996/newsletter-agent/bootstrap/openai"
	"github.com/va6996/newsletter-agent/config"
	"github.com/va6996/newsletter-agent/content"
	logcontext "github.com/va6996/newsletter-agent/context"
	"github.com/va6996/newsletter-agent/log"
	"github.com/va6996/newsletter-agent/orm"
	"github.com/va6996/newsletter-agent/plugins/core"
	"github.com/va6996/newsletter-agent/plugins/newsletter"
	"github.com/va6996/newsletter-agent/plugins/research"
	"github.com/va6996/newsletter-agent/tools"
)

// App holds the initialized components of the application
type App struct {
	Genkit    *genkit.Genkit
	Registry  *tools.Registry
	Model     ai.Model
	Paths     *content.Paths
	Responder agents.Responder
	// Store is nil when transcripts are disabled.
	Store *orm.Store
}

// Setup initializes the application components based on the configuration
func Setup(ctx context.Context, cfg *config.Config) (*App, error) {
	// 1. Genkit with the configured model plugin
	gk, model, err := setupModel(ctx, cfg.AI)
	if err != nil {
		return nil, err
	}

	// 2. Content paths, resolved once
	paths := ContentPaths(cfg.Content)
	log.Infof(ctx, "Content root: %s", paths.Root)

	// 3. Tools
	registry := tools.NewRegistry()
	core.NewClient(gk, registry)
	newsletter.NewClient(gk, registry, paths)
	research.NewClient(cfg.Research.TavilyAPIKey, time.Duration(cfg.Research.TimeoutSeconds)*time.Second, gk, registry)
	log.Debugf(ctx, "Registered tools: %v", registry.Names())

	// 4. Transcripts
	store, err := setupStore(cfg.History)
	if err != nil {
		return nil, err
	}

	return &App{
		Genkit:    gk,
		Registry:  registry,
		Model:     model,
		Paths:     paths,
		Responder: agents.NewGenkitResponder(gk, model, registry, cfg.AI.MaxTurns),
		Store:     store,
	}, nil
}

// ContentPaths resolves the content layout from configuration.
func ContentPaths(cfg config.ContentConfig) *content.Paths {
	root := cfg.ProjectRoot
	if root == "" {
		root = content.FindProjectRoot(searchRoots(), cfg.DirNames...)
	}
	return content.Layout{
		ProjectRoot:    root,
		DirNames:       cfg.DirNames,
		GuidelinesFile: cfg.GuidelinesFile,
		BriefingFile:   cfg.BriefingFile,
		NewslettersDir: cfg.NewslettersDir,
	}.Resolve()
}

// searchRoots lists where content is looked for when no project root is
// configured.
func searchRoots() []string {
	roots := []string{"."}
	if exe, err := os.Executable(); err == nil {
		if dir := filepath.Dir(exe); dir != "." {
			roots = append(roots, dir)
		}
	}
	return roots
}

func setupModel(ctx context.Context, cfg config.AIConfig) (*genkit.Genkit, ai.Model, error) {
	switch cfg.Plugin {
	case "ollama":
		log.Infof(ctx, "Using Ollama Plugin (Model: %s)...", cfg.Ollama.Model)
		ollamaPlugin := &ollama.Ollama{
			ServerAddress: cfg.Ollama.BaseURL,
		}
		gk := genkit.Init(ctx, genkit.WithPlugins(ollamaPlugin))
		model := ollamaPlugin.DefineModel(gk, ollama.ModelDefinition{
			Name: cfg.Ollama.Model,
			Type: "chat",
		}, &ai.ModelOptions{
			Supports: &ai.ModelSupports{
				Multiturn:  true,
				SystemRole: true,
				Tools:      true,
				Media:      false,
			},
		})
		return gk, model, nil

	case "gemini":
		log.Infof(ctx, "Using Gemini Plugin (Model: %s)...", cfg.Gemini.Model)
		if cfg.Gemini.APIKey == "" {
			return nil, nil, fmt.Errorf("GEMINI_API_KEY must be set (or choose another AI_PLUGIN)")
		}
		gk := genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{
			APIKey: cfg.Gemini.APIKey,
		}))
		return gk, googlegenai.GoogleAIModel(gk, cfg.Gemini.Model), nil

	case "openai", "":
		log.Infof(ctx, "Using OpenAI Plugin (Model: %s)...", cfg.OpenAI.Model)
		if cfg.OpenAI.APIKey == "" {
			return nil, nil, fmt.Errorf("OPENAI_API_KEY must be set (or choose another AI_PLUGIN)")
		}
		plugin := &openai.OpenAI{
			APIKey:  cfg.OpenAI.APIKey,
			BaseURL: cfg.OpenAI.BaseURL,
			Models:  []string{cfg.OpenAI.Model},
		}
		gk := genkit.Init(ctx, genkit.WithPlugins(plugin))
		return gk, plugin.Model(gk, cfg.OpenAI.Model), nil

	default:
		return nil, nil, fmt.Errorf("unknown AI plugin %q (want openai, gemini or ollama)", cfg.Plugin)
	}
}

func setupStore(cfg config.HistoryConfig) (*orm.Store, error) {
	if cfg.Driver == "" || cfg.Driver == "none" {
		return nil, nil
	}
	db, err := orm.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript store: %w", err)
	}
	return orm.NewStore(db), nil
}

// NewEditor starts a conversation primed with the assembled content. mode is
// recorded with the session when transcripts are enabled.
func (a *App) NewEditor(ctx context.Context, sessionID, mode, primer string) *agents.Editor {
	if sessionID == "" {
		sessionID = logcontext.NewSessionID()
	}
	editor := agents.NewEditor(a.Responder, sessionID, primer)

	if a.Store != nil {
		ctx = logcontext.WithSessionID(ctx, sessionID)
		if err := a.Store.CreateSession(ctx, sessionID, mode); err != nil {
			log.Warnf(ctx, "Transcript disabled for session: %v", err)
			return editor
		}
		editor.SetRecorder(a.Store)
	}
	return editor
}

// Primer assembles the priming context from the content directory.
func (a *App) Primer() string {
	return content.AssembleContext(a.Paths)
}
