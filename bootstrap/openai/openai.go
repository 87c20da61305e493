// Package openai registers OpenAI chat models with genkit through the
// OpenAI-compatible plugin.
package openai

import (
	"context"
	"os"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/core/api"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai"
	"github.com/openai/openai-go/option"
)

const provider = "openai"

// DefaultBaseURL is used when BaseURL is empty.
const DefaultBaseURL = "https://api.openai.com/v1/"

// SupportedModels are defined when the plugin initializes.
var SupportedModels = map[string]string{
	"gpt-4o":       "OpenAI GPT-4o",
	"gpt-4o-mini":  "OpenAI GPT-4o mini",
	"gpt-4.1":      "OpenAI GPT-4.1",
	"gpt-4.1-mini": "OpenAI GPT-4.1 mini",
}

// OpenAI is a genkit plugin for OpenAI and API-compatible servers.
type OpenAI struct {
	// APIKey falls back to the OPENAI_API_KEY environment variable.
	APIKey string
	// BaseURL defaults to DefaultBaseURL.
	BaseURL string
	// Models are defined in addition to SupportedModels.
	Models []string

	openAICompatible *compat_oai.OpenAICompatible
}

// Name implements genkit.Plugin.
func (o *OpenAI) Name() string {
	return provider
}

// Init implements genkit.Plugin.
func (o *OpenAI) Init(ctx context.Context) []api.Action {
	apiKey := o.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		panic("openai plugin initialization failed: apiKey is required (set OPENAI_API_KEY or pass APIKey)")
	}

	baseURL := o.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if o.openAICompatible == nil {
		o.openAICompatible = &compat_oai.OpenAICompatible{}
	}
	o.openAICompatible.Opts = []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithBaseURL(baseURL),
	}
	o.openAICompatible.Provider = provider

	actions := o.openAICompatible.Init(ctx)
	for model, label := range SupportedModels {
		actions = append(actions, o.DefineModel(model, ai.ModelOptions{
			Label:    label,
			Supports: &compat_oai.Multimodal,
			Versions: []string{model},
		}).(api.Action))
	}
	for _, model := range o.Models {
		if _, ok := SupportedModels[model]; ok || model == "" {
			continue
		}
		actions = append(actions, o.DefineModel(model, ai.ModelOptions{
			Label:    "OpenAI " + model,
			Supports: &compat_oai.Multimodal,
			Versions: []string{model},
		}).(api.Action))
	}
	return actions
}

// Model returns a model by name.
func (o *OpenAI) Model(g *genkit.Genkit, name string) ai.Model {
	return o.openAICompatible.Model(g, api.NewName(provider, name))
}

// DefineModel defines a model with the given ID and options.
func (o *OpenAI) DefineModel(id string, opts ai.ModelOptions) ai.Model {
	return o.openAICompatible.DefineModel(provider, id, opts)
}

// ListActions returns a list of actions provided by this plugin.
func (o *OpenAI) ListActions(ctx context.Context) []api.ActionDesc {
	return o.openAICompatible.ListActions(ctx)
}

// ResolveAction resolves an action by type and name.
func (o *OpenAI) ResolveAction(atype api.ActionType, name string) api.Action {
	return o.openAICompatible.ResolveAction(atype, name)
}
