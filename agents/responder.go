package agents

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/newsletter-agent/log"
	"github.com/va6996/newsletter-agent/tools"
)

// DefaultMaxTurns bounds tool-calling round trips per request.
const DefaultMaxTurns = 10

// ChatRequest is one model call: the system prompt, earlier messages and the
// new user input.
type ChatRequest struct {
	System  string
	History []*ai.Message
	Prompt  string
}

// Responder produces the model's reply to a request. Tool calls happen inside.
type Responder interface {
	Respond(ctx context.Context, req ChatRequest) (string, error)
}

// GenkitResponder answers with genkit's native tool calling.
type GenkitResponder struct {
	genkit   *genkit.Genkit
	model    ai.Model
	registry *tools.Registry
	maxTurns int
}

// NewGenkitResponder creates a responder using every tool in registry.
func NewGenkitResponder(gk *genkit.Genkit, model ai.Model, registry *tools.Registry, maxTurns int) *GenkitResponder {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &GenkitResponder{
		genkit:   gk,
		model:    model,
		registry: registry,
		maxTurns: maxTurns,
	}
}

// Respond implements Responder.
func (r *GenkitResponder) Respond(ctx context.Context, req ChatRequest) (string, error) {
	opts := []ai.GenerateOption{
		ai.WithModel(r.model),
		ai.WithSystem(req.System),
		ai.WithMaxTurns(r.maxTurns),
	}
	if len(req.History) > 0 {
		opts = append(opts, ai.WithMessages(req.History...))
	}
	opts = append(opts, ai.WithPrompt(req.Prompt))
	if r.registry != nil {
		if refs := r.registry.ToolRefs(); len(refs) > 0 {
			opts = append(opts, ai.WithTools(refs...))
		}
	}

	log.Debugf(ctx, "Generating reply (history: %d messages)", len(req.History))
	response, err := genkit.Generate(ctx, r.genkit, opts...)
	if err != nil {
		return "", fmt.Errorf("generate failed: %w", err)
	}
	log.Debugf(ctx, "Finish reason: %v", response.FinishReason)

	return response.Text(), nil
}
