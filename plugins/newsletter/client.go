// Package newsletter exposes the markdown content loaders as agent tools.
package newsletter

import (
	"context"
	"errors"
	"strings"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/newsletter-agent/content"
	"github.com/va6996/newsletter-agent/log"
	"github.com/va6996/newsletter-agent/tools"
)

// Tool names as seen by the model.
const (
	GuidelinesTool      = "get_editorial_guidelines"
	BriefingTool        = "get_briefing"
	PastNewslettersTool = "get_past_newsletters"
	IndexTool           = "list_past_newsletters"
)

// NoInput is the argument type of tools that take no parameters.
type NoInput struct{}

// Client reads content for the tools. Paths is shared and never mutated.
type Client struct {
	Paths *content.Paths
}

// NewClient creates the newsletter plugin and registers its tools
func NewClient(gk *genkit.Genkit, registry *tools.Registry, paths *content.Paths) *Client {
	c := &Client{Paths: paths}
	if gk == nil || registry == nil {
		return c
	}

	c.register(gk, registry, GuidelinesTool,
		"Returns the full text of the editorial guidelines the newsletter must follow.",
		c.Guidelines)
	c.register(gk, registry, BriefingTool,
		"Returns the briefing for the upcoming newsletter issue.",
		c.Briefing)
	c.register(gk, registry, PastNewslettersTool,
		"Returns all past newsletter issues, oldest first, each under a '## <file name>' heading.",
		c.PastNewsletters)
	c.register(gk, registry, IndexTool,
		"Lists past newsletter files with their title and date, without the full text.",
		c.Index)

	return c
}

func (c *Client) register(gk *genkit.Genkit, registry *tools.Registry, name, description string, fn func(context.Context) (string, error)) {
	registry.Register(genkit.DefineTool[*NoInput, string](
		gk,
		name,
		description,
		func(ctx *ai.ToolContext, _ *NoInput) (string, error) {
			log.WithField(ctx, "tool", name).Info("Tool call")
			return fn(ctx)
		},
	), func(ctx context.Context, _ map[string]interface{}) (interface{}, error) {
		return fn(ctx)
	})
}

// Guidelines returns the editorial guidelines text.
func (c *Client) Guidelines(ctx context.Context) (string, error) {
	text, err := c.Paths.LoadGuidelines()
	if err != nil {
		log.Warnf(ctx, "Editorial guidelines unavailable: %v", err)
		return "", err
	}
	return text, nil
}

// Briefing returns the briefing text.
func (c *Client) Briefing(ctx context.Context) (string, error) {
	text, err := c.Paths.LoadBriefing()
	if err != nil {
		log.Warnf(ctx, "Briefing unavailable: %v", err)
		return "", err
	}
	return text, nil
}

// PastNewsletters returns every past issue rendered as labeled blocks.
func (c *Client) PastNewsletters(ctx context.Context) (string, error) {
	blocks, err := c.Paths.LoadNewsletters()
	if err != nil {
		log.Warnf(ctx, "Past newsletters unavailable: %v", err)
		return "", err
	}
	if len(blocks) == 0 {
		return "No past newsletters found.", nil
	}
	for _, b := range blocks {
		if b.Err != nil {
			log.Warnf(ctx, "Skipping unreadable newsletter %s: %v", b.Name, b.Err)
		}
	}
	return content.RenderCollection(blocks), nil
}

// Index lists the past issues one per line.
func (c *Client) Index(ctx context.Context) (string, error) {
	entries, err := content.IndexCollection(c.Paths.Newsletters)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			log.Warnf(ctx, "Past newsletters directory missing: %v", err)
		}
		return "", err
	}
	if len(entries) == 0 {
		return "No past newsletters found.", nil
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.String())
	}
	return strings.Join(lines, "\n"), nil
}
