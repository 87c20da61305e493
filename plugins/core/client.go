package core

import (
	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/newsletter-agent/tools"
)

// Client manages the general purpose tools that are not tied to content
type Client struct {
	MagicTool *MagicTool
	DateTool  *DateTool
}

// NewClient initializes the core plugin and registers its tools
func NewClient(gk *genkit.Genkit, registry *tools.Registry) *Client {
	return &Client{
		MagicTool: NewMagicTool(gk, registry),
		DateTool:  NewDateTool(gk, registry),
	}
}
