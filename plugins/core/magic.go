package core

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/newsletter-agent/log"
	"github.com/va6996/newsletter-agent/tools"
)

// MagicInput is the argument of magic_function.
type MagicInput struct {
	Input int `json:"input" description:"The integer to transform"`
}

// MagicTool adds two to its input. It is the smallest useful check that the
// model is actually calling tools.
type MagicTool struct{}

// NewMagicTool creates a MagicTool and registers it
func NewMagicTool(gk *genkit.Genkit, registry *tools.Registry) *MagicTool {
	t := &MagicTool{}
	if gk == nil || registry == nil {
		return t
	}

	registry.Register(genkit.DefineTool[*MagicInput, int](
		gk,
		t.Name(),
		t.Description(),
		func(ctx *ai.ToolContext, input *MagicInput) (int, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		n, err := intArg(args, "input")
		if err != nil {
			return nil, err
		}
		return t.Execute(ctx, &MagicInput{Input: n})
	})

	return t
}

func (t *MagicTool) Name() string {
	return "magic_function"
}

func (t *MagicTool) Description() string {
	return "Applies a magic function to an input."
}

func (t *MagicTool) Execute(ctx context.Context, input *MagicInput) (int, error) {
	if input == nil {
		return 0, fmt.Errorf("input is required")
	}
	log.Debugf(ctx, "magic_function(%d)", input.Input)
	return input.Input + 2, nil
}

// intArg reads an integer argument decoded from JSON, where numbers arrive as
// float64.
func intArg(args map[string]interface{}, key string) (int, error) {
	switch v := args[key].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v != float64(int(v)) {
			return 0, fmt.Errorf("%s must be an integer, got %v", key, v)
		}
		return int(v), nil
	case nil:
		return 0, fmt.Errorf("missing %s", key)
	default:
		return 0, fmt.Errorf("%s must be an integer, got %T", key, v)
	}
}
