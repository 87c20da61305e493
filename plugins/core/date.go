package core

import (
	"context"
	"fmt"
	"time"

	"github.com/dop251/goja"
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/va6996/newsletter-agent/log"
	"github.com/va6996/newsletter-agent/tools"
)

// DateInput defines the input for the date tool
type DateInput struct {
	Expression string `json:"expression" description:"JavaScript expression evaluating to a Date or ISO string. 'now' holds the current time in milliseconds."`
	WithTime   bool   `json:"with_time,omitempty" description:"Return a full RFC 3339 timestamp instead of YYYY-MM-DD."`
}

// DateTool evaluates date arithmetic such as "the Monday after next" so the
// model does not have to guess publication dates.
type DateTool struct {
	Now func() time.Time
}

// NewDateTool creates a new DateTool and registers it
func NewDateTool(gk *genkit.Genkit, registry *tools.Registry) *DateTool {
	t := &DateTool{
		Now: time.Now,
	}

	if gk == nil || registry == nil {
		return t
	}

	registry.Register(genkit.DefineTool[*DateInput, string](
		gk,
		t.Name(),
		t.Description(),
		func(ctx *ai.ToolContext, input *DateInput) (string, error) {
			return t.Execute(ctx, input)
		},
	), func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		expression, ok := args["expression"].(string)
		if !ok {
			return nil, fmt.Errorf("missing expression")
		}
		withTime, _ := args["with_time"].(bool)
		return t.Execute(ctx, &DateInput{Expression: expression, WithTime: withTime})
	})

	return t
}

func (t *DateTool) Name() string {
	return "dateTool"
}

func (t *DateTool) Description() string {
	return `Evaluates a JavaScript expression to compute a date, e.g. the next issue's publication day. Variable 'now' holds the current timestamp (milliseconds).
The last expression is the result and must be a Date object or an ISO string.
Examples:
- Next Monday: "var d = new Date(now); d.setDate(d.getDate() + ((8 - d.getDay()) % 7 || 7)); d"
- Two weeks from today: "new Date(now + 14 * 86400000)"`
}

// Execute runs the expression in a fresh VM and formats the resulting date in UTC.
func (t *DateTool) Execute(ctx context.Context, input *DateInput) (string, error) {
	if input == nil || input.Expression == "" {
		return "", fmt.Errorf("expression is required")
	}
	log.Debugf(ctx, "dateTool evaluating: %s", input.Expression)

	now := time.Now
	if t.Now != nil {
		now = t.Now
	}

	vm := goja.New()
	if err := vm.Set("now", now().UnixMilli()); err != nil {
		return "", fmt.Errorf("failed to set 'now': %w", err)
	}

	val, err := vm.RunString(input.Expression)
	if err != nil {
		return "", fmt.Errorf("js execution failed: %w", err)
	}

	result, err := toTime(val.Export())
	if err != nil {
		return "", err
	}

	result = result.UTC()
	if input.WithTime {
		return result.Format(time.RFC3339), nil
	}
	return result.Format("2006-01-02"), nil
}

func toTime(exported interface{}) (time.Time, error) {
	switch v := exported.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("result is null or undefined")
	case time.Time:
		return v, nil
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed, nil
			}
		}
		return time.Time{}, fmt.Errorf("result %q is not an ISO date", v)
	default:
		return time.Time{}, fmt.Errorf("result is not a Date object or ISO string (got %T)", v)
	}
}
