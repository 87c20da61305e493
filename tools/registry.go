// Package tools keeps the tools exposed to the model together with plain Go
// executors, so the same tool can be run by genkit or called directly.
package tools

import (
	"context"
	"fmt"
	"sort"

	"github.com/firebase/genkit/go/ai"
)

// ToolExecutor is the function signature for executing a tool
type ToolExecutor func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// Registry manages the registration of AI tools
type Registry struct {
	tools     []ai.Tool
	executors map[string]ToolExecutor
}

// NewRegistry creates a new tool registry
func NewRegistry() *Registry {
	return &Registry{
		tools:     make([]ai.Tool, 0),
		executors: make(map[string]ToolExecutor),
	}
}

// Register adds a tool to the registry with its executor. Registering a name
// twice replaces the earlier executor.
func (r *Registry) Register(tool ai.Tool, executor ToolExecutor) {
	name := tool.Definition().Name
	if _, exists := r.executors[name]; !exists {
		r.tools = append(r.tools, tool)
	}
	r.executors[name] = executor
}

// ToolRefs returns the registered tools, in registration order, as references
// for generate calls.
func (r *Registry) ToolRefs() []ai.ToolRef {
	refs := make([]ai.ToolRef, 0, len(r.tools))
	for _, tool := range r.tools {
		refs = append(refs, tool)
	}
	return refs
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.executors))
	for name := range r.executors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ExecuteTool runs a registered tool by name
func (r *Registry) ExecuteTool(ctx context.Context, name string, args map[string]interface{}) (interface{}, error) {
	executor, ok := r.executors[name]
	if !ok {
		return nil, fmt.Errorf("tool not found: %s", name)
	}
	return executor(ctx, args)
}
