// Package registry exposes the workspace tools behind a uniform name-keyed
// surface: declarations for a function-calling model on one side, execution
// of decoded arguments on the other.
package registry

import (
	"context"
	"sort"

	"github.com/jmallory/sandkit/internal/tools/models"
)

// Tool is a single callable capability. Tools are stateless and safe for
// concurrent use; failures come back inside the Result, never as an error.
type Tool interface {
	Name() string
	Description() string
	Declaration() Declaration
	Execute(ctx context.Context, args map[string]any) models.Result
}

// Declaration describes a tool to a function-calling model.
type Declaration struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InputSchema any    `json:"input_schema,omitempty"`
}

// Registry holds tools by name.
type Registry struct {
	tools map[string]Tool
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool, replacing any previous tool with the same name.
func (r *Registry) Register(t Tool) {
	r.tools[t.Name()] = t
}

// Get looks a tool up by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Names returns the registered tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Declarations returns all tool declarations ordered by name.
func (r *Registry) Declarations() []Declaration {
	decls := make([]Declaration, 0, len(r.tools))
	for _, name := range r.Names() {
		decls = append(decls, r.tools[name].Declaration())
	}
	return decls
}

// Execute runs the named tool. An unknown name is a failed Result like any
// other tool failure.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) models.Result {
	t, ok := r.tools[name]
	if !ok {
		return models.Failf("Unknown tool: %s", name)
	}
	return t.Execute(ctx, args)
}
