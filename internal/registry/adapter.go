package registry

import (
	"context"

	"github.com/mitchellh/mapstructure"

	"github.com/jmallory/sandkit/internal/tools/models"
)

// Validator is implemented by request types that validate themselves after
// decoding.
type Validator interface {
	Validate() error
}

// Executor runs a tool with a typed request.
type Executor[Req any] func(ctx context.Context, req Req) models.Result

// Adapter bridges untyped argument maps to a typed executor. It centralizes
// argument decoding and request validation so the tool implementations only
// ever see fully-formed requests.
type Adapter[Req any] struct {
	name        string
	description string
	executor    Executor[Req]
}

// NewAdapter builds an adapter for one tool. The input schema is generated
// from the request type's jsonschema tags.
func NewAdapter[Req any](name, description string, executor Executor[Req]) *Adapter[Req] {
	return &Adapter[Req]{
		name:        name,
		description: description,
		executor:    executor,
	}
}

func (a *Adapter[Req]) Name() string { return a.name }

func (a *Adapter[Req]) Description() string { return a.description }

func (a *Adapter[Req]) Declaration() Declaration {
	return Declaration{
		Name:        a.name,
		Description: a.description,
		InputSchema: GenerateSchema[Req](),
	}
}

// Execute decodes args into the request type, validates it when the type
// supports validation, and hands it to the executor.
func (a *Adapter[Req]) Execute(ctx context.Context, args map[string]any) models.Result {
	var req Req
	if err := mapstructure.Decode(args, &req); err != nil {
		return models.Failf("Invalid arguments for %s: %v", a.name, err)
	}

	if v, ok := any(req).(Validator); ok {
		if err := v.Validate(); err != nil {
			return models.Failf("Invalid arguments for %s: %v", a.name, err)
		}
	}

	return a.executor(ctx, req)
}
