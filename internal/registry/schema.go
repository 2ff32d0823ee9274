package registry

import "github.com/invopop/jsonschema"

// GenerateSchema reflects a JSON schema for a request type from its
// jsonschema struct tags. The schema is self-contained, with no $ref
// indirection, so it can be handed to a function-calling model as-is.
func GenerateSchema[T any]() *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  true,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	return reflector.Reflect(&v)
}
