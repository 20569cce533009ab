package llm

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// finishReply rejects truncated replies and validates the content against
// the prompt's schema, if any.
func finishReply(pr Prompt, reply *Reply) (*Reply, error) {
	if reply.StopReason == "max_tokens" {
		return nil, &ErrTruncated{Content: reply.Content}
	}
	if err := validateReply(pr.Schema, reply.Content); err != nil {
		return nil, err
	}
	return reply, nil
}

// validateReply validates raw JSON against the given Schema.
// Returns nil if no schema is provided or validation passes.
func validateReply(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidReply{
			Content: raw,
			Err:     fmt.Errorf("invalid JSON: %w", err),
		}
	}

	compiled, err := CompileSchema(schema.Name, schema.Definition)
	if err != nil {
		return &ErrInvalidReply{
			Content: raw,
			Err:     fmt.Errorf("compile schema %q: %w", schema.Name, err),
		}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidReply{
			Content: raw,
			Err:     fmt.Errorf("schema validation failed: %w", err),
		}
	}

	return nil
}

// CompileSchema returns a cached compiled schema or compiles and caches it.
func CompileSchema(name string, definition map[string]any) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants a plain decoded JSON value; a round-trip strips
	// Go-specific types such as []string from the definition map.
	defBytes, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(name, compiled)
	return compiled, nil
}
