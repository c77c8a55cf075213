package schema

import (
	"fmt"
	"sort"
)

// Schema describes the arguments a tool accepts.
type Schema struct {
	Fields   map[string]Type
	Required []string
}

// FromParameters reads a JSON Schema "object" definition. A nil or empty
// definition yields an empty Schema that accepts anything.
func FromParameters(params map[string]any) (Schema, error) {
	s := Schema{Fields: map[string]Type{}}
	if len(params) == 0 {
		return s, nil
	}

	if props, ok := params["properties"].(map[string]any); ok {
		for name, raw := range props {
			def, ok := raw.(map[string]any)
			if !ok {
				return Schema{}, fmt.Errorf("property %s: expected object, got %T", name, raw)
			}
			t, err := ParseProperty(def)
			if err != nil {
				return Schema{}, fmt.Errorf("property %s: %w", name, err)
			}
			s.Fields[name] = t
		}
	}

	if req, ok := params["required"]; ok {
		required, err := stringList(req)
		if err != nil {
			return Schema{}, fmt.Errorf("required: %w", err)
		}
		s.Required = required
	}
	return s, nil
}

// Validate checks args against the schema.
// Returns an error with all validation failures found.
func Validate(schema Schema, args map[string]any) error {
	var errs []error

	for _, name := range schema.Required {
		if _, ok := args[name]; !ok {
			errs = append(errs, &ValidationError{Key: name, Reason: "required"})
		}
	}

	// Sorted so that error messages are stable for the model and for tests.
	names := make([]string, 0, len(schema.Fields))
	for name := range schema.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value, ok := args[name]
		if !ok {
			continue
		}
		if err := schema.Fields[name].Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: name, Reason: err.Error(), Value: value})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
