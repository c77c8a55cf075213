// Package schema validates tool call arguments before a tool runs.
//
// Tools describe their parameters with a JSON Schema object, the form
// model providers expect. FromParameters reads the subset of that object
// which matters for argument checking (property types and the required
// list) into a Schema:
//
//	s, err := schema.FromParameters(map[string]any{
//	    "type": "object",
//	    "properties": map[string]any{
//	        "query": map[string]any{"type": "string"},
//	        "limit": map[string]any{"type": "integer"},
//	    },
//	    "required": []string{"query"},
//	})
//
//	if err := schema.Validate(s, call.Args); err != nil {
//	    // Report the error back to the model
//	}
//
// Properties without a recognised type accept any value, and arguments
// the schema does not name are left alone. Models routinely add harmless
// extras; rejecting them would cost a tool round for nothing.
package schema
