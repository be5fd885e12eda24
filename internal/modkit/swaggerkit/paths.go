package swaggerkit

import "strings"

// Param is one documented query parameter
type Param struct {
	Name        string
	Description string
	Type        string // string, integer or boolean; empty means string
	Array       bool   // repeated key or key[]
	Required    bool
}

// Operation documents one GET endpoint relative to the api server url
type Operation struct {
	Path    string
	Tag     string
	Summary string
	ID      string
	Params  []Param
	// Data is the schema of the envelope data field, nil means any
	Data map[string]any
	// Paged adds pagination and warnings next to data
	Paged bool
}

// Document returns a mutator that adds ops to the document paths
func Document(ops ...Operation) SpecMutator {
	return func(spec map[string]any) {
		paths, ok := spec["paths"].(map[string]any)
		if !ok {
			paths = map[string]any{}
			spec["paths"] = paths
		}
		for _, op := range ops {
			node, ok := paths[op.Path].(map[string]any)
			if !ok {
				node = map[string]any{}
				paths[op.Path] = node
			}
			node["get"] = op.render()
		}
	}
}

func (op Operation) render() map[string]any {
	params := make([]any, 0, len(op.Params))
	for _, p := range op.Params {
		params = append(params, p.render())
	}
	data := op.Data
	if data == nil {
		data = map[string]any{}
	}
	props := map[string]any{
		"status_code": map[string]any{"type": "integer"},
		"status":      map[string]any{"type": "string"},
		"success":     map[string]any{"type": "boolean"},
		"request_id":  map[string]any{"type": "string"},
		"data":        data,
	}
	if op.Paged {
		props["pagination"] = map[string]any{"$ref": "#/components/schemas/Pagination"}
		props["warnings"] = map[string]any{"type": "array", "items": map[string]any{"$ref": "#/components/schemas/Warning"}}
	}
	out := map[string]any{
		"tags":        []any{op.Tag},
		"summary":     op.Summary,
		"operationId": op.ID,
		"responses": map[string]any{
			"200": map[string]any{
				"description": "OK",
				"content": map[string]any{
					"application/json": map[string]any{
						"schema": map[string]any{"type": "object", "properties": props},
					},
				},
			},
		},
	}
	if len(params) > 0 {
		out["parameters"] = params
	}
	return out
}

func (p Param) render() map[string]any {
	typ := strings.TrimSpace(p.Type)
	if typ == "" {
		typ = "string"
	}
	schema := map[string]any{"type": typ}
	if p.Array {
		schema = map[string]any{"type": "array", "items": map[string]any{"type": typ}}
	}
	out := map[string]any{
		"name":     p.Name,
		"in":       "query",
		"required": p.Required,
		"schema":   schema,
	}
	if p.Array {
		out["style"] = "form"
		out["explode"] = true
	}
	if p.Description != "" {
		out["description"] = p.Description
	}
	return out
}

// Schemas returns a mutator that adds named component schemas, existing names are kept
func Schemas(named map[string]map[string]any) SpecMutator {
	return func(spec map[string]any) {
		comps, ok := spec["components"].(map[string]any)
		if !ok {
			comps = map[string]any{}
			spec["components"] = comps
		}
		schemas, ok := comps["schemas"].(map[string]any)
		if !ok {
			schemas = map[string]any{}
			comps["schemas"] = schemas
		}
		for name, s := range named {
			if _, exists := schemas[name]; !exists {
				schemas[name] = s
			}
		}
	}
}

// Paging documents the envelope pagination and warning models
var Paging = Schemas(map[string]map[string]any{
	"Pagination": {
		"type": "object",
		"properties": map[string]any{
			"total":      map[string]any{"type": "integer", "format": "int64"},
			"page":       map[string]any{"type": "integer"},
			"pageSize":   map[string]any{"type": "integer"},
			"totalPages": map[string]any{"type": "integer"},
		},
	},
	"Warning": {
		"type": "object",
		"properties": map[string]any{
			"kind":      map[string]any{"type": "string", "enum": []any{"malformed_filter", "category_expansion_empty", "partial_dimension_failure", "unknown_sort_key"}},
			"dimension": map[string]any{"type": "string"},
			"message":   map[string]any{"type": "string"},
		},
	},
})
