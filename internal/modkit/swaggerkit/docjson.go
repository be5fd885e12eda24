// Package swaggerkit serves Swagger UI over an OpenAPI document assembled from module contributions
package swaggerkit

import (
	"encoding/json"
	"net/http"
	"sync"

	"paydash/internal/core/version"
	"paydash/internal/modkit/httpkit"
	"paydash/internal/platform/config"
)

// SpecMutator lets modules add or tweak parts of the OpenAPI document before it is served
type SpecMutator func(map[string]any)

var (
	mu       sync.RWMutex
	mutators []SpecMutator
)

// Register adds a spec mutator, modules call it from their constructor
func Register(m SpecMutator) {
	if m == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	mutators = append(mutators, m)
}

// Reset drops every registered mutator
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	mutators = nil
}

// Spec assembles the served document: base info, module contributions, then shared error responses
func Spec() map[string]any {
	title := "paydash API"
	if v := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
		title += " " + v
	}
	spec := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":       title,
			"version":     version.Info().Version,
			"description": "Read only reporting over payroll and savings fund records",
		},
		"servers": []any{map[string]any{"url": httpkit.APIV1}},
		"paths":   map[string]any{},
	}

	mu.RLock()
	for _, m := range mutators {
		m(spec)
	}
	mu.RUnlock()

	Schemas(map[string]map[string]any{"ErrorResponse": errorResponse})(spec)
	for code, resp := range errorResponses {
		addResponse(spec, code, resp)
	}
	return spec
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(Spec())
	}
}

// errorResponse mirrors the envelope RespondError writes
var errorResponse = map[string]any{
	"type":        "object",
	"description": "Error envelope",
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer", "format": "int32"},
		"status":      map[string]any{"type": "string"},
		"success":     map[string]any{"type": "boolean"},
		"code":        map[string]any{"type": "integer", "format": "int32"},
		"error":       map[string]any{"type": "string"},
		"field":       map[string]any{"type": "string"},
		"request_id":  map[string]any{"type": "string"},
		"data":        map[string]any{"nullable": true},
	},
	"required": []any{"status_code", "status"},
}

func errorExample(status int, code int, msg, field string) map[string]any {
	ex := map[string]any{
		"status_code": status,
		"status":      http.StatusText(status),
		"success":     false,
		"code":        code,
		"error":       msg,
		"request_id":  "579f33bf50b1/abc-000001",
	}
	if field != "" {
		ex["field"] = field
	}
	return map[string]any{
		"description": http.StatusText(status),
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": ex,
			},
		},
	}
}

// errorResponses every operation can answer with
var errorResponses = map[string]map[string]any{
	"400": errorExample(http.StatusBadRequest, 4, "pageSize must be at most 1000", "pageSize"),
	"500": errorExample(http.StatusInternalServerError, 6, "payroll listing query failed", ""),
	"503": errorExample(http.StatusServiceUnavailable, 2, "payroll listing query failed", ""),
}

// addResponse sets resp under code on every operation that does not document code itself
func addResponse(spec map[string]any, code string, resp map[string]any) {
	paths, _ := spec["paths"].(map[string]any)
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, raw := range node {
			op, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			responses, ok := op["responses"].(map[string]any)
			if !ok {
				responses = map[string]any{}
				op["responses"] = responses
			}
			if _, set := responses[code]; !set {
				responses[code] = resp
			}
		}
	}
}
