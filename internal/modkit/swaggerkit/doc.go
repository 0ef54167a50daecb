package swaggerkit

import (
	"encoding/json"
	"net/http"
	"sync"
)

// Path documents one operation in the served spec
type Path struct {
	Method  string
	Route   string
	Summary string
	Tag     string
	Secured bool
}

var (
	mu    sync.Mutex
	title = "API"
	paths []Path
)

// Describe sets the spec title and the operations listed in it
// call before Mount, later calls replace earlier ones
func Describe(t string, ps ...Path) {
	mu.Lock()
	defer mu.Unlock()
	if t != "" {
		title = t
	}
	paths = append([]Path(nil), ps...)
}

// docReader is a seam so tests can inspect the raw document
var docReader = func() map[string]any {
	mu.Lock()
	defer mu.Unlock()
	return buildSpec(title, paths)
}

func buildSpec(t string, ps []Path) map[string]any {
	spec := map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]any{"title": t, "version": "v1"},
		"servers": []any{map[string]any{"url": "/api/v1"}},
		"components": map[string]any{
			"securitySchemes": map[string]any{
				"bearer": map[string]any{"type": "http", "scheme": "bearer"},
			},
			"schemas": map[string]any{"ErrorResponse": errorResponse()},
		},
	}
	out := map[string]any{}
	for _, p := range ps {
		node, ok := out[p.Route].(map[string]any)
		if !ok {
			node = map[string]any{}
			out[p.Route] = node
		}
		op := map[string]any{
			"summary": p.Summary,
			"responses": map[string]any{
				"200": map[string]any{"description": "OK"},
				"500": errorRef("Internal Server Error"),
			},
		}
		if p.Tag != "" {
			op["tags"] = []any{p.Tag}
		}
		if p.Secured {
			op["security"] = []any{map[string]any{"bearer": []any{}}}
			op["responses"].(map[string]any)["401"] = errorRef("Unauthorized")
		}
		node[p.Method] = op
	}
	spec["paths"] = out
	return spec
}

// errorResponse mirrors the runtime error envelope
func errorResponse() map[string]any {
	return map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

func errorRef(desc string) map[string]any {
	return map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
			},
		},
	}
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(docReader())
	}
}
