package swaggerkit

import (
	"encoding/json"
	"net/http"

	"refstar/internal/core/version"
)

type op struct {
	path, method, tag, summary string
}

var ops = []op{
	{"/refstar/select", "post", "Refstar", "Select a reference star for a target"},
	{"/refstar/pointing", "post", "Refstar", "Sun angle, pitch and yaw of one star across a window"},
	{"/refstar/catalog", "get", "Refstar", "Catalog size by quality class"},
	{"/meta/health", "get", "Meta", "Health check"},
	{"/meta/ready", "get", "Meta", "Readiness probe with dependency checks"},
	{"/meta/version", "get", "Meta", "Build information"},
	{"/meta/service", "get", "Meta", "Service name and uptime"},
}

// spec is the OpenAPI document the UI loads, every failure answers with the envelope schema
func spec() map[string]any {
	envelope := map[string]any{"$ref": "#/components/schemas/Envelope"}
	failure := map[string]any{
		"description": "error envelope",
		"content":     map[string]any{"application/json": map[string]any{"schema": envelope}},
	}

	paths := map[string]any{}
	for _, o := range ops {
		item, _ := paths[o.path].(map[string]any)
		if item == nil {
			item = map[string]any{}
			paths[o.path] = item
		}
		item[o.method] = map[string]any{
			"tags":    []string{o.tag},
			"summary": o.summary,
			"responses": map[string]any{
				"200": map[string]any{
					"description": "ok",
					"content":     map[string]any{"application/json": map[string]any{"schema": envelope}},
				},
				"default": failure,
			},
		}
	}

	return map[string]any{
		"openapi": "3.0.3",
		"info":    map[string]any{"title": "Refstar API", "version": version.Info().Version},
		"servers": []any{map[string]any{"url": "/api/v1"}},
		"paths":   paths,
		"components": map[string]any{"schemas": map[string]any{
			"Envelope": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"status_code": map[string]any{"type": "integer"},
					"status":      map[string]any{"type": "string"},
					"code":        map[string]any{"type": "integer"},
					"error":       map[string]any{"type": "string"},
					"field":       map[string]any{"type": "string"},
					"request_id":  map[string]any{"type": "string"},
					"data":        map[string]any{},
				},
			},
		}},
	}
}

func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec())
	}
}
