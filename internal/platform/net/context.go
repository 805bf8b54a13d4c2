// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const keyTarget ctxKey = "target"

// WithRequest annotates context with the request id and the star the request is about
func WithRequest(ctx context.Context, reqID, target string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if target != "" {
		ctx = context.WithValue(ctx, keyTarget, target)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// Target returns the target star on the context if present
func Target(ctx context.Context) string {
	if v, ok := ctx.Value(keyTarget).(string); ok {
		return v
	}
	return ""
}
