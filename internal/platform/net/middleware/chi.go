// Package middleware is the request pipeline of the API: chi and go-chi/cors adapters plus the access log and panic recovery
package middleware

import (
	"net/http"
	"time"

	pstrings "refstar/internal/platform/strings"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// RequestID reuses an inbound X-Request-Id or mints one
func RequestID() func(http.Handler) http.Handler { return chimw.RequestID }

// RealIP trusts X-Real-IP and X-Forwarded-For for RemoteAddr
func RealIP() func(http.Handler) http.Handler { return chimw.RealIP }

// NoCache marks every response uncacheable, selections depend on the catalog snapshot
func NoCache() func(http.Handler) http.Handler { return chimw.NoCache }

// Compress gzips and deflates eligible responses at level
func Compress(level int) func(http.Handler) http.Handler { return chimw.Compress(level) }

// Heartbeat answers GET path with 200 before routing
func Heartbeat(path string) func(http.Handler) http.Handler { return chimw.Heartbeat(path) }

// StripSlashes drops a trailing slash so /refstar/select/ routes like /refstar/select
func StripSlashes() func(http.Handler) http.Handler { return chimw.StripSlashes }

// Timeout ends the request context after d, long windows with many samples hit it first
func Timeout(d time.Duration) func(http.Handler) http.Handler { return chimw.Timeout(d) }

// CORSOptions is the subset of go-chi/cors the API configures
type CORSOptions struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         int
}

// CORS applies o, methods and headers default to what the API serves
func CORS(o CORSOptions) func(http.Handler) http.Handler {
	return chicors.Handler(chicors.Options{
		AllowedOrigins: pstrings.IfEmpty(o.AllowedOrigins, []string{"*"}),
		AllowedMethods: pstrings.IfEmpty(o.AllowedMethods, []string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		AllowedHeaders: pstrings.IfEmpty(o.AllowedHeaders, []string{"Accept", "Content-Type", "X-Request-Id"}),
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         o.MaxAge,
	})
}
