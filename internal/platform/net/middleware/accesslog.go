package middleware

import (
	"net/http"
	"time"

	"refstar/internal/platform/logger"
	pnet "refstar/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLog scopes the request logger with the request id and logs one line per request
// requests at or over slow log at warn, slow 0 never warns; a nil base uses the http logger
func AccessLog(base *logger.Logger, slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := base
			if l == nil {
				l = logger.Named("http")
			}
			rid := pnet.RequestID(r.Context())
			if rid != "" {
				ll := l.With().Str("request_id", rid).Logger()
				l = &ll
				r = r.WithContext(logger.WithRequest(r.Context(), rid, ""))
			}

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			evt := l.Info()
			switch {
			case status >= http.StatusInternalServerError:
				evt = l.Error()
			case slow > 0 && elapsed >= slow:
				evt = l.Warn()
			}
			evt.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", elapsed).
				Msg("request")
		})
	}
}
