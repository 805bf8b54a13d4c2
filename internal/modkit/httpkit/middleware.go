package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"refstar/internal/platform/net/middleware"
)

const (
	slowRequest    = 500 * time.Millisecond
	requestTimeout = 30 * time.Second
)

// CommonStack is the middleware every /api/v1 route runs through, outermost first
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.RealIP(),
		middleware.AccessLog(nil, slowRequest),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(requestTimeout),
	}
}

// Heartbeat answers GET path with 200 ahead of routing, for load balancer probes
func Heartbeat(path string) func(http.Handler) http.Handler { return middleware.Heartbeat(path) }
