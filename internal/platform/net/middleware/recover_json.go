package middleware

import (
	"net/http"
	"runtime/debug"

	perr "refstar/internal/platform/errors"
	"refstar/internal/platform/logger"
	pnet "refstar/internal/platform/net"
	phttp "refstar/internal/platform/net/http"
)

// RecoverJSON turns a panic into a 500 envelope with ErrorCodePanic and logs the stack
// http.ErrAbortHandler is re-panicked so the server aborts the connection
func RecoverJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == http.ErrAbortHandler {
				panic(v)
			}

			logger.C(r.Context()).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			status, env := pnet.Error(perr.PanicErrf("internal error"), pnet.RequestID(r.Context()))
			phttp.WriteJSON(w, status, env)
		}()
		next.ServeHTTP(w, r)
	})
}
