package middleware_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	perr "refstar/internal/platform/errors"
	pnet "refstar/internal/platform/net"
	"refstar/internal/platform/net/middleware"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func chain(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func TestAccessLog(t *testing.T) {
	var buf bytes.Buffer
	base := zerolog.New(&buf)

	var seen string
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.RequestID(r.Context())
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, "made")
	}), middleware.RequestID(), middleware.AccessLog(&base, 0))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/refstar/select", nil)
	req.Header.Set(chimw.RequestIDHeader, "rid-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated || seen != "rid-42" {
		t.Fatalf("status %d request id %q", rec.Code, seen)
	}
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("log line %q: %v", buf.String(), err)
	}
	want := map[string]any{
		"level":      "info",
		"request_id": "rid-42",
		"method":     "POST",
		"path":       "/api/v1/refstar/select",
		"status":     float64(201),
		"bytes":      float64(4),
		"message":    "request",
	}
	for k, v := range want {
		if line[k] != v {
			t.Errorf("%s = %v, want %v", k, line[k], v)
		}
	}
}

func TestAccessLog_Levels(t *testing.T) {
	cases := []struct {
		name   string
		status int
		slow   time.Duration
		level  string
	}{
		{"implicit ok", 0, 0, "info"},
		{"slow", http.StatusOK, time.Nanosecond, "warn"},
		{"server error", http.StatusServiceUnavailable, 0, "error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			base := zerolog.New(&buf)
			h := middleware.AccessLog(&base, tc.slow)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				time.Sleep(time.Millisecond)
				if tc.status != 0 {
					w.WriteHeader(tc.status)
				}
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
			if !strings.Contains(buf.String(), `"level":"`+tc.level+`"`) {
				t.Fatalf("log = %s", buf.String())
			}
		})
	}
}

func TestRecoverJSON(t *testing.T) {
	h := chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("catalog row without ra")
	}), middleware.RequestID(), middleware.RecoverJSON)

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(chimw.RequestIDHeader, "rid-p")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	var env pnet.Wire
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if env.Code != perr.ErrorCodePanic || env.RequestID != "rid-p" || env.Error != "internal error" {
		t.Fatalf("envelope = %+v", env)
	}
}

func TestRecoverJSON_AbortHandler(t *testing.T) {
	h := middleware.RecoverJSON(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if v := recover(); v != http.ErrAbortHandler {
			t.Fatalf("recovered %v", v)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
}

func TestCORS_Preflight(t *testing.T) {
	h := middleware.CORS(middleware.CORSOptions{})(http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/refstar/select", nil)
	req.Header.Set("Origin", "https://ops.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow origin = %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != http.MethodPost {
		t.Fatalf("allow methods = %q", got)
	}

	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatal("DELETE preflight should be refused")
	}
}

func TestHeartbeatAndStripSlashes(t *testing.T) {
	var path string
	h := chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
	}), middleware.Heartbeat("/health"), middleware.StripSlashes(), middleware.NoCache())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || path != "" {
		t.Fatalf("heartbeat: %d reached %q", rec.Code, path)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/version/", nil))
	if path != "/meta/version" || rec.Header().Get("Cache-Control") == "" {
		t.Fatalf("nocache: path %q headers %v", path, rec.Header())
	}
}
