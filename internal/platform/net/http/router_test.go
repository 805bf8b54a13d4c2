package http

import (
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func tag(name string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			w.Header().Add("X-Scope", name)
			next.ServeHTTP(w, r)
		})
	}
}

func text(s string) Handler {
	return func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { _, _ = io.WriteString(w, s) }
}

func TestAdaptChi_Routes(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	r.Use(tag("root"))
	r.Get("/health", text("ok"))
	r.Route("/api/v1", func(api Router) {
		api.Use(tag("api"))
		api.Route("/refstar", func(mod Router) {
			mod.Post("/select", text("selected"))
			mod.Handle("/raw", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
				_, _ = io.WriteString(w, r.Method)
			}))
		})
	})

	cases := []struct {
		method, path string
		status       int
		body         string
		scopes       []string
	}{
		{stdhttp.MethodGet, "/health", 200, "ok", []string{"root"}},
		{stdhttp.MethodPost, "/api/v1/refstar/select", 200, "selected", []string{"root", "api"}},
		{stdhttp.MethodGet, "/api/v1/refstar/select", 405, "", []string{"root", "api"}},
		{stdhttp.MethodPut, "/api/v1/refstar/raw", 200, "PUT", []string{"root", "api"}},
		{stdhttp.MethodGet, "/api/v1/nope", 404, "", []string{"root", "api"}},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != tc.status {
			t.Fatalf("%s %s: status = %d, want %d", tc.method, tc.path, rec.Code, tc.status)
		}
		if tc.body != "" && rec.Body.String() != tc.body {
			t.Fatalf("%s %s: body = %q", tc.method, tc.path, rec.Body.String())
		}
		got := rec.Header().Values("X-Scope")
		if len(got) != len(tc.scopes) {
			t.Fatalf("%s %s: scopes = %v, want %v", tc.method, tc.path, got, tc.scopes)
		}
		for i := range got {
			if got[i] != tc.scopes[i] {
				t.Fatalf("%s %s: scopes = %v, want %v", tc.method, tc.path, got, tc.scopes)
			}
		}
	}
}

func TestMountProfiler(t *testing.T) {
	t.Parallel()

	on := AdaptChi(chi.NewRouter())
	MountProfiler(on, "/debug", true)
	off := AdaptChi(chi.NewRouter())
	MountProfiler(off, "/debug", false)

	for _, path := range []string{"/debug/pprof/", "/debug/pprof/cmdline"} {
		rec := httptest.NewRecorder()
		on.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
		if rec.Code != stdhttp.StatusOK {
			t.Fatalf("enabled %s: status = %d", path, rec.Code)
		}

		rec = httptest.NewRecorder()
		off.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
		if rec.Code != stdhttp.StatusNotFound {
			t.Fatalf("disabled %s: status = %d", path, rec.Code)
		}
	}
}
