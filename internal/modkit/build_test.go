package modkit

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"refstar/internal/modkit/httpkit"
	phttp "refstar/internal/platform/net/http"
	kit "refstar/internal/platform/testkit"

	"github.com/go-chi/chi/v5"
)

func text(s string) phttp.Handler {
	return func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, s) }
}

func TestBuild_LaterOptionsWin(t *testing.T) {
	b := Build(WithName("refstar"), WithPrefix("/refstar"), WithName("sky"), WithPorts(42))
	if b.Name != "sky" || b.Prefix != "/refstar" || b.Ports != 42 {
		t.Fatalf("built %+v", b)
	}
}

func TestRoutes_Mount(t *testing.T) {
	tagged := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Module", "sky")
			next.ServeHTTP(w, r)
		})
	}
	rt := Build(
		WithName("sky"),
		WithPrefix("sky/"),
		WithMiddlewares(tagged),
		WithRoutes(func(r httpkit.Router) { r.Get("/extra", text("extra")) }),
	).Routes(func(r httpkit.Router) { r.Get("/own", text("own")) })

	if rt.Name() != "sky" || rt.Prefix() != "/sky" {
		t.Fatalf("name %q prefix %q", rt.Name(), rt.Prefix())
	}

	mux := chi.NewRouter()
	rt.MountRoutes(phttp.AdaptChi(mux))
	for path, want := range map[string]string{"/sky/own": "own", "/sky/extra": "extra"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Body.String() != want || rec.Header().Get("X-Module") != "sky" {
			t.Fatalf("%s: %q %v", path, rec.Body.String(), rec.Header())
		}
	}
}

func TestRoutes_RequiresNameAndPrefix(t *testing.T) {
	noop := func(httpkit.Router) {}
	kit.MustPanic(t, func() { Build(WithPrefix("/x")).Routes(noop) })
	kit.MustPanic(t, func() { Build(WithName("x")).Routes(noop) })
}
