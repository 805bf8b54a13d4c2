package strings

import (
	"slices"
	"testing"

	kit "refstar/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	def := []string{"GET", "POST"}
	if got := IfEmpty(nil, def); !slices.Equal(got, def) {
		t.Fatalf("nil = %v", got)
	}
	if got := IfEmpty([]string{"GET"}, def); !slices.Equal(got, []string{"GET"}) {
		t.Fatalf("set = %v", got)
	}
}

func TestMustString(t *testing.T) {
	if MustString("refstar", "name") != "refstar" {
		t.Fatal("MustString")
	}
	if v := kit.MustPanic(t, func() { MustString(" \t", "module name") }); v != "module name is required" {
		t.Fatalf("panic = %v", v)
	}
}

func TestMustPrefix(t *testing.T) {
	for in, want := range map[string]string{
		"refstar":    "/refstar",
		"/refstar/":  "/refstar",
		" //meta// ": "/meta",
		"a/b":        "/a/b",
	} {
		if got := MustPrefix(in); got != want {
			t.Errorf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	kit.MustPanic(t, func() { MustPrefix(" / ") })
}
