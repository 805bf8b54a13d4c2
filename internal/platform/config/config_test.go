package config

import (
	"slices"
	"testing"

	kit "refstar/internal/platform/testkit"
)

func TestConf_Prefix(t *testing.T) {
	c := New().Prefix("SERVICE_").Prefix("PGSQL_")
	if got := c.key("DBURL"); got != "SERVICE_PGSQL_DBURL" {
		t.Fatalf("key = %q", got)
	}
}

func TestConf_Typed(t *testing.T) {
	t.Setenv("REFSTAR_TARGET", "  HD 189733 ")
	t.Setenv("REFSTAR_SAMPLES", "250")
	t.Setenv("REFSTAR_SAMPLES_BAD", "many")
	t.Setenv("REFSTAR_TOLERANCE", "2.5")
	t.Setenv("REFSTAR_TOLERANCE_BAD", "wide")
	t.Setenv("REFSTAR_STRICT", "true")
	t.Setenv("REFSTAR_STRICT_BAD", "perhaps")

	c := New().Prefix("REFSTAR_")
	cases := []struct {
		name string
		got  any
		want any
	}{
		{"string", c.MayString("TARGET", "x"), "HD 189733"},
		{"string default", c.MayString("UNSET", "x"), "x"},
		{"int", c.MayInt("SAMPLES", 100), 250},
		{"int fallback", c.MayInt("SAMPLES_BAD", 100), 100},
		{"int default", c.MayInt("UNSET", 100), 100},
		{"float", c.MayFloat64("TOLERANCE", 5), 2.5},
		{"float fallback", c.MayFloat64("TOLERANCE_BAD", 5), 5.0},
		{"bool", c.MayBool("STRICT", false), true},
		{"bool fallback", c.MayBool("STRICT_BAD", false), false},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s = %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestConf_MayCSV(t *testing.T) {
	t.Setenv("C_CLASSES", " A, ,B ,C")
	t.Setenv("C_BLANK", " , ")
	c := New().Prefix("C_")

	if got := c.MayCSV("CLASSES", nil); !slices.Equal(got, []string{"A", "B", "C"}) {
		t.Fatalf("MayCSV = %v", got)
	}
	def := []string{"A"}
	if got := c.MayCSV("BLANK", def); !slices.Equal(got, def) {
		t.Fatalf("blank = %v", got)
	}
	if got := c.MayCSV("UNSET", def); !slices.Equal(got, def) {
		t.Fatalf("unset = %v", got)
	}
}

func TestConf_MayEnum(t *testing.T) {
	t.Setenv("E_EXPORTER", "OTLP")
	t.Setenv("E_BAD", "zipkin")
	c := New().Prefix("E_")

	if got := c.MayEnum("EXPORTER", "stdout", "stdout", "otlp"); got != "OTLP" {
		t.Fatalf("MayEnum = %q", got)
	}
	if got := c.MayEnum("UNSET", "stdout", "stdout", "otlp"); got != "stdout" {
		t.Fatalf("default = %q", got)
	}
	kit.MustPanic(t, func() { _ = c.MayEnum("BAD", "stdout", "stdout", "otlp") })
}
