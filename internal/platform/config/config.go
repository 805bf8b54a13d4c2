// Package config reads typed settings from prefixed environment variables
// unset keys fall back to their default, malformed values are logged and fall back too
package config

import (
	"strconv"
	"strings"

	"refstar/internal/platform/config/raw"
	"refstar/internal/platform/logger"
)

// Conf is a prefixed view over the environment, e.g. New().Prefix("SERVICE_PGSQL_")
type Conf struct{ env raw.Conf }

// New returns the unprefixed view
func New() Conf { return Conf{env: raw.New()} }

// Prefix returns a view whose keys gain p
func (c Conf) Prefix(p string) Conf { return Conf{env: c.env.Prefix(p)} }

func (c Conf) key(k string) string { return c.env.Key(k) }

// parsed reads k through parse, warning and returning def on failure
func parsed[T any](c Conf, k string, def T, parse func(string) (T, error)) T {
	s, ok := c.env.Lookup(k)
	if !ok {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(k)).Str("value", s).Interface("default", def).Msg("invalid config value, using default")
		return def
	}
	return v
}

// MayString returns the value of k or def
func (c Conf) MayString(k, def string) string { return c.env.Get(k, def) }

// MayInt returns k as an int or def
func (c Conf) MayInt(k string, def int) int { return parsed(c, k, def, strconv.Atoi) }

// MayFloat64 returns k as a float64 or def
func (c Conf) MayFloat64(k string, def float64) float64 {
	return parsed(c, k, def, func(s string) (float64, error) { return strconv.ParseFloat(s, 64) })
}

// MayBool returns k as a bool or def
func (c Conf) MayBool(k string, def bool) bool { return parsed(c, k, def, strconv.ParseBool) }

// MayCSV splits k on commas dropping blanks, def when nothing remains
func (c Conf) MayCSV(k string, def []string) []string {
	s, ok := c.env.Lookup(k)
	if !ok {
		return def
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

// MayEnum returns k or def and panics when the value is not one of allowed, case insensitive
func (c Conf) MayEnum(k, def string, allowed ...string) string {
	v := c.MayString(k, def)
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return v
		}
	}
	logger.Get().Panic().Str("key", c.key(k)).Str("value", v).Strs("allowed", allowed).Msg("invalid config value")
	return ""
}
