// Package raw reads environment variables without logging, the logger bootstraps from it
package raw

import (
	"os"
	"strconv"
	"strings"
)

// Conf is a prefixed view over the environment
type Conf struct{ prefix string }

// New returns the unprefixed view
func New() Conf { return Conf{} }

// Prefix returns a view whose keys gain p, prefixes nest
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// Key returns the full variable name for k
func (c Conf) Key(k string) string { return c.prefix + k }

// Lookup returns the trimmed value and whether it is non-empty
func (c Conf) Lookup(k string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(c.Key(k)))
	return v, v != ""
}

// Get returns the value of k or def when unset
func (c Conf) Get(k, def string) string {
	if v, ok := c.Lookup(k); ok {
		return v
	}
	return def
}

// GetBool accepts 1, true and yes in any case, anything else set is false
func (c Conf) GetBool(k string, def bool) bool {
	v, ok := c.Lookup(k)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// GetInt returns a non-negative integer, def when unset or unparsable
func (c Conf) GetInt(k string, def int) int {
	v, ok := c.Lookup(k)
	if !ok {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}
