// Package version reports what build is running
//
// Release builds stamp the values with
//
//	-ldflags "-X refstar/internal/core/version.version=v1.2.0 -X refstar/internal/core/version.commit=abc1234 -X refstar/internal/core/version.date=2027-01-01"
//
// Unstamped builds fall back to the VCS settings the Go toolchain embeds.
package version

import (
	"runtime/debug"
	"sync"
)

// Service is the name the API reports for itself
const Service = "refstar-api"

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// BuildInfo is the /meta/version payload
type BuildInfo struct {
	Service string `json:"service" example:"refstar-api"`
	Version string `json:"version" example:"v1.2.0"`
	Commit  string `json:"commit" example:"abc1234"`
	Date    string `json:"date" example:"2027-01-01"`
	Dirty   bool   `json:"dirty,omitempty"`
}

var info = sync.OnceValue(func() BuildInfo {
	b := BuildInfo{Service: Service, Version: version, Commit: commit, Date: date}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fillVCS(&b, bi.Settings)
	}
	if b.Commit == "" {
		b.Commit = "none"
	}
	if b.Date == "" {
		b.Date = "unknown"
	}
	return b
})

// Info returns the build information, computed once
func Info() BuildInfo { return info() }

// fillVCS only fills what ldflags left empty
func fillVCS(b *BuildInfo, settings []debug.BuildSetting) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = short(s.Value)
			}
		case "vcs.time":
			if b.Date == "" {
				b.Date = s.Value
			}
		case "vcs.modified":
			b.Dirty = s.Value == "true"
		}
	}
}

func short(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}
