package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"refstar/internal/core/astrometry"
	"refstar/internal/core/pointing"
	perr "refstar/internal/platform/errors"
)

var startLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var daysRe = regexp.MustCompile(`^(\d+(?:\.\d+)?)d(.*)$`)

// ParseName cleans a star name typed by a caller: surrounding space goes and the text is NFC normalized
// catalog names are matched exactly after that, blank is an invalid argument on field
func ParseName(s, field string) (string, error) {
	name := astrometry.CanonicalName(s)
	if name == "" {
		return "", perr.WithField(perr.InvalidArgf("%s name is required", field), field)
	}
	return name, nil
}

// ParseStart reads an observation start, values without a zone are UTC
func ParseStart(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range startLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, perr.WithField(perr.InvalidArgf("start %q is not an RFC 3339 time", s), "start")
}

// ParseDuration reads a Go duration with an optional leading day count
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	bad := func() error {
		return perr.WithField(perr.InvalidArgf("duration %q is not a duration like 30d or 12h", s), "duration")
	}
	var days time.Duration
	if m := daysRe.FindStringSubmatch(s); m != nil {
		n, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return 0, bad()
		}
		days = time.Duration(n * float64(24*time.Hour))
		if s = m[2]; s == "" {
			return days, nil
		}
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, bad()
	}
	return days + d, nil
}

// Window builds the observation window of in
func (in WindowInput) Window() (pointing.Window, error) {
	start, err := ParseStart(in.Start)
	if err != nil {
		return pointing.Window{}, err
	}
	d, err := ParseDuration(in.Duration)
	if err != nil {
		return pointing.Window{}, err
	}
	return pointing.NewWindow(start, d)
}
