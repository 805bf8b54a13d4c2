package selector

import (
	"fmt"
	"strings"

	"refstar/internal/core/astrometry"
	"refstar/internal/core/pointing"
)

// Status is the kind of selection outcome
type Status string

const (
	// StatusFound means a reference star was selected
	StatusFound Status = "found"
	// StatusTargetInvalid means the target itself violates the solar constraint
	StatusTargetInvalid Status = "target_invalid"
	// StatusExhausted means no class produced a usable reference star
	StatusExhausted Status = "exhausted"
)

// MsgTargetInvalid is reported when the target fails the solar constraint
const MsgTargetInvalid = "Observation window violates Solar angle Constraint"

// Skip records a candidate passed over because of unusable catalog data
type Skip struct {
	Name   string
	Class  astrometry.Class
	Reason string
}

// Outcome is the result of one selection
type Outcome struct {
	Status         Status
	Target         string
	Window         pointing.Window
	Reference      string
	Class          astrometry.Class
	MaxPitchOffset astrometry.Angle
	Classes        []astrometry.Class
	Evaluated      int
	Skipped        []Skip
}

// Found reports whether a reference star was selected
func (o Outcome) Found() bool { return o.Status == StatusFound }

// Message renders the caller facing result: the reference name or one of the two failure messages
func (o Outcome) Message() string {
	switch o.Status {
	case StatusFound:
		return o.Reference
	case StatusTargetInvalid:
		return MsgTargetInvalid
	default:
		return fmt.Sprintf("No reference star of class %s was found for %s between %s and %s",
			classPhrase(o.Classes), o.Target,
			o.Window.Start().UTC().Format(pointing.TimeLayout),
			o.Window.End().UTC().Format(pointing.TimeLayout))
	}
}

// classPhrase renders "A", "A or B", "A, B, or C"
func classPhrase(cs []astrometry.Class) string {
	if len(cs) == 0 {
		cs = astrometry.Classes()
	}
	names := make([]string, len(cs))
	for i, c := range cs {
		names[i] = c.String()
	}
	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	}
}
