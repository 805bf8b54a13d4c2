package astrometry

import (
	"strings"

	perr "refstar/internal/platform/errors"
)

// Class is the PSF quality grade of a reference star, A is best
type Class uint8

const (
	// ClassNone marks a star with no usable grade, it is never a reference candidate
	ClassNone Class = iota
	// ClassA is the best grade
	ClassA
	// ClassB is the middle grade
	ClassB
	// ClassC is the lowest usable grade
	ClassC
)

// Classes returns the search order used when looking for a reference star
func Classes() []Class { return []Class{ClassA, ClassB, ClassC} }

// String returns the catalog letter for c or "" for ClassNone
func (c Class) String() string {
	switch c {
	case ClassA:
		return "A"
	case ClassB:
		return "B"
	case ClassC:
		return "C"
	default:
		return ""
	}
}

// Valid reports whether c is one of A, B or C
func (c Class) Valid() bool { return c >= ClassA && c <= ClassC }

// ParseClass parses a grade letter, case and surrounding space are ignored
func ParseClass(s string) (Class, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return ClassA, nil
	case "B":
		return ClassB, nil
	case "C":
		return ClassC, nil
	}
	return ClassNone, perr.WithField(perr.InvalidArgf("unknown quality class %q", s), "class")
}

// ParseClasses parses an ordered class list and rejects duplicates
func ParseClasses(in []string) ([]Class, error) {
	if len(in) == 0 {
		return nil, perr.InvalidArgf("class list is empty")
	}
	seen := make(map[Class]bool, len(in))
	out := make([]Class, 0, len(in))
	for _, s := range in {
		c, err := ParseClass(s)
		if err != nil {
			return nil, err
		}
		if seen[c] {
			return nil, perr.InvalidArgf("class %s listed twice", c)
		}
		seen[c] = true
		out = append(out, c)
	}
	return out, nil
}

// gradeOf maps a raw catalog grade to a Class, anything unknown is ClassNone
func gradeOf(raw *string) Class {
	if raw == nil {
		return ClassNone
	}
	c, err := ParseClass(*raw)
	if err != nil {
		return ClassNone
	}
	return c
}
