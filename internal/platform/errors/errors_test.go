package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestCodeTable(t *testing.T) {
	cases := []struct {
		code   ErrorCode
		name   string
		status int
	}{
		{ErrorCodeUnknown, "unknown", http.StatusInternalServerError},
		{ErrorCodePanic, "panic", http.StatusInternalServerError},
		{ErrorCodeUnavailable, "unavailable", http.StatusServiceUnavailable},
		{ErrorCodeConflict, "conflict", http.StatusConflict},
		{ErrorCodeInvalidArgument, "invalid_argument", http.StatusUnprocessableEntity},
		{ErrorCodeValidation, "validation", http.StatusBadRequest},
		{ErrorCodeJSON, "json", http.StatusBadRequest},
		{ErrorCodeNotFound, "not_found", http.StatusNotFound},
		{ErrorCodeDB, "db", http.StatusInternalServerError},
		{ErrorCode(99), "code(99)", http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := c.code.String(); got != c.name {
			t.Errorf("%d.String() = %q, want %q", c.code, got, c.name)
		}
		if got := HTTPStatusCode(c.code); got != c.status {
			t.Errorf("HTTPStatusCode(%s) = %d, want %d", c.name, got, c.status)
		}
	}
}

func TestWrapChain(t *testing.T) {
	cause := stderrs.New("socket closed")
	err := Wrapf(cause, ErrorCodeUnavailable, "catalog read for %q", "HD 1")

	if err.Error() != `catalog read for "HD 1": socket closed` {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !stderrs.Is(err, cause) || Root(err) != cause {
		t.Fatalf("cause lost")
	}
	outer := fmt.Errorf("select: %w", err)
	if CodeOf(outer) != ErrorCodeUnavailable || !IsCode(outer, ErrorCodeUnavailable) {
		t.Fatalf("code lost through fmt wrapping: %v", CodeOf(outer))
	}
	if HTTPStatus(outer) != http.StatusServiceUnavailable {
		t.Fatalf("status = %d", HTTPStatus(outer))
	}
}

func TestWithField(t *testing.T) {
	base := InvalidArgf("samples %d below 2", 1)
	got := WithField(base, "samples")

	e, ok := As(got)
	if !ok || e.Field() != "samples" || e.Code() != ErrorCodeInvalidArgument {
		t.Fatalf("WithField = %#v", got)
	}
	if b, _ := As(base); b.Field() != "" {
		t.Fatalf("WithField mutated the original")
	}

	foreign := stderrs.New("plain")
	if WithField(foreign, "x") != foreign {
		t.Fatalf("foreign errors must pass through")
	}
}

func TestWireFrom(t *testing.T) {
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("nil wire = %+v", w)
	}
	w := WireFrom(WithField(Wrap(stderrs.New("inner"), ErrorCodeValidation, "sy_dist is required"), "sy_dist"))
	if w.Code != ErrorCodeValidation || w.Message != "sy_dist is required" || w.Field != "sy_dist" {
		t.Fatalf("wire = %+v", w)
	}
	w = WireFrom(stderrs.New("boom"))
	if w.Code != ErrorCodeUnknown || w.Message != "boom" {
		t.Fatalf("foreign wire = %+v", w)
	}
}

func TestSugarCodes(t *testing.T) {
	cases := map[ErrorCode]error{
		ErrorCodeNotFound:        NotFoundf("star %s", "x"),
		ErrorCodeInvalidArgument: InvalidArgf("bad"),
		ErrorCodeConflict:        Conflictf("dup"),
		ErrorCodeUnavailable:     Unavailablef("down"),
		ErrorCodeJSON:            JSONErrf("json"),
		ErrorCodePanic:           PanicErrf("panic"),
		ErrorCodeUnknown:         Internalf("broken"),
	}
	for want, err := range cases {
		if CodeOf(err) != want {
			t.Errorf("%v: code %v want %v", err, CodeOf(err), want)
		}
	}
	if HTTPStatus(nil) != http.StatusOK {
		t.Fatalf("nil status")
	}
	if !stderrs.Is(ErrNotFound, ErrNotFound) || CodeOf(ErrNotFound) != ErrorCodeNotFound {
		t.Fatalf("ErrNotFound sentinel")
	}
}

func TestNilError(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil receiver")
	}
	if Root(nil) != nil {
		t.Fatalf("Root(nil)")
	}
}
