// Package bind decodes and validates JSON request bodies
package bind

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	perr "refstar/internal/platform/errors"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// MaxBody caps how much of a request body is read
const MaxBody = 1 << 20

type validation struct {
	v     *validator.Validate
	trans ut.Translator
}

var (
	once sync.Once
	val  validation
)

func get() validation {
	once.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		// terser than the stock translations
		short(v, trans, "required", "{0} is required")
		short(v, trans, "min", "{0} must be at least {1}")
		short(v, trans, "max", "{0} must be at most {1}")

		val = validation{v: v, trans: trans}
	})
	return val
}

// jsonName reports fields by their json key so messages match the request body
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "", "-":
		return f.Name
	}
	return name
}

func short(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// ParseJSON decodes the body into T and validates it
// decode failures are ErrorCodeJSON, rule failures ErrorCodeValidation naming the field
func ParseJSON[T any](r *http.Request) (T, error) {
	var out T
	defer func() { _ = r.Body.Close() }()

	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		var zero T
		if errors.Is(err, io.EOF) {
			return zero, perr.JSONErrf("empty body")
		}
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		var zero T
		return zero, perr.JSONErrf("unexpected trailing data")
	}

	if err := Validate(out); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// Validate runs the validate tags of v, the first failing field becomes the error
func Validate(v any) error {
	err := get().v.Struct(v)
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) || len(fields) == 0 {
		return perr.Wrap(err, perr.ErrorCodeValidation, "validation error")
	}
	fe := fields[0]
	return perr.WithField(perr.New(perr.ErrorCodeValidation, fe.Translate(get().trans)), fe.Field())
}
