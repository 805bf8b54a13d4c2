package http

import (
	"net/http"

	"refstar/internal/platform/net/http/bind"
)

// JSONHandler binds and validates a T body, then envelopes fn's result or error
func JSONHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		return reply(fn(r, in))
	})
}

// NoBody envelopes the result of a handler that reads nothing from the body
func NoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response { return reply(fn(r)) })
}

func reply(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
