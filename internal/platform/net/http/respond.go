// Package http is the JSON over HTTP layer: envelope writing, return style handlers, chi routing and the server
package http

import (
	"encoding/json"
	stdhttp "net/http"

	pnet "refstar/internal/platform/net"
)

// Envelope is the response body of every endpoint
type Envelope = pnet.Wire

// Response is what return style handlers produce, Body is either data or an error
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// OK returns a 200 response carrying data
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error returns a response whose status follows the error code
func Error(err error) Response { return Response{Body: err} }

// Handle adapts a Response returning func to a handler
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

// WriteJSON writes v as application/json with status
func WriteJSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}

	reqID := pnet.RequestID(r.Context())
	if err, ok := resp.Body.(error); ok && err != nil {
		status, env := pnet.Error(err, reqID)
		WriteJSON(w, status, env)
		return
	}
	status, env := pnet.Reply(resp.Status, resp.Body, reqID)
	WriteJSON(w, status, env)
}
