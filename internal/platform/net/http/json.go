package http

import (
	"net/http"

	"paydash/internal/platform/net/http/bind"
)

// QueryHandler binds and validates query parameters into T before calling fn
func QueryHandler[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		in, err := bind.ParseQuery[T](r)
		if err != nil {
			return Error(err)
		}
		return lift(fn(r, in))
	})
}

// JSONHandlerNoBody calls fn without binding anything and wraps the result
func JSONHandlerNoBody(fn func(*http.Request) (any, error)) Handler {
	return Handle(func(r *http.Request) Response {
		return lift(fn(r))
	})
}

// lift turns a handler result into a Response, a returned Response passes through
func lift(out any, err error) Response {
	if err != nil {
		return Error(err)
	}
	if resp, ok := out.(Response); ok {
		return resp
	}
	return OK(out)
}
