// Package http provides helpers for writing JSON responses with a consistent envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "paydash/internal/platform/errors"
	"paydash/internal/platform/logger"
	pnet "paydash/internal/platform/net"
)

// Envelope is the standard response body for all endpoints
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Success    bool           `json:"success"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	Field      string         `json:"field,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data"`
	Pagination *Pagination    `json:"pagination,omitempty"`
	Warnings   any            `json:"warnings,omitempty"`
}

// Pagination describes one page of a listing
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// Result lets a return-style handler lift pagination and warnings into the envelope
type Result struct {
	Data       any
	Pagination *Pagination
	Warnings   any
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Named("http").Warn().Err(err).Msg("response encode failed")
	}
}

// RespondOK writes a 200 envelope with data
func RespondOK(w stdhttp.ResponseWriter, r *stdhttp.Request, data any) {
	OK(data).write(w, r)
}

// RespondError maps a project error into an envelope and writes it
func RespondError(w stdhttp.ResponseWriter, r *stdhttp.Request, err error) {
	Error(err).write(w, r)
}

// Response is a functional response object for return-style handlers
type Response struct {
	Status int
	Body   any
	Header stdhttp.Header
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		h(r).write(w, r)
	}
}

func (resp Response) write(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	for k, vv := range resp.Header {
		for _, v := range vv {
			w.Header().Add(k, v)
		}
	}
	reqID := pnet.RequestID(r.Context())

	// an error body decides the status itself
	if err, ok := resp.Body.(error); ok && err != nil {
		status = perr.HTTPStatus(err)
		wr := perr.WireFrom(err)
		log := logger.C(r.Context())
		evt := log.Warn()
		if status >= stdhttp.StatusInternalServerError {
			evt = log.Error()
		}
		evt.Err(err).Str("code", wr.Code.String()).Str("path", r.URL.Path).Msg("request failed")
		JSON(w, status, Envelope{
			StatusCode: status,
			Status:     stdhttp.StatusText(status),
			Code:       wr.Code,
			Error:      wr.Message,
			Field:      wr.Field,
			RequestID:  reqID,
		})
		return
	}

	env := Envelope{
		StatusCode: status,
		Status:     stdhttp.StatusText(status),
		Success:    true,
		RequestID:  reqID,
		Data:       resp.Body,
	}
	switch res := resp.Body.(type) {
	case Result:
		env.Data, env.Pagination, env.Warnings = res.Data, res.Pagination, res.Warnings
	case *Result:
		if res != nil {
			env.Data, env.Pagination, env.Warnings = res.Data, res.Pagination, res.Warnings
		}
	}
	JSON(w, status, env)
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }

// Paged returns a 200 response carrying pagination and warnings next to data
func Paged(data any, p Pagination, warnings any) Response {
	return OK(Result{Data: data, Pagination: &p, Warnings: warnings})
}
