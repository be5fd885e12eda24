// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"paydash/internal/core/version"
	"paydash/internal/modkit/httpkit"
	perr "paydash/internal/platform/errors"
	"paydash/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Source is one named dependency the ready probe pings
type Source struct {
	Name string
	Conn any
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Sources     []Source
	// Categories reports the loaded taxonomy size, nil when not wired
	Categories func(stdctx.Context) (categories, titles int)
	// ReadyTimeout bounds the ready probe, zero means two seconds
	ReadyTimeout time.Duration
}

type handlers struct {
	deps Deps
}

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
}

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"paydash-api"`
	Started string `json:"started"  example:"2025-09-03T13:00:00Z"`
	Now     string `json:"now"      example:"2025-09-03T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"payroll"`
	Status string `json:"status" example:"ok"` // ok fail skipped unknown
	Error  string `json:"error,omitempty" example:"unreachable"` // unreachable or timed out
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2025-09-03T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name       string `json:"name"       example:"paydash-api"`
	Started    string `json:"started"    example:"2025-09-03T13:00:00Z"`
	Uptime     int64  `json:"uptime"     example:"300"`
	Categories int    `json:"categories" example:"6"`
	Titles     int    `json:"titles"     example:"40"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 type HealthResponse ok
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		OK:      true,
		Service: h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe pinging every dataset pool
// @Tags Meta
// @Produce json
// @Success 200 type ReadyResponse ok
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	timeout := h.deps.ReadyTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	ctx, cancel := stdctx.WithTimeout(r.Context(), timeout)
	defer cancel()

	// pools are pinged concurrently so one slow source cannot eat the others' budget
	checks := make([]ReadyCheck, len(h.deps.Sources))
	var g errgroup.Group
	for i, s := range h.deps.Sources {
		g.Go(func() error {
			checks[i] = probe(ctx, s)
			return nil
		})
	}
	_ = g.Wait()

	return ReadyResponse{
		Status: overall(checks),
		Checks: checks,
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// probe pings one source, the driver error is logged and only its class is returned
func probe(ctx stdctx.Context, s Source) ReadyCheck {
	if s.Conn == nil {
		return ReadyCheck{Name: s.Name, Status: "skipped"}
	}
	p, ok := s.Conn.(Pinger)
	if !ok {
		return ReadyCheck{Name: s.Name, Status: "unknown"}
	}
	err := p.Ping(ctx)
	if err == nil {
		return ReadyCheck{Name: s.Name, Status: "ok"}
	}
	logger.C(ctx).Warn().Err(err).Str("source", s.Name).Msg("ready check failed")
	reason := "unreachable"
	if perr.IsTimeout(err) {
		reason = "timed out"
	}
	return ReadyCheck{Name: s.Name, Status: "fail", Error: reason}
}

// overall is fail when any check failed, degraded when any is not ok
func overall(checks []ReadyCheck) string {
	status := "ok"
	for _, c := range checks {
		switch {
		case c.Status == "fail":
			return "fail"
		case c.Status != "ok":
			status = "degraded"
		}
	}
	return status
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 type version.BuildInfo ok
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info, uptime and taxonomy size
// @Tags Meta
// @Produce json
// @Success 200 type ServiceResponse ok
// @Router /meta/service [get]
func (h *handlers) service(r *http.Request) (any, error) {
	uptime := time.Since(h.deps.StartedAt)
	out := ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.deps.StartedAt.UTC().Format(time.RFC3339),
		Uptime:  int64(uptime / time.Second),
	}
	if h.deps.Categories != nil {
		out.Categories, out.Titles = h.deps.Categories(r.Context())
	}
	return out, nil
}
