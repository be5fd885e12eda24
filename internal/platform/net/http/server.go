package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"paydash/internal/platform/config"
	perr "paydash/internal/platform/errors"
	"paydash/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

// Server owns the chi mux and the listening http.Server
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
}

// NewServer builds a server from API_PORT, READ_TIMEOUT, WRITE_TIMEOUT and IDLE_TIMEOUT under cfg
// unknown routes and methods answer with the JSON error envelope
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	m := chi.NewRouter()
	m.NotFound(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		RespondError(w, r, perr.NotFoundf("no route for %s", r.URL.Path))
	})
	m.MethodNotAllowed(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		RespondError(w, r, perr.NotFoundf("%s is not served on %s", r.Method, r.URL.Path))
	})
	for _, o := range opts {
		o(m)
	}

	addr := cfg.MayString("API_PORT", ":4000")
	return &Server{
		addr: addr,
		mux:  m,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           m,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       cfg.MayDuration("READ_TIMEOUT", 15*time.Second),
			// listings may run up to the query timeout, keep writes above it
			WriteTimeout: cfg.MayDuration("WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:  cfg.MayDuration("IDLE_TIMEOUT", 2*time.Minute),
		},
	}
}

// Router returns the mux behind the Router seam
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr returns the configured listen address
func (s *Server) Addr() string { return s.addr }

// Serve listens until ctx is done, then drains in flight requests for up to grace
// a clean shutdown returns nil
func (s *Server) Serve(ctx context.Context, grace time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Named("http").Info().Str("addr", s.addr).Msg("http listening")
		if err := s.srv.ListenAndServe(); !errors.Is(err, stdhttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), grace)
		defer cancel()
		return s.srv.Shutdown(sctx)
	})
	return g.Wait()
}
