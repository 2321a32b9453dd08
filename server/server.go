package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/roblaing/ggp-go-player/server/middle"
)

// Router builds the HTTP router for s: the GGP wire endpoint at "/",
// and, if an admin secret is configured, the "/debug/match",
// "/debug/graph", and "/debug/history" introspection routes behind
// bearer-token auth.
func (s *Server) Router() http.Handler {
	a := s.API()

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Post("/", a.HTTPWireMessage())
	r.Options("/", a.HTTPWireMessage())

	if s.cfg.AdminSecretHash != nil {
		r.Route("/debug", func(dr chi.Router) {
			dr.Use(chiMiddleware(middle.RequireAdmin(s.cfg.AdminSecretHash, s.cfg.UnauthDelay())))
			dr.Get("/match", a.HTTPDebugMatch())
			dr.Get("/graph", a.HTTPDebugGraph())
			dr.Get("/history", a.HTTPDebugHistory())
		})
	}

	return r
}

func chiMiddleware(m middle.Middleware) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return m(next)
	}
}

// ListenAndServe starts the HTTP server and blocks until it exits.
func (s *Server) ListenAndServe() error {
	return s.ListenAndServeContext(context.Background())
}

// ListenAndServeContext starts the HTTP server and blocks until either it
// fails or ctx is canceled, in which case it shuts down gracefully,
// letting in-flight requests finish before returning. Cancel ctx on
// SIGINT to get a clean shutdown with a nil error.
func (s *Server) ListenAndServeContext(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.ListenAddress,
		Handler:      s.Router(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
