// Package server exposes the avatar editor over HTTP.
//
// Each visitor gets a session cookie; the session holds the avatar being
// edited. Edits go through a [studio.Controller] built from the session, and
// images are produced by the shared [pipeline.Runner], so seeded renders are
// cached like on the command line.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/avatarkit/pkg/pipeline"
	"github.com/matzehuels/avatarkit/pkg/session"
)

const cookieName = "avatarkit_sid"

// Server serves the HTTP API.
type Server struct {
	Runner     *pipeline.Runner
	Sessions   session.Store
	SessionTTL time.Duration
	Logger     *log.Logger

	// SecureCookies marks the session cookie Secure (serve over TLS).
	SecureCookies bool

	// Now stamps download filenames; defaults to time.Now.
	Now func() time.Time
}

// New returns a Server with default TTL and clock.
func New(runner *pipeline.Runner, store session.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Server{
		Runner:     runner,
		Sessions:   store,
		SessionTTL: session.DefaultTTL,
		Logger:     logger,
		Now:        time.Now,
	}
}

// Routes returns the API handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)

		r.Get("/avatar", s.handleGetAvatar)
		r.Put("/avatar", s.handlePutAvatar)
		r.Put("/avatar/{slot}", s.handleSetSlot)
		r.Post("/avatar/randomize", s.handleRandomize)
		r.Post("/avatar/reset", s.handleReset)
		r.Get("/avatar.png", s.handleAvatarPNG)
		r.Get("/avatar.svg", s.handleAvatarSVG)

		r.Get("/render.{format}", s.handleRender)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. Expired sessions are swept every sweep interval.
func (s *Server) ListenAndServe(ctx context.Context, addr string, sweep time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.sweepSessions(ctx, sweep)

	errc := make(chan error, 1)
	go func() {
		s.Logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) sweepSessions(ctx context.Context, every time.Duration) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.Sessions.Cleanup(ctx); err != nil {
				s.Logger.Warn("session cleanup failed", "err", err)
			}
		}
	}
}
