// Package http exposes the web surface: the JSON API for chat and upload,
// the session-gated admin pages, and the login flow.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/docuchat/internal/logging"
	"github.com/dmitrijs2005/docuchat/internal/server/config"
	"github.com/dmitrijs2005/docuchat/internal/server/services"
)

// Chatter answers a user message.
type Chatter interface {
	Answer(ctx context.Context, message string) (string, error)
}

// Uploader runs the upload workflow for one incoming file.
type Uploader interface {
	Process(ctx context.Context, fileName string, src io.Reader) (*services.UploadResult, error)
}

type Server struct {
	address         string
	logger          logging.Logger
	chat            Chatter
	upload          Uploader
	adminUsername   string
	adminPassword   string
	sessionSecret   []byte
	sessionValidity time.Duration
}

func NewServer(cfg *config.Config, l logging.Logger, chat Chatter, upload Uploader) (*Server, error) {
	return &Server{
		address:         cfg.EndpointAddrHTTP,
		logger:          l.With("module", "http_server"),
		chat:            chat,
		upload:          upload,
		adminUsername:   cfg.AdminUsername,
		adminPassword:   cfg.AdminPassword,
		sessionSecret:   []byte(cfg.SessionSecret),
		sessionValidity: cfg.SessionValidityDuration,
	}, nil
}

// Routes builds the router: public pages and chat API, login flow, and the
// session-gated upload surface.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndexPage)
	r.Get("/chat", s.handleChatPage)
	r.Get("/login", s.handleLoginPage)
	r.Post("/login", s.handleLogin)
	r.Get("/logout", s.handleLogout)

	r.Post("/api/chat", s.handleChat)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/upload", s.handleUploadPage)
		r.Post("/api/upload", s.handleUpload)
	})

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
