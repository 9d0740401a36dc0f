package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/lcalzada-xor/cyberdash/internal/adapters/web/handlers"
	"github.com/lcalzada-xor/cyberdash/internal/adapters/web/middleware"
	web "github.com/lcalzada-xor/cyberdash/internal/adapters/web/websocket"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
	"github.com/lcalzada-xor/cyberdash/internal/core/services/auth"
	"github.com/lcalzada-xor/cyberdash/internal/core/services/reporting"
	"github.com/lcalzada-xor/cyberdash/internal/core/services/screens"
	"github.com/lcalzada-xor/cyberdash/internal/core/store"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Deps are the collaborators the HTTP surface is built from.
type Deps struct {
	Store    *store.Store
	Registry *screens.Registry
	Gate     *auth.Gate
	// LocalAuth, when set, is also served under /api/auth with the REST
	// provider contract.
	LocalAuth ports.AuthProvider
	Audit     ports.AuditService
	Reports   *reporting.DocumentBuilder
	Exporter  handlers.Exporter

	AllowedOrigins []string
	RefreshTimeout time.Duration
	// AuthRateLimit caps login and signup attempts per client per minute.
	AuthRateLimit int
	Logger        *slog.Logger
}

// Server handles HTTP and WebSocket connections.
type Server struct {
	Addr      string
	WSManager *web.WSManager

	SessionHandler *handlers.SessionHandler
	AuthHandler    *handlers.AuthHandler
	StateHandler   *handlers.StateHandler
	ActionHandler  *handlers.ActionHandler
	RefreshHandler *handlers.RefreshHandler
	ReportHandler  *handlers.ReportHandler
	ExportHandler  *handlers.ExportHandler
	AuditHandler   *handlers.AuditHandler

	store          *store.Store
	allowedOrigins []string
	authLimiter    *middleware.RateLimiter
	logger         *slog.Logger
	handler        http.Handler
	srv            *http.Server
}

// NewServer creates a new web server. ctx bounds the background work of the
// server: rate limiter sweeps and screen pollers started by WebSocket clients.
func NewServer(ctx context.Context, addr string, d Deps) *Server {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if d.AuthRateLimit <= 0 {
		d.AuthRateLimit = 5
	}

	s := &Server{
		Addr:      addr,
		WSManager: web.NewWSManager(ctx, d.Store, d.Registry, d.AllowedOrigins, logger),

		SessionHandler: handlers.NewSessionHandler(d.Gate, d.Store),
		StateHandler:   handlers.NewStateHandler(d.Store, d.Registry),
		ActionHandler:  handlers.NewActionHandler(d.Store, d.Audit, logger),
		RefreshHandler: handlers.NewRefreshHandler(d.Store, d.Registry, d.RefreshTimeout, d.Audit, logger),
		ReportHandler:  handlers.NewReportHandler(d.Store, d.Reports, d.Exporter, d.Audit, logger),
		ExportHandler:  handlers.NewExportHandler(d.Store, d.Audit, logger),
		AuditHandler:   handlers.NewAuditHandler(d.Audit, logger),

		store:          d.Store,
		allowedOrigins: d.AllowedOrigins,
		authLimiter:    middleware.NewRateLimiter(ctx, d.AuthRateLimit, time.Minute),
		logger:         logger.With("component", "web"),
	}
	if d.LocalAuth != nil {
		s.AuthHandler = handlers.NewAuthHandler(d.LocalAuth)
	}
	s.handler = otelhttp.NewHandler(SetupRoutes(s), "cyberdash-server")
	return s
}

// Handler returns the fully wired, instrumented handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              s.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info("Web server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		// Hijacked WebSocket connections are not tracked by Shutdown.
		if err := s.WSManager.Close(); err != nil {
			s.logger.Warn("WebSocket close error", "error", err)
		}
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Web server shutdown error", "error", err)
		}
	}()

	s.logger.Info("Web server listening", "addr", s.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
