package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/lcalzada-xor/cyberdash/internal/adapters/authclient"
	"github.com/lcalzada-xor/cyberdash/internal/adapters/events"
	"github.com/lcalzada-xor/cyberdash/internal/adapters/feeds"
	"github.com/lcalzada-xor/cyberdash/internal/adapters/fingerprint"
	"github.com/lcalzada-xor/cyberdash/internal/adapters/reporting"
	"github.com/lcalzada-xor/cyberdash/internal/adapters/sessions"
	"github.com/lcalzada-xor/cyberdash/internal/adapters/storage"
	webserver "github.com/lcalzada-xor/cyberdash/internal/adapters/web/server"
	"github.com/lcalzada-xor/cyberdash/internal/config"
	"github.com/lcalzada-xor/cyberdash/internal/core/domain"
	"github.com/lcalzada-xor/cyberdash/internal/core/ports"
	"github.com/lcalzada-xor/cyberdash/internal/core/services/audit"
	"github.com/lcalzada-xor/cyberdash/internal/core/services/auth"
	grpcserver "github.com/lcalzada-xor/cyberdash/internal/core/services/grpc"
	"github.com/lcalzada-xor/cyberdash/internal/core/services/persistence"
	"github.com/lcalzada-xor/cyberdash/internal/core/services/polling"
	"github.com/lcalzada-xor/cyberdash/internal/core/services/refresh"
	reportingService "github.com/lcalzada-xor/cyberdash/internal/core/services/reporting"
	"github.com/lcalzada-xor/cyberdash/internal/core/services/screens"
	"github.com/lcalzada-xor/cyberdash/internal/core/store"
	"github.com/lcalzada-xor/cyberdash/internal/mock"
	"github.com/lcalzada-xor/cyberdash/internal/telemetry"
)

// Default local administrator, provisioned when the local provider starts
// with no such account.
const (
	DefaultAdminEmail    = "admin@cyberdash.local"
	DefaultAdminPassword = "changeit"
)

const sessionSweepInterval = time.Minute

// Application holds the core components of the application and wires them
// together.
type Application struct {
	Config *config.Config

	Store        *store.Store
	Registry     *screens.Registry
	Gate         *auth.Gate
	WebServer    *webserver.Server
	HealthServer *grpcserver.HealthServer

	AuditService       *audit.AuditService
	PersistenceManager *persistence.PersistenceManager
	Publisher          *events.Publisher

	storage       *storage.SQLiteAdapter
	vendors       fingerprint.VendorRepository
	tokens        *auth.MemoryTokens
	localProvider *auth.LocalProvider
	memSessions   *sessions.Memory
	redisClient   *redis.Client
	logger        *slog.Logger
}

// New creates a new Application and bootstraps its components. ctx bounds
// background work started by the servers.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if logger == nil {
		logger = slog.Default()
	}
	app := &Application{
		Config: cfg,
		tokens: &auth.MemoryTokens{},
		logger: logger,
	}

	if err := app.bootstrap(ctx); err != nil {
		app.cleanup()
		return nil, fmt.Errorf("application bootstrap failed: %w", err)
	}
	return app, nil
}

// bootstrap orchestrates the initialization sequence.
func (app *Application) bootstrap(ctx context.Context) error {
	// 1. Foundation & Infrastructure
	telemetry.InitMetrics()

	if err := app.initStorage(); err != nil {
		return err
	}
	app.PersistenceManager = persistence.NewPersistenceManager(app.storage, 10000, app.logger)
	app.AuditService = audit.NewAuditService(app.PersistenceManager)

	app.initVendors(ctx)

	// 2. State & refresh
	app.Store = store.New(store.WithLogger(app.logger))
	tasks, err := app.initSources()
	if err != nil {
		return err
	}
	app.Registry = screens.NewRegistry(tasks, app.Config.FetchTimeout, app.logger)
	for _, s := range screens.Defaults(app.Config.PollInterval) {
		if err := app.Registry.Register(s); err != nil {
			return fmt.Errorf("register screen %s: %w", s.Path, err)
		}
	}

	// 3. Authentication
	provider, err := app.initAuth(ctx)
	if err != nil {
		return err
	}
	app.Gate = auth.NewGate(app.Store, provider, app.tokens,
		auth.WithAudit(app.AuditService),
		auth.WithGateLogger(app.logger),
	)

	// 4. Integration & Servers
	if app.Config.NATSURL != "" {
		pub, err := events.NewPublisher(app.Config.NATSURL, app.logger)
		if err != nil {
			app.logger.Warn("Slice-change events disabled", "error", err)
		} else {
			app.Publisher = pub
		}
	}
	app.initServers(ctx)
	return nil
}

func (app *Application) initStorage() error {
	path := app.Config.DBPath
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("failed to create DB directory: %w", err)
		}
	}
	st, err := storage.NewSQLiteAdapter(path)
	if err != nil {
		return fmt.Errorf("failed to init system storage: %w", err)
	}
	app.storage = st
	return nil
}

// initVendors opens the OUI database, seeded from the bundled registry. A
// database failure degrades to the bundled registry alone.
func (app *Application) initVendors(ctx context.Context) {
	path := app.Config.OUIDBPath
	if path == "" {
		path = ":memory:"
	}
	ouiDB, err := fingerprint.NewOUIDatabase(path, 20000, fingerprint.RegistryVendorRepository{})
	if err != nil {
		app.logger.Warn("Failed to load OUI database, using bundled registry", "error", err)
		app.vendors = fingerprint.RegistryVendorRepository{}
		return
	}
	n, err := ouiDB.SeedIfEmpty(ctx, fingerprint.RegistryEntries())
	if err != nil {
		app.logger.Warn("Failed to seed OUI database", "error", err)
	} else if n > 0 {
		app.logger.Info("Seeded OUI database", "entries", n)
	}
	app.vendors = ouiDB
}

// initSources builds one refresh task per resource: the REST feed when an
// API URL is configured, the mock generator as fallback.
func (app *Application) initSources() (map[string]polling.Task, error) {
	var client *feeds.Client
	if app.Config.APIURL != "" {
		c, err := feeds.NewClient(app.Config.APIURL, feeds.WithBearer(app.tokens.Token))
		if err != nil {
			return nil, fmt.Errorf("feed client: %w", err)
		}
		client = c
	} else {
		app.logger.Info("No API URL configured, serving mock data", "scenario", app.Config.MockScenario)
	}

	gen := mock.NewGenerator(app.Config.MockScenario)
	delay := app.Config.MockDelay

	var devicePrimary ports.Source[domain.NetworkDevice]
	if p := restSource[domain.NetworkDevice](client, screens.ResourceNetwork); p != nil {
		devicePrimary = fingerprint.NewVendorSource(p, app.vendors, app.logger)
	}
	deviceFallback := fingerprint.NewVendorSource(
		mock.NewSource("mock:"+screens.ResourceNetwork, delay, gen.Devices), app.vendors, app.logger)

	return map[string]polling.Task{
		screens.ResourceThreats: refresh.NewLoader(app.Store, refresh.TwoTier[domain.Threat]{
			Resource: screens.ResourceThreats,
			Primary:  restSource[domain.Threat](client, screens.ResourceThreats),
			Fallback: mock.NewSource("mock:"+screens.ResourceThreats, delay, gen.Threats),
		}, app.logger).Refresh,
		screens.ResourceNetwork: refresh.NewLoader(app.Store, refresh.TwoTier[domain.NetworkDevice]{
			Resource: screens.ResourceNetwork,
			Primary:  devicePrimary,
			Fallback: deviceFallback,
		}, app.logger).Refresh,
		screens.ResourceSIEM: refresh.NewLoader(app.Store, refresh.TwoTier[domain.SIEMEvent]{
			Resource: screens.ResourceSIEM,
			Primary:  restSource[domain.SIEMEvent](client, screens.ResourceSIEM),
			Fallback: mock.NewSource("mock:"+screens.ResourceSIEM, delay, gen.Events),
		}, app.logger).Refresh,
		screens.ResourceReports: refresh.NewLoader(app.Store, refresh.TwoTier[domain.Report]{
			Resource: screens.ResourceReports,
			Primary:  restSource[domain.Report](client, screens.ResourceReports),
			Fallback: mock.NewSource("mock:"+screens.ResourceReports, delay, gen.Reports),
		}, app.logger).Refresh,
		screens.ResourceThreatMap: refresh.NewLoader(app.Store, refresh.TwoTier[domain.ThreatLocation]{
			Resource: screens.ResourceThreatMap,
			Primary:  restSource[domain.ThreatLocation](client, screens.ResourceThreatMap),
			Fallback: mock.NewSource("mock:"+screens.ResourceThreatMap, delay, gen.Locations),
		}, app.logger).Refresh,
	}, nil
}

// restSource returns nil, not a typed nil, when no client is configured.
func restSource[T any](client *feeds.Client, resource string) ports.Source[T] {
	if client == nil {
		return nil
	}
	return feeds.NewSource[T](client, resource)
}

func (app *Application) initAuth(ctx context.Context) (ports.AuthProvider, error) {
	mode := app.Config.Auth()
	app.logger.Info("Auth provider selected", "mode", mode)

	switch mode {
	case config.AuthREST:
		if app.Config.APIURL != "" {
			return authclient.NewRESTProvider(app.Config.APIURL, app.logger), nil
		}
		app.logger.Warn("REST auth selected without CYBERDASH_API_URL, sign-in is disabled")
	case config.AuthIdentity:
		if app.Config.IdentityURL != "" && app.Config.IdentityKey != "" {
			return authclient.NewIdentityProvider(app.Config.IdentityURL, app.Config.IdentityKey, app.logger), nil
		}
		app.logger.Warn("Identity auth selected without CYBERDASH_IDP_URL and CYBERDASH_IDP_KEY, sign-in is disabled")
	case config.AuthLocal:
		return app.initLocalAuth(ctx)
	default:
		app.logger.Warn("No auth backend configured, sign-in is disabled")
	}
	return authclient.Placeholder{}, nil
}

func (app *Application) initLocalAuth(ctx context.Context) (ports.AuthProvider, error) {
	var sessionStore ports.SessionStore
	if app.Config.RedisURL != "" {
		rs, client, err := sessions.NewRedis(ctx, app.Config.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("session store: %w", err)
		}
		app.redisClient = client
		sessionStore = rs
	} else {
		app.memSessions = sessions.NewMemory()
		sessionStore = app.memSessions
	}

	svc := auth.NewAuthService(app.storage, sessionStore)
	if err := app.ensureDefaultAdmin(ctx, svc); err != nil {
		app.logger.Warn("Could not ensure default admin", "error", err)
	}
	app.localProvider = auth.NewLocalProvider(svc)
	return app.localProvider, nil
}

func (app *Application) ensureDefaultAdmin(ctx context.Context, svc *auth.AuthService) error {
	_, err := app.storage.GetByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return err
	}
	app.logger.Info("Provisioning default admin user", "email", DefaultAdminEmail)
	_, _, err = svc.Register(ctx, domain.SignupRequest{
		Email:           DefaultAdminEmail,
		Password:        DefaultAdminPassword,
		ConfirmPassword: DefaultAdminPassword,
		Role:            "Administrator",
	})
	return err
}

func (app *Application) initServers(ctx context.Context) {
	deps := webserver.Deps{
		Store:          app.Store,
		Registry:       app.Registry,
		Gate:           app.Gate,
		Audit:          app.AuditService,
		Reports:        reportingService.NewDocumentBuilder(),
		Exporter:       reporting.NewPDFExporter(),
		AllowedOrigins: app.Config.AllowedOrigins,
		RefreshTimeout: app.Config.FetchTimeout,
		AuthRateLimit:  app.Config.AuthRateLimit,
		Logger:         app.logger,
	}
	if app.localProvider != nil {
		deps.LocalAuth = app.localProvider
	}
	app.WebServer = webserver.NewServer(ctx, app.Config.Addr, deps)

	if app.Config.GRPCAddr != "" {
		resources := []string{
			screens.ResourceThreats, screens.ResourceNetwork, screens.ResourceSIEM,
			screens.ResourceReports, screens.ResourceThreatMap,
		}
		app.HealthServer = grpcserver.NewHealthServer(app.Store, resources, app.logger)
	}
}

// Run starts the application components and blocks until ctx is done or a
// server fails.
func (app *Application) Run(ctx context.Context) error {
	app.logger.Info("Starting cyberdash components")

	// Auxiliary loops stop after the servers so the audit log is flushed last.
	auxCtx, stopAux := context.WithCancel(context.WithoutCancel(ctx))
	defer stopAux()

	// 1. Auxiliary Loops
	app.PersistenceManager.Start(auxCtx)
	if app.Publisher != nil {
		detach := app.Publisher.Attach(app.Store)
		defer detach()
	}
	if app.memSessions != nil {
		go app.runSessionSweeper(auxCtx)
	}

	// 2. Restore any session the provider still honours.
	app.Gate.Check(ctx)

	// 3. Servers
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := app.WebServer.Run(gctx); err != nil {
			return fmt.Errorf("web server error: %w", err)
		}
		return nil
	})
	if app.HealthServer != nil {
		g.Go(func() error {
			return app.HealthServer.Run(gctx, app.Config.GRPCAddr)
		})
	}

	app.logger.Info("cyberdash ready", "addr", app.Config.Addr, "grpc", app.Config.GRPCAddr)
	err := g.Wait()

	stopAux()
	select {
	case <-app.PersistenceManager.Done():
	case <-time.After(5 * time.Second):
		app.logger.Warn("Timed out flushing audit log")
	}
	app.cleanup()
	return err
}

func (app *Application) runSessionSweeper(ctx context.Context) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := app.memSessions.Sweep(); n > 0 {
				app.logger.Debug("Expired sessions removed", "count", n)
			}
		}
	}
}

func (app *Application) cleanup() {
	app.logger.Info("Cleaning up resources")

	if app.Publisher != nil {
		app.Publisher.Close()
	}
	if app.redisClient != nil {
		if err := app.redisClient.Close(); err != nil {
			app.logger.Warn("Redis close error", "error", err)
		}
	}
	if app.vendors != nil {
		if err := app.vendors.Close(); err != nil {
			app.logger.Warn("OUI database close error", "error", err)
		}
	}
	if app.storage != nil {
		if err := app.storage.Close(); err != nil {
			app.logger.Warn("Storage close error", "error", err)
		}
	}
}
