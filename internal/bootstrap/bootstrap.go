package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appAuth "github.com/Atharvasurya/punjab-alumni-sih/internal/app/auth"
	appControllers "github.com/Atharvasurya/punjab-alumni-sih/internal/app/controllers"
	appRepos "github.com/Atharvasurya/punjab-alumni-sih/internal/app/repositories"
	appRoutes "github.com/Atharvasurya/punjab-alumni-sih/internal/app/routes"
	appServices "github.com/Atharvasurya/punjab-alumni-sih/internal/app/services"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/config"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/db"
	appMiddleware "github.com/Atharvasurya/punjab-alumni-sih/internal/middleware"
	pkgAuth "github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/auth"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/helpers"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/logger"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/pkg/websocket"
	"github.com/Atharvasurya/punjab-alumni-sih/internal/seed"
)

// DefaultConfigPath is used when no --config flag is given
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Database       *db.Database
	Repos          *appRepos.Repositories
	Sessions       *pkgAuth.SessionService
	SessionStore   pkgAuth.SessionStore
	AuthzService   *appAuth.AuthorizationService
	AuthMiddleware *appMiddleware.AuthMiddleware
	Hub            *websocket.Hub

	AuditRecorder      appServices.AuditRecorder
	AuthService        appServices.AuthService
	UserService        appServices.UserService
	OpportunityService appServices.OpportunityService
	EventService       appServices.EventService
	MessageService     appServices.MessageService
	AdminService       appServices.AdminService

	Controllers appRoutes.Controllers
	Logger      zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Format: logger.Format(strings.ToLower(cfg.Logging.Format)),
	})
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase opens the configured store and loads or seeds the aggregate.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.Database, error) {
	lgr.Info().Str("driver", cfg.Store.Driver).Msg("Opening store...")
	store, err := db.NewStore(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Str("driver", cfg.Store.Driver).Msg("Failed to open store")
		return nil, err
	}

	database, err := db.Open(ctx, store, db.Options{
		Driver:   cfg.Store.Driver,
		Seeder:   seed.FromFile(cfg.Store.SeedPath, lgr),
		FailOpen: cfg.Store.FailOpen,
		Logger:   lgr,
	})
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	lgr.Info().Str("driver", cfg.Store.Driver).Msg("Store ready")
	return database, nil
}

// SetupSessionStore creates the backend that tracks live sessions.
func SetupSessionStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (pkgAuth.SessionStore, error) {
	if cfg.Session.Backend != "redis" {
		return pkgAuth.NewMemorySessionStore(), nil
	}
	r := cfg.Session.Redis
	store, err := pkgAuth.NewRedisSessionStore(ctx, r.Addr, r.Password, r.DB)
	if err != nil {
		lgr.Error().Err(err).Str("addr", r.Addr).Msg("Failed to connect to redis")
		return nil, err
	}
	lgr.Info().Str("addr", r.Addr).Msg("Redis session store connected")
	return store, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, database *db.Database, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Database: database, Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	credentials, err := pkgAuth.NewCredentials(cfg.Auth.Accounts)
	if err != nil {
		return nil, fmt.Errorf("failed to load accounts: %w", err)
	}

	deps.SessionStore, err = SetupSessionStore(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup session store: %w", err)
	}

	ttl := helpers.ParseDuration(cfg.Session.TTL, 7*24*time.Hour)
	deps.Sessions = pkgAuth.NewSessionService(pkgAuth.SessionConfig{
		SecretKey: cfg.Session.Secret,
		TTL:       ttl,
		Issuer:    cfg.Session.Issuer,
	}, deps.SessionStore)

	deps.AuthzService = appAuth.NewAuthorizationService(deps.Sessions)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.AuthzService, cfg.Session.CookieName)
	deps.Hub = websocket.NewHub(logger.Component("websocket"))

	deps.AuditRecorder = appServices.NewAuditRecorder(deps.Repos.AuditLogs, logger.Component("audit"))
	deps.AuthService = appServices.NewAuthService(credentials, deps.Sessions, lgr)
	deps.UserService = appServices.NewUserService(deps.Repos.Users, deps.AuditRecorder, lgr)
	deps.OpportunityService = appServices.NewOpportunityService(deps.Repos.Opportunities, deps.AuditRecorder, lgr)
	deps.EventService = appServices.NewEventService(deps.Repos.Events, deps.AuditRecorder, lgr)
	deps.MessageService = appServices.NewMessageService(deps.Repos.Messages, deps.Hub, lgr)
	deps.AdminService = appServices.NewAdminService(deps.Repos, deps.AuditRecorder, lgr)

	deps.Controllers = appRoutes.Controllers{
		Auth: appControllers.NewAuthController(deps.AuthService, deps.AuthMiddleware, appControllers.CookieConfig{
			Name:     cfg.Session.CookieName,
			MaxAge:   ttl,
			HTTPOnly: cfg.Session.HTTPOnly,
			Secure:   cfg.IsProduction(),
		}, lgr),
		Users:         appControllers.NewUserController(deps.UserService),
		Opportunities: appControllers.NewOpportunityController(deps.OpportunityService),
		Events:        appControllers.NewEventController(deps.EventService),
		Messages:      appControllers.NewMessageController(deps.MessageService),
		Admin:         appControllers.NewAdminController(deps.AdminService),
		Health:        appControllers.NewHealthController(cfg.Store.Driver),
		WebSocket:     websocket.NewHandler(deps.Hub, deps.identity, logger.Component("websocket")),
	}

	return deps, nil
}

func (d *Dependencies) identity(c *gin.Context) (string, bool) {
	principal, ok := appMiddleware.GetPrincipal(c)
	if !ok {
		return "", false
	}
	return principal.Identity(), true
}

// Close releases the session store and the database.
func (d *Dependencies) Close() error {
	var firstErr error
	if closer, ok := d.SessionStore.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			firstErr = err
		}
	}
	if d.Database != nil {
		if err := d.Database.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger(lgr), appMiddleware.Metrics())

	appRoutes.SetupSwagger(router)
	appRoutes.SetupMetrics(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
