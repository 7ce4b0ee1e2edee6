package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/portaladmin/internal/app/controllers"
	appMigrations "github.com/yigit/portaladmin/internal/app/migrations"
	"github.com/yigit/portaladmin/internal/app/models"
	appRepos "github.com/yigit/portaladmin/internal/app/repositories"
	appRoutes "github.com/yigit/portaladmin/internal/app/routes"
	appServices "github.com/yigit/portaladmin/internal/app/services"
	"github.com/yigit/portaladmin/internal/app/session"
	"github.com/yigit/portaladmin/internal/app/views"
	"github.com/yigit/portaladmin/internal/app/workspace"
	"github.com/yigit/portaladmin/internal/config"
	"github.com/yigit/portaladmin/internal/db"
	appMiddleware "github.com/yigit/portaladmin/internal/middleware"
	"github.com/yigit/portaladmin/internal/pkg/docstore"
	"github.com/yigit/portaladmin/internal/pkg/logger"
	"github.com/yigit/portaladmin/internal/pkg/metrics"
	"github.com/yigit/portaladmin/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store                  docstore.Store
	Services               *appServices.Services
	Sessions               *session.Manager
	AuthMiddleware         *appMiddleware.AuthMiddleware
	AuthController         *appControllers.AuthController
	UserController         *appControllers.UserController
	CourseController       *appControllers.CourseController
	AnnouncementController *appControllers.AnnouncementController
	HealthController       *appControllers.HealthController
	Pages                  *views.ViewController
	Registry               *prometheus.Registry
	Metrics                *metrics.Collector
	Logger                 zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// CONFIG_PATH overrides the default configs/config.yaml.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured document store. The postgres backend is
// migrated before use.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (docstore.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.Timeout)
	defer cancel()

	lgr.Info().Str("driver", cfg.Store.Driver).Msg("Opening document store...")
	switch cfg.Store.Driver {
	case config.StoreMemory:
		return docstore.NewMemoryStore(), nil

	case config.StoreFirestore:
		store, err := docstore.NewFirestoreStore(ctx, docstore.FirestoreConfig{
			ProjectID:       cfg.Firestore.ProjectID,
			CredentialsFile: cfg.Firestore.CredentialsFile,
		})
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to open firestore")
			return nil, err
		}
		return store, nil

	case config.StoreMongo:
		store, err := docstore.NewMongoStore(ctx, docstore.MongoConfig{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to open mongo")
			return nil, err
		}
		return store, nil

	case config.StorePostgres:
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, err
		}
		lgr.Info().Msg("Running database migrations...")
		if err := appMigrations.NewMigrator(database).Migrate(ctx); err != nil {
			database.Close()
			lgr.Error().Err(err).Msg("Database migration error")
			return nil, fmt.Errorf("database migrations failed: %w", err)
		}
		return database.DocumentStore(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

// BuildDependencies initializes repositories, services, sessions and handlers.
func BuildDependencies(cfg *config.Config, store docstore.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	roster, err := models.LoadRoster(cfg.Roster.Path)
	if err != nil {
		lgr.Error().Err(err).Str("path", cfg.Roster.Path).Msg("Failed to load roster")
		return nil, err
	}
	lgr.Info().Int("entries", len(roster)).Msg("Roster loaded")

	deps.Store = store
	if cfg.Metrics.Enabled {
		deps.Registry = prometheus.NewRegistry()
		deps.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		deps.Metrics = metrics.NewCollector(deps.Registry, func() int { return deps.Sessions.Count() })
		deps.Store = docstore.Observe(store, deps.Metrics)
	}

	deps.Services = appServices.NewServices(appRepos.NewRepositories(deps.Store), roster, nil)

	deps.Sessions = session.NewManager(func(identity models.RosterEntry) *workspace.Workspace {
		return workspace.New(deps.Services, identity, cfg.Store.Timeout)
	})
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Sessions, cfg.Session.CookieName, cfg.Session.Secure)

	deps.AuthController = appControllers.NewAuthController(deps.Services.Auth, deps.AuthMiddleware, lgr)
	deps.UserController = appControllers.NewUserController(deps.Services.Users)
	deps.CourseController = appControllers.NewCourseController(deps.Services.Courses, deps.Services.Lectures)
	deps.AnnouncementController = appControllers.NewAnnouncementController(deps.Services.Announcements)
	deps.HealthController = appControllers.NewHealthController(cfg.Store.Driver)
	deps.Pages = views.NewViewController(deps.Services, deps.AuthMiddleware, lgr)

	if cfg.Seed.Enabled && cfg.Store.Driver == config.StoreMemory {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Store.Timeout)
		defer cancel()
		if err := seed.CreateDefaultData(ctx, deps.Store, deps.Services, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestLogger())
	if deps.Metrics != nil {
		router.Use(appMiddleware.Metrics(deps.Metrics))
		router.GET(cfg.Metrics.Path, gin.WrapH(metrics.Handler(deps.Registry)))
	}

	tmpl, err := views.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.UserController,
		deps.CourseController,
		deps.AnnouncementController,
		deps.HealthController,
		deps.AuthMiddleware,
	)
	appRoutes.SetupPages(router, deps.Pages, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router, nil
}
