package internal

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	token_adapter "github.com/keertiraj-bot/realstate/internal/adapters/jwt"
	logger_adapter "github.com/keertiraj-bot/realstate/internal/adapters/logger"
	"github.com/keertiraj-bot/realstate/internal/adapters/memory"
	postgres_adapter "github.com/keertiraj-bot/realstate/internal/adapters/postgres"
	rabbitmq_adapter "github.com/keertiraj-bot/realstate/internal/adapters/rabbitmq"
	redis_adapter "github.com/keertiraj-bot/realstate/internal/adapters/redis"
	"github.com/keertiraj-bot/realstate/internal/adapters/rest"
	"github.com/keertiraj-bot/realstate/internal/configs"
	"github.com/keertiraj-bot/realstate/internal/constants"
	"github.com/keertiraj-bot/realstate/internal/contextkeys"
	"github.com/keertiraj-bot/realstate/internal/core/domain"
	"github.com/keertiraj-bot/realstate/internal/core/port"
	"github.com/keertiraj-bot/realstate/internal/core/usecase"
	fluentlogger "github.com/keertiraj-bot/realstate/pkg/fluent_logger"
	"github.com/keertiraj-bot/realstate/pkg/postgres"
	"github.com/keertiraj-bot/realstate/pkg/rabbitmq/rabbitmq_common"
	"github.com/keertiraj-bot/realstate/pkg/rabbitmq/rabbitmq_producer"
	redis_client "github.com/keertiraj-bot/realstate/pkg/redis"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 15 * time.Second

// App holds every long-lived resource of the service.
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	redisClient  *redis.Client
	connManager  *rabbitmq_common.ConnectionManager
	leadProducer *rabbitmq_producer.Publisher
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort
}

// stores groups the persistence ports the use cases depend on.
type stores struct {
	properties port.PropertyStoragePort
	leads      port.LeadRepositoryPort
	users      port.UserRepositoryPort
}

// NewApp is the composition root: it loads configuration and wires adapters into use cases.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	app := &App{config: appConfig}

	baseLogger, err := app.initLoggers()
	if err != nil {
		return nil, err
	}
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	app.logger = appLogger

	ctx := contextkeys.ContextWithLogger(context.Background(), baseLogger)

	st, err := app.initStores(ctx, baseLogger)
	if err != nil {
		app.closeResources()
		return nil, err
	}

	var listingCache port.ListingCachePort
	if appConfig.Redis.Enabled {
		cache, err := app.initListingCache(ctx)
		if err != nil {
			app.closeResources()
			return nil, err
		}
		listingCache = cache
	}

	var leadEvents port.LeadEventsPort
	if appConfig.RabbitMQ.Enabled {
		publisher, err := app.initLeadEvents(baseLogger)
		if err != nil {
			app.closeResources()
			return nil, err
		}
		leadEvents = publisher
	}

	tokenService, err := token_adapter.NewTokenService(appConfig.Auth.JWTSecret)
	if err != nil {
		app.closeResources()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}
	markerService, err := token_adapter.NewMarkerService(appConfig.Leads.MarkerSecret)
	if err != nil {
		app.closeResources()
		return nil, fmt.Errorf("failed to create marker service: %w", err)
	}

	if appConfig.Auth.AdminEmail != "" {
		ensureAdminUC := usecase.NewEnsureAdminUseCase(st.users)
		if err := ensureAdminUC.Execute(ctx, appConfig.Auth.AdminEmail, appConfig.Auth.AdminPassword); err != nil {
			appLogger.Error("Failed to bootstrap admin account", err, nil)
			app.closeResources()
			return nil, fmt.Errorf("failed to bootstrap admin account: %w", err)
		}
	}

	leadCfg := usecase.LeadSubmissionConfig{
		DemoMode:        appConfig.IsDemo(),
		StrictPhone:     appConfig.Leads.StrictPhone,
		MarkerWindow:    appConfig.Leads.MarkerTTL,
		DuplicateWindow: appConfig.Leads.DuplicateWindow,
	}

	findPropertiesUC := usecase.NewFindPropertiesUseCase(st.properties, listingCache, appConfig.Catalog.SampleFallback)
	featuredUC := usecase.NewGetFeaturedPropertiesUseCase(st.properties, appConfig.Catalog.SampleFallback)
	detailsUC := usecase.NewGetPropertyDetailsUseCase(st.properties, appConfig.Catalog.SampleFallback)
	submitEnquiryUC := usecase.NewSubmitEnquiryUseCase(st.leads, st.properties, leadEvents, leadCfg)
	submitContactUC := usecase.NewSubmitContactUseCase(st.leads, leadEvents, leadCfg)
	loginUC := usecase.NewLoginUserUseCase(st.users, tokenService, appConfig.Auth.JWTTTL)
	validateTokenUC := usecase.NewValidateTokenUseCase(tokenService)
	dashboardUC := usecase.NewGetDashboardUseCase(st.properties, st.leads)
	managePropertiesUC := usecase.NewManagePropertiesUseCase(st.properties, listingCache, appConfig.Catalog.SlugMaxAttempts)
	listLeadsUC := usecase.NewListLeadsUseCase(st.leads)
	leadStatusUC := usecase.NewUpdateLeadStatusUseCase(st.leads)
	appLogger.Info("All use cases initialized.", nil)

	cookies := rest.CookieConfig{
		Secure:     appConfig.Rest.CookieSecure,
		SessionTTL: appConfig.Auth.JWTTTL,
		MarkerTTL:  appConfig.Leads.MarkerTTL,
	}

	router := rest.NewRouter(
		rest.ServerConfig{
			Port:               appConfig.Rest.PORT,
			CORSAllowedOrigins: appConfig.Rest.CORSAllowedOrigins,
			Mode:               appConfig.Mode,
		},
		rest.NewPropertyHandler(findPropertiesUC, featuredUC, detailsUC),
		rest.NewEnquiryHandler(submitEnquiryUC, submitContactUC, markerService, cookies),
		rest.NewAdminHandler(loginUC, validateTokenUC, dashboardUC, managePropertiesUC, listLeadsUC, leadStatusUC, cookies),
		validateTokenUC,
		app.healthCheck(),
		baseLogger,
	)
	app.apiServer = rest.NewServer(appConfig.Rest.PORT, router, baseLogger)
	appLogger.Info("REST API server configured.", port.Fields{"mode": appConfig.Mode})

	return app, nil
}

func (a *App) initLoggers() (port.LoggerPort, error) {
	cfg := a.config
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(cfg.StdoutLogger.Level),
		IsJSON:   cfg.Mode == configs.ModeProduction,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	if cfg.FluentBit.Enabled {
		fluentClient, err := fluentlogger.NewClient(fluentlogger.Config{
			Host:      cfg.FluentBit.Host,
			Port:      cfg.FluentBit.Port,
			TagPrefix: cfg.AppName,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, parseLogLevel(cfg.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		a.fluentClient = fluentClient
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": cfg.AppName})
	baseLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": cfg.FluentBit.Enabled,
	})
	return baseLogger, nil
}

// initStores picks in-memory stores in demo mode and PostgreSQL otherwise.
func (a *App) initStores(ctx context.Context, baseLogger port.LoggerPort) (*stores, error) {
	cfg := a.config
	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})

	if cfg.IsDemo() {
		appLogger.Warn("Running in demo mode: data lives in memory and leads are not persisted", nil)
		return &stores{
			properties: memory.NewPropertyStorage(domain.SampleCatalog()),
			leads:      memory.NewLeadRepository(),
			users:      memory.NewUserRepository(),
		}, nil
	}

	dbPool, err := postgres.NewClient(ctx, postgres.Config{
		DatabaseURL: cfg.Postgres.DatabaseURL,
		MaxConns:    int32(cfg.Postgres.MaxConns),
	})
	if err != nil {
		appLogger.Error("Failed to connect to PostgreSQL", err, nil)
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	a.dbPool = dbPool
	appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

	if cfg.Postgres.ApplySchema {
		if err := postgres_adapter.ApplySchema(ctx, dbPool, baseLogger.WithFields(port.Fields{"component": "schema"})); err != nil {
			return nil, fmt.Errorf("failed to apply database schema: %w", err)
		}
	}

	properties, err := postgres_adapter.NewPostgresPropertyStorage(dbPool)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres property storage: %w", err)
	}
	leads, err := postgres_adapter.NewPostgresLeadRepository(dbPool)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres lead repository: %w", err)
	}
	users, err := postgres_adapter.NewUserRepository(dbPool)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres user repository: %w", err)
	}
	appLogger.Info("Postgres storage adapters initialized.", nil)

	return &stores{properties: properties, leads: leads, users: users}, nil
}

func (a *App) initListingCache(ctx context.Context) (*redis_adapter.ListingCache, error) {
	cfg := a.config
	client, err := redis_client.NewClient(ctx, redis_client.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		a.logger.Error("Failed to connect to Redis", err, nil)
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	a.redisClient = client

	cache, err := redis_adapter.NewListingCache(client, cfg.Redis.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create listing cache: %w", err)
	}
	a.logger.Info("Redis listing cache initialized.", port.Fields{"ttl": cfg.Redis.CacheTTL.String()})
	return cache, nil
}

func (a *App) initLeadEvents(baseLogger port.LoggerPort) (*rabbitmq_adapter.LeadEventsPublisher, error) {
	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
	connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}, connManagerBridge)
	if err != nil {
		a.logger.Error("Failed to create connection manager", err, nil)
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.connManager = connManager
	a.logger.Info("RabbitMQ Connection Manager initialized.", nil)

	producer, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
		ExchangeName:             constants.LeadEventsExchange,
		ExchangeType:             "topic",
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,
		Logger:                   rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
	}, connManager)
	if err != nil {
		a.logger.Error("Failed to create event producer", err, nil)
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	a.leadProducer = producer

	publisher, err := rabbitmq_adapter.NewLeadEventsPublisher(producer, constants.RoutingKeyLeadSubmitted)
	if err != nil {
		return nil, fmt.Errorf("failed to create lead events publisher: %w", err)
	}
	a.logger.Info("RabbitMQ lead events publisher initialized.", nil)
	return publisher, nil
}

// healthCheck pings the backing stores. Demo mode has nothing to ping.
func (a *App) healthCheck() rest.HealthCheck {
	if a.dbPool == nil && a.redisClient == nil {
		return nil
	}
	return func(ctx context.Context) error {
		if a.dbPool != nil {
			if err := a.dbPool.Ping(ctx); err != nil {
				return fmt.Errorf("postgres: %w", err)
			}
		}
		if a.redisClient != nil {
			if err := a.redisClient.Ping(ctx).Err(); err != nil {
				return fmt.Errorf("redis: %w", err)
			}
		}
		return nil
	}
}

// Run serves HTTP until a signal arrives or the server fails, then shuts down.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	defer cancelApp()

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.apiServer.Stop(shutdownCtx); err != nil {
			a.logger.Error("Error during API server shutdown", err, nil)
		}

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		a.closeResources()
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
		runErr = err
	case <-appCtx.Done():
		a.logger.Warn("Context was cancelled unexpectedly, shutting down...", nil)
	}

	return runErr
}

// closeResources releases whatever NewApp managed to open. Safe on a partial App.
func (a *App) closeResources() {
	if a.leadProducer != nil {
		if err := a.leadProducer.Close(); err != nil {
			a.logger.Error("Error closing event producer", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection manager", err, nil)
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error("Error closing Redis client", err, nil)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent may already be gone, so report on stdout
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}

func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
