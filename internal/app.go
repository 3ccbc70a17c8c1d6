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
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"

	logger_adapter "github.com/vgayam/proconnect-backend/internal/adapters/logger"
	"github.com/vgayam/proconnect-backend/internal/adapters/memory"
	postgres_adapter "github.com/vgayam/proconnect-backend/internal/adapters/postgres"
	rabbitmq_adapter "github.com/vgayam/proconnect-backend/internal/adapters/rabbitmq"
	"github.com/vgayam/proconnect-backend/internal/adapters/rest"
	"github.com/vgayam/proconnect-backend/internal/configs"
	"github.com/vgayam/proconnect-backend/internal/constants"
	"github.com/vgayam/proconnect-backend/internal/contextkeys"
	"github.com/vgayam/proconnect-backend/internal/core/domain"
	"github.com/vgayam/proconnect-backend/internal/core/port"
	"github.com/vgayam/proconnect-backend/internal/core/usecase"
	fluentlogger "github.com/vgayam/proconnect-backend/pkg/fluent_logger"
	"github.com/vgayam/proconnect-backend/pkg/postgres"
	"github.com/vgayam/proconnect-backend/pkg/rabbitmq/rabbitmq_common"
	"github.com/vgayam/proconnect-backend/pkg/rabbitmq/rabbitmq_producer"
)

const shutdownTimeout = 10 * time.Second

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort

	connManager    *rabbitmq_common.ConnectionManager
	eventsProducer *rabbitmq_producer.Publisher

	searchUseCase *usecase.SearchProfessionalsUseCase
}

// storages - реализации портов хранилища выбранного бэкенда
type storages struct {
	search       port.ProfessionalSearchPort
	facets       port.FacetRepositoryPort
	info         port.ProfessionalInfoPort
	dictionaries port.DictionaryRepositoryPort
}

// NewApp создает новый экземпляр приложения.
// Это "Composition Root", где все зависимости создаются и связываются.
func NewApp(envPath ...string) (*App, error) {
	appConfig, err := configs.LoadConfig(envPath...)
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	app := &App{config: appConfig}

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	baseLogger, err := app.initLoggers()
	if err != nil {
		return nil, err
	}

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	app.logger = appLogger

	// --- 2. ХРАНИЛИЩЕ ---
	stores, err := app.initStorage(appLogger)
	if err != nil {
		app.Close()
		return nil, err
	}

	// --- 3. ИСХОДЯЩИЕ СОБЫТИЯ ---
	events, err := app.initSearchEvents(baseLogger)
	if err != nil {
		app.Close()
		return nil, err
	}
	appLogger.Info("All outgoing adapters initialized.", nil)

	// ИНИЦИАЛИЗАЦИЯ USE CASES (ядра бизнес-логики)
	searchUseCase := usecase.NewSearchProfessionalsUseCase(stores.search, stores.facets, events)
	getByIDUseCase := usecase.NewGetProfessionalByIDUseCase(stores.info)
	getBySlugUseCase := usecase.NewGetProfessionalBySlugUseCase(stores.info)
	getCitiesUseCase := usecase.NewGetDistinctCitiesUseCase(stores.info)
	facetsUseCase := usecase.NewFacetAggregator(stores.facets)
	dictionariesUseCase := usecase.NewGetDictionariesUseCase(stores.dictionaries)
	app.searchUseCase = searchUseCase

	appLogger.Info("All use cases initialized.", nil)

	// REST API Server
	professionalHandlers := rest.NewProfessionalHandler(searchUseCase, getByIDUseCase, getBySlugUseCase, getCitiesUseCase, facetsUseCase)
	dictionaryHandlers := rest.NewDictionaryHandler(dictionariesUseCase)

	app.apiServer = rest.NewServer(rest.ServerConfig{
		Port:         appConfig.Rest.PORT,
		ReadTimeout:  appConfig.Rest.ReadTimeout,
		WriteTimeout: appConfig.Rest.WriteTimeout,

		AllowedOrigins: appConfig.Rest.AllowedOrigins,
	}, professionalHandlers, dictionaryHandlers, baseLogger)
	appLogger.Info("REST API server configured.", nil)

	return app, nil
}

func (a *App) initLoggers() (port.LoggerPort, error) {
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    parseLogLevel(a.config.StdoutLogger.Level),
		IsJSON:   a.config.StdoutLogger.IsJSON,
		UseColor: !a.config.StdoutLogger.IsJSON,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	// Добавляем Fluent Bit логгер, если он включен в конфигурации
	if a.config.FluentBit.Enabled {
		fluentClient, err := fluentlogger.NewClient(fluentlogger.Config{
			Host:      a.config.FluentBit.Host,
			Port:      a.config.FluentBit.Port,
			TagPrefix: a.config.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}
		a.fluentClient = fluentClient

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, a.config.AppName, parseLogLevel(a.config.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)
	}

	// Создаем наш композитный логгер
	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	baseLogger := multiLogger.WithFields(port.Fields{"service_name": a.config.AppName})
	baseLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": a.config.FluentBit.Enabled,
	})
	return baseLogger, nil
}

func (a *App) initStorage(appLogger port.LoggerPort) (*storages, error) {
	switch a.config.StorageBackend {
	case configs.StorageBackendMemory:
		store, err := memory.LoadSeedFile(a.config.Memory.SeedPath)
		if err != nil {
			appLogger.Error("Failed to load in-memory seed", err, port.Fields{"seed_path": a.config.Memory.SeedPath})
			return nil, fmt.Errorf("failed to load in-memory seed: %w", err)
		}
		appLogger.Info("In-memory storage initialized.", port.Fields{"seed_path": a.config.Memory.SeedPath})
		return &storages{search: store, facets: store, info: store, dictionaries: store}, nil

	default:
		dbPool, err := postgres.NewClient(context.Background(), postgres.Config{
			DatabaseURL:     a.config.Database.URL,
			MaxConns:        int32(a.config.Database.MaxConns),
			ConnectAttempts: uint(a.config.Database.ConnectAttempts),
			OnRetry: func(attempt uint, err error) {
				appLogger.Warn("PostgreSQL is not ready, retrying", port.Fields{"attempt": attempt, "error": err.Error()})
			},
		})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		a.dbPool = dbPool
		appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

		professionalAdapter, err := postgres_adapter.NewProfessionalStorageAdapter(dbPool)
		if err != nil {
			appLogger.Error("Failed to create postgres storage adapter", err, nil)
			return nil, fmt.Errorf("failed to create postgres storage adapter: %w", err)
		}
		facetRepository, err := postgres_adapter.NewFacetRepository(dbPool)
		if err != nil {
			appLogger.Error("Failed to create postgres facet repository", err, nil)
			return nil, fmt.Errorf("failed to create postgres facet repository: %w", err)
		}
		dictionaryRepository, err := postgres_adapter.NewDictionaryRepository(dbPool)
		if err != nil {
			appLogger.Error("Failed to create postgres dictionary repository", err, nil)
			return nil, fmt.Errorf("failed to create postgres dictionary repository: %w", err)
		}

		appLogger.Info("Postgres storage adapters initialized.", nil)
		return &storages{
			search:       professionalAdapter,
			facets:       facetRepository,
			info:         professionalAdapter,
			dictionaries: dictionaryRepository,
		}, nil
	}
}

func (a *App) initSearchEvents(baseLogger port.LoggerPort) (port.SearchEventsPort, error) {
	if !a.config.RabbitMQ.Enabled {
		a.logger.Info("RabbitMQ is disabled, search events will not be published.", nil)
		return rabbitmq_adapter.NoopSearchEventsAdapter{}, nil
	}

	connManagerBridge := rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
	connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: a.config.RabbitMQ.URL}, connManagerBridge)
	if err != nil {
		a.logger.Error("Failed to create connection manager", err, nil)
		return nil, fmt.Errorf("failed to create connection manager: %w", err)
	}
	a.connManager = connManager
	a.logger.Info("RabbitMQ Connection Manager initialized.", nil)

	producerCfg := rabbitmq_producer.PublisherConfig{
		Config:                   rabbitmq_common.Config{URL: a.config.RabbitMQ.URL},
		ExchangeName:             a.config.RabbitMQ.SearchEventsExchange,
		ExchangeType:             constants.SearchEventsExchangeType,
		DurableExchange:          true,
		DeclareExchangeIfMissing: true,

		Logger: rabbitmq_adapter.NewPkgLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
	}
	eventsProducer, err := rabbitmq_producer.NewPublisher(producerCfg, connManager)
	if err != nil {
		a.logger.Error("Failed to create event producer", err, nil)
		return nil, fmt.Errorf("failed to create event producer: %w", err)
	}
	a.eventsProducer = eventsProducer
	a.logger.Info("RabbitMQ Event Producer initialized.", nil)

	eventsAdapter, err := rabbitmq_adapter.NewSearchEventsAdapter(eventsProducer, constants.RoutingKeySearchPerformed)
	if err != nil {
		return nil, fmt.Errorf("failed to create search events adapter: %w", err)
	}
	return eventsAdapter, nil
}

// Run запускает HTTP-сервер и ждет сигнала на завершение.
func (a *App) Run() error {
	defer a.Close()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && err != http.ErrServerClosed {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	// Ожидание сигнала на завершение или ошибки от сервера
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
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.apiServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("Error during API server shutdown", err, nil)
	}

	return runErr
}

// Search выполняет один поиск без HTTP, для CLI.
func (a *App) Search(ctx context.Context, raw domain.RawSearchCriteria) (*domain.SearchResult, error) {
	ctx, traceID := contextkeys.EnsureTraceID(ctx)
	ctx = contextkeys.ContextWithLogger(ctx, a.logger.WithFields(port.Fields{
		"component": "cli",
		"trace_id":  traceID,
	}))
	return a.searchUseCase.Execute(ctx, raw)
}

// Close освобождает внешние ресурсы. Повторный вызов безопасен.
func (a *App) Close() {
	if a.eventsProducer != nil {
		if err := a.eventsProducer.Close(); err != nil {
			a.logger.Error("Error closing event producer", err, nil)
		}
		a.eventsProducer = nil
	}

	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection manager", err, nil)
		}
		a.connManager = nil
	}

	if a.dbPool != nil {
		a.dbPool.Close()
		a.dbPool = nil
		a.logger.Info("PostgreSQL pool closed.", nil)
	}

	if a.logger != nil {
		a.logger.Info("Application shut down gracefully.", nil)
	}

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// Логируем в stdout, так как fluent может быть уже недоступен
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
		a.fluentClient = nil
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
		// Возвращаем безопасное значение по умолчанию и логируем предупреждение
		log.Printf("Warning: Unknown log level '%s'. Defaulting to 'info'.", levelStr)
		return slog.LevelInfo
	}
}
