package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	core_port "github.com/vgayam/proconnect-backend/internal/core/port"
)

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// AllowedOrigins - домены фронтенда; пустой список выключает CORS
	AllowedOrigins []string
}

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(cfg ServerConfig,
	professionalHandlers *ProfessionalHandler,
	dictionaryHandlers *DictionaryHandler,
	baseLogger core_port.LoggerPort) *Server {

	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      NewRouter(professionalHandlers, dictionaryHandlers, baseLogger, cfg),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		logger: baseLogger,
	}
}

// NewRouter собирает маршруты API.
func NewRouter(professionalHandlers *ProfessionalHandler,
	dictionaryHandlers *DictionaryHandler,
	baseLogger core_port.LoggerPort,
	cfg ServerConfig) http.Handler {

	r := chi.NewRouter()

	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.AllowedOrigins,
			// API только читает данные
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", traceIDHeader},
			ExposedHeaders: []string{traceIDHeader},
			// На сколько секунд браузер может кэшировать результат preflight-запроса
			MaxAge: 300,
		}))
	}

	r.Use(LoggerMiddleware(baseLogger), middleware.Recoverer)
	if cfg.WriteTimeout > 0 {
		r.Use(middleware.Timeout(cfg.WriteTimeout))
	}

	r.Route("/api/professionals", func(r chi.Router) {
		r.Get("/", professionalHandlers.Search)
		r.Get("/cities", professionalHandlers.GetDistinctCities)
		r.Get("/facets", professionalHandlers.GetFacets)
		r.Get("/slug/{slug}", professionalHandlers.GetBySlug)
		r.Get("/{id}", professionalHandlers.GetByID)
	})

	// /api/skills - старое имя справочника, клиенты еще ходят на него
	for _, prefix := range []string{"/api/subcategories", "/api/skills"} {
		r.Route(prefix, func(r chi.Router) {
			r.Get("/", dictionaryHandlers.ListSubcategories)
			r.Get("/categories", dictionaryHandlers.ListCategories)
			r.Get("/category/{category}", dictionaryHandlers.ListSubcategoriesByCategory)
		})
	}

	return r
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
