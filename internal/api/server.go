package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"gilded/internal/ai"
	"gilded/internal/auth"
	"gilded/internal/cache"
	"gilded/internal/catalog"
	"gilded/internal/clock"
	"gilded/internal/config"
	"gilded/internal/external"
	"gilded/internal/handlers"
	"gilded/internal/messaging"
	"gilded/internal/middleware"
	"gilded/internal/notify"
	"gilded/internal/recommend"
	"gilded/internal/repository"
	"gilded/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server представляет HTTP сервер API
type Server struct {
	router   *gin.Engine
	config   *config.Config
	services *service.Services
	repos    *repository.Repositories
	tokens   *auth.Tokens
	broker   messaging.Broker
	valkey   *cache.ValkeyClient
}

// NewServer подключает хранилище, провайдер учетных данных, брокер и генератор
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	gin.SetMode(cfg.GinMode)

	if err := handlers.RegisterValidators(); err != nil {
		return nil, err
	}

	writes := repository.NewDispatcher(cfg.RequestTimeout, cfg.WriteMode == config.WriteModeSync)
	repos, err := repository.Open(ctx, cfg, writes)
	if err != nil {
		return nil, err
	}

	var valkey *cache.ValkeyClient
	var credentials auth.CredentialStore
	switch cfg.Auth.Provider {
	case "memory":
		slog.Warn("Using in-memory credentials, users are lost on restart")
		credentials = auth.NewMemoryCredentials()
	default:
		valkey, err = cache.NewValkeyClient(ctx, cfg.Valkey)
		if err != nil {
			repos.Close(ctx)
			return nil, fmt.Errorf("failed to connect to Valkey: %w", err)
		}
		credentials = valkey
	}

	broker, err := messaging.Connect(cfg.Broker)
	if err != nil {
		slog.Warn("Broker is not available, confirmations will be sent in-process", "error", err)
		broker = nil
	}

	var generator ai.Generator = ai.Disabled{}
	if gemini, err := ai.NewGeminiClient(ctx, cfg.GenAI); err == nil {
		generator = gemini
	} else {
		slog.Warn("Generator is not available, recommendations and confirmation emails will fail", "error", err)
	}

	var publisher messaging.Publisher
	if broker != nil {
		publisher = broker
	}

	tokens := auth.NewTokens(cfg.Auth)
	services := service.NewServices(service.Deps{
		Catalog:   catalog.Default(),
		Repos:     repos,
		Requester: recommend.NewRequester(generator),
		Notifier:  notify.NewNotifier(generator, notify.LogMailer{Logger: slog.Default()}),
		Publisher: publisher,
		Payments:  external.NewPaymentClient(cfg.Payment),
		Provider:  auth.NewCredentialProvider(credentials, cfg.Auth),
		Tokens:    tokens,
		Clock:     clock.NewSystem(),
	})

	server := NewServerWith(cfg, services, repos, tokens)
	server.broker = broker
	server.valkey = valkey
	return server, nil
}

// NewServerWith собирает роутер поверх готовых сервисов
func NewServerWith(cfg *config.Config, services *service.Services, repos *repository.Repositories, tokens *auth.Tokens) *Server {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.CORSOrigins))
	// Only presence of a cookie is checked here, Session validates the token
	router.Use(middleware.RequireAuthCookie(cfg.Auth.ProtectedPrefixes, cfg.Auth.CookieNames(), cfg.Auth.LoginPath))

	server := &Server{
		router:   router,
		config:   cfg,
		services: services,
		repos:    repos,
		tokens:   tokens,
	}

	server.setupRoutes()

	return server
}

// setupRoutes настраивает все роуты
func (s *Server) setupRoutes() {
	h := handlers.NewHandlers(s.services, s.config.Auth)

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.router.GET("/events", h.ListEvents)
	s.router.GET("/events/:id", h.GetEvent)
	s.router.GET("/categories", h.ListCategories)

	s.router.POST("/signup", h.SignUp)
	s.router.GET("/login", h.LoginPage)
	s.router.POST("/login", h.Login)
	s.router.POST("/logout", h.Logout)
	s.router.POST("/refresh", h.Refresh)

	guarded := s.router.Group("")
	guarded.Use(middleware.Session(s.tokens, s.config.Auth.IDCookie))
	{
		guarded.POST("/checkout/:id", h.Checkout)
		guarded.GET("/reservations", h.ListReservations)
		guarded.GET("/recommendations", h.RecommendationSeed)
		guarded.POST("/recommendations", h.Recommend)
		guarded.GET("/login-history", h.LoginHistory)
		guarded.GET("/profile", h.Profile)
	}
}

// healthCheck проверяет хранилище и Valkey
func (s *Server) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := gin.H{"store": "ok"}
	status := http.StatusOK

	if err := s.repos.Store.HealthCheck(ctx); err != nil {
		checks["store"] = err.Error()
		status = http.StatusServiceUnavailable
	}
	if s.valkey != nil {
		checks["valkey"] = "ok"
		if err := s.valkey.Ping(ctx); err != nil {
			checks["valkey"] = err.Error()
			status = http.StatusServiceUnavailable
		}
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}

	c.JSON(status, gin.H{
		"status":  state,
		"service": "gilded-api",
		"version": "1.0.0",
		"checks":  checks,
	})
}

// Run запускает HTTP сервер
func (s *Server) Run() error {
	addr := fmt.Sprintf(":%s", s.config.Port)
	return s.router.Run(addr)
}

// GetRouter возвращает роутер для тестирования
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// Cleanup дожидается отложенных записей и писем и закрывает соединения
func (s *Server) Cleanup(ctx context.Context) error {
	var errs []error

	if err := s.services.Confirmations.Wait(ctx); err != nil {
		errs = append(errs, fmt.Errorf("confirmations: %w", err))
	}

	if s.broker != nil {
		if err := s.broker.Close(); err != nil {
			slog.Error("Error closing broker connection", "error", err)
			errs = append(errs, err)
		}
	}

	if s.valkey != nil {
		if err := s.valkey.Close(); err != nil {
			slog.Error("Error closing Valkey connection", "error", err)
			errs = append(errs, err)
		}
	}

	if s.repos != nil {
		if err := s.repos.Close(ctx); err != nil {
			slog.Error("Error closing document store", "error", err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
