package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/taskdesk/task-manager/internal/api/handler"
	"github.com/taskdesk/task-manager/internal/api/middleware"
	"github.com/taskdesk/task-manager/internal/core/ports"
	"github.com/taskdesk/task-manager/internal/infrastructure/http/handlers"
)

// Deps is everything the router needs. Services are constructed by the
// caller; the router only wires them to routes.
type Deps struct {
	Logger    zerolog.Logger
	JWTSecret string
	// UserListPublic serves GET /api/user/users without a credential.
	UserListPublic bool
	CORSOrigins    []string

	Auth  ports.AuthService
	Admin ports.AdminAuthenticator
	Tasks ports.TaskService
	Users ports.UserService
	Chat  ports.ChatService

	Health *handlers.HealthHandler

	// Registerer and Gatherer back the HTTP metrics and /metrics. Nil
	// values use the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds the Echo instance with all middleware and routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = newSonicSerializer()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	registerer := d.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := d.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	promMW, err := echoprometheus.MiddlewareConfig{
		Namespace:  "taskmanager",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}.ToMiddleware()
	if err != nil {
		return nil, err
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(promMW)
	if len(d.CORSOrigins) > 0 {
		e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
			AllowOrigins: d.CORSOrigins,
			AllowHeaders: []string{
				echo.HeaderOrigin,
				echo.HeaderContentType,
				echo.HeaderAccept,
				echo.HeaderAuthorization,
				"Idempotency-Key",
			},
		}))
	}

	authMW := middleware.Auth(d.JWTSecret)

	authHandler := handler.NewAuthHandler(d.Auth, d.Admin)
	taskHandler := handler.NewTaskHandler(d.Tasks)
	userHandler := handler.NewUserHandler(d.Users)
	chatHandler := handler.NewChatHandler(d.Chat)

	api := e.Group("/api")

	// --- Auth routes ---
	api.POST("/auth/signup", authHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/admin-login", authHandler.AdminLogin)

	// --- Tasks ---
	tasks := api.Group("/tasks", authMW)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/stats", taskHandler.Stats)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Users ---
	api.GET("/user/profile", userHandler.Profile, authMW)
	api.GET("/profile", userHandler.Profile, authMW)
	if d.UserListPublic {
		api.GET("/user/users", userHandler.List)
	} else {
		api.GET("/user/users", userHandler.List, authMW)
	}

	// --- Chat ---
	chat := api.Group("/chat", authMW)
	chat.GET("/team", chatHandler.Team)
	chat.GET("/user/:userId", chatHandler.Private)
	chat.POST("/send", chatHandler.Send)

	// --- Operational endpoints (no auth required) ---
	if d.Health != nil {
		e.GET("/health", d.Health.Liveness)
		e.GET("/health/ready", d.Health.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e, nil
}
