package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/inkpress/blog-system/internal/api/handler"
	"github.com/inkpress/blog-system/internal/api/middleware"
	"github.com/inkpress/blog-system/internal/core/ports"
	"github.com/inkpress/blog-system/internal/token"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	AuthService ports.AuthService
	UserService ports.UserService
	PostService ports.PostService
	Tokens      *token.Service
	Health      *handler.HealthHandler
	Readiness   *handler.HealthDependenciesHandler
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("blog"))

	authMiddleware := middleware.Auth(deps.Tokens)

	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.UserService, deps.PostService)
	postHandler := handler.NewPostHandler(deps.PostService)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", deps.Health.Liveness)
	e.GET("/health/ready", deps.Readiness.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/verify-email", authHandler.VerifyEmail)

	// --- User routes ---
	// /users/me must be registered with the id routes; Echo resolves the
	// static segment before the :id parameter.
	e.GET("/users", userHandler.List)
	e.GET("/users/me", userHandler.Me, authMiddleware)
	e.PUT("/users/me", userHandler.UpdateMe, authMiddleware)
	e.DELETE("/users/me", userHandler.DeleteMe, authMiddleware)
	e.POST("/users/me/avatar", userHandler.UploadAvatar, authMiddleware, echomiddleware.BodyLimit("6M"))
	e.GET("/users/:id", userHandler.Get)
	e.GET("/users/:id/posts", userHandler.GetPosts)
	e.GET("/users/:id/avatar", userHandler.GetAvatar)

	// --- Post routes ---
	e.POST("/posts", postHandler.Create, authMiddleware)
	e.GET("/posts", postHandler.List)
	e.GET("/posts/:id", postHandler.Get)
	e.PUT("/posts/:id", postHandler.Update, authMiddleware)
	e.DELETE("/posts/:id", postHandler.Delete, authMiddleware)

	return e
}
