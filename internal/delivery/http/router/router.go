// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"faer/internal/delivery/http/middleware"
	"faer/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler      *handler.AuthHandler
	UserHandler      *handler.UserHandler
	FormationHandler *handler.FormationHandler
	PageHandler      *handler.PageHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler      *handler.AuthHandler
	userHandler      *handler.UserHandler
	formationHandler *handler.FormationHandler
	pageHandler      *handler.PageHandler
	authMiddleware   *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:      params.AuthHandler,
		userHandler:      params.UserHandler,
		formationHandler: params.FormationHandler,
		pageHandler:      params.PageHandler,
		authMiddleware:   params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")
	{
		api.POST("/signup", r.authHandler.Signup)
		api.POST("/login", r.authHandler.Login)
		api.POST("/logout", r.authHandler.Logout)
		api.GET("/formations", r.formationHandler.List)
	}

	// API routes that require a live session
	protected := api.Group("")
	protected.Use(r.authMiddleware.Authenticate)
	{
		protected.GET("/user", r.userHandler.GetUser)
		protected.PUT("/user/profile", r.userHandler.UpdateProfile)
		protected.GET("/user/formations", r.formationHandler.ListMine)
		protected.POST("/formations/:id/enroll", r.formationHandler.Enroll)
	}

	r.registerPages(e)
}

// registerPages wires the static HTML views. Login and signup bounce
// authenticated visitors to the dashboard; the dashboard itself is
// gated like the API.
func (r *router) registerPages(e *echo.Echo) {
	if !r.pageHandler.Enabled() {
		return
	}

	e.GET("/", r.pageHandler.Serve("index.html"))
	for _, page := range []string{"about", "course", "detail", "feature", "team", "testimonial", "contact"} {
		e.GET("/"+page, r.pageHandler.Serve(page+".html"))
	}

	e.GET("/login", r.pageHandler.Serve("login.html"),
		r.authMiddleware.RedirectIfAuthenticated("/dashboard"))
	e.GET("/signup", r.pageHandler.Serve("signup.html"),
		r.authMiddleware.RedirectIfAuthenticated("/dashboard"))
	e.GET("/dashboard", r.pageHandler.Serve("dashboard.html"),
		r.authMiddleware.Authenticate)

	r.pageHandler.RegisterStatic(e)

	// Direct .html requests resolve against the views directory.
	e.GET("/:page", r.pageHandler.ServeDirect("page"))
}
