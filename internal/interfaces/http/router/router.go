// Package router wires handler route registrations onto the gin engine.
package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by handlers that expose routes
type RouteRegistrar interface {
	RegisterRoutes(r *Router)
}

// Router manages HTTP route registration. Handlers declare their routes
// against public or protected groups, the router applies the API
// version prefix and the auth middleware chain.
type Router struct {
	engine         *gin.Engine
	apiVersion     string
	authMiddleware []gin.HandlerFunc
	registrars     []RouteRegistrar
	api            *gin.RouterGroup
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// WithAuthMiddleware sets the middleware applied to protected groups,
// typically JWT authentication.
func WithAuthMiddleware(middleware ...gin.HandlerFunc) RouterOption {
	return func(r *Router) {
		r.authMiddleware = middleware
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		registrars: make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	r.api = engine.Group("/api/" + r.apiVersion)
	return r
}

// Register adds a RouteRegistrar to be set up later
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(r)
	}
}

// PublicGroup returns a route group under the API prefix without
// authentication. Handlers needing optional identity attach
// OptionalJWTAuthMiddleware themselves.
func (r *Router) PublicGroup(prefix string, middleware ...gin.HandlerFunc) *gin.RouterGroup {
	group := r.api.Group(prefix)
	if len(middleware) > 0 {
		group.Use(middleware...)
	}
	return group
}

// ProtectedGroup returns a route group under the API prefix with the
// auth middleware chain applied.
func (r *Router) ProtectedGroup(prefix string, middleware ...gin.HandlerFunc) *gin.RouterGroup {
	group := r.api.Group(prefix)
	if len(r.authMiddleware) > 0 {
		group.Use(r.authMiddleware...)
	}
	if len(middleware) > 0 {
		group.Use(middleware...)
	}
	return group
}

// Engine exposes the underlying gin engine for non-API routes such as
// health checks and the swagger UI.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
