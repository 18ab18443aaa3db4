// Package router builds the gin engine: global middleware, the versioned
// base path and the route table.
package router

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"health_backend/internal/config"
	userhandler "health_backend/internal/feature/user/transport/handler"
	"health_backend/internal/platform/apperror"
	"health_backend/internal/platform/docs"
	"health_backend/internal/platform/http/handler"
	"health_backend/internal/platform/http/middleware"
)

// Deps are the components the router mounts.
type Deps struct {
	Config    *config.Config
	Log       *logrus.Logger
	Users     *userhandler.UserHandler
	DB        handler.Pinger
	RateStore middleware.Store
	Docs      *openapi3.T
}

// NewRouter returns the configured engine.
func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Recovery(d.Log),
		middleware.ErrorHandler(d.Log, cfg.IsDevelopment()),
	)
	if cfg.IsDevelopment() {
		r.Use(gin.Logger())
	}

	// not rate limited
	health := handler.Health(d.DB)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)

	r.Use(
		middleware.CORS(cfg.CORSAdmitURLs),
		middleware.RateLimit(d.RateStore, cfg.RateLimitMax, cfg.RateLimitWindow, middleware.KeyByIP(), d.Log),
	)
	r.NoRoute(func(c *gin.Context) {
		_ = c.Error(apperror.NotFound("Route " + c.Request.Method + " " + c.Request.URL.Path + " not found"))
	})

	api := r.Group(cfg.BasePath())
	if d.Docs != nil {
		api.GET("/docs/openapi.json", docs.Handler(d.Docs))
	}

	users := api.Group("/users")
	{
		users.GET("", d.Users.GetAll)
		users.POST("", d.Users.Create)
		users.GET("/email/:email", d.Users.FindByEmail)
		users.PUT("/:id", d.Users.Update)
		users.DELETE("/:id", d.Users.SoftDelete)
	}

	return r
}
