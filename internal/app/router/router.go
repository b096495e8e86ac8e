package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	authhandler "jobtracker_backend/internal/feature/auth/transport/handler"
	jobhandler "jobtracker_backend/internal/feature/job/transport/handler"
	pipelinehandler "jobtracker_backend/internal/feature/pipeline/transport/handler"
	"jobtracker_backend/internal/platform/authz"
	"jobtracker_backend/internal/platform/http/handler"
	"jobtracker_backend/internal/platform/http/httperr"
	jwtmw "jobtracker_backend/internal/platform/jwt"
)

// Handlers groups the feature handlers mounted by NewRouter.
type Handlers struct {
	Auth     *authhandler.AuthHandler
	Jobs     *jobhandler.JobHandler
	Pipeline *pipelinehandler.PipelineHandler
}

// Options carries the cross-cutting pieces of the router.
type Options struct {
	Verifier    jwtmw.TokenVerifier
	Store       handler.Pinger
	CORSOrigins []string
}

// userRoutes require the "User" role. Routes not listed only need an authenticated caller.
var userRoutes = []authz.Route{
	{Method: http.MethodGet, Path: "/api/job"},
	{Method: http.MethodGet, Path: "/api/job/stage/:stage"},
	{Method: http.MethodGet, Path: "/api/job/:id"},
	{Method: http.MethodPost, Path: "/api/job"},
	{Method: http.MethodPut, Path: "/api/job/:id"},
	{Method: http.MethodDelete, Path: "/api/job/:id"},
	{Method: http.MethodPost, Path: "/api/pipeline"},
	{Method: http.MethodPut, Path: "/api/pipeline/:id"},
	{Method: http.MethodDelete, Path: "/api/pipeline/:id"},
}

// Policy builds the route→role table enforced on the protected group.
func Policy() authz.Policy {
	p := make(authz.Policy, len(userRoutes))
	for _, r := range userRoutes {
		p[r] = jwtmw.RoleUser
	}
	return p
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.CustomRecovery(httperr.Recovery))

	if len(opts.CORSOrigins) > 0 {
		cfg := cors.DefaultConfig()
		cfg.AllowOrigins = opts.CORSOrigins
		cfg.AddAllowHeaders("Authorization")
		r.Use(cors.New(cfg))
	}

	health := handler.Health(opts.Store)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	r.OPTIONS("/healthz", health)

	api := r.Group("/api")

	// public
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
	}

	protected := api.Group("")
	protected.Use(jwtmw.AuthRequired(opts.Verifier), authz.Enforce(Policy()))
	{
		jobs := protected.Group("/job")
		jobs.GET("", h.Jobs.List)
		jobs.GET("/stage/:stage", h.Jobs.ListByStage)
		jobs.GET("/:id", h.Jobs.Get)
		jobs.POST("", h.Jobs.Create)
		jobs.PUT("/:id", h.Jobs.Update)
		jobs.DELETE("/:id", h.Jobs.Delete)

		pipelines := protected.Group("/pipeline")
		pipelines.GET("", h.Pipeline.List)
		pipelines.GET("/:id", h.Pipeline.Get)
		pipelines.POST("", h.Pipeline.Create)
		pipelines.PUT("/:id", h.Pipeline.Update)
		pipelines.DELETE("/:id", h.Pipeline.Delete)
	}

	return r
}
