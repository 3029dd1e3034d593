package server

import (
	"github.com/gin-gonic/gin"

	"careerlaunch-backend/internal/auth"
	"careerlaunch-backend/internal/career"
	"careerlaunch-backend/internal/generation"
	"careerlaunch-backend/internal/resumes"
	"careerlaunch-backend/internal/services/health"
	"careerlaunch-backend/internal/shared/config"
	"careerlaunch-backend/internal/shared/metrics"
	"careerlaunch-backend/internal/shared/server/middleware"
)

// RouterDeps bundles the handlers mounted on the engine. Nil handlers are skipped.
type RouterDeps struct {
	Config            config.Config
	Tokens            middleware.TokenVerifier
	Health            *health.Service
	ResumeHandler     *resumes.Handler
	GenerationHandler *generation.Handler
	CareerHandler     *career.Handler
	LinkedInAuth      *auth.LinkedInService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Identity(deps.Tokens),
	)

	if deps.Health != nil {
		deps.Health.RegisterRoutes(r)
	}
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	if deps.LinkedInAuth != nil {
		deps.LinkedInAuth.RegisterRoutes(api)
	}
	if deps.CareerHandler != nil {
		deps.CareerHandler.RegisterRoutes(api)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api)
	}
	if deps.GenerationHandler != nil {
		deps.GenerationHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
