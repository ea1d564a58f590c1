package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/folio-space/core/internal/middleware"
	"github.com/folio-space/core/internal/modules/auth"
	"github.com/folio-space/core/internal/modules/education"
	"github.com/folio-space/core/internal/modules/experience"
	"github.com/folio-space/core/internal/modules/portfolio"
	"github.com/folio-space/core/internal/modules/skill"
	"github.com/folio-space/core/internal/modules/upload"
	pkgredis "github.com/folio-space/core/internal/pkg/redis"
	"github.com/folio-space/core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client) {
	r := a.router
	db := a.db
	authMW := middleware.Auth()

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	// Rate limiting runs on every route; the stricter login limiter and the
	// idempotence guard are scoped to the endpoints that need them.
	r.Use(middleware.OptionalAuth())
	r.Use(middleware.RateLimit(rc.Raw()))

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{
			"status": "ok",
			"uptime": time.Since(processStart).Round(time.Second).String(),
		})
	})

	portfolioSvc := portfolio.NewService(db)
	portfolio.NewHandler(portfolioSvc).
		WithCache(middleware.Cache(rc.Raw(), middleware.DefaultCacheTTL), func(c *gin.Context) {
			middleware.PurgeCache(c.Request.Context(), rc.Raw(), "/api/portfolio/published")
		}).
		RegisterRoutes(api, authMW, middleware.Idempotence(rc.Raw()))

	experience.NewHandler(experience.NewService(db)).RegisterRoutes(api, authMW)
	education.NewHandler(education.NewService(db)).RegisterRoutes(api, authMW)
	skill.NewHandler(skill.NewService(db)).RegisterRoutes(api, authMW)

	authSvc := auth.NewService(db, a.cfg, a.logger)
	auth.NewHandler(authSvc, a.cfg).RegisterRoutes(api, authMW, middleware.LoginRateLimit(rc.Raw()))

	var uploader *upload.Uploader
	if a.cfg.S3.Bucket != "" {
		u, err := upload.NewUploader(a.cfg.S3)
		if err != nil {
			a.logger.Warn("s3 uploader disabled", zap.Error(err))
		} else {
			uploader = u
		}
	}
	upload.NewHandler(uploader).RegisterRoutes(api, authMW)
}
