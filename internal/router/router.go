package router

import (
	"context"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/timeasy-io/timeasy/docs"
	"github.com/timeasy-io/timeasy/internal/config"
	"github.com/timeasy-io/timeasy/internal/middleware"
	"github.com/timeasy-io/timeasy/internal/modules/handler"
	"github.com/timeasy-io/timeasy/internal/modules/serializer"
)

type RouterDeps struct {
	Config           *config.Config
	Log              *zap.Logger
	Verifier         *middleware.TokenVerifier
	RateLimiter      *middleware.RateLimiter
	Ready            func(ctx context.Context) error
	ProjectHandler   *handler.ProjectHandler
	TimeEntryHandler *handler.TimeEntryHandler
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AddAllowHeaders("Authorization", middleware.RequestIDHeader)
	corsCfg.AddExposeHeaders(middleware.RequestIDHeader, middleware.TraceIDHeader)
	r.Use(cors.New(corsCfg))

	r.Use(middleware.RequestID())
	if d.Config.Telemetry.Enabled && d.Config.Telemetry.OtlpEndpoint != "" {
		r.Use(middleware.OtelTracing(d.Config.App.Name, "/api/"))
		r.Use(middleware.TraceID())
	}
	r.Use(middleware.ZapLogger(d.Log))
	r.Use(middleware.Metrics())

	// health
	r.GET("/health", func(c *gin.Context) {
		if d.Ready != nil {
			if err := d.Ready(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, serializer.Err(http.StatusServiceUnavailable, "unavailable", err))
				return
			}
		}
		c.JSON(http.StatusOK, serializer.Response{Msg: "ok"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// swagger
	r.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		v1.Use(middleware.BearerAuth(d.Verifier))
		if d.RateLimiter != nil {
			v1.Use(d.RateLimiter.Limit())
		}

		v1.GET("/ping", func(c *gin.Context) { c.JSON(http.StatusOK, serializer.Response{Msg: "pong"}) })

		project := v1.Group("/project")
		{
			project.POST("", d.ProjectHandler.CreateProject)
			project.GET("", d.ProjectHandler.ListProjects)
			project.GET("/changes", d.ProjectHandler.ListProjectChanges)

			project.GET("/:project_id", d.ProjectHandler.GetProject)
			project.PUT("/:project_id", d.ProjectHandler.UpdateProject)
			project.DELETE("/:project_id", d.ProjectHandler.DeleteProject)

			project.GET("/:project_id/time_entry", d.ProjectHandler.ListProjectTimeEntries)
		}

		timeEntry := v1.Group("/time_entry")
		{
			timeEntry.POST("", d.TimeEntryHandler.CreateTimeEntry)
			timeEntry.GET("", d.TimeEntryHandler.ListTimeEntries)
			timeEntry.GET("/changes", d.TimeEntryHandler.ListTimeEntryChanges)
			timeEntry.POST("/export", d.TimeEntryHandler.ExportTimeEntries)

			timeEntry.GET("/:time_entry_id", d.TimeEntryHandler.GetTimeEntry)
			timeEntry.PUT("/:time_entry_id", d.TimeEntryHandler.UpdateTimeEntry)
			timeEntry.DELETE("/:time_entry_id", d.TimeEntryHandler.DeleteTimeEntry)
		}
	}
	return r
}
