package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/school-dashboard-api/internal/handler"
	"github.com/noah-isme/school-dashboard-api/internal/middleware"
	"github.com/noah-isme/school-dashboard-api/internal/models"
	"github.com/noah-isme/school-dashboard-api/internal/service"
	"github.com/noah-isme/school-dashboard-api/pkg/config"
	"github.com/noah-isme/school-dashboard-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/school-dashboard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/school-dashboard-api/pkg/middleware/requestid"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	Logger            *zap.Logger
	Metrics           *service.MetricsService
	Preferences       *service.PreferenceService
	MetricsHandler    *handler.MetricsHandler
	PreferenceHandler *handler.PreferenceHandler
	StudentViews      *handler.ViewHandler[*models.Student]
	TeacherViews      *handler.ViewHandler[*models.Teacher]
	StudentDetails    *handler.DetailHandler[*models.Student]
	TeacherDetails    *handler.DetailHandler[*models.Teacher]
}

// New builds the gin engine with the ambient middleware and every route.
func New(cfg *config.Config, deps Dependencies) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	logr := deps.Logger
	if logr == nil {
		logr = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Metrics))

	Register(r, cfg, deps)
	return r
}

// Register wires the HTTP routes into the gin engine.
func Register(r *gin.Engine, cfg *config.Config, deps Dependencies) {
	if deps.MetricsHandler != nil {
		r.GET("/health", deps.MetricsHandler.Health)
		r.GET("/ready", deps.MetricsHandler.Ready)
		r.GET("/metrics", deps.MetricsHandler.Prometheus)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	if deps.MetricsHandler != nil {
		api.GET("/system/metrics", deps.MetricsHandler.System)
	}

	if deps.PreferenceHandler != nil {
		api.GET("/preferences", deps.PreferenceHandler.Get)
		api.PUT("/preferences/theme", deps.PreferenceHandler.SetTheme)
		api.POST("/preferences/theme/toggle", deps.PreferenceHandler.ToggleTheme)
		api.POST("/auth/login", deps.PreferenceHandler.Login)
		api.POST("/auth/logout", deps.PreferenceHandler.Logout)
	}

	var state middleware.AuthState
	if deps.Preferences != nil {
		state = deps.Preferences
	}
	gate := middleware.RequireAuthenticated(state, cfg.Auth.GateEnabled)

	students := api.Group("/"+models.EntityStudents, gate, middleware.Audit(deps.Logger, models.EntityStudents))
	if deps.StudentViews != nil {
		deps.StudentViews.Register(students)
	}
	if deps.StudentDetails != nil {
		deps.StudentDetails.Register(students)
	}

	teachers := api.Group("/"+models.EntityTeachers, gate, middleware.Audit(deps.Logger, models.EntityTeachers))
	if deps.TeacherViews != nil {
		deps.TeacherViews.Register(teachers)
	}
	if deps.TeacherDetails != nil {
		deps.TeacherDetails.Register(teachers)
	}
}
