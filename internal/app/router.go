package app

import (
	"github.com/A25-CS206/backend-service/docs"
	"github.com/A25-CS206/backend-service/internal/config"
	"github.com/A25-CS206/backend-service/internal/middleware"
	"github.com/A25-CS206/backend-service/internal/model"
	"github.com/A25-CS206/backend-service/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes
	router.GET("/health", c.health.Check)
	router.POST("/register", c.auth.Register)
	router.POST("/login", c.auth.Login)
	router.PUT("/authentications", c.auth.Refresh)
	router.DELETE("/authentications", c.auth.Logout)
	router.GET("/journeys", c.journey.GetJourneys)
	router.GET("/journeys/:id", c.journey.GetJourneyDetail)

	// Authenticated routes
	authGroup := router.Group("/")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)
		authGroup.POST("/user/avatar/upload", c.user.UploadAvatar)

		authGroup.POST("/trackings", c.tracking.RecordView)
		authGroup.GET("/trackings/me", c.tracking.GetMyActivities)

		authGroup.GET("/dashboard", c.dashboard.GetDashboard)
		authGroup.GET("/my-courses", c.dashboard.GetMyCourses)
		authGroup.GET("/insights", c.dashboard.AnalyzeMe)

		// Instructor routes
		instructorGroup := authGroup.Group("/")
		instructorGroup.Use(middleware.RoleMiddleware(model.Instructor))
		{
			instructorGroup.POST("/journeys", c.journey.CreateJourney)
			instructorGroup.POST("/journeys/:id/tutorials", c.journey.AddTutorial)
		}
	}
}
