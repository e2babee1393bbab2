package http

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/sm8ta/station_control_console/internal/config"
	"github.com/sm8ta/station_control_console/internal/core/ports"
)

type Router struct {
	*gin.Engine
}

func NewRouter(
	config *config.HTTP,
	tokenService ports.TokenService,
	formHandler *EmployeeFormHandler,
	countryHandler *CountryHandler,
	metricsHandler http.Handler,
) (*Router, error) {
	if config.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	// CORS
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(config.AllowedOrigins, ",")
	corsConfig.AddAllowHeaders("Authorization")

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), cors.New(corsConfig))
	router.MaxMultipartMemory = config.MaxUploadBytes

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Metrics
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	router.GET("/metrics", gin.WrapH(metricsHandler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	countries := router.Group("/countries")
	countries.Use(AuthMiddleware(tokenService))
	{
		countries.GET("", countryHandler.ListCountries)
	}

	forms := router.Group("/employees/forms")
	forms.Use(AuthMiddleware(tokenService), AdminMiddleware())
	{
		forms.POST("", formHandler.OpenForm)
		forms.GET("/:id", formHandler.GetForm)
		forms.PATCH("/:id", formHandler.UpdateForm)
		forms.DELETE("/:id", formHandler.DiscardForm)
		forms.PUT("/:id/photo", formHandler.SelectPhoto)
		forms.DELETE("/:id/photo", formHandler.ClearPhoto)
		forms.GET("/:id/validation", formHandler.Validate)
		forms.POST("/:id/submit", formHandler.Submit)
		forms.GET("/:id/notifications", formHandler.Notifications)
	}

	return &Router{
		Engine: router,
	}, nil
}
