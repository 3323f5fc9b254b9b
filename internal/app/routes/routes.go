package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yigit/gradtracker/internal/app/controllers"
)

// Serverless function paths kept for clients built against the hosted variant
const netlifyFunctionsPrefix = "/.netlify/functions"

// SetupRouter configures all application routes. verifyLimiter guards both
// verify endpoints; pass a passthrough handler to disable limiting.
func SetupRouter(
	router *gin.Engine,
	graduateController *controllers.GraduateController,
	healthController *controllers.HealthController,
	verifyLimiter gin.HandlerFunc,
) {
	// --- Probes and metrics ---
	router.GET("/ping", healthController.Ping)
	router.GET("/health", healthController.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// --- API ---
	api := router.Group("/api")
	{
		api.POST("/register", graduateController.Register)
		api.POST("/search", graduateController.Search)
		api.GET("/search", graduateController.Search)
		api.POST("/verify", verifyLimiter, graduateController.Verify)
	}

	// --- Serverless paths (POST only) ---
	functions := router.Group(netlifyFunctionsPrefix)
	{
		functions.POST("/save-graduate", graduateController.Register)
		functions.POST("/search-graduate", graduateController.Search)
		functions.POST("/verify-answer", verifyLimiter, graduateController.Verify)
	}
}
