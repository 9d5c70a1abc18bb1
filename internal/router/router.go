package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/cloudprep/mockexam-backend/internal/config"
	"github.com/cloudprep/mockexam-backend/internal/handler"
	"github.com/cloudprep/mockexam-backend/internal/middleware"
	"github.com/cloudprep/mockexam-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Exam     *handler.ExamHandler
	Resource *handler.ResourceHandler
	History  *handler.HistoryHandler
	WS       *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(handlers *Handlers, cfg *config.Config) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Bank images with aggressive caching; missing files come back as the
	// placeholder rather than a 404.
	imagesGroup := router.Group("/images")
	imagesGroup.Use(middleware.CacheControl(31536000))
	{
		imagesGroup.GET("/:name", handlers.Resource.GetImage)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Application API ────────────────────────────────────────────
	api := router.Group("/api/v1")
	{
		api.GET("/view", handlers.Exam.GetView)

		api.POST("/exam/start", handlers.Exam.StartExam)
		api.GET("/exam", handlers.Exam.GetExam)
		api.POST("/exam/navigate", handlers.Exam.Navigate)
		api.POST("/exam/answer", handlers.Exam.SelectOption)
		api.POST("/exam/submit", handlers.Exam.Submit)
		api.GET("/results", handlers.Exam.GetResults)

		api.POST("/view/notes", handlers.Exam.OpenNotes)
		api.POST("/view/simulation", handlers.Exam.OpenSimulation)
		api.POST("/view/exam", handlers.Exam.BackToExam)
		api.POST("/view/home", handlers.Exam.BackToHome)

		api.GET("/notes", handlers.Resource.ListNotes)
		api.GET("/simulations", handlers.Resource.ListSimulations)

		api.GET("/history", handlers.History.GetHistory)
		api.DELETE("/history", handlers.History.ClearHistory)
	}

	// ─── 2. WebSocket Group ────────────────────────────────────────────
	ws := router.Group("/ws/v1")
	{
		ws.GET("/exam/stream", handlers.WS.ExamStream)
	}

	return router
}
