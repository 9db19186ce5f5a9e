package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/audio-fetch-go/api/handlers"
	"github.com/yourusername/audio-fetch-go/api/middleware"
	"github.com/yourusername/audio-fetch-go/internal/app"
	"github.com/yourusername/audio-fetch-go/internal/domain"
)

// SetupRouter sets up the HTTP router. history may be nil when the fetch
// history is disabled.
func SetupRouter(
	engine *app.Engine,
	sandbox *app.Sandbox,
	history domain.HistoryRepository,
	config *domain.Config,
	log *zap.Logger,
) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(config.CORS.AllowedOrigins))

	// Health endpoint
	healthHandler := handlers.NewHealthHandler(config.Download.Strategy)
	router.GET("/health", healthHandler.Health)

	// Download endpoints: live progress stream plus artifact retrieval
	streamHandler := handlers.NewStreamHandler(engine, log)
	fetchHandler := handlers.NewFetchHandler(engine, log)
	router.GET("/download/stream", streamHandler.Stream)
	router.GET("/download/:key", fetchHandler.Fetch)

	// Destination browser
	browseHandler := handlers.NewBrowseHandler(sandbox)
	router.GET("/browse", browseHandler.Browse)

	// API v1 routes
	if history != nil {
		historyHandler := handlers.NewHistoryHandler(history, log)
		v1 := router.Group("/api/v1")
		{
			hist := v1.Group("/history")
			{
				hist.GET("", historyHandler.List)
				hist.GET("/stats", historyHandler.GetStats)
				hist.GET("/:id", historyHandler.Get)
			}
		}
	}

	return router
}
