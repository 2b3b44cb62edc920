package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/outfit-concierge/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger),
		errorHandlingMiddleware(handler.logger),
	)

	api := router.Group("/api/v1")
	api.Use(authMiddleware(cfg.Auth))
	{
		api.POST("/outfits/recommendations", handler.Recommend)
		api.POST("/outfits/compose", handler.Compose)

		api.POST("/wardrobe/items", handler.AddItem)
		api.POST("/wardrobe/items/batch", handler.IngestBatch)
		api.GET("/wardrobe/items", handler.ListItems)
		api.DELETE("/wardrobe/items/:itemId", handler.DeleteItem)
		api.GET("/wardrobe/similar", handler.SimilarItems)

		api.GET("/context/daily", handler.DailyContext)
		api.GET("/moods/trending", handler.TrendingMoods)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, cfg.HTTP.Retry, handler.logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
