package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/srgjo27/ferry_booking/internal/platform/logger"
	"github.com/srgjo27/ferry_booking/internal/platform/metrics"
)

type RouterConfig struct {
	RateLimitPerWindow int
	RateLimitWindow    time.Duration
}

func NewRouter(catalog *CatalogHandler, booking *BookingHandler, m *metrics.Metrics, log logger.Logger, cfg RouterConfig) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(Observe(m, log))
	r.Use(SecurityHeaders())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		MaxAge:          12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	api := r.Group("/api")
	api.Use(RateLimit(cfg.RateLimitPerWindow, cfg.RateLimitWindow))
	{
		api.GET("/suppliers", catalog.Suppliers)
		api.GET("/methods/:supplierId", catalog.Methods)
		api.GET("/routes", catalog.Routes)
		api.GET("/fees", catalog.Fees)
		api.GET("/cabins", catalog.Cabins)
		api.GET("/sailings", catalog.Sailings)
		api.GET("/search", catalog.Search)

		sessions := api.Group("/sessions")
		sessions.POST("", booking.CreateSession)
		sessions.GET("/:id", booking.GetSession)
		sessions.DELETE("/:id", booking.DeleteSession)
		sessions.POST("/:id/search", booking.SubmitSearch)
		sessions.POST("/:id/sort", booking.SortResults)
		sessions.POST("/:id/filter", booking.FilterResults)
		sessions.POST("/:id/select", booking.SelectSailing)
		sessions.POST("/:id/cabins", booking.AddCabin)
		sessions.DELETE("/:id/cabins/:index", booking.RemoveCabin)
		sessions.PUT("/:id/seats", booking.SetSeats)
		sessions.PUT("/:id/insurance", booking.SetInsurance)
		sessions.POST("/:id/continue", booking.ContinueToPassengers)
		sessions.POST("/:id/passengers", booking.SubmitPassengers)
		sessions.POST("/:id/payment", booking.ConfirmPayment)
		sessions.POST("/:id/abandon", booking.Abandon)
	}

	return r
}
