package handler

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/srgjo27/ferry_booking/internal/platform/logger"
	"github.com/srgjo27/ferry_booking/internal/platform/metrics"
)

// maxTrackedClients bounds the limiter table; past it the table is reset.
const maxTrackedClients = 10000

func SecurityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		c.Next()
	}
}

// RateLimit allows perWindow requests per client IP in every window, with
// bursts up to perWindow. A non-positive perWindow disables limiting.
func RateLimit(perWindow int, window time.Duration) gin.HandlerFunc {
	if perWindow <= 0 || window <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	var mu sync.Mutex
	clients := make(map[string]*rate.Limiter)
	every := rate.Every(window / time.Duration(perWindow))

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		limiter, ok := clients[ip]
		if !ok {
			if len(clients) >= maxTrackedClients {
				clients = make(map[string]*rate.Limiter)
			}
			limiter = rate.NewLimiter(every, perWindow)
			clients[ip] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests, please retry later"})
			return
		}
		c.Next()
	}
}

// Observe records request latency and logs each request.
func Observe(m *metrics.Metrics, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)

		m.RequestDuration.WithLabelValues(route, c.Request.Method, strconv.Itoa(status)).Observe(elapsed.Seconds())
		log.Debug("HTTP request",
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"latency", elapsed,
			"client_ip", c.ClientIP(),
		)
	}
}
