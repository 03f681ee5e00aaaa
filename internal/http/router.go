package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"peer-match/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	matchH *MatchHandler,
	chatH *ChatHandler,
	safetyH *SafetyHandler,
	streamH *StreamHandler,
	tokens *service.TokenService,
	findLimiter service.RateLimiter,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Middlewares básicos: logging, recovery y CORS.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), cors.New(corsConfig(allowedOrigins)))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := r.Group("/api")
	api.Use(jsonContentTypeMiddleware())
	if tokens != nil {
		api.Use(JWTAuthMiddleware(tokens))
	}

	matching := api.Group("/matching")
	matching.POST("/find", rateLimitMiddleware(findLimiter), matchH.FindMatches)
	matching.POST("/request", matchH.RequestMatch)
	matching.POST("/:id/accept", matchH.AcceptMatch)
	matching.POST("/:id/decline", matchH.DeclineMatch)

	chat := api.Group("/chat")
	chat.POST("/messages", chatH.SendMessage)
	chat.GET("/sessions/:id/messages", chatH.ListMessages)

	api.POST("/safety/report", safetyH.Report)

	if streamH != nil {
		r.GET("/ws/chat/:sessionId", streamH.Stream)
	}

	return r
}

func corsConfig(allowedOrigins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	cfg.AllowHeaders = []string{"Content-Type", "Authorization"}
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = allowedOrigins
	cfg.AllowCredentials = true
	return cfg
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

// rateLimitMiddleware corta búsquedas demasiado frecuentes por usuario.
func rateLimitMiddleware(limiter service.RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		key := c.ClientIP()
		if claims, ok := GetAuthClaims(c); ok && claims.UserID != "" {
			key = claims.UserID
		}
		if !limiter.Allow(key) {
			respondError(c, http.StatusTooManyRequests, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}
