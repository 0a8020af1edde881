package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/entrealasyraices/storefront/internal/config"
	"github.com/entrealasyraices/storefront/internal/getnet"
	"github.com/entrealasyraices/storefront/internal/mailer"
	"github.com/entrealasyraices/storefront/internal/metrics"
)

// SessionCreator opens hosted checkout sessions. *getnet.Client implements it.
type SessionCreator interface {
	CreateSession(ctx context.Context, in getnet.SessionRequest) (*getnet.SessionResponse, error)
}

// NotificationPublisher forwards raw gateway notifications. *aws.Publisher implements it.
type NotificationPublisher interface {
	PublishNotification(ctx context.Context, body []byte, attributes map[string]string) (string, error)
}

// HandlerConfig groups dependencies for every route. Nil dependencies are
// built from Config where possible; Publisher stays nil when no queue is set.
type HandlerConfig struct {
	Config    *config.Config
	Gateway   SessionCreator
	Publisher NotificationPublisher
	Resend    mailer.Transport
	SMTP      mailer.Transport
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	Now       func() time.Time

	// ExposeMetrics mounts GET /metrics.
	ExposeMetrics bool
}

func (cfg *HandlerConfig) defaults() {
	if cfg.Config == nil {
		cfg.Config = &config.Config{}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.New()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
}

const requestIDHeader = "X-Request-Id"

// SetupRouter builds the engine with every storefront route registered.
func SetupRouter(cfg HandlerConfig) *gin.Engine {
	cfg.defaults()

	r := gin.New()
	r.HandleMethodNotAllowed = true
	r.Use(requestID(), accessLog(cfg.Logger), cfg.Metrics.Middleware(), recovery(cfg.Logger))

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"ok": false, "error": "method_not_allowed"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not_found"})
	})

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.ExposeMetrics {
		r.GET("/metrics", cfg.Metrics.Handler())
	}

	RegisterCheckoutRoutes(r, cfg)
	RegisterNotificationRoutes(r, cfg)
	RegisterMailRoutes(r, cfg)

	return r
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// recovery turns a panic anywhere below it into a 500 carrying the panic value.
func recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic in handler",
			zap.String("request_id", c.GetString("request_id")),
			zap.Any("panic", recovered))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"ok":      false,
			"error":   "internal_error",
			"details": fmt.Sprint(recovered),
		})
	})
}

func logFor(c *gin.Context, logger *zap.Logger) *zap.Logger {
	return logger.With(zap.String("request_id", c.GetString("request_id")))
}
