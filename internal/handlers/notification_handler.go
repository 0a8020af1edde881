package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/entrealasyraices/storefront/internal/aws"
	"github.com/entrealasyraices/storefront/internal/getnet"
)

const (
	maxNotificationBody = 1 << 20
	publishTimeout      = 5 * time.Second
	unparsedStatus      = "unparsed"
)

// RegisterNotificationRoutes registers POST /api/getnet-notification. The
// gateway retries anything but a 200, so every accepted POST is acknowledged
// whatever its content.
func RegisterNotificationRoutes(r *gin.Engine, cfg HandlerConfig) {
	secret := cfg.Config.Getnet.SecretKey

	r.POST("/api/getnet-notification", func(c *gin.Context) {
		log := logFor(c, cfg.Logger)

		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxNotificationBody))
		if err != nil {
			log.Warn("reading notification body", zap.Error(err))
		}

		status := unparsedStatus
		attrs := map[string]string{aws.AttrSource: "getnet"}

		n, err := getnet.ParseNotification(body)
		if err != nil {
			log.Warn("unparsable gateway notification", zap.Error(err), zap.ByteString("body", body))
		} else {
			status = getnet.MetricStatus(n.Status.Status)
			attrs[aws.AttrStatus] = n.Status.Status
			attrs[aws.AttrReference] = n.Reference

			fields := []zap.Field{
				zap.String("request_id_gateway", n.RequestID.String()),
				zap.String("reference", n.Reference),
				zap.String("status", n.Status.Status),
				zap.String("reason", string(n.Status.Reason)),
			}
			// the worker skips notifications marked invalid
			if secret != "" {
				valid := n.Verify(secret)
				attrs[aws.AttrSignature] = strconv.FormatBool(valid)
				fields = append(fields, zap.Bool("signature_valid", valid))
			}
			log.Info("gateway notification received", fields...)
		}
		cfg.Metrics.GatewayNotifications.WithLabelValues(status).Inc()

		if cfg.Publisher != nil && len(body) > 0 {
			// outlives a client hang-up
			ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), publishTimeout)
			defer cancel()
			id, err := cfg.Publisher.PublishNotification(ctx, body, attrs)
			if err != nil {
				log.Error("forwarding notification failed",
					zap.Bool("queue_missing", aws.IsQueueMissing(err)),
					zap.Error(err))
			} else {
				log.Debug("notification forwarded", zap.String("message_id", id))
			}
		}

		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}
