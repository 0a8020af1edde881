package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/entrealasyraices/storefront/internal/getnet"
	"github.com/entrealasyraices/storefront/internal/metrics"
	"github.com/entrealasyraices/storefront/internal/validation"
)

const (
	fallbackIP        = "127.0.0.1"
	fallbackUserAgent = "EntreAlasYRaices-Checkout/1.0"
)

// RegisterCheckoutRoutes registers POST /api/getnet-create-session.
func RegisterCheckoutRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	gw := cfg.Config.Getnet
	gateway := cfg.Gateway
	if gateway == nil {
		gateway = getnet.NewClient(gw.BaseURL, nil, cfg.Logger)
	}
	ttl := time.Duration(gw.SessionTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	r.POST("/api/getnet-create-session", func(c *gin.Context) {
		ctx := c.Request.Context()
		log := logFor(c, cfg.Logger)
		outcome := cfg.Metrics.CheckoutSessions

		var req validation.CreateSessionRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			outcome.WithLabelValues(metrics.OutcomeInvalid).Inc()
			return
		}

		if missing := gw.Missing(); len(missing) > 0 {
			log.Error("getnet is not configured", zap.Strings("missing", missing))
			outcome.WithLabelValues(metrics.OutcomeMisconfigured).Inc()
			c.JSON(http.StatusInternalServerError, gin.H{
				"ok":      false,
				"error":   "configuration_error",
				"details": "missing environment variables: " + strings.Join(missing, ", "),
			})
			return
		}

		now := cfg.Now()
		auth, err := getnet.GenerateAuth(gw.Login, gw.SecretKey, now)
		if err != nil {
			outcome.WithLabelValues(metrics.OutcomeError).Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal_error", "details": err.Error()})
			return
		}

		sessionReq := getnet.SessionRequest{
			Auth:   auth,
			Locale: gw.Locale,
			Payment: getnet.Payment{
				Reference:   req.Reference,
				Description: req.Description,
				Amount:      getnet.Amount{Currency: gw.Currency, Total: req.Amount},
			},
			Expiration: now.Add(ttl).Format(time.RFC3339),
			ReturnURL:  strings.ReplaceAll(gw.ReturnURL, "{reference}", url.QueryEscape(req.Reference)),
			IPAddress:  clientIP(c.Request),
			UserAgent:  userAgent(c.Request),
		}

		resp, err := gateway.CreateSession(ctx, sessionReq)
		if err != nil {
			outcome.WithLabelValues(metrics.OutcomeError).Inc()
			var fe *getnet.UpstreamFormatError
			if errors.As(err, &fe) {
				c.JSON(http.StatusInternalServerError, gin.H{
					"ok":      false,
					"error":   "upstream_non_json",
					"details": fe.Raw,
				})
				return
			}
			log.Error("getnet session failed", zap.String("reference", req.Reference), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"ok":      false,
				"error":   "gateway_unreachable",
				"details": err.Error(),
			})
			return
		}

		if !resp.Succeeded() {
			log.Warn("getnet rejected session",
				zap.String("reference", req.Reference),
				zap.String("status", resp.Status.Status),
				zap.String("message", resp.Status.Message))
			outcome.WithLabelValues(metrics.OutcomeRejected).Inc()
			c.JSON(http.StatusBadRequest, gin.H{
				"ok":      false,
				"error":   "gateway_rejected",
				"details": rawOrStatus(resp),
			})
			return
		}

		outcome.WithLabelValues(metrics.OutcomeCreated).Inc()
		c.JSON(http.StatusOK, gin.H{
			"ok":         true,
			"requestId":  resp.RequestID,
			"processUrl": resp.ProcessURL,
		})
	})
}

func rawOrStatus(resp *getnet.SessionResponse) any {
	if len(resp.Raw) > 0 {
		return json.RawMessage(resp.Raw)
	}
	return gin.H{"status": resp.Status}
}

// clientIP takes the first X-Forwarded-For hop, then the connection address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return fallbackIP
}

func userAgent(r *http.Request) string {
	if ua := r.UserAgent(); ua != "" {
		return ua
	}
	return fallbackUserAgent
}
