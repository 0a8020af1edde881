package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/entrealasyraices/storefront/internal/mailer"
	"github.com/entrealasyraices/storefront/internal/metrics"
	"github.com/entrealasyraices/storefront/internal/validation"
)

const (
	endpointOrderNotify = "order-notify"
	endpointSendEmail   = "send-email"

	maxOrderBody = 256 << 10

	skippedWarning = "Notificación no enviada (faltan variables de entorno)"
)

// RegisterMailRoutes registers the two order e-mail endpoints: order-notify
// goes through the Resend API, send-email through the SMTP mailbox. A missing
// transport configuration is answered with 200 and a warning so the buyer's
// checkout never fails on it.
func RegisterMailRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	mc := cfg.Config.Mail

	resend := cfg.Resend
	if resend == nil && len(mc.ResendMissing()) == 0 {
		resend = mailer.NewResendTransport(mc.ResendAPIKey, mailer.WithLogger(cfg.Logger))
	}
	smtp := cfg.SMTP
	if smtp == nil && len(mc.SMTPMissing()) == 0 {
		t, err := mailer.NewSMTPTransport(mailer.SMTPSettings{
			Host:     mc.SMTPHost,
			Port:     mc.SMTPPort,
			Username: mc.SMTPUser,
			Password: mc.SMTPPass,
		}, cfg.Logger)
		if err != nil {
			cfg.Logger.Error("smtp transport disabled", zap.Error(err))
		} else {
			smtp = t
		}
	}
	emails := cfg.Metrics.OrderEmails

	r.POST("/api/order-notify", func(c *gin.Context) {
		log := logFor(c, cfg.Logger)

		if missing := mc.ResendMissing(); len(missing) > 0 || resend == nil {
			log.Warn("order notification skipped", zap.Strings("missing", missing))
			emails.WithLabelValues(endpointOrderNotify, metrics.EmailSkipped).Inc()
			c.JSON(http.StatusOK, gin.H{"ok": false, "warning": skippedWarning})
			return
		}

		raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxOrderBody))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid_order_json", "details": err.Error()})
			return
		}
		order, err := decodeOrder(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid_order_json", "details": err.Error()})
			return
		}

		html, err := mailer.RenderStaffHTML(order)
		if err != nil {
			emails.WithLabelValues(endpointOrderNotify, metrics.EmailFailed).Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "render_failed", "details": err.Error()})
			return
		}

		msg := mailer.Message{
			FromName: mailer.SenderName,
			FromAddr: fromAddr(mc.NotifyFrom),
			To:       []string{mc.NotifyTo},
			Subject:  mailer.StaffSubject(order),
			HTML:     html,
		}
		if err := resend.Send(c.Request.Context(), msg); err != nil {
			log.Error("order notification failed", zap.String("reference", order.Reference), zap.Error(err))
			emails.WithLabelValues(endpointOrderNotify, metrics.EmailFailed).Inc()
			c.JSON(http.StatusInternalServerError, gin.H{
				"ok":      false,
				"error":   "notification_send_failed",
				"details": err.Error(),
			})
			return
		}

		emails.WithLabelValues(endpointOrderNotify, metrics.EmailSent).Inc()
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	r.POST("/api/send-email", func(c *gin.Context) {
		log := logFor(c, cfg.Logger)

		if missing := mc.SMTPMissing(); len(missing) > 0 || smtp == nil {
			log.Warn("order e-mails skipped", zap.Strings("missing", missing))
			emails.WithLabelValues(endpointSendEmail, metrics.EmailSkipped).Inc()
			c.JSON(http.StatusOK, gin.H{"ok": false, "warning": skippedWarning})
			return
		}

		var req validation.SendEmailRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			return
		}
		order := orderFromForm(req)

		if err := sendOrderEmails(c.Request.Context(), smtp, mc.SMTPUser, order); err != nil {
			log.Error("order e-mails failed", zap.String("buyer", req.Correo), zap.Error(err))
			emails.WithLabelValues(endpointSendEmail, metrics.EmailFailed).Inc()
			c.JSON(http.StatusInternalServerError, gin.H{
				"ok":      false,
				"error":   "email_send_failed",
				"details": err.Error(),
			})
			return
		}

		emails.WithLabelValues(endpointSendEmail, metrics.EmailSent).Inc()
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
}

// sendOrderEmails mails the shop's own inbox first, then the buyer. A failure
// on the first stops the second.
func sendOrderEmails(ctx context.Context, t mailer.Transport, mailbox string, order mailer.Order) error {
	staffHTML, err := mailer.RenderStaffHTML(order)
	if err != nil {
		return err
	}
	customerHTML, err := mailer.RenderCustomerHTML(order)
	if err != nil {
		return err
	}

	staff := mailer.Message{
		FromName: mailer.SenderName,
		FromAddr: mailbox,
		To:       []string{mailbox},
		Subject:  mailer.StaffSubject(order),
		HTML:     staffHTML,
	}
	if err := t.Send(ctx, staff); err != nil {
		return fmt.Errorf("staff notification: %w", err)
	}
	customer := mailer.Message{
		FromName: mailer.SenderName,
		FromAddr: mailbox,
		To:       []string{order.Comprador.Correo},
		Subject:  mailer.CustomerSubject,
		HTML:     customerHTML,
	}
	if err := t.Send(ctx, customer); err != nil {
		return fmt.Errorf("buyer confirmation: %w", err)
	}
	return nil
}

// decodeOrder accepts the order either as a JSON object or as a JSON string
// holding one; some clients post it pre-serialised. An empty body is an
// empty order.
func decodeOrder(raw []byte) (mailer.Order, error) {
	var order mailer.Order
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return order, nil
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return order, err
		}
		raw = []byte(inner)
	}
	if err := json.Unmarshal(raw, &order); err != nil {
		return order, err
	}
	return order, nil
}

// orderFromForm maps the flat checkout form onto the order model.
func orderFromForm(req validation.SendEmailRequest) mailer.Order {
	items := make([]mailer.Line, 0, len(req.Productos))
	for _, p := range req.Productos {
		items = append(items, mailer.Line{ID: p.ID, Name: p.Name, Qty: p.Qty, Price: p.Price})
	}
	return mailer.Order{
		TipoDocumento: req.TipoDocumento,
		Comprador: mailer.Buyer{
			Nombre:   req.Nombre,
			Apellido: req.Apellido,
			RUT:      req.RUT,
			Telefono: req.Telefono,
			Correo:   req.Correo,
		},
		Factura: mailer.Invoice{
			Empresa:     req.Empresa,
			RUTEmpresa:  req.RUTEmpresa,
			RazonSocial: req.RazonSocial,
			Direccion:   req.DireccionEmpresa,
		},
		Despacho: mailer.Shipping{
			DireccionCalle: req.DireccionDespacho,
			Comuna:         req.Comuna,
			Ciudad:         req.Ciudad,
			Region:         req.Region,
			Comentarios:    req.Comentarios,
		},
		Items:    items,
		Subtotal: req.Subtotal,
		Shipping: req.Envio,
		IVA:      req.IVAProducto,
		Amount:   req.Total,
	}
}

func fromAddr(configured string) string {
	if configured == "" {
		return mailer.DefaultNoReply
	}
	return configured
}
