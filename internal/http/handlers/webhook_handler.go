// README: WhatsApp Cloud API webhook (subscription handshake and inbound messages).
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/viniciusalbino/autoAtendeAI/internal/channel/whatsapp"
	"github.com/viniciusalbino/autoAtendeAI/internal/modules/dealership"
	"github.com/viniciusalbino/autoAtendeAI/internal/service"
)

type WhatsAppProcessor interface {
	ProcessWhatsApp(ctx context.Context, in whatsapp.Inbound) error
}

type WebhookHandler struct {
	processor   WhatsAppProcessor
	verifyToken string
	logger      *zap.Logger
}

func NewWebhookHandler(processor WhatsAppProcessor, verifyToken string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{processor: processor, verifyToken: verifyToken, logger: logger}
}

// Verify handles GET /whatsapp/webhook.
func (h *WebhookHandler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	if mode != "subscribe" || h.verifyToken == "" || token != h.verifyToken {
		writeError(c, http.StatusForbidden, "verification failed")
		return
	}
	c.String(http.StatusOK, c.Query("hub.challenge"))
}

// Receive handles POST /whatsapp/webhook.
func (h *WebhookHandler) Receive(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		writeError(c, http.StatusBadRequest, "unreadable body")
		return
	}
	if err := whatsapp.Validate(body); err != nil {
		h.logger.Warn("invalid webhook payload", zap.Error(err))
		writeError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	var payload whatsapp.WebhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	inbound := whatsapp.Events(payload)
	if len(inbound) == 0 {
		// delivery receipts and read statuses
		writeJSON(c, http.StatusOK, statusResponse{Status: "ignored"})
		return
	}

	var notFound, failed bool
	for _, in := range inbound {
		err := h.processor.ProcessWhatsApp(c.Request.Context(), in)
		switch {
		case err == nil, errors.Is(err, service.ErrDuplicate):
		case errors.Is(err, dealership.ErrNotFound):
			notFound = true
		default:
			failed = true
			h.logger.Error("process message failed", zap.String("event_id", in.Event.ID), zap.Error(err))
		}
	}

	switch {
	case failed:
		// non-2xx makes the platform redeliver; claimed ids were released
		writeError(c, http.StatusInternalServerError, "internal error")
	case notFound:
		writeError(c, http.StatusNotFound, "dealership not found")
	default:
		writeJSON(c, http.StatusOK, statusResponse{Status: "ok"})
	}
}
