package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smallbiznis/booksync/internal/webhook"
	"go.uber.org/zap"
)

// HandleQuickBooksWebhook receives change notifications. The endpoint
// verification handshake echoes the challenge back unsigned; everything else
// must carry a valid signature over the raw body before any JSON is trusted.
func (s *Server) HandleQuickBooksWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.String(http.StatusInternalServerError, "Error")
		return
	}

	var challenge webhook.Challenge
	if err := json.Unmarshal(body, &challenge); err == nil && challenge.Challenge != "" {
		c.JSON(http.StatusOK, gin.H{"challenge": challenge.Challenge})
		return
	}

	signature := c.GetHeader(webhook.SignatureHeader)
	if err := s.verifier.Verify(body, signature); err != nil {
		s.log.Warn("webhook signature rejected", zap.Error(err))
		if s.metrics != nil {
			s.metrics.WebhookRejected.Inc()
		}
		c.String(http.StatusUnauthorized, "Unauthorized")
		return
	}

	var notification webhook.Notification
	if err := json.Unmarshal(body, &notification); err != nil {
		s.log.Error("webhook payload decode failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "Error")
		return
	}

	if s.metrics != nil {
		s.metrics.WebhookDeliveries.Inc()
	}

	deliveryID := uuid.NewString()
	for _, event := range notification.EventNotifications {
		for _, entity := range event.DataChangeEvent.Entities {
			s.dispatcher.Enqueue(webhook.Task{
				DeliveryID: deliveryID,
				Entity:     entity.Name,
				QBID:       entity.ID,
				Operation:  entity.Operation,
			})
		}
	}

	c.String(http.StatusOK, "OK")
}
