package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tradebridge/internal/service"
)

type WebhookHandler struct {
	Processor *service.SignalProcessor
	Logger    *zap.Logger
}

func (h *WebhookHandler) Register(r *gin.Engine) {
	r.POST("/webhook", h.webhook)
}

// @Summary Receive a trading signal
// @Tags webhook
// @Accept json
// @Produce json
// @Param signal body service.RawSignal true "signal"
// @Success 200 {object} service.Result
// @Router /webhook [post]
func (h *WebhookHandler) webhook(c *gin.Context) {
	if h.Processor == nil {
		Error(c, http.StatusServiceUnavailable, "processor unavailable", nil)
		return
	}

	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	// An undecodable body is not a processed signal: no trade record, the
	// ledger invariant covers signals that reached the pipeline.
	var raw service.RawSignal
	if err := json.Unmarshal(payload, &raw); err != nil {
		h.Logger.Warn("webhook body rejected", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}

	result := h.Processor.Process(c.Request.Context(), raw, payload)

	// Both branches answer 200: webhook senders key off the body shape.
	c.JSON(http.StatusOK, result)
}
