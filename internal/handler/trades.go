package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"tradebridge/internal/models"
	"tradebridge/internal/repository"
)

// TradeHandler is the JSON view of the ledger for programmatic consumers.
type TradeHandler struct {
	Ledger repository.Ledger
}

func (h *TradeHandler) Register(r *gin.Engine) {
	r.GET("/api/trades", h.list)
}

// @Summary List recent trade records
// @Tags trades
// @Produce json
// @Param limit query int false "max records (default 50)"
// @Param status query string false "success or error"
// @Success 200 {object} map[string]any
// @Router /api/trades [get]
func (h *TradeHandler) list(c *gin.Context) {
	if h.Ledger == nil {
		Error(c, http.StatusInternalServerError, "ledger unavailable", nil)
		return
	}
	limit := intQuery(c, "limit", 50)
	var status *string
	if v := strings.TrimSpace(c.Query("status")); v != "" {
		if v != models.StatusSuccess && v != models.StatusError {
			Error(c, http.StatusBadRequest, "status must be success or error", nil)
			return
		}
		status = &v
	}
	params := repository.ListTradesParams{Limit: limit, Status: status}
	items, err := h.Ledger.ListRecentTrades(c.Request.Context(), params)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	total, err := h.Ledger.CountTrades(c.Request.Context(), status)
	if err != nil {
		Error(c, http.StatusInternalServerError, err.Error(), nil)
		return
	}
	Ok(c, items, map[string]any{"limit": limit, "total": total})
}
