package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"tradebridge/internal/models"
	"tradebridge/internal/repository"
)

const (
	dashboardLimit = 25
	errorLogLimit  = 50
)

// DashboardHandler renders the read-only HTML views over the ledger.
// Reads go through Cache so page refreshes stay off the writer connection.
type DashboardHandler struct {
	Ledger repository.Ledger
	Cache  *cache.Cache
	Logger *zap.Logger
}

func (h *DashboardHandler) Register(r *gin.Engine) {
	r.GET("/dashboard", h.dashboard)
	r.GET("/logs", h.logs)
}

func (h *DashboardHandler) dashboard(c *gin.Context) {
	trades, err := h.recent(c.Request.Context(), "dashboard", repository.ListTradesParams{Limit: dashboardLimit})
	if err != nil {
		h.Logger.Error("dashboard query failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "ledger unavailable")
		return
	}
	c.HTML(http.StatusOK, "dashboard.html", gin.H{"Trades": trades})
}

func (h *DashboardHandler) logs(c *gin.Context) {
	status := models.StatusError
	trades, err := h.recent(c.Request.Context(), "logs", repository.ListTradesParams{Limit: errorLogLimit, Status: &status})
	if err != nil {
		h.Logger.Error("error log query failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "ledger unavailable")
		return
	}
	c.HTML(http.StatusOK, "logs.html", gin.H{"Logs": trades})
}

func (h *DashboardHandler) recent(ctx context.Context, key string, params repository.ListTradesParams) ([]models.TradeRecord, error) {
	if h.Cache != nil {
		if v, ok := h.Cache.Get(key); ok {
			return v.([]models.TradeRecord), nil
		}
	}
	trades, err := h.Ledger.ListRecentTrades(ctx, params)
	if err != nil {
		return nil, err
	}
	if h.Cache != nil {
		h.Cache.SetDefault(key, trades)
	}
	return trades, nil
}
