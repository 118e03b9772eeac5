package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"tradebridge/internal/models"
)

func seedLedger(n int, status string) *fakeLedger {
	lg := &fakeLedger{}
	for i := 0; i < n; i++ {
		rec := models.TradeRecord{
			Action:    "BUY",
			Symbol:    "BTCUSD",
			Quantity:  1,
			Timestamp: time.Now().UTC(),
			Status:    status,
		}
		if status == models.StatusError {
			rec.ErrorDetail = "rejected"
		}
		_ = lg.AppendTrade(nil, &rec)
	}
	return lg
}

func newTradeRouter(lg *fakeLedger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := &TradeHandler{Ledger: lg}
	h.Register(engine)
	return engine
}

func TestTradesList_LimitAndOrder(t *testing.T) {
	engine := newTradeRouter(seedLedger(30, models.StatusSuccess))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/trades?limit=25", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("code=%d", w.Code)
	}

	var resp struct {
		Code int                  `json:"code"`
		Data []models.TradeRecord `json:"data"`
		Meta map[string]any       `json:"meta"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body: %v", err)
	}
	if len(resp.Data) != 25 {
		t.Fatalf("len=%d want 25", len(resp.Data))
	}
	for i := 1; i < len(resp.Data); i++ {
		if resp.Data[i].ID >= resp.Data[i-1].ID {
			t.Fatalf("not descending at %d", i)
		}
	}
	if resp.Meta["total"].(float64) != 30 {
		t.Fatalf("meta=%v want total=30", resp.Meta)
	}
}

func TestTradesList_RejectsUnknownStatus(t *testing.T) {
	engine := newTradeRouter(seedLedger(1, models.StatusSuccess))

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/trades?status=pending", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("code=%d want 400", w.Code)
	}
}

func TestTradesList_StatusFilter(t *testing.T) {
	lg := seedLedger(3, models.StatusSuccess)
	for i := 0; i < 2; i++ {
		rec := models.TradeRecord{Action: "SELL", Symbol: "ETHUSD", Quantity: 1,
			Timestamp: time.Now().UTC(), Status: models.StatusError, ErrorDetail: "rejected"}
		_ = lg.AppendTrade(nil, &rec)
	}
	engine := newTradeRouter(lg)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/trades?status=error", nil))
	var resp struct {
		Data []models.TradeRecord `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("body: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("len=%d want 2", len(resp.Data))
	}
	for _, rec := range resp.Data {
		if rec.Status != models.StatusError {
			t.Fatalf("status=%s", rec.Status)
		}
	}
}
