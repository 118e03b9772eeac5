package binance

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"tradebridge/internal/gateway"
)

// orderResponse is the venue's order acknowledgement. Quantities come back as
// strings on the wire.
type orderResponse struct {
	Symbol        string `json:"symbol"`
	OrderID       int64  `json:"orderId"`
	ClientOrderID string `json:"clientOrderId"`
	Status        string `json:"status"`
	ExecutedQty   string `json:"executedQty"`
	TransactTime  int64  `json:"transactTime"`
}

func parseOrderConfirmation(raw []byte) (*gateway.OrderConfirmation, error) {
	var resp orderResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("binance: failed to parse order response: %w", err)
	}
	conf := &gateway.OrderConfirmation{
		Symbol:        resp.Symbol,
		ClientOrderID: resp.ClientOrderID,
		VenueStatus:   resp.Status,
	}
	if resp.OrderID > 0 {
		conf.OrderID = strconv.FormatInt(resp.OrderID, 10)
	}
	if resp.ExecutedQty != "" {
		if qty, err := strconv.ParseFloat(resp.ExecutedQty, 64); err == nil {
			conf.ExecutedQty = qty
		}
	}
	if resp.TransactTime > 0 {
		conf.TransactTime = time.UnixMilli(resp.TransactTime).UTC()
	}
	return conf, nil
}
