// Package gateway defines the order-execution boundary. The signal processor
// depends only on this interface, so the venue client underneath can be
// swapped without touching the processing pipeline.
package gateway

import (
	"context"
	"time"
)

// OrderConfirmation is the venue-neutral acknowledgement of a placed order.
type OrderConfirmation struct {
	Symbol        string
	OrderID       string
	ClientOrderID string
	VenueStatus   string
	ExecutedQty   float64
	TransactTime  time.Time
}

// OrderGateway places one market order per call, fire-once: implementations
// must not retry, and must surface the venue's error message verbatim.
type OrderGateway interface {
	PlaceMarketOrder(ctx context.Context, symbol, side string, quantity float64) (*OrderConfirmation, error)
}
