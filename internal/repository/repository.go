package repository

import (
	"context"
	"time"

	"tradebridge/internal/models"
)

// ListTradesParams narrows ledger reads. Ordering is always id descending;
// Status, when set, must be models.StatusSuccess or models.StatusError.
type ListTradesParams struct {
	Limit  int
	Status *string
}

// Ledger is the append-only trade audit store. AppendTrade assigns the record
// id and returns only once the row is committed to stable storage. Records are
// never mutated or deleted through this interface.
type Ledger interface {
	AppendTrade(ctx context.Context, item *models.TradeRecord) error
	ListRecentTrades(ctx context.Context, params ListTradesParams) ([]models.TradeRecord, error)
	CountTrades(ctx context.Context, status *string) (int64, error)
	CountTradesSince(ctx context.Context, status string, since time.Time) (int64, error)
}
