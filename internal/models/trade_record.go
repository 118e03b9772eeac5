package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error kinds recorded alongside error_detail so failures stay queryable
// without parsing free text.
const (
	ErrKindInvalidAction   = "invalid_action"
	ErrKindInvalidQuantity = "invalid_quantity"
	ErrKindInvalidField    = "invalid_field"
	ErrKindExecution       = "execution"
)

// TradeRecord is one immutable audit row per processed signal. Rows are only
// ever inserted; there is no update or delete path in the service.
type TradeRecord struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Action   string  `gorm:"type:varchar(10);not null" json:"action"`
	Symbol   string  `gorm:"type:varchar(30);index" json:"symbol"`
	Quantity float64 `gorm:"not null" json:"quantity"`

	EntryPrice      float64 `gorm:"not null;default:0" json:"entry_price"`
	StopLossPrice   float64 `gorm:"column:sl_price;not null;default:0" json:"sl_price"`
	TakeProfitPrice float64 `gorm:"column:tp_price;not null;default:0" json:"tp_price"`

	ClientOrderID string         `gorm:"type:varchar(40)" json:"client_order_id,omitempty"`
	Payload       datatypes.JSON `gorm:"type:json" json:"payload,omitempty"`

	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`

	Status      string `gorm:"type:varchar(10);not null;index" json:"status"`
	ErrorKind   string `gorm:"type:varchar(20)" json:"error_kind,omitempty"`
	ErrorDetail string `gorm:"type:text" json:"error_detail"`
}

func (TradeRecord) TableName() string {
	return "trades"
}
