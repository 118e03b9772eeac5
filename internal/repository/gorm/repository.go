package gormrepository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"tradebridge/internal/models"
	"tradebridge/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) AppendTrade(ctx context.Context, item *models.TradeRecord) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("ledger: store not initialized")
	}
	if item == nil {
		return fmt.Errorf("ledger: nil record")
	}
	if item.ID != 0 {
		return fmt.Errorf("ledger: record id is store-assigned, got %d", item.ID)
	}
	if item.Timestamp.IsZero() {
		item.Timestamp = time.Now().UTC()
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListRecentTrades(ctx context.Context, params repository.ListTradesParams) ([]models.TradeRecord, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("ledger: store not initialized")
	}
	query := s.db.WithContext(ctx).Model(&models.TradeRecord{})
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}
	var items []models.TradeRecord
	if err := query.Order("id DESC").Limit(limit).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountTrades(ctx context.Context, status *string) (int64, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("ledger: store not initialized")
	}
	query := s.db.WithContext(ctx).Model(&models.TradeRecord{})
	if status != nil && strings.TrimSpace(*status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*status))
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) CountTradesSince(ctx context.Context, status string, since time.Time) (int64, error) {
	if s == nil || s.db == nil {
		return 0, fmt.Errorf("ledger: store not initialized")
	}
	query := s.db.WithContext(ctx).Model(&models.TradeRecord{}).
		Where("timestamp >= ?", since)
	if strings.TrimSpace(status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(status))
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
