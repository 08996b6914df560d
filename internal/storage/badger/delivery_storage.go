package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/reparo/internal/interfaces"
	"github.com/ternarybob/reparo/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// DeliveryStorage implements the DeliveryStorage interface for Badger
type DeliveryStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewDeliveryStorage creates a new DeliveryStorage instance
func NewDeliveryStorage(db *BadgerDB, logger arbor.ILogger) interfaces.DeliveryStorage {
	return &DeliveryStorage{
		db:     db,
		logger: logger,
	}
}

// SaveDelivery records one webhook delivery outcome
func (s *DeliveryStorage) SaveDelivery(ctx context.Context, delivery *models.Delivery) error {
	if delivery == nil || delivery.ID == "" {
		return fmt.Errorf("delivery is nil or has no id")
	}

	if err := s.db.Store().Upsert(delivery.ID, delivery); err != nil {
		return fmt.Errorf("failed to save delivery: %w", err)
	}
	return nil
}

// ListDeliveries returns the most recent deliveries, newest first
func (s *DeliveryStorage) ListDeliveries(ctx context.Context, limit int) ([]*models.Delivery, error) {
	if limit <= 0 {
		limit = 50
	}

	var deliveries []*models.Delivery
	query := (&badgerhold.Query{}).SortBy("ReceivedAt").Reverse().Limit(limit)
	if err := s.db.Store().Find(&deliveries, query); err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	return deliveries, nil
}

// CountDeliveries returns the total number of recorded deliveries
func (s *DeliveryStorage) CountDeliveries(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.Delivery{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count deliveries: %w", err)
	}
	return int(count), nil
}
