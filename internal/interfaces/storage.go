package interfaces

import (
	"context"

	"github.com/ternarybob/reparo/internal/models"
)

// DeliveryStorage records webhook delivery outcomes for operator diagnosis
type DeliveryStorage interface {
	SaveDelivery(ctx context.Context, delivery *models.Delivery) error
	ListDeliveries(ctx context.Context, limit int) ([]*models.Delivery, error)
	CountDeliveries(ctx context.Context) (int, error)
}

// StorageManager provides access to all storage interfaces
type StorageManager interface {
	DeliveryStorage() DeliveryStorage
	Close() error
}
