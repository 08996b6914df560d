package badger

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/reparo/internal/common"
	"github.com/ternarybob/reparo/internal/interfaces"
	"github.com/ternarybob/reparo/internal/models"
)

func newTestManager(t *testing.T) interfaces.StorageManager {
	t.Helper()

	manager, err := NewManager(common.GetLogger(), &common.BadgerConfig{
		Path: t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })

	return manager
}

func TestSaveAndListDeliveries(t *testing.T) {
	store := newTestManager(t).DeliveryStorage()
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.SaveDelivery(ctx, &models.Delivery{
			ID:         fmt.Sprintf("d-%d", i),
			ReceivedAt: base.Add(time.Duration(i) * time.Minute),
			Kind:       models.DeliveryKindEvents,
			Status:     200,
			EventCount: i,
		}))
	}

	deliveries, err := store.ListDeliveries(ctx, 10)
	require.NoError(t, err)
	require.Len(t, deliveries, 3)

	// Newest first
	assert.Equal(t, "d-2", deliveries[0].ID)
	assert.Equal(t, "d-0", deliveries[2].ID)
}

func TestListDeliveries_LimitApplied(t *testing.T) {
	store := newTestManager(t).DeliveryStorage()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveDelivery(ctx, &models.Delivery{
			ID:         fmt.Sprintf("d-%d", i),
			ReceivedAt: time.Now(),
			Kind:       models.DeliveryKindHandshake,
			Status:     200,
		}))
	}

	deliveries, err := store.ListDeliveries(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, deliveries, 2)
}

func TestSaveDelivery_UpsertByID(t *testing.T) {
	store := newTestManager(t).DeliveryStorage()
	ctx := context.Background()

	delivery := &models.Delivery{ID: "d-1", ReceivedAt: time.Now(), Kind: models.DeliveryKindEvents, Status: 200}
	require.NoError(t, store.SaveDelivery(ctx, delivery))

	delivery.Status = 500
	require.NoError(t, store.SaveDelivery(ctx, delivery))

	count, err := store.CountDeliveries(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSaveDelivery_RejectsMissingID(t *testing.T) {
	store := newTestManager(t).DeliveryStorage()

	assert.Error(t, store.SaveDelivery(context.Background(), &models.Delivery{}))
	assert.Error(t, store.SaveDelivery(context.Background(), nil))
}

func TestCountDeliveries_Empty(t *testing.T) {
	store := newTestManager(t).DeliveryStorage()

	count, err := store.CountDeliveries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
