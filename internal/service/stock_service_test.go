package service

import (
	"testing"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStockService(t *testing.T) (StockService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewStockService(
		repository.NewItemRepo(db),
		repository.NewIncomingRepo(db),
		repository.NewOutgoingRepo(db),
		db,
		nil,
	)
	return svc, db
}

func TestCreateIncoming(t *testing.T) {
	actor := testActor(model.RoleWarehouseStaff)

	t.Run("received adds to the ledger", func(t *testing.T) {
		svc, db := newStockService(t)
		item := seedItem(t, db, 0)

		trx := incomingFixture(item.ID, 20, model.IncomingReceived)
		require.NoError(t, svc.CreateIncoming(trx, actor))

		assert.Equal(t, 20, currentStock(t, db, item.ID))
		assert.NotEmpty(t, trx.TransactionNumber)
		assert.Equal(t, &actor.ID, trx.ReceivedByID)
	})

	t.Run("pending does not move the ledger", func(t *testing.T) {
		svc, db := newStockService(t)
		item := seedItem(t, db, 0)

		require.NoError(t, svc.CreateIncoming(incomingFixture(item.ID, 20, model.IncomingPending), actor))

		assert.Equal(t, 0, currentStock(t, db, item.ID))
	})

	t.Run("unknown item is rejected", func(t *testing.T) {
		svc, db := newStockService(t)
		item := seedItem(t, db, 0)
		require.NoError(t, db.Delete(item).Error)

		err := svc.CreateIncoming(incomingFixture(item.ID, 20, model.IncomingReceived), actor)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("unknown supplier is rejected", func(t *testing.T) {
		svc, db := newStockService(t)
		item := seedItem(t, db, 0)
		supplier := seedSupplier(t, db)
		require.NoError(t, db.Unscoped().Delete(supplier).Error)

		trx := incomingFixture(item.ID, 20, model.IncomingReceived)
		trx.SupplierID = &supplier.ID
		err := svc.CreateIncoming(trx, actor)
		assert.ErrorIs(t, err, ErrSupplierNotFound)
		assert.Equal(t, 0, currentStock(t, db, item.ID))
	})

	t.Run("zero quantity fails validation", func(t *testing.T) {
		svc, db := newStockService(t)
		item := seedItem(t, db, 0)

		err := svc.CreateIncoming(incomingFixture(item.ID, 0, model.IncomingReceived), actor)
		assert.Error(t, err)
		assert.Equal(t, 0, currentStock(t, db, item.ID))
	})
}

func TestUpdateIncoming(t *testing.T) {
	actor := testActor(model.RoleWarehouseStaff)

	t.Run("quantity edit while received moves by the difference", func(t *testing.T) {
		svc, db := newStockService(t)
		item := seedItem(t, db, 0)

		trx := incomingFixture(item.ID, 20, model.IncomingReceived)
		require.NoError(t, svc.CreateIncoming(trx, actor))

		update := incomingFixture(item.ID, 15, model.IncomingReceived)
		_, err := svc.UpdateIncoming(trx.ID, update, actor)
		require.NoError(t, err)

		assert.Equal(t, 15, currentStock(t, db, item.ID))
	})

	t.Run("revert received to cancelled subtracts exactly once", func(t *testing.T) {
		svc, db := newStockService(t)
		item := seedItem(t, db, 0)

		trx := incomingFixture(item.ID, 20, model.IncomingReceived)
		require.NoError(t, svc.CreateIncoming(trx, actor))

		_, err := svc.UpdateIncoming(trx.ID, incomingFixture(item.ID, 20, model.IncomingCancelled), actor)
		require.NoError(t, err)
		assert.Equal(t, 0, currentStock(t, db, item.ID))

		// Saving again while cancelled must not subtract a second time
		_, err = svc.UpdateIncoming(trx.ID, incomingFixture(item.ID, 20, model.IncomingCancelled), actor)
		require.NoError(t, err)
		assert.Equal(t, 0, currentStock(t, db, item.ID))
	})

	t.Run("pending to received applies the full quantity", func(t *testing.T) {
		svc, db := newStockService(t)
		item := seedItem(t, db, 0)

		trx := incomingFixture(item.ID, 20, model.IncomingPending)
		require.NoError(t, svc.CreateIncoming(trx, actor))
		assert.Equal(t, 0, currentStock(t, db, item.ID))

		_, err := svc.UpdateIncoming(trx.ID, incomingFixture(item.ID, 20, model.IncomingReceived), actor)
		require.NoError(t, err)
		assert.Equal(t, 20, currentStock(t, db, item.ID))
	})

	t.Run("revert may drive the ledger negative", func(t *testing.T) {
		svc, db := newStockService(t)
		item := seedItem(t, db, 0)

		trx := incomingFixture(item.ID, 20, model.IncomingReceived)
		require.NoError(t, svc.CreateIncoming(trx, actor))
		require.NoError(t, svc.CreateOutgoing(outgoingFixture(item.ID, 15, model.OutgoingReleased), actor))
		assert.Equal(t, 5, currentStock(t, db, item.ID))

		_, err := svc.UpdateIncoming(trx.ID, incomingFixture(item.ID, 20, model.IncomingCancelled), actor)
		require.NoError(t, err)
		assert.Equal(t, -15, currentStock(t, db, item.ID))
	})

	t.Run("item cannot change on an existing transaction", func(t *testing.T) {
		svc, db := newStockService(t)
		item := seedItem(t, db, 0)
		other := seedItem(t, db, 0)

		trx := incomingFixture(item.ID, 20, model.IncomingReceived)
		require.NoError(t, svc.CreateIncoming(trx, actor))

		_, err := svc.UpdateIncoming(trx.ID, incomingFixture(other.ID, 20, model.IncomingReceived), actor)
		assert.ErrorIs(t, err, ErrItemChanged)
		assert.Equal(t, 20, currentStock(t, db, item.ID))
	})

	t.Run("number is never regenerated", func(t *testing.T) {
		svc, db := newStockService(t)
		item := seedItem(t, db, 0)

		trx := incomingFixture(item.ID, 20, model.IncomingReceived)
		require.NoError(t, svc.CreateIncoming(trx, actor))
		original := trx.TransactionNumber

		updated, err := svc.UpdateIncoming(trx.ID, incomingFixture(item.ID, 5, model.IncomingReceived), actor)
		require.NoError(t, err)
		assert.Equal(t, original, updated.TransactionNumber)
	})
}

func TestCreateOutgoing(t *testing.T) {
	actor := testActor(model.RoleWarehouseStaff)

	t.Run("released deducts from the ledger", func(t *testing.T) {
		svc, db := newStockService(t)
		item := seedItem(t, db, 10)

		trx := outgoingFixture(item.ID, 4, model.OutgoingReleased)
		require.NoError(t, svc.CreateOutgoing(trx, actor))

		assert.Equal(t, 6, currentStock(t, db, item.ID))
		assert.NotEmpty(t, trx.TransactionNumber)
	})

	t.Run("pending does not move the ledger", func(t *testing.T) {
		svc, db := newStockService(t)
		item := seedItem(t, db, 10)

		require.NoError(t, svc.CreateOutgoing(outgoingFixture(item.ID, 4, model.OutgoingPending), actor))
		assert.Equal(t, 10, currentStock(t, db, item.ID))
	})

	t.Run("insufficient stock aborts without a log row", func(t *testing.T) {
		svc, db := newStockService(t)
		item := seedItem(t, db, 3)

		err := svc.CreateOutgoing(outgoingFixture(item.ID, 5, model.OutgoingReleased), actor)
		assert.ErrorIs(t, err, ErrInsufficientStock)

		assert.Equal(t, 3, currentStock(t, db, item.ID))
		var count int64
		require.NoError(t, db.Model(&model.OutgoingTransaction{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("release of the exact remaining stock succeeds", func(t *testing.T) {
		svc, db := newStockService(t)
		item := seedItem(t, db, 5)

		require.NoError(t, svc.CreateOutgoing(outgoingFixture(item.ID, 5, model.OutgoingReleased), actor))
		assert.Equal(t, 0, currentStock(t, db, item.ID))
	})
}

func TestUpdateOutgoing(t *testing.T) {
	actor := testActor(model.RoleWarehouseStaff)

	t.Run("quantity edit while released moves by the difference", func(t *testing.T) {
		svc, db := newStockService(t)
		item := seedItem(t, db, 20)

		trx := outgoingFixture(item.ID, 5, model.OutgoingReleased)
		require.NoError(t, svc.CreateOutgoing(trx, actor))
		assert.Equal(t, 15, currentStock(t, db, item.ID))

		_, err := svc.UpdateOutgoing(trx.ID, outgoingFixture(item.ID, 8, model.OutgoingReleased), actor)
		require.NoError(t, err)
		assert.Equal(t, 12, currentStock(t, db, item.ID))
	})

	t.Run("cancelling a release restores the stock", func(t *testing.T) {
		svc, db := newStockService(t)
		item := seedItem(t, db, 20)

		trx := outgoingFixture(item.ID, 5, model.OutgoingReleased)
		require.NoError(t, svc.CreateOutgoing(trx, actor))

		_, err := svc.UpdateOutgoing(trx.ID, outgoingFixture(item.ID, 5, model.OutgoingCancelled), actor)
		require.NoError(t, err)
		assert.Equal(t, 20, currentStock(t, db, item.ID))
	})

	t.Run("increase beyond remaining stock is rejected", func(t *testing.T) {
		svc, db := newStockService(t)
		item := seedItem(t, db, 10)

		trx := outgoingFixture(item.ID, 8, model.OutgoingReleased)
		require.NoError(t, svc.CreateOutgoing(trx, actor))
		assert.Equal(t, 2, currentStock(t, db, item.ID))

		_, err := svc.UpdateOutgoing(trx.ID, outgoingFixture(item.ID, 11, model.OutgoingReleased), actor)
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Equal(t, 2, currentStock(t, db, item.ID))
	})
}

// The ledger equals the net of all effective transactions after any sequence
// of saves.
func TestLedgerRoundTrip(t *testing.T) {
	actor := testActor(model.RoleWarehouseStaff)
	svc, db := newStockService(t)
	item := seedItem(t, db, 0)

	in := incomingFixture(item.ID, 20, model.IncomingReceived)
	require.NoError(t, svc.CreateIncoming(in, actor))
	assert.Equal(t, 20, currentStock(t, db, item.ID))

	out := outgoingFixture(item.ID, 5, model.OutgoingReleased)
	require.NoError(t, svc.CreateOutgoing(out, actor))
	assert.Equal(t, 15, currentStock(t, db, item.ID))

	_, err := svc.UpdateOutgoing(out.ID, outgoingFixture(item.ID, 8, model.OutgoingReleased), actor)
	require.NoError(t, err)
	assert.Equal(t, 12, currentStock(t, db, item.ID))
}
