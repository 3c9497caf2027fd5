package service

import (
	"testing"
	"time"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newRequestService(t *testing.T) (RequestService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	itemRepo := repository.NewItemRepo(db)
	stock := NewStockService(itemRepo, repository.NewIncomingRepo(db), repository.NewOutgoingRepo(db), db, nil)
	svc := NewRequestService(repository.NewRequestRepo(db), itemRepo, stock, db)
	return svc, db
}

func requestFixture(itemID uuid.UUID, quantity int) *model.RequestItem {
	return &model.RequestItem{
		ItemID:      itemID,
		Quantity:    quantity,
		RequestDate: time.Now(),
		NeededDate:  time.Now().AddDate(0, 0, 3),
		Purpose:     "assembly batch 42",
	}
}

func TestCreateRequest(t *testing.T) {
	producer := testActor(model.RoleProductionStaff)

	t.Run("files a pending request with a number", func(t *testing.T) {
		svc, db := newRequestService(t)
		item := seedItem(t, db, 10)

		req := requestFixture(item.ID, 4)
		info, err := svc.CreateRequest(req, producer)
		require.NoError(t, err)

		assert.Equal(t, model.RequestPending, req.Status)
		assert.Contains(t, req.RequestNumber, model.RequestNumberPrefix)
		assert.Equal(t, &producer.ID, req.RequestedByID)
		assert.True(t, info.Available)
		assert.Zero(t, info.Deficit)
	})

	t.Run("may exceed current stock", func(t *testing.T) {
		svc, db := newRequestService(t)
		item := seedItem(t, db, 3)

		req := requestFixture(item.ID, 10)
		info, err := svc.CreateRequest(req, producer)
		require.NoError(t, err)

		assert.Equal(t, model.RequestPending, req.Status)
		assert.False(t, info.Available)
		assert.Equal(t, 7, info.Deficit)
		// Filing a request never touches the ledger
		assert.Equal(t, 3, currentStock(t, db, item.ID))
	})

	t.Run("unknown item is rejected", func(t *testing.T) {
		svc, db := newRequestService(t)
		item := seedItem(t, db, 3)
		require.NoError(t, db.Delete(item).Error)

		_, err := svc.CreateRequest(requestFixture(item.ID, 1), producer)
		assert.ErrorIs(t, err, ErrItemNotFound)
	})
}

func TestApproveRequest(t *testing.T) {
	producer := testActor(model.RoleProductionStaff)
	approver := testActor(model.RoleWarehouseStaff)

	t.Run("approval releases stock through a linked outgoing transaction", func(t *testing.T) {
		svc, db := newRequestService(t)
		item := seedItem(t, db, 10)

		req := requestFixture(item.ID, 4)
		_, err := svc.CreateRequest(req, producer)
		require.NoError(t, err)

		result, err := svc.Approve(req.ID, approver)
		require.NoError(t, err)

		assert.Equal(t, model.RequestApproved, result.Request.Status)
		assert.Equal(t, &approver.ID, result.Request.ApprovedByID)
		assert.NotNil(t, result.Request.ApprovedDate)

		outgoing := result.Outgoing
		require.NotNil(t, outgoing)
		assert.Equal(t, model.OutgoingReleased, outgoing.Status)
		assert.Equal(t, 4, outgoing.Quantity)
		assert.Equal(t, &req.ID, outgoing.RequestItemID)
		assert.Contains(t, outgoing.Purpose, req.RequestNumber)

		assert.Equal(t, 6, currentStock(t, db, item.ID))
	})

	t.Run("insufficient stock leaves the request pending", func(t *testing.T) {
		svc, db := newRequestService(t)
		item := seedItem(t, db, 3)

		req := requestFixture(item.ID, 5)
		_, err := svc.CreateRequest(req, producer)
		require.NoError(t, err)

		_, err = svc.Approve(req.ID, approver)
		assert.ErrorIs(t, err, ErrInsufficientStock)

		var reloaded model.RequestItem
		require.NoError(t, db.First(&reloaded, "id = ?", req.ID).Error)
		assert.Equal(t, model.RequestPending, reloaded.Status)
		assert.Nil(t, reloaded.ApprovedByID)

		var count int64
		require.NoError(t, db.Model(&model.OutgoingTransaction{}).Count(&count).Error)
		assert.Zero(t, count)
		assert.Equal(t, 3, currentStock(t, db, item.ID))
	})

	t.Run("double approval fails and releases nothing more", func(t *testing.T) {
		svc, db := newRequestService(t)
		item := seedItem(t, db, 10)

		req := requestFixture(item.ID, 4)
		_, err := svc.CreateRequest(req, producer)
		require.NoError(t, err)

		_, err = svc.Approve(req.ID, approver)
		require.NoError(t, err)

		_, err = svc.Approve(req.ID, approver)
		assert.ErrorIs(t, err, ErrRequestNotPending)

		var count int64
		require.NoError(t, db.Model(&model.OutgoingTransaction{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
		assert.Equal(t, 6, currentStock(t, db, item.ID))
	})

	t.Run("unknown request is not pending", func(t *testing.T) {
		svc, _ := newRequestService(t)
		_, err := svc.Approve(uuid.New(), approver)
		assert.ErrorIs(t, err, ErrRequestNotPending)
	})
}

func TestRejectRequest(t *testing.T) {
	producer := testActor(model.RoleProductionStaff)
	approver := testActor(model.RoleWarehouseStaff)

	t.Run("rejection records the reason and leaves stock alone", func(t *testing.T) {
		svc, db := newRequestService(t)
		item := seedItem(t, db, 10)

		req := requestFixture(item.ID, 4)
		_, err := svc.CreateRequest(req, producer)
		require.NoError(t, err)

		rejected, err := svc.Reject(req.ID, "wrong batch size", approver)
		require.NoError(t, err)

		assert.Equal(t, model.RequestRejected, rejected.Status)
		assert.Equal(t, "wrong batch size", rejected.RejectionReason)
		assert.Equal(t, 10, currentStock(t, db, item.ID))

		var count int64
		require.NoError(t, db.Model(&model.OutgoingTransaction{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("a rejected request cannot be approved afterwards", func(t *testing.T) {
		svc, db := newRequestService(t)
		item := seedItem(t, db, 10)

		req := requestFixture(item.ID, 4)
		_, err := svc.CreateRequest(req, producer)
		require.NoError(t, err)

		_, err = svc.Reject(req.ID, "not needed", approver)
		require.NoError(t, err)

		_, err = svc.Approve(req.ID, approver)
		assert.ErrorIs(t, err, ErrRequestNotPending)
	})
}
