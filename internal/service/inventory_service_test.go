package service

import (
	"testing"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInventoryService(t *testing.T) (InventoryService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewInventoryService(
		repository.NewCategoryRepo(db),
		repository.NewSupplierRepo(db),
		repository.NewItemRepo(db),
		repository.NewIncomingRepo(db),
		repository.NewOutgoingRepo(db),
		db,
	)
	return svc, db
}

func TestSupplierCodes(t *testing.T) {
	actor := testActor(model.RoleWarehouseStaff)
	svc, _ := newInventoryService(t)

	first := &model.Supplier{Name: "PT Sumber Baja"}
	require.NoError(t, svc.CreateSupplier(first, actor))
	assert.Equal(t, "SUP0001", first.Code)

	second := &model.Supplier{Name: "CV Logam Jaya"}
	require.NoError(t, svc.CreateSupplier(second, actor))
	assert.Equal(t, "SUP0002", second.Code)

	t.Run("code survives updates", func(t *testing.T) {
		updated, err := svc.UpdateSupplier(first.ID, &model.Supplier{Name: "PT Sumber Baja Utama"}, actor)
		require.NoError(t, err)
		assert.Equal(t, "SUP0001", updated.Code)
		assert.Equal(t, "PT Sumber Baja Utama", updated.Name)
	})

	t.Run("deleted codes are not reused", func(t *testing.T) {
		require.NoError(t, svc.DeleteSupplier(second.ID))

		third := &model.Supplier{Name: "UD Makmur"}
		require.NoError(t, svc.CreateSupplier(third, actor))
		assert.Equal(t, "SUP0003", third.Code)
	})
}

func TestCategories(t *testing.T) {
	actor := testActor(model.RoleWarehouseStaff)

	t.Run("duplicate name is rejected", func(t *testing.T) {
		svc, _ := newInventoryService(t)

		require.NoError(t, svc.CreateCategory(&model.Category{Name: "Raw Materials"}, actor))
		err := svc.CreateCategory(&model.Category{Name: "Raw Materials"}, actor)
		assert.ErrorIs(t, err, ErrCategoryExists)
	})

	t.Run("update unknown category fails", func(t *testing.T) {
		svc, db := newInventoryService(t)
		category := seedCategory(t, db)
		require.NoError(t, svc.DeleteCategory(category.ID))

		_, err := svc.UpdateCategory(category.ID, &model.Category{Name: "Renamed"}, actor)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestItems(t *testing.T) {
	actor := testActor(model.RoleWarehouseStaff)

	t.Run("duplicate code is rejected", func(t *testing.T) {
		svc, db := newInventoryService(t)
		category := seedCategory(t, db)

		item := &model.Item{Code: "BRG001", Name: "Steel Plate", CategoryID: category.ID, Unit: "pcs"}
		require.NoError(t, svc.CreateItem(item, actor))

		err := svc.CreateItem(&model.Item{Code: "BRG001", Name: "Copper Wire", CategoryID: category.ID, Unit: "m"}, actor)
		assert.ErrorIs(t, err, ErrItemCodeExists)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		svc, db := newInventoryService(t)
		category := seedCategory(t, db)
		require.NoError(t, db.Unscoped().Delete(category).Error)

		err := svc.CreateItem(&model.Item{Code: "BRG001", Name: "Steel Plate", CategoryID: category.ID, Unit: "pcs"}, actor)
		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("update never touches the ledger", func(t *testing.T) {
		svc, db := newInventoryService(t)
		item := seedItem(t, db, 42)

		edit := &model.Item{
			Code:         item.Code,
			Name:         "Steel Plate 3mm",
			Unit:         "pcs",
			MinimumStock: 10,
			CurrentStock: 9999,
			IsActive:     true,
		}
		updated, err := svc.UpdateItem(item.ID, edit, actor)
		require.NoError(t, err)

		assert.Equal(t, "Steel Plate 3mm", updated.Name)
		assert.Equal(t, 42, updated.CurrentStock)
		assert.Equal(t, 42, currentStock(t, db, item.ID))
	})

	t.Run("detail includes derived stock status", func(t *testing.T) {
		svc, db := newInventoryService(t)
		item := seedItem(t, db, 2) // minimum is 5

		detail, err := svc.GetItemDetail(item.ID)
		require.NoError(t, err)
		assert.Equal(t, model.StockStatusLow, detail.StockStatus)
	})
}
