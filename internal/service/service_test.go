package service

import (
	"testing"
	"time"

	"go-warehouse-api/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database with the full schema.
// Pool size is pinned to one connection so every query sees the same
// memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Supplier{},
		&model.Item{},
		&model.IncomingTransaction{},
		&model.OutgoingTransaction{},
		&model.RequestItem{},
	))
	return db
}

func testActor(role model.Role) model.Actor {
	return model.Actor{
		ID:       uuid.New(),
		Username: "tester",
		Name:     "Test User",
		Role:     role,
	}
}

func seedCategory(t *testing.T, db *gorm.DB) *model.Category {
	t.Helper()
	category := &model.Category{Name: "Raw Materials " + uuid.NewString()[:8]}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedItem(t *testing.T, db *gorm.DB, stock int) *model.Item {
	t.Helper()
	category := seedCategory(t, db)
	item := &model.Item{
		Code:         "ITM-" + uuid.NewString()[:8],
		Name:         "Steel Plate",
		CategoryID:   category.ID,
		Unit:         "pcs",
		MinimumStock: 5,
		CurrentStock: stock,
		IsActive:     true,
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func seedSupplier(t *testing.T, db *gorm.DB) *model.Supplier {
	t.Helper()
	supplier := &model.Supplier{
		Code: "SUP-" + uuid.NewString()[:8],
		Name: "PT Sumber Baja",
	}
	require.NoError(t, db.Create(supplier).Error)
	return supplier
}

func currentStock(t *testing.T, db *gorm.DB, itemID uuid.UUID) int {
	t.Helper()
	var item model.Item
	require.NoError(t, db.First(&item, "id = ?", itemID).Error)
	return item.CurrentStock
}

func incomingFixture(itemID uuid.UUID, quantity int, status model.IncomingStatus) *model.IncomingTransaction {
	return &model.IncomingTransaction{
		ItemID:          itemID,
		Quantity:        quantity,
		TransactionDate: time.Now(),
		Status:          status,
	}
}

func outgoingFixture(itemID uuid.UUID, quantity int, status model.OutgoingStatus) *model.OutgoingTransaction {
	return &model.OutgoingTransaction{
		ItemID:          itemID,
		Quantity:        quantity,
		TransactionDate: time.Now(),
		Purpose:         "production line 2",
		Status:          status,
	}
}
