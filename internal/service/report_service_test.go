package service

import (
	"testing"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReportFixture(t *testing.T) (ReportService, StockService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	itemRepo := repository.NewItemRepo(db)
	incomingRepo := repository.NewIncomingRepo(db)
	outgoingRepo := repository.NewOutgoingRepo(db)
	stock := NewStockService(itemRepo, incomingRepo, outgoingRepo, db, nil)
	reports := NewReportService(itemRepo, incomingRepo, outgoingRepo, repository.NewRequestRepo(db))
	return reports, stock, db
}

func TestStockReport(t *testing.T) {
	reports, _, db := newReportFixture(t)

	seedItem(t, db, 20) // in stock
	seedItem(t, db, 3)  // low (minimum 5)
	seedItem(t, db, 0)  // out

	report, err := reports.StockReport(repository.ItemFilter{ActiveOnly: true})
	require.NoError(t, err)

	assert.Len(t, report.Rows, 3)
	assert.Equal(t, int64(3), report.Summary.TotalItems)
	assert.Equal(t, int64(23), report.Summary.TotalStock)
	assert.Equal(t, int64(1), report.Summary.LowStockCount)
	assert.Equal(t, int64(1), report.Summary.OutOfStockCount)
}

func TestTransactionReports(t *testing.T) {
	reports, stock, db := newReportFixture(t)
	actor := testActor(model.RoleWarehouseStaff)
	item := seedItem(t, db, 0)

	require.NoError(t, stock.CreateIncoming(incomingFixture(item.ID, 25, model.IncomingReceived), actor))
	require.NoError(t, stock.CreateIncoming(incomingFixture(item.ID, 5, model.IncomingPending), actor))
	require.NoError(t, stock.CreateOutgoing(outgoingFixture(item.ID, 10, model.OutgoingReleased), actor))

	t.Run("incoming report counts the filtered set", func(t *testing.T) {
		report, err := reports.IncomingReport(repository.TransactionFilter{Status: string(model.IncomingReceived)})
		require.NoError(t, err)
		assert.Len(t, report.Transactions, 1)
		assert.Equal(t, int64(1), report.Summary.TotalTransactions)
		assert.Equal(t, int64(25), report.Summary.TotalQuantity)
	})

	t.Run("outgoing report totals quantities", func(t *testing.T) {
		report, err := reports.OutgoingReport(repository.TransactionFilter{})
		require.NoError(t, err)
		assert.Equal(t, int64(1), report.Summary.TotalTransactions)
		assert.Equal(t, int64(10), report.Summary.TotalQuantity)
	})

	t.Run("activity feed merges every source", func(t *testing.T) {
		entries, err := reports.ActivityHistory(10)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
		for _, entry := range entries {
			assert.Contains(t, []string{"incoming", "outgoing", "request"}, entry.Type)
			assert.NotEmpty(t, entry.Number)
		}
	})
}

func TestDashboard(t *testing.T) {
	db := newTestDB(t)
	actor := testActor(model.RoleWarehouseStaff)

	itemRepo := repository.NewItemRepo(db)
	incomingRepo := repository.NewIncomingRepo(db)
	outgoingRepo := repository.NewOutgoingRepo(db)
	requestRepo := repository.NewRequestRepo(db)
	stock := NewStockService(itemRepo, incomingRepo, outgoingRepo, db, nil)
	dashboards := NewDashboardService(repository.NewDashboardRepo(db), incomingRepo, outgoingRepo, requestRepo)

	item := seedItem(t, db, 0)
	require.NoError(t, stock.CreateIncoming(incomingFixture(item.ID, 30, model.IncomingReceived), actor))
	require.NoError(t, stock.CreateIncoming(incomingFixture(item.ID, 99, model.IncomingPending), actor))
	require.NoError(t, stock.CreateOutgoing(outgoingFixture(item.ID, 12, model.OutgoingReleased), actor))

	t.Run("overview aggregates only effective transactions", func(t *testing.T) {
		overview, err := dashboards.GetOverview()
		require.NoError(t, err)

		assert.Equal(t, int64(1), overview.Items.TotalItems)
		assert.Equal(t, int64(18), overview.Items.TotalStock)
		assert.Equal(t, int64(30), overview.MonthlyIncoming.TotalQuantity)
		assert.Equal(t, int64(12), overview.MonthlyOutgoing.TotalQuantity)
	})

	t.Run("movement series excludes pending quantities", func(t *testing.T) {
		points, err := dashboards.GetStockMovement(7)
		require.NoError(t, err)
		require.Len(t, points, 1)
		assert.Equal(t, 30, points[0].Incoming)
		assert.Equal(t, 12, points[0].Outgoing)
	})
}
