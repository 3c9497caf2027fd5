package repository

import (
	"sort"
	"time"

	"go-warehouse-api/internal/model"

	"gorm.io/gorm"
)

// StockMovementPoint is one day on the dashboard movement chart
type StockMovementPoint struct {
	Date     string `json:"date"`
	Incoming int    `json:"incoming"`
	Outgoing int    `json:"outgoing"`
}

// ItemStats counts the item master by stock classification
type ItemStats struct {
	TotalItems      int64 `json:"total_items"`
	TotalStock      int64 `json:"total_stock"`
	LowStockCount   int64 `json:"low_stock_count"`
	OutOfStockCount int64 `json:"out_of_stock_count"`
}

type DashboardRepository interface {
	StockMovement(startDate, endDate time.Time) ([]StockMovementPoint, error)
	ItemStats() (*ItemStats, error)
}

type dashboardRepo struct {
	db *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) DashboardRepository {
	return &dashboardRepo{db}
}

// StockMovement aggregates received and released quantities per day. Pending
// and cancelled transactions never count.
func (r *dashboardRepo) StockMovement(startDate, endDate time.Time) ([]StockMovementPoint, error) {
	points := make(map[string]*StockMovementPoint)

	type dailySum struct {
		Date  string
		Total int
	}

	var incoming []dailySum
	err := r.db.Model(&model.IncomingTransaction{}).
		Select("DATE(transaction_date) as date, COALESCE(SUM(quantity), 0) as total").
		Where("status = ? AND transaction_date BETWEEN ? AND ?", model.IncomingReceived, startDate, endDate).
		Group("DATE(transaction_date)").
		Scan(&incoming).Error
	if err != nil {
		return nil, err
	}
	for _, row := range incoming {
		points[row.Date] = &StockMovementPoint{Date: row.Date, Incoming: row.Total}
	}

	var outgoing []dailySum
	err = r.db.Model(&model.OutgoingTransaction{}).
		Select("DATE(transaction_date) as date, COALESCE(SUM(quantity), 0) as total").
		Where("status = ? AND transaction_date BETWEEN ? AND ?", model.OutgoingReleased, startDate, endDate).
		Group("DATE(transaction_date)").
		Scan(&outgoing).Error
	if err != nil {
		return nil, err
	}
	for _, row := range outgoing {
		point, ok := points[row.Date]
		if !ok {
			point = &StockMovementPoint{Date: row.Date}
			points[row.Date] = point
		}
		point.Outgoing = row.Total
	}

	results := make([]StockMovementPoint, 0, len(points))
	for _, point := range points {
		results = append(results, *point)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Date < results[j].Date })

	return results, nil
}

func (r *dashboardRepo) ItemStats() (*ItemStats, error) {
	var stats ItemStats
	base := func() *gorm.DB {
		return r.db.Model(&model.Item{}).Where("is_active = ?", true)
	}

	if err := base().Count(&stats.TotalItems).Error; err != nil {
		return nil, err
	}
	if err := base().Select("COALESCE(SUM(current_stock), 0)").Scan(&stats.TotalStock).Error; err != nil {
		return nil, err
	}
	if err := base().Where("current_stock > 0 AND current_stock <= minimum_stock").Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}
	if err := base().Where("current_stock <= 0").Count(&stats.OutOfStockCount).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
