package service

import (
	"time"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
)

// DashboardOverview is the landing-page payload for every role
type DashboardOverview struct {
	Items           *repository.ItemStats           `json:"items"`
	MonthlyIncoming *repository.TransactionSummary  `json:"monthly_incoming"`
	MonthlyOutgoing *repository.TransactionSummary  `json:"monthly_outgoing"`
	Requests        *repository.RequestStatusCounts `json:"requests"`
}

type DashboardService interface {
	GetOverview() (*DashboardOverview, error)
	GetStockMovement(days int) ([]repository.StockMovementPoint, error)
}

type dashboardService struct {
	dashboardRepo repository.DashboardRepository
	incomingRepo  repository.IncomingRepository
	outgoingRepo  repository.OutgoingRepository
	requestRepo   repository.RequestRepository
}

func NewDashboardService(
	dashboardRepo repository.DashboardRepository,
	incomingRepo repository.IncomingRepository,
	outgoingRepo repository.OutgoingRepository,
	requestRepo repository.RequestRepository,
) DashboardService {
	return &dashboardService{
		dashboardRepo: dashboardRepo,
		incomingRepo:  incomingRepo,
		outgoingRepo:  outgoingRepo,
		requestRepo:   requestRepo,
	}
}

func (s *dashboardService) GetOverview() (*DashboardOverview, error) {
	itemStats, err := s.dashboardRepo.ItemStats()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	monthFilter := repository.TransactionFilter{DateFrom: &monthStart, DateTo: &now}

	incomingFilter := monthFilter
	incomingFilter.Status = string(model.IncomingReceived)
	monthlyIncoming, err := s.incomingRepo.Summary(incomingFilter)
	if err != nil {
		return nil, err
	}

	outgoingFilter := monthFilter
	outgoingFilter.Status = string(model.OutgoingReleased)
	monthlyOutgoing, err := s.outgoingRepo.Summary(outgoingFilter)
	if err != nil {
		return nil, err
	}

	requestCounts, err := s.requestRepo.StatusCounts()
	if err != nil {
		return nil, err
	}

	return &DashboardOverview{
		Items:           itemStats,
		MonthlyIncoming: monthlyIncoming,
		MonthlyOutgoing: monthlyOutgoing,
		Requests:        requestCounts,
	}, nil
}

func (s *dashboardService) GetStockMovement(days int) ([]repository.StockMovementPoint, error) {
	if days <= 0 {
		days = 7
	}
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)

	return s.dashboardRepo.StockMovement(startDate, endDate)
}
