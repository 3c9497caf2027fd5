package service

import (
	"sort"
	"time"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"
)

// StockReportRow pairs an item with its derived classification
type StockReportRow struct {
	Item        model.Item        `json:"item"`
	StockStatus model.StockStatus `json:"stock_status"`
}

// StockReport is the director's stock overview. The summary counts the
// filtered rows, not the whole master, so totals always match the table.
type StockReport struct {
	Rows    []StockReportRow     `json:"rows"`
	Summary repository.ItemStats `json:"summary"`
}

type IncomingReport struct {
	Transactions []model.IncomingTransaction   `json:"transactions"`
	Summary      repository.TransactionSummary `json:"summary"`
}

type OutgoingReport struct {
	Transactions []model.OutgoingTransaction   `json:"transactions"`
	Summary      repository.TransactionSummary `json:"summary"`
}

type RequestReport struct {
	Requests []model.RequestItem            `json:"requests"`
	Counts   repository.RequestStatusCounts `json:"counts"`
}

// ActivityEntry is one row of the merged incoming/outgoing/request feed
type ActivityEntry struct {
	Type     string    `json:"type"`
	Number   string    `json:"number"`
	Date     time.Time `json:"date"`
	ItemName string    `json:"item_name"`
	Quantity int       `json:"quantity"`
	Status   string    `json:"status"`
	Actor    string    `json:"actor"`
}

type ReportService interface {
	StockReport(filter repository.ItemFilter) (*StockReport, error)
	IncomingReport(filter repository.TransactionFilter) (*IncomingReport, error)
	OutgoingReport(filter repository.TransactionFilter) (*OutgoingReport, error)
	RequestReport(filter repository.RequestFilter) (*RequestReport, error)
	ActivityHistory(limit int) ([]ActivityEntry, error)
}

type reportService struct {
	itemRepo     repository.ItemRepository
	incomingRepo repository.IncomingRepository
	outgoingRepo repository.OutgoingRepository
	requestRepo  repository.RequestRepository
}

func NewReportService(
	itemRepo repository.ItemRepository,
	incomingRepo repository.IncomingRepository,
	outgoingRepo repository.OutgoingRepository,
	requestRepo repository.RequestRepository,
) ReportService {
	return &reportService{
		itemRepo:     itemRepo,
		incomingRepo: incomingRepo,
		outgoingRepo: outgoingRepo,
		requestRepo:  requestRepo,
	}
}

func (s *reportService) StockReport(filter repository.ItemFilter) (*StockReport, error) {
	items, err := s.itemRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}

	report := &StockReport{Rows: make([]StockReportRow, len(items))}
	for i, item := range items {
		status := item.StockStatus()
		report.Rows[i] = StockReportRow{Item: item, StockStatus: status}

		report.Summary.TotalItems++
		report.Summary.TotalStock += int64(item.CurrentStock)
		switch status {
		case model.StockStatusLow:
			report.Summary.LowStockCount++
		case model.StockStatusOut:
			report.Summary.OutOfStockCount++
		}
	}

	return report, nil
}

func (s *reportService) IncomingReport(filter repository.TransactionFilter) (*IncomingReport, error) {
	transactions, err := s.incomingRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}
	summary, err := s.incomingRepo.Summary(filter)
	if err != nil {
		return nil, err
	}
	return &IncomingReport{Transactions: transactions, Summary: *summary}, nil
}

func (s *reportService) OutgoingReport(filter repository.TransactionFilter) (*OutgoingReport, error) {
	transactions, err := s.outgoingRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}
	summary, err := s.outgoingRepo.Summary(filter)
	if err != nil {
		return nil, err
	}
	return &OutgoingReport{Transactions: transactions, Summary: *summary}, nil
}

func (s *reportService) RequestReport(filter repository.RequestFilter) (*RequestReport, error) {
	requests, err := s.requestRepo.FindAll(filter)
	if err != nil {
		return nil, err
	}

	report := &RequestReport{Requests: requests}
	for _, request := range requests {
		report.Counts.Total++
		switch request.Status {
		case model.RequestPending:
			report.Counts.Pending++
		case model.RequestApproved:
			report.Counts.Approved++
		case model.RequestRejected:
			report.Counts.Rejected++
		case model.RequestCompleted:
			report.Counts.Completed++
		}
	}

	return report, nil
}

func (s *reportService) ActivityHistory(limit int) ([]ActivityEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	incoming, err := s.incomingRepo.FindAll(repository.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	outgoing, err := s.outgoingRepo.FindAll(repository.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	requests, err := s.requestRepo.FindAll(repository.RequestFilter{})
	if err != nil {
		return nil, err
	}

	entries := make([]ActivityEntry, 0, len(incoming)+len(outgoing)+len(requests))
	for _, trx := range incoming {
		entries = append(entries, ActivityEntry{
			Type:     "incoming",
			Number:   trx.TransactionNumber,
			Date:     trx.TransactionDate,
			ItemName: itemName(trx.Item),
			Quantity: trx.Quantity,
			Status:   string(trx.Status),
			Actor:    userName(trx.ReceivedBy),
		})
	}
	for _, trx := range outgoing {
		entries = append(entries, ActivityEntry{
			Type:     "outgoing",
			Number:   trx.TransactionNumber,
			Date:     trx.TransactionDate,
			ItemName: itemName(trx.Item),
			Quantity: trx.Quantity,
			Status:   string(trx.Status),
			Actor:    userName(trx.ReleasedBy),
		})
	}
	for _, request := range requests {
		entries = append(entries, ActivityEntry{
			Type:     "request",
			Number:   request.RequestNumber,
			Date:     request.RequestDate,
			ItemName: itemName(request.Item),
			Quantity: request.Quantity,
			Status:   string(request.Status),
			Actor:    userName(request.RequestedBy),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Date.After(entries[j].Date) })
	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

func itemName(item *model.Item) string {
	if item == nil {
		return ""
	}
	return item.Name
}

func userName(user *model.User) string {
	if user == nil {
		return ""
	}
	return user.Name
}
