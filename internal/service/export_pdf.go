package service

import (
	"bytes"
	"fmt"
	"time"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/internal/repository"

	"github.com/jung-kurt/gofpdf"
)

// Column truncation limits keep long names from breaking the table layout.
const (
	pdfItemWidth     = 30
	pdfSupplierWidth = 20
	pdfPurposeWidth  = 25
	pdfOperatorWidth = 15
)

type ExportService interface {
	IncomingReportPDF(filter repository.TransactionFilter, actor model.Actor) ([]byte, error)
	OutgoingReportPDF(filter repository.TransactionFilter, actor model.Actor) ([]byte, error)
}

type exportService struct {
	reports ReportService
}

func NewExportService(reports ReportService) ExportService {
	return &exportService{reports: reports}
}

func (s *exportService) IncomingReportPDF(filter repository.TransactionFilter, actor model.Actor) ([]byte, error) {
	report, err := s.reports.IncomingReport(filter)
	if err != nil {
		return nil, err
	}

	pdf := newReportPage("Incoming Transactions Report", actor, filter, report.Summary)

	headers := []pdfColumn{
		{"No", 10, "C"},
		{"Transaction No", 40, "L"},
		{"Date", 25, "L"},
		{"Item", 70, "L"},
		{"Supplier", 50, "L"},
		{"Qty", 20, "R"},
		{"Status", 25, "L"},
		{"Received By", 37, "L"},
	}
	writeTableHeader(pdf, headers)

	for i, trx := range report.Transactions {
		supplierName := ""
		if trx.Supplier != nil {
			supplierName = trx.Supplier.Name
		}
		writeTableRow(pdf, headers, i, []string{
			fmt.Sprintf("%d", i+1),
			trx.TransactionNumber,
			trx.TransactionDate.Format("2006-01-02"),
			truncateText(itemName(trx.Item), pdfItemWidth),
			truncateText(supplierName, pdfSupplierWidth),
			fmt.Sprintf("%d", trx.Quantity),
			trx.Status.DisplayName(),
			truncateText(userName(trx.ReceivedBy), pdfOperatorWidth),
		})
	}

	return renderPDF(pdf)
}

func (s *exportService) OutgoingReportPDF(filter repository.TransactionFilter, actor model.Actor) ([]byte, error) {
	report, err := s.reports.OutgoingReport(filter)
	if err != nil {
		return nil, err
	}

	pdf := newReportPage("Outgoing Transactions Report", actor, filter, report.Summary)

	headers := []pdfColumn{
		{"No", 10, "C"},
		{"Transaction No", 40, "L"},
		{"Date", 25, "L"},
		{"Item", 65, "L"},
		{"Purpose", 55, "L"},
		{"Qty", 20, "R"},
		{"Status", 25, "L"},
		{"Released By", 37, "L"},
	}
	writeTableHeader(pdf, headers)

	for i, trx := range report.Transactions {
		writeTableRow(pdf, headers, i, []string{
			fmt.Sprintf("%d", i+1),
			trx.TransactionNumber,
			trx.TransactionDate.Format("2006-01-02"),
			truncateText(itemName(trx.Item), pdfItemWidth),
			truncateText(trx.Purpose, pdfPurposeWidth),
			fmt.Sprintf("%d", trx.Quantity),
			trx.Status.DisplayName(),
			truncateText(userName(trx.ReleasedBy), pdfOperatorWidth),
		})
	}

	return renderPDF(pdf)
}

type pdfColumn struct {
	label string
	width float64
	align string
}

func newReportPage(title string, actor model.Actor, filter repository.TransactionFilter, summary repository.TransactionSummary) *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 8, "Printed "+time.Now().Format("2006-01-02 15:04:05"), "", 0, "R", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, "Warehouse Inventory Management", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, "Operator: "+actor.Name, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Printed at: "+time.Now().Format("2006-01-02 15:04:05"), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, "Period: "+formatPeriod(filter), "", 1, "L", false, 0, "")
	if filter.Status != "" {
		pdf.CellFormat(0, 6, "Status filter: "+filter.Status, "", 1, "L", false, 0, "")
	}
	if filter.Search != "" {
		pdf.CellFormat(0, 6, "Search: "+filter.Search, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Total transactions: %d, total quantity: %d",
		summary.TotalTransactions, summary.TotalQuantity), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	return pdf
}

func writeTableHeader(pdf *gofpdf.Fpdf, columns []pdfColumn) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(220, 220, 220)
	for _, col := range columns {
		pdf.CellFormat(col.width, 8, col.label, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	pdf.SetFillColor(240, 240, 240)
}

func writeTableRow(pdf *gofpdf.Fpdf, columns []pdfColumn, index int, values []string) {
	fill := index%2 == 1
	for i, col := range columns {
		pdf.CellFormat(col.width, 7, values[i], "1", 0, col.align, fill, 0, "")
	}
	pdf.Ln(-1)
}

func renderPDF(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatPeriod(filter repository.TransactionFilter) string {
	switch {
	case filter.DateFrom != nil && filter.DateTo != nil:
		return filter.DateFrom.Format("2006-01-02") + " to " + filter.DateTo.Format("2006-01-02")
	case filter.DateFrom != nil:
		return "from " + filter.DateFrom.Format("2006-01-02")
	case filter.DateTo != nil:
		return "until " + filter.DateTo.Format("2006-01-02")
	}
	return "all time"
}

func truncateText(text string, max int) string {
	if len(text) <= max {
		return text
	}
	if max <= 3 {
		return text[:max]
	}
	return text[:max-3] + "..."
}
