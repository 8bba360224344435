package service

import (
	"bytes"
	"fmt"
	"time"

	"rent-bo-svc/internal/models"
	"rent-bo-svc/internal/rentview"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
)

// ReceiptRenderer renders rent receipts as PDF
type ReceiptRenderer struct {
	// Issuer is printed in the receipt header
	Issuer string
	// Location is the zone dates are printed in
	Location *time.Location
}

// NewReceiptRenderer creates a renderer for the given issuer name
func NewReceiptRenderer(issuer string, loc *time.Location) *ReceiptRenderer {
	if loc == nil {
		loc = time.UTC
	}
	return &ReceiptRenderer{Issuer: issuer, Location: loc}
}

// Render produces the PDF receipt of one rent record
func (r *ReceiptRenderer) Render(rec *models.RentRecord, issuedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("Rent receipt %s", rec.DocumentID), true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, tr(r.Issuer))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	lines := []string{
		fmt.Sprintf("Receipt #: %s", rec.DocumentID),
		fmt.Sprintf("Issued: %s", issuedAt.In(r.Location).Format("02 Jan 2006")),
		fmt.Sprintf("Tenant: %s", rec.Tenant.FullName),
		fmt.Sprintf("Company: %s", rec.Tenant.CompanyName),
		fmt.Sprintf("Unit: %s, floor %s", rec.Tenant.UnitNumber, rec.Tenant.Floor),
		fmt.Sprintf("Period: %s %d", time.Month(rec.Month).String(), rec.Year),
		fmt.Sprintf("Due date: %s", rec.DueDate.In(r.Location).Format("02 Jan 2006")),
		fmt.Sprintf("Status: %s", rec.Status),
	}
	for _, line := range lines {
		pdf.Cell(40, 8, tr(line))
		pdf.Ln(8)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(90, 8, "Charge", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, "Amount (INR)", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	charges := []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Rent", rec.Amount},
		{"Maintenance", rec.Maintenance},
		{"CGST", rec.CGST},
		{"SGST", rec.SGST},
		{"TDS", rec.TDS.Neg()},
	}
	for _, c := range charges {
		pdf.CellFormat(90, 8, c.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, c.amount.StringFixed(2), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(90, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, rec.Total.StringFixed(2), "1", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var periodReportColumns = []struct {
	title string
	width float64
	align string
}{
	{"#", 10, "C"},
	{"Tenant", 55, "L"},
	{"Company", 60, "L"},
	{"Floor", 15, "C"},
	{"Due date", 30, "C"},
	{"Status", 25, "C"},
	{"Rent", 35, "R"},
	{"Total", 35, "R"},
}

// RenderPeriod produces one PDF listing every rent row of a billing cycle
func (r *ReceiptRenderer) RenderPeriod(items []rentview.CombinedRentItem, month, year int, issuedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("Rent report %s %d", time.Month(month).String(), year), true)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, tr(r.Issuer))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 8, fmt.Sprintf("Rent for %s %d", time.Month(month).String(), year))
	pdf.Ln(8)
	pdf.Cell(40, 8, fmt.Sprintf("Issued: %s", issuedAt.In(r.Location).Format("02 Jan 2006")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	for _, col := range periodReportColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, col.align, false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 11)
	total := decimal.Zero
	for i, item := range items {
		cur := item.CurrentMonth
		cells := []string{
			fmt.Sprintf("%d", i+1),
			item.TenantName,
			item.CompanyName,
			item.Floor,
			r.printDueDate(cur.DueDate),
			string(cur.Status),
			cur.Amount.StringFixed(2),
			cur.Total.StringFixed(2),
		}
		for j, col := range periodReportColumns {
			pdf.CellFormat(col.width, 8, tr(cells[j]), "1", 0, col.align, false, 0, "")
		}
		pdf.Ln(-1)
		total = total.Add(cur.Total)
	}

	pdf.SetFont("Arial", "B", 11)
	var labelWidth float64
	for _, col := range periodReportColumns[:len(periodReportColumns)-1] {
		labelWidth += col.width
	}
	last := periodReportColumns[len(periodReportColumns)-1]
	pdf.CellFormat(labelWidth, 8, fmt.Sprintf("Total (%d tenants)", len(items)), "1", 0, "R", false, 0, "")
	pdf.CellFormat(last.width, 8, total.StringFixed(2), "1", 1, last.align, false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *ReceiptRenderer) printDueDate(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.In(r.Location).Format("02 Jan 2006")
}
