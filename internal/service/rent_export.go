package service

import (
	"fmt"
	"time"

	"rent-bo-svc/internal/rentview"

	"github.com/xuri/excelize/v2"
)

const rentSheetName = "Rent Data"

var rentExportHeaders = []string{
	"No", "Tenant", "Email", "Company", "Floor", "Due Date", "Status",
	"Rent", "Maintenance", "CGST", "SGST", "TDS", "Total",
	"Previous Due", "Previous Status",
}

// BuildRentWorkbook writes the combined rent rows of a period to an xlsx workbook
func BuildRentWorkbook(items []rentview.CombinedRentItem, month, year int) ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	index, err := f.NewSheet(rentSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	title := fmt.Sprintf("Rent for %s %d", time.Month(month).String(), year)
	if err := f.SetCellValue(rentSheetName, "A1", title); err != nil {
		return nil, fmt.Errorf("failed to write title: %w", err)
	}

	for i, header := range rentExportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		if err := f.SetCellValue(rentSheetName, cell, header); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D3D3D3"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(rentExportHeaders), 2)
		_ = f.SetCellStyle(rentSheetName, "A2", last, headerStyle)
	}

	for i, item := range items {
		cur, prev := item.CurrentMonth, item.PreviousMonth
		values := []interface{}{
			i + 1,
			item.TenantName,
			item.TenantEmail,
			item.CompanyName,
			item.Floor,
			dueDateCell(cur),
			string(cur.Status),
			cur.Amount.InexactFloat64(),
			cur.Maintenance.InexactFloat64(),
			cur.CGST.InexactFloat64(),
			cur.SGST.InexactFloat64(),
			cur.TDS.InexactFloat64(),
			cur.Total.InexactFloat64(),
			prev.Amount.InexactFloat64(),
			string(prev.Status),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+3)
			if err := f.SetCellValue(rentSheetName, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	for i := 1; i <= len(rentExportHeaders); i++ {
		col, _ := excelize.ColumnNumberToName(i)
		_ = f.SetColWidth(rentSheetName, col, col, 15)
	}

	if f.GetSheetName(0) == "Sheet1" {
		_ = f.DeleteSheet("Sheet1")
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buffer.Bytes(), nil
}

func dueDateCell(rec rentview.MonthRecord) string {
	y, m, ok := rec.DuePeriod()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s %d", time.Month(m).String(), y)
}
