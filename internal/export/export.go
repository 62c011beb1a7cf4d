// Package export renders the admin booking list as an Excel workbook.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/lumina/backend/internal/model"
	"github.com/xuri/excelize/v2"
)

// SheetName is the single worksheet in the workbook.
const SheetName = "Bookings"

// ContentType is the MIME type of the rendered workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var headers = []string{
	"ID", "Couple", "Email", "Phone", "Event Date", "Event Location",
	"Services", "Message", "Status", "Created At", "Updated At",
}

// Bookings writes bookings as XLSX to w, one row per booking under a bold
// header row, in the order given.
func Bookings(w io.Writer, bookings []*model.Booking) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		return fmt.Errorf("export: create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("export: delete default sheet: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("export: header style: %w", err)
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(SheetName, cell, h); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(SheetName, "A1", last, style); err != nil {
		return err
	}

	for r, b := range bookings {
		row := []any{
			b.ID,
			b.CoupleName,
			b.Email,
			b.Phone,
			b.EventDate.Format("2006-01-02"),
			b.EventLocation,
			strings.Join(b.ServicesInterested, ", "),
			b.Message,
			string(b.Status),
			b.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			b.UpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("export: row %d: %w", r+2, err)
		}
	}

	if err := f.SetColWidth(SheetName, "A", "A", 38); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "B", "G", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "H", "H", 60); err != nil {
		return err
	}

	_, err = f.WriteTo(w)
	return err
}
