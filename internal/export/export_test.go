package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/lumina/backend/internal/model"
	"github.com/xuri/excelize/v2"
)

func TestBookings(t *testing.T) {
	created := time.Date(2026, 5, 1, 9, 30, 0, 0, time.UTC)
	bookings := []*model.Booking{
		{
			ID:                 "b-2",
			CoupleName:         "Mira & Dev",
			Email:              "mira@example.com",
			EventDate:          time.Date(2026, 12, 12, 0, 0, 0, 0, time.UTC),
			EventLocation:      "Goa",
			ServicesInterested: []string{"Photography", "Film"},
			Status:             model.BookingStatusConfirmed,
			CreatedAt:          created,
			UpdatedAt:          created,
		},
		{
			ID:                 "b-1",
			CoupleName:         "Aanya & Raj",
			Email:              "aanya@example.com",
			Phone:              "+911234567890",
			EventDate:          time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			EventLocation:      "Lake Como, Italy",
			ServicesInterested: []string{"Film"},
			Status:             model.BookingStatusNew,
			CreatedAt:          created,
			UpdatedAt:          created,
		},
	}

	var buf bytes.Buffer
	if err := Bookings(&buf, bookings); err != nil {
		t.Fatalf("Bookings: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != SheetName {
		t.Fatalf("unexpected sheets %v", sheets)
	}

	rows, err := f.GetRows(SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "ID" || rows[0][8] != "Status" {
		t.Errorf("unexpected header %v", rows[0])
	}

	checks := map[string]string{
		"A2": "b-2",
		"B2": "Mira & Dev",
		"E2": "2026-12-12",
		"G2": "Photography, Film",
		"I2": "confirmed",
		"J2": "2026-05-01 09:30:00",
		"A3": "b-1",
		"D3": "+911234567890",
	}
	for cell, want := range checks {
		got, err := f.GetCellValue(SheetName, cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s): %v", cell, err)
		}
		if got != want {
			t.Errorf("%s = %q, want %q", cell, got, want)
		}
	}
}

func TestBookings_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Bookings(&buf, nil); err != nil {
		t.Fatalf("Bookings: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows(SheetName)
	if len(rows) != 1 {
		t.Errorf("expected only the header row, got %d", len(rows))
	}
}
