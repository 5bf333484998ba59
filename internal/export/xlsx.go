package export

import (
	"context"
	"fmt"
	"io"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

const (
	sheetName      = "Bookings"
	exportPageSize = 100
	timeLayout     = "2006-01-02 15:04"
)

var headers = []string{"ID", "Item", "Item ID", "Booker ID", "Start", "End", "Status"}

var statusColors = map[models.BookingStatus]string{
	models.StatusWaiting:  "#FFF2CC",
	models.StatusApproved: "#E2EFDA",
	models.StatusRejected: "#F8CBAD",
}

// OwnerExporter writes the bookings of an owner's items into an xlsx workbook.
type OwnerExporter struct {
	bookings domain.BookingService
	items    domain.ItemCatalog
	logger   *zerolog.Logger
}

func NewOwnerExporter(bookings domain.BookingService, items domain.ItemCatalog, logger *zerolog.Logger) *OwnerExporter {
	return &OwnerExporter{bookings: bookings, items: items, logger: logger}
}

// WriteOwnerBookings exports every booking matching state, newest first, and returns the row count.
func (e *OwnerExporter) WriteOwnerBookings(ctx context.Context, w io.Writer, ownerID int64, state models.BookingState) (int, error) {
	bookings, err := e.collect(ctx, ownerID, state)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if _, err := f.NewSheet(sheetName); err != nil {
		return 0, fmt.Errorf("error creating sheet: %w", err)
	}
	_ = f.DeleteSheet("Sheet1")
	if index, err := f.GetSheetIndex(sheetName); err == nil {
		f.SetActiveSheet(index)
	}

	if err := e.writeHeader(f); err != nil {
		return 0, err
	}

	itemNames := make(map[int64]string)
	styles := make(map[models.BookingStatus]int)
	for i, b := range bookings {
		row := i + 2
		name, ok := itemNames[b.ItemID]
		if !ok {
			item, err := e.items.GetItemByID(ctx, b.ItemID)
			if err != nil {
				return 0, err
			}
			name = item.Name
			itemNames[b.ItemID] = name
		}

		values := []interface{}{
			b.ID, name, b.ItemID, b.BookerID,
			b.Start.Format(timeLayout), b.End.Format(timeLayout), string(b.Status),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return 0, fmt.Errorf("error writing row %d: %w", row, err)
		}

		style, err := e.statusStyle(f, styles, b.Status)
		if err != nil {
			return 0, err
		}
		statusCell, _ := excelize.CoordinatesToCellName(len(headers), row)
		_ = f.SetCellStyle(sheetName, statusCell, statusCell, style)
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "B", 30)
	_ = f.SetColWidth(sheetName, "C", "D", 12)
	_ = f.SetColWidth(sheetName, "E", "G", 20)

	if _, err := f.WriteTo(w); err != nil {
		return 0, fmt.Errorf("error writing workbook: %w", err)
	}

	e.logger.Info().Int64("owner_id", ownerID).Int("rows", len(bookings)).Msg("bookings exported")
	return len(bookings), nil
}

func (e *OwnerExporter) collect(ctx context.Context, ownerID int64, state models.BookingState) ([]*models.Booking, error) {
	var all []*models.Booking
	for from := 0; ; from += exportPageSize {
		page, err := e.bookings.ListOwnerBookings(ctx, ownerID, models.BookingQuery{
			State: state,
			From:  from,
			Size:  exportPageSize,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(page) < exportPageSize {
			return all, nil
		}
	}
}

func (e *OwnerExporter) writeHeader(f *excelize.File) error {
	values := make([]interface{}, len(headers))
	for i, h := range headers {
		values[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &values); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("error creating header style: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	_ = f.SetCellStyle(sheetName, "A1", last, style)
	return f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func (e *OwnerExporter) statusStyle(f *excelize.File, cache map[models.BookingStatus]int, status models.BookingStatus) (int, error) {
	if id, ok := cache[status]; ok {
		return id, nil
	}
	id, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{statusColors[status]}, Pattern: 1},
	})
	if err != nil {
		return 0, fmt.Errorf("error creating status style: %w", err)
	}
	cache[status] = id
	return id, nil
}
