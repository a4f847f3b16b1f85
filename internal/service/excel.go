package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/xuri/excelize/v2"

	"wanderplan/internal/models"
)

// ExportExcel renders the itinerary to an .xlsx file under exportDir and
// returns the file path. One row per booking, grouped by day, with a
// budget rollup at the bottom.
func (s *TransferService) ExportExcel(ctx context.Context, exportDir string) (string, error) {
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	trip, err := s.trips.GetDetails(ctx)
	if err != nil {
		return "", fmt.Errorf("error getting trip details: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Itinerary"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	title := trip.Destination
	if title == "" {
		title = "Trip"
	}
	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s - %d days, %d people", title, trip.Days, trip.People))
	_ = f.MergeCell(sheetName, "A1", "E1")

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	headers := []string{"Day", "Start", "End", "Activity", "Cost p.p."}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 2)
		_ = f.SetCellValue(sheetName, cell, h)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	_ = f.SetCellStyle(sheetName, "A2", "E2", headerStyle)

	row := 3
	activityTotal := 0.0
	for day := 1; day <= trip.Days; day++ {
		plan := trip.Plan(day)
		bookings := append([]models.Booking(nil), plan.Bookings...)
		sort.SliceStable(bookings, func(i, j int) bool {
			return bookings[i].StartTime < bookings[j].StartTime
		})
		for _, b := range bookings {
			_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), day)
			_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), b.StartTime)
			_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), b.EndTime)
			_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), b.Title)
			_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), b.Cost)
			activityTotal += b.Cost
			row++
		}
	}

	people := trip.People
	if people < 1 {
		people = 1
	}
	row++
	_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), "Total per person")
	_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), activityTotal)
	row++
	_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), fmt.Sprintf("Total for %d people", people))
	_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), activityTotal*float64(people))

	_ = f.SetColWidth(sheetName, "A", "C", 10)
	_ = f.SetColWidth(sheetName, "D", "D", 32)
	_ = f.SetColWidth(sheetName, "E", "E", 14)

	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("itinerary_%s.xlsx", time.Now().Format("2006-01-02"))
	filePath := filepath.Join(exportDir, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	s.logger.Info().Str("file_path", filePath).Msg("Excel file created")
	return filePath, nil
}
