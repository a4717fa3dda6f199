package reports

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"pawcare/internal/platform/dates"
)

const (
	SummarySheet = "Summary"
	EventsSheet  = "Events"

	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ExportXLSX escribe el resumen como libro con dos hojas: Summary y Events.
func ExportXLSX(w io.Writer, s Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	// NewFile arranca con "Sheet1"
	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	summaryRows := [][]any{
		{"Period", string(s.Period)},
		{"From", dates.Format(s.From)},
		{"To", dates.Format(s.To)},
		{"Appointments done", s.AppointmentsDone},
		{"Prescriptions dispensed", s.PrescriptionsDispensed},
		{"Pets added", s.PetsAdded},
	}
	for i, row := range summaryRows {
		f.SetCellValue(SummarySheet, fmt.Sprintf("A%d", i+1), row[0])
		f.SetCellValue(SummarySheet, fmt.Sprintf("B%d", i+1), row[1])
	}

	if _, err := f.NewSheet(EventsSheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}

	// Headers
	f.SetCellValue(EventsSheet, "A1", "Timestamp")
	f.SetCellValue(EventsSheet, "B1", "Type")
	f.SetCellValue(EventsSheet, "C1", "Message")
	f.SetCellValue(EventsSheet, "D1", "PetID")

	for i, e := range s.Events {
		row := i + 2
		f.SetCellValue(EventsSheet, fmt.Sprintf("A%d", row), e.Timestamp.Format("2006-01-02 15:04:05"))
		f.SetCellValue(EventsSheet, fmt.Sprintf("B%d", row), string(e.Type))
		f.SetCellValue(EventsSheet, fmt.Sprintf("C%d", row), e.Message)
		f.SetCellValue(EventsSheet, fmt.Sprintf("D%d", row), e.PetID)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// ExportFilename arma algo como pawcare-week-2026-10-08_2026-10-14.xlsx.
func ExportFilename(s Summary) string {
	return fmt.Sprintf("pawcare-%s-%s_%s.xlsx", s.Period, dates.Format(s.From), dates.Format(s.To))
}
