// Package export writes the trip collection as a spreadsheet workbook.
package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jbonatakis/cabinlog/internal/catalog"
	"github.com/jbonatakis/cabinlog/internal/trip"
	"github.com/xuri/excelize/v2"
)

const (
	TripsSheet     = "Viajes"
	AnomaliesSheet = "Anomalías"
)

var (
	tripHeaders = []string{
		"Código", "Línea", "Vía", "Fecha", "Técnico", "PK inicio", "PK fin",
		"Anomalías", "IAL", "IL", "AL", "Resumen (IA)",
	}
	anomalyHeaders = []string{
		"Código viaje", "Elemento", "Defecto", "Nivel", "PK", "Latitud", "Longitud", "Notas", "Fotografía",
	}
)

// WriteXLSX writes one row per trip and one row per anomaly, in collection order.
func WriteXLSX(w io.Writer, trips []trip.Trip) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), TripsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(AnomaliesSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", AnomaliesSheet, err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#1A4488"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := writeHeader(f, TripsSheet, tripHeaders, headerStyle); err != nil {
		return err
	}
	if err := writeHeader(f, AnomaliesSheet, anomalyHeaders, headerStyle); err != nil {
		return err
	}

	anomalyRow := 2
	for i, t := range trips {
		counts := t.Anomalies.Counts()
		row := []any{
			t.Code, t.Line, t.Track, t.Date, t.Technician,
			number(t.PKStart), number(t.PKEnd),
			len(t.Anomalies),
			counts[catalog.SeverityIAL], counts[catalog.SeverityIL], counts[catalog.SeverityAL],
			t.AISummary,
		}
		if err := setRow(f, TripsSheet, i+2, row); err != nil {
			return err
		}

		for _, a := range t.Anomalies {
			var lat, lng any = "", ""
			if a.Location != nil {
				lat, lng = a.Location.Lat, a.Location.Lng
			}
			hasPhoto := "No"
			if a.Photo != "" {
				hasPhoto = "Sí"
			}
			row := []any{t.Code, a.Element, a.Defect, string(a.Level), number(a.PK), lat, lng, a.Notes, hasPhoto}
			if err := setRow(f, AnomaliesSheet, anomalyRow, row); err != nil {
				return err
			}
			anomalyRow++
		}
	}

	if err := f.SetColWidth(TripsSheet, "A", "L", 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(AnomaliesSheet, "A", "I", 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	f.SetActiveSheet(0)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, headers []string, style int) error {
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := setRow(f, sheet, 1, row); err != nil {
		return err
	}
	if err := f.SetRowStyle(sheet, 1, 1, style); err != nil {
		return fmt.Errorf("style header %s: %w", sheet, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

// number stores numeric PK values as numbers and anything else as text.
func number(s string) any {
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return v
	}
	return s
}
