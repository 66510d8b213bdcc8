package export

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jbonatakis/cabinlog/internal/trip"
	"github.com/xuri/excelize/v2"
)

func openWorkbook(t *testing.T, trips []trip.Trip) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, trips); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWriteXLSXSheets(t *testing.T) {
	f := openWorkbook(t, nil)
	if diff := cmp.Diff([]string{TripsSheet, AnomaliesSheet}, f.GetSheetList()); diff != "" {
		t.Fatalf("sheets (-want +got):\n%s", diff)
	}
	rows, err := f.GetRows(TripsSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 1 || rows[0][0] != "Código" {
		t.Fatalf("expected only the header row, got %v", rows)
	}
}

func TestWriteXLSXRows(t *testing.T) {
	sample := trip.SampleTrip()
	sample.Anomalies[1].Photo = "data:image/png;base64,iVBORw0KGgo="
	other := trip.Trip{Code: "VC_2024_01_01_zzzzz", Line: "L1", PKStart: "km 3", PKEnd: "4", Anomalies: trip.Anomalies{}}

	f := openWorkbook(t, []trip.Trip{sample, other})

	trips, err := f.GetRows(TripsSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(trips) != 3 {
		t.Fatalf("trip rows = %d, want 3", len(trips))
	}
	want := []string{"VC_2024_09_07_demo1", "040 MADRID-VALENCIA", "V1", "2024-09-07", "Técnico de ejemplo", "0", "168.5", "2", "1", "1", "0"}
	if diff := cmp.Diff(want, trips[1][:len(want)]); diff != "" {
		t.Fatalf("sample row (-want +got):\n%s", diff)
	}
	if trips[2][0] != "VC_2024_01_01_zzzzz" || trips[2][5] != "km 3" {
		t.Fatalf("second row = %v", trips[2])
	}

	anomalies, err := f.GetRows(AnomaliesSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(anomalies) != 3 {
		t.Fatalf("anomaly rows = %d, want 3", len(anomalies))
	}
	if anomalies[1][1] != "Balasto" || anomalies[1][3] != "IAL" || anomalies[1][5] != "40.0712" || anomalies[1][8] != "No" {
		t.Fatalf("first anomaly row = %v", anomalies[1])
	}
	if anomalies[2][1] != "Cerramientos" || anomalies[2][5] != "" || anomalies[2][8] != "Sí" {
		t.Fatalf("second anomaly row = %v", anomalies[2])
	}
}
