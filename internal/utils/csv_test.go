package utils

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"vistoria/internal/models"
)

func TestWriteInspectionsCSV(t *testing.T) {
	rows := []*models.InspectionExportRow{
		{
			ID:             "64f000000000000000000001",
			Title:          "Annual check",
			Status:         "REJECTED",
			StartDate:      "2026-08-01",
			EndDate:        "2026-08-01",
			ElapsedMinutes: 55,
			Remarks:        "Brake service required",
			Vehicle: models.VehicleExport{
				Name: "Fleet Van 1", Plate: "DEF-1010", Brand: "Fiat",
				Model: "Ducato", Year: 2019, Owner: "Logistica Prime",
			},
			Inspector: models.InspectorExport{Name: "Carlos Mendes", Email: "carlos@vistoria.dev"},
			Checklist: models.ChecklistTotals{Total: 5, Approved: 3, Rejected: 1, NotApplicable: 1},
		},
	}

	var buf bytes.Buffer
	if err := WriteInspectionsCSV(&buf, rows); err != nil {
		t.Fatalf("WriteInspectionsCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("records = %d, want header plus one row", len(records))
	}
	if got := strings.Join(records[0], ","); !strings.HasPrefix(got, "ID,Title,Status,Start Date") {
		t.Errorf("header = %q", got)
	}
	row := records[1]
	if len(row) != len(records[0]) {
		t.Fatalf("row has %d columns, header has %d", len(row), len(records[0]))
	}
	if row[2] != "REJECTED" || row[5] != "55" || row[8] != "DEF-1010" {
		t.Errorf("row = %v", row)
	}
	if row[15] != "5" || row[17] != "1" {
		t.Errorf("checklist columns = %v, want total 5 and rejected 1", row[15:])
	}
}

func TestWriteInspectorsCSV(t *testing.T) {
	rows := []*models.InspectorExportRow{
		{
			ID: "64f000000000000000000002", Name: "Ana Lima", Email: "ana@vistoria.dev",
			Total: 4, Approved: 2, Rejected: 1, Pending: 1,
			MeanElapsedMinutes: 40, ApprovalRate: 50,
		},
		{ID: "64f000000000000000000003", Name: "Carlos Mendes", Email: "carlos@vistoria.dev"},
	}

	var buf bytes.Buffer
	if err := WriteInspectorsCSV(&buf, rows); err != nil {
		t.Fatalf("WriteInspectorsCSV() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("records = %d, want header plus two rows", len(records))
	}
	busy := records[1]
	if busy[1] != "Ana Lima" || busy[3] != "4" || busy[10] != "50" {
		t.Errorf("busy row = %v", busy)
	}
	idle := records[2]
	if idle[3] != "0" || idle[10] != "0" {
		t.Errorf("idle row = %v, want zero totals", idle)
	}
}

func TestWriteInspectionsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteInspectionsCSV(&buf, nil); err != nil {
		t.Fatalf("WriteInspectionsCSV() error = %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("records = %d, want header only", len(records))
	}
}
