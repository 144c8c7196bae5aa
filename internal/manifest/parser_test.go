package manifest

import (
	"errors"
	"testing"

	"github.com/jordtransport/importer/internal/domain"

	"github.com/xuri/excelize/v2"
)

func TestParseCSV(t *testing.T) {
	data := "Adresse,Postnummer,PostDistrikt,ModtageranlægID\nNørregade 10,1000,København,1061\nSøndergade 20,8000,Aarhus C,1013\n"

	table, err := Parse("jobs.csv", []byte(data))
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}

	if len(table.Headers) != 4 {
		t.Fatalf("expected 4 headers, got %d: %v", len(table.Headers), table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	if table.Rows[0].Index != 1 || table.Rows[1].Index != 2 {
		t.Fatalf("unexpected row indices: %d, %d", table.Rows[0].Index, table.Rows[1].Index)
	}
	if table.Rows[0].Values[domain.ColumnAdresse] != "Nørregade 10" {
		t.Fatalf("unexpected address: %q", table.Rows[0].Values[domain.ColumnAdresse])
	}
	if table.Rows[1].Values[domain.ColumnFacilityID] != "1013" {
		t.Fatalf("unexpected facility id: %q", table.Rows[1].Values[domain.ColumnFacilityID])
	}
}

func TestParseCSVStripsByteOrderMark(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("Adresse,Postnummer,PostDistrikt,ModtageranlægID\nNørregade 10,1000,København,1061\n")...)

	table, err := Parse("jobs.csv", data)
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if table.Headers[0] != domain.ColumnAdresse {
		t.Fatalf("BOM not stripped, first header: %q", table.Headers[0])
	}
}

func TestParseCSVNormalizesHeaderAliases(t *testing.T) {
	data := "street,postnr,by,receiver_id,fuel_type\nNørregade 10,1000,København,1061,diesel\n"

	table, err := Parse("jobs.csv", []byte(data))
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}

	want := []string{
		domain.ColumnAdresse,
		domain.ColumnPostnummer,
		domain.ColumnPostDistrikt,
		domain.ColumnFacilityID,
		domain.ColumnFuelType,
	}
	for i, name := range want {
		if table.Headers[i] != name {
			t.Fatalf("expected header %q at position %d, got %q", name, i, table.Headers[i])
		}
	}
	if table.Rows[0].Values[domain.ColumnFuelType] != "diesel" {
		t.Fatalf("row values not keyed by canonical name: %v", table.Rows[0].Values)
	}
}

func TestParseCSVRejectsInvalidUTF8(t *testing.T) {
	data := []byte("Adresse,Postnummer\n")
	data = append(data, 0xFF, 0xFE, '\n')

	_, err := Parse("jobs.csv", data)
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestParseRejectsUnknownExtension(t *testing.T) {
	_, err := Parse("jobs.txt", []byte("Adresse\nNørregade 10\n"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestParseRejectsFileWithoutDataRows(t *testing.T) {
	_, err := Parse("jobs.csv", []byte("Adresse,Postnummer,PostDistrikt,ModtageranlægID\n"))
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError for header-only file, got %v", err)
	}
}

func TestParseKeepsOriginalIndicesAcrossBlankRows(t *testing.T) {
	data := "Adresse,Postnummer,PostDistrikt,ModtageranlægID\nNørregade 10,1000,København,1061\n,,,\nSøndergade 20,8000,Aarhus C,1013\n"

	table, err := Parse("jobs.csv", []byte(data))
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected blank row to be skipped, got %d rows", len(table.Rows))
	}
	if table.Rows[0].Index != 1 || table.Rows[1].Index != 3 {
		t.Fatalf("expected indices 1 and 3, got %d and %d", table.Rows[0].Index, table.Rows[1].Index)
	}
}

func TestParseCSVPadsShortRows(t *testing.T) {
	data := "Adresse,Postnummer,PostDistrikt,ModtageranlægID\nNørregade 10,1000\n"

	table, err := Parse("jobs.csv", []byte(data))
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if got := table.Rows[0].Values[domain.ColumnFacilityID]; got != "" {
		t.Fatalf("expected empty cell for missing column, got %q", got)
	}
}

func TestParseExcelReadsDataSheet(t *testing.T) {
	payload := buildWorkbook(t, [][]any{
		{"Adresse", "Postnummer", "PostDistrikt", "ModtageranlægID"},
		{"Nørregade 10", 1000, "København", 1061},
	})

	table, err := Parse("jobs.xlsx", payload)
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if len(table.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(table.Rows))
	}
	if table.Rows[0].Values[domain.ColumnPostnummer] != "1000" {
		t.Fatalf("unexpected postal code cell: %q", table.Rows[0].Values[domain.ColumnPostnummer])
	}
}

func TestParseExcelPrefersDataSheetOverOthers(t *testing.T) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	// First sheet mimics the template's instruction sheet.
	if err := f.SetSheetRow("Sheet1", "A1", &[]any{"Vejledning", "Udfyld arket Data"}); err != nil {
		t.Fatalf("failed to write instruction sheet: %v", err)
	}
	if _, err := f.NewSheet(dataSheetName); err != nil {
		t.Fatalf("failed to create data sheet: %v", err)
	}
	if err := f.SetSheetRow(dataSheetName, "A1", &[]any{"Adresse", "Postnummer", "PostDistrikt", "ModtageranlægID"}); err != nil {
		t.Fatalf("failed to write header: %v", err)
	}
	if err := f.SetSheetRow(dataSheetName, "A2", &[]any{"Nørregade 10", 1000, "København", 1061}); err != nil {
		t.Fatalf("failed to write row: %v", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to serialize workbook: %v", err)
	}

	table, err := Parse("jobs.xlsx", buf.Bytes())
	if err != nil {
		t.Fatalf("parse returned error: %v", err)
	}
	if table.Headers[0] != domain.ColumnAdresse {
		t.Fatalf("expected Data sheet to be used, got headers %v", table.Headers)
	}
}

func TestParseExcelRejectsCorruptArchive(t *testing.T) {
	_, err := Parse("jobs.xlsx", []byte("this is not a zip archive"))
	var formatErr *FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

// buildWorkbook writes rows onto a sheet named Data and returns the xlsx
// bytes.
func buildWorkbook(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", dataSheetName); err != nil {
		t.Fatalf("failed to rename sheet: %v", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("failed to compute cell name: %v", err)
		}
		if err := f.SetSheetRow(dataSheetName, cell, &row); err != nil {
			t.Fatalf("failed to write row %d: %v", i+1, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to serialize workbook: %v", err)
	}
	return buf.Bytes()
}
