package manifest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jordtransport/importer/internal/domain"

	"github.com/xuri/excelize/v2"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// dataSheetName is the sheet the distributed template stores manifest rows
// on. Its instruction and reference sheets are ignored.
const dataSheetName = "Data"

// columnAliases maps common header spellings, lower-cased with spaces
// removed, to the canonical template column names.
var columnAliases = map[string]string{
	"adresse": domain.ColumnAdresse,
	"gade":    domain.ColumnAdresse,
	"vejnavn": domain.ColumnAdresse,
	"street":  domain.ColumnAdresse,

	"postnummer":  domain.ColumnPostnummer,
	"postnr":      domain.ColumnPostnummer,
	"zip":         domain.ColumnPostnummer,
	"postal_code": domain.ColumnPostnummer,

	"postdistrikt": domain.ColumnPostDistrikt,
	"by":           domain.ColumnPostDistrikt,
	"bynavn":       domain.ColumnPostDistrikt,
	"city":         domain.ColumnPostDistrikt,

	"modtageranlægid":    domain.ColumnFacilityID,
	"modtageranlaegid":   domain.ColumnFacilityID,
	"modtager_anlaeg_id": domain.ColumnFacilityID,
	"receiver_id":        domain.ColumnFacilityID,
	"anlaeg_id":          domain.ColumnFacilityID,

	"navn":    domain.ColumnNavn,
	"name":    domain.ColumnNavn,
	"firma":   domain.ColumnNavn,
	"company": domain.ColumnNavn,

	"dato": domain.ColumnDato,
	"date": domain.ColumnDato,

	"køretøjstype":   domain.ColumnVehicleType,
	"koeretoejstype": domain.ColumnVehicleType,
	"vehicle_type":   domain.ColumnVehicleType,
	"bil_type":       domain.ColumnVehicleType,

	"lastvægt":    domain.ColumnLoadWeight,
	"lastvaegt":   domain.ColumnLoadWeight,
	"vaegt":       domain.ColumnLoadWeight,
	"weight":      domain.ColumnLoadWeight,
	"load_weight": domain.ColumnLoadWeight,

	"brændstoftype":  domain.ColumnFuelType,
	"braendstoftype": domain.ColumnFuelType,
	"braendstof":     domain.ColumnFuelType,
	"fuel_type":      domain.ColumnFuelType,
}

// Table is the format-independent parse result: one header row plus ordered
// raw rows. The spreadsheet and CSV readers both produce this shape, so
// nothing downstream branches on the source format.
type Table struct {
	Headers []string
	Rows    []domain.RawRow
}

// Parse decodes file bytes into a Table. The format is declared by the file
// extension; anything other than .csv or .xlsx is ErrUnsupportedFormat.
func Parse(fileName string, payload []byte) (Table, error) {
	ext := strings.ToLower(filepath.Ext(fileName))
	switch ext {
	case ".csv":
		return parseCSV(payload)
	case ".xlsx":
		return parseExcel(payload)
	default:
		return Table{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func parseCSV(payload []byte) (Table, error) {
	if !utf8.Valid(payload) {
		return Table{}, &FormatError{Format: "csv", Err: errors.New("file is not valid UTF-8")}
	}

	reader := bufio.NewReader(bytes.NewReader(payload))
	if prefix, err := reader.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = reader.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return Table{}, &FormatError{Format: "csv", Err: err}
	}

	return normalizeTable(records, "csv")
}

func parseExcel(payload []byte) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return Table{}, &FormatError{Format: "xlsx", Err: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, &FormatError{Format: "xlsx", Err: errors.New("workbook has no sheets")}
	}

	sheet := sheets[0]
	for _, name := range sheets {
		if name == dataSheetName {
			sheet = name
			break
		}
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, &FormatError{Format: "xlsx", Err: err}
	}

	return normalizeTable(records, "xlsx")
}

// normalizeTable turns raw records into a Table: the first non-blank row is
// the header, blank rows are skipped but still counted so RawRow indices
// match positions in the original file (1-based, header excluded).
func normalizeTable(records [][]string, format string) (Table, error) {
	headerAt := -1
	var headers []string
	for idx, record := range records {
		if isBlankRow(record) {
			continue
		}
		headerAt = idx
		headers = canonicalizeHeaders(record)
		break
	}
	if headerAt == -1 {
		return Table{}, &FormatError{Format: format, Err: errors.New("no header row found")}
	}

	var rows []domain.RawRow
	for offset, record := range records[headerAt+1:] {
		if isBlankRow(record) {
			continue
		}
		values := make(map[string]string, len(headers))
		for col, name := range headers {
			if col < len(record) {
				values[name] = record[col]
			} else {
				values[name] = ""
			}
		}
		rows = append(rows, domain.RawRow{Index: offset + 1, Values: values})
	}

	if len(rows) == 0 {
		return Table{}, &FormatError{Format: format, Err: errors.New("no data rows found")}
	}

	return Table{Headers: headers, Rows: rows}, nil
}

func canonicalizeHeaders(record []string) []string {
	headers := make([]string, len(record))
	for idx, raw := range record {
		headers[idx] = canonicalizeHeader(raw)
	}
	return headers
}

func canonicalizeHeader(raw string) string {
	trimmed := strings.TrimSpace(raw)
	key := strings.ReplaceAll(strings.ToLower(trimmed), " ", "")
	if canonical, ok := columnAliases[key]; ok {
		return canonical
	}
	return trimmed
}

func isBlankRow(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
