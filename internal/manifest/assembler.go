package manifest

import (
	"fmt"
	"strings"
	"time"

	"github.com/jordtransport/importer/internal/domain"
	"github.com/jordtransport/importer/internal/facility"
)

// Assembler converts validated rows into strongly typed transport records.
// It must only be handed rows with zero field errors; any parse failure in
// here is a caller-contract violation, not user input gone wrong.
type Assembler struct {
	directory *facility.Directory
}

// NewAssembler creates an assembler resolving facilities against directory.
func NewAssembler(directory *facility.Directory) *Assembler {
	return &Assembler{directory: directory}
}

// Assemble builds a TransportRecord from a validated row, trimming strings,
// parsing numbers and dates, canonicalizing enum casing, and resolving the
// facility ID to its directory entry.
func (a *Assembler) Assemble(row domain.RawRow) (domain.TransportRecord, error) {
	postalCode, ok := parseIntLoose(strings.TrimSpace(row.Values[domain.ColumnPostnummer]))
	if !ok {
		return domain.TransportRecord{}, fmt.Errorf("row %d passed to assembler with unparsable %s", row.Index, domain.ColumnPostnummer)
	}

	facilityID, ok := parseIntLoose(strings.TrimSpace(row.Values[domain.ColumnFacilityID]))
	if !ok {
		return domain.TransportRecord{}, fmt.Errorf("row %d passed to assembler with unparsable %s", row.Index, domain.ColumnFacilityID)
	}
	resolved, found := a.directory.Lookup(facilityID)
	if !found {
		return domain.TransportRecord{}, fmt.Errorf("row %d passed to assembler with unknown facility %d", row.Index, facilityID)
	}

	record := domain.TransportRecord{
		Address:    strings.TrimSpace(row.Values[domain.ColumnAdresse]),
		PostalCode: postalCode,
		District:   strings.TrimSpace(row.Values[domain.ColumnPostDistrikt]),
		Facility:   resolved,
		Name:       strings.TrimSpace(row.Values[domain.ColumnNavn]),
	}

	if raw := strings.TrimSpace(row.Values[domain.ColumnDato]); raw != "" {
		date, ok := parseDate(raw)
		if !ok {
			return domain.TransportRecord{}, fmt.Errorf("row %d passed to assembler with unparsable %s", row.Index, domain.ColumnDato)
		}
		record.Date = &date
	}

	if raw := strings.TrimSpace(row.Values[domain.ColumnVehicleType]); raw != "" {
		canonical, ok := canonicalEnumValue(raw, domain.VehicleTypes)
		if !ok {
			return domain.TransportRecord{}, fmt.Errorf("row %d passed to assembler with invalid %s", row.Index, domain.ColumnVehicleType)
		}
		record.VehicleType = canonical
	}

	if raw := strings.TrimSpace(row.Values[domain.ColumnFuelType]); raw != "" {
		canonical, ok := canonicalEnumValue(raw, domain.FuelTypes)
		if !ok {
			return domain.TransportRecord{}, fmt.Errorf("row %d passed to assembler with invalid %s", row.Index, domain.ColumnFuelType)
		}
		record.FuelType = canonical
	}

	if raw := strings.TrimSpace(row.Values[domain.ColumnLoadWeight]); raw != "" {
		weight, ok := parseFloatLoose(raw)
		if !ok {
			return domain.TransportRecord{}, fmt.Errorf("row %d passed to assembler with unparsable %s", row.Index, domain.ColumnLoadWeight)
		}
		record.LoadWeightKg = &weight
	}

	return record, nil
}

func parseDate(raw string) (time.Time, bool) {
	date, err := time.Parse(domain.DateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return date, true
}
