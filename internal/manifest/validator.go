package manifest

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jordtransport/importer/internal/domain"
	"github.com/jordtransport/importer/internal/facility"
)

// RowValidator applies the schema contract and the facility directory to
// manifest rows. It holds no mutable state and is safe for concurrent use.
type RowValidator struct {
	schema    domain.SchemaDefinition
	directory *facility.Directory
}

// NewRowValidator creates a validator bound to one schema version and one
// facility directory.
func NewRowValidator(schema domain.SchemaDefinition, directory *facility.Directory) *RowValidator {
	return &RowValidator{schema: schema, directory: directory}
}

// CheckHeader runs the file-scope schema phase: every mandatory column must
// be present exactly once. A failure here aborts the import before any row
// is looked at.
func (v *RowValidator) CheckHeader(headers []string) error {
	seen := make(map[string]int, len(headers))
	for _, name := range headers {
		seen[name]++
	}

	var missing []string
	for _, name := range v.schema.MandatoryColumns() {
		if seen[name] == 0 {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return &MissingColumnsError{Columns: missing}
	}

	var duplicates []string
	for _, name := range headers {
		if seen[name] > 1 {
			duplicates = append(duplicates, name)
			seen[name] = 0 // report each duplicate once
		}
	}
	if len(duplicates) > 0 {
		return &DuplicateColumnsError{Columns: duplicates}
	}

	return nil
}

// ValidateRow runs every applicable row-level check and returns all
// violations found. Checks are independent: one failure does not stop the
// others, so a single pass yields the full diagnostic for the row.
func (v *RowValidator) ValidateRow(row domain.RawRow) []domain.FieldError {
	var errs []domain.FieldError

	for _, field := range v.schema.Fields() {
		raw := strings.TrimSpace(row.Values[field.Name])

		if raw == "" {
			if field.Required {
				errs = append(errs, domain.FieldError{
					Row:     row.Index,
					Field:   field.Name,
					Code:    domain.ErrCodeRequiredFieldMissing,
					Message: "mandatory field is empty",
				})
			}
			continue
		}

		if fieldErr := v.checkValue(row.Index, field, raw); fieldErr != nil {
			errs = append(errs, *fieldErr)
		}
	}

	return errs
}

func (v *RowValidator) checkValue(rowIndex int, field domain.FieldDefinition, raw string) *domain.FieldError {
	switch field.Name {
	case domain.ColumnPostnummer:
		return v.checkPostalCode(rowIndex, raw)
	case domain.ColumnFacilityID:
		return v.checkFacilityID(rowIndex, raw)
	}

	switch field.Type {
	case domain.FieldTypeEnum:
		if _, ok := canonicalEnumValue(raw, field.Enum); !ok {
			return &domain.FieldError{
				Row:     rowIndex,
				Field:   field.Name,
				Code:    domain.ErrCodeInvalidEnumValue,
				Message: fmt.Sprintf("must be one of: %s", strings.Join(field.Enum, ", ")),
				Value:   raw,
			}
		}
	case domain.FieldTypeFloat:
		weight, ok := parseFloatLoose(raw)
		if !ok || weight <= 0 {
			return &domain.FieldError{
				Row:     rowIndex,
				Field:   field.Name,
				Code:    domain.ErrCodeInvalidType,
				Message: "must be a strictly positive number",
				Value:   raw,
			}
		}
	case domain.FieldTypeDate:
		if _, ok := parseDate(raw); !ok {
			return &domain.FieldError{
				Row:     rowIndex,
				Field:   field.Name,
				Code:    domain.ErrCodeInvalidDateFormat,
				Message: "must be an ISO-8601 date (YYYY-MM-DD)",
				Value:   raw,
			}
		}
	}

	return nil
}

func (v *RowValidator) checkPostalCode(rowIndex int, raw string) *domain.FieldError {
	code, ok := parseIntLoose(raw)
	if !ok {
		return &domain.FieldError{
			Row:     rowIndex,
			Field:   domain.ColumnPostnummer,
			Code:    domain.ErrCodeInvalidType,
			Message: "must be a whole number",
			Value:   raw,
		}
	}
	if code < domain.PostalCodeMin || code > domain.PostalCodeMax {
		return &domain.FieldError{
			Row:     rowIndex,
			Field:   domain.ColumnPostnummer,
			Code:    domain.ErrCodePostalCodeOutOfRange,
			Message: fmt.Sprintf("postal code %d is outside the valid range %d-%d", code, domain.PostalCodeMin, domain.PostalCodeMax),
			Value:   raw,
		}
	}
	return nil
}

func (v *RowValidator) checkFacilityID(rowIndex int, raw string) *domain.FieldError {
	id, ok := parseIntLoose(raw)
	if !ok {
		return &domain.FieldError{
			Row:     rowIndex,
			Field:   domain.ColumnFacilityID,
			Code:    domain.ErrCodeInvalidType,
			Message: "must be a whole number",
			Value:   raw,
		}
	}
	if _, found := v.directory.Lookup(id); !found {
		return &domain.FieldError{
			Row:     rowIndex,
			Field:   domain.ColumnFacilityID,
			Code:    domain.ErrCodeUnknownFacilityID,
			Message: fmt.Sprintf("facility %d is not in the directory (valid: %s)", id, formatIDs(v.directory.IDs())),
			Value:   raw,
		}
	}
	return nil
}

func formatIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}

// parseIntLoose accepts plain integers and float renderings with a zero
// fraction, which spreadsheet tools produce for numeric cells.
func parseIntLoose(raw string) (int, bool) {
	if i, err := strconv.Atoi(raw); err == nil {
		return i, true
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && math.Mod(f, 1) == 0 {
		return int(f), true
	}
	return 0, false
}

// parseFloatLoose accepts both dot and comma decimal separators. NaN and the
// infinities parse but are not weights, and they do not serialize as JSON
// numbers, so they are rejected here.
func parseFloatLoose(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// canonicalEnumValue matches raw case-insensitively against the allowed
// values and returns the canonical casing.
func canonicalEnumValue(raw string, allowed []string) (string, bool) {
	for _, value := range allowed {
		if strings.EqualFold(raw, value) {
			return value, true
		}
	}
	return "", false
}
