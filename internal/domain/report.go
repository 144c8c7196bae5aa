package domain

// ErrorCode classifies a single failed row-level constraint.
type ErrorCode string

const (
	ErrCodeRequiredFieldMissing ErrorCode = "REQUIRED_FIELD_MISSING"
	ErrCodeInvalidType          ErrorCode = "INVALID_TYPE"
	ErrCodePostalCodeOutOfRange ErrorCode = "POSTAL_CODE_OUT_OF_RANGE"
	ErrCodeUnknownFacilityID    ErrorCode = "UNKNOWN_FACILITY_ID"
	ErrCodeInvalidEnumValue     ErrorCode = "INVALID_ENUM_VALUE"
	ErrCodeInvalidDateFormat    ErrorCode = "INVALID_DATE_FORMAT"
)

// FieldError captures one failed constraint on one field of one row.
type FieldError struct {
	Row     int       `json:"row"`
	Field   string    `json:"field"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Value   string    `json:"value,omitempty"`
}

// RowRejection collects every violation found on a single row. A rejected
// row never contributes a TransportRecord.
type RowRejection struct {
	Row    int          `json:"row"`
	Errors []FieldError `json:"errors"`
}

// ValidationReport is the outcome of one manifest import. Records and
// Rejections each preserve original file order, and a row appears in exactly
// one of the two. The report is a plain value: building it twice from the
// same bytes yields identical results.
type ValidationReport struct {
	FileName   string            `json:"fileName"`
	TotalRows  int               `json:"totalRows"`
	Accepted   int               `json:"accepted"`
	Rejected   int               `json:"rejected"`
	Records    []TransportRecord `json:"records"`
	Rejections []RowRejection    `json:"rejections"`
	// Warnings carry file-level observations that do not reject rows,
	// such as unknown columns being ignored.
	Warnings []string `json:"warnings,omitempty"`
}
