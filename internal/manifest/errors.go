package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedFormat is returned when an uploaded file is neither a
// spreadsheet nor delimited text.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// FormatError reports that the file bytes could not be decoded as the
// declared format. It is fatal: no rows are processed.
type FormatError struct {
	Format string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot decode %s input: %v", e.Format, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// SizeLimitError reports an upload above the configured ceiling. The file is
// rejected before any parsing happens.
type SizeLimitError struct {
	Size  int64
	Limit int64
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("file size %d bytes exceeds limit of %d bytes", e.Size, e.Limit)
}

// MissingColumnsError reports mandatory columns absent from the header. The
// file does not conform to the contract, so the whole import aborts without
// per-row validation.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing mandatory columns: %s", strings.Join(e.Columns, ", "))
}

// DuplicateColumnsError reports a header naming the same column more than
// once, which makes cell-to-field mapping ambiguous. Fatal.
type DuplicateColumnsError struct {
	Columns []string
}

func (e *DuplicateColumnsError) Error() string {
	return fmt.Sprintf("duplicate columns in header: %s", strings.Join(e.Columns, ", "))
}
