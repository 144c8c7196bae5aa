package manifest

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jordtransport/importer/internal/domain"
	"github.com/jordtransport/importer/internal/facility"

	"golang.org/x/sync/errgroup"
)

// DefaultMaxFileSize is the documented 10 MB upload ceiling.
const DefaultMaxFileSize = 10 << 20

// DefaultWorkers bounds parallel row validation when no worker count is
// configured.
const DefaultWorkers = 4

// Config tunes one import service instance.
type Config struct {
	// MaxFileSize in bytes; larger inputs are rejected before parsing.
	MaxFileSize int64
	// Workers is the number of rows validated concurrently.
	Workers int
}

func (c Config) withDefaults() Config {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	return c
}

// Service runs manifest imports: parse the upload, check the header against
// the schema, validate rows, and assemble the report. One file in, one
// report out; the service itself retains nothing between calls.
type Service struct {
	schema    domain.SchemaDefinition
	validator *RowValidator
	assembler *Assembler
	cfg       Config
}

// NewService creates an import service bound to a schema contract and a
// facility directory.
func NewService(schema domain.SchemaDefinition, directory *facility.Directory, cfg Config) *Service {
	return &Service{
		schema:    schema,
		validator: NewRowValidator(schema, directory),
		assembler: NewAssembler(directory),
		cfg:       cfg.withDefaults(),
	}
}

// Import validates one uploaded manifest. Fatal conditions (undecodable
// file, size ceiling, missing mandatory columns) return an error and no
// report. Otherwise a report is always returned, even when every row was
// rejected; deciding whether zero accepted rows is an error is up to the
// caller.
func (s *Service) Import(ctx context.Context, fileName string, data io.Reader) (domain.ValidationReport, error) {
	report := domain.ValidationReport{
		FileName:   fileName,
		Records:    []domain.TransportRecord{},
		Rejections: []domain.RowRejection{},
	}

	if data == nil {
		return report, errors.New("data reader is required")
	}

	payload, err := io.ReadAll(io.LimitReader(data, s.cfg.MaxFileSize+1))
	if err != nil {
		return report, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(payload) == 0 {
		return report, errors.New("file is empty")
	}
	if int64(len(payload)) > s.cfg.MaxFileSize {
		return report, &SizeLimitError{Size: int64(len(payload)), Limit: s.cfg.MaxFileSize}
	}

	table, err := Parse(fileName, payload)
	if err != nil {
		return report, err
	}

	if err := s.validator.CheckHeader(table.Headers); err != nil {
		return report, err
	}

	report.TotalRows = len(table.Rows)
	report.Warnings = s.headerWarnings(table.Headers)

	// Rows are independent, so they are validated in parallel; results land
	// in an index-addressed slice so the report keeps original file order
	// regardless of completion order.
	type rowResult struct {
		record   domain.TransportRecord
		errs     []domain.FieldError
		accepted bool
	}
	results := make([]rowResult, len(table.Rows))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	for i, row := range table.Rows {
		i, row := i, row
		g.Go(func() error {
			errs := s.validator.ValidateRow(row)
			if len(errs) > 0 {
				results[i] = rowResult{errs: errs}
				return nil
			}
			record, err := s.assembler.Assemble(row)
			if err != nil {
				return err
			}
			results[i] = rowResult{record: record, accepted: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}

	for i, result := range results {
		if result.accepted {
			report.Records = append(report.Records, result.record)
			report.Accepted++
			continue
		}
		report.Rejections = append(report.Rejections, domain.RowRejection{
			Row:    table.Rows[i].Index,
			Errors: result.errs,
		})
		report.Rejected++
	}

	return report, nil
}

// headerWarnings flags columns the schema does not know. Unknown columns are
// ignored rather than rejected, but the caller gets to surface them.
func (s *Service) headerWarnings(headers []string) []string {
	var warnings []string
	for _, name := range headers {
		if name == "" {
			continue
		}
		if !s.schema.Has(name) {
			warnings = append(warnings, fmt.Sprintf("unknown column %q ignored", name))
		}
	}
	return warnings
}
