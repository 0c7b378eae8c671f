// Package importapp implements bulk CSV imports. Admins migrating the
// membership roll from spreadsheets upload a CSV, validate it for a
// preview, then run the import proper.
package importapp

import (
	"context"
	"errors"
	"net/mail"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ikada/backend/internal/domain/membership"
	"github.com/ikada/backend/internal/domain/shared"
	csvimport "github.com/ikada/backend/internal/infrastructure/import"
)

// Required columns for the alumni CSV. Optional columns: phone,
// syubiyah (matched by name), address.
var alumniRequiredHeaders = []string{"full_name", "email", "graduation_year"}

const maxReportedErrors = 100

// ImportResult summarizes an import run
type ImportResult struct {
	TotalRows   int                  `json:"total_rows"`
	Imported    int                  `json:"imported"`
	Skipped     int                  `json:"skipped"`
	Errors      []csvimport.RowError `json:"errors,omitempty"`
	TotalErrors int                  `json:"total_errors"`
	Truncated   bool                 `json:"truncated,omitempty"`
}

// AlumniImportService imports alumni records from an uploaded CSV
type AlumniImportService struct {
	alumniRepo   membership.AlumniRepository
	syubiyahRepo membership.SyubiyahRepository
	eventBus     shared.EventPublisher
	logger       *zap.Logger
}

// NewAlumniImportService creates a new AlumniImportService
func NewAlumniImportService(
	alumniRepo membership.AlumniRepository,
	syubiyahRepo membership.SyubiyahRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *AlumniImportService {
	return &AlumniImportService{
		alumniRepo:   alumniRepo,
		syubiyahRepo: syubiyahRepo,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// Validate parses the file and reports row errors without writing
// anything. The result doubles as the import preview.
func (s *AlumniImportService) Validate(ctx context.Context, data []byte) (*ImportResult, error) {
	rows, err := s.parse(data)
	if err != nil {
		return nil, err
	}

	collector := csvimport.NewErrorCollection(maxReportedErrors)
	seenEmails := make(map[string]int)
	syubiyahCache := make(map[string]*uuid.UUID)

	valid := 0
	for _, row := range rows {
		if _, ok := s.validateRow(ctx, row, seenEmails, syubiyahCache, collector); ok {
			valid++
		}
	}

	result := &ImportResult{
		TotalRows:   len(rows),
		Imported:    0,
		Skipped:     len(rows) - valid,
		Errors:      collector.Errors(),
		TotalErrors: collector.TotalCount(),
		Truncated:   collector.IsTruncated(),
	}
	return result, nil
}

// Import creates an alumni per valid row. Rows with errors are skipped,
// valid rows still go through. Imported alumni are verified immediately
// with the importer as verifier, the roll an admin uploads is already
// authoritative.
func (s *AlumniImportService) Import(ctx context.Context, importerID uuid.UUID, data []byte) (*ImportResult, error) {
	rows, err := s.parse(data)
	if err != nil {
		return nil, err
	}

	collector := csvimport.NewErrorCollection(maxReportedErrors)
	seenEmails := make(map[string]int)
	syubiyahCache := make(map[string]*uuid.UUID)

	imported := 0
	for _, row := range rows {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		parsed, ok := s.validateRow(ctx, row, seenEmails, syubiyahCache, collector)
		if !ok {
			continue
		}

		alumni, err := membership.NewAlumni(
			parsed.fullName, parsed.email, parsed.phone,
			parsed.graduationYear, parsed.syubiyahID, parsed.address,
		)
		if err != nil {
			collector.Add(csvimport.RowError{
				Row:     row.LineNumber,
				Code:    csvimport.ErrCodeImportValidation,
				Message: err.Error(),
			})
			continue
		}
		if err := alumni.Verify(importerID); err != nil {
			return nil, err
		}

		if err := s.alumniRepo.Save(ctx, alumni); err != nil {
			s.logger.Error("Failed to save imported alumni",
				zap.String("email", parsed.email),
				zap.Int("row", row.LineNumber),
				zap.Error(err),
			)
			collector.Add(csvimport.RowError{
				Row:     row.LineNumber,
				Code:    csvimport.ErrCodeImportValidation,
				Message: "failed to save row",
			})
			continue
		}
		s.publishEvents(ctx, alumni)
		imported++
	}

	result := &ImportResult{
		TotalRows:   len(rows),
		Imported:    imported,
		Skipped:     len(rows) - imported,
		Errors:      collector.Errors(),
		TotalErrors: collector.TotalCount(),
		Truncated:   collector.IsTruncated(),
	}

	s.logger.Info("Alumni import finished",
		zap.Int("total_rows", result.TotalRows),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped),
	)

	return result, nil
}

func (s *AlumniImportService) parse(data []byte) ([]*csvimport.Row, error) {
	parser, err := csvimport.ParseFromBytes(data)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}

	if missing := parser.MissingHeaders(alumniRequiredHeaders); len(missing) > 0 {
		return nil, shared.NewDomainError("IMPORT_MISSING_COLUMNS",
			"Missing required columns: "+strings.Join(missing, ", "))
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, csvimport.ErrNoDataRows
	}
	return rows, nil
}

type parsedAlumniRow struct {
	fullName       string
	email          string
	phone          string
	graduationYear int
	syubiyahID     *uuid.UUID
	address        string
}

func (s *AlumniImportService) validateRow(
	ctx context.Context,
	row *csvimport.Row,
	seenEmails map[string]int,
	syubiyahCache map[string]*uuid.UUID,
	collector *csvimport.ErrorCollection,
) (parsedAlumniRow, bool) {
	var parsed parsedAlumniRow
	ok := true

	parsed.fullName = row.Get("full_name")
	if parsed.fullName == "" {
		collector.AddRequiredError(row.LineNumber, "full_name")
		ok = false
	}

	parsed.email = strings.ToLower(row.Get("email"))
	switch {
	case parsed.email == "":
		collector.AddRequiredError(row.LineNumber, "email")
		ok = false
	default:
		if _, err := mail.ParseAddress(parsed.email); err != nil {
			collector.AddFormatError(row.LineNumber, "email", "an email address", parsed.email)
			ok = false
		} else if _, dup := seenEmails[parsed.email]; dup {
			collector.AddDuplicateError(row.LineNumber, "email", parsed.email, false)
			ok = false
		} else {
			seenEmails[parsed.email] = row.LineNumber
			existing, err := s.alumniRepo.FindByEmail(ctx, parsed.email)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				collector.Add(csvimport.RowError{
					Row: row.LineNumber, Column: "email",
					Code:    csvimport.ErrCodeImportValidation,
					Message: "failed to check for existing alumni",
				})
				ok = false
			} else if existing != nil {
				collector.AddDuplicateError(row.LineNumber, "email", parsed.email, true)
				ok = false
			}
		}
	}

	yearStr := row.Get("graduation_year")
	if yearStr == "" {
		collector.AddRequiredError(row.LineNumber, "graduation_year")
		ok = false
	} else {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			collector.AddFormatError(row.LineNumber, "graduation_year", "a four digit year", yearStr)
			ok = false
		} else {
			parsed.graduationYear = year
		}
	}

	parsed.phone = row.Get("phone")
	parsed.address = row.Get("address")

	if name := row.Get("syubiyah"); name != "" {
		id, err := s.lookupSyubiyah(ctx, name, syubiyahCache)
		if err != nil {
			collector.AddReferenceError(row.LineNumber, "syubiyah", name, "syubiyah")
			ok = false
		} else {
			parsed.syubiyahID = id
		}
	}

	return parsed, ok
}

func (s *AlumniImportService) lookupSyubiyah(ctx context.Context, name string, cache map[string]*uuid.UUID) (*uuid.UUID, error) {
	key := strings.ToLower(name)
	if id, ok := cache[key]; ok {
		if id == nil {
			return nil, shared.ErrNotFound
		}
		return id, nil
	}

	syubiyah, err := s.syubiyahRepo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			cache[key] = nil
		}
		return nil, err
	}

	id := syubiyah.ID
	cache[key] = &id
	return &id, nil
}

func (s *AlumniImportService) publishEvents(ctx context.Context, alumni *membership.Alumni) {
	if s.eventBus == nil {
		return
	}
	_ = s.eventBus.Publish(ctx, alumni.GetDomainEvents()...)
	alumni.ClearDomainEvents()
}
