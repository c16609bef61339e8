package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lead-import-api/internal/config"
	"github.com/lead-import-api/internal/models"
	"github.com/lead-import-api/internal/parser"
	"github.com/lead-import-api/internal/repository"
	"github.com/lead-import-api/internal/storage"
	"github.com/lead-import-api/internal/validation"
	"github.com/rs/zerolog"
)

const csvExtension = ".csv"

// importService is the concrete implementation of ImportService
type importService struct {
	repos   *repository.Repositories
	uploads *storage.Store
	cfg     *config.Config
	log     zerolog.Logger
	now     func() time.Time
}

// newImportService creates a new ImportService
func newImportService(repos *repository.Repositories, uploads *storage.Store, cfg *config.Config, log zerolog.Logger) *importService {
	return &importService{
		repos:   repos,
		uploads: uploads,
		cfg:     cfg,
		log:     log.With().Str("service", "import").Logger(),
		now:     time.Now,
	}
}

// ImportLeads turns every row of an uploaded CSV file into a lead owned by username.
// Rows are processed one at a time; a failing row is counted and skipped.
func (s *importService) ImportLeads(ctx context.Context, username string, upload *models.Upload) (*models.ImportResult, error) {
	if err := s.validateUpload(upload); err != nil {
		return nil, err
	}

	owner, err := resolveOwner(ctx, s.repos.User, username)
	if err != nil {
		return nil, err
	}

	rows, err := s.materialize(upload)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &models.ValidationError{Message: "Failed to read CSV file: no data rows"}
	}

	// Once rows are being written the import runs to completion even if the client goes away
	ctx = context.WithoutCancel(ctx)

	startTime := time.Now()
	result := &models.ImportResult{}

	for _, rec := range rows {
		line := rec.Line

		lead, rowErrs := buildLead(rec.Values, owner.ID, line, s.now())
		if lead == nil {
			s.recordFailure(result, rowErrs)
			continue
		}

		if err := s.repos.Lead.Create(ctx, lead); err != nil {
			s.log.Warn().Err(err).Int("line", line).Str("lead_id", lead.LeadID).Msg("Lead insert failed")
			s.recordFailure(result, []models.RowError{{Line: line, Message: insertFailureMessage(err)}})
			continue
		}
		result.SuccessCount++
	}

	var errorRate float64
	if total := result.Total(); total > 0 {
		errorRate = float64(result.ErrorCount) / float64(total) * 100
	}

	s.log.Info().
		Str("user", username).
		Str("file", upload.Filename).
		Int("total", result.Total()).
		Int("successful", result.SuccessCount).
		Int("failed", result.ErrorCount).
		Float64("error_rate_pct", errorRate).
		Int64("duration_ms", time.Since(startTime).Milliseconds()).
		Msg("Import completed")

	return result, nil
}

// validateUpload rejects requests that cannot be an import before anything is looked up
func (s *importService) validateUpload(upload *models.Upload) error {
	if upload == nil || upload.Content == nil {
		return &models.ValidationError{Message: "No file provided"}
	}
	if upload.Filename == "" {
		return &models.ValidationError{Message: "No file selected"}
	}
	if strings.ToLower(filepath.Ext(upload.Filename)) != csvExtension {
		return &models.ValidationError{Message: "File must be a CSV"}
	}
	if limit := s.cfg.Import.MaxUploadSize; limit > 0 && upload.Size > limit {
		return models.NewValidationError("file too large, max size is %d MB", limit/(1024*1024))
	}
	return nil
}

// materialize writes the upload to a temporary file, parses it and removes the file
func (s *importService) materialize(upload *models.Upload) ([]parser.Record, error) {
	tmp, err := s.uploads.Save(upload.Content, csvExtension)
	if err != nil {
		return nil, fmt.Errorf("failed to save upload: %w", err)
	}
	defer func() {
		if err := tmp.Release(); err != nil {
			s.log.Error().Err(err).Str("path", tmp.Path()).Msg("Failed to remove upload file")
		}
	}()

	return parser.ReadCSVRecords(tmp.Path())
}

// recordFailure counts one failed row and keeps its details when enabled
func (s *importService) recordFailure(result *models.ImportResult, rowErrs []models.RowError) {
	result.ErrorCount++
	if s.cfg.Import.RowErrors {
		result.Errors = append(result.Errors, rowErrs...)
	}
}

// buildLead maps a CSV row onto a new lead. When a required column is
// absent it returns nil and one RowError per missing column.
func buildLead(row map[string]string, ownerID string, line int, createdAt time.Time) (*models.Lead, []models.RowError) {
	if errs := validation.ValidateLeadRow(row); len(errs) > 0 {
		rowErrs := make([]models.RowError, len(errs))
		for i, e := range errs {
			mapErr := &models.MappingError{Line: line, Field: e.Field}
			rowErrs[i] = models.RowError{Line: line, Field: e.Field, Message: mapErr.Error()}
		}
		return nil, rowErrs
	}

	return &models.Lead{
		ID:                 uuid.New().String(),
		CreatedAt:          models.NewTimestamp(createdAt),
		UserUUID:           ownerID,
		LeadID:             row[models.ColumnLeadID],
		LeadName:           row[models.ColumnLeadName],
		ContactInformation: row[models.ColumnContactInformation],
		Source:             row[models.ColumnSource],
		InterestLevel:      row[models.ColumnInterestLevel],
		Status:             row[models.ColumnStatus],
		Salesperson:        row[models.ColumnSalesperson],
	}, nil
}

// insertFailureMessage describes a failed insert without echoing the upstream body
func insertFailureMessage(err error) string {
	var remote *models.RemoteError
	if errors.As(err, &remote) && remote.StatusCode != 0 {
		return fmt.Sprintf("remote store rejected row with status %d", remote.StatusCode)
	}
	return "remote store unreachable"
}
