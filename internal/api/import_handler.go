package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lead-import-api/internal/config"
	"github.com/lead-import-api/internal/models"
	"github.com/lead-import-api/internal/service"
	"github.com/rs/zerolog"
)

// ImportHandler handles lead file uploads
type ImportHandler struct {
	services *service.Services
	cfg      *config.Config
	errs     errorResponder
	log      zerolog.Logger
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *ImportHandler {
	log = log.With().Str("handler", "import").Logger()
	return &ImportHandler{
		services: services,
		cfg:      cfg,
		errs:     errorResponder{cfg: cfg, log: log},
		log:      log,
	}
}

// ImportLeads handles POST /:username
// Accepts a multipart upload with the CSV in the "file" field.
func (h *ImportHandler) ImportLeads(c *gin.Context) {
	username := c.Param("username")

	upload, err := h.readUpload(c)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, http.StatusBadRequest,
				fmt.Sprintf("file too large, max size is %d MB", h.cfg.Import.MaxUploadSize/(1024*1024)))
			return
		}
		h.log.Warn().Err(err).Msg("Unreadable upload")
		abortWithError(c, http.StatusBadRequest, "No file provided")
		return
	}
	if upload != nil {
		if closer, ok := upload.Content.(io.Closer); ok {
			defer closer.Close()
		}
	}

	result, err := h.services.Import.ImportLeads(c.Request.Context(), username, upload)
	if err != nil {
		h.errs.respond(c, err, remoteFailure{http.StatusInternalServerError, "Failed to import leads"})
		return
	}

	h.log.Info().
		Str("user", username).
		Str("file", upload.Filename).
		Int64("size_bytes", upload.Size).
		Int("success_count", result.SuccessCount).
		Int("error_count", result.ErrorCount).
		Msg("Leads imported")

	c.JSON(http.StatusCreated, result)
}

// readUpload extracts the "file" part. A missing part yields a nil upload;
// a part sent without a filename yields an upload with an empty name.
func (h *ImportHandler) readUpload(c *gin.Context) (*models.Upload, error) {
	header, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			if form := c.Request.MultipartForm; form != nil {
				if _, ok := form.Value["file"]; ok {
					return &models.Upload{Content: http.NoBody}, nil
				}
			}
			return nil, nil
		}
		return nil, err
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}

	return &models.Upload{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	}, nil
}
