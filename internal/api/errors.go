package api

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lead-import-api/internal/config"
	"github.com/lead-import-api/internal/models"
	"github.com/lead-import-api/internal/parser"
	"github.com/rs/zerolog"
)

// remoteFailure describes how an endpoint reports a remote store error
type remoteFailure struct {
	status  int
	message string
}

// errorResponder turns service errors into JSON error responses
type errorResponder struct {
	cfg *config.Config
	log zerolog.Logger
}

// respond writes the status and message for err. Remote store failures use
// remote; anything unclassified is a 500.
func (r errorResponder) respond(c *gin.Context, err error, remote remoteFailure) {
	var (
		validationErr *models.ValidationError
		notFoundErr   *models.NotFoundError
		conflictErr   *models.ConflictError
		remoteErr     *models.RemoteError
		parseErr      *parser.ParseError
	)

	switch {
	case errors.As(err, &validationErr):
		abortWithError(c, http.StatusBadRequest, validationErr.Message)
	case errors.As(err, &notFoundErr):
		abortWithError(c, http.StatusNotFound, notFoundErr.Error())
	case errors.As(err, &conflictErr):
		abortWithError(c, http.StatusBadRequest, conflictErr.Message)
	case errors.Is(err, models.ErrInvalidCredentials):
		abortWithError(c, http.StatusUnauthorized, "Invalid username or password")
	case errors.As(err, &parseErr):
		// A malformed upload is the client's fault; failing to read our own temp file is not
		var pathErr *fs.PathError
		if errors.As(parseErr.Err, &pathErr) {
			r.log.Error().Err(err).Msg("Upload file unreadable")
			abortWithError(c, http.StatusInternalServerError, r.message("Failed to read CSV file", err))
			return
		}
		abortWithError(c, http.StatusBadRequest, "Failed to read CSV file")
	case errors.As(err, &remoteErr):
		r.log.Error().Err(err).Str("op", remoteErr.Op).Int("upstream_status", remoteErr.StatusCode).Msg("Remote store request failed")
		abortWithError(c, remote.status, r.message(remote.message, err))
	default:
		r.log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		abortWithError(c, http.StatusInternalServerError, r.message("Internal server error", err))
	}
}

// message hides internal error text outside development
func (r errorResponder) message(public string, err error) string {
	if r.cfg.IsDevelopment() {
		return err.Error()
	}
	return public
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
