package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lead-import-api/internal/config"
	"github.com/lead-import-api/internal/models"
	"github.com/lead-import-api/internal/service"
	"github.com/rs/zerolog"
)

// LeadHandler handles lead queries
type LeadHandler struct {
	services *service.Services
	errs     errorResponder
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *LeadHandler {
	return &LeadHandler{
		services: services,
		errs:     errorResponder{cfg: cfg, log: log.With().Str("handler", "lead").Logger()},
	}
}

// ListLeads handles GET /:username
// Query parameters named after lead columns narrow the result by equality.
func (h *LeadHandler) ListLeads(c *gin.Context) {
	filter := models.NewLeadFilter(c.Query)

	leads, err := h.services.Lead.FindLeads(c.Request.Context(), c.Param("username"), filter)
	if err != nil {
		h.errs.respond(c, err, remoteFailure{http.StatusInternalServerError, "Failed to fetch leads"})
		return
	}

	c.JSON(http.StatusOK, leads)
}
