package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lead-import-api/internal/config"
	"github.com/lead-import-api/internal/models"
	"github.com/lead-import-api/internal/service"
	"github.com/rs/zerolog"
)

// UserHandler handles registration and login
type UserHandler struct {
	services *service.Services
	errs     errorResponder
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(services *service.Services, cfg *config.Config, log zerolog.Logger) *UserHandler {
	return &UserHandler{
		services: services,
		errs:     errorResponder{cfg: cfg, log: log.With().Str("handler", "user").Logger()},
	}
}

// Register handles POST /user
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.services.User.Register(c.Request.Context(), &req)
	if err != nil {
		h.errs.respond(c, err, remoteFailure{http.StatusBadRequest, "Failed to create user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// Login handles POST /login
func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := h.services.User.Login(c.Request.Context(), &req)
	if err != nil {
		h.errs.respond(c, err, remoteFailure{http.StatusInternalServerError, "Failed to query database"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
	})
}
