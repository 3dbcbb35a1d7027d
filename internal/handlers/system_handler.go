package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tradesim/internal/config"
	"tradesim/internal/database"
	apperrors "tradesim/internal/errors"
)

// SystemHandler serves the banner, health check, and dev-only schema init.
type SystemHandler struct {
	cfg       *config.Config
	dbManager *database.Manager
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(cfg *config.Config, dbManager *database.Manager) *SystemHandler {
	return &SystemHandler{cfg: cfg, dbManager: dbManager}
}

// Root returns the API banner.
func (h *SystemHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":   "Trading Simulation Backend API",
		"version":   "1.0.0",
		"status":    "running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health returns a liveness signal.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// NotFound answers unmatched routes with a JSON body instead of gin's
// plain-text default.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
}

// InitDB creates the schema. Dev-only: refused outside the development
// environment, where migrations are the only supported path.
func (h *SystemHandler) InitDB(c *gin.Context) {
	if !h.cfg.IsDevelopment() {
		respondWithError(c, apperrors.ErrForbidden)
		return
	}

	if err := h.dbManager.AutoMigrate(); err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Database initialized successfully"})
}
