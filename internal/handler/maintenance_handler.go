package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/classpad-app/classpad-backend/internal/service"
)

// MaintenanceHandler exposes the admin-gated schema migration endpoint.
type MaintenanceHandler struct {
	migrationService *service.MigrationService
}

// NewMaintenanceHandler creates a new MaintenanceHandler.
func NewMaintenanceHandler(migrationService *service.MigrationService) *MaintenanceHandler {
	return &MaintenanceHandler{migrationService: migrationService}
}

// MigrateSchema godoc
// POST /api/v1/admin/maintenance/migrate-schema
// Runs the schema-v2 migration: backfills classTemplates and strips legacy
// display fields from invites. Idempotent; safe to rerun after a partial
// failure. The response shape {success, message} is kept for compatibility
// with the existing maintenance tooling.
func (h *MaintenanceHandler) MigrateSchema(c *gin.Context) {
	report, err := h.migrationService.MigrateToV2(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": fmt.Sprintf("migration failed: %v", err),
			"report":  report,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf(
			"migration completed: %d templates created, %d sections stamped, %d invites cleaned",
			report.TemplatesCreated, report.SectionsStamped, report.InvitesCleaned,
		),
		"report": report,
	})
}
