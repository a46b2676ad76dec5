package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domainuser "github.com/snejhirpara/tiffin-tracker/internal/domain/user"
	"github.com/snejhirpara/tiffin-tracker/internal/httperr"
	"github.com/snejhirpara/tiffin-tracker/internal/httpresp"
	"github.com/snejhirpara/tiffin-tracker/internal/middleware"
	"github.com/snejhirpara/tiffin-tracker/internal/models"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	role := c.MustGet(middleware.ContextUserRole).(string)
	if !domainuser.IsAdmin(role) {
		httperr.BadRequest(c, "Role must be Admin in order to view audit logs")
		return
	}

	limit := defaultAuditLimit
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	var logs []models.AuditLog
	if err := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "Error while fetching audit logs")
		return
	}

	httpresp.OK(c, logs, "Audit logs fetched successfully")
}
