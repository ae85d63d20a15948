package status

import (
	"net/http"
	"strconv"

	"rentora/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetSyncStatus(c *gin.Context) {
	propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid property ID")
		return
	}

	st, err := h.service.GetSyncStatus(c.Request.Context(), propertyID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load sync status")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": st})
}

func (h *Handler) GetOrganizationStats(c *gin.Context) {
	organizationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid organization ID")
		return
	}

	if c.GetString("role") != "admin" && c.GetInt64("organization_id") != organizationID {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Organization belongs to another account")
		return
	}

	stats, err := h.service.GetOrganizationStats(c.Request.Context(), organizationID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load organization stats")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"stats": stats})
}

func (h *Handler) PMSHealth(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"health": h.service.PMSHealth(c.Request.Context())})
}
