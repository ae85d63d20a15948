package sync

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

func (h *Handler) SyncProperty(c *gin.Context) {
	propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid property ID")
		return
	}

	res := h.service.SyncProperty(c.Request.Context(), propertyID)
	if !res.Success {
		response.ErrorWithDetails(c, statusForCode(res.ErrorCode), res.ErrorCode, res.Error, res)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"result": res})
}

func (h *Handler) SyncAll(c *gin.Context) {
	organizationID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid organization ID")
		return
	}

	if c.GetString("role") != "admin" && c.GetInt64("organization_id") != organizationID {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Organization belongs to another account")
		return
	}

	res, err := h.service.SyncAll(c.Request.Context(), organizationID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, CodeInternal, "Failed to run organization sync")
		return
	}

	// Per-property failures are part of the aggregate, not an HTTP error.
	response.Success(c, http.StatusOK, gin.H{"result": res})
}

func statusForCode(code string) int {
	switch code {
	case CodeNotMapped:
		return http.StatusConflict
	case CodePMSUnavailable, CodePMSRejected:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
