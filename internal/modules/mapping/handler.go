package mapping

import (
	"errors"
	"net/http"
	"strconv"

	"rentora/internal/pkg/response"
	"rentora/internal/pms"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.PUT("/properties/:id/mapping", h.Map)
	rg.DELETE("/properties/:id/mapping", h.Unmap)
}

func (h *Handler) Map(c *gin.Context) {
	propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid property ID")
		return
	}

	var req MapPropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	m, err := h.service.Map(c.Request.Context(), propertyID, req.ExternalListingID)
	if err != nil {
		switch {
		case errors.Is(err, ErrPropertyNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
		case errors.Is(err, ErrListingNotFound):
			response.Error(c, http.StatusUnprocessableEntity, "LISTING_NOT_FOUND", "Listing does not exist in the PMS")
		case errors.Is(err, ErrAlreadyMapped):
			response.Error(c, http.StatusConflict, "ALREADY_MAPPED", "Property already has an active mapping")
		case errors.Is(err, pms.ErrRemoteUnavailable):
			response.Error(c, http.StatusBadGateway, "PMS_UNAVAILABLE", "PMS unreachable")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to map property")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"mapping": m})
}

func (h *Handler) Unmap(c *gin.Context) {
	propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid property ID")
		return
	}

	if err := h.service.Unmap(c.Request.Context(), propertyID); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to unmap property")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unmapped": true})
}
