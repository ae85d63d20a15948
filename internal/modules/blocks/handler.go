package blocks

import (
	"net/http"
	"strconv"
	"time"

	"rentora/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) BlockDates(c *gin.Context) {
	propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid property ID")
		return
	}

	var req BlockDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must be formatted YYYY-MM-DD")
		return
	}

	affected, err := h.service.BlockDates(c.Request.Context(), propertyID, start, end, req.Reason)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date range or missing reason")
		case ErrConflict:
			response.Error(c, http.StatusConflict, "BLOCK_CONFLICT", "Range contains booked days")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to block dates")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"affected_days": affected})
}

func (h *Handler) UnblockDates(c *gin.Context) {
	propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid property ID")
		return
	}

	var req UnblockDatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must be formatted YYYY-MM-DD")
		return
	}

	affected, err := h.service.UnblockDates(c.Request.Context(), propertyID, start, end)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid date range")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to unblock dates")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"affected_days": affected})
}

func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}
