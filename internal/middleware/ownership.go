package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"rentora/internal/pkg/response"
	"rentora/internal/repository"

	"github.com/gin-gonic/gin"
)

// PropertyAccessChecker verifies a property belongs to the caller's
// organization before property-scoped sync and block operations run.
type PropertyAccessChecker struct {
	properties *repository.PropertyRepository
}

func NewPropertyAccessChecker(properties *repository.PropertyRepository) *PropertyAccessChecker {
	return &PropertyAccessChecker{properties: properties}
}

// CheckPropertyAccess expects the property ID in URL param "id". Admins
// bypass the organization check.
func (pc *PropertyAccessChecker) CheckPropertyAccess() gin.HandlerFunc {
	return func(c *gin.Context) {
		organizationID := c.GetInt64("organization_id")
		if organizationID == 0 {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
			c.Abort()
			return
		}

		propertyID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid property ID")
			c.Abort()
			return
		}

		property, err := pc.properties.GetByID(c.Request.Context(), propertyID)
		if err != nil {
			if errors.Is(err, repository.ErrPropertyNotFound) {
				response.Error(c, http.StatusNotFound, "NOT_FOUND", "Property not found")
			} else {
				response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load property")
			}
			c.Abort()
			return
		}

		if c.GetString("role") != "admin" && property.OrganizationID != organizationID {
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "Property belongs to another organization")
			c.Abort()
			return
		}

		c.Next()
	}
}
