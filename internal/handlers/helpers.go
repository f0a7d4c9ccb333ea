package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"infinite-flow-backend/internal/apperr"
	"infinite-flow-backend/internal/middleware"
	"infinite-flow-backend/internal/models"
)

// respondError maps a structured error kind to its HTTP status with the
// standard error response shape.
func respondError(c *gin.Context, summary string, err error) {
	c.JSON(apperr.HTTPStatus(err), models.ErrorResponse{
		Error:   summary,
		Message: err.Error(),
	})
}

// currentUserID pulls the authenticated user id set by the auth middleware.
// A false return has already written the response.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
		return uuid.Nil, false
	}

	userID, err := uuid.Parse(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid user id"})
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a uuid path parameter. A false return has already written
// the response.
func pathUUID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid " + param})
		return uuid.Nil, false
	}
	return id, true
}
