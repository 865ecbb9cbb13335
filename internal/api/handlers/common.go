// Package handlers exposes the HTTP surface. Handlers bind and validate
// transport concerns, then delegate to services; the error kind decides the
// status code.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	apperrors "calltime-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps service error kinds onto status codes: validation 400,
// authentication 401, authorization 403, not found 404, conflict 409.
func respondError(c *gin.Context, err error, fallback string) {
	var validationErrs validator.ValidationErrors
	switch {
	case apperrors.IsValidation(err) || errors.As(err, &validationErrs) || errors.Is(err, apperrors.ErrImportEmptyBatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperrors.IsAuthentication(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case apperrors.IsAuthorization(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperrors.IsAlreadyExists(err) || errors.Is(err, apperrors.ErrExclusiveConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback, "details": err.Error()})
	}
}

// pathID parses a positive integer path parameter, writing a 400 on failure.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// pagination reads limit/offset query parameters with sane bounds.
func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// scopedClientID returns the client id resolved by the scope middleware.
func scopedClientID(c *gin.Context) uint {
	return c.GetUint("scoped_client_id")
}
