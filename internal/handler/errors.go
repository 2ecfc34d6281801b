package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusgrid/registrar/internal/apperrors"
	"github.com/campusgrid/registrar/internal/response"
)

// failFromError maps a service layer error onto the response envelope.
// Unrecognized errors become a 500 without leaking internals to the client.
func failFromError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.Is(err, apperrors.ErrAlreadyEnrolled):
		response.Fail(c, http.StatusConflict, response.ErrAlreadyEnrolled)
	case errors.Is(err, apperrors.ErrSectionFull):
		response.Fail(c, http.StatusConflict, response.ErrSectionFull)
	case errors.Is(err, apperrors.ErrConflict):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.Is(err, apperrors.ErrDependencyExists):
		response.Fail(c, http.StatusConflict, response.ErrDependencyExists)
	case errors.Is(err, apperrors.ErrValidation):
		response.Fail(c, http.StatusBadRequest, response.ErrValidation)
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
	case errors.Is(err, apperrors.ErrPermissionDenied):
		response.Fail(c, http.StatusForbidden, response.ErrPermissionDenied)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

// parseID reads a positive int64 path parameter. A false return means the
// error response has already been written.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}
