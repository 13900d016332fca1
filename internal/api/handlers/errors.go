package handlers

import (
	"errors"
	"net/http"

	"ifc-reuse-backend/internal/api/middleware"
	"ifc-reuse-backend/internal/auth"
	apperrors "ifc-reuse-backend/internal/errors"
	"ifc-reuse-backend/internal/logger"
	"ifc-reuse-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error     string `json:"error" example:"error message"`
	RequestID string `json:"request_id,omitempty"`
}

// respondError maps service errors to status codes. Unexpected errors are
// logged and answered with a generic message plus the request id.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrFileTooLarge), isBodyTooLarge(err):
		c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: apperrors.ErrFileTooLarge.Error()})
	case errors.Is(err, apperrors.ErrInvalidIFC):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: apperrors.ErrInvalidIFC.Error()})
	case apperrors.IsValidation(err):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case apperrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case apperrors.IsAlreadyExists(err):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case apperrors.IsAuthentication(err):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: err.Error()})
	case apperrors.IsAuthorization(err):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: err.Error()})
	default:
		logger.WithContext(c).WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:     "Internal server error",
			RequestID: middleware.GetRequestID(c),
		})
	}
}

// actorFrom builds the service actor from the authenticated claims
func actorFrom(c *gin.Context) (service.Actor, bool) {
	claims, ok := auth.GetAuthClaims(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{
		UserID: claims.UserID,
		Email:  claims.Email,
		Admin:  claims.IsAdmin(),
	}, true
}

// requireActor is actorFrom for routes behind RequireAuth; it writes the 401 itself
func requireActor(c *gin.Context) (service.Actor, bool) {
	actor, ok := actorFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Authentication required"})
	}
	return actor, ok
}

func isBodyTooLarge(err error) bool {
	var maxBytes *http.MaxBytesError
	return errors.As(err, &maxBytes)
}
