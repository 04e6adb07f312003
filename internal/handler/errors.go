package handler

import (
	"errors"
	"log"

	apperrors "hackreg/internal/errors"
	"hackreg/pkg/response"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error to its HTTP response.
func respondError(c *gin.Context, err error) {
	if verr, ok := apperrors.IsValidation(err); ok {
		response.ValidationFailed(c, verr.Issues)
		return
	}
	if dup, ok := apperrors.IsDuplicateMember(err); ok {
		response.Conflict(c, dup.Error())
		return
	}

	var storageErr *apperrors.StorageError
	if errors.As(err, &storageErr) {
		response.BadGateway(c, storageErr.Error())
		return
	}

	var persistErr *apperrors.PersistenceError
	if errors.As(err, &persistErr) {
		log.Printf("Error: %v", persistErr)
		response.ServerError(c, persistErr.Error())
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrUnauthenticated):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, apperrors.ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.Is(err, apperrors.ErrTeamAlreadyRegistered),
		errors.Is(err, apperrors.ErrRegistrationInProgress),
		errors.Is(err, apperrors.ErrInvalidStatusTransition):
		response.Conflict(c, err.Error())
	case errors.Is(err, apperrors.ErrTeamFull),
		errors.Is(err, apperrors.ErrMissingFields):
		response.BadRequest(c, err.Error())
	case errors.Is(err, apperrors.ErrTeamNotFound),
		errors.Is(err, apperrors.ErrMemberNotFound):
		response.NotFound(c, err.Error())
	default:
		log.Printf("Error: unhandled service error: %v", err)
		response.InternalError(c)
	}
}
