package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hotelworks/hotel-api/internal/model"
	apperrors "github.com/hotelworks/hotel-api/pkg/errors"
)

// ProfileKey is the context key the auth middleware stores the acting
// profile under.
const ProfileKey = "profile"

// ActorProfile returns the authenticated actor's profile, set by the
// auth middleware.
func ActorProfile(c *gin.Context) (*model.Profile, bool) {
	v, ok := c.Get(ProfileKey)
	if !ok {
		return nil, false
	}
	profile, ok := v.(*model.Profile)
	return profile, ok
}

// RespondError maps an application error to its HTTP status and writes
// the standard error envelope.
func RespondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), NewErrorResponse(err.Error()))
}

func statusFor(err error) int {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrNotFound:
		return http.StatusNotFound
	case apperrors.ErrUnauthorized, apperrors.ErrUnauthorizedActor:
		return http.StatusUnauthorized
	case apperrors.ErrForbidden,
		apperrors.ErrCrossDepartment,
		apperrors.ErrInsufficientRole,
		apperrors.ErrRoleNotPermitted:
		return http.StatusForbidden
	case apperrors.ErrBadRequest,
		apperrors.ErrValidation,
		apperrors.ErrPastDate,
		apperrors.ErrDuplicateAssignment,
		apperrors.ErrNoShiftOnDate,
		apperrors.ErrNoOpTransition,
		apperrors.ErrShiftWindowClosed,
		apperrors.ErrShiftNotStarted,
		apperrors.ErrTaskAlreadyEnded,
		apperrors.ErrTaskNotStarted,
		apperrors.ErrInsufficientBalance:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ParseID parses a :id style path parameter, writing the error response
// itself on failure.
func ParseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse("invalid "+param))
		return uuid.Nil, false
	}
	return id, true
}
