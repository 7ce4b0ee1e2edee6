package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/portaladmin/internal/app/models/dto"
	"github.com/yigit/portaladmin/internal/pkg/apperrors"
	"github.com/yigit/portaladmin/internal/pkg/logger"
)

// ErrorStatus maps an application error onto an HTTP status and an error detail.
func ErrorStatus(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, apperrors.ErrInvalidCredentials.Error())
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	case errors.Is(err, apperrors.ErrValidationFailed):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, apperrors.UserMessage(err, "Validation failed"))
		var ce *apperrors.CustomError
		if errors.As(err, &ce) && ce.Details != nil {
			detail.WithDetails(ce.Details)
		}
		return http.StatusBadRequest, detail
	case errors.Is(err, apperrors.ErrConfirmationRequired):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeConfirmationRequired, "Deletion must be confirmed with confirm=true")
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeResourceInvalid, apperrors.UserMessage(err, "Bad request"))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, notFoundMessage(err))
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Resource already exists")
	case errors.Is(err, apperrors.ErrNotSupported):
		return http.StatusMethodNotAllowed, dto.NewErrorDetail(dto.ErrorCodeNotSupported, "Operation not supported")
	case errors.Is(err, apperrors.ErrReloadFailed):
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeReloadFailed, apperrors.ErrReloadFailed.Error())
	case errors.Is(err, apperrors.ErrLoadFailed):
		return http.StatusBadGateway, dto.NewErrorDetail(dto.ErrorCodeStoreError, "Could not load records")
	case errors.Is(err, apperrors.ErrMutationFailed):
		return http.StatusBadGateway, dto.NewErrorDetail(dto.ErrorCodeStoreError, "Could not save changes")
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func notFoundMessage(err error) string {
	for _, recordErr := range []error{
		apperrors.ErrUserNotFound,
		apperrors.ErrCourseNotFound,
		apperrors.ErrLectureNotFound,
		apperrors.ErrAnnouncementNotFound,
	} {
		if errors.Is(err, recordErr) {
			return recordErr.Error()
		}
	}
	return "Resource not found"
}

// HandleAPIError writes the JSON error response for err
func HandleAPIError(c *gin.Context, err error) {
	status, detail := ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	}
	c.JSON(status, dto.NewFailureResponse(detail))
}
