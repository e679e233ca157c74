package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-address-service/internal/application"
	"github.com/oksasatya/user-address-service/internal/domain/repository"
	"github.com/oksasatya/user-address-service/pkg/response"
)

// respondServiceError maps service/repository errors onto the HTTP taxonomy:
// not-found 404, uniqueness conflict 400, bad reference 400, stale
// precondition 412, everything else a generic 500.
func respondServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	switch {
	case errors.Is(err, application.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrAddressNotFound):
		response.Error(c, http.StatusNotFound, "address not found", nil)
	case errors.Is(err, application.ErrJobNotFound):
		response.Error(c, http.StatusNotFound, "job not found", nil)
	case errors.Is(err, repository.ErrConflict):
		response.Error(c, http.StatusBadRequest, "email or username already exists", nil)
	case errors.Is(err, repository.ErrInvalidReference):
		response.Error(c, http.StatusBadRequest, "unknown user_id", nil)
	case errors.Is(err, application.ErrPreconditionFailed):
		response.Error(c, http.StatusPreconditionFailed, "precondition failed (etag mismatch)", nil)
	default:
		logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
