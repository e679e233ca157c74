package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-address-service/internal/application"
)

type JobHandler struct {
	Export *application.ExportService
	Logger *logrus.Logger
}

func NewJobHandler(export *application.ExportService, logger *logrus.Logger) *JobHandler {
	return &JobHandler{Export: export, Logger: logger}
}

// GetStatus reports the polled state of an export job. Unknown ids (including
// any id from before a restart) are a 404.
func (h *JobHandler) GetStatus(c *gin.Context) {
	job, err := h.Export.GetStatus(c.Param("id"))
	if err != nil {
		respondServiceError(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, toJobResponse(job))
}
