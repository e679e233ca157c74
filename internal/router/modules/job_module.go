package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/user-address-service/internal/interface/http"
)

// JobModule exposes the polling endpoint for export jobs.
type JobModule struct {
	Handler *handlers.JobHandler
}

func NewJobModule(h *handlers.JobHandler) *JobModule {
	return &JobModule{Handler: h}
}

func (m *JobModule) Register(rg *gin.RouterGroup) {
	rg.GET("/jobs/:id", m.Handler.GetStatus)
}
