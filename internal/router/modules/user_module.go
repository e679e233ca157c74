package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/user-address-service/internal/container"
	handlers "github.com/oksasatya/user-address-service/internal/interface/http"
	"github.com/oksasatya/user-address-service/internal/interface/middleware"
)

// UserModule wires the user HTTP handlers into routes.
// GET  /users            list with filters + pagination
// POST /users            create (201 + Location)
// GET  /users/search     Elasticsearch-backed search
// GET  /users/:id        conditional GET (ETag / If-None-Match)
// PUT  /users/:id        conditional partial replace (If-Match)
// DELETE /users/:id
// POST /users/:id/export enqueue async export (202 + Location)
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Writes get a tighter per-IP limiter than reads; no-op without Redis.
	writeLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath())
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP())

	users := rg.Group("/users")
	{
		users.GET("", readLimiter, m.Handler.List)
		users.POST("", writeLimiter, m.Handler.Create)
		users.GET("/search", readLimiter, m.Handler.Search)
		users.GET("/:id", readLimiter, m.Handler.Get)
		users.PUT("/:id", writeLimiter, m.Handler.Update)
		users.DELETE("/:id", writeLimiter, m.Handler.Delete)
		users.POST("/:id/export", writeLimiter, m.Handler.StartExport)
	}
}
