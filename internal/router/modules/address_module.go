package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/user-address-service/internal/container"
	handlers "github.com/oksasatya/user-address-service/internal/interface/http"
	"github.com/oksasatya/user-address-service/internal/interface/middleware"
)

// AddressModule wires the address HTTP handlers into routes. Addresses mirror
// the user endpoints without the concurrency-token behavior.
type AddressModule struct {
	Handler *handlers.AddressHandler
}

func NewAddressModule(h *handlers.AddressHandler) *AddressModule {
	return &AddressModule{Handler: h}
}

func (m *AddressModule) Register(rg *gin.RouterGroup) {
	writeLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIPAndPath())
	readLimiter := middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP())

	addresses := rg.Group("/addresses")
	{
		addresses.GET("", readLimiter, m.Handler.List)
		addresses.POST("", writeLimiter, m.Handler.Create)
		addresses.GET("/:id", readLimiter, m.Handler.Get)
		addresses.PUT("/:id", writeLimiter, m.Handler.Update)
		addresses.DELETE("/:id", writeLimiter, m.Handler.Delete)
	}
}
