package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/fitbalance-api/internal/container"
	"github.com/oksasatya/fitbalance-api/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

// Register exposes expvar on /debug/vars to private networks only.
func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.GET("/debug/vars", middleware.OnlyAllowed(middleware.AllowPrivateIP()), rl, gin.WrapH(expvar.Handler()))
}
