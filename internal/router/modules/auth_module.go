package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rizkypratama/go-blog-api/internal/container"
	handlers "github.com/rizkypratama/go-blog-api/internal/interface/http"
	"github.com/rizkypratama/go-blog-api/internal/interface/middleware"
)

// AuthModule wires the login endpoint.
// Public: POST /api/login (per-IP rate limited at the edge).
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	rg.POST("/login", loginLimiter, m.Handler.Login)
}
