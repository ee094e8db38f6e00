package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rizkypratama/go-blog-api/internal/container"
	repo "github.com/rizkypratama/go-blog-api/internal/domain/repository"
	handlers "github.com/rizkypratama/go-blog-api/internal/interface/http"
	"github.com/rizkypratama/go-blog-api/internal/interface/middleware"
)

// PostModule wires the content endpoints.
// Public reads: GET /api/posts, GET /api/posts/:id, GET /api/posts/search
// Authenticated write: POST /api/posts
// Every route runs Authenticate so handlers always see a resolved
// identity-or-none; only the write stacks RequireAuth.
type PostModule struct {
	Handler *handlers.PostHandler
	Users   repo.UserRepository
}

func NewPostModule(h *handlers.PostHandler, users repo.UserRepository) *PostModule {
	return &PostModule{Handler: h, Users: users}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	identity := middleware.Authenticate(container.GetJWT(), m.Users)

	posts := rg.Group("/posts")
	posts.Use(identity)
	{
		posts.GET("", m.Handler.List)
		posts.GET("/search", m.Handler.Search)
		posts.GET("/:id", m.Handler.Get)

		createLimiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByUser(), middleware.AllowPrivateIP())
		posts.POST("", middleware.RequireAuth(), createLimiter, m.Handler.Create)
	}
}
