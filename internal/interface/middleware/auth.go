package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rizkypratama/go-blog-api/internal/application"
	repo "github.com/rizkypratama/go-blog-api/internal/domain/repository"
	"github.com/rizkypratama/go-blog-api/pkg/helpers"
	"github.com/rizkypratama/go-blog-api/pkg/response"
)

// CtxIdentityKey is the Gin context key holding the resolved caller identity.
const CtxIdentityKey = "identity"

// Authenticate resolves an optional caller identity from the Authorization
// header. It never aborts: a missing or invalid bearer token just leaves
// the request anonymous, which is fine for the public read endpoints.
// Handlers that require authentication stack RequireAuth on top.
func Authenticate(jwt *helpers.JWTManager, users repo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		claims, err := jwt.Parse(token)
		if err != nil {
			c.Next()
			return
		}
		u, err := users.GetByID(claims.UserID)
		if err != nil || u == nil {
			c.Next()
			return
		}
		c.Set(CtxIdentityKey, &application.Identity{UserID: u.ID, Username: u.Username})
		c.Next()
	}
}

// RequireAuth aborts with 401 unless Authenticate resolved an identity.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IdentityFromContext(c) == nil {
			response.Error[any](c, http.StatusUnauthorized, "missing or invalid bearer token", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// IdentityFromContext returns the caller identity set by Authenticate, or
// nil for an anonymous request.
func IdentityFromContext(c *gin.Context) *application.Identity {
	v, ok := c.Get(CtxIdentityKey)
	if !ok {
		return nil
	}
	id, ok := v.(*application.Identity)
	if !ok {
		return nil
	}
	return id
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
