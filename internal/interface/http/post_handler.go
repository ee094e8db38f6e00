package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/rizkypratama/go-blog-api/internal/application"
	"github.com/rizkypratama/go-blog-api/internal/domain/entity"
	"github.com/rizkypratama/go-blog-api/internal/interface/middleware"
	"github.com/rizkypratama/go-blog-api/pkg/response"
	"github.com/rizkypratama/go-blog-api/pkg/validation"
)

type PostHandler struct {
	Svc    *application.PostService
	Logger *logrus.Logger
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger}
}

type createPostRequest struct {
	Title   string `json:"title" binding:"required"`
	Summary string `json:"summary"`
	Content string `json:"content" binding:"required"`
}

// postResponse is the wire shape of a post. Author is the display name,
// never the raw identifier; the mapping is deliberately decoupled from the
// storage schema.
type postResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Content   string    `json:"content"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

func toPostResponse(p *entity.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Summary:   p.Summary,
		Content:   p.Content,
		Author:    p.AuthorName,
		CreatedAt: p.CreatedAt,
	}
}

// List handles GET /api/posts. Public.
func (h *PostHandler) List(c *gin.Context) {
	posts, err := h.Svc.ListPosts(c.Request.Context(), middleware.IdentityFromContext(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	response.Success(c, http.StatusOK, out, "posts", map[string]any{"count": len(out)})
}

// Get handles GET /api/posts/:id. Public.
func (h *PostHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid post id", nil)
		return
	}
	p, err := h.Svc.GetPost(c.Request.Context(), id, middleware.IdentityFromContext(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toPostResponse(p), "post", nil)
}

// Create handles POST /api/posts. Requires a bearer credential.
func (h *PostHandler) Create(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	p, err := h.Svc.CreatePost(c.Request.Context(), application.CreatePostInput{
		Title:   req.Title,
		Summary: req.Summary,
		Content: req.Content,
	}, middleware.IdentityFromContext(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toPostResponse(p), "post created", nil)
}

// Search handles GET /api/posts/search?q=. Public.
func (h *PostHandler) Search(c *gin.Context) {
	q := c.Query("q")
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchPosts(c.Request.Context(), q, size)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

// writeError maps service errors onto the HTTP taxonomy. Internal detail
// stops here.
func (h *PostHandler) writeError(c *gin.Context, err error) {
	var verr *application.ValidationError
	switch {
	case errors.Is(err, application.ErrDenied):
		response.Error[any](c, http.StatusForbidden, "operation not permitted", nil)
	case errors.Is(err, application.ErrPostNotFound):
		response.Error[any](c, http.StatusNotFound, "post not found", nil)
	case errors.As(err, &verr):
		response.Error[any](c, http.StatusBadRequest, "invalid payload", verr.Fields)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).Error("post operation failed")
		}
		response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
	}
}
