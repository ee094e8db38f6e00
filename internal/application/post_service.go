package application

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/rizkypratama/go-blog-api/internal/domain/entity"
	repo "github.com/rizkypratama/go-blog-api/internal/domain/repository"
	"github.com/rizkypratama/go-blog-api/pkg/helpers"
)

// postCacheTTL bounds the Redis cache for single-post reads. Posts are
// immutable after creation, so a cached record can never go stale.
const postCacheTTL = 10 * time.Minute

// PostService orchestrates the permission policy and the post store for
// list/detail/create requests.
type PostService struct {
	Repo         repo.PostRepository
	Redis        *redis.Client
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESPostsIndex string
}

func NewPostService(repo repo.PostRepository, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esPostsIndex string) *PostService {
	return &PostService{
		Repo:         repo,
		Redis:        rdb,
		Logger:       logger,
		ES:           es,
		ESPostsIndex: esPostsIndex,
	}
}

// CreatePostInput carries the caller-supplied fields of a new post.
// Summary is optional; an empty value means "derive it from content".
type CreatePostInput struct {
	Title   string
	Summary string
	Content string
}

func postCacheKey(id int64) string {
	return "post:" + strconv.FormatInt(id, 10)
}

// ListPosts returns all posts newest first. Readable by anyone.
func (s *PostService) ListPosts(ctx context.Context, caller *Identity) ([]*entity.Post, error) {
	if !Allowed(OpListPosts, caller) {
		return nil, ErrDenied
	}
	return s.Repo.List()
}

// GetPost returns a single post by id. Readable by anyone.
func (s *PostService) GetPost(ctx context.Context, id int64, caller *Identity) (*entity.Post, error) {
	if !Allowed(OpGetPost, caller) {
		return nil, ErrDenied
	}

	if s.Redis != nil {
		var cached entity.Post
		if ok, err := helpers.RedisGetJSON(ctx, s.Redis, postCacheKey(id), &cached); err == nil && ok {
			return &cached, nil
		}
	}

	p, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, postCacheKey(id), p, postCacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", id).Warn("post cache write failed")
		}
	}
	return p, nil
}

// CreatePost validates, fills the default summary, and persists a new post
// authored by the caller. Anonymous callers are rejected before storage is
// touched.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput, caller *Identity) (*entity.Post, error) {
	if !Allowed(OpCreatePost, caller) {
		return nil, ErrDenied
	}

	fields := map[string]string{}
	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "must not be empty"
	}
	if strings.TrimSpace(in.Content) == "" {
		fields["content"] = "must not be empty"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	p := &entity.Post{
		Title:      in.Title,
		Summary:    in.Summary,
		Content:    in.Content,
		AuthorID:   caller.UserID,
		AuthorName: caller.Username,
	}
	p.EnsureSummary()

	if err := s.Repo.Create(p); err != nil {
		return nil, err
	}

	s.indexPost(ctx, p)
	return p, nil
}

// indexPost mirrors a created post into Elasticsearch for search. Best
// effort: indexing failures are logged, never surfaced.
func (s *PostService) indexPost(ctx context.Context, p *entity.Post) {
	if s.ES == nil || s.ESPostsIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         p.ID,
		"title":      p.Title,
		"summary":    p.Summary,
		"content":    p.Content,
		"author":     p.AuthorName,
		"created_at": p.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESPostsIndex,
		DocumentID: strconv.FormatInt(p.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("post_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("post_id", p.ID).Warn("es index response error")
	}
}

// SearchPosts performs a multi_match search over title, summary, and
// content. Returns empty results when search is not configured.
func (s *PostService) SearchPosts(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESPostsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "summary", "content"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESPostsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
