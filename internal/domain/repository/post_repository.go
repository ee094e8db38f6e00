package repository

import "github.com/rizkypratama/go-blog-api/internal/domain/entity"

// PostRepository defines the interface for post persistence.
// List returns posts newest first; ties on created_at fall back to
// insertion order. Create is the only mutating operation and fills the
// store-assigned ID and CreatedAt on the given post.
type PostRepository interface {
	Create(p *entity.Post) error
	GetByID(id int64) (*entity.Post, error)
	List() ([]*entity.Post, error)
}
