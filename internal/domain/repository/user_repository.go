package repository

import "github.com/rizkypratama/go-blog-api/internal/domain/entity"

// UserRepository defines the interface for account lookups. The API never
// creates or mutates users; provisioning happens out-of-band.
type UserRepository interface {
	GetByID(id int64) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
}
