package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rizkypratama/go-blog-api/internal/domain/entity"
	"github.com/rizkypratama/go-blog-api/internal/domain/repository"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

// Create appends exactly one row. The id (BIGSERIAL) and created_at
// (now()) are assigned by Postgres in the same statement, so concurrent
// creates can never share an identifier or observe a half-written record.
func (r *PostRepository) Create(p *entity.Post) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO posts (title, summary, content, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, p.Title, p.Summary, p.Content, p.AuthorID)

	return row.Scan(&p.ID, &p.CreatedAt)
}

func (r *PostRepository) GetByID(id int64) (*entity.Post, error) {
	ctx := context.Background()
	p := &entity.Post{}

	row := r.pool.QueryRow(ctx, `
		SELECT p.id, p.title, p.summary, p.content, p.author_id, u.username, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`, id)

	if err := row.Scan(&p.ID, &p.Title, &p.Summary, &p.Content, &p.AuthorID, &p.AuthorName, &p.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return p, nil
}

// List returns all posts newest first; the id tiebreak keeps equal
// timestamps in insertion order.
func (r *PostRepository) List() ([]*entity.Post, error) {
	ctx := context.Background()

	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.title, p.summary, p.content, p.author_id, u.username, p.created_at
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC, p.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*entity.Post
	for rows.Next() {
		p := &entity.Post{}
		if err := rows.Scan(&p.ID, &p.Title, &p.Summary, &p.Content, &p.AuthorID, &p.AuthorName, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

var _ repository.PostRepository = (*PostRepository)(nil)
