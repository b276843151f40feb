package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nurkanat-dev/lifelog/internal/domain"
)

type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) *PostRepository {
	return &PostRepository{pool: pool}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	query := `
		INSERT INTO posts (user_id, title, content, image_url, image_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, title, content, image_url, image_key, created_at`

	row := r.pool.QueryRow(ctx, query,
		post.UserID,
		post.Title,
		post.Content,
		post.ImageURL,
		post.ImageKey,
	)

	var p domain.Post
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Content, &p.ImageURL, &p.ImageKey, &p.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	return &p, nil
}

// ListByUser returns only the caller's posts, newest first, with the
// author joined in so feed responses need no second query.
func (r *PostRepository) ListByUser(ctx context.Context, userID string) ([]*domain.FeedPost, error) {
	query := `
		SELECT p.id, p.user_id, p.title, p.content, p.image_url, p.image_key, p.created_at,
		       u.username, u.email
		FROM posts p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
		ORDER BY p.created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []*domain.FeedPost
	for rows.Next() {
		var fp domain.FeedPost
		err := rows.Scan(
			&fp.ID, &fp.UserID, &fp.Title, &fp.Content, &fp.ImageURL, &fp.ImageKey, &fp.CreatedAt,
			&fp.Author.Username, &fp.Author.Email,
		)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, &fp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) ListImageKeys(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT image_key FROM posts`)
	if err != nil {
		return nil, fmt.Errorf("list image keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan image key: %w", err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list image keys: %w", err)
	}
	return keys, nil
}
